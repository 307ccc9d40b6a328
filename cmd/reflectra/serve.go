// Copyright 2024, the Reflectra authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/angelinath21/Reflectra/dashboard"
	"github.com/angelinath21/Reflectra/util"
)

var serveFlags = []cli.Flag{
	cli.StringFlag{Name: "root", EnvVar: util.REFLECTRA_ROOT, Usage: "Working directory for scene data and results"},
}

func getPortStr() string {
	if port, ok := os.LookupEnv(util.PORT); ok {
		return ":" + port
	}
	return ":8080"
}

func serveAction(c *cli.Context) {
	logContext := &(util.BasicLogContext{})
	util.LoadDotEnv(logContext)

	rootDirectory := util.GetRootDirectory()
	if c != nil && c.String("root") != "" {
		rootDirectory = c.String("root")
	}

	router := dashboard.NewRouter(rootDirectory, logContext)
	util.LogInfo(logContext, "Serving dashboard for "+rootDirectory+" on "+getPortStr())
	launchServerFunc(getPortStr(), router)
}

var launchServerFunc = launchServer

func launchServer(portStr string, router *mux.Router) {
	server := http.Server{
		Addr:    portStr,
		Handler: router,
	}

	log.Fatal(server.ListenAndServe())
}
