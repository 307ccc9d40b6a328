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
	"fmt"

	cli "gopkg.in/urfave/cli.v1"
)

const version = "1.0.0"

var commands = cli.Commands{
	cli.Command{
		Name:    "run",
		Aliases: []string{"r"},
		Usage:   "Acquire scenes and run the full processing pipeline",
		Flags:   runFlags,
		Action:  runAction,
	},
	cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Launch the results dashboard webserver",
		Flags:   serveFlags,
		Action:  serveAction,
	},
	cli.Command{
		Name:    "track",
		Aliases: []string{"t"},
		Usage:   "Track satellite passes over an observer and send alerts",
		Flags:   trackFlags,
		Action:  trackAction,
	},
	cli.Command{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "Print the version number of the Reflectra CLI",
		Action:  versionAction,
	},
}

func createCliApp() (app *cli.App) {
	app = cli.NewApp()
	app.Name = "reflectra"
	app.Usage = "Launch a reflectra process"
	app.Version = version
	app.Commands = commands
	return
}

func versionAction(*cli.Context) {
	fmt.Println(version)
}
