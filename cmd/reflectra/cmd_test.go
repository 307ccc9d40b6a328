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
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

func TestCreateCliAppCommands(t *testing.T) {
	app := createCliApp()
	names := []string{}
	for _, command := range app.Commands {
		names = append(names, command.Name)
	}
	for _, expected := range []string{"run", "serve", "track", "version"} {
		assert.Contains(t, names, expected)
	}
}

func TestGetPortStr(t *testing.T) {
	os.Unsetenv("PORT")
	assert.Equal(t, ":8080", getPortStr())
	os.Setenv("PORT", "9191")
	assert.Equal(t, ":9191", getPortStr())
	os.Unsetenv("PORT")
}

func TestServe_CallsLaunchServer(t *testing.T) {
	success := make(chan bool)
	launchServerFunc = func(portStr string, router *mux.Router) { // Mock
		success <- true
	}
	timer := time.NewTimer(1 * time.Second)

	go serveAction(nil)

	select {
	case <-success:
	case <-timer.C:
		assert.Fail(t, "launchServer not called within 1 second of serve()")
	}
}

func TestServe_IndexEndpoint(t *testing.T) {
	success := make(chan bool)
	launchServerFunc = func(portStr string, router *mux.Router) { // Mock
		req := httptest.NewRequest("GET", "/", strings.NewReader(""))
		response := httptest.NewRecorder()
		router.ServeHTTP(response, req)
		success <- response.Code == 200
	}

	timer := time.NewTimer(1 * time.Second)

	go serveAction(nil)

	select {
	case ok := <-success:
		assert.True(t, ok, "index endpoint did not answer 200")
	case <-timer.C:
		assert.Fail(t, "launchServer not called within 1 second of serve()")
	}
}
