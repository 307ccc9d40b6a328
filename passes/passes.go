// Copyright 2024, the Reflectra authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package passes

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/angelinath21/Reflectra/util"
)

// Context is the context for a pass prediction provider session
type Context struct {
	BaseAPIURL string
	APIKey     string

	sessionID string
}

// AppName returns the name of the application
func (c *Context) AppName() string {
	return "reflectra"
}

// SessionID returns a unique session ID
func (c *Context) SessionID() string {
	if c.sessionID == "" {
		c.sessionID, _ = util.PsuUUID()
	}
	return c.sessionID
}

// LogRootDir returns the root directory for logging
func (c *Context) LogRootDir() string {
	return ""
}

// RadioPass is one predicted pass of the tracked satellite over the observer
type RadioPass struct {
	StartAz        float64 `json:"startAz"`
	StartAzCompass string  `json:"startAzCompass"`
	StartUTC       int64   `json:"startUTC"`
	MaxAz          float64 `json:"maxAz"`
	MaxAzCompass   string  `json:"maxAzCompass"`
	MaxEl          float64 `json:"maxEl"`
	MaxUTC         int64   `json:"maxUTC"`
	EndAz          float64 `json:"endAz"`
	EndAzCompass   string  `json:"endAzCompass"`
	EndUTC         int64   `json:"endUTC"`
}

type passInfo struct {
	SatID       int    `json:"satid"`
	SatName     string `json:"satname"`
	PassesCount int    `json:"passescount"`
}

type passResponse struct {
	Info   passInfo    `json:"info"`
	Passes []RadioPass `json:"passes"`
}

// minimum pass elevation in degrees accepted by the prediction request
const minElevation = 40

// RadioPasses requests upcoming passes for a satellite over the given
// observer position
func (c *Context) RadioPasses(noradID int, latitude, longitude, altitude float64, days int) ([]RadioPass, error) {
	requestURL := fmt.Sprintf("%s%d/%f/%f/%f/%d/%d/&apiKey=%s",
		c.BaseAPIURL, noradID, latitude, longitude, altitude, days, minElevation, c.APIKey)

	util.LogAudit(c, util.LogAuditInput{Actor: "anon user", Action: "GET", Actee: requestURL, Message: "Requesting radio passes", Severity: util.INFO})
	response, err := util.HTTPClient().Get(requestURL)
	if err != nil {
		return nil, util.LogSimpleErr(c, "Failed to request radio passes.", err)
	}
	defer response.Body.Close()
	util.LogAudit(c, util.LogAuditInput{Actor: requestURL, Action: "response", Actee: "anon user", Message: "Radio passes response", Severity: util.INFO})

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, util.HTTPErr{Status: response.StatusCode, Message: "Pass prediction provider returned " + response.Status}
	}

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, util.LogSimpleErr(c, "Failed to read radio passes response.", err)
	}
	var parsed passResponse
	if err = json.Unmarshal(payload, &parsed); err != nil {
		return nil, util.LogSimpleErr(c, "Failed to parse radio passes response.", err)
	}
	return parsed.Passes, nil
}
