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
	"net/url"

	"github.com/angelinath21/Reflectra/util"
)

// GeocodeContext is the context for a geocoding provider session
type GeocodeContext struct {
	BaseAPIURL string
	APIKey     string

	sessionID string
}

// AppName returns the name of the application
func (c *GeocodeContext) AppName() string {
	return "reflectra"
}

// SessionID returns a unique session ID
func (c *GeocodeContext) SessionID() string {
	if c.sessionID == "" {
		c.sessionID, _ = util.PsuUUID()
	}
	return c.sessionID
}

// LogRootDir returns the root directory for logging
func (c *GeocodeContext) LogRootDir() string {
	return ""
}

type geocodeLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type geocodeGeometry struct {
	Location geocodeLocation `json:"location"`
}

type geocodeResult struct {
	FormattedAddress string          `json:"formatted_address"`
	Geometry         geocodeGeometry `json:"geometry"`
}

type geocodeResponse struct {
	Results []geocodeResult `json:"results"`
	Status  string          `json:"status"`
}

// Geocode resolves a free-form address to a geographic point using the first
// result the provider returns
func (c *GeocodeContext) Geocode(address string) (latitude, longitude float64, err error) {
	requestURL := fmt.Sprintf("%s?address=%s&key=%s", c.BaseAPIURL, url.QueryEscape(address), c.APIKey)

	util.LogAudit(c, util.LogAuditInput{Actor: "anon user", Action: "GET", Actee: c.BaseAPIURL, Message: "Geocoding observer address", Severity: util.INFO})
	response, err := util.HTTPClient().Get(requestURL)
	if err != nil {
		return 0, 0, util.LogSimpleErr(c, "Failed to request geocoding.", err)
	}
	defer response.Body.Close()
	util.LogAudit(c, util.LogAuditInput{Actor: c.BaseAPIURL, Action: "response", Actee: "anon user", Message: "Geocoding response", Severity: util.INFO})

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return 0, 0, util.HTTPErr{Status: response.StatusCode, Message: "Geocoding provider returned " + response.Status}
	}

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		return 0, 0, util.LogSimpleErr(c, "Failed to read geocoding response.", err)
	}
	var parsed geocodeResponse
	if err = json.Unmarshal(payload, &parsed); err != nil {
		return 0, 0, util.LogSimpleErr(c, "Failed to parse geocoding response.", err)
	}
	if parsed.Status != "OK" || len(parsed.Results) == 0 {
		return 0, 0, fmt.Errorf("geocoding returned no results for %q (status %s)", address, parsed.Status)
	}

	location := parsed.Results[0].Geometry.Location
	return location.Lat, location.Lng, nil
}
