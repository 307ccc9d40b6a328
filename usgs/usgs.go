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

package usgs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/angelinath21/Reflectra/model"
	"github.com/angelinath21/Reflectra/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// Login opens an API session, storing the session key on the context
func Login(context *Context) error {
	body, err := doRequest("login-token", loginTokenRequest{Username: context.Username, Token: context.Token}, context)
	if err != nil {
		return util.LogSimpleErr(context, "Failed to log in to the provider API.", err)
	}

	var apiKey string
	if err = json.Unmarshal(body, &apiKey); err != nil {
		return util.LogSimpleErr(context, "Provider login returned an unexpected payload.", err)
	}
	context.apiKey = apiKey
	return nil
}

// Logout closes the API session
func Logout(context *Context) {
	if context.apiKey == "" {
		return
	}
	if _, err := doRequest("logout", struct{}{}, context); err != nil {
		util.LogAlert(context, "Failed to log out of the provider API: "+err.Error())
	}
	context.apiKey = ""
}

// SearchScenes returns the scenes matching the given filters, explicitly
// sorted newest-first so "most recent" semantics do not depend on the
// provider's default ordering
func SearchScenes(options SearchOptions, context *Context) ([]model.Scene, error) {
	req := sceneSearchRequest{
		DatasetName:   options.Dataset,
		MaxResults:    100,
		SortField:     "acquisitionDate",
		SortDirection: "DESC",
		SceneFilter: sceneFilter{
			SpatialFilter: &spatialFilter{
				FilterType: "mbr",
				LowerLeft:  coordinate{Latitude: options.Latitude, Longitude: options.Longitude},
				UpperRight: coordinate{Latitude: options.Latitude, Longitude: options.Longitude},
			},
		},
	}
	if options.StartDate != "" || options.EndDate != "" {
		req.SceneFilter.AcquisitionFilter = &acquisitionFilter{Start: options.StartDate, End: options.EndDate}
	}
	if options.MaxCloudCover > 0 {
		req.SceneFilter.CloudCoverFilter = &cloudCoverFilter{Max: options.MaxCloudCover, IncludeUnknown: false}
	}

	body, err := doRequest("scene-search", req, context)
	if err != nil {
		return nil, util.LogSimpleErr(context, fmt.Sprintf("Failed to search for scenes with options %#v.", options), err)
	}

	var results sceneSearchResults
	if err = json.Unmarshal(body, &results); err != nil {
		apiErr := util.Error{LogMsg: "Failed to unmarshal scene-search response: " + err.Error(),
			SimpleMsg: "The provider returned an unexpected response for this search. See log for further details.",
			Response:  string(body)}
		return nil, apiErr.Log(context, "")
	}

	scenes := make([]model.Scene, 0, len(results.Results))
	for _, result := range results.Results {
		scenes = append(scenes, sceneFromResult(context, result))
	}
	return scenes, nil
}

func sceneFromResult(context *Context, result sceneResult) model.Scene {
	scene := model.Scene{
		ProductID:  result.DisplayID,
		DisplayID:  result.DisplayID,
		EntityID:   result.EntityID,
		CloudCover: result.CloudCover,
	}

	acquired := result.TemporalCoverage.StartDate
	if acquired == "" {
		acquired = result.PublishDate
	}
	if parsed, err := model.ParseProviderTime(acquired); err == nil {
		scene.AcquiredDate = parsed
	} else {
		util.LogAlert(context, err.Error()+" :: in scene "+result.DisplayID)
	}

	if len(result.SpatialCoverage) > 0 {
		if geometry, err := geojson.Parse(result.SpatialCoverage); err == nil {
			scene.Geometry = geometry
		} else {
			util.LogAlert(context, "Failed to parse footprint geometry for scene "+result.DisplayID+": "+err.Error())
		}
	}
	return scene
}

// DownloadBundle downloads the scene's surface-reflectance product bundle
// into destDir, returning the path of the archive written
func DownloadBundle(scene model.Scene, destDir string, context *Context) (string, error) {
	optionsBody, err := doRequest("download-options",
		downloadOptionsRequest{DatasetName: "landsat_ot_c2_l2", EntityIds: scene.EntityID}, context)
	if err != nil {
		return "", err
	}

	var options []downloadOption
	if err = json.Unmarshal(optionsBody, &options); err != nil {
		return "", util.LogSimpleErr(context, "Failed to unmarshal download options for scene "+scene.ProductID+".", err)
	}

	bundle, err := pickBundleOption(options)
	if err != nil {
		return "", err
	}

	requestBody, err := doRequest("download-request",
		downloadRequest{Downloads: []downloadInput{{EntityID: scene.EntityID, ProductID: bundle.ID}}}, context)
	if err != nil {
		return "", err
	}

	var requested downloadRequestResults
	if err = json.Unmarshal(requestBody, &requested); err != nil {
		return "", util.LogSimpleErr(context, "Failed to unmarshal download request for scene "+scene.ProductID+".", err)
	}
	if len(requested.AvailableDownloads) == 0 {
		return "", fmt.Errorf("no available download for scene %s (still preparing: %d)",
			scene.ProductID, len(requested.PreparingDownloads))
	}

	destPath := filepath.Join(destDir, scene.ProductID+model.ArchiveSuffix)
	if err = streamToFile(requested.AvailableDownloads[0].URL, destPath, context); err != nil {
		return "", err
	}
	return destPath, nil
}

// pickBundleOption selects the available product bundle from the options the
// provider offers for a scene
func pickBundleOption(options []downloadOption) (*downloadOption, error) {
	for i, option := range options {
		if option.Available && strings.Contains(option.ProductName, "Bundle") {
			return &options[i], nil
		}
	}
	for i, option := range options {
		if option.Available {
			return &options[i], nil
		}
	}
	return nil, errors.New("no available download option")
}

func streamToFile(sourceURL, destPath string, context *Context) error {
	util.LogAudit(context, util.LogAuditInput{Actor: "usgs/streamToFile", Action: "GET", Actee: sourceURL, Message: "Downloading scene bundle", Severity: util.INFO})
	response, err := util.HTTPClient().Get(sourceURL)
	if err != nil {
		return util.LogSimpleErr(context, "Failed to fetch "+sourceURL+".", err)
	}
	defer response.Body.Close()
	if response.StatusCode != 200 {
		return util.HTTPErr{Status: response.StatusCode,
			Message: fmt.Sprintf("Bundle download returned %s for %s", response.Status, sourceURL)}
	}

	file, err := os.Create(destPath)
	if err != nil {
		return util.LogSimpleErr(context, "Failed to create "+destPath+".", err)
	}
	defer file.Close()
	if _, err = io.Copy(file, response.Body); err != nil {
		return util.LogSimpleErr(context, "Failed writing bundle to "+destPath+".", err)
	}
	return nil
}

// doRequest posts a JSON payload to a provider endpoint and unwraps the
// enveloped response, surfacing provider-level errors
func doRequest(endpoint string, input interface{}, context *Context) (json.RawMessage, error) {
	baseURL, err := url.Parse(context.BaseAPIURL)
	if err != nil {
		return nil, util.LogSimpleErr(context, fmt.Sprintf("Failed to parse %v into a URL.", context.BaseAPIURL), err)
	}
	relativeURL, _ := url.Parse(endpoint)
	requestURL := baseURL.ResolveReference(relativeURL).String()

	util.LogAudit(context, util.LogAuditInput{Actor: "usgs/doRequest", Action: "POST", Actee: requestURL, Message: "Requesting data from the imagery provider", Severity: util.INFO})

	var envelope apiResponse
	body, err := util.ReqByObjJSON("POST", requestURL, context.apiKey, input, &envelope)
	if err != nil {
		return nil, err
	}
	if envelope.ErrorCode != "" {
		apiErr := util.Error{LogMsg: fmt.Sprintf("Provider API error %s: %s", envelope.ErrorCode, envelope.ErrorMessage),
			SimpleMsg: "The imagery provider rejected this request. See log for further details.",
			Response:  string(body),
			URL:       requestURL}
		return nil, apiErr.Log(context, "")
	}
	return envelope.Data, nil
}
