package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultHTTPTimeout = 60 * time.Second

var httpClient = &http.Client{Timeout: defaultHTTPTimeout}

// HTTPClient returns the shared HTTP client. All outbound calls go through
// this client so that every external request carries a timeout.
func HTTPClient() *http.Client {
	return httpClient
}

// ReqByObjJSON performs an HTTP request with a JSON-marshaled input object,
// unmarshaling the JSON response into output. Either object may be nil.
// Returns the raw response body for error reporting.
func ReqByObjJSON(method, url, authKey string, input, output interface{}) ([]byte, error) {
	var bodyReader io.Reader
	if input != nil {
		requestBody, err := json.Marshal(input)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewBuffer(requestBody)
	}

	request, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")
	if authKey != "" {
		request.Header.Set("X-Auth-Token", authKey)
	}

	response, err := HTTPClient().Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	responseBody, _ := io.ReadAll(response.Body)
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return responseBody, HTTPErr{Status: response.StatusCode,
			Message: fmt.Sprintf("%s %s returned %s", method, url, response.Status)}
	}

	if output != nil {
		if err = json.Unmarshal(responseBody, output); err != nil {
			return responseBody, err
		}
	}
	return responseBody, nil
}
