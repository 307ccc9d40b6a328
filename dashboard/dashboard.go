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

// Package dashboard serves the processed scene results over HTTP: a scene
// index, scaled composite previews, an interactive pixel picker and a
// downloadable artifact bundle per scene.
package dashboard

import (
	"encoding/json"
	"fmt"
	"html/template"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/angelinath21/Reflectra/model"
	"github.com/angelinath21/Reflectra/raster"
	"github.com/angelinath21/Reflectra/util"
)

// Handlers carries the state the dashboard endpoints share
type Handlers struct {
	RootDirectory string
	LogContext    util.LogContext
}

// NewRouter builds the dashboard routes
func NewRouter(rootDirectory string, logContext util.LogContext) *mux.Router {
	h := &Handlers{RootDirectory: rootDirectory, LogContext: logContext}

	router := mux.NewRouter()
	router.HandleFunc("/", h.Index)
	router.HandleFunc("/scene/{scene}", h.Scene)
	router.HandleFunc("/scene/{scene}/preview.png", h.Preview)
	router.HandleFunc("/scene/{scene}/pixel", h.Pixel)
	router.HandleFunc("/scene/{scene}/pixel.png", h.PixelImage)
	router.HandleFunc("/scene/{scene}/bundle.zip", h.Bundle)
	return router
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>Reflectra</title></head>
<body>
<h1>Processed scenes</h1>
{{if .}}
<ul>
{{range .}}<li><a href="/scene/{{.}}">{{.}}</a></li>
{{end}}</ul>
{{else}}<p>No processed scenes yet. Run the pipeline first.</p>{{end}}
</body>
</html>
`))

var sceneTemplate = template.Must(template.New("scene").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Scene}} - Reflectra</title></head>
<body>
<h1>{{.Scene}}</h1>
<p><a href="/">Back</a> | <a href="/scene/{{.Scene}}/bundle.zip">Download bundle</a></p>
<img id="preview" src="/scene/{{.Scene}}/preview.png" style="cursor: crosshair">
<h2>Pixel picker</h2>
<div id="picker">Click the image to inspect a pixel.</div>
<script>
var ratio = {{.Ratio}};
document.getElementById("preview").addEventListener("click", function (event) {
	var bounds = event.target.getBoundingClientRect();
	var x = Math.floor((event.clientX - bounds.left) / ratio);
	var y = Math.floor((event.clientY - bounds.top) / ratio);
	fetch("/scene/{{.Scene}}/pixel?x=" + x + "&y=" + y)
		.then(function (response) { return response.json(); })
		.then(function (info) {
			document.getElementById("picker").innerHTML =
				"<p>Pixel (" + info.x + ", " + info.y + "): rgb(" +
				info.center.r + ", " + info.center.g + ", " + info.center.b + ")</p>" +
				"<img src=\"/scene/{{.Scene}}/pixel.png?x=" + x + "&y=" + y + "\">";
		});
});
</script>
</body>
</html>
`))

// Index lists the scenes that have results
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	scenes, err := h.listScenes()
	if err != nil {
		util.HTTPError(r, w, h.LogContext, "Failed to list scenes.", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	indexTemplate.Execute(w, scenes)
}

// Scene renders the per-scene picker page
func (h *Handlers) Scene(w http.ResponseWriter, r *http.Request) {
	sceneName := mux.Vars(r)["scene"]
	img, err := h.loadComposite(sceneName)
	if err != nil {
		util.HTTPError(r, w, h.LogContext, "No composite available for "+sceneName+".", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	sceneTemplate.Execute(w, struct {
		Scene string
		Ratio float64
	}{sceneName, displayRatio(img.Width)})
}

// Preview serves the composite scaled for display
func (h *Handlers) Preview(w http.ResponseWriter, r *http.Request) {
	sceneName := mux.Vars(r)["scene"]
	img, err := h.loadComposite(sceneName)
	if err != nil {
		util.HTTPError(r, w, h.LogContext, "No composite available for "+sceneName+".", http.StatusNotFound)
		return
	}

	scaled := scaleRGB(img, displayRatio(img.Width))
	w.Header().Set("Content-Type", "image/png")
	if err = png.Encode(w, scaled); err != nil {
		util.LogAlert(h.LogContext, fmt.Sprintf("Failed to encode preview for %s: %v", sceneName, err))
	}
}

// Pixel returns the clicked pixel and its 3x3 neighborhood as JSON
func (h *Handlers) Pixel(w http.ResponseWriter, r *http.Request) {
	sceneName := mux.Vars(r)["scene"]
	x, y, err := pixelCoordinates(r)
	if err != nil {
		util.HTTPError(r, w, h.LogContext, err.Error(), http.StatusBadRequest)
		return
	}
	img, err := h.loadComposite(sceneName)
	if err != nil {
		util.HTTPError(r, w, h.LogContext, "No composite available for "+sceneName+".", http.StatusNotFound)
		return
	}
	if x < 0 || y < 0 || x >= img.Width || y >= img.Height {
		util.HTTPError(r, w, h.LogContext, "Pixel outside image.", http.StatusBadRequest)
		return
	}

	grid := extractGrid(img, x, y)
	info := pixelInfo{Scene: sceneName, X: x, Y: y, Center: grid[1][1], Grid: grid}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(info)
}

// PixelImage renders the 3x3 neighborhood as a block image
func (h *Handlers) PixelImage(w http.ResponseWriter, r *http.Request) {
	sceneName := mux.Vars(r)["scene"]
	x, y, err := pixelCoordinates(r)
	if err != nil {
		util.HTTPError(r, w, h.LogContext, err.Error(), http.StatusBadRequest)
		return
	}
	img, err := h.loadComposite(sceneName)
	if err != nil {
		util.HTTPError(r, w, h.LogContext, "No composite available for "+sceneName+".", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err = png.Encode(w, renderGrid(extractGrid(img, x, y))); err != nil {
		util.LogAlert(h.LogContext, fmt.Sprintf("Failed to encode pixel grid for %s: %v", sceneName, err))
	}
}

// Bundle streams a zip of the scene's artifacts, refusing until all of them
// exist
func (h *Handlers) Bundle(w http.ResponseWriter, r *http.Request) {
	sceneName := mux.Vars(r)["scene"]
	resultDir := filepath.Join(h.RootDirectory, model.ResultsDir, sceneName)
	if missing := missingArtifacts(resultDir, sceneName); len(missing) > 0 {
		util.HTTPError(r, w, h.LogContext,
			"Scene is not fully processed, missing: "+strings.Join(missing, ", "),
			http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+sceneName+`.zip"`)
	if err := writeBundle(w, resultDir, sceneName); err != nil {
		util.LogAlert(h.LogContext, fmt.Sprintf("Failed to stream bundle for %s: %v", sceneName, err))
	}
}

func (h *Handlers) listScenes() ([]string, error) {
	resultsDir := filepath.Join(h.RootDirectory, model.ResultsDir)
	entries, err := os.ReadDir(resultsDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var scenes []string
	for _, entry := range entries {
		if entry.IsDir() {
			scenes = append(scenes, entry.Name())
		}
	}
	return scenes, nil
}

func (h *Handlers) loadComposite(sceneName string) (*raster.RGB, error) {
	compositePath := filepath.Join(h.RootDirectory, model.ResultsDir, sceneName, model.CompositeFileName(sceneName))
	if _, err := os.Stat(compositePath); err != nil {
		return nil, err
	}
	return raster.ReadRGB(compositePath)
}

func pixelCoordinates(r *http.Request) (x, y int, err error) {
	x, err = strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid x coordinate")
	}
	y, err = strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid y coordinate")
	}
	return x, y, nil
}
