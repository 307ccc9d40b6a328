package usgs

import (
	"encoding/json"

	"github.com/angelinath21/Reflectra/util"
)

// Context is the context for a provider API operation
type Context struct {
	BaseAPIURL string
	Username   string
	Token      string
	apiKey     string
	sessionID  string
}

// AppName returns the application name
func (c *Context) AppName() string {
	return "reflectra"
}

// SessionID returns a Session ID, creating one if needed
func (c *Context) SessionID() string {
	if c.sessionID == "" {
		c.sessionID, _ = util.PsuUUID()
	}
	return c.sessionID
}

// LogRootDir returns an empty string
func (c *Context) LogRootDir() string {
	return ""
}

// SearchOptions are the filter options for a scene-search request
type SearchOptions struct {
	Dataset       string
	Latitude      float64
	Longitude     float64
	StartDate     string
	EndDate       string
	MaxCloudCover int
}

type apiResponse struct {
	Data         json.RawMessage `json:"data"`
	ErrorCode    string          `json:"errorCode"`
	ErrorMessage string          `json:"errorMessage"`
}

type loginTokenRequest struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

type coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type spatialFilter struct {
	FilterType string     `json:"filterType"`
	LowerLeft  coordinate `json:"lowerLeft"`
	UpperRight coordinate `json:"upperRight"`
}

type acquisitionFilter struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type cloudCoverFilter struct {
	Max            int  `json:"max"`
	IncludeUnknown bool `json:"includeUnknown"`
}

type sceneFilter struct {
	SpatialFilter     *spatialFilter     `json:"spatialFilter,omitempty"`
	AcquisitionFilter *acquisitionFilter `json:"acquisitionFilter,omitempty"`
	CloudCoverFilter  *cloudCoverFilter  `json:"cloudCoverFilter,omitempty"`
}

type sceneSearchRequest struct {
	DatasetName   string      `json:"datasetName"`
	MaxResults    int         `json:"maxResults"`
	SceneFilter   sceneFilter `json:"sceneFilter"`
	SortField     string      `json:"sortField"`
	SortDirection string      `json:"sortDirection"`
}

type temporalCoverage struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type sceneResult struct {
	EntityID         string           `json:"entityId"`
	DisplayID        string           `json:"displayId"`
	CloudCover       float64          `json:"cloudCover"`
	PublishDate      string           `json:"publishDate"`
	TemporalCoverage temporalCoverage `json:"temporalCoverage"`
	SpatialCoverage  json.RawMessage  `json:"spatialCoverage"`
}

type sceneSearchResults struct {
	Results   []sceneResult `json:"results"`
	TotalHits int           `json:"totalHits"`
}

type downloadOptionsRequest struct {
	DatasetName string `json:"datasetName"`
	EntityIds   string `json:"entityIds"`
}

type downloadOption struct {
	EntityID       string `json:"entityId"`
	ID             string `json:"id"`
	ProductName    string `json:"productName"`
	Available      bool   `json:"available"`
	DownloadSystem string `json:"downloadSystem"`
}

type downloadInput struct {
	EntityID  string `json:"entityId"`
	ProductID string `json:"productId"`
}

type downloadRequest struct {
	Downloads []downloadInput `json:"downloads"`
}

type availableDownload struct {
	EntityID string `json:"entityId"`
	URL      string `json:"url"`
}

type downloadRequestResults struct {
	AvailableDownloads []availableDownload `json:"availableDownloads"`
	PreparingDownloads []availableDownload `json:"preparingDownloads"`
}
