package model

// ImageAttributes is the fixed set of acquisition fields projected from a
// scene's metadata document. Values are kept as-parsed (the provider mixes
// strings and numbers); fields absent from the source document stay nil and
// render as JSON null rather than being dropped.
type ImageAttributes struct {
	SpacecraftID     interface{} `json:"spacecraft_id"`
	SensorID         interface{} `json:"sensor_id"`
	StationID        interface{} `json:"station_id"`
	DateAcquired     interface{} `json:"date_acquired"`
	TimeAcquired     interface{} `json:"time_acquired"`
	WRSType          interface{} `json:"wrs_type"`
	WRSPath          interface{} `json:"wrs_path"`
	WRSRow           interface{} `json:"wrs_row"`
	ImageQuality     interface{} `json:"image_quality"`
	CloudCover       interface{} `json:"cloud_cover"`
	CloudCoverLand   interface{} `json:"cloud_cover_land"`
	SunAzimuth       interface{} `json:"sun_azimuth"`
	SunElevation     interface{} `json:"sun_elevation"`
	EarthSunDistance interface{} `json:"earth_sun_distance"`
}

// Coordinates maps corner keys (UL_lat, UL_lon, UR_lat, ...) to parsed
// geographic values
type Coordinates map[string]float64

// MetadataSummary is the normalized per-scene metadata document written by
// the extraction stage and consumed by reporting
type MetadataSummary struct {
	ImageAttributes ImageAttributes `json:"image_attributes"`
	Coordinates     Coordinates     `json:"coordinates"`
}
