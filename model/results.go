package model

import "time"

// Scene is one provider search result: a single imaging pass over a
// footprint, identified by its product id. Scenes are immutable once
// downloaded; every downstream stage keys its artifacts by the scene
// directory name.
type Scene struct {
	ProductID    string
	EntityID     string
	DisplayID    string
	AcquiredDate time.Time
	CloudCover   float64
	Geometry     interface{}
}

// CalibrationRecord is the min/max reflectance calibration sub-record read
// back from a downloaded scene's metadata document
type CalibrationRecord map[string]interface{}

// AcquisitionStatus tags the outcome of an acquisition run
type AcquisitionStatus int

const (
	// AcquisitionFound means at least one scene was processed and a
	// calibration record was recovered
	AcquisitionFound AcquisitionStatus = iota
	// AcquisitionNotFound means the search matched no scenes
	AcquisitionNotFound
)

// AcquisitionOutcome is the tagged result of an acquisition run, replacing
// the historical "record or sentinel string" return
type AcquisitionOutcome struct {
	Status      AcquisitionStatus
	Calibration CalibrationRecord
	Scenes      []Scene
	SceneErrors map[string]error
}

// Found builds a successful outcome
func Found(calibration CalibrationRecord, scenes []Scene, sceneErrors map[string]error) AcquisitionOutcome {
	return AcquisitionOutcome{
		Status:      AcquisitionFound,
		Calibration: calibration,
		Scenes:      scenes,
		SceneErrors: sceneErrors,
	}
}

// NotFound builds an empty outcome
func NotFound() AcquisitionOutcome {
	return AcquisitionOutcome{Status: AcquisitionNotFound, SceneErrors: map[string]error{}}
}
