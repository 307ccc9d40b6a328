package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBandSampleMarshalReflectance(t *testing.T) {
	payload, err := json.Marshal(ReflectanceSample(0.137))
	assert.NoError(t, err)
	assert.Equal(t, `{"Surface Reflectance":0.137}`, string(payload))
}

func TestBandSampleMarshalTemperatureOrder(t *testing.T) {
	payload, err := json.Marshal(TemperatureSample(295.97, 22.82))
	assert.NoError(t, err)
	// kelvin must precede celsius
	text := string(payload)
	assert.True(t, strings.Index(text, TemperatureKKey) < strings.Index(text, TemperatureCKey), text)
	assert.Contains(t, text, `"Surface Temperature (Celcius)":22.82`)
}

func TestBandSampleMarshalError(t *testing.T) {
	payload, err := json.Marshal(ErrorSample(errors.New("no such file")))
	assert.NoError(t, err)
	assert.Equal(t, `"Error: no such file"`, string(payload))
}

func TestBandSampleRoundTrip(t *testing.T) {
	original := TemperatureSample(300.5, 27.35)
	payload, err := json.Marshal(original)
	assert.NoError(t, err)

	var parsed BandSample
	assert.NoError(t, json.Unmarshal(payload, &parsed))
	assert.Equal(t, 300.5, *parsed.TemperatureK)
	assert.Equal(t, 27.35, *parsed.TemperatureC)
}

func TestSampleRecordMarshalBandOrder(t *testing.T) {
	record := SampleRecord{}
	record["B10"] = TemperatureSample(295.0, 21.85)
	record["B2"] = ReflectanceSample(0.1)
	record["B7"] = ReflectanceSample(0.2)
	record["B1"] = ReflectanceSample(0.3)

	payload, err := json.Marshal(record)
	assert.NoError(t, err)

	text := string(payload)
	b1 := strings.Index(text, `"B1"`)
	b2 := strings.Index(text, `"B2"`)
	b7 := strings.Index(text, `"B7"`)
	b10 := strings.Index(text, `"B10"`)
	assert.True(t, b1 < b2 && b2 < b7 && b7 < b10, text)
}
