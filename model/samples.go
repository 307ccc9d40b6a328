package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// JSON keys of the sample record. "Celcius" is misspelled in the historical
// output format and is preserved for bit-compatible documents.
const (
	ReflectanceKey  = "Surface Reflectance"
	TemperatureKKey = "Surface Temperature (K)"
	TemperatureCKey = "Surface Temperature (Celcius)"
)

// BandSample is one band's sampled value: a surface reflectance, a surface
// temperature pair, or an error placeholder when the band could not be read
type BandSample struct {
	Reflectance  *float64
	TemperatureK *float64
	TemperatureC *float64
	Err          string
}

// ReflectanceSample builds a reflectance-valued sample
func ReflectanceSample(value float64) BandSample {
	return BandSample{Reflectance: &value}
}

// TemperatureSample builds a temperature-valued sample
func TemperatureSample(kelvin, celsius float64) BandSample {
	return BandSample{TemperatureK: &kelvin, TemperatureC: &celsius}
}

// ErrorSample builds an error-placeholder sample
func ErrorSample(err error) BandSample {
	return BandSample{Err: err.Error()}
}

// MarshalJSON implements the sample union encoding: an error string or a
// single-purpose value object
func (s BandSample) MarshalJSON() ([]byte, error) {
	switch {
	case s.Err != "":
		return json.Marshal("Error: " + s.Err)
	case s.TemperatureK != nil:
		// Kelvin before Celsius, as in the historical documents
		var buf bytes.Buffer
		buf.WriteByte('{')
		writeJSONPair(&buf, TemperatureKKey, *s.TemperatureK)
		buf.WriteByte(',')
		writeJSONPair(&buf, TemperatureCKey, *s.TemperatureC)
		buf.WriteByte('}')
		return buf.Bytes(), nil
	case s.Reflectance != nil:
		var buf bytes.Buffer
		buf.WriteByte('{')
		writeJSONPair(&buf, ReflectanceKey, *s.Reflectance)
		buf.WriteByte('}')
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("band sample has no value")
}

func writeJSONPair(buf *bytes.Buffer, key string, value float64) {
	keyJSON, _ := json.Marshal(key)
	valueJSON, _ := json.Marshal(value)
	buf.Write(keyJSON)
	buf.WriteByte(':')
	buf.Write(valueJSON)
}

// UnmarshalJSON accepts either encoding of the union
func (s *BandSample) UnmarshalJSON(data []byte) error {
	var errStr string
	if err := json.Unmarshal(data, &errStr); err == nil {
		s.Err = errStr
		return nil
	}
	values := map[string]float64{}
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	if v, ok := values[ReflectanceKey]; ok {
		s.Reflectance = &v
	}
	if v, ok := values[TemperatureKKey]; ok {
		s.TemperatureK = &v
	}
	if v, ok := values[TemperatureCKey]; ok {
		s.TemperatureC = &v
	}
	return nil
}

// SampleRecord maps band labels to sampled values for one scene
type SampleRecord map[string]BandSample

// MarshalJSON writes bands in the fixed product order rather than Go's
// sorted map order, so B10 follows B7 as in the historical documents
func (r SampleRecord) MarshalJSON() ([]byte, error) {
	ordered := make([]string, 0, len(r))
	for _, band := range SampleBandOrder {
		if _, ok := r[band]; ok {
			ordered = append(ordered, band)
		}
	}
	known := len(ordered)
	for band := range r {
		if !bandInOrder(band) {
			ordered = append(ordered, band)
		}
	}
	sort.Strings(ordered[known:])

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, band := range ordered {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(band)
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(r[band])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func bandInOrder(band string) bool {
	for _, known := range SampleBandOrder {
		if known == band {
			return true
		}
	}
	return false
}
