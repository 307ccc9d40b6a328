package model

import (
	"fmt"
	"time"
)

// The provider's endpoints return datetime data in several formats depending
// on the field (acquisition vs. publication), so parsing is lenient.

// StandardDateLayout is the format used for provider date-range filters
const StandardDateLayout = "2006-01-02"

var providerTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseProviderTime is a drop-in replacement for time.Parse, matching
// against the provider's possible time formats
func ParseProviderTime(providerTime string) (time.Time, error) {
	for _, layout := range providerTimeLayouts {
		if output, err := time.Parse(layout, providerTime); err == nil {
			return output, nil
		}
	}
	return time.Time{}, fmt.Errorf("Date could not be parsed by any expected time format: `%s`", providerTime)
}
