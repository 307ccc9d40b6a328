package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseProviderTimeFormats(t *testing.T) {
	inputs := []string{
		"2023-09-14 23:56:02",
		"2023-09-14T23:56:02Z",
		"2023-09-14T23:56:02",
	}
	for _, input := range inputs {
		parsed, err := ParseProviderTime(input)
		assert.NoError(t, err, input)
		assert.Equal(t, time.Date(2023, 9, 14, 23, 56, 2, 0, time.UTC), parsed, input)
	}

	dateOnly, err := ParseProviderTime("2023-09-14")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2023, 9, 14, 0, 0, 0, 0, time.UTC), dateOnly)
}

func TestParseProviderTimeRejectsGarbage(t *testing.T) {
	_, err := ParseProviderTime("14/09/2023")
	assert.Error(t, err)
}
