package sampling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDNToReflectance(t *testing.T) {
	// DN 7273 falls just inside the valid surface reflectance range
	assert.InDelta(t, 0.0000075, DNToReflectance(7273), 1e-6)
	assert.InDelta(t, -0.2, DNToReflectance(0), 1e-9)
	assert.InDelta(t, 1.602175, DNToReflectance(65535), 1e-6)
}

func TestDNToTemperature(t *testing.T) {
	kelvin := DNToTemperatureK(43000)
	assert.InDelta(t, 295.97486, kelvin, 1e-5)
	assert.InDelta(t, 22.82486, KelvinToCelsius(kelvin), 1e-5)
	assert.InDelta(t, 149.0, DNToTemperatureK(0), 1e-9)
}

func TestKelvinToCelsiusAtFreezing(t *testing.T) {
	celsius := KelvinToCelsius(273.15)
	assert.True(t, math.Abs(celsius) < 1e-12)
}
