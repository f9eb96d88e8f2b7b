package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	tests := []struct {
		name      string
		lat, lon  float64
		expectErr bool
	}{
		{"valid point", 40.7128, -74.0060, false},
		{"equator origin", 0, 0, false},
		{"north pole", 90, 0, false},
		{"latitude too high", 90.01, 0, true},
		{"latitude too low", -91, 0, true},
		{"longitude too high", 0, 180.5, true},
		{"longitude too low", 0, -181, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewGeoPointFromFloat(tt.lat, tt.lon)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, p.IsAvailable())
		})
	}
}

func TestUnavailableGeoPoint(t *testing.T) {
	p := UnavailableGeoPoint()
	assert.False(t, p.IsAvailable())
	assert.Equal(t, "unavailable", p.String())

	// A valid zero-zero fix is distinct from "unavailable"
	origin, err := NewGeoPointFromFloat(0, 0)
	require.NoError(t, err)
	assert.True(t, origin.IsAvailable())
}

func TestSignature(t *testing.T) {
	assert.True(t, EmptySignature().IsEmpty())
	assert.True(t, NewSignature("   ").IsEmpty())

	sig := NewSignature("data:image/png;base64,iVBOR")
	assert.False(t, sig.IsEmpty())
	assert.Equal(t, "data:image/png;base64,iVBOR", sig.Data())
}
