package geodesic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEllipsoidValidation(t *testing.T) {
	cases := []struct {
		name string
		a, f float64
	}{
		{"zero radius", 0, 0},
		{"negative radius", -6378137, 0},
		{"infinite radius", math.Inf(1), 0},
		{"flattening at unity", 6378137, 1},
		{"flattening past unity", 6378137, 1.5},
		{"flattening at negative unity", 6378137, -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewEllipsoid(c.a, c.f)
			require.ErrorIs(t, err, ErrInvalidEllipsoid)
		})
	}
}

func TestNewEllipsoidAccepted(t *testing.T) {
	// A prolate ellipsoid (negative flattening) is a legal, if unusual,
	// shape and must construct cleanly.
	e, err := NewEllipsoid(6378137, -0.01)
	require.NoError(t, err)
	assert.Equal(t, -0.01, e.Flattening())
	assert.Greater(t, e.PolarRadius(), e.EquatorialRadius())
}

func TestWGS84Constants(t *testing.T) {
	assert.Equal(t, 6378137.0, WGS84.EquatorialRadius())
	assert.InDelta(t, 1/298.257223563, WGS84.Flattening(), 1e-15)
	assert.InDelta(t, 298.257223563, WGS84.InverseFlattening(), 1e-9)
	assert.Less(t, WGS84.PolarRadius(), WGS84.EquatorialRadius())
}

func TestSphereAuthalicRadius(t *testing.T) {
	// For a true sphere (f=0), the authalic radius must equal the
	// (only) radius.
	sphere, err := NewEllipsoid(1000, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1000, sphere.AuthalicRadius(), 1e-9)
	assert.InDelta(t, 1000*1000, sphere.AuthalicRadiusSquared(), 1e-6)
}

func TestInverseFlatteningOfSphere(t *testing.T) {
	sphere, err := NewEllipsoid(1000, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sphere.InverseFlattening())
}
