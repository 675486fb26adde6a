package pose

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZDegreesToQuaternionUnitNorm(t *testing.T) {
	for angle := 0.0; angle < 360; angle += 7.5 {
		q := ZDegreesToQuaternion(angle)
		assert.InDelta(t, 1.0, q.Norm(), 1e-12, "angle %v", angle)
	}
}

func TestZDegreesToQuaternionZeroAngle(t *testing.T) {
	// Крен фиксирован на pi, поэтому нулевой угол дает чистый разворот [0,1,0,0].
	q := ZDegreesToQuaternion(0)
	require.InDelta(t, 0, q.W, 1e-15)
	require.InDelta(t, 1, q.X, 1e-15)
	require.InDelta(t, 0, q.Y, 1e-15)
	require.InDelta(t, 0, q.Z, 1e-15)
}

func TestZDegreesToQuaternionNinetyDegrees(t *testing.T) {
	q := ZDegreesToQuaternion(90)
	half := math.Sqrt2 / 2
	require.InDelta(t, 0, q.W, 1e-12)
	require.InDelta(t, half, q.X, 1e-12)
	require.InDelta(t, half, q.Y, 1e-12)
	require.InDelta(t, 0, q.Z, 1e-12)
}

func TestQuaternionIsZero(t *testing.T) {
	assert.True(t, Quaternion{}.IsZero())
	assert.False(t, DefaultOrientation().IsZero())
}

func TestDefaults(t *testing.T) {
	require.Equal(t, [4]float64{-1, 0, 0, 0}, DefaultConfiguration())
	for _, v := range DefaultExternalAxes() {
		require.Equal(t, 9e9, v)
	}
}
