package rws

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iwtcode/rwsAdapter/models"
	"github.com/iwtcode/rwsAdapter/pose"
)

func TestEncodeArray(t *testing.T) {
	assert.Equal(t, "[1,2.5,-3]", EncodeArray([]float64{1, 2.5, -3}))
	assert.Equal(t, "[]", EncodeArray(nil))
}

func TestEncodeRobTarget(t *testing.T) {
	rt := models.NewRobTarget(r3.Vector{X: 100, Y: 200, Z: 300}, pose.DefaultOrientation())
	assert.Equal(t,
		"[[100,200,300],[0,1,0,0],[-1,0,0,0],[9E+09,9E+09,9E+09,9E+09,9E+09,9E+09]]",
		EncodeRobTarget(rt))
}

func TestEncodeJointTarget(t *testing.T) {
	assert.Equal(t,
		"[[10,20,30,40,50,60],[9E+09,9E+09,9E+09,9E+09,9E+09,9E+09]]",
		EncodeJointTarget([]float64{10, 20, 30, 40, 50, 60}))
}

func TestEncodeSpeedData(t *testing.T) {
	assert.Equal(t, "[200,500,5000,1000]", EncodeSpeedData(200))
	assert.Equal(t, "[12.5,500,5000,1000]", EncodeSpeedData(12.5))
}

func TestEncodeZoneDataTable(t *testing.T) {
	cases := map[string]string{
		ZoneFine: "[TRUE,0,0,0,0,0,0]",
		"0":      "[FALSE,0.3,0.3,0.3,0.03,0.3,0.03]",
		"1":      "[FALSE,1,1,1,0.1,1,0.1]",
		"5":      "[FALSE,5,8.0,8.0,0.8,8.0,0.8]",
		"10":     "[FALSE,10,15.0,15.0,1.5,15.0,1.5]",
		"200":    "[FALSE,200,300.0,300.0,30.0,300.0,30.0]",
	}
	for in, want := range cases {
		got, err := EncodeZoneData(in)
		require.NoError(t, err, "zonedata %q", in)
		assert.Equal(t, want, got, "zonedata %q", in)
	}
}

func TestEncodeZoneDataRejectsUnknown(t *testing.T) {
	for _, in := range []string{"7", "-10", "coarse", ""} {
		_, err := EncodeZoneData(in)
		require.Error(t, err, "zonedata %q", in)
		assert.Equal(t, KindInvalidInput, KindOf(err))
	}
}

func TestDecodeRobTarget(t *testing.T) {
	rt, err := DecodeRobTarget("[[1,2,3],[0,1,0,0],[-1,0,0,0],[9E+09,9E+09,9E+09,9E+09,9E+09,9E+09]]")
	require.NoError(t, err)
	assert.Equal(t, r3.Vector{X: 1, Y: 2, Z: 3}, rt.Trans)
	assert.Equal(t, pose.Quaternion{W: 0, X: 1, Y: 0, Z: 0}, rt.Rot)
	assert.Equal(t, [4]float64{-1, 0, 0, 0}, rt.Conf)
}

func TestDecodeRobTargetPartial(t *testing.T) {
	// Контроллер может отдать только положение и ориентацию; остальные поля
	// заполняются стандартными значениями.
	rt, err := DecodeRobTarget("[[-0.5,10,2.25],[0,0,0,0]]")
	require.NoError(t, err)
	assert.Equal(t, r3.Vector{X: -0.5, Y: 10, Z: 2.25}, rt.Trans)
	assert.True(t, rt.Rot.IsZero())
	assert.Equal(t, pose.DefaultConfiguration(), rt.Conf)
	assert.Equal(t, pose.DefaultExternalAxes(), rt.ExtAx)
}

func TestDecodeRobTargetRoundTrip(t *testing.T) {
	rt := models.NewRobTarget(
		r3.Vector{X: 100.5, Y: -200, Z: 300},
		pose.Quaternion{W: 0, X: 0.7071, Y: 0.7071, Z: 0},
	)
	encoded := EncodeRobTarget(rt)
	decoded, err := DecodeRobTarget(encoded)
	require.NoError(t, err)
	assert.Equal(t, encoded, EncodeRobTarget(decoded))
}

func TestDecodeRobTargetMalformed(t *testing.T) {
	cases := []string{
		"",
		"42",
		"[[1,2],[0,1,0,0]]",
		"[[1,2,3],[0,1,0]]",
		"[[1,2,3],[0,1,0,0]",
		"[[1,2,x],[0,1,0,0]]",
		"[[1,2,3],[0,1,0,0]] trailing",
	}
	for _, in := range cases {
		_, err := DecodeRobTarget(in)
		require.Error(t, err, "input %q", in)
		assert.Equal(t, KindParse, KindOf(err), "input %q", in)
	}
}

func TestParseListSpacesAndBooleans(t *testing.T) {
	list, err := parseList("test", "[TRUE, 0, 0.3]")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, true, list[0])
	assert.Equal(t, 0.0, list[1])
	assert.Equal(t, 0.3, list[2])
}
