package rws

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTCPInfo(t *testing.T) {
	f := newFakeController(t)
	a := newTestAdapter(t, f)

	info, err := a.TCPInfo(DefaultTool, DefaultWObj, DefaultFrame)
	require.NoError(t, err)
	assert.Equal(t, 100.0, info.Position.X)
	assert.Equal(t, 200.0, info.Position.Y)
	assert.Equal(t, 300.0, info.Position.Z)
	assert.Equal(t, 1.0, info.Orientation.X)
	assert.Equal(t, []float64{-1, 0, 0, 0}, info.Configuration)
}

func TestTCPInfoMissingFieldFailsClosed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/rw/panel/opmode" {
			io.WriteString(w, stateXML(spanItem("pnl-opmode", "opmode", "AUTO")))
			return
		}
		// Ответ без ориентации: разбор обязан сообщить об ошибке, а не
		// молча вернуть частичный результат.
		io.WriteString(w, stateXML(
			spanItem("ms-robtargets", "x", "100"),
			spanItem("ms-robtargets", "y", "200"),
			spanItem("ms-robtargets", "z", "300")))
	}))
	defer server.Close()

	a, err := NewRWSAdapter(server.URL, "Default User", "robotics", testLogger())
	require.NoError(t, err)

	_, err = a.TCPInfo(DefaultTool, DefaultWObj, DefaultFrame)
	require.Error(t, err)
	assert.Equal(t, KindParse, KindOf(err))
}

func TestJointPositions(t *testing.T) {
	f := newFakeController(t)
	a := newTestAdapter(t, f)

	joints, err := a.JointPositions(6)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30, 40, 50, 60}, joints)
}

func TestGripperPosition(t *testing.T) {
	f := newFakeController(t)
	a := newTestAdapter(t, f)

	trans, rot, err := a.GripperPosition()
	require.NoError(t, err)
	assert.Equal(t, 1.5, trans.X)
	assert.Equal(t, 330.75, trans.Z)
	assert.Equal(t, 1.0, rot.X)

	height, err := a.GripperHeight()
	require.NoError(t, err)
	assert.Equal(t, 330.75, height)
}

func TestParseEmbeddedStateMalformed(t *testing.T) {
	_, err := parseEmbeddedState("test", []byte(`{"_embedded":{"_state":[]}}`))
	require.Error(t, err)
	assert.Equal(t, KindParse, KindOf(err))

	_, err = parseEmbeddedState("test", []byte(`not json`))
	require.Error(t, err)
	assert.Equal(t, KindParse, KindOf(err))
}

func TestParseStateDocumentMalformed(t *testing.T) {
	_, err := parseStateDocument("test", []byte(`<html><body><div/></body></html>`))
	require.Error(t, err)
	assert.Equal(t, KindParse, KindOf(err))

	_, err = parseStateDocument("test", []byte(`plain text`))
	require.Error(t, err)
	assert.Equal(t, KindParse, KindOf(err))
}
