package rws

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iwtcode/rwsAdapter/models"
)

func TestExecutionState(t *testing.T) {
	f := newFakeController(t)
	f.execState = "running"
	a := newTestAdapter(t, f)

	state, err := a.ExecutionState()
	require.NoError(t, err)
	assert.Equal(t, models.ExecutionRunning, state)

	running, err := a.IsRunning()
	require.NoError(t, err)
	assert.True(t, running)
}

func TestOperationModeAndControllerState(t *testing.T) {
	f := newFakeController(t)
	f.opmode = "MANR"
	f.ctrlstate = "motoroff"
	a := newTestAdapter(t, f)

	opmode, err := a.OperationMode()
	require.NoError(t, err)
	assert.Equal(t, models.OperationModeManual, opmode)

	ctrlstate, err := a.ControllerState()
	require.NoError(t, err)
	assert.Equal(t, models.ControllerMotorsOff, ctrlstate)
}

func TestStartFailureIncludesPanelDiagnostics(t *testing.T) {
	f := newFakeController(t)
	f.startStatus = http.StatusForbidden
	f.opmode = "MANR"
	f.ctrlstate = "motoroff"
	a := newTestAdapter(t, f)

	err := a.Start(false)
	require.Error(t, err)
	assert.Equal(t, KindPrecondition, KindOf(err))
	// Сообщение об отказе обязано содержать считанные с контроллера режим
	// работы и состояние приводов, а не предположения клиента.
	assert.Contains(t, err.Error(), "opmode=MANR")
	assert.Contains(t, err.Error(), "ctrlstate=motoroff")
}

func TestStartResetsPointerFirst(t *testing.T) {
	f := newFakeController(t)
	a := newTestAdapter(t, f)

	require.NoError(t, a.Start(true))
	calls := f.recorded()
	require.GreaterOrEqual(t, len(calls), 2)
	assert.Equal(t, "POST /rw/rapid/execution/resetpp", calls[0])
	assert.Equal(t, "POST /rw/rapid/execution/start", calls[1])
}

func TestMotorsOnFailureIncludesPanelDiagnostics(t *testing.T) {
	f := newFakeController(t)
	f.panelStatus = http.StatusForbidden
	f.opmode = "MANR"
	a := newTestAdapter(t, f)

	err := a.MotorsOn()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opmode=MANR")
}

func TestStop(t *testing.T) {
	f := newFakeController(t)
	a := newTestAdapter(t, f)

	require.NoError(t, a.Stop())
	assert.Contains(t, f.recorded(), "POST /rw/rapid/execution/stop")
}

func TestSetSpeedRatioRejectsOutOfRange(t *testing.T) {
	f := newFakeController(t)
	a := newTestAdapter(t, f)

	for _, ratio := range []float64{0, -5, 100.5, 1000} {
		err := a.SetSpeedRatio(ratio)
		require.Error(t, err, "ratio %v", ratio)
		assert.Equal(t, KindInvalidInput, KindOf(err), "ratio %v", ratio)
	}
	// Ни один недопустимый запрос не должен был уйти на контроллер.
	assert.Empty(t, f.recorded())

	require.NoError(t, a.SetSpeedRatio(100))
	assert.Contains(t, f.recorded(), "POST /rw/panel/speedratio")
}

func TestWaitForFlagReturnsOnFlagTrue(t *testing.T) {
	f := newFakeController(t)
	f.flagName = DefaultSyncFlag
	f.flagValues = []string{"FALSE", "TRUE"}
	f.execState = "running"
	a := newTestAdapter(t, f)

	// Флаг выставлен, хотя программа еще исполняется.
	require.NoError(t, a.WaitForFlag(context.Background(), DefaultSyncFlag))
}

func TestWaitForFlagReturnsWhenExecutionStops(t *testing.T) {
	f := newFakeController(t)
	f.flagName = DefaultSyncFlag
	f.flagValues = []string{"FALSE"}
	f.execState = "stopped"
	a := newTestAdapter(t, f)

	// Программа остановилась, хотя флаг так и не выставлен.
	require.NoError(t, a.WaitForFlag(context.Background(), DefaultSyncFlag))
}

func TestWaitForFlagContextCancellation(t *testing.T) {
	f := newFakeController(t)
	f.flagName = DefaultSyncFlag
	f.flagValues = []string{"FALSE"}
	f.execState = "running"
	a := newTestAdapter(t, f)
	a.SetPollInterval(time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := a.WaitForFlag(ctx, DefaultSyncFlag)
	require.Error(t, err)
	assert.Equal(t, KindTimeout, KindOf(err))
}

func TestWaitForFlagEmitsSnapshots(t *testing.T) {
	f := newFakeController(t)
	f.flagName = DefaultSyncFlag
	f.flagValues = []string{"FALSE", "FALSE", "TRUE"}
	f.execState = "running"
	a := newTestAdapter(t, f)

	var snapshots []*models.RobotSnapshot
	a.SetSnapshotFunc(func(s *models.RobotSnapshot) {
		snapshots = append(snapshots, s)
	})

	require.NoError(t, a.WaitForFlag(context.Background(), DefaultSyncFlag))
	require.NotEmpty(t, snapshots)
	first := snapshots[0]
	assert.Equal(t, models.ExecutionRunning, first.ExecutionState)
	assert.Equal(t, []float64{10, 20, 30, 40, 50, 60}, first.JointPositions)
	assert.Equal(t, 300.0, first.TCP.Position.Z)
}

func TestWaitWhileRunning(t *testing.T) {
	f := newFakeController(t)
	f.execState = "stopped"
	a := newTestAdapter(t, f)

	require.NoError(t, a.WaitWhileRunning(context.Background()))
}
