package rws

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iwtcode/rwsAdapter/models"
)

// Параметры чтения позы TCP по умолчанию.
const (
	DefaultTool  = "tool0"
	DefaultWObj  = "wobj0"
	DefaultFrame = "Base"

	defaultJointCount = 6
)

// AggregateRobotData собирает сводку данных о роботе. Состояние исполнения
// обязательно; остальные чтения при отказе деградируют до частичной сводки
// с предупреждением в логе — устаревшие данные здесь допустимы.
func (a *RWSAdapter) AggregateRobotData() (*models.RobotSnapshot, error) {
	// 1. Состояние исполнения программы
	execState, err := a.ExecutionState()
	if err != nil {
		return nil, err
	}

	snapshot := &models.RobotSnapshot{
		Endpoint:       a.baseURL,
		Timestamp:      time.Now().UTC(),
		ExecutionState: execState,
	}

	// 2. Режим работы и состояние приводов
	if opmode, err := a.OperationMode(); err != nil {
		a.logger.Warnf("failed to read operation mode: %v", err)
	} else {
		snapshot.OperationMode = opmode
	}
	if ctrlState, err := a.ControllerState(); err != nil {
		a.logger.Warnf("failed to read controller state: %v", err)
	} else {
		snapshot.ControllerState = ctrlState
	}

	// 3. Поза TCP
	if tcp, err := a.TCPInfo(DefaultTool, DefaultWObj, DefaultFrame); err != nil {
		a.logger.Warnf("failed to read tcp info: %v", err)
	} else {
		snapshot.TCP = tcp
	}

	// 4. Углы осей
	if joints, err := a.JointPositions(defaultJointCount); err != nil {
		a.logger.Warnf("failed to read joint positions: %v", err)
	} else {
		snapshot.JointPositions = joints
	}

	return snapshot, nil
}

// emitSnapshot снимает диагностическую сводку на итерации ожидания и отдает
// её назначенному приёмнику либо в лог.
func (a *RWSAdapter) emitSnapshot() {
	snapshot, err := a.AggregateRobotData()
	if err != nil {
		a.logger.Warnf("failed to aggregate robot data: %v", err)
		return
	}
	if a.snapshotFn != nil {
		a.snapshotFn(snapshot)
		return
	}
	a.logger.WithFields(logrus.Fields{
		"tcp_position":    snapshot.TCP.Position,
		"tcp_orientation": snapshot.TCP.Orientation,
		"configuration":   snapshot.TCP.Configuration,
		"joint_positions": snapshot.JointPositions,
	}).Info("robot data")
}
