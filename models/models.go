// Package models содержит модели данных контроллера, общие для всех слоёв.
package models

import (
	"time"

	"github.com/golang/geo/r3"

	"github.com/iwtcode/rwsAdapter/pose"
)

// ExecutionState описывает состояние исполнения RAPID-программы.
// Значения соответствуют полю ctrlexecstate ответа контроллера.
type ExecutionState string

const (
	ExecutionRunning ExecutionState = "running"
	ExecutionStopped ExecutionState = "stopped"
)

// OperationMode описывает режим работы контроллера (поле opmode).
type OperationMode string

const (
	OperationModeAuto            OperationMode = "AUTO"
	OperationModeManual          OperationMode = "MANR"
	OperationModeManualFullSpeed OperationMode = "MANF"
)

// ControllerState описывает состояние питания приводов (поле ctrlstate).
type ControllerState string

const (
	ControllerMotorsOn  ControllerState = "motoron"
	ControllerMotorsOff ControllerState = "motoroff"
)

// RobTarget содержит позу robtarget: положение, ориентацию, конфигурацию осей
// и значения внешних осей в системе координат контроллера.
type RobTarget struct {
	Trans r3.Vector       `json:"trans"`
	Rot   pose.Quaternion `json:"rot"`
	Conf  [4]float64      `json:"robconf"`
	ExtAx [6]float64      `json:"extax"`
}

// NewRobTarget возвращает robtarget с переданным положением/ориентацией и
// стандартными конфигурацией и внешними осями.
func NewRobTarget(trans r3.Vector, rot pose.Quaternion) RobTarget {
	return RobTarget{
		Trans: trans,
		Rot:   rot,
		Conf:  pose.DefaultConfiguration(),
		ExtAx: pose.DefaultExternalAxes(),
	}
}

// TCPInfo содержит позу TCP, прочитанную из подсистемы движения.
type TCPInfo struct {
	Position      r3.Vector       `json:"position"`
	Orientation   pose.Quaternion `json:"orientation"`
	Configuration []float64       `json:"configuration"`
}

// RobotSnapshot содержит сводку данных о роботе, собираемую агрегатором на
// каждой итерации ожидания либо по запросу.
type RobotSnapshot struct {
	Endpoint        string          `json:"endpoint"`
	Timestamp       time.Time       `json:"timestamp"`
	ExecutionState  ExecutionState  `json:"execution_state"`
	OperationMode   OperationMode   `json:"operation_mode"`
	ControllerState ControllerState `json:"controller_state"`
	TCP             TCPInfo         `json:"tcp"`
	JointPositions  []float64       `json:"joint_positions"`
}
