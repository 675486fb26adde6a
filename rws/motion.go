package rws

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/golang/geo/r3"

	"github.com/iwtcode/rwsAdapter/models"
	"github.com/iwtcode/rwsAdapter/pose"
)

// Чтения подсистемы движения. Поля ответов извлекаются по именам классов;
// отсутствие ожидаемого поля — ошибка разбора, которую вызывающий волен
// проигнорировать (устаревшая сводка допустима, падение посреди
// последовательности — нет).

// TCPInfo возвращает позу TCP (мм), ориентацию (кватернион) и конфигурацию
// осей относительно заданных инструмента, рабочего объекта и системы отсчета.
func (a *RWSAdapter) TCPInfo(tool, wobj, frame string) (models.TCPInfo, error) {
	const op = "get tcp info"
	var info models.TCPInfo

	path := fmt.Sprintf("/rw/motionsystem/mechunits/%s/robtarget?tool=%s&wobj=%s&coordinate=%s",
		a.mechUnit, url.QueryEscape(tool), url.QueryEscape(wobj), url.QueryEscape(frame))
	status, body, err := a.get(path)
	if err != nil {
		return info, err
	}
	if status != http.StatusOK {
		return info, &Error{Kind: KindPrecondition, Op: op, Status: status}
	}

	doc, err := parseStateDocument(op, body)
	if err != nil {
		return info, err
	}
	values, err := doc.requireFloats(op,
		"x", "y", "z",
		"q1", "q2", "q3", "q4",
		"cf1", "cf4", "cf6", "cfx")
	if err != nil {
		return info, err
	}

	info.Position = r3.Vector{X: values[0], Y: values[1], Z: values[2]}
	info.Orientation = pose.Quaternion{W: values[3], X: values[4], Y: values[5], Z: values[6]}
	info.Configuration = values[7:11]
	return info, nil
}

// JointPositions возвращает углы осей робота в градусах.
func (a *RWSAdapter) JointPositions(nJoints int) ([]float64, error) {
	const op = "get joint positions"

	status, body, err := a.get("/rw/motionsystem/mechunits/" + a.mechUnit + "/jointtarget?ignore=1")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &Error{Kind: KindPrecondition, Op: op, Status: status}
	}

	doc, err := parseStateDocument(op, body)
	if err != nil {
		return nil, err
	}
	classes := make([]string, nJoints)
	for i := range classes {
		classes[i] = fmt.Sprintf("rax_%d", i+1)
	}
	return doc.requireFloats(op, classes...)
}

// GripperPosition возвращает положение и ориентацию инструмента tGripper
// относительно рабочего объекта wobjTableN. Этот запрос контроллер отдает в
// JSON-конверте _embedded._state.
func (a *RWSAdapter) GripperPosition() (r3.Vector, pose.Quaternion, error) {
	const op = "get gripper position"

	status, body, err := a.get("/rw/motionsystem/mechunits/" + a.mechUnit +
		"/robtarget?tool=tGripper&wobj=wobjTableN&coordinate=Wobj&json=1")
	if err != nil {
		return r3.Vector{}, pose.Quaternion{}, err
	}
	if status != http.StatusOK {
		return r3.Vector{}, pose.Quaternion{}, &Error{Kind: KindPrecondition, Op: op, Status: status}
	}

	state, err := parseEmbeddedState(op, body)
	if err != nil {
		return r3.Vector{}, pose.Quaternion{}, err
	}
	values, err := embeddedFloats(op, state, "x", "y", "z", "q1", "q2", "q3", "q4")
	if err != nil {
		return r3.Vector{}, pose.Quaternion{}, err
	}

	trans := r3.Vector{X: values[0], Y: values[1], Z: values[2]}
	rot := pose.Quaternion{W: values[3], X: values[4], Y: values[5], Z: values[6]}
	return trans, rot, nil
}

// GripperHeight возвращает только высоту захвата над рабочим объектом.
func (a *RWSAdapter) GripperHeight() (float64, error) {
	trans, _, err := a.GripperPosition()
	if err != nil {
		return 0, err
	}
	return trans.Z, nil
}

// setLeadThrough переключает режим ручного ведения механического узла.
func (a *RWSAdapter) setLeadThrough(status string) error {
	code, _, err := a.postForm("/rw/motionsystem/mechunits/"+a.mechUnit+"/lead-through",
		url.Values{"status": {status}})
	if err != nil {
		return err
	}
	return a.expectNoContent("set lead-through "+status, code, "")
}

// ActivateLeadThrough включает режим ручного ведения.
func (a *RWSAdapter) ActivateLeadThrough() error { return a.setLeadThrough("active") }

// DeactivateLeadThrough выключает режим ручного ведения.
func (a *RWSAdapter) DeactivateLeadThrough() error { return a.setLeadThrough("inactive") }
