package rws

import (
	"net/http"
	"net/url"

	"github.com/golang/geo/r3"

	"github.com/iwtcode/rwsAdapter/models"
	"github.com/iwtcode/rwsAdapter/pose"
)

// symbolPath возвращает путь к данным RAPID-символа текущей задачи.
func (a *RWSAdapter) symbolPath(name string) string {
	return "/rw/rapid/symbol/RAPID/" + a.task + "/" + url.PathEscape(name) + "/data"
}

// expectNoContent интерпретирует статус мутирующего запроса: единственным
// признаком успеха контроллер считает HTTP 204.
func (a *RWSAdapter) expectNoContent(op string, status int, detail string) error {
	if status == http.StatusNoContent {
		return nil
	}
	return &Error{Kind: KindPrecondition, Op: op, Status: status, Detail: detail}
}

// GetRapidVariable возвращает сырое текстовое значение RAPID-переменной.
func (a *RWSAdapter) GetRapidVariable(name string) (string, error) {
	const op = "get rapid variable"
	status, body, err := a.get(a.symbolPath(name) + "?value=1")
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", &Error{Kind: KindPrecondition, Op: op, Status: status, Detail: "variable " + name}
	}
	doc, err := parseStateDocument(op, body)
	if err != nil {
		return "", err
	}
	return doc.requireSpan(op, "value")
}

// SetRapidVariable присваивает RAPID-переменной текстовый литерал.
// Запись разделяемого состояния должна выполняться под mastership
// (см. WithMastership).
func (a *RWSAdapter) SetRapidVariable(name, value string) error {
	status, _, err := a.postForm(a.symbolPath(name), url.Values{"value": {value}})
	if err != nil {
		return err
	}
	return a.expectNoContent("set rapid variable", status, "variable "+name)
}

// SetRapidArray присваивает RAPID-массиву плоский числовой список.
func (a *RWSAdapter) SetRapidArray(name string, values []float64) error {
	return a.SetRapidVariable(name, EncodeArray(values))
}

// GetRobTargetVariable читает переменную robtarget и разбирает её литерал.
func (a *RWSAdapter) GetRobTargetVariable(name string) (models.RobTarget, error) {
	text, err := a.GetRapidVariable(name)
	if err != nil {
		return models.RobTarget{}, err
	}
	return DecodeRobTarget(text)
}

// SetRobTarget сериализует и записывает robtarget целиком.
func (a *RWSAdapter) SetRobTarget(name string, rt models.RobTarget) error {
	return a.SetRapidVariable(name, EncodeRobTarget(rt))
}

// SetRobTargetTranslation обновляет положение robtarget, сохраняя прежнюю
// ориентацию. Нулевая ориентация-заглушка [0,0,0,0] означает, что ориентация
// ещё не задана: вместо неё подставляется стандартная [0,1,0,0]. Конфигурация
// и внешние оси при любой записи сбрасываются к стандартным значениям.
func (a *RWSAdapter) SetRobTargetTranslation(name string, trans r3.Vector) error {
	current, err := a.GetRobTargetVariable(name)
	if err != nil {
		return err
	}
	rot := current.Rot
	if rot.IsZero() {
		rot = pose.DefaultOrientation()
	}
	return a.SetRobTarget(name, models.NewRobTarget(trans, rot))
}

// SetRobTargetRotationZDegrees обновляет ориентацию robtarget поворотом
// вокруг оси Z в градусах, сохраняя прежнее положение.
func (a *RWSAdapter) SetRobTargetRotationZDegrees(name string, rotationZDegrees float64) error {
	current, err := a.GetRobTargetVariable(name)
	if err != nil {
		return err
	}
	rot := pose.ZDegreesToQuaternion(rotationZDegrees)
	return a.SetRobTarget(name, models.NewRobTarget(current.Trans, rot))
}

// SetRobTargetRotationQuaternion обновляет ориентацию robtarget кватернионом,
// сохраняя прежнее положение.
func (a *RWSAdapter) SetRobTargetRotationQuaternion(name string, rot pose.Quaternion) error {
	current, err := a.GetRobTargetVariable(name)
	if err != nil {
		return err
	}
	return a.SetRobTarget(name, models.NewRobTarget(current.Trans, rot))
}

// SetZoneData записывает zonedata-переменную по таблице допустимых зон.
// Недопустимое значение отклоняется без отправки запроса.
func (a *RWSAdapter) SetZoneData(name, zonedata string) error {
	value, err := EncodeZoneData(zonedata)
	if err != nil {
		return err
	}
	return a.SetRapidVariable(name, value)
}

// SetSpeedData записывает speeddata-переменную с фиксированными
// вторичными ограничениями скорости.
func (a *RWSAdapter) SetSpeedData(name string, speed float64) error {
	return a.SetRapidVariable(name, EncodeSpeedData(speed))
}
