package rws

import (
	"errors"
	"fmt"
)

// Kind классифицирует ошибки протокольного слоя, чтобы вызывающая сторона
// могла решить: повторить, прервать или только залогировать.
type Kind string

const (
	// KindTransport — сетевой сбой или невозможность выполнить запрос.
	KindTransport Kind = "transport"
	// KindAuth — контроллер отверг учетные данные (HTTP 401).
	KindAuth Kind = "auth"
	// KindPrecondition — операция отклонена контроллером: неверный режим,
	// выключенные приводы или отсутствие mastership.
	KindPrecondition Kind = "precondition"
	// KindParse — ответ контроллера не соответствует ожидаемой форме.
	KindParse Kind = "parse"
	// KindInvalidInput — значение отклонено до отправки запроса.
	KindInvalidInput Kind = "invalid-input"
	// KindTimeout — ожидание прервано дедлайном или отменой контекста.
	KindTimeout Kind = "timeout"
)

// Error — единый тип ошибок протокольного слоя. Содержит имя операции,
// HTTP-статус (если запрос был отправлен) и диагностический контекст,
// считанный с контроллера после отказа.
type Error struct {
	Kind   Kind
	Op     string
	Status int
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("rws: %s: %s", e.Op, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is позволяет сравнивать ошибки по виду через errors.Is(err, &Error{Kind: ...}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Op == "" || t.Op == e.Op)
}

// KindOf возвращает вид ошибки протокольного слоя или пустую строку.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
