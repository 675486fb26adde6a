package rws

import (
	"net/http"
	"net/url"
)

// Протокол mastership: контроллер выдает эксклюзивный доступ на запись, и
// любая мутация разделяемого состояния обрамляется acquire/release.
// Повторный запрос уже удерживаемого mastership и освобождение без удержания
// контроллер обрабатывает идемпотентно.

// RequestMastership запрашивает эксклюзивный доступ на запись.
func (a *RWSAdapter) RequestMastership() error {
	status, _, err := a.postForm("/rw/mastership/request", nil)
	if err != nil {
		return err
	}
	return a.expectNoContent("request mastership", status, "")
}

// ReleaseMastership освобождает эксклюзивный доступ на запись.
func (a *RWSAdapter) ReleaseMastership() error {
	status, _, err := a.postForm("/rw/mastership/release", nil)
	if err != nil {
		return err
	}
	return a.expectNoContent("release mastership", status, "")
}

// WithMastership выполняет fn внутри скобки acquire/release. Освобождение
// гарантировано на любом пути выхода, включая ошибку fn. Локальный мьютекс
// не дает двум горутинам процесса чередовать держателей mastership: сам
// контроллер такой защиты не дает.
func (a *RWSAdapter) WithMastership(fn func() error) error {
	a.masterMu.Lock()
	defer a.masterMu.Unlock()

	if err := a.RequestMastership(); err != nil {
		return err
	}
	defer func() {
		if err := a.ReleaseMastership(); err != nil {
			a.logger.Warnf("mastership release failed: %v", err)
		}
	}()

	return fn()
}

// RequestRMMP запрашивает привилегии изменения в ручном режиме.
func (a *RWSAdapter) RequestRMMP() error {
	status, _, err := a.postForm("/users/rmmp", url.Values{"privilege": {"modify"}})
	if err != nil {
		return err
	}
	if status != http.StatusNoContent && status != http.StatusOK {
		return &Error{Kind: KindPrecondition, Op: "request rmmp", Status: status}
	}
	return nil
}

// CancelRMMP отзывает привилегии изменения в ручном режиме.
func (a *RWSAdapter) CancelRMMP() error {
	status, _, err := a.postForm("/users/rmmp/cancel", nil)
	if err != nil {
		return err
	}
	if status != http.StatusNoContent && status != http.StatusOK {
		return &Error{Kind: KindPrecondition, Op: "cancel rmmp", Status: status}
	}
	return nil
}
