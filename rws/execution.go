package rws

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/iwtcode/rwsAdapter/models"
)

// DefaultSyncFlag — имя булевой RAPID-переменной, через которую программа
// контроллера сигнализирует о завершении задачи.
const DefaultSyncFlag = "ready_flag"

// ExecutionState возвращает наблюдаемое состояние исполнения программы.
// Состояние не кэшируется: каждый вызов опрашивает контроллер заново.
func (a *RWSAdapter) ExecutionState() (models.ExecutionState, error) {
	const op = "get execution state"
	status, body, err := a.get("/rw/rapid/execution")
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", &Error{Kind: KindPrecondition, Op: op, Status: status}
	}
	doc, err := parseStateDocument(op, body)
	if err != nil {
		return "", err
	}
	state, err := doc.requireSpan(op, "ctrlexecstate")
	if err != nil {
		return "", err
	}
	return models.ExecutionState(state), nil
}

// IsRunning сообщает, исполняется ли RAPID-программа в данный момент.
func (a *RWSAdapter) IsRunning() (bool, error) {
	state, err := a.ExecutionState()
	if err != nil {
		return false, err
	}
	return state == models.ExecutionRunning, nil
}

// OperationMode возвращает режим работы контроллера.
func (a *RWSAdapter) OperationMode() (models.OperationMode, error) {
	const op = "get operation mode"
	status, body, err := a.get("/rw/panel/opmode")
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", &Error{Kind: KindPrecondition, Op: op, Status: status}
	}
	doc, err := parseStateDocument(op, body)
	if err != nil {
		return "", err
	}
	mode, err := doc.requireSpan(op, "opmode")
	if err != nil {
		return "", err
	}
	return models.OperationMode(mode), nil
}

// ControllerState возвращает состояние питания приводов.
func (a *RWSAdapter) ControllerState() (models.ControllerState, error) {
	const op = "get controller state"
	status, body, err := a.get("/rw/panel/ctrl-state")
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", &Error{Kind: KindPrecondition, Op: op, Status: status}
	}
	doc, err := parseStateDocument(op, body)
	if err != nil {
		return "", err
	}
	state, err := doc.requireSpan(op, "ctrlstate")
	if err != nil {
		return "", err
	}
	return models.ControllerState(state), nil
}

// panelDiagnostics делает контрольное чтение режима и состояния приводов для
// сообщения об отказе: две самые частые причины — неверный режим и
// выключенные приводы. Диагностика считывается, а не выводится из догадок.
func (a *RWSAdapter) panelDiagnostics() string {
	opmode, err := a.OperationMode()
	if err != nil {
		opmode = "unknown"
	}
	ctrlstate, err := a.ControllerState()
	if err != nil {
		ctrlstate = "unknown"
	}
	return fmt.Sprintf("opmode=%s ctrlstate=%s", opmode, ctrlstate)
}

// ResetProgramPointer переводит указатель программы на точку входа.
func (a *RWSAdapter) ResetProgramPointer() error {
	status, _, err := a.postForm("/rw/rapid/execution/resetpp?mastership=implicit", nil)
	if err != nil {
		return err
	}
	if err := a.expectNoContent("reset program pointer", status, ""); err != nil {
		return err
	}
	a.logger.Info("program pointer reset to main")
	return nil
}

// MotorsOn включает приводы робота. Требуется режим AUTO.
func (a *RWSAdapter) MotorsOn() error {
	status, _, err := a.postForm("/rw/panel/ctrl-state?ctrl-state=motoron",
		url.Values{"ctrl-state": {"motoron"}})
	if err != nil {
		return err
	}
	if status != http.StatusNoContent {
		return &Error{Kind: KindPrecondition, Op: "motors on", Status: status, Detail: a.panelDiagnostics()}
	}
	a.logger.Info("robot motors turned on")
	return nil
}

// MotorsOff выключает приводы робота.
func (a *RWSAdapter) MotorsOff() error {
	status, _, err := a.postForm("/rw/panel/ctrl-state?ctrl-state=motoroff",
		url.Values{"ctrl-state": {"motoroff"}})
	if err != nil {
		return err
	}
	if status != http.StatusNoContent {
		return &Error{Kind: KindPrecondition, Op: "motors off", Status: status, Detail: a.panelDiagnostics()}
	}
	a.logger.Info("robot motors turned off")
	return nil
}

// Start запускает исполнение RAPID-программы с фиксированными параметрами
// (продолжение с возвратом на траекторию, один цикл, без остановки на
// точках останова), при необходимости предварительно сбросив указатель.
func (a *RWSAdapter) Start(resetPointerFirst bool) error {
	if resetPointerFirst {
		if err := a.ResetProgramPointer(); err != nil {
			return err
		}
	}
	status, _, err := a.postForm("/rw/rapid/execution/start?mastership=implicit", url.Values{
		"regain":       {"continue"},
		"execmode":     {"continue"},
		"cycle":        {"once"},
		"condition":    {"none"},
		"stopatbp":     {"disabled"},
		"alltaskbytsp": {"false"},
	})
	if err != nil {
		return err
	}
	if status != http.StatusNoContent {
		return &Error{Kind: KindPrecondition, Op: "start execution", Status: status, Detail: a.panelDiagnostics()}
	}
	a.logger.Info("RAPID execution started from main")
	return nil
}

// Stop выполняет обычную остановку исполнения.
func (a *RWSAdapter) Stop() error {
	status, _, err := a.postForm("/rw/rapid/execution/stop", url.Values{
		"stopmode": {"stop"},
		"usetsp":   {"normal"},
	})
	if err != nil {
		return err
	}
	if err := a.expectNoContent("stop execution", status, ""); err != nil {
		return err
	}
	a.logger.Info("RAPID execution stopped")
	return nil
}

// SetSpeedRatio задает процент скорости контроллера. Значения вне (0,100]
// отклоняются без отправки запроса.
func (a *RWSAdapter) SetSpeedRatio(speedRatio float64) error {
	if speedRatio <= 0 || speedRatio > 100 {
		return &Error{
			Kind: KindInvalidInput, Op: "set speed ratio",
			Detail: fmt.Sprintf("speed ratio %v is outside (0,100]", speedRatio),
		}
	}
	status, _, err := a.postForm("/rw/panel/speedratio?mastership=implicit",
		url.Values{"speed-ratio": {formatFloat(speedRatio)}})
	if err != nil {
		return err
	}
	return a.expectNoContent("set speed ratio", status, "")
}

// WaitForFlag блокирует вызывающего, пока RAPID-программа не выставит флаг
// синхронизации в TRUE либо не перестанет исполняться — что наступит раньше.
// На каждой итерации снимается диагностическая сводка о роботе. Дедлайн и
// отмена задаются контекстом; интервал опроса настраивается через
// SetPollInterval, нулевой интервал воспроизводит активное ожидание.
func (a *RWSAdapter) WaitForFlag(ctx context.Context, flag string) error {
	if flag == "" {
		flag = DefaultSyncFlag
	}
	for {
		select {
		case <-ctx.Done():
			return &Error{Kind: KindTimeout, Op: "wait for flag", Detail: flag, Err: ctx.Err()}
		default:
		}

		value, err := a.GetRapidVariable(flag)
		if err != nil {
			return err
		}
		if value == "TRUE" {
			return nil
		}

		running, err := a.IsRunning()
		if err != nil {
			return err
		}
		if !running {
			return nil
		}

		a.emitSnapshot()

		if a.pollInterval > 0 {
			select {
			case <-ctx.Done():
				return &Error{Kind: KindTimeout, Op: "wait for flag", Detail: flag, Err: ctx.Err()}
			case <-time.After(a.pollInterval):
			}
		}
	}
}

// WaitWhileRunning блокирует вызывающего, пока программа не остановится.
// Используется блокирующими рецептами движения, где флага синхронизации нет
// и единственным сигналом завершения служит остановка исполнения.
func (a *RWSAdapter) WaitWhileRunning(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return &Error{Kind: KindTimeout, Op: "wait while running", Err: ctx.Err()}
		default:
		}

		running, err := a.IsRunning()
		if err != nil {
			return err
		}
		if !running {
			return nil
		}

		if a.pollInterval > 0 {
			select {
			case <-ctx.Done():
				return &Error{Kind: KindTimeout, Op: "wait while running", Err: ctx.Err()}
			case <-time.After(a.pollInterval):
			}
		}
	}
}
