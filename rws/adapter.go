// Package rws реализует протокольный слой Robot Web Services 2.0:
// аутентифицированную HTTP-сессию, кодек RAPID-переменных, протокол
// mastership и жизненный цикл исполнения программы.
package rws

import (
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iwtcode/rwsAdapter/models"
)

// Значения по умолчанию, принятые в RobotWare для виртуального контроллера.
const (
	DefaultTask     = "T_ROB1"
	DefaultMechUnit = "ROB_1"

	defaultPollInterval = 100 * time.Millisecond

	acceptXHTML     = "application/xhtml+xml;v=2.0"
	contentTypeForm = "application/x-www-form-urlencoded;v=2.0"
)

// RWSAdapter инкапсулирует постоянную аутентифицированную сессию с
// контроллером и низкоуровневые запросы к его REST-поверхности.
// Все компоненты библиотеки выполняют запросы через один адаптер.
type RWSAdapter struct {
	baseURL  string
	username string
	password string
	task     string
	mechUnit string

	client *http.Client
	logger *logrus.Logger

	// masterMu сериализует скобку acquire/operate/release внутри процесса:
	// сам контроллер не защищает от чередования держателей mastership.
	masterMu sync.Mutex

	pollInterval time.Duration
	snapshotFn   func(*models.RobotSnapshot)
}

// NewRWSAdapter создает адаптер и проверяет доступность контроллера пробным
// чтением режима работы. Проверка сертификата отключена: адресатом обычно
// выступает локальный либо находящийся в частной сети виртуальный контроллер.
func NewRWSAdapter(baseURL, username, password string, logger *logrus.Logger) (*RWSAdapter, error) {
	a := &RWSAdapter{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		task:     DefaultTask,
		mechUnit: DefaultMechUnit,
		client: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSClientConfig:     &tls.Config{InsecureSkipVerify: true},
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger:       logger,
		pollInterval: defaultPollInterval,
	}

	if _, err := a.OperationMode(); err != nil {
		return nil, fmt.Errorf("initial connection failed: %w", err)
	}

	return a, nil
}

// SetTask задает имя RAPID-задачи, к которой квалифицируются переменные.
func (a *RWSAdapter) SetTask(task string) { a.task = task }

// SetMechUnit задает имя механического узла для запросов подсистемы движения.
func (a *RWSAdapter) SetMechUnit(unit string) { a.mechUnit = unit }

// SetPollInterval задает паузу между итерациями WaitForFlag.
// Нулевой интервал воспроизводит исходное активное ожидание.
func (a *RWSAdapter) SetPollInterval(d time.Duration) { a.pollInterval = d }

// SetSnapshotFunc подменяет приёмник диагностических сводок, снимаемых на
// каждой итерации ожидания. По умолчанию сводка уходит в лог.
func (a *RWSAdapter) SetSnapshotFunc(fn func(*models.RobotSnapshot)) { a.snapshotFn = fn }

// BaseURL возвращает адрес контроллера, к которому привязан адаптер.
func (a *RWSAdapter) BaseURL() string { return a.baseURL }

// do выполняет запрос с учетными данными и заголовками сессии.
// Не-2xx статус ошибкой на этом уровне не считается: интерпретация статуса
// принадлежит вызывающей операции.
func (a *RWSAdapter) do(req *http.Request, headers map[string]string) (int, []byte, error) {
	req.SetBasicAuth(a.username, a.password)
	req.Header.Set("Accept", acceptXHTML)
	if req.Method != http.MethodGet {
		req.Header.Set("Content-Type", contentTypeForm)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return 0, nil, &Error{Kind: KindTransport, Op: req.Method + " " + req.URL.Path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &Error{Kind: KindTransport, Op: req.Method + " " + req.URL.Path, Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return resp.StatusCode, body, &Error{
			Kind: KindAuth, Op: req.Method + " " + req.URL.Path, Status: resp.StatusCode,
			Detail: "controller rejected credentials",
		}
	}

	return resp.StatusCode, body, nil
}

// get выполняет GET относительно базового адреса контроллера.
func (a *RWSAdapter) get(path string) (int, []byte, error) {
	req, err := http.NewRequest(http.MethodGet, a.baseURL+path, nil)
	if err != nil {
		return 0, nil, &Error{Kind: KindTransport, Op: "GET " + path, Err: err}
	}
	return a.do(req, nil)
}

// postForm выполняет POST с телом application/x-www-form-urlencoded.
func (a *RWSAdapter) postForm(path string, form url.Values) (int, []byte, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(http.MethodPost, a.baseURL+path, body)
	if err != nil {
		return 0, nil, &Error{Kind: KindTransport, Op: "POST " + path, Err: err}
	}
	return a.do(req, nil)
}

// put выполняет PUT с переопределением заголовков сессии (загрузка файлов
// использует octet-stream и JSON Accept).
func (a *RWSAdapter) put(path string, data []byte, headers map[string]string) (int, error) {
	req, err := http.NewRequest(http.MethodPut, a.baseURL+path, strings.NewReader(string(data)))
	if err != nil {
		return 0, &Error{Kind: KindTransport, Op: "PUT " + path, Err: err}
	}
	status, _, err := a.do(req, headers)
	return status, err
}
