package abb

import (
	"os"
	"strconv"
)

// Config хранит модель конфигурации клиента.
type Config struct {
	BaseURL  string
	Username string
	Password string
	Task     string
	MechUnit string
	// PollIntervalMs — пауза между итерациями опроса флага синхронизации.
	// Ноль воспроизводит активное ожидание без пауз.
	PollIntervalMs int
	// MastershipGuardsExecution определяет, обрамлять ли mastership также
	// запуск и остановку исполнения. На части контроллеров start/stop
	// mastership не требуют, поэтому охват аренды настраивается.
	MastershipGuardsExecution bool
	LogLevel                  string
}

// Load загружает конфигурацию из переменных окружения.
func Load() *Config {
	baseURL := os.Getenv("RWS_URL")
	if baseURL == "" {
		baseURL = "https://127.0.0.1:80"
	}

	username := os.Getenv("RWS_USERNAME")
	if username == "" {
		username = "Default User"
	}

	password := os.Getenv("RWS_PASSWORD")
	if password == "" {
		password = "robotics"
	}

	task := os.Getenv("RWS_TASK")
	if task == "" {
		task = "T_ROB1"
	}

	mechUnit := os.Getenv("RWS_MECHUNIT")
	if mechUnit == "" {
		mechUnit = "ROB_1"
	}

	pollStr := os.Getenv("RWS_POLL_INTERVAL_MS")
	poll, err := strconv.Atoi(pollStr)
	if err != nil || poll < 0 {
		poll = 100
	}

	guards, err := strconv.ParseBool(os.Getenv("RWS_MASTERSHIP_GUARDS_EXECUTION"))
	if err != nil {
		guards = false
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		BaseURL:                   baseURL,
		Username:                  username,
		Password:                  password,
		Task:                      task,
		MechUnit:                  mechUnit,
		PollIntervalMs:            poll,
		MastershipGuardsExecution: guards,
		LogLevel:                  logLevel,
	}
}
