package main

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	abb "github.com/iwtcode/rwsAdapter"
	"github.com/iwtcode/rwsAdapter/rws"
)

// runStep - обертка, выполняющая один шаг опроса контроллера и
// останавливающая демонстрацию при фатальной ошибке.
func runStep(name string, fn func() error) {
	log.Printf("--- Запуск шага: %s ---", name)

	if err := fn(); err != nil {
		log.Fatalf("Ошибка выполнения на шаге %s: %v", name, err)
	}

	log.Printf("--- Шаг %s выполнен успешно ---", name)
	fmt.Println("==================================================")
}

func main() {
	// 1) Загрузка конфигурации
	err := godotenv.Load("./.env")
	if err != nil {
		log.Printf("Warning: Could not load .env file. Using default values or environment variables: %v", err)
	}

	cfg := abb.Load()
	log.Printf("Конфигурация загружена: URL=%s, Task=%s, MechUnit=%s", cfg.BaseURL, cfg.Task, cfg.MechUnit)

	// 2) Подключение к контроллеру
	client, err := abb.New(cfg)
	if err != nil {
		log.Fatalf("Ошибка подключения к контроллеру: %v", err)
	}
	log.Println("Сессия с контроллером установлена.")

	// 3) Чтение режима работы и состояния приводов
	runStep("ReadPanelState", func() error {
		opmode, err := client.Adapter().OperationMode()
		if err != nil {
			return err
		}
		ctrlstate, err := client.Adapter().ControllerState()
		if err != nil {
			return err
		}
		printAsJSON("PanelState", map[string]string{
			"opmode":    string(opmode),
			"ctrlstate": string(ctrlstate),
		})
		return nil
	})

	// 4) Чтение состояния исполнения программы
	runStep("ReadExecutionState", func() error {
		state, err := client.Adapter().ExecutionState()
		if err != nil {
			return err
		}
		printAsJSON("ExecutionState", state)
		return nil
	})

	// 5) Чтение флага синхронизации
	runStep("ReadSyncFlag", func() error {
		value, err := client.GetRapidVariable(rws.DefaultSyncFlag)
		if err != nil {
			// Флаг может отсутствовать в загруженной программе
			log.Printf("Предупреждение: не удалось прочитать флаг синхронизации: %v", err)
			return nil
		}
		printAsJSON("SyncFlag", value)
		return nil
	})

	// 6) Сводка данных о роботе
	runStep("AggregateRobotData", func() error {
		snapshot, err := client.GetSnapshot()
		if err != nil {
			return err
		}
		printAsJSON("RobotSnapshot", snapshot)
		return nil
	})

	log.Println("Сбор данных завершен.")
}

// printAsJSON форматирует данные в JSON и выводит в лог
func printAsJSON(name string, data interface{}) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Printf("Ошибка маршалинга JSON для %s: %v", name, err)
		return
	}
	fmt.Printf("--- %s ---\n%s\n", name, string(jsonData))
}
