// Package abb предоставляет клиента Robot Web Services для контроллеров ABB:
// чтение и запись RAPID-переменных, протокол mastership, управление
// жизненным циклом исполнения и составные операции верхнего уровня.
package abb

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/golang/geo/r3"
	"github.com/sirupsen/logrus"

	"github.com/iwtcode/rwsAdapter/models"
	"github.com/iwtcode/rwsAdapter/pose"
	"github.com/iwtcode/rwsAdapter/rws"
)

// Пути RAPID-программ в хранилище контроллера и имена переменных,
// через которые рецепты движения передают цели программе.
const (
	linearMoveProgram      = "data/rapid_programs/linear_move/linear_move.pgf"
	jointTrajectoryProgram = "data/rapid_programs/joint_control_from_textfile/joint_control_from_textfile.pgf"

	poseVariable        = "pose"
	jointTargetVariable = "joint_target"

	// Пауза после загрузки программы: контроллеру нужно время на подмену
	// задачи до первой записи переменной.
	programLoadSettle = time.Second
)

// Client является основной точкой входа для взаимодействия с библиотекой.
type Client struct {
	adapter *rws.RWSAdapter
	config  *Config
	logger  *logrus.Logger
}

// New создает и возвращает новый экземпляр клиента. Функция устанавливает
// сессию с контроллером и проверяет его доступность.
func New(cfg *Config) (*Client, error) {
	logger := logrus.New()

	if cfg.LogLevel == "off" || cfg.LogLevel == "none" {
		logger.SetOutput(io.Discard)
	} else {
		level, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			level = logrus.InfoLevel
		}
		logger.SetLevel(level)
		logger.SetOutput(os.Stdout)
	}

	// Настраиваем форматтер с понятным форматом времени
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		ForceColors:     true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	adapter, err := rws.NewRWSAdapter(cfg.BaseURL, cfg.Username, cfg.Password, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create rws adapter: %w", err)
	}
	adapter.SetTask(cfg.Task)
	adapter.SetMechUnit(cfg.MechUnit)
	adapter.SetPollInterval(time.Duration(cfg.PollIntervalMs) * time.Millisecond)

	return &Client{
		adapter: adapter,
		config:  cfg,
		logger:  logger,
	}, nil
}

// GetLogger возвращает используемый логгер.
func (c *Client) GetLogger() *logrus.Logger {
	return c.logger
}

// Adapter возвращает протокольный слой для низкоуровневых операций.
func (c *Client) Adapter() *rws.RWSAdapter {
	return c.adapter
}

// GetRapidVariable возвращает сырое значение RAPID-переменной.
func (c *Client) GetRapidVariable(name string) (string, error) {
	return c.adapter.GetRapidVariable(name)
}

// GetRobTarget возвращает разобранное значение переменной robtarget.
func (c *Client) GetRobTarget(name string) (models.RobTarget, error) {
	return c.adapter.GetRobTargetVariable(name)
}

// GetSnapshot возвращает текущую сводку данных о роботе.
func (c *Client) GetSnapshot() (*models.RobotSnapshot, error) {
	return c.adapter.AggregateRobotData()
}

// StartPolling запускает периодический сбор сводок до отмены контекста.
func (c *Client) StartPolling(ctx context.Context, interval time.Duration) <-chan rws.PollingResult {
	return c.adapter.StartPolling(ctx, interval)
}

// SetVariable записывает RAPID-переменную под mastership.
func (c *Client) SetVariable(name, value string) error {
	return c.adapter.WithMastership(func() error {
		return c.adapter.SetRapidVariable(name, value)
	})
}

// SetRobTargetTranslation обновляет положение robtarget под mastership.
func (c *Client) SetRobTargetTranslation(name string, trans r3.Vector) error {
	return c.adapter.WithMastership(func() error {
		return c.adapter.SetRobTargetTranslation(name, trans)
	})
}

// SetRobTargetRotationZDegrees обновляет ориентацию robtarget поворотом
// вокруг оси Z под mastership.
func (c *Client) SetRobTargetRotationZDegrees(name string, degrees float64) error {
	return c.adapter.WithMastership(func() error {
		return c.adapter.SetRobTargetRotationZDegrees(name, degrees)
	})
}

// SetRobTargetRotationQuaternion обновляет ориентацию robtarget кватернионом
// под mastership.
func (c *Client) SetRobTargetRotationQuaternion(name string, rot pose.Quaternion) error {
	return c.adapter.WithMastership(func() error {
		return c.adapter.SetRobTargetRotationQuaternion(name, rot)
	})
}

// SetZoneData записывает zonedata-переменную под mastership.
func (c *Client) SetZoneData(name, zonedata string) error {
	return c.adapter.WithMastership(func() error {
		return c.adapter.SetZoneData(name, zonedata)
	})
}

// SetSpeedData записывает speeddata-переменную под mastership.
func (c *Client) SetSpeedData(name string, speed float64) error {
	return c.adapter.WithMastership(func() error {
		return c.adapter.SetSpeedData(name, speed)
	})
}

// TurnMotorsOn включает приводы робота под mastership.
func (c *Client) TurnMotorsOn() error {
	return c.adapter.WithMastership(func() error {
		return c.adapter.MotorsOn()
	})
}

// startExecution запускает исполнение, обрамляя его mastership, если так
// настроен охват аренды.
func (c *Client) startExecution(resetPointerFirst bool) error {
	if c.config.MastershipGuardsExecution {
		return c.adapter.WithMastership(func() error {
			return c.adapter.Start(resetPointerFirst)
		})
	}
	return c.adapter.Start(resetPointerFirst)
}

// stopExecution останавливает исполнение с тем же охватом аренды, что и запуск.
func (c *Client) stopExecution() error {
	if c.config.MastershipGuardsExecution {
		return c.adapter.WithMastership(func() error {
			return c.adapter.Stop()
		})
	}
	return c.adapter.Stop()
}

// CompleteInstruction выполняет программу до завершения задачи: включает
// приводы, запускает исполнение со сбросом указателя, ждет флага
// синхронизации, останавливает исполнение и сбрасывает флаг в FALSE.
// Порядок вызовов является частью контракта: программа контроллера
// рассчитывает на установленные переменные до запуска.
func (c *Client) CompleteInstruction(ctx context.Context, flag string) error {
	if flag == "" {
		flag = rws.DefaultSyncFlag
	}

	if err := c.TurnMotorsOn(); err != nil {
		return err
	}
	if err := c.startExecution(true); err != nil {
		return err
	}
	if err := c.adapter.WaitForFlag(ctx, flag); err != nil {
		return err
	}
	if err := c.stopExecution(); err != nil {
		return err
	}
	return c.SetVariable(flag, "FALSE")
}

// MoveLinearly загружает программу линейного перемещения, записывает целевую
// позу и запускает движение. При blocking вызов возвращается только после
// остановки исполнения.
func (c *Client) MoveLinearly(ctx context.Context, target models.RobTarget, blocking bool) error {
	if err := c.adapter.LoadProgram(linearMoveProgram, ""); err != nil {
		return err
	}
	time.Sleep(programLoadSettle)

	if err := c.SetVariable(poseVariable, rws.EncodeRobTarget(target)); err != nil {
		return err
	}
	if err := c.adapter.MotorsOn(); err != nil {
		return err
	}
	if err := c.startExecution(true); err != nil {
		return err
	}
	if !blocking {
		return nil
	}
	return c.adapter.WaitWhileRunning(ctx)
}

// ExecuteJointTrajectory загружает программу управления по осям, записывает
// целевые углы и запускает движение. По завершении приводы выключаются
// безусловно.
func (c *Client) ExecuteJointTrajectory(ctx context.Context, goal []float64, blocking bool) error {
	if err := c.adapter.LoadProgram(jointTrajectoryProgram, ""); err != nil {
		return err
	}
	time.Sleep(programLoadSettle)

	if err := c.SetVariable(jointTargetVariable, rws.EncodeJointTarget(goal)); err != nil {
		return err
	}
	if err := c.adapter.MotorsOn(); err != nil {
		return err
	}
	if err := c.startExecution(true); err != nil {
		return err
	}
	if blocking {
		if err := c.adapter.WaitWhileRunning(ctx); err != nil {
			return err
		}
	}
	return c.adapter.MotorsOff()
}
