package rws

import (
	"context"
	"time"

	"github.com/iwtcode/rwsAdapter/models"
)

// PollingResult содержит сводку или ошибку одной попытки опроса.
type PollingResult struct {
	Data *models.RobotSnapshot
	Err  error
}

// StartPolling запускает фоновый процесс, периодически вызывающий
// AggregateRobotData. Если сбор занимает дольше интервала, попытки
// выполняются параллельно. Опрос прекращается при отмене контекста.
func (a *RWSAdapter) StartPolling(ctx context.Context, interval time.Duration) <-chan PollingResult {
	resultsChan := make(chan PollingResult)

	go func() {
		defer close(resultsChan)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				a.logger.Info("polling stopped: context cancelled")
				return
			case <-ticker.C:
				go func() {
					data, err := a.AggregateRobotData()
					result := PollingResult{Data: data, Err: err}
					select {
					case resultsChan <- result:
					case <-ctx.Done():
					}
				}()
			}
		}
	}()

	return resultsChan
}
