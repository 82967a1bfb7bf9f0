// Package progress сообщает о ходе проверки не чаще заданного интервала.
package progress

import (
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// DefaultInterval задаёт минимальный промежуток между сообщениями.
const DefaultInterval = 2 * time.Second

// Reporter пишет в лог число обработанных записей. Первое и последнее
// событие выводятся всегда, промежуточные не чаще interval. Время
// отсчитывается от создания Reporter.
type Reporter struct {
	name      string
	logger    *slog.Logger
	sometimes rate.Sometimes
	started   time.Time
}

func NewReporter(name string, logger *slog.Logger, interval time.Duration) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Reporter{
		name:      name,
		logger:    logger,
		sometimes: rate.Sometimes{First: 1, Interval: interval},
		started:   time.Now(),
	}
}

// Observe совместим с validator.ProgressFunc.
func (r *Reporter) Observe(done, total int) {
	if done == total {
		r.log(done, total)
		return
	}
	r.sometimes.Do(func() { r.log(done, total) })
}

func (r *Reporter) log(done, total int) {
	percent := 100.0
	if total > 0 {
		percent = float64(done) * 100 / float64(total)
	}
	r.logger.Info("validating",
		"job", r.name,
		"done", done,
		"total", total,
		"percent", int(percent),
		"elapsed", time.Since(r.started).Round(time.Millisecond))
}
