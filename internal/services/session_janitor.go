package services

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Sweeper interface {
	Sweep() int
}

// SessionJanitor periodically evicts expired onboarding sessions.
type SessionJanitor struct {
	cron    *cron.Cron
	sweeper Sweeper
	logger  *zap.Logger
}

func NewSessionJanitor(spec string, sweeper Sweeper, logger *zap.Logger) (*SessionJanitor, error) {
	j := &SessionJanitor{
		cron:    cron.New(),
		sweeper: sweeper,
		logger:  logger,
	}
	if _, err := j.cron.AddFunc(spec, j.Run); err != nil {
		return nil, fmt.Errorf("schedule session janitor %q: %w", spec, err)
	}
	return j, nil
}

func (j *SessionJanitor) Run() {
	if n := j.sweeper.Sweep(); n > 0 {
		j.logger.Info("expired onboarding sessions evicted", zap.Int("count", n))
	}
}

func (j *SessionJanitor) Start() {
	j.cron.Start()
}

// Stop waits for a running sweep to finish or ctx to end.
func (j *SessionJanitor) Stop(ctx context.Context) error {
	done := j.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
