// Package scheduler runs the periodic housekeeping jobs.
package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"microloan/service"
)

type Scheduler struct {
	cron  *cron.Cron
	loans *service.LoanService
	log   *zap.Logger
}

func New(loans *service.LoanService, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:  cron.New(cron.WithSeconds()),
		loans: loans,
		log:   log,
	}
}

// Register adds the daily overdue sweep.
func (s *Scheduler) Register(overdueCron string) error {
	if _, err := s.cron.AddFunc(overdueCron, s.sweepOverdue); err != nil {
		return fmt.Errorf("register overdue sweep: %w", err)
	}
	return nil
}

func (s *Scheduler) sweepOverdue() {
	n, err := s.loans.MarkOverdue(time.Now())
	if err != nil {
		s.log.Error("overdue sweep failed", zap.Error(err))
		return
	}
	s.log.Info("overdue sweep complete", zap.Int64("flagged", n))
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}
