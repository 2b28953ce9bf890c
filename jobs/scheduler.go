// Package jobs содержит фоновые задачи платформы: еженедельное зачисление
// прибыли, ежедневное начисление по планам и напоминания.
package jobs

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"trading-platform/config"
	"trading-platform/logging"
)

type Scheduler struct {
	cron *cron.Cron
	cfg  *config.Config
	log  *zap.Logger
}

func NewScheduler(cfg *config.Config) (*Scheduler, error) {
	s := &Scheduler{
		cron: cron.New(),
		cfg:  cfg,
		log:  logging.Logger.Named("jobs"),
	}

	if _, err := s.cron.AddFunc(cfg.SettlementCron, s.runSettlement); err != nil {
		return nil, err
	}
	if _, err := s.cron.AddFunc(cfg.ReminderCron, s.runReminder); err != nil {
		return nil, err
	}
	if _, err := s.cron.AddFunc(cfg.AccrualCron, s.runAccrual); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started",
		zap.String("settlement", s.cfg.SettlementCron),
		zap.String("reminder", s.cfg.ReminderCron),
		zap.String("accrual", s.cfg.AccrualCron),
	)
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("scheduler stopped")
}
