package service

import (
	"errors"
	"time"

	"github.com/hance08/banksim/internal/bank"
	"github.com/hance08/banksim/internal/client"
	"github.com/hance08/banksim/internal/clock"
	"github.com/hance08/banksim/internal/idgen"
	"github.com/pterm/pterm"
)

// ErrNotOwner is returned when a client acts on an account it does not hold.
var ErrNotOwner = errors.New("account does not belong to client")

// Service is the dispatch layer of one simulation session.
type Service struct {
	Clock    *clock.Toy
	Env      *bank.Env
	Clients  *client.Registry
	defaults bank.Config
	log      *pterm.Logger
}

// New starts an empty session whose clock begins at start.
func New(start time.Time, step time.Duration, defaults bank.Config, logger *pterm.Logger) *Service {
	c := clock.NewToy(start, step)
	ids := idgen.New()
	if logger == nil {
		logger = pterm.DefaultLogger.WithLevel(pterm.LogLevelDisabled)
	}

	return &Service{
		Clock:    c,
		Env:      bank.NewEnv(c, ids),
		Clients:  client.NewRegistry(ids),
		defaults: defaults,
		log:      logger,
	}
}

func (s *Service) Defaults() bank.Config {
	return s.defaults
}

func (s *Service) Now() time.Time {
	return s.Clock.Now()
}

// Tick advances the clock one step and runs the accrual sweep of every bank.
func (s *Service) Tick() time.Time {
	now := s.Clock.Next()
	for _, b := range s.Env.Banks.All() {
		b.SweepAccrual(now)
	}
	s.log.Debug("tick", s.log.Args("now", now.Format(time.RFC3339)))
	return now
}

func (s *Service) result(op string, err error, args ...any) error {
	if err != nil {
		s.log.Warn(op+" rejected", s.log.Args(append(args, "error", err.Error())...))
		return err
	}
	s.log.Info(op, s.log.Args(args...))
	return nil
}
