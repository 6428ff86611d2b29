// Package scheduler runs the publisher at the posting times of the caption schedule.
package scheduler

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/orgball2608/reel-publisher-bot/internal/domain"
	"github.com/orgball2608/reel-publisher-bot/internal/publisher"
	"github.com/orgball2608/reel-publisher-bot/internal/schedule"
	"github.com/orgball2608/reel-publisher-bot/pkg/config"
	"github.com/orgball2608/reel-publisher-bot/pkg/errors"
	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
	"go.uber.org/fx"
)

// runTimeout bounds one scheduled run. Polling budgets are far below it.
const runTimeout = 45 * time.Minute

// Slot is one posting time and the weekdays it applies to.
type Slot struct {
	Hour     uint
	Minute   uint
	Weekdays []time.Weekday
}

func (s Slot) String() string {
	return fmt.Sprintf("%02d:%02d", s.Hour, s.Minute)
}

// Plan groups the posting times of account by time of day. Invalid times are
// returned as errors and left out of the plan.
func Plan(captions domain.CaptionConfig, account string) ([]Slot, []error) {
	byTime := make(map[string]*Slot)
	var errs []error

	for day := time.Sunday; day <= time.Saturday; day++ {
		for _, raw := range captions.Times(account, day) {
			at, err := time.Parse("15:04", raw)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: invalid time %q", day, raw))
				continue
			}
			key := at.Format("15:04")
			slot, ok := byTime[key]
			if !ok {
				slot = &Slot{Hour: uint(at.Hour()), Minute: uint(at.Minute())}
				byTime[key] = slot
			}
			if !slices.Contains(slot.Weekdays, day) {
				slot.Weekdays = append(slot.Weekdays, day)
			}
		}
	}

	slots := make([]Slot, 0, len(byTime))
	for _, slot := range byTime {
		slots = append(slots, *slot)
	}
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Hour*60+slots[i].Minute < slots[j].Hour*60+slots[j].Minute
	})
	return slots, errs
}

type Opts struct {
	fx.In
	LC fx.Lifecycle

	Config    *config.Config
	Logger    logger.Logger
	Publisher publisher.Publisher
}

type Scheduler struct {
	cron      gocron.Scheduler
	publisher publisher.Publisher
	logger    logger.Logger
	file      string
	account   string

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates the scheduler in the configured timezone. At most one run
// executes at a time; a run that comes due while another is active is skipped.
func New(opts Opts) (*Scheduler, error) {
	loc, err := opts.Config.Location()
	if err != nil {
		return nil, err
	}
	cron, err := gocron.NewScheduler(
		gocron.WithLocation(loc),
		gocron.WithLimitConcurrentJobs(1, gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		cron:      cron,
		publisher: opts.Publisher,
		logger:    opts.Logger.WithComponent("scheduler"),
		file:      opts.Config.Schedule.File,
		account:   opts.Config.Schedule.AccountKey,
		ctx:       ctx,
		cancel:    cancel,
	}

	if opts.LC != nil {
		opts.LC.Append(fx.Hook{
			OnStart: func(context.Context) error {
				return s.Start()
			},
			OnStop: func(context.Context) error {
				return s.Stop()
			},
		})
	}
	return s, nil
}

// Start loads the schedule file, registers its posting times and starts the scheduler.
func (s *Scheduler) Start() error {
	captions, err := schedule.Load(s.file)
	if err != nil {
		return err
	}
	n, err := s.Register(captions)
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("Scheduler started", "jobs", n)
	return nil
}

// Register adds one weekly job per posting time.
func (s *Scheduler) Register(captions domain.CaptionConfig) (int, error) {
	slots, errs := Plan(captions, s.account)
	for _, err := range errs {
		s.logger.Warn("Skipping schedule entry", "error", err)
	}
	if len(slots) == 0 {
		return 0, fmt.Errorf("%w: no posting times for account %q", errors.ErrConfig, s.account)
	}

	for _, slot := range slots {
		_, err := s.cron.NewJob(
			gocron.WeeklyJob(1,
				gocron.NewWeekdays(slot.Weekdays[0], slot.Weekdays[1:]...),
				gocron.NewAtTimes(gocron.NewAtTime(slot.Hour, slot.Minute, 0)),
			),
			gocron.NewTask(s.runOnce),
			gocron.WithName("publish "+slot.String()),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to schedule %s: %w", slot, err)
		}
		s.logger.Info("Scheduled run", "at", slot.String(), "weekdays", slot.Weekdays)
	}
	return len(slots), nil
}

func (s *Scheduler) runOnce() {
	if s.ctx.Err() != nil {
		s.logger.Info("Scheduler stopping, skipping run")
		return
	}
	ctx, cancel := context.WithTimeout(s.ctx, runTimeout)
	defer cancel()

	report, err := s.publisher.Run(ctx)
	if err != nil {
		s.logger.Error("Scheduled run failed", "error", err)
		return
	}
	s.logger.Info("Scheduled run finished", "status", report.Status)
}

// Jobs returns the names of the registered jobs.
func (s *Scheduler) Jobs() []string {
	jobs := s.cron.Jobs()
	names := make([]string, 0, len(jobs))
	for _, j := range jobs {
		names = append(names, j.Name())
	}
	sort.Strings(names)
	return names
}

func (s *Scheduler) Stop() error {
	s.cancel()
	return s.cron.Shutdown()
}

var Module = fx.Module("scheduler",
	fx.Provide(New),
	fx.Invoke(func(*Scheduler) {}),
)
