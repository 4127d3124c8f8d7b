// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package service drives the poll cycle: fetch the station reports, classify them, update the
// registry and render the result, then schedule the next cycle.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"

	"github.com/wneessen/metar-lights/internal/config"
	"github.com/wneessen/metar-lights/internal/display"
	"github.com/wneessen/metar-lights/internal/job"
	"github.com/wneessen/metar-lights/internal/logger"
	"github.com/wneessen/metar-lights/internal/report"
	"github.com/wneessen/metar-lights/internal/station"
)

const (
	pollJobName   = "metar_poll_job"
	statusJobName = "station_status_job"
)

// State is the state of the poll scheduler.
type State int

const (
	// StateIdle means the scheduler waits for the next poll.
	StateIdle State = iota
	// StatePolling means a poll cycle is in progress.
	StatePolling
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePolling:
		return "polling"
	default:
		return "unknown"
	}
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock used for scheduling and report timestamps.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithProvider sets the report provider instead of the one selected by the configuration.
func WithProvider(provider report.Provider) Option {
	return func(s *Service) {
		s.provider = provider
	}
}

// WithDevice sets the output device instead of the one selected by the configuration.
func WithDevice(device display.Device) Option {
	return func(s *Service) {
		s.device = device
	}
}

// WithOutput sets the writer of the console device.
func WithOutput(output io.Writer) Option {
	return func(s *Service) {
		if output != nil {
			s.output = output
		}
	}
}

type Service struct {
	config    *config.Config
	logger    *logger.Logger
	clock     clockwork.Clock
	scheduler gocron.Scheduler
	registry  *station.Registry
	retry     *RetrySchedule
	jobs      []*job.Job
	output    io.Writer

	provider         report.Provider
	device           display.Device
	renderer         *display.Renderer
	openWS2801Device func(path string, count int) (*display.WS2801, error)

	stateLock sync.RWMutex
	state     State
}

func New(conf *config.Config, log *logger.Logger, registry *station.Registry, options ...Option) (*Service, error) {
	if conf == nil {
		return nil, errors.New("config is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}
	if registry == nil {
		return nil, errors.New("station registry is required")
	}

	service := &Service{
		config:   conf,
		logger:   log,
		clock:    clockwork.NewRealClock(),
		registry: registry,
		retry:    NewRetrySchedule(conf.Intervals.Refresh, conf.Intervals.Backoff),
		output:   os.Stdout,

		openWS2801Device: display.OpenWS2801,
	}
	for _, option := range options {
		option(service)
	}

	if conf.Intervals.Status > 0 {
		service.jobs = append(service.jobs, job.New(statusJobName, conf.Intervals.Status, service.clock,
			service.logStatus))
	}

	return service, nil
}

// Run sets up the report provider and the output device, starts polling immediately and blocks
// until the context is cancelled. The scheduler only exists while Run is active.
func (s *Service) Run(ctx context.Context) error {
	if err := s.setup(ctx); err != nil {
		return err
	}
	defer s.closeDevice()

	if err := display.Clear(s.device, s.config.Device.PixelCount); err != nil {
		s.logger.Error("failed to clear LED device", logger.Err(err))
	}

	scheduler, err := gocron.NewScheduler(gocron.WithClock(s.clock), gocron.WithLogger(s.logger))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	s.scheduler = scheduler

	if err = s.schedulePoll(ctx, 0); err != nil {
		if shutdownErr := s.scheduler.Shutdown(); shutdownErr != nil {
			s.logger.Error("failed to shut down scheduler", logger.Err(shutdownErr))
		}
		return err
	}
	s.scheduler.Start()

	for _, j := range s.jobs {
		if j == nil {
			continue
		}
		s.logger.Debug("starting job", slog.String("job", j.Name()), slog.Duration("interval", j.Interval()))
		go j.Start(ctx)
	}

	// Wait for the context to cancel
	<-ctx.Done()
	return s.scheduler.Shutdown()
}

// Poll runs a single poll cycle and returns the wait before the next one. Fetch and device
// failures are logged and never returned. On a fetch failure the registry is left untouched.
func (s *Service) Poll(ctx context.Context) time.Duration {
	s.setState(StatePolling)
	defer s.setState(StateIdle)

	success := s.poll(ctx)
	wait := s.retry.Next(success)
	s.logger.Info("poll cycle finished", slog.Bool("success", success),
		slog.Int("failures", s.retry.Failures()), slog.Duration("next_poll", wait))
	return wait
}

// State returns the current state of the poll scheduler.
func (s *Service) State() State {
	s.stateLock.RLock()
	defer s.stateLock.RUnlock()
	return s.state
}

// Registry returns the station registry of the service.
func (s *Service) Registry() *station.Registry {
	return s.registry
}

// poll fetches, applies and renders the station reports. It reports success if at least one
// station received a report.
func (s *Service) poll(ctx context.Context) bool {
	batch, err := s.provider.Fetch(ctx, s.registry.Codes())
	if err != nil {
		s.logger.Error("failed to fetch station reports", slog.String("provider", s.provider.Name()),
			logger.Err(err))
		return false
	}

	updated := s.registry.Apply(batch, s.clock.Now())
	if !updated {
		s.logger.Warn("no usable station reports received", slog.String("provider", s.provider.Name()))
	}

	if err = s.renderer.Render(s.registry.Stations(), s.clock.Now()); err != nil {
		s.logger.Error("failed to render stations", logger.Err(err))
	}
	return updated
}

// runPoll is the task of the poll job. Each poll job runs once and schedules its successor,
// so two poll cycles never overlap.
func (s *Service) runPoll(ctx context.Context) {
	wait := s.Poll(ctx)
	if ctx.Err() != nil {
		return
	}
	if err := s.schedulePoll(ctx, wait); err != nil {
		s.logger.Error("failed to schedule next poll", logger.Err(err))
	}
}

func (s *Service) schedulePoll(ctx context.Context, wait time.Duration) error {
	start := gocron.OneTimeJobStartImmediately()
	if wait > 0 {
		start = gocron.OneTimeJobStartDateTime(s.clock.Now().Add(wait))
	}

	_, err := s.scheduler.NewJob(
		gocron.OneTimeJob(start),
		gocron.NewTask(s.runPoll),
		gocron.WithContext(ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName(pollJobName),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", pollJobName, err)
	}
	return nil
}

// setup selects the report provider and the output device unless they were set as options.
func (s *Service) setup(ctx context.Context) error {
	if s.provider == nil {
		provider, err := s.selectReportProvider()
		if err != nil {
			return fmt.Errorf("failed to create report provider: %w", err)
		}
		s.provider = provider
	}
	if s.device == nil {
		device, err := s.selectDevice(ctx)
		if err != nil {
			return fmt.Errorf("failed to create output device: %w", err)
		}
		s.device = device
	}
	if s.renderer == nil {
		dimmer := display.NewDimmer(s.config.Device.Brightness, s.config.Night.Brightness,
			s.config.Night.Enabled, s.config.Night.Latitude, s.config.Night.Longitude)
		s.renderer = display.NewRenderer(s.device, dimmer, s.logger)
	}
	return nil
}

func (s *Service) closeDevice() {
	closer, ok := s.device.(io.Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		s.logger.Error("failed to close LED device", logger.Err(err))
	}
}

func (s *Service) setState(state State) {
	s.stateLock.Lock()
	defer s.stateLock.Unlock()
	if s.state == state {
		return
	}
	s.logger.Debug("scheduler state changed", slog.String("from", s.state.String()),
		slog.String("to", state.String()))
	s.state = state
}
