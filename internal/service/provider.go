// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/wneessen/metar-lights/internal/config"
	"github.com/wneessen/metar-lights/internal/display"
	"github.com/wneessen/metar-lights/internal/http"
	"github.com/wneessen/metar-lights/internal/logger"
	"github.com/wneessen/metar-lights/internal/report"
	awcjson "github.com/wneessen/metar-lights/internal/report/provider/awc-json"
	"github.com/wneessen/metar-lights/internal/report/provider/aviationweather"
)

const (
	deviceOpenDelay   = time.Second
	deviceOpenRetries = 3
)

func (s *Service) selectReportProvider() (report.Provider, error) {
	switch strings.ToLower(s.config.Source.Provider) {
	case config.ProviderAviationWeather:
		provider, err := aviationweather.New(http.New(s.logger), s.logger, s.config.Source.URL,
			s.config.Source.Timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to create aviationweather report provider: %w", err)
		}
		return provider, nil
	case config.ProviderAWCJSON:
		provider, err := awcjson.New(http.New(s.logger), s.logger, s.config.Source.URL, s.config.Source.Timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to create awc-json report provider: %w", err)
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("unsupported report provider: %s", s.config.Source.Provider)
	}
}

func (s *Service) selectDevice(ctx context.Context) (display.Device, error) {
	switch strings.ToLower(s.config.Device.Type) {
	case config.DeviceWS2801:
		return s.openWS2801(ctx)
	case config.DeviceConsole:
		device, err := display.NewConsole(s.output, s.config.Device.PixelCount)
		if err != nil {
			return nil, fmt.Errorf("failed to create console device: %w", err)
		}
		return device, nil
	default:
		return nil, fmt.Errorf("unsupported device type: %s", s.config.Device.Type)
	}
}

// openWS2801 opens the SPI device. The device node might show up late after boot, so opening
// is retried a few times.
func (s *Service) openWS2801(ctx context.Context) (*display.WS2801, error) {
	var device *display.WS2801
	open := func() error {
		var err error
		device, err = s.openWS2801Device(s.config.Device.Path, s.config.Device.PixelCount)
		return err
	}
	notify := func(err error, wait time.Duration) {
		s.logger.Warn("failed to open LED device, retrying", slog.String("path", s.config.Device.Path),
			slog.Duration("wait", wait), logger.Err(err))
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(deviceOpenDelay),
		deviceOpenRetries), ctx)
	if err := backoff.RetryNotify(open, policy, notify); err != nil {
		return nil, fmt.Errorf("failed to open ws2801 device %s: %w", s.config.Device.Path, err)
	}
	return device, nil
}
