// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package aviationweather retrieves raw METARs from the aviationweather.gov report page.
package aviationweather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/wneessen/metar-lights/internal/http"
	"github.com/wneessen/metar-lights/internal/logger"
	"github.com/wneessen/metar-lights/internal/report"
)

const (
	name = "aviationweather"

	DefaultEndpoint = "https://www.aviationweather.gov/metar/data"
	DefaultTimeout  = time.Second * 5
)

var ErrNoStations = errors.New("no station codes given")

type AviationWeather struct {
	endpoint string
	timeout  time.Duration
	log      *logger.Logger
	http     *http.Client
}

// New returns a provider for the given endpoint. An empty endpoint or a non-positive timeout
// selects the defaults.
func New(http *http.Client, log *logger.Logger, endpoint string, timeout time.Duration) (*AviationWeather, error) {
	if http == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &AviationWeather{endpoint: endpoint, timeout: timeout, http: http, log: log}, nil
}

func (a *AviationWeather) Name() string {
	return name
}

// Fetch requests the raw reports of all given stations with a single request and extracts them
// from the data section of the returned page.
func (a *AviationWeather) Fetch(ctx context.Context, codes []string) (report.Batch, error) {
	if len(codes) == 0 {
		return nil, &report.FetchError{Provider: name, Err: ErrNoStations}
	}

	// ids=KSEA%20KPDX&format=raw&hours=0&taf=off&layout=off&date=0
	query := url.Values{}
	query.Set("ids", strings.Join(codes, " "))
	query.Set("format", "raw")
	query.Set("hours", "0")
	query.Set("taf", "off")
	query.Set("layout", "off")
	query.Set("date", "0")

	code, lines, err := a.http.GetLinesWithTimeout(ctx, a.endpoint, query, nil, a.timeout)
	if err != nil {
		return nil, &report.FetchError{Provider: name, StatusCode: code, Err: err}
	}
	if code != 200 {
		return nil, &report.FetchError{Provider: name, StatusCode: code,
			Err: fmt.Errorf("report page returned non-positive response code: %d", code)}
	}

	batch := report.Extract(lines)
	a.log.Debug("reports extracted from report page", slog.Int("requested", len(codes)),
		slog.Int("received", len(batch)))
	return batch, nil
}
