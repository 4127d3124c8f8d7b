// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package awc_json

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
	"github.com/wneessen/metar-lights/internal/metar"
	"github.com/wneessen/metar-lights/internal/report"
)

const (
	name = "awc-json"

	DefaultEndpoint = "https://aviationweather.gov/api/data/metar"
	DefaultTimeout  = time.Second * 5
)

var ErrNoStations = errors.New("no station codes given")

type AWCJSON struct {
	endpoint string
	timeout  time.Duration
	log      *logger.Logger
	http     *http.Client
}

// response is a single element of the array returned by the METAR data API. Only the report
// and the flight category computed by the API are decoded.
type response struct {
	ICAOID string `json:"icaoId"`
	RawOb  string `json:"rawOb"`
	FltCat string `json:"fltCat"`
}

func New(http *http.Client, log *logger.Logger, endpoint string, timeout time.Duration) (*AWCJSON, error) {
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

	return &AWCJSON{endpoint: endpoint, timeout: timeout, http: http, log: log}, nil
}

func (a *AWCJSON) Name() string {
	return name
}

func (a *AWCJSON) Fetch(ctx context.Context, codes []string) (report.Batch, error) {
	if len(codes) == 0 {
		return nil, &report.FetchError{Provider: name, Err: ErrNoStations}
	}

	// ids=KSEA,KPDX&format=json&taf=false
	query := url.Values{}
	query.Set("ids", strings.Join(codes, ","))
	query.Set("format", "json")
	query.Set("taf", "false")

	var res []response
	code, err := a.http.GetWithTimeout(ctx, a.endpoint, &res, query, nil, a.timeout)
	if err != nil {
		return nil, &report.FetchError{Provider: name, StatusCode: code, Err: err}
	}
	if code != 200 {
		return nil, &report.FetchError{Provider: name, StatusCode: code,
			Err: fmt.Errorf("METAR API returned non-positive response code: %d", code)}
	}

	batch := make(report.Batch, len(res))
	for _, r := range res {
		raw := strings.TrimSpace(r.RawOb)
		if r.ICAOID == "" || raw == "" {
			continue
		}
		batch[r.ICAOID] = raw
		a.log.Debug("report decoded", slog.String("station", r.ICAOID),
			slog.String("api_category", r.FltCat), slog.String("category", metar.Classify(raw).String()))
	}
	a.log.Debug("reports decoded from METAR API", slog.Int("requested", len(codes)),
		slog.Int("received", len(batch)))
	return batch, nil
}
