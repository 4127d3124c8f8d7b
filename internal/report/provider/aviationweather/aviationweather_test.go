// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package aviationweather

import (
	"context"
	"errors"
	"io"
	"log/slog"
	stdhttp "net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/wneessen/metar-lights/internal/http"
	"github.com/wneessen/metar-lights/internal/logger"
	"github.com/wneessen/metar-lights/internal/report"
	"github.com/wneessen/metar-lights/internal/testhelper"
)

const testPage = "../../../../testdata/aviationweather.html"

func TestNew(t *testing.T) {
	log := logger.NewLogger(slog.LevelError, io.Discard)
	t.Run("new provider with defaults", func(t *testing.T) {
		provider, err := New(http.New(log), log, "", 0)
		if err != nil {
			t.Fatalf("failed to create provider: %s", err)
		}
		if provider.endpoint != DefaultEndpoint {
			t.Errorf("expected endpoint to be %q, got %q", DefaultEndpoint, provider.endpoint)
		}
		if provider.timeout != DefaultTimeout {
			t.Errorf("expected timeout to be %s, got %s", DefaultTimeout, provider.timeout)
		}
		if provider.Name() != name {
			t.Errorf("expected name to be %q, got %q", name, provider.Name())
		}
	})
	t.Run("new provider without http client fails", func(t *testing.T) {
		if _, err := New(nil, log, "", 0); err == nil {
			t.Error("expected provider creation to fail")
		}
	})
	t.Run("new provider without logger fails", func(t *testing.T) {
		if _, err := New(http.New(log), nil, "", 0); err == nil {
			t.Error("expected provider creation to fail")
		}
	})
}

func TestAviationWeather_Fetch(t *testing.T) {
	t.Run("fetching reports for a batch of stations", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			query := req.URL.Query()
			if query.Get("ids") != "KSEA KPDX KBFI" {
				t.Errorf("expected station ids to be joined by spaces, got %q", query.Get("ids"))
			}
			if query.Get("format") != "raw" || query.Get("taf") != "off" {
				t.Errorf("expected raw format without TAF, got %q", req.URL.RawQuery)
			}
			data, err := os.Open(testPage)
			if err != nil {
				t.Fatalf("failed to open test page: %s", err)
			}
			return &stdhttp.Response{StatusCode: 200, Body: data, Header: make(stdhttp.Header)}, nil
		}
		provider := testProvider(t, rtFn)

		batch, err := provider.Fetch(t.Context(), []string{"KSEA", "KPDX", "KBFI"})
		if err != nil {
			t.Fatalf("failed to fetch reports: %s", err)
		}
		want := "KPDX 252153Z 5KT 1/2SM FU OVC003"
		if batch["KPDX"] != want {
			t.Errorf("expected report for KPDX to be %q, got %q", want, batch["KPDX"])
		}
		if _, ok := batch["KXXX"]; ok {
			t.Error("expected reports outside the data section to be ignored")
		}
	})
	t.Run("non-success status is a fetch error", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return &stdhttp.Response{
				StatusCode: 502,
				Body:       io.NopCloser(strings.NewReader("<html>bad gateway</html>")),
				Header:     make(stdhttp.Header),
			}, nil
		}
		provider := testProvider(t, rtFn)

		_, err := provider.Fetch(t.Context(), []string{"KSEA"})
		var fetchErr *report.FetchError
		if !errors.As(err, &fetchErr) {
			t.Fatalf("expected a FetchError, got %v", err)
		}
		if fetchErr.StatusCode != 502 {
			t.Errorf("expected status code 502, got %d", fetchErr.StatusCode)
		}
	})
	t.Run("connection failure is a fetch error", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return nil, errors.New("connection refused")
		}
		provider := testProvider(t, rtFn)

		_, err := provider.Fetch(t.Context(), []string{"KSEA"})
		var fetchErr *report.FetchError
		if !errors.As(err, &fetchErr) {
			t.Fatalf("expected a FetchError, got %v", err)
		}
		if fetchErr.StatusCode != 0 {
			t.Errorf("expected no status code, got %d", fetchErr.StatusCode)
		}
	})
	t.Run("timeout is a fetch error", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			<-req.Context().Done()
			return nil, req.Context().Err()
		}
		log := logger.NewLogger(slog.LevelError, io.Discard)
		client := http.New(log)
		client.Transport = testhelper.MockRoundTripper{Fn: rtFn}
		provider, err := New(client, log, "", time.Millisecond)
		if err != nil {
			t.Fatalf("failed to create provider: %s", err)
		}

		_, err = provider.Fetch(t.Context(), []string{"KSEA"})
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected deadline exceeded, got %v", err)
		}
	})
	t.Run("fetching without stations fails", func(t *testing.T) {
		provider := testProvider(t, nil)
		_, err := provider.Fetch(t.Context(), nil)
		if !errors.Is(err, ErrNoStations) {
			t.Errorf("expected error to be %s, got %v", ErrNoStations, err)
		}
	})
}

func testProvider(t *testing.T, fn func(*stdhttp.Request) (*stdhttp.Response, error)) *AviationWeather {
	t.Helper()
	log := logger.NewLogger(slog.LevelError, io.Discard)
	client := http.New(log)
	client.Transport = testhelper.MockRoundTripper{Fn: fn}
	provider, err := New(client, log, "", 0)
	if err != nil {
		t.Fatalf("failed to create provider: %s", err)
	}
	return provider
}
