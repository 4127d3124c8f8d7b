// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package report retrieves raw METAR reports for a batch of stations.
package report

import (
	"context"
	"fmt"
)

// Provider is implemented by each report source.
type Provider interface {
	Name() string
	// Fetch retrieves the current reports for the given station codes in a single request.
	// Stations without a report are missing from the returned Batch.
	Fetch(ctx context.Context, codes []string) (Batch, error)
}

// Batch maps a station code to its raw report text as returned by one fetch.
type Batch map[string]string

// FetchError is returned by a Provider when the report source could not be queried. A
// StatusCode of zero means no response was received.
type FetchError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: fetch failed with status %d: %s", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: fetch failed: %s", e.Provider, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
