// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/wneessen/metar-lights/internal/metar"
)

// logStatus writes a summary of the registry to the log. Per-station details are logged at
// debug level.
func (s *Service) logStatus(context.Context) {
	counts := make(map[metar.Category]int, len(metar.Categories))
	for _, st := range s.registry.Stations() {
		counts[st.Category]++

		attrs := []any{slog.String("station", st.Code), slog.String("category", st.Category.String())}
		if !st.FetchedAt.IsZero() {
			attrs = append(attrs, slog.Duration("age", s.clock.Since(st.FetchedAt).Truncate(time.Second)))
		}
		s.logger.Debug("station status", attrs...)
	}

	attrs := make([]any, 0, len(metar.Categories)+2)
	attrs = append(attrs, slog.String("state", s.State().String()),
		slog.Int("failures", s.retry.Failures()))
	for _, category := range metar.Categories {
		attrs = append(attrs, slog.Int(strings.ToLower(category.String()), counts[category]))
	}
	s.logger.Info("station status report", attrs...)
}
