// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package metar

import "testing"

func TestCategory_String(t *testing.T) {
	tests := []struct {
		category Category
		want     string
	}{
		{NoData, "NO_DATA"},
		{VFR, "VFR"},
		{MVFR, "MVFR"},
		{IFR, "IFR"},
		{LIFR, "LIFR"},
		{Smoke, "SMOKE"},
		{Invalid, "INVALID"},
		{Category(99), "UNKNOWN"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := tc.category.String(); got != tc.want {
				t.Errorf("expected category string to be %q, got %q", tc.want, got)
			}
		})
	}
}

func TestCombine(t *testing.T) {
	t.Run("combine is commutative for all category pairs", func(t *testing.T) {
		for _, a := range Categories {
			for _, b := range Categories {
				if Combine(a, b) != Combine(b, a) {
					t.Errorf("expected Combine(%s, %s) == Combine(%s, %s), got %s and %s", a, b, b, a,
						Combine(a, b), Combine(b, a))
				}
			}
		}
	})
	t.Run("VFR is the neutral element for flight rules", func(t *testing.T) {
		for _, c := range []Category{VFR, MVFR, IFR, LIFR} {
			if got := Combine(c, VFR); got != c {
				t.Errorf("expected Combine(%s, VFR) to be %s, got %s", c, c, got)
			}
		}
	})
	t.Run("combination rules", func(t *testing.T) {
		tests := []struct {
			name       string
			ceiling    Category
			visibility Category
			want       Category
		}{
			{"invalid ceiling wins over smoke", Invalid, Smoke, Invalid},
			{"invalid visibility wins over LIFR", LIFR, Invalid, Invalid},
			{"smoke wins over LIFR ceiling", LIFR, Smoke, Smoke},
			{"smoke with clear ceiling", VFR, Smoke, Smoke},
			{"LIFR wins over IFR", IFR, LIFR, LIFR},
			{"IFR wins over MVFR", MVFR, IFR, IFR},
			{"MVFR wins over VFR", VFR, MVFR, MVFR},
			{"both VFR", VFR, VFR, VFR},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				if got := Combine(tc.ceiling, tc.visibility); got != tc.want {
					t.Errorf("expected %s, got %s", tc.want, got)
				}
			})
		}
	})
}
