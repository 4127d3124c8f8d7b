// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package metar

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// UnlimitedCeiling is assumed when a report has no broken or overcast layer.
	UnlimitedCeiling = 10000

	remarksMarker = "RMK"
	smokeToken    = "FU"
)

// visibilityPattern matches statute mile visibilities like "10SM", "1/2SM" or the mixed
// fraction "1 1/2SM". The first group is the whole number part of a mixed fraction.
var visibilityPattern = regexp.MustCompile(`( [0-9] )?([0-9]/?[0-9]?SM)`)

// Classify returns the flight-rule category of a raw report.
func Classify(raw string) Category {
	return Combine(CeilingCategory(raw), VisibilityCategory(raw))
}

// Ceiling returns the lowest broken or overcast layer of the report in feet. Remarks are not
// considered. ok is false if a cloud layer carries no decodable height.
func Ceiling(raw string) (feet int, ok bool) {
	current, _, _ := strings.Cut(raw, remarksMarker)

	feet = UnlimitedCeiling
	for _, token := range strings.Fields(current) {
		if !strings.Contains(token, "BKN") && !strings.Contains(token, "OVC") {
			continue
		}
		height, err := strconv.Atoi(digits(token))
		if err != nil {
			return 0, false
		}
		if height < feet/100 {
			feet = height * 100
		}
	}
	return feet, true
}

// CeilingCategory classifies the report by its ceiling only.
func CeilingCategory(raw string) Category {
	feet, ok := Ceiling(raw)
	switch {
	case !ok:
		return Invalid
	case feet < 500:
		return LIFR
	case feet < 1000:
		return IFR
	case feet < 3000:
		return MVFR
	default:
		return VFR
	}
}

// VisibilityCategory classifies the report by its prevailing visibility only. A report without a
// visibility group is considered unlimited. Smoke only applies to reduced visibilities.
func VisibilityCategory(raw string) Category {
	match := visibilityPattern.FindStringSubmatch(raw)
	if match == nil {
		return VFR
	}
	whole, value := match[1], match[2]
	if value == "" {
		return Invalid
	}

	reduced := func(cat Category) Category {
		if hasSmoke(raw) {
			return Smoke
		}
		return cat
	}

	if whole != "" {
		return reduced(IFR)
	}
	if strings.Contains(value, "/") {
		return reduced(LIFR)
	}
	miles, err := strconv.Atoi(strings.TrimSuffix(value, "SM"))
	if err != nil {
		return Invalid
	}
	switch {
	case miles < 3:
		return reduced(IFR)
	case miles <= 5:
		return reduced(MVFR)
	default:
		return VFR
	}
}

func hasSmoke(raw string) bool {
	for _, token := range strings.Fields(raw) {
		if token == smokeToken {
			return true
		}
	}
	return false
}

func digits(token string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, token)
}
