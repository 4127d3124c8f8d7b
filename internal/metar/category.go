// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package metar classifies raw METAR reports into flight-rule categories.
package metar

// Category is the flight-rule condition derived from a report. The zero value is NoData.
type Category uint8

const (
	// NoData marks a station without a current report.
	NoData Category = iota
	// VFR means ceiling at or above 3000ft and visibility above 5SM.
	VFR
	// MVFR means ceiling 1000ft to below 3000ft or visibility 3 to 5SM.
	MVFR
	// IFR means ceiling 500ft to below 1000ft or visibility 1 to below 3SM.
	IFR
	// LIFR means ceiling below 500ft or visibility below 1SM.
	LIFR
	// Smoke means reduced visibility caused by smoke (FU).
	Smoke
	// Invalid means the report could not be decoded.
	Invalid
)

// Categories lists every category in declaration order.
var Categories = []Category{NoData, VFR, MVFR, IFR, LIFR, Smoke, Invalid}

func (c Category) String() string {
	switch c {
	case NoData:
		return "NO_DATA"
	case VFR:
		return "VFR"
	case MVFR:
		return "MVFR"
	case IFR:
		return "IFR"
	case LIFR:
		return "LIFR"
	case Smoke:
		return "SMOKE"
	case Invalid:
		return "INVALID"
	default:
		return "UNKNOWN"
	}
}

// Combine merges the ceiling and the visibility classification of a report. The more restrictive
// category wins, an undecodable part invalidates the whole report and smoke overrides the flight
// rules. Combine is commutative.
func Combine(a, b Category) Category {
	switch {
	case a == Invalid || b == Invalid:
		return Invalid
	case a == Smoke || b == Smoke:
		return Smoke
	case a == LIFR || b == LIFR:
		return LIFR
	case a == IFR || b == IFR:
		return IFR
	case a == MVFR || b == MVFR:
		return MVFR
	default:
		return VFR
	}
}
