// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package report

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	DataStartMarker = "<!-- Data starts here -->"
	DataEndMarker   = "<!-- Data ends here -->"
)

var markupTags = regexp.MustCompile(`<[^<]+?>`)

// Extract collects the reports found between the data start and end markers of a response
// body. The line holding the start marker is inspected as well, the line holding the end marker
// is not. Lines that carry no report are skipped.
func Extract(lines []string) Batch {
	batch := make(Batch)
	inData := false
	for _, line := range lines {
		if strings.Contains(line, DataStartMarker) {
			inData = true
		}
		if strings.Contains(line, DataEndMarker) {
			break
		}
		if !inData {
			continue
		}
		code, raw, ok := ExtractLine(line)
		if !ok {
			continue
		}
		batch[code] = raw
	}
	return batch
}

// ExtractLine strips the markup from a single response line and returns the station code and
// the bare report. ok is false if the line is malformed or holds no text.
func ExtractLine(line string) (code, raw string, ok bool) {
	if !utf8.ValidString(line) {
		return "", "", false
	}
	raw = markupTags.ReplaceAllString(line, "")
	raw = strings.ReplaceAll(raw, "\n", "")
	raw = strings.TrimSpace(raw)

	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return "", "", false
	}
	return fields[0], raw, true
}
