// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strconv"
	"strings"
	"time"
)

// Field validators shared by the format readers. Invalid values are
// dropped rather than rejected: a bad date or duration must not make
// an otherwise sound document unreadable.

// ValidDate keeps ISO yyyy-mm-dd dates and drops anything else.
func ValidDate(s string) string {
	if s == "" {
		return ""
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return ""
	}
	return s
}

// ValidTime normalizes HH:MM and HH:MM:SS to HH:MM:SS and drops
// anything unparsable.
func ValidTime(s string) string {
	if s == "" {
		return ""
	}
	for strings.Count(s, ":") < 2 {
		s += ":00"
	}
	if _, err := time.Parse("15:04:05", s); err != nil {
		return ""
	}
	return s
}

// ValidNumber keeps non-negative integer strings and drops the rest.
func ValidNumber(s string) string {
	if s == "" {
		return ""
	}
	if v, err := strconv.Atoi(s); err != nil || v < 0 {
		return ""
	}
	return s
}

// SplitList splits on the separator, trimming whitespace and dropping
// empty and duplicate entries.
func SplitList(s, sep string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, sep) {
		part = strings.TrimSpace(part)
		if part == "" || contains(out, part) {
			continue
		}
		out = append(out, part)
	}
	return out
}
