package model

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the picker format of the form (MM-DD-YYYY).
const DateLayout = "01-02-2006"

var dateLayouts = []string{DateLayout, time.DateOnly, time.RFC3339}

// ParseDate accepts MM-DD-YYYY, YYYY-MM-DD or RFC 3339. Blank input means
// "no date" and returns nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q, want MM-DD-YYYY", s)
}

// FormatDate renders t in DateLayout; nil renders as "".
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
