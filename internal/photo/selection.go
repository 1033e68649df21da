package photo

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// File is one selected upload.
type File struct {
	Name string
	Data []byte
}

// Selection is what a file picker hands over. Only the first file is used.
type Selection []File

// First returns the file that an upload applies. An empty selection reports
// false and callers treat it as a no-op.
func (s Selection) First() (File, bool) {
	if len(s) == 0 {
		return File{}, false
	}
	return s[0], true
}

// ReadSelection reads the first non-blank path from disk. Extra paths are
// ignored, mirroring a picker that only honours the first file.
func ReadSelection(paths []string) (Selection, error) {
	var picked []string
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			picked = append(picked, p)
		}
	}
	if len(picked) == 0 {
		return nil, nil
	}
	if len(picked) > 1 {
		slog.Debug("ignoring extra files in selection", "used", picked[0], "ignored", len(picked)-1)
	}
	b, err := os.ReadFile(picked[0])
	if err != nil {
		return nil, fmt.Errorf("read photo: %w", err)
	}
	return Selection{{Name: picked[0], Data: b}}, nil
}
