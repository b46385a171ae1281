// Package templates loads the pre-written post texts and picks one per run.
package templates

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
)

// DefaultPath is where templates are read from when no path is configured.
const DefaultPath = "tweets.json"

// collectionKey is the object field holding the template array.
const collectionKey = "tweets"

// ParseError reports a template file that exists but cannot be read as a collection.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse templates %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads the template collection at path.
//
// The file holds either a JSON array of strings or an object whose "tweets" field is
// that array. A missing or empty file yields an empty collection and no error.
func Load(path string) ([]string, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("template file not found, using fallback content", "path", path)
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read templates %s: %w", path, err)
	}

	templates, err := Parse(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	slog.Debug("loaded templates", "path", path, "count", len(templates))
	return templates, nil
}

// Parse decodes a template document.
func Parse(data []byte) ([]string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []string{}, nil
	}

	switch data[0] {
	case '[':
		var templates []string
		if err := json.Unmarshal(data, &templates); err != nil {
			return nil, err
		}
		return templates, nil

	case '{':
		var doc map[string]json.RawMessage
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		raw, ok := doc[collectionKey]
		if !ok {
			return nil, fmt.Errorf("object has no %q field", collectionKey)
		}
		var templates []string
		if err := json.Unmarshal(raw, &templates); err != nil {
			return nil, fmt.Errorf("field %q: %w", collectionKey, err)
		}
		if templates == nil {
			templates = []string{}
		}
		return templates, nil
	}

	// Scalars, null and garbage all land here; null is treated as empty.
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	if v == nil {
		return []string{}, nil
	}
	return nil, fmt.Errorf("expected an array or an object, got %T", v)
}
