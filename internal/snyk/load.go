package snyk

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
)

// ErrMalformedInput is returned when the input cannot be decoded into scan results
var ErrMalformedInput = errors.New("malformed scan input")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Load decodes a single scan result object or an array of them.
// A single object is returned as a one-element slice.
func Load(r io.Reader) ([]ScanResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read scan input: %w", err)
	}
	return Decode(data)
}

// Decode is Load for an in-memory document
func Decode(data []byte) ([]ScanResult, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformedInput)
	}

	switch data[0] {
	case '{':
		var scan ScanResult
		if err := json.Unmarshal(data, &scan); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		return []ScanResult{scan}, nil
	case '[':
		var scans []ScanResult
		if err := json.Unmarshal(data, &scans); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		return scans, nil
	default:
		return nil, fmt.Errorf("%w: expected object or array, got %q", ErrMalformedInput, data[0])
	}
}

// LoadFile reads scan results from a file
func LoadFile(path string) ([]ScanResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scan input: %w", err)
	}
	defer f.Close()

	scans, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return scans, nil
}

// LoadPath reads scan results from stdin ("" or "-"), a single file, or every
// JSON report found under a directory. Results keep discovery order.
func LoadPath(path string, stdin io.Reader, exclude ...string) ([]ScanResult, error) {
	if path == "" || path == "-" {
		return Load(stdin)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat scan input: %w", err)
	}
	if !info.IsDir() {
		return LoadFile(path)
	}

	files, err := DiscoverReports(path, exclude...)
	if err != nil {
		return nil, fmt.Errorf("failed to discover reports: %w", err)
	}

	var all []ScanResult
	for _, file := range files {
		scans, err := LoadFile(file)
		if err != nil {
			return nil, err
		}
		all = append(all, scans...)
	}
	return all, nil
}
