// Package codec reads and writes automaton records as JSON or YAML documents.
//
// Both formats are first decoded into a generic map and then bound to a domain.Record,
// so hand-written documents such as `alphabet: [0, 1]` (numbers in YAML) are accepted.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/automaton/pkg/domain"
)

// Format identifies a document encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ErrUnknownFormat is returned for unsupported file extensions or format names.
var ErrUnknownFormat = errors.New("unknown document format")

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// ParseFormat parses a format name ("json", "yaml", "yml").
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Decode parses a document into a Record. No validation is performed.
func Decode(data []byte, format Format) (domain.Record, error) {
	raw := map[string]any{}
	switch format {
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return domain.Record{}, fmt.Errorf("failed to parse json: %w", err)
		}
	case YAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return domain.Record{}, fmt.Errorf("failed to parse yaml: %w", err)
		}
	default:
		return domain.Record{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return FromMap(raw)
}

// FromMap binds a generic key/value document to a Record.
// Scalars are converted to strings; unknown keys are ignored and missing keys stay empty.
func FromMap(raw map[string]any) (domain.Record, error) {
	var rec domain.Record
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &rec,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return domain.Record{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return domain.Record{}, fmt.Errorf("failed to decode record: %w", err)
	}
	return rec, nil
}

// Encode renders a Record in the given format.
func Encode(rec domain.Record, format Format) ([]byte, error) {
	if rec.States == nil {
		rec.States = []string{}
	}
	if rec.Alphabet == nil {
		rec.Alphabet = []string{}
	}
	if rec.AcceptingStates == nil {
		rec.AcceptingStates = []string{}
	}
	if rec.Transitions == nil {
		rec.Transitions = map[string]map[string]string{}
	}

	switch format {
	case JSON:
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode json: %w", err)
		}
		return append(data, '\n'), nil
	case YAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(rec); err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ReadFile loads a Definition from a .json, .yaml or .yml file.
func ReadFile(path string) (*domain.Definition, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	rec, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return domain.FromRecord(rec), nil
}

// WriteFile stores a Definition, choosing the format from the extension.
func WriteFile(path string, d *domain.Definition) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Encode(domain.ToRecord(d), format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
