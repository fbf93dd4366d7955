// Package yamlutil wraps YAML parsing so callers never import the YAML library directly.
package yamlutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrNotMapping     = errors.New("yamlutil: document is not a mapping")
)

func checkSize(data []byte) error {
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	return nil
}

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if err := checkSize(data); err != nil {
		return err
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

func Marshal(v any) ([]byte, error) {
	result, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return result, nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// DecodeMapping parses a loosely-typed YAML mapping.
//
// Blank input, comment-only input and an explicit null all decode to an empty
// map. Scalars and sequences at the top level return ErrNotMapping. Nested
// mappings are normalized to map[string]any so callers can type-switch on a
// single map type.
func DecodeMapping(data string) (map[string]any, error) {
	if err := checkSize([]byte(data)); err != nil {
		return nil, err
	}
	if strings.TrimSpace(data) == "" {
		return map[string]any{}, nil
	}

	var raw any
	if err := yaml.Unmarshal([]byte(data), &raw); err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	if raw == nil {
		return map[string]any{}, nil
	}

	m, ok := Normalize(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotMapping, raw)
	}
	return m, nil
}

// Normalize converts map[any]any values (and any nested inside slices or
// maps) to map[string]any, stringifying non-string keys.
func Normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Normalize(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = Normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Normalize(item)
		}
		return out
	default:
		return v
	}
}
