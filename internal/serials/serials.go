// Package serials loads the placeholder values substituted into templates.
package serials

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
)

var (
	ErrEmpty      = errors.New("contains no values")
	ErrNotMapping = errors.New("is not a mapping")
)

// Entry is a single placeholder key and its replacement value.
type Entry struct {
	Key   string
	Value string
}

// Serials is the ordered set of placeholder values, in the order they appear
// in the source document.
type Serials []Entry

// ValueError reports a key whose value cannot be used as replacement text.
type ValueError struct {
	Key  string
	Kind string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("key %q has a %s value, expected a scalar", e.Key, e.Kind)
}

// Parse decodes a YAML mapping into Serials. Every key and value is converted
// to a string; null, sequence and mapping values are rejected. A key defined
// more than once keeps its first position and its last value.
func Parse(data []byte) (Serials, error) {
	var doc any
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap(), yaml.AllowDuplicateMapKey()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMapping, err)
	}

	if doc == nil {
		return nil, ErrEmpty
	}

	ms, ok := doc.(yaml.MapSlice)
	if !ok {
		return nil, fmt.Errorf("%w: found a %s document", ErrNotMapping, kindOf(doc))
	}

	if len(ms) == 0 {
		return nil, ErrEmpty
	}

	out := make(Serials, 0, len(ms))
	seen := make(map[string]int, len(ms))
	for _, item := range ms {
		key, ok := toString(item.Key)
		if !ok {
			return nil, &ValueError{Key: fmt.Sprint(item.Key), Kind: kindOf(item.Key)}
		}

		value, ok := toString(item.Value)
		if !ok {
			return nil, &ValueError{Key: key, Kind: kindOf(item.Value)}
		}

		if i, ok := seen[key]; ok {
			out[i].Value = value
			continue
		}

		seen[key] = len(out)
		out = append(out, Entry{Key: key, Value: value})
	}

	return out, nil
}

func toString(v any) (string, bool) {
	switch tv := v.(type) {
	case string:
		return tv, true
	case bool:
		return strconv.FormatBool(tv), true
	case int:
		return strconv.Itoa(tv), true
	case int64:
		return strconv.FormatInt(tv, 10), true
	case uint64:
		return strconv.FormatUint(tv, 10), true
	case float64:
		switch {
		case math.IsInf(tv, 1):
			return ".inf", true
		case math.IsInf(tv, -1):
			return "-.inf", true
		case math.IsNaN(tv):
			return ".nan", true
		}
		return strconv.FormatFloat(tv, 'f', -1, 64), true
	case time.Time:
		return tv.Format(time.RFC3339), true
	}
	return "", false
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "sequence"
	case string, bool, int, int64, uint64, float64:
		return "scalar"
	case map[string]any, map[any]any, yaml.MapSlice:
		return "mapping"
	}
	return fmt.Sprintf("%T", v)
}
