package patch

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitPath(t *testing.T) {
	tests := map[string]struct {
		input  string
		output []string
	}{
		"empty string":      {"", []string{""}},
		"whitespace string": {" ", []string{""}},
		"single key":        {"key", []string{"key"}},
		"nested key":        {"key1.key2", []string{"key1", "key2"}},
		"malformed":         {"....", []string{""}},
		"duplicate keys":    {"key1.key2.key2.key3", []string{"key1", "key2", "key2", "key3"}},
		"numeric key":       {"key1.2.key2", []string{"key1", "2", "key2"}},
		"extra whitespace":  {" key1 . 2 . key2 ", []string{"key1", "2", "key2"}},
		"extra separators":  {".key1.key2.key3.", []string{"key1", "key2", "key3"}},
		"keys with symbols": {"DeviceProperties.Add.PciRoot(0x0)/Pci(0x1f,0x3).layout-id", []string{"DeviceProperties", "Add", "PciRoot(0x0)/Pci(0x1f,0x3)", "layout-id"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			keys, last := splitPath(tt.input)
			keys = append(keys, last)

			if diff := cmp.Diff(tt.output, keys); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestIndex(t *testing.T) {
	tests := map[string]struct {
		value   any
		key     string
		want    any
		wantErr bool
	}{
		"map":                 {map[string]any{"test": "value"}, "test", "value", false},
		"map, int key":        {map[string]any{"4": "value"}, "4", "value", false},
		"map, missing key":    {map[string]any{"test": "value"}, "key", nil, true},
		"array":               {[]any{"a", "b"}, "1", "b", false},
		"array, out of range": {[]any{"a"}, "3", nil, true},
		"array, string key":   {[]any{"a"}, "x", nil, true},
		"scalar":              {7, "0", nil, true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := index(tt.value, tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("index() error = %v, wantErr %v", err, tt.wantErr)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestMutate(t *testing.T) {
	tests := map[string]struct {
		s       any
		key     string
		value   any
		want    any
		wantErr bool
	}{
		"map":                 {map[string]any{"one": 1, "two": 2, "three": 3}, "two", "TWO!", map[string]any{"one": 1, "two": "TWO!", "three": 3}, false},
		"slice":               {[]any{1, 2, 3, 4}, "0", 10, []any{10, 2, 3, 4}, false},
		"slice, out of range": {[]any{1}, "1", 10, []any{1}, true},
		"scalar":              {"value", "0", 10, "value", true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := mutate(tt.s, tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("mutate() error = %v, wantErr %v", err, tt.wantErr)
			}

			if diff := cmp.Diff(tt.want, tt.s); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestSet(t *testing.T) {
	tests := map[string]struct {
		data    map[string]any
		path    string
		value   any
		want    map[string]any
		wantErr bool
	}{
		"single key":     {map[string]any{"key": "value"}, "key", 7, map[string]any{"key": 7}, false},
		"new key":        {map[string]any{}, "key", 7, map[string]any{"key": 7}, false},
		"nested key":     {map[string]any{"key": map[string]any{"nested": "value"}}, "key.nested", 7, map[string]any{"key": map[string]any{"nested": 7}}, false},
		"through array":  {map[string]any{"key": []any{map[string]any{"a": 1}}}, "key.0.a", 2, map[string]any{"key": []any{map[string]any{"a": 2}}}, false},
		"missing parent": {map[string]any{}, "missing.key", 7, map[string]any{}, true},
		"through scalar": {map[string]any{"key": "value"}, "key.nested", 7, map[string]any{"key": "value"}, true},
		"empty path":     {map[string]any{}, " . ", 7, map[string]any{}, true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			evaluator := NewEvaluator(tt.data)
			_, err := evaluator.Set(tt.path, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set() error = %v, wantErr %v", err, tt.wantErr)
			}

			if diff := cmp.Diff(tt.want, evaluator.data); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestAppend(t *testing.T) {
	tests := map[string]struct {
		data    map[string]any
		path    string
		value   any
		want    map[string]any
		wantErr bool
	}{
		"single key": {map[string]any{"key": []any{1, 2, 3}}, "key", 7, map[string]any{"key": []any{1, 2, 3, 7}}, false},
		"nested key": {map[string]any{"key": map[string]any{"nested": []any{1, 2, 3}}}, "key.nested", 7, map[string]any{"key": map[string]any{"nested": []any{1, 2, 3, 7}}}, false},
		"empty list": {map[string]any{"key": []any{}}, "key", "a", map[string]any{"key": []any{"a"}}, false},
		"not a list": {map[string]any{"key": "value"}, "key", 7, map[string]any{"key": "value"}, true},
		"missing":    {map[string]any{}, "key", 7, map[string]any{}, true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			evaluator := NewEvaluator(tt.data)
			_, err := evaluator.Append(tt.path, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Append() error = %v, wantErr %v", err, tt.wantErr)
			}

			if diff := cmp.Diff(tt.want, evaluator.data); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	tests := map[string]struct {
		data    map[string]any
		path    string
		want    map[string]any
		wantErr bool
	}{
		"single key":     {map[string]any{"key": []any{1, 2, 3}}, "key", map[string]any{}, false},
		"nested key":     {map[string]any{"key": map[string]any{"nested": []any{1, 2, 3}}}, "key.nested", map[string]any{"key": map[string]any{}}, false},
		"array":          {map[string]any{"key": []any{1, 2, 3}}, "key.1", map[string]any{"key": []any{1, 3}}, false},
		"nested array":   {map[string]any{"a": map[string]any{"b": []any{1, 2}}}, "a.b.0", map[string]any{"a": map[string]any{"b": []any{2}}}, false},
		"missing key":    {map[string]any{"key": 1}, "other", map[string]any{"key": 1}, false},
		"array, bounds":  {map[string]any{"key": []any{1}}, "key.4", map[string]any{"key": []any{1}}, true},
		"through scalar": {map[string]any{"key": 1}, "key.nested", map[string]any{"key": 1}, true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			evaluator := NewEvaluator(tt.data)
			_, err := evaluator.Delete(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Delete() error = %v, wantErr %v", err, tt.wantErr)
			}

			if diff := cmp.Diff(tt.want, evaluator.data); diff != "" {
				t.Error(diff)
			}
		})
	}
}
