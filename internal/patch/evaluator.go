package patch

import (
	"fmt"
	"strconv"
	"strings"
)

// Evaluator edits a decoded property list dictionary through dot-delimited
// paths such as "Misc.Security.AllowSetDefault". Numeric segments index
// arrays.
type Evaluator struct {
	data map[string]any
}

func NewEvaluator(data map[string]any) *Evaluator {
	return &Evaluator{data: data}
}

// splitPath returns the parent keys and the final key of path. Segments are
// trimmed and empty segments dropped, so "Misc.Security.AllowSetDefault"
// yields (["Misc", "Security"], "AllowSetDefault").
func splitPath(path string) ([]string, string) {
	tokens := strings.Split(path, ".")
	keys := make([]string, 0, len(tokens))

	for _, key := range tokens {
		strippedKey := strings.TrimSpace(key)
		if strippedKey == "" {
			continue
		}
		keys = append(keys, strippedKey)
	}

	if len(keys) == 0 {
		return []string{}, ""
	}

	n := len(keys) - 1
	return keys[:n], keys[n]
}

func sliceIndex(s []any, key string) (int, error) {
	i, err := strconv.Atoi(key)
	if err != nil {
		return 0, fmt.Errorf("cannot index array with key %q", key)
	}
	if i < 0 || i >= len(s) {
		return 0, fmt.Errorf("index %d out of bounds for array of length %d", i, len(s))
	}
	return i, nil
}

// index returns the value stored under key in a dictionary or array.
func index(container any, key string) (any, error) {
	switch c := container.(type) {
	case map[string]any:
		value, ok := c[key]
		if !ok {
			return nil, fmt.Errorf("key not found: %q", key)
		}
		return value, nil
	case []any:
		i, err := sliceIndex(c, key)
		if err != nil {
			return nil, err
		}
		return c[i], nil
	}

	return nil, fmt.Errorf("cannot index %T with key %q", container, key)
}

// mutate stores value under key in a dictionary or an existing array slot.
func mutate(container any, key string, value any) error {
	switch c := container.(type) {
	case map[string]any:
		c[key] = value
		return nil
	case []any:
		i, err := sliceIndex(c, key)
		if err != nil {
			return err
		}
		c[i] = value
		return nil
	}

	return fmt.Errorf("cannot set key %q on %T", key, container)
}

func (e *Evaluator) walk(keys []string) (any, error) {
	var cur any = e.data
	for _, key := range keys {
		next, err := index(cur, key)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

func (e *Evaluator) target(op, path string) ([]string, string, any, error) {
	keys, last := splitPath(path)
	if last == "" {
		return nil, "", nil, fmt.Errorf("%s: empty path %q", op, path)
	}

	parent, err := e.walk(keys)
	if err != nil {
		return nil, "", nil, fmt.Errorf("%s %s: %w", op, path, err)
	}

	return keys, last, parent, nil
}

// Set replaces the value at path. The parent must already exist.
func (e *Evaluator) Set(path string, value any) (bool, error) {
	_, last, parent, err := e.target("set", path)
	if err != nil {
		return false, err
	}

	if err := mutate(parent, last, value); err != nil {
		return false, fmt.Errorf("set %s: %w", path, err)
	}

	return true, nil
}

// Append adds value to the end of the array at path.
func (e *Evaluator) Append(path string, value any) (bool, error) {
	_, last, parent, err := e.target("append", path)
	if err != nil {
		return false, err
	}

	current, err := index(parent, last)
	if err != nil {
		return false, fmt.Errorf("append %s: %w", path, err)
	}

	arr, ok := current.([]any)
	if !ok {
		return false, fmt.Errorf("append %s: cannot append to non-array entry %T", path, current)
	}

	if err := mutate(parent, last, append(arr, value)); err != nil {
		return false, fmt.Errorf("append %s: %w", path, err)
	}

	return true, nil
}

// Delete removes the dictionary key or array element at path. Deleting a
// missing dictionary key is not an error.
func (e *Evaluator) Delete(path string) (bool, error) {
	keys, last, parent, err := e.target("delete", path)
	if err != nil {
		return false, err
	}

	switch p := parent.(type) {
	case map[string]any:
		delete(p, last)
		return true, nil
	case []any:
		i, err := sliceIndex(p, last)
		if err != nil {
			return false, fmt.Errorf("delete %s: %w", path, err)
		}

		trimmed := make([]any, 0, len(p)-1)
		trimmed = append(trimmed, p[:i]...)
		trimmed = append(trimmed, p[i+1:]...)

		// arrays never sit at the root, so there is always a grandparent
		n := len(keys) - 1
		grandparent, err := e.walk(keys[:n])
		if err != nil {
			return false, fmt.Errorf("delete %s: %w", path, err)
		}
		if err := mutate(grandparent, keys[n], trimmed); err != nil {
			return false, fmt.Errorf("delete %s: %w", path, err)
		}
		return true, nil
	}

	return false, fmt.Errorf("delete %s: cannot delete from %T", path, parent)
}
