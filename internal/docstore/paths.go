package docstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// write is one compiled field assignment.
type write struct {
	path  []string
	value json.RawMessage
}

// compile validates and encodes fields. Paths are sorted so every backend
// applies them in the same order.
func compile(fields Fields) ([]write, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	writes := make([]write, 0, len(keys))
	for _, k := range keys {
		path, err := splitPath(k)
		if err != nil {
			return nil, err
		}
		for n := 1; n < len(path); n++ {
			if prefix := Path(path[:n]...); hasKey(fields, prefix) {
				return nil, fmt.Errorf("%q overlaps %q: %w", k, prefix, ErrInvalidPath)
			}
		}
		raw, err := json.Marshal(fields[k])
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", k, err)
		}
		writes = append(writes, write{path: path, value: raw})
	}
	return writes, nil
}

func hasKey(fields Fields, k string) bool {
	_, ok := fields[k]
	return ok
}

func splitPath(p string) ([]string, error) {
	if p == "" {
		return nil, fmt.Errorf("empty path: %w", ErrInvalidPath)
	}
	segs := strings.Split(p, ".")
	for _, s := range segs {
		if s == "" || strings.ContainsAny(s, `"\`) {
			return nil, fmt.Errorf("%q: %w", p, ErrInvalidPath)
		}
	}
	return segs, nil
}

// Path joins segments into a field path. Callers use it for keys such as
// user ids that end up as path segments.
func Path(segs ...string) string { return strings.Join(segs, ".") }

// ValidSegment reports whether s can be used as a single path segment.
func ValidSegment(s string) bool {
	return s != "" && !strings.ContainsAny(s, `."\`)
}

// applyWrites patches a JSON object in Go. Missing or non-object
// intermediate fields are replaced by objects.
func applyWrites(data []byte, writes []write) ([]byte, error) {
	doc, err := decodeObject(data)
	if err != nil {
		return nil, err
	}
	for _, w := range writes {
		v, err := decodeValue(w.value)
		if err != nil {
			return nil, err
		}
		node := doc
		for _, seg := range w.path[:len(w.path)-1] {
			child, ok := node[seg].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[seg] = child
			}
			node = child
		}
		node[w.path[len(w.path)-1]] = v
	}
	return json.Marshal(doc)
}

func decodeObject(data []byte) (map[string]any, error) {
	v, err := decodeValue(data)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return make(map[string]any), nil
	}
	return obj, nil
}

func decodeValue(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return v, nil
}
