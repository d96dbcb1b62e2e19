package store

import (
	"maps"
	"strconv"
)

// Hash is a mapping of field name to binary value, adapted from the
// teacher's Hash container. Locking moved to the enclosing Keyspace bucket,
// since an entry handle is already exclusive/shared for the life of a
// dispatch call (spec: no suspension while a per-key lock is held).
type Hash struct {
	fields map[string][]byte
}

func NewHash() *Hash {
	return &Hash{fields: make(map[string][]byte)}
}

// Set stores value under field, returning true if field is new.
func (h *Hash) Set(field string, value []byte) bool {
	_, exists := h.fields[field]
	h.fields[field] = value
	return !exists
}

func (h *Hash) Get(field string) ([]byte, bool) {
	v, ok := h.fields[field]
	return v, ok
}

func (h *Hash) Del(field string) bool {
	_, exists := h.fields[field]
	if exists {
		delete(h.fields, field)
	}
	return exists
}

func (h *Hash) Exists(field string) bool {
	_, ok := h.fields[field]
	return ok
}

func (h *Hash) Len() int {
	return len(h.fields)
}

func (h *Hash) Keys() []string {
	keys := make([]string, 0, len(h.fields))
	for k := range h.fields {
		keys = append(keys, k)
	}
	return keys
}

func (h *Hash) Values() [][]byte {
	vals := make([][]byte, 0, len(h.fields))
	for _, v := range h.fields {
		vals = append(vals, v)
	}
	return vals
}

func (h *Hash) GetAll() map[string][]byte {
	result := make(map[string][]byte, len(h.fields))
	maps.Copy(result, h.fields)
	return result
}

// IncrBy adds delta to the field's integer value (absent field treated as
// 0) and stores the decimal result, returning the new value.
func (h *Hash) IncrBy(field string, delta int64) (int64, error) {
	var current int64
	if raw, exists := h.fields[field]; exists {
		parsed, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return 0, err
		}
		current = parsed
	}

	newValue := current + delta
	// overflow check: sign of the result must match expectation
	if (delta > 0 && newValue < current) || (delta < 0 && newValue > current) {
		return 0, errOverflow
	}

	h.fields[field] = []byte(strconv.FormatInt(newValue, 10))
	return newValue, nil
}

// IncrByFloat adds delta to the field's float value (absent field treated
// as 0.0) and stores the shortest-roundtrip decimal result.
func (h *Hash) IncrByFloat(field string, delta float64) (float64, error) {
	var current float64
	if raw, exists := h.fields[field]; exists {
		parsed, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return 0, errNotFloat
		}
		current = parsed
	}

	newValue := current + delta
	h.fields[field] = []byte(FormatFloat(newValue))
	return newValue, nil
}
