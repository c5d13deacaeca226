package domain

import (
	"bytes"
	"encoding/json"
)

// ErrorMap is an ordered field -> message map. Fields keep the order in which
// they first failed and only the first message per field is retained.
// The zero value is an empty, valid map.
type ErrorMap struct {
	fields   []string
	messages map[string]string
}

// Add records msg for field unless the field already has a message.
func (m *ErrorMap) Add(field, msg string) {
	if m.messages == nil {
		m.messages = make(map[string]string)
	}
	if _, ok := m.messages[field]; ok {
		return
	}
	m.fields = append(m.fields, field)
	m.messages[field] = msg
}

func (m ErrorMap) Has(field string) bool {
	_, ok := m.messages[field]
	return ok
}

func (m ErrorMap) Get(field string) (string, bool) {
	msg, ok := m.messages[field]
	return msg, ok
}

func (m ErrorMap) Len() int {
	return len(m.fields)
}

// Empty reports whether the input passed validation.
func (m ErrorMap) Empty() bool {
	return len(m.fields) == 0
}

// Fields returns the failing fields in insertion order.
func (m ErrorMap) Fields() []string {
	out := make([]string, len(m.fields))
	copy(out, m.fields)
	return out
}

// AsMap returns an unordered copy.
func (m ErrorMap) AsMap() map[string]string {
	out := make(map[string]string, len(m.fields))
	for k, v := range m.messages {
		out[k] = v
	}
	return out
}

// MarshalJSON encodes the map as a JSON object preserving field order.
func (m ErrorMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range m.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.messages[field])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
