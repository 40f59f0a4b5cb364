package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Decode unmarshals the envelope data into T; a body without a data member
// is decoded whole.
func Decode[T any](resp Response) (T, error) {
	var out T
	raw := resp.Data
	if len(raw) == 0 {
		raw = resp.Body
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}

// DecodeList unmarshals a list response. The backend returns either a bare
// array or an object such as {"count": 2, "images": [...]}, in which case
// field names the array member.
func DecodeList[T any](resp Response, field string) ([]T, error) {
	raw := bytes.TrimSpace(resp.Data)
	if len(raw) == 0 {
		return []T{}, nil
	}
	if raw[0] == '[' {
		var out []T
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return out, nil
	}
	var object map[string]json.RawMessage
	if err := json.Unmarshal(raw, &object); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	member, ok := object[field]
	if !ok || string(member) == "null" {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(member, &out); err != nil {
		return nil, fmt.Errorf("decode list %s: %w", field, err)
	}
	return out, nil
}

// ID is a backend identifier that may arrive as a JSON number or string.
type ID string

// UnmarshalJSON accepts numbers, strings and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes numeric ids as numbers so the backend's integer fields
// accept them.
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// String returns the identifier text.
func (id ID) String() string { return string(id) }

// Int returns the numeric identifier, or 0 when it is not numeric.
func (id ID) Int() int {
	n, err := strconv.Atoi(string(id))
	if err != nil {
		return 0
	}
	return n
}
