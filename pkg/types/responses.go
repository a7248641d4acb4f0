// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Responses maps status codes to responses and keeps insertion order.
type Responses struct {
	codes []string
	items map[string]*Response
}

// NewResponses returns an empty Responses.
func NewResponses() *Responses {
	return &Responses{items: make(map[string]*Response)}
}

// Set stores resp under code. A new code is appended; an existing one keeps its position.
func (r *Responses) Set(code string, resp *Response) {
	if r.items == nil {
		r.items = make(map[string]*Response)
	}
	if _, ok := r.items[code]; !ok {
		r.codes = append(r.codes, code)
	}
	r.items[code] = resp
}

// Get returns the response for code, or nil.
func (r *Responses) Get(code string) *Response {
	if r == nil {
		return nil
	}
	return r.items[code]
}

// Codes returns the status codes in insertion order.
func (r *Responses) Codes() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.codes))
	copy(out, r.codes)
	return out
}

// Len returns the number of responses.
func (r *Responses) Len() int {
	if r == nil {
		return 0
	}
	return len(r.codes)
}

// MarshalJSON writes the responses in insertion order.
func (r Responses) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, code := range r.codes {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(code)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.items[code])
		if err != nil {
			return nil, fmt.Errorf("failed to encode response %s: %w", code, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads responses preserving document order.
func (r *Responses) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("responses: expected object")
	}
	*r = Responses{items: make(map[string]*Response)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		code, ok := tok.(string)
		if !ok {
			return fmt.Errorf("responses: expected status code key")
		}
		var resp Response
		if err := dec.Decode(&resp); err != nil {
			return fmt.Errorf("failed to decode response %s: %w", code, err)
		}
		r.Set(code, &resp)
	}
	_, err = dec.Token()
	return err
}

// MarshalYAML writes the responses in insertion order.
func (r Responses) MarshalYAML() (interface{}, error) {
	return jsonToYAMLNode(r)
}

// UnmarshalYAML reads responses preserving document order.
func (r *Responses) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("responses: expected mapping at line %d", node.Line)
	}
	*r = Responses{items: make(map[string]*Response)}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var resp Response
		if err := node.Content[i+1].Decode(&resp); err != nil {
			return err
		}
		r.Set(node.Content[i].Value, &resp)
	}
	return nil
}
