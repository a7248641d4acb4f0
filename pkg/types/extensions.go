// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// inlineExtensions appends the extension keys to an encoded JSON object.
// Keys are written in sorted order so output is deterministic.
func inlineExtensions(data []byte, ext map[string]interface{}) ([]byte, error) {
	if len(ext) == 0 {
		return data, nil
	}
	data = bytes.TrimSpace(data)
	if len(data) < 2 || data[len(data)-1] != '}' {
		return nil, fmt.Errorf("cannot inline extensions into %q", data)
	}

	keys := slices.Sorted(maps.Keys(ext))

	var buf bytes.Buffer
	buf.Write(data[:len(data)-1])
	empty := len(bytes.TrimSpace(data[1:len(data)-1])) == 0
	for _, k := range keys {
		value, err := json.Marshal(ext[k])
		if err != nil {
			return nil, fmt.Errorf("failed to encode extension %s: %w", k, err)
		}
		if !empty {
			buf.WriteByte(',')
		}
		empty = false
		key, _ := json.Marshal(k)
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// jsonToYAMLNode encodes v through its JSON form so custom JSON ordering
// and inlined extensions carry over to YAML output.
func jsonToYAMLNode(v interface{}) (*yaml.Node, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to convert JSON to YAML: %w", err)
	}
	root := &node
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	resetStyle(root)
	return root, nil
}

// resetStyle drops the flow and quoting styles the JSON parser leaves behind.
func resetStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		resetStyle(c)
	}
}

func isExtension(key string) bool {
	return strings.HasPrefix(key, "x-")
}

// extensionsFromJSON returns the x- members of an encoded JSON object, or
// nil when there are none.
func extensionsFromJSON(data []byte) (map[string]interface{}, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	var ext map[string]interface{}
	for key, value := range raw {
		if !isExtension(key) {
			continue
		}
		var v interface{}
		if err := json.Unmarshal(value, &v); err != nil {
			return nil, fmt.Errorf("failed to decode extension %s: %w", key, err)
		}
		if ext == nil {
			ext = make(map[string]interface{})
		}
		ext[key] = v
	}
	return ext, nil
}

// extensionsFromYAML returns the x- keys of a mapping node, or nil when
// there are none.
func extensionsFromYAML(node *yaml.Node) (map[string]interface{}, error) {
	if node.Kind != yaml.MappingNode {
		return nil, nil
	}
	var ext map[string]interface{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if !isExtension(key) {
			continue
		}
		var v interface{}
		if err := node.Content[i+1].Decode(&v); err != nil {
			return nil, fmt.Errorf("failed to decode extension %s: %w", key, err)
		}
		if ext == nil {
			ext = make(map[string]interface{})
		}
		ext[key] = v
	}
	return ext, nil
}
