// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package netconfig

import (
	"bytes"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"
)

const networkKey = "network"

// indentOptions matches the 4-space layout the node client tooling writes.
// A zero Width puts every array element on its own line.
var indentOptions = &pretty.Options{
	Width:    0,
	Prefix:   "",
	Indent:   "    ",
	SortKeys: false,
}

// Document is a loaded network config. The JSON object is kept as raw text so
// keys other than "network" survive a load/save cycle in their original order.
type Document struct {
	raw []byte
}

// DefaultDocument returns the document used when no usable file exists.
func DefaultDocument() *Document {
	return &Document{raw: []byte(`{"network":"Not set"}`)}
}

// ParseDocument parses data as a config document. It returns false when data
// is not valid JSON or is valid JSON but not an object.
// A key repeated within an object is kept once, at its first position with
// its last value.
func ParseDocument(data []byte) (*Document, bool) {
	if !gjson.ValidBytes(data) {
		return nil, false
	}
	v := gjson.ParseBytes(data)
	if !v.IsObject() {
		return nil, false
	}
	return &Document{raw: collapseKeys(v)}, true
}

// collapseKeys re-encodes v compactly with duplicate object keys merged.
func collapseKeys(v gjson.Result) []byte {
	switch {
	case v.IsObject():
		var order []string
		rawKeys := make(map[string]string)
		values := make(map[string][]byte)
		v.ForEach(func(k, val gjson.Result) bool {
			name := k.String()
			if _, seen := values[name]; !seen {
				order = append(order, name)
				rawKeys[name] = k.Raw
			}
			values[name] = collapseKeys(val)
			return true
		})
		buf := []byte{'{'}
		for i, name := range order {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = append(buf, rawKeys[name]...)
			buf = append(buf, ':')
			buf = append(buf, values[name]...)
		}
		return append(buf, '}')
	case v.IsArray():
		buf := []byte{'['}
		first := true
		v.ForEach(func(_, val gjson.Result) bool {
			if !first {
				buf = append(buf, ',')
			}
			first = false
			buf = append(buf, collapseKeys(val)...)
			return true
		})
		return append(buf, ']')
	default:
		return []byte(v.Raw)
	}
}

// Network returns the stored network. A missing or null key yields NotSet.
// Values outside Networks are returned verbatim so that check reports what is on disk.
// Booleans read as True/False; other non-string values use their JSON text.
func (d *Document) Network() Network {
	v := gjson.GetBytes(d.raw, networkKey)
	switch v.Type {
	case gjson.Null:
		return NotSet
	case gjson.True:
		return "True"
	case gjson.False:
		return "False"
	}
	return Network(v.String())
}

// SetNetwork replaces the network key, adding it if absent.
func (d *Document) SetNetwork(n Network) error {
	raw, err := sjson.SetBytes(d.raw, networkKey, string(n))
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", networkKey, err)
	}
	d.raw = raw
	return nil
}

// Keys returns the top-level keys in file order.
func (d *Document) Keys() []string {
	var keys []string
	gjson.ParseBytes(d.raw).ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	return keys
}

// Bytes returns the document indented with four spaces, without a trailing
// newline. Non-ASCII characters are written as \uXXXX escapes.
func (d *Document) Bytes() []byte {
	return escapeNonASCII(bytes.TrimRight(pretty.PrettyOptions(d.raw, indentOptions), "\n"))
}

// escapeNonASCII replaces every non-ASCII rune with its \uXXXX form, using a
// surrogate pair above U+FFFF. Outside strings valid JSON is pure ASCII, so
// the whole buffer can be scanned. Bytes that are not valid UTF-8 are kept.
func escapeNonASCII(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); {
		if b[i] < utf8.RuneSelf {
			out = append(out, b[i])
			i++
			continue
		}
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			out = append(out, b[i])
			i++
			continue
		}
		if r1, r2 := utf16.EncodeRune(r); r1 != utf8.RuneError {
			out = fmt.Appendf(out, `\u%04x\u%04x`, r1, r2)
		} else {
			out = fmt.Appendf(out, `\u%04x`, r)
		}
		i += size
	}
	return out
}

// MarshalYAML renders the document as a YAML mapping in file order.
func (d *Document) MarshalYAML() (interface{}, error) {
	return yamlNode(gjson.ParseBytes(d.raw)), nil
}

func yamlNode(v gjson.Result) *yaml.Node {
	switch {
	case v.IsObject():
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		v.ForEach(func(k, val gjson.Result) bool {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k.String()},
				yamlNode(val))
			return true
		})
		return node
	case v.IsArray():
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		v.ForEach(func(_, val gjson.Result) bool {
			node.Content = append(node.Content, yamlNode(val))
			return true
		})
		return node
	}

	switch v.Type {
	case gjson.String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Str}
	case gjson.Number:
		tag := "!!int"
		if bytes.ContainsAny([]byte(v.Raw), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.Raw}
	case gjson.True, gjson.False:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: v.Raw}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
