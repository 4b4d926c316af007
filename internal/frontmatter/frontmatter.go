// Package frontmatter separates YAML front matter from the markdown body of a post.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// front matter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// ErrNotMapping indicates the front matter is valid YAML but not a mapping.
var ErrNotMapping = errors.New("yaml frontmatter is not a mapping")

const delimiter = "---"

// Matter is the result of splitting a document: its metadata fields and the
// remaining markdown content.
type Matter struct {
	Fields map[string]any
	// Raw holds the front matter bytes without delimiters (nil when absent).
	Raw     []byte
	Content []byte
	// Had reports whether the document started with a front matter block.
	Had bool
}

// Split separates YAML front matter (`---` delimited) from the Markdown body.
//
// If the document does not start with a delimiter line, had is false and body
// is the full input. LF and CRLF line endings are both accepted; a closing
// delimiter on the last line without a trailing newline is accepted too.
func Split(content []byte) (fm []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)

	open := []byte(delimiter + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	rest := content[len(open):]
	closeLine := []byte(delimiter + nl)
	if bytes.HasPrefix(rest, closeLine) {
		return []byte{}, rest[len(closeLine):], true, nil
	}
	if bytes.Equal(rest, []byte(delimiter)) {
		return []byte{}, []byte{}, true, nil
	}

	closeSeq := []byte(nl + delimiter + nl)
	if idx := bytes.Index(rest, closeSeq); idx >= 0 {
		return rest[:idx+len(nl)], rest[idx+len(closeSeq):], true, nil
	}

	tail := []byte(nl + delimiter)
	if bytes.HasSuffix(rest, tail) {
		return rest[:len(rest)-len(delimiter)], []byte{}, true, nil
	}

	return nil, nil, false, ErrMissingClosingDelimiter
}

// ParseYAML parses raw YAML front matter (without --- delimiters) into a map.
//
// Timestamp scalars keep their source text instead of becoming time.Time, so
// an unquoted `date: 2020-01-01` yields the string "2020-01-01".
func ParseYAML(fm []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(fm)) == 0 {
		return map[string]any{}, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(fm, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return map[string]any{}, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.ShortTag() == nullTag {
		return map[string]any{}, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: got %s at line %d", ErrNotMapping, kindName(root), root.Line)
	}

	fields := make(map[string]any, len(root.Content)/2)
	if err := decodeMapping(root, fields); err != nil {
		return nil, err
	}
	return fields, nil
}

const (
	nullTag      = "!!null"
	timestampTag = "!!timestamp"
	mergeTag     = "!!merge"
)

func decodeMapping(n *yaml.Node, into map[string]any) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]

		if key.ShortTag() == mergeTag {
			if err := mergeInto(value, into); err != nil {
				return err
			}
			continue
		}

		k, err := nodeValue(key)
		if err != nil {
			return err
		}
		v, err := nodeValue(value)
		if err != nil {
			return err
		}
		into[fmt.Sprint(k)] = v
	}
	return nil
}

// mergeInto applies a `<<` merge key; explicit keys of the mapping win.
func mergeInto(n *yaml.Node, into map[string]any) error {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	sources := []*yaml.Node{n}
	if n.Kind == yaml.SequenceNode {
		sources = n.Content
	}
	for _, src := range sources {
		if src.Kind == yaml.AliasNode {
			src = src.Alias
		}
		if src.Kind != yaml.MappingNode {
			return fmt.Errorf("%w: merge value at line %d", ErrNotMapping, src.Line)
		}
		merged := make(map[string]any)
		if err := decodeMapping(src, merged); err != nil {
			return err
		}
		for k, v := range merged {
			if _, exists := into[k]; !exists {
				into[k] = v
			}
		}
	}
	return nil
}

func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		if err := decodeMapping(n, m); err != nil {
			return nil, err
		}
		return m, nil
	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := nodeValue(item)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case yaml.ScalarNode:
		if n.ShortTag() == timestampTag {
			return n.Value, nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported YAML node at line %d", n.Line)
	}
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	default:
		return "node"
	}
}

// Parse splits content and parses its front matter into fields.
//
// A document without front matter yields empty fields and the full input as
// content. Malformed delimiters or YAML are returned as errors.
func Parse(content []byte) (Matter, error) {
	raw, body, had, err := Split(content)
	if err != nil {
		return Matter{}, err
	}

	fields, err := ParseYAML(raw)
	if err != nil {
		return Matter{}, err
	}

	return Matter{
		Fields:  fields,
		Raw:     raw,
		Content: body,
		Had:     had,
	}, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
