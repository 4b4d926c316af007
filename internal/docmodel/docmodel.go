// Package docmodel loads a post source file and splits it into front matter
// fields and markdown body.
package docmodel

import (
	"os"

	"git.home.luguber.info/inful/postbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/postbuilder/internal/frontmatter"
)

// ParsedDoc represents a markdown document split into YAML front matter and body.
type ParsedDoc struct {
	path   string
	fields map[string]any
	fmRaw  []byte
	body   []byte
	hadFM  bool
}

// Parse parses raw file content into a ParsedDoc.
func Parse(content []byte) (*ParsedDoc, error) {
	m, err := frontmatter.Parse(content)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to parse frontmatter").Build()
	}

	var fmCopy []byte
	if m.Had {
		fmCopy = append([]byte{}, m.Raw...)
	}

	return &ParsedDoc{
		fields: m.Fields,
		fmRaw:  fmCopy,
		body:   append([]byte(nil), m.Content...),
		hadFM:  m.Had,
	}, nil
}

// ParseFile reads a file from disk and parses it into a ParsedDoc.
//
// Read failures are filesystem errors and parse failures are validation
// errors; both carry the path as context.
func ParseFile(path string) (*ParsedDoc, error) {
	// #nosec G304 -- path is built by the posts store from its configured root.
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read post").
			WithContext("path", path).
			Build()
	}

	doc, err := Parse(content)
	if err != nil {
		if classified, ok := errors.AsClassified(err); ok {
			return nil, classified.WithContext("path", path)
		}
		return nil, err
	}
	doc.path = path
	return doc, nil
}

// Path returns the file the document was loaded from (empty for Parse).
func (d *ParsedDoc) Path() string {
	return d.path
}

// HadFrontmatter reports whether the original document contained a YAML front matter block.
func (d *ParsedDoc) HadFrontmatter() bool {
	return d.hadFM
}

// Fields returns the parsed front matter fields. The map is never nil.
func (d *ParsedDoc) Fields() map[string]any {
	return d.fields
}

// FrontmatterRaw returns a copy of the raw YAML front matter bytes (without delimiters).
//
// If the document had no front matter, FrontmatterRaw returns nil.
func (d *ParsedDoc) FrontmatterRaw() []byte {
	if !d.hadFM {
		return nil
	}
	return append([]byte{}, d.fmRaw...)
}

// Body returns a copy of the markdown body bytes (front matter removed).
func (d *ParsedDoc) Body() []byte {
	return append([]byte(nil), d.body...)
}
