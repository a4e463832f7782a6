package ast

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// Load reads a program tree from XML. The input must be the output of the
// SOL25 parser: a program element with language="SOL25" and at least a
// well-formed class list. Structural validation beyond that is left to the
// interpreter's loader.
func Load(r io.Reader) (*Program, error) {
	var p Program
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode program: %w", err)
	}
	if p.Language != Language {
		return nil, fmt.Errorf("program language %q, want %q", p.Language, Language)
	}
	for _, c := range p.Classes {
		if c.Name == "" {
			return nil, fmt.Errorf("class element without a name")
		}
		for _, m := range c.Methods {
			if m.Selector == "" {
				return nil, fmt.Errorf("class %s: method element without a selector", c.Name)
			}
			if m.Body == nil {
				return nil, fmt.Errorf("class %s: method %s has no body block", c.Name, m.Selector)
			}
		}
	}
	return &p, nil
}

// LoadBytes is Load over an in-memory document.
func LoadBytes(data []byte) (*Program, error) {
	return Load(bytes.NewReader(data))
}
