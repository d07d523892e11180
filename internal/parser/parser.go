package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseError represents a mapping file parsing error.
type ParseError struct {
	File    string
	Message string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}

// ParseFile parses all entity declarations in a mapping file. A file may hold
// multiple YAML documents separated by "---".
func ParseFile(path string) ([]*EntityDecl, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file: %w", err)
	}
	return Parse(data, path)
}

// Parse parses entity declarations from raw YAML. The filename is used only
// for error context. Unknown fields are rejected.
func Parse(data []byte, filename string) ([]*EntityDecl, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var decls []*EntityDecl
	for {
		var decl EntityDecl
		if err := dec.Decode(&decl); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &ParseError{File: filename, Message: fmt.Sprintf("invalid mapping document: %v", err)}
		}
		decl.File = filename
		if err := validate(&decl); err != nil {
			return nil, err
		}
		decls = append(decls, &decl)
	}
	return decls, nil
}

// validate checks structural requirements the YAML schema cannot express.
func validate(d *EntityDecl) error {
	fail := func(format string, args ...any) error {
		return &ParseError{File: d.File, Message: fmt.Sprintf(format, args...)}
	}

	if d.Entity == "" {
		return fail("entity declaration is missing a name")
	}
	if d.Table == "" {
		return fail("entity %q is missing a table", d.Entity)
	}
	if d.ID == nil {
		return fail("entity %q is missing an identifier", d.Entity)
	}

	set := 0
	if d.ID.Column != nil {
		set++
	}
	if d.ID.Composite != nil {
		set++
	}
	if d.ID.CopyOf != nil {
		set++
	}
	if set == 0 && d.ID.Type == "" {
		return fail("entity %q identifier declares none of column, composite, copy-of", d.Entity)
	}
	if set > 1 {
		return fail("entity %q identifier declares more than one of column, composite, copy-of", d.Entity)
	}

	if d.ID.CopyOf != nil && d.ID.CopyOf.Entity == "" {
		return fail("entity %q copy-of identifier is missing the referenced entity", d.Entity)
	}
	if d.ID.Composite != nil && len(d.ID.Composite.Properties) == 0 {
		return fail("entity %q composite identifier has no properties", d.Entity)
	}

	var checkProps func(props []PropertyDecl) error
	checkProps = func(props []PropertyDecl) error {
		for _, p := range props {
			if p.Name == "" {
				return fail("entity %q has a property without a name", d.Entity)
			}
			for _, s := range p.Columns {
				if s.Name == "" && s.Formula == "" {
					return fail("entity %q property %q has a selectable with neither name nor formula", d.Entity, p.Name)
				}
				if s.Name != "" && s.Formula != "" {
					return fail("entity %q property %q has a selectable with both name and formula", d.Entity, p.Name)
				}
			}
			if err := checkProps(p.Properties); err != nil {
				return err
			}
		}
		return nil
	}
	if d.ID.Composite != nil {
		if err := checkProps(d.ID.Composite.Properties); err != nil {
			return err
		}
	}
	return checkProps(d.Properties)
}
