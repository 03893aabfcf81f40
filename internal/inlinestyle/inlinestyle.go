// Package inlinestyle reads and rewrites the declarations of an element's
// inline style attribute.
package inlinestyle

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

const importantSuffix = "!important"

// Declarations is an ordered list of inline style declarations.
type Declarations []*css.Declaration

// Parse parses the value of a style attribute. An empty value yields no declarations.
func Parse(style string) (Declarations, error) {
	if strings.TrimSpace(style) == "" {
		return nil, nil
	}

	decls, err := parser.ParseDeclarations(style)
	if err != nil {
		return nil, fmt.Errorf("failed to parse inline style: %w", err)
	}

	for _, decl := range decls {
		decl.Property = strings.ToLower(strings.TrimSpace(decl.Property))
		value := strings.TrimSpace(decl.Value)
		if strings.HasSuffix(strings.ToLower(value), importantSuffix) {
			decl.Important = true
			value = strings.TrimSpace(value[:len(value)-len(importantSuffix)])
		}
		decl.Value = value
	}

	return decls, nil
}

// Lookup returns the last declaration of property, mirroring how the cascade resolves duplicates.
func (d Declarations) Lookup(property string) (*css.Declaration, bool) {
	property = strings.ToLower(property)
	for i := len(d) - 1; i >= 0; i-- {
		if d[i].Property == property {
			return d[i], true
		}
	}
	return nil, false
}

// Set replaces every declaration of property with a single one at the end.
func (d Declarations) Set(property, value string, important bool) Declarations {
	out := d.Remove(property)
	return append(out, &css.Declaration{
		Property:  strings.ToLower(property),
		Value:     value,
		Important: important,
	})
}

// Remove drops every declaration of property.
func (d Declarations) Remove(property string) Declarations {
	property = strings.ToLower(property)
	out := make(Declarations, 0, len(d))
	for _, decl := range d {
		if decl.Property != property {
			out = append(out, decl)
		}
	}
	return out
}

// String serializes the declarations back into a style attribute value.
func (d Declarations) String() string {
	parts := make([]string, 0, len(d))
	for _, decl := range d {
		part := decl.Property + ": " + decl.Value
		if decl.Important {
			part += " " + importantSuffix
		}
		parts = append(parts, part+";")
	}
	return strings.Join(parts, " ")
}

// DisplayNone reports whether any declaration sets display to none.
func (d Declarations) DisplayNone() bool {
	for _, decl := range d {
		if decl.Property == "display" && strings.EqualFold(decl.Value, "none") {
			return true
		}
	}
	return false
}
