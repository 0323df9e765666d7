// Package schema infers a shallow JSON Schema from a single parsed document
package schema

import (
	"fmt"

	"github.com/iancoleman/strcase"
	"github.com/invopop/jsonschema"
	"github.com/mcncl/jsonlens/internal/errors"
	"github.com/mcncl/jsonlens/internal/models"
)

// TypeAny is the item type reported for empty arrays.
const TypeAny = "any"

// Options decorate the root of a generated schema
type Options struct {
	// Title is CamelCased and set on the root schema when non-empty.
	Title string
	// Draft is emitted as the root "$schema" URI when non-empty.
	Draft string
	// MaxDepth bounds recursion; zero disables the check.
	MaxDepth int
}

// Generator builds schemas from value trees
type Generator struct {
	opts Options
}

// NewGenerator creates a new Generator
func NewGenerator(opts Options) *Generator {
	return &Generator{opts: opts}
}

// Generate infers a schema from v.
//
// Arrays are described by their first element only. Every observed object
// key is listed as required.
func (g *Generator) Generate(v models.Value) (*jsonschema.Schema, error) {
	root, err := g.generate(v, 0)
	if err != nil {
		return nil, err
	}
	if g.opts.Title != "" {
		root.Title = strcase.ToCamel(g.opts.Title)
	}
	if g.opts.Draft != "" {
		root.Version = g.opts.Draft
	}
	return root, nil
}

func (g *Generator) generate(v models.Value, level int) (*jsonschema.Schema, error) {
	switch v.Kind {
	case models.Null, models.Bool, models.Number, models.String:
		return &jsonschema.Schema{Type: v.TypeName()}, nil
	case models.Array:
		s := &jsonschema.Schema{Type: "array"}
		if len(v.Items) == 0 {
			s.Items = &jsonschema.Schema{Type: TypeAny}
			return s, nil
		}
		if err := g.checkDepth(level + 1); err != nil {
			return nil, err
		}
		items, err := g.generate(v.Items[0], level+1)
		if err != nil {
			return nil, err
		}
		s.Items = items
		return s, nil
	case models.Object:
		s := &jsonschema.Schema{
			Type:       "object",
			Properties: jsonschema.NewProperties(),
			Required:   []string{},
		}
		if v.Members == nil {
			return s, nil
		}
		for pair := v.Members.Oldest(); pair != nil; pair = pair.Next() {
			if err := g.checkDepth(level + 1); err != nil {
				return nil, err
			}
			prop, err := g.generate(pair.Value, level+1)
			if err != nil {
				return nil, err
			}
			s.Properties.Set(pair.Key, prop)
			s.Required = append(s.Required, pair.Key)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unexpected value kind: %v", v.Kind)
	}
}

func (g *Generator) checkDepth(level int) error {
	if g.opts.MaxDepth > 0 && level > g.opts.MaxDepth {
		return errors.NewDepthError(level, g.opts.MaxDepth)
	}
	return nil
}
