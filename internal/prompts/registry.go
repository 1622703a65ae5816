/*
Package prompts holds the fixed collection of nutrition prompt templates the
assistant can route to, plus the meta-prompt used to choose between them.
*/
package prompts

import (
	"errors"
	"fmt"
	"strings"
)

// Placeholder is the single substitution slot every template must contain.
const Placeholder = "{input}"

var (
	// ErrDuplicateName is returned when two templates share a name.
	ErrDuplicateName = errors.New("duplicate prompt name")

	// ErrInvalidTemplate is returned when a template is malformed.
	ErrInvalidTemplate = errors.New("invalid prompt template")
)

// PromptSpec pairs a template with the name and description shown to the router.
type PromptSpec struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Template    string `yaml:"template" json:"template"`
}

// Fill substitutes input into the template's placeholder. Nothing else changes.
func (p PromptSpec) Fill(input string) string {
	return strings.Replace(p.Template, Placeholder, input, 1)
}

func (p PromptSpec) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidTemplate)
	}
	if n := strings.Count(p.Template, Placeholder); n != 1 {
		return fmt.Errorf("%w: %q must contain exactly one %s slot, found %d", ErrInvalidTemplate, p.Name, Placeholder, n)
	}
	return nil
}

// Registry is an ordered, immutable set of PromptSpecs.
// Order only affects how candidates are listed to the router.
type Registry struct {
	specs  []PromptSpec
	byName map[string]int
}

// NewRegistry validates specs and keeps them in the given order.
func NewRegistry(specs ...PromptSpec) (*Registry, error) {
	r := &Registry{
		specs:  make([]PromptSpec, 0, len(specs)),
		byName: make(map[string]int, len(specs)),
	}

	for _, s := range specs {
		if err := s.validate(); err != nil {
			return nil, err
		}
		if _, exists := r.byName[s.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, s.Name)
		}
		r.byName[s.Name] = len(r.specs)
		r.specs = append(r.specs, s)
	}

	if len(r.specs) == 0 {
		return nil, fmt.Errorf("%w: registry needs at least one template", ErrInvalidTemplate)
	}
	return r, nil
}

// MustDefault returns the built-in nutrition registry and panics if it is invalid.
func MustDefault() *Registry {
	r, err := NewRegistry(Default()...)
	if err != nil {
		panic(err)
	}
	return r
}

// List returns a copy of the specs in insertion order.
func (r *Registry) List() []PromptSpec {
	out := make([]PromptSpec, len(r.specs))
	copy(out, r.specs)
	return out
}

// Lookup finds a spec by exact, case-sensitive name.
func (r *Registry) Lookup(name string) (PromptSpec, bool) {
	i, ok := r.byName[name]
	if !ok {
		return PromptSpec{}, false
	}
	return r.specs[i], true
}

// Len returns the number of templates.
func (r *Registry) Len() int {
	return len(r.specs)
}
