// Package catalog defines the weighted pattern definitions used for
// framework detection. A Catalog is immutable once built and is passed
// explicitly into every detector, so tests can substitute their own.
package catalog

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/repolens/core/pkg/domain"
)

// MatcherKind identifies which signal a pattern inspects.
type MatcherKind string

// Matcher kinds.
const (
	MatchFileName     MatcherKind = "file_name"
	MatchImport       MatcherKind = "import"
	MatchFunctionCall MatcherKind = "function_call"
	MatchClassName    MatcherKind = "class_name"
	MatchDecorator    MatcherKind = "decorator"
	MatchContent      MatcherKind = "content"
)

// Context carries matcher-specific flags for a pattern.
type Context struct {
	// JSX enables Capitalized-function matching on JS/TS files for
	// function_call patterns.
	JSX bool
	// Inheritance extends class_name matching to each class's base classes.
	Inheritance bool
	// Hook enables hook-convention matching (import presence plus upstream
	// hints) for function_call patterns.
	Hook bool
	// RequiresImport gates Hook and JSX matching on the presence of this
	// module in the file's imports.
	RequiresImport string
}

// Pattern is one immutable, weighted pattern definition.
type Pattern struct {
	// ID uniquely identifies the pattern within its signature.
	ID string
	// Kind selects the matcher the pattern runs under.
	Kind MatcherKind
	// Expr is the compiled pattern expression.
	Expr *regexp.Regexp
	// Languages restricts the pattern to files of these languages.
	// Empty means language-agnostic.
	Languages []domain.Language
	// Weight is the positive score added on a match.
	Weight float64
	// Description says what the pattern looks for.
	Description string
	// Context carries matcher-specific flags.
	Context Context
}

// AppliesTo reports whether the pattern's language constraint admits the
// given language.
func (p *Pattern) AppliesTo(lang domain.Language) bool {
	if len(p.Languages) == 0 {
		return true
	}
	for _, l := range p.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// Signature is a named, ordered collection of patterns for one framework.
type Signature struct {
	// Name is the framework name as it appears in reports.
	Name string
	// Patterns are evaluated in order against every file.
	Patterns []Pattern
	// MinConfidence is the emission threshold in [0,1].
	MinConfidence float64
	// Languages are the framework's primary languages.
	Languages []domain.Language
}

// Catalog is the full set of framework signatures.
type Catalog struct {
	signatures []Signature
}

// New builds a catalog from the given signatures. The slice is copied;
// callers cannot mutate the catalog afterwards.
func New(signatures ...Signature) *Catalog {
	c := &Catalog{signatures: make([]Signature, len(signatures))}
	copy(c.signatures, signatures)
	return c
}

// Signatures returns the signatures in registration order.
func (c *Catalog) Signatures() []Signature {
	out := make([]Signature, len(c.signatures))
	copy(out, c.signatures)
	return out
}

// Find returns the signature with the given framework name, or nil.
func (c *Catalog) Find(name string) *Signature {
	for i := range c.signatures {
		if c.signatures[i].Name == name {
			return &c.signatures[i]
		}
	}
	return nil
}

// Override is a user-supplied tuning entry for one framework.
type Override struct {
	Framework     string             `yaml:"framework"`
	MinConfidence *float64           `yaml:"min_confidence"`
	Weights       map[string]float64 `yaml:"weights"`
}

// ApplyOverrides returns a new catalog with per-framework thresholds and
// per-pattern weights replaced by the supplied overrides. Unknown framework
// or pattern names are an error so typos surface instead of silently doing
// nothing.
func (c *Catalog) ApplyOverrides(overrides []Override) (*Catalog, error) {
	out := &Catalog{signatures: make([]Signature, len(c.signatures))}
	for i, sig := range c.signatures {
		cp := sig
		cp.Patterns = append([]Pattern(nil), sig.Patterns...)
		out.signatures[i] = cp
	}

	for _, ov := range overrides {
		sig := out.Find(ov.Framework)
		if sig == nil {
			return nil, fmt.Errorf("catalog override: unknown framework %q", ov.Framework)
		}
		if ov.MinConfidence != nil {
			if *ov.MinConfidence < 0 || *ov.MinConfidence > 1 {
				return nil, fmt.Errorf("catalog override: %s: min_confidence %v out of [0,1]", ov.Framework, *ov.MinConfidence)
			}
			sig.MinConfidence = *ov.MinConfidence
		}
		for id, weight := range ov.Weights {
			idx := -1
			for i := range sig.Patterns {
				if sig.Patterns[i].ID == id {
					idx = i
					break
				}
			}
			if idx < 0 {
				return nil, fmt.Errorf("catalog override: %s: unknown pattern %q", ov.Framework, id)
			}
			if weight <= 0 {
				return nil, fmt.Errorf("catalog override: %s/%s: weight must be positive", ov.Framework, id)
			}
			sig.Patterns[idx].Weight = weight
		}
	}

	return out, nil
}

// ParseOverrides decodes a YAML override document.
func ParseOverrides(data []byte) ([]Override, error) {
	var doc struct {
		Overrides []Override `yaml:"overrides"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog overrides: %w", err)
	}
	return doc.Overrides, nil
}
