package crypto

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidPolicy    = errors.New("invalid password policy")
	ErrNoCharacterTypes = fmt.Errorf("%w: at least one character type must be selected", ErrInvalidPolicy)
	ErrInvalidLength    = fmt.Errorf("%w: password length must be positive", ErrInvalidPolicy)
	ErrUnknownPreset    = fmt.Errorf("%w: unknown preset", ErrInvalidPolicy)
	ErrEmptyCharset     = fmt.Errorf("%w: custom charset must not be empty", ErrInvalidPolicy)
	ErrSymbolWeight     = fmt.Errorf("%w: symbol weight must be at most %d", ErrInvalidPolicy, MaxSymbolWeight)
)

// MaxSymbolWeight bounds how often the symbol alphabet may repeat in the pool.
const MaxSymbolWeight = 10

// Preset names a fixed length and class set for a common strength level.
type Preset struct {
	Name         string
	Length       int
	Classes      ClassSet
	SymbolWeight int
}

var presets = []Preset{
	{Name: "easy", Length: 10, Classes: NewClassSet(Lowercase, Digit), SymbolWeight: 1},
	{Name: "medium", Length: 12, Classes: NewClassSet(Lowercase, Uppercase, Digit), SymbolWeight: 1},
	{Name: "strong", Length: 16, Classes: NewClassSet(AllClasses...), SymbolWeight: 1},
	{Name: "very-strong", Length: 24, Classes: NewClassSet(AllClasses...), SymbolWeight: 2},
}

// Presets returns the built-in presets from weakest to strongest.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// LookupPreset finds a preset by name. Spaces and underscores are accepted in
// place of the dash, so "very strong" resolves to "very-strong".
func LookupPreset(name string) (Preset, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer(" ", "-", "_", "-").Replace(key)
	for _, p := range presets {
		if p.Name == key {
			return p, true
		}
	}
	return Preset{}, false
}

// PolicyInput is either a preset name or an explicit set of classes and a length.
// When Preset is set, a positive Length overrides the preset length and Classes
// is ignored.
type PolicyInput struct {
	Preset       string
	Classes      ClassSet
	Length       int
	SymbolWeight int
}

// ResolvedPolicy is the concrete pool and length a password is synthesized from.
type ResolvedPolicy struct {
	Classes ClassSet
	Length  int
	Pool    string
}

// Resolve turns a policy input into a ResolvedPolicy. It is a pure function.
func Resolve(in PolicyInput) (ResolvedPolicy, error) {
	classes := in.Classes
	length := in.Length
	weight := in.SymbolWeight
	if weight > MaxSymbolWeight {
		return ResolvedPolicy{}, ErrSymbolWeight
	}

	if in.Preset != "" {
		p, ok := LookupPreset(in.Preset)
		if !ok {
			return ResolvedPolicy{}, fmt.Errorf("%w %q", ErrUnknownPreset, in.Preset)
		}
		classes = p.Classes
		if length <= 0 {
			length = p.Length
		}
		if weight < p.SymbolWeight {
			weight = p.SymbolWeight
		}
	}

	if classes.Len() == 0 {
		return ResolvedPolicy{}, ErrNoCharacterTypes
	}
	if length <= 0 {
		return ResolvedPolicy{}, ErrInvalidLength
	}

	// Room for one guaranteed character per selected class.
	if n := classes.Len(); length < n {
		length = n
	}

	return ResolvedPolicy{
		Classes: classes,
		Length:  length,
		Pool:    buildPool(classes, weight),
	}, nil
}

func buildPool(classes ClassSet, symbolWeight int) string {
	if symbolWeight < 1 {
		symbolWeight = 1
	}
	var b strings.Builder
	for _, c := range classes.Classes() {
		if c == Symbol {
			b.WriteString(strings.Repeat(c.Alphabet(), symbolWeight))
			continue
		}
		b.WriteString(c.Alphabet())
	}
	return b.String()
}
