package crypto

import "strings"

// Character alphabets. The symbol alphabet is frozen: generation and strength
// classification must agree on it.
const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberChars    = "0123456789"
	symbolChars    = "!@#$%^&*()-_=+[]{}|;:',.<>?/`~"
)

// Class is a character class a password may draw from.
type Class int

const (
	Lowercase Class = iota
	Uppercase
	Digit
	Symbol
)

// AllClasses lists every class in canonical pool order.
var AllClasses = []Class{Lowercase, Uppercase, Digit, Symbol}

// Alphabet returns the fixed alphabet for the class.
func (c Class) Alphabet() string {
	switch c {
	case Lowercase:
		return lowercaseChars
	case Uppercase:
		return uppercaseChars
	case Digit:
		return numberChars
	case Symbol:
		return symbolChars
	}
	return ""
}

func (c Class) String() string {
	switch c {
	case Lowercase:
		return "lower"
	case Uppercase:
		return "upper"
	case Digit:
		return "digit"
	case Symbol:
		return "symbol"
	}
	return "unknown"
}

// Contains reports whether r belongs to the class alphabet.
func (c Class) Contains(r rune) bool {
	return strings.ContainsRune(c.Alphabet(), r)
}

// ParseClass maps a class name (including a few common aliases) to a Class.
func ParseClass(name string) (Class, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lower", "lowercase":
		return Lowercase, true
	case "upper", "uppercase":
		return Uppercase, true
	case "digit", "digits", "number", "numbers":
		return Digit, true
	case "symbol", "symbols":
		return Symbol, true
	}
	return 0, false
}

// ClassSet is a set of character classes.
type ClassSet uint8

// NewClassSet builds a set from the given classes.
func NewClassSet(classes ...Class) ClassSet {
	var s ClassSet
	for _, c := range classes {
		s = s.With(c)
	}
	return s
}

// With returns the set with c added.
func (s ClassSet) With(c Class) ClassSet {
	return s | 1<<uint(c)
}

// Has reports whether c is in the set.
func (s ClassSet) Has(c Class) bool {
	return s&(1<<uint(c)) != 0
}

// Len returns the number of classes in the set.
func (s ClassSet) Len() int {
	n := 0
	for _, c := range AllClasses {
		if s.Has(c) {
			n++
		}
	}
	return n
}

// Classes returns the members in canonical order.
func (s ClassSet) Classes() []Class {
	out := make([]Class, 0, len(AllClasses))
	for _, c := range AllClasses {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Names returns the member names in canonical order.
func (s ClassSet) Names() []string {
	classes := s.Classes()
	names := make([]string, len(classes))
	for i, c := range classes {
		names[i] = c.String()
	}
	return names
}

func (s ClassSet) String() string {
	return strings.Join(s.Names(), ",")
}
