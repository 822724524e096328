package crypto

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"
	"unicode/utf8"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name       string
		in         PolicyInput
		wantLength int
		wantErr    error
	}{
		{
			name:       "all classes",
			in:         PolicyInput{Classes: NewClassSet(AllClasses...), Length: 32},
			wantLength: 32,
		},
		{
			name:       "lower and digit length three",
			in:         PolicyInput{Classes: NewClassSet(Lowercase, Digit), Length: 3},
			wantLength: 3,
		},
		{
			name:       "length raised to class count",
			in:         PolicyInput{Classes: NewClassSet(AllClasses...), Length: 1},
			wantLength: 4,
		},
		{
			name:       "single class length one",
			in:         PolicyInput{Classes: NewClassSet(Symbol), Length: 1},
			wantLength: 1,
		},
		{
			name:       "preset default length",
			in:         PolicyInput{Preset: "strong"},
			wantLength: 16,
		},
		{
			name:       "preset with length override",
			in:         PolicyInput{Preset: "easy", Length: 40},
			wantLength: 40,
		},
		{
			name:    "no character types selected",
			in:      PolicyInput{Length: 10},
			wantErr: ErrNoCharacterTypes,
		},
		{
			name:    "zero length",
			in:      PolicyInput{Classes: NewClassSet(Lowercase)},
			wantErr: ErrInvalidLength,
		},
		{
			name:    "negative length",
			in:      PolicyInput{Classes: NewClassSet(Lowercase), Length: -5},
			wantErr: ErrInvalidLength,
		},
		{
			name:    "unknown preset",
			in:      PolicyInput{Preset: "paranoid"},
			wantErr: ErrUnknownPreset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Generate(tt.in)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Generate() error = %v, want %v", err, tt.wantErr)
				}
				if !errors.Is(err, ErrInvalidPolicy) {
					t.Errorf("Generate() error = %v, want it to wrap ErrInvalidPolicy", err)
				}
				if result != "" {
					t.Error("Generate() should return empty string on error")
				}
				return
			}

			if err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			if len(result) != tt.wantLength {
				t.Errorf("Generate() length = %d, want %d", len(result), tt.wantLength)
			}
		})
	}
}

func TestSynthesizeCoverage(t *testing.T) {
	sets := []ClassSet{
		NewClassSet(Lowercase),
		NewClassSet(Lowercase, Digit),
		NewClassSet(Uppercase, Symbol),
		NewClassSet(Lowercase, Uppercase, Digit),
		NewClassSet(AllClasses...),
	}

	for _, set := range sets {
		t.Run(set.String(), func(t *testing.T) {
			// Shortest possible length makes a missing class most likely to show.
			p, err := Resolve(PolicyInput{Classes: set, Length: 1})
			if err != nil {
				t.Fatalf("Resolve() unexpected error: %v", err)
			}

			// Run multiple times to reduce flakiness from randomness.
			for i := 0; i < 50; i++ {
				password, err := Synthesize(p)
				if err != nil {
					t.Fatalf("Synthesize() unexpected error: %v", err)
				}
				if len(password) != set.Len() {
					t.Fatalf("Synthesize() length = %d, want %d", len(password), set.Len())
				}
				for _, c := range AllClasses {
					has := strings.ContainsAny(password, c.Alphabet())
					if set.Has(c) && !has {
						t.Errorf("password %q missing %s character", password, c)
					}
					if !set.Has(c) && has {
						t.Errorf("password %q contains unselected %s character", password, c)
					}
				}
			}
		})
	}
}

func TestGenerateSingleTypeContainsOnlyThatType(t *testing.T) {
	for _, c := range AllClasses {
		t.Run(c.String(), func(t *testing.T) {
			password, err := Generate(PolicyInput{Classes: NewClassSet(c), Length: 32})
			if err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			for _, ch := range password {
				if !c.Contains(ch) {
					t.Errorf("password contains unexpected character %q (not in %q)", string(ch), c.Alphabet())
				}
			}
		})
	}
}

func TestGenerateProducesUniquePasswords(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		password, err := Generate(PolicyInput{Preset: "strong"})
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		if seen[password] {
			t.Errorf("duplicate password generated: %q", password)
		}
		seen[password] = true
	}
}

func TestSynthesizeRandomSourceError(t *testing.T) {
	g := NewGenerator(iotest.ErrReader(errors.New("entropy unavailable")))

	p, err := Resolve(PolicyInput{Preset: "medium"})
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	if _, err := g.Synthesize(p); err == nil {
		t.Fatal("Synthesize() expected error from failing reader")
	}
}

func TestSynthesizeDeterministicReader(t *testing.T) {
	p, err := Resolve(PolicyInput{Classes: NewClassSet(Lowercase, Digit), Length: 12})
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}

	seed := bytes.Repeat([]byte{0x5a, 0x13, 0xc7, 0x02}, 1024)
	a, err := NewGenerator(bytes.NewReader(seed)).Synthesize(p)
	if err != nil {
		t.Fatalf("Synthesize() unexpected error: %v", err)
	}
	b, err := NewGenerator(bytes.NewReader(seed)).Synthesize(p)
	if err != nil {
		t.Fatalf("Synthesize() unexpected error: %v", err)
	}
	if a != b {
		t.Errorf("same random stream produced %q and %q", a, b)
	}
}

func TestSynthesizeRejectsEmptyPolicy(t *testing.T) {
	if _, err := Synthesize(ResolvedPolicy{}); !errors.Is(err, ErrNoCharacterTypes) {
		t.Errorf("Synthesize() error = %v, want %v", err, ErrNoCharacterTypes)
	}
}

func TestGenerateFromCharset(t *testing.T) {
	password, err := GenerateFromCharset("xyzé", 64)
	if err != nil {
		t.Fatalf("GenerateFromCharset() unexpected error: %v", err)
	}
	if n := utf8.RuneCountInString(password); n != 64 {
		t.Errorf("GenerateFromCharset() length = %d, want 64", n)
	}
	for _, r := range password {
		if !strings.ContainsRune("xyzé", r) {
			t.Errorf("password contains unexpected rune %q", r)
		}
	}

	if _, err := GenerateFromCharset("", 10); !errors.Is(err, ErrEmptyCharset) {
		t.Errorf("empty charset error = %v, want %v", err, ErrEmptyCharset)
	}
	if _, err := GenerateFromCharset("abc", 0); !errors.Is(err, ErrInvalidPolicy) {
		t.Errorf("zero length error = %v, want %v", err, ErrInvalidPolicy)
	}
}
