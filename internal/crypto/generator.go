package crypto

import (
	"crypto/rand"
	"io"
	"math/big"
)

// Generator synthesizes passwords from resolved policies.
type Generator struct {
	reader io.Reader
}

// NewGenerator returns a Generator reading randomness from r.
// A nil reader selects crypto/rand.
func NewGenerator(r io.Reader) *Generator {
	if r == nil {
		r = rand.Reader
	}
	return &Generator{reader: r}
}

var defaultGenerator = NewGenerator(nil)

// Generate resolves the policy input and synthesizes a password from it.
func Generate(in PolicyInput) (string, error) {
	return defaultGenerator.Generate(in)
}

// Synthesize builds a password for an already resolved policy using crypto/rand.
func Synthesize(p ResolvedPolicy) (string, error) {
	return defaultGenerator.Synthesize(p)
}

// GenerateFromCharset draws length characters uniformly from a caller supplied
// charset using crypto/rand.
func GenerateFromCharset(charset string, length int) (string, error) {
	return defaultGenerator.FromCharset(charset, length)
}

// Generate resolves the policy input and synthesizes a password from it.
func (g *Generator) Generate(in PolicyInput) (string, error) {
	p, err := Resolve(in)
	if err != nil {
		return "", err
	}
	return g.Synthesize(p)
}

// Synthesize builds a password of exactly p.Length characters containing at
// least one character of every class in p.Classes and nothing outside p.Pool.
func (g *Generator) Synthesize(p ResolvedPolicy) (string, error) {
	classes := p.Classes.Classes()
	if len(classes) == 0 || p.Pool == "" {
		return "", ErrNoCharacterTypes
	}
	if p.Length < len(classes) {
		return "", ErrInvalidLength
	}

	result := make([]byte, p.Length)

	// Guarantee at least one character from each selected type.
	for i, c := range classes {
		ch, err := g.randChar(c.Alphabet())
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	// Fill the remaining positions from the full pool.
	for i := len(classes); i < p.Length; i++ {
		ch, err := g.randChar(p.Pool)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	if err := g.shuffle(len(result), func(i, j int) {
		result[i], result[j] = result[j], result[i]
	}); err != nil {
		return "", err
	}

	return string(result), nil
}

// FromCharset draws length runes uniformly from charset. Duplicate runes in the
// charset are kept, so they weigh more. No per-class coverage is applied.
func (g *Generator) FromCharset(charset string, length int) (string, error) {
	runes := []rune(charset)
	if len(runes) == 0 {
		return "", ErrEmptyCharset
	}
	if length <= 0 {
		return "", ErrInvalidLength
	}

	result := make([]rune, length)
	for i := range result {
		n, err := g.randInt(len(runes))
		if err != nil {
			return "", err
		}
		result[i] = runes[n]
	}
	return string(result), nil
}

// randChar picks a random character from charset.
func (g *Generator) randChar(charset string) (byte, error) {
	n, err := g.randInt(len(charset))
	if err != nil {
		return 0, err
	}
	return charset[n], nil
}

func (g *Generator) randInt(max int) (int, error) {
	n, err := rand.Int(g.reader, big.NewInt(int64(max)))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}

// shuffle performs a Fisher-Yates shuffle over n elements.
func (g *Generator) shuffle(n int, swap func(i, j int)) error {
	for i := n - 1; i > 0; i-- {
		j, err := g.randInt(i + 1)
		if err != nil {
			return err
		}
		swap(i, j)
	}
	return nil
}
