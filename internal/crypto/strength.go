package crypto

import (
	"math"
	"unicode/utf8"

	zxcvbn "github.com/ccojocar/zxcvbn-go"
)

// Rating is a qualitative strength bucket.
type Rating string

const (
	Weak       Rating = "weak"
	Medium     Rating = "medium"
	Strong     Rating = "strong"
	VeryStrong Rating = "very-strong"
)

// Entropy bucket boundaries in bits. These carry no formal justification and
// are kept for continuity with earlier releases.
const (
	mediumEntropyBits     = 40
	strongEntropyBits     = 60
	veryStrongEntropyBits = 80
)

// zxcvbn gets slow on long inputs, only the prefix is scored.
const maxZxcvbnLength = 50

// Analysis is the detailed result of inspecting a password.
type Analysis struct {
	Length      int
	Classes     ClassSet
	PoolSize    int
	EntropyBits float64
	Rating      Rating
}

// Classify rates a password by its estimated entropy.
func Classify(password string) Rating {
	return Inspect(password).Rating
}

// Inspect detects which classes occur in the password and estimates entropy as
// length * log2(pool), where pool is the summed alphabet size of the detected
// classes. This assumes independent uniform draws from the detected pool and is
// a heuristic, not a bound: generated passwords seed one character per class,
// which the estimate does not account for.
func Inspect(password string) Analysis {
	var classes ClassSet
	for _, r := range password {
		for _, c := range AllClasses {
			if c.Contains(r) {
				classes = classes.With(c)
				break
			}
		}
	}

	pool := 0
	for _, c := range classes.Classes() {
		pool += len(c.Alphabet())
	}

	length := utf8.RuneCountInString(password)
	entropy := 0.0
	if pool > 0 {
		entropy = float64(length) * math.Log2(float64(pool))
	}

	return Analysis{
		Length:      length,
		Classes:     classes,
		PoolSize:    pool,
		EntropyBits: entropy,
		Rating:      RatingForEntropy(entropy),
	}
}

// RatingForEntropy buckets an entropy estimate in bits.
func RatingForEntropy(bits float64) Rating {
	switch {
	case bits < mediumEntropyBits:
		return Weak
	case bits < strongEntropyBits:
		return Medium
	case bits < veryStrongEntropyBits:
		return Strong
	default:
		return VeryStrong
	}
}

// ZxcvbnScore returns the zxcvbn 0..4 score for the password as a pattern-aware
// second opinion next to the entropy rating.
func ZxcvbnScore(password string) int {
	if password == "" {
		return 0
	}
	check := password
	if runes := []rune(password); len(runes) > maxZxcvbnLength {
		check = string(runes[:maxZxcvbnLength])
	}
	return zxcvbn.PasswordStrength(check, nil).Score
}
