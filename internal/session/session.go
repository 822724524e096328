// Package session holds the passwords generated during one run of a frontend.
// A Session is owned by its caller and passed explicitly to export and clipboard
// operations.
package session

import (
	"sync"
	"time"

	"github.com/passforge/passforge-go/internal/crypto"
)

// Entry is one generated password with its rating at generation time.
type Entry struct {
	Password  string
	Strength  crypto.Rating
	CreatedAt time.Time
}

// Session is an append-only, clearable list of generated passwords.
// It is safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	entries []Entry
}

// New creates an empty Session.
func New() *Session {
	return &Session{}
}

// Add appends a password, classifying it on the way in.
func (s *Session) Add(password string) Entry {
	e := Entry{
		Password:  password,
		Strength:  crypto.Classify(password),
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.entries = append(s.entries, e)
	s.mu.Unlock()

	return e
}

// Last returns the most recently added entry.
func (s *Session) Last() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) == 0 {
		return Entry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// Entries returns a copy of all entries in insertion order.
func (s *Session) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Passwords returns the bare password strings in insertion order.
func (s *Session) Passwords() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Password
	}
	return out
}

// Len returns the number of entries.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Clear drops every entry.
func (s *Session) Clear() {
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()
}
