package clipboard

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/passforge/passforge-go/internal/session"
)

var ErrEmptySession = errors.New("no password in session yet")

// Copier places text on a clipboard.
type Copier interface {
	Copy(text string) error
}

// System copies to the operating system clipboard.
type System struct{}

// Copy writes text to the system clipboard.
func (System) Copy(text string) error {
	if clipboard.Unsupported {
		return errors.New("clipboard is not supported on this system")
	}
	return clipboard.WriteAll(text)
}

// CopyLast copies the most recent password of the session.
func CopyLast(c Copier, s *session.Session) error {
	last, ok := s.Last()
	if !ok {
		return ErrEmptySession
	}
	return c.Copy(last.Password)
}

// CopyAll copies every password of the session, one per line.
func CopyAll(c Copier, s *session.Session) error {
	passwords := s.Passwords()
	if len(passwords) == 0 {
		return ErrEmptySession
	}
	return c.Copy(strings.Join(passwords, "\n"))
}
