// Package export serializes a list of generated passwords to plaintext, CSV
// (KeePass or Bitwarden import layout) or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	AppName = "PassForge"
	Author  = "PassForge contributors"

	entryTitle = "Generated"
	entryNotes = "Generated by PassForge"
)

// Version is reported in JSON exports. Overridden at build time with -ldflags.
var Version = "1.1.0"

var (
	ErrNothingToExport = errors.New("no passwords to export")
	ErrUnknownFormat   = errors.New("unknown export format")
)

// Format selects an export layout.
type Format string

const (
	FormatText      Format = "text"
	FormatKeePass   Format = "csv-keepass"
	FormatBitwarden Format = "csv-bitwarden"
	FormatJSON      Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatKeePass, FormatBitwarden, FormatJSON}

// ParseFormat maps a user supplied name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "txt":
		return FormatText, nil
	case "csv-keepass", "keepass", "csv":
		return FormatKeePass, nil
	case "csv-bitwarden", "bitwarden":
		return FormatBitwarden, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatKeePass, FormatBitwarden:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json"
	}
	return "text/plain; charset=utf-8"
}

// DefaultFilename returns the suggested file name for the format.
func (f Format) DefaultFilename() string {
	switch f {
	case FormatKeePass:
		return "passforge_keepass.csv"
	case FormatBitwarden:
		return "passforge_bitwarden.csv"
	case FormatJSON:
		return "passforge_passwords.json"
	}
	return "passwords.txt"
}

// Document is the JSON export layout.
type Document struct {
	App       string   `json:"app"`
	Version   string   `json:"version"`
	Author    string   `json:"author"`
	Generated []string `json:"generated"`
}

// Write serializes passwords to w in the given format.
func Write(w io.Writer, f Format, passwords []string) error {
	if len(passwords) == 0 {
		return ErrNothingToExport
	}

	switch f {
	case FormatText:
		_, err := io.WriteString(w, strings.Join(passwords, "\n"))
		return err
	case FormatKeePass:
		return writeCSV(w, []string{"Title", "Username", "Password", "URL", "Notes"}, passwords)
	case FormatBitwarden:
		return writeCSV(w, []string{"name", "username", "password", "url", "notes"}, passwords)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(Document{
			App:       AppName,
			Version:   Version,
			Author:    Author,
			Generated: passwords,
		})
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// SaveFile writes passwords to path, replacing any existing file.
// The file is created with owner-only permissions.
func SaveFile(path string, f Format, passwords []string) error {
	if len(passwords) == 0 {
		return ErrNothingToExport
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("opening export file: %w", err)
	}

	if err := Write(file, f, passwords); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func writeCSV(w io.Writer, header []string, passwords []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, pw := range passwords {
		if err := cw.Write([]string{entryTitle, "", pw, "", entryNotes}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
