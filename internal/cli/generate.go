package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/passforge/passforge-go/internal/clipboard"
	"github.com/passforge/passforge-go/internal/export"
	"github.com/passforge/passforge-go/internal/model"
)

type generateOptions struct {
	preset       string
	length       int
	noUpper      bool
	noLower      bool
	noDigits     bool
	noSymbols    bool
	symbolWeight int
	count        int
	copy         bool
	out          string
	format       string
}

func (a *App) generateCommand() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate passwords from a preset or character classes",
		Example: `  passforge generate --preset very-strong
  passforge generate --length 20 --no-symbols --count 5
  passforge generate --preset strong --copy --out vault.csv --format csv-bitwarden`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			classFlags := false
			for _, name := range []string{"no-upper", "no-lower", "no-digits", "no-symbols"} {
				classFlags = classFlags || cmd.Flags().Changed(name)
			}
			return a.runGenerate(cmd.Context(), opts, classFlags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.preset, "preset", "p", "", "preset: easy, medium, strong or very-strong")
	f.IntVarP(&opts.length, "length", "l", 0, "password length (default 16, or the preset length)")
	f.BoolVar(&opts.noUpper, "no-upper", false, "exclude uppercase letters")
	f.BoolVar(&opts.noLower, "no-lower", false, "exclude lowercase letters")
	f.BoolVar(&opts.noDigits, "no-digits", false, "exclude digits")
	f.BoolVar(&opts.noSymbols, "no-symbols", false, "exclude symbols")
	f.IntVar(&opts.symbolWeight, "symbol-weight", 0, "repeat the symbol alphabet this many times in the pool")
	f.IntVarP(&opts.count, "count", "n", 0, "number of passwords to generate (default 1)")
	f.BoolVarP(&opts.copy, "copy", "c", false, "copy the result to the clipboard")
	f.StringVarP(&opts.out, "out", "o", "", "save the result to this file")
	f.StringVarP(&opts.format, "format", "f", "", "file format: text, csv-keepass, csv-bitwarden or json")

	return cmd
}

func (a *App) runGenerate(ctx context.Context, opts generateOptions, classFlags bool) error {
	req := model.GenerateRequest{
		Preset:       opts.preset,
		Length:       opts.length,
		Uppercase:    boolPtr(!opts.noUpper),
		Lowercase:    boolPtr(!opts.noLower),
		Numbers:      boolPtr(!opts.noDigits),
		Symbols:      boolPtr(!opts.noSymbols),
		SymbolWeight: opts.symbolWeight,
		Count:        opts.count,
	}
	// Explicit class flags win over a configured default preset.
	if req.Preset == "" && !classFlags {
		req.Preset = a.defaults.Preset
	}
	if req.Length == 0 {
		req.Length = a.defaults.Length
	}
	if req.Count == 0 {
		req.Count = a.defaults.Count
	}
	if req.Count == 0 {
		req.Count = 1
	}

	var results []model.GenerateResponse
	if req.Count == 1 {
		resp, err := a.service.Generate(ctx, req)
		if err != nil {
			return err
		}
		results = append(results, resp)
	} else {
		resp, err := a.service.GenerateBulk(ctx, req)
		if err != nil {
			return err
		}
		results = resp.Passwords
	}

	return a.emit(results, opts.copy, opts.out, opts.format)
}

func (a *App) customCommand() *cobra.Command {
	var (
		charset    string
		length     int
		copyResult bool
	)

	cmd := &cobra.Command{
		Use:     "custom",
		Short:   "Generate a password from your own characters",
		Example: `  passforge custom --charset "abc123" --length 24`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if length == 0 {
				length = a.defaults.Length
			}
			resp, err := a.service.GenerateCustom(cmd.Context(), model.CustomGenerateRequest{Charset: charset, Length: length})
			if err != nil {
				return err
			}
			return a.emit([]model.GenerateResponse{resp}, copyResult, "", "")
		},
	}

	cmd.Flags().StringVar(&charset, "charset", "", "characters to draw from")
	cmd.Flags().IntVarP(&length, "length", "l", 0, "password length (default 16)")
	cmd.Flags().BoolVarP(&copyResult, "copy", "c", false, "copy the result to the clipboard")
	cmd.MarkFlagRequired("charset")

	return cmd
}

// emit prints results, records them in the session and optionally copies or saves them.
func (a *App) emit(results []model.GenerateResponse, copyResult bool, out, format string) error {
	passwords := make([]string, 0, len(results))
	for _, r := range results {
		a.Session.Add(r.Password)
		passwords = append(passwords, r.Password)
		fmt.Fprintf(a.Out, "%s  %s\n", r.Password, badge(r.Strength, r.EntropyBits))
	}

	if copyResult {
		var err error
		if len(results) == 1 {
			err = clipboard.CopyLast(a.Copier, a.Session)
		} else {
			err = clipboard.CopyAll(a.Copier, a.Session)
		}
		if err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
		fmt.Fprintln(a.Out, mutedStyle.Render("Copied to clipboard."))
	}

	if out != "" {
		if format == "" {
			format = a.defaults.ExportFormat
		}
		f, err := export.ParseFormat(format)
		if err != nil {
			return err
		}
		if err := export.SaveFile(out, f, passwords); err != nil {
			return err
		}
		fmt.Fprintln(a.Out, mutedStyle.Render(fmt.Sprintf("Saved %d password(s) to %s.", len(passwords), out)))
	}

	return nil
}

func boolPtr(b bool) *bool {
	return &b
}
