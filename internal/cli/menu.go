package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/passforge/passforge-go/internal/clipboard"
	"github.com/passforge/passforge-go/internal/export"
	"github.com/passforge/passforge-go/internal/model"
)

const menuText = `============== Main Menu ================
[1] Generate by Preset (easy/medium/strong/very-strong)
[2] Custom Generation (your own characters)
[3] Bulk Quick Generate
[4] Copy Last Password to Clipboard
[5] Save Generated Passwords to File
[6] Clear Current Session
[7] Check Password Strength
[8] About / Help
[0] Exit
=========================================`

const aboutText = `%s v%s by %s

Passwords are drawn from the operating system's secure random source.
Presets guarantee at least one character of every selected class.
Strength is estimated as length x log2(pool size):
  below 40 bits weak, below 60 medium, below 80 strong, otherwise very-strong.
Saving supports text, csv-keepass, csv-bitwarden and json.`

func (a *App) menuCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Start the interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMenu(cmd.Context())
		},
	}
}

// prompter reads answers line by line from the menu input.
type prompter struct {
	sc  *bufio.Scanner
	out io.Writer
}

// ask prints prompt and returns the next line. ok is false at end of input.
func (p *prompter) ask(prompt string) (string, bool) {
	fmt.Fprint(p.out, prompt)
	if !p.sc.Scan() {
		return "", false
	}
	return strings.TrimRight(p.sc.Text(), "\r"), true
}

// askInt reads a non-negative integer; an empty answer yields 0.
func (p *prompter) askInt(prompt string) (int, bool, error) {
	answer, ok := p.ask(prompt)
	if !ok {
		return 0, false, nil
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return 0, true, nil
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 0 {
		return 0, true, fmt.Errorf("%q is not a valid number", answer)
	}
	return n, true, nil
}

// runMenu loops until the user exits or input ends. Failed actions are
// reported and the loop continues.
func (a *App) runMenu(ctx context.Context) error {
	p := &prompter{sc: bufio.NewScanner(a.In), out: a.Out}

	fmt.Fprintln(a.Out, headerStyle.Render("PassForge"))
	for {
		fmt.Fprintln(a.Out, menuText)
		choice, ok := p.ask("Select option > ")
		if !ok {
			return nil
		}

		var err error
		switch strings.TrimSpace(choice) {
		case "1":
			ok, err = a.menuPreset(ctx, p)
		case "2":
			ok, err = a.menuCustom(ctx, p)
		case "3":
			ok, err = a.menuBulk(ctx, p)
		case "4":
			err = clipboard.CopyLast(a.Copier, a.Session)
			if err == nil {
				fmt.Fprintln(a.Out, "Last password copied to clipboard.")
			}
		case "5":
			ok, err = a.menuSave(p)
		case "6":
			a.Session.Clear()
			fmt.Fprintln(a.Out, "Session cleared.")
		case "7":
			var pw string
			pw, ok = p.ask("Password > ")
			if ok {
				a.printStrength(a.service.CheckStrength(model.StrengthRequest{Password: pw}))
			}
		case "8":
			fmt.Fprintf(a.Out, aboutText+"\n", export.AppName, export.Version, export.Author)
		case "0":
			fmt.Fprintln(a.Out, "Goodbye.")
			return nil
		default:
			fmt.Fprintln(a.Out, "Invalid option.")
		}

		if err != nil {
			a.reportMenuError(err)
		}
		if !ok {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintln(a.Out)
	}
}

func (a *App) reportMenuError(err error) {
	switch {
	case errors.Is(err, clipboard.ErrEmptySession):
		fmt.Fprintln(a.Out, "No password in session yet.")
	case errors.Is(err, export.ErrNothingToExport):
		fmt.Fprintln(a.Out, "Nothing to save.")
	default:
		fmt.Fprintf(a.Out, "Error: %v\n", err)
	}
}

func (a *App) menuPreset(ctx context.Context, p *prompter) (bool, error) {
	preset, ok := p.ask("Preset (easy/medium/strong/very-strong) [strong] > ")
	if !ok {
		return false, nil
	}
	length, ok, err := p.askInt("Length [preset default] > ")
	if !ok || err != nil {
		return ok, err
	}

	preset = strings.TrimSpace(preset)
	if preset == "" {
		preset = "strong"
	}

	resp, err := a.service.Generate(ctx, model.GenerateRequest{Preset: preset, Length: length})
	if err != nil {
		return true, err
	}
	return true, a.emit([]model.GenerateResponse{resp}, false, "", "")
}

func (a *App) menuCustom(ctx context.Context, p *prompter) (bool, error) {
	charset, ok := p.ask("Characters to use > ")
	if !ok {
		return false, nil
	}
	length, ok, err := p.askInt("Length [16] > ")
	if !ok || err != nil {
		return ok, err
	}

	resp, err := a.service.GenerateCustom(ctx, model.CustomGenerateRequest{Charset: charset, Length: length})
	if err != nil {
		return true, err
	}
	return true, a.emit([]model.GenerateResponse{resp}, false, "", "")
}

func (a *App) menuBulk(ctx context.Context, p *prompter) (bool, error) {
	count, ok, err := p.askInt("Number of passwords > ")
	if !ok || err != nil {
		return ok, err
	}
	length, ok, err := p.askInt("Length [preset default] > ")
	if !ok || err != nil {
		return ok, err
	}
	preset, ok := p.ask("Preset (easy/medium/strong/very-strong) [strong] > ")
	if !ok {
		return false, nil
	}

	preset = strings.TrimSpace(preset)
	if preset == "" {
		preset = "strong"
	}

	resp, err := a.service.GenerateBulk(ctx, model.GenerateRequest{Preset: preset, Length: length, Count: count})
	if err != nil {
		return true, err
	}
	return true, a.emit(resp.Passwords, false, "", "")
}

func (a *App) menuSave(p *prompter) (bool, error) {
	answer, ok := p.ask("Format (text/csv-keepass/csv-bitwarden/json) [text] > ")
	if !ok {
		return false, nil
	}
	f, err := export.ParseFormat(answer)
	if err != nil {
		return true, err
	}

	path, ok := p.ask(fmt.Sprintf("Filename [%s] > ", f.DefaultFilename()))
	if !ok {
		return false, nil
	}
	path = strings.TrimSpace(path)
	if path == "" {
		path = f.DefaultFilename()
	}

	passwords := a.Session.Passwords()
	if err := export.SaveFile(path, f, passwords); err != nil {
		return true, err
	}
	fmt.Fprintf(a.Out, "Saved %d password(s) to %s.\n", len(passwords), path)
	return true, nil
}
