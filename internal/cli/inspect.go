package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/passforge/passforge-go/internal/crypto"
	"github.com/passforge/passforge-go/internal/model"
)

func (a *App) classifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classify [password]",
		Short: "Rate a password by its estimated entropy",
		Long:  "Rate a password by its estimated entropy. Without an argument the password\nis read from standard input, hidden when it is a terminal.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				var err error
				if password, err = a.ReadSecret("Password: "); err != nil {
					return err
				}
			}
			a.printStrength(a.service.CheckStrength(model.StrengthRequest{Password: password}))
			return nil
		},
	}
}

func (a *App) printStrength(resp model.StrengthResponse) {
	classes := "none"
	if len(resp.Classes) > 0 {
		classes = strings.Join(resp.Classes, ", ")
	}

	fmt.Fprintf(a.Out, "Strength:     %s\n", renderRating(crypto.Rating(resp.Strength)))
	fmt.Fprintf(a.Out, "Entropy:      %.2f bits\n", resp.EntropyBits)
	fmt.Fprintf(a.Out, "Pool size:    %d\n", resp.PoolSize)
	fmt.Fprintf(a.Out, "Length:       %d\n", resp.Length)
	fmt.Fprintf(a.Out, "Classes:      %s\n", classes)
	fmt.Fprintf(a.Out, "zxcvbn score: %d/4\n", resp.ZxcvbnScore)
}

func (a *App) presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(a.Out, headerStyle.Render(fmt.Sprintf("%-12s %-7s %-8s %s", "NAME", "LENGTH", "SYMBOLS", "CLASSES")))
			for _, p := range a.service.Presets() {
				fmt.Fprintf(a.Out, "%-12s %-7d x%-7d %s\n", p.Name, p.Length, p.SymbolWeight, strings.Join(p.Classes, ", "))
			}
		},
	}
}
