package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wcag-audit/internal/contrast"
)

func newContrastCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "contrast FOREGROUND BACKGROUND",
		Short: "Compute the contrast ratio of two colors",
		Example: `  wcag-audit contrast '#767676' white
  wcag-audit contrast 'rgb(100,100,100)' black --wcag-level AAA`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fg, bg := args[0], args[1]
			out := cmd.OutOrStdout()

			ratio := contrast.Ratio(fg, bg)
			level := a.settings.Audit.WCAGLevel
			want := level.MinContrast()

			fmt.Fprintf(out, "Foreground: %s\n", contrast.ParseColor(fg).Hex())
			fmt.Fprintf(out, "Background: %s\n", contrast.ParseColor(bg).Hex())
			fmt.Fprintf(out, "Ratio: %.2f:1\n", ratio)
			fmt.Fprintf(out, "Compliance: %s\n", contrast.Level(ratio))
			verdict := "yes"
			if ratio < want {
				verdict = "no"
			}
			fmt.Fprintf(out, "Meets WCAG %s (%.1f:1): %s\n", level, want, verdict)

			if s := contrast.Suggest(fg, bg); !s.Empty() {
				if s.Foreground != "" {
					fmt.Fprintf(out, "Suggested foreground: %s\n", s.Foreground)
				}
				if s.Background != "" {
					fmt.Fprintf(out, "Suggested background: %s\n", s.Background)
				}
			}
			return nil
		},
	}
}
