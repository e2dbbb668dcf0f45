package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"wcag-audit/internal/predict"
)

func newPredictCmd() *cobra.Command {
	var s predict.Signals
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Estimate how error-prone a client environment is",
		Example: `  wcag-audit predict --browser "Internet Explorer" --render-time 350ms --os "Windows XP"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(predict.Predict(s))
		},
	}
	f := cmd.Flags()
	f.StringVar(&s.Browser, "browser", "", "client browser name")
	f.DurationVar(&s.RenderTime, "render-time", 0, "measured render time")
	f.StringVar(&s.OS, "os", "", "client operating system")
	return cmd
}
