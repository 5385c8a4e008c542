package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"zipshipping/internal/logging"
	"zipshipping/internal/postcode"
	"zipshipping/internal/rate"
)

func newEvaluateCmd() *cobra.Command {
	var (
		allowed  string
		title    string
		cost     string
		disabled bool
	)
	c := &cobra.Command{
		Use:   "evaluate <postcode>",
		Short: "Evaluate a destination postcode against an allow list",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := ""
			if len(args) == 1 {
				dest = args[0]
			}
			cfg, err := rate.FromSettings(rate.Settings{
				rate.KeyTitle:       title,
				rate.KeyCost:        cost,
				rate.KeyAllowedZips: allowed,
			})
			if err != nil {
				return err
			}
			cfg.Enabled = !disabled

			e := rate.NewEvaluator(rate.MethodID, rate.WithLogger(logging.Named("evaluate")))
			offer, ok := e.Evaluate(dest, cfg)
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "no rate for %q\n", postcode.Normalize(dest))
				return nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(offer)
		},
	}
	c.Flags().StringVar(&allowed, "allowed", "", "allowed postcodes, separated by commas or new lines")
	c.Flags().StringVar(&title, "title", "Local delivery", "rate label")
	c.Flags().StringVar(&cost, "cost", "0", "flat cost")
	c.Flags().BoolVar(&disabled, "disabled", false, "evaluate as a disabled method")
	return c
}

func newPatternsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns <allow-list>",
		Short: "Show how an allow list is parsed",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			set := postcode.Parse(args[0])
			if set.Empty() {
				fmt.Fprintln(cmd.OutOrStdout(), "no patterns: nothing will match")
				return
			}
			for i, p := range set.Patterns() {
				value := p.Value
				if p.Kind == postcode.KindPrefixWildcard && value == "" {
					value = "(any)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%q\n", i+1, p.Kind, value, p.Raw)
			}
		},
	}
}
