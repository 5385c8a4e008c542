package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"zipshipping/internal/postcode"
	"zipshipping/internal/rate"
)

func newValidateCmd() *cobra.Command {
	var file string
	c := &cobra.Command{
		Use:   "validate",
		Short: "Validate a YAML settings file",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var s rate.Settings
			if err := yaml.Unmarshal(data, &s); err != nil {
				return fmt.Errorf("parse %s: %w", file, err)
			}
			cfg, err := rate.FromSettings(s)
			if err != nil {
				return err
			}
			n := postcode.Parse(cfg.AllowedZipsRaw).Len()
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %q enabled=%t cost=%s patterns=%d\n", cfg.Title, cfg.Enabled, cfg.Cost, n)
			return nil
		},
	}
	c.Flags().StringVarP(&file, "file", "f", "", "settings file")
	_ = c.MarkFlagRequired("file")
	return c
}
