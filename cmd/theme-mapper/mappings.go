// cmd/theme-mapper/mappings.go
package main

import (
	"encoding/json"

	"theme-mapper/pkg/registry"

	"github.com/spf13/cobra"
)

func newMappingsCmd(configFile *string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "List how every field of the mapped theme is produced",
		Long: `Print one line per destination path of the mapped theme with its rule:
copy and broadcast rules name the source member, const rules show the
design-system value. The configured font family and variable table member
are shown in place of the defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configFile, cmd.Flags())
			if err != nil {
				return err
			}
			reg := registry.Default()
			if err := reg.SetConstant("base.fontFamily", cfg.Mapper.FontFamily); err != nil {
				return err
			}
			if err := reg.SetSource("custom._variables", cfg.Resolver.TableKey); err != nil {
				return err
			}
			if !asJSON {
				return reg.WriteTable(cmd.OutOrStdout())
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(reg)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the registry as JSON")
	return cmd
}
