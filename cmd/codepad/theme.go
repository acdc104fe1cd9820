package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/codepad/internal/app"
)

func newThemeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Inspect color themes",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := opts.loadConfig()
			if err != nil {
				return err
			}
			themes, active, err := app.LoadThemes(cfg, path)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			for _, name := range themes.Names() {
				marker := " "
				if name == active.Name {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "export [name]",
		Short: "Write a theme as JSON",
		Long: `Write a theme as JSON, ready to edit and load with ui.theme_file.
Without a name the configured theme is exported.`,
		Example: `  codepad theme export light > mytheme.json`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := opts.loadConfig()
			if err != nil {
				return err
			}
			themes, theme, err := app.LoadThemes(cfg, path)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			if len(args) == 1 {
				var ok bool
				if theme, ok = themes.Get(args[0]); !ok {
					return fmt.Errorf("unknown theme %q", args[0])
				}
			}
			data, err := theme.ExportJSON()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	})
	return cmd
}
