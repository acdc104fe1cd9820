package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/codepad/internal/app"
)

func newLanguagesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the languages codepad highlights",
		Long: `List every language in the registry with the file extensions it
serves, including languages added by the configured Lua languages file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := opts.loadConfig()
			if err != nil {
				return err
			}
			registry, err := app.LoadRegistry(cfg, path)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "LANGUAGE\tEXTENSIONS\tRULES")
			for _, rs := range registry.Languages() {
				fmt.Fprintf(w, "%s\t%s\t%d\n", rs.Name, strings.Join(rs.Extensions, " "), len(rs.Rules))
			}
			return w.Flush()
		},
	}
}
