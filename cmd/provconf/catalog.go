package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"mercator-hq/provconf/pkg/catalog"
	"mercator-hq/provconf/pkg/cli"
	"mercator-hq/provconf/pkg/fields"
)

func newCatalogCmd(root *rootOptions) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:   "catalog [id]",
		Short: "List the built-in providers",
		Long: `List the built-in providers, or print the declaration of one of them.

Examples:
  provconf catalog
  provconf catalog openai --format json
  provconf catalog anthropic --defaults`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cli.ParseOutputFormat(root.output)
			if err != nil {
				return err
			}
			out := cli.NewFormatter(output)

			if len(args) == 0 {
				return out.FormatTo(cmd.OutOrStdout(), catalogList(catalog.All()))
			}

			p, err := catalog.Get(args[0])
			if err != nil {
				return cli.NewCommandError("catalog", err)
			}
			if defaults {
				return out.FormatTo(cmd.OutOrStdout(), fields.DefaultValues(p.Fields()))
			}
			// A declaration has no useful text form.
			return cli.NewFormatter(cli.FormatJSON).FormatTo(cmd.OutOrStdout(), p)
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, "print the initial form values instead of the declaration")
	return cmd
}

type catalogList []fields.ProviderDeclaration

// RenderText writes one row per provider.
func (l catalogList) RenderText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tMODELS\tFIELDS")
	for _, p := range l {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", p.ID, p.Name, len(p.Models), len(p.Fields()))
	}
	return tw.Flush()
}
