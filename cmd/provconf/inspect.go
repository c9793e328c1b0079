package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"mercator-hq/provconf/pkg/cli"
	"mercator-hq/provconf/pkg/source"
)

func newInspectCmd(root *rootOptions) *cobra.Command {
	var provider string

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Summarize a providers document without validating it",
		Long: `Print the version and providers of a document without validating it.

This is useful to look at documents that do not validate yet. With
--provider, the declared field ids of that provider are listed too.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cli.ParseOutputFormat(root.output)
			if err != nil {
				return err
			}
			report, err := inspect(args[0], provider)
			if err != nil {
				return cli.NewCommandError("inspect", err)
			}
			return cli.NewFormatter(output).FormatTo(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "also list the field ids of this provider")
	return cmd
}

type inspectReport struct {
	Path string `json:"path"`
	source.Summary
	FieldIDs []string `json:"fieldIds,omitempty"`
}

func inspect(path, provider string) (inspectReport, error) {
	doc, err := source.ReadFile(path)
	if err != nil {
		return inspectReport{}, err
	}
	data, err := source.ToJSON(doc.Content, doc.Format)
	if err != nil {
		return inspectReport{}, err
	}

	summary, ok := source.Peek(data)
	if !ok {
		return inspectReport{}, fmt.Errorf("%s is not a JSON document", path)
	}

	report := inspectReport{Path: path, Summary: summary}
	if provider != "" {
		report.FieldIDs = source.FieldIDs(data, provider)
	}
	return report, nil
}

// RenderText writes a short human readable summary.
func (r inspectReport) RenderText(w io.Writer) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: version %q, %d provider(s)\n", r.Path, r.Version, len(r.Providers))
	for _, p := range r.Providers {
		fmt.Fprintf(&sb, "  %-20s %-24s %d model(s), %d field(s)\n", p.ID, p.Name, p.ModelCount, p.FieldCount)
	}
	if len(r.Extra) > 0 {
		fmt.Fprintf(&sb, "  unknown keys: %s\n", strings.Join(r.Extra, ", "))
	}
	if r.FieldIDs != nil {
		fmt.Fprintf(&sb, "  fields: %s\n", strings.Join(r.FieldIDs, ", "))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
