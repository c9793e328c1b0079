package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"mercator-hq/provconf/pkg/catalog"
	"mercator-hq/provconf/pkg/cli"
	"mercator-hq/provconf/pkg/errors"
	"mercator-hq/provconf/pkg/fields"
	"mercator-hq/provconf/pkg/format"
	"mercator-hq/provconf/pkg/provconf"
	"mercator-hq/provconf/pkg/source"
	"mercator-hq/provconf/pkg/telemetry/logging"
)

type valuesOptions struct {
	document   string
	provider   string
	catalogID  string
	valuesFile string
	partial    bool
}

func newValuesCmd(root *rootOptions) *cobra.Command {
	opts := &valuesOptions{}

	cmd := &cobra.Command{
		Use:   "values",
		Short: "Validate configuration values against a provider",
		Long: `Validate the values a user entered for a provider.

The provider comes either from a providers document (--document and
--provider) or from the built-in catalog (--catalog). The values file is a
JSON, JSONC or YAML object mapping field ids to strings or booleans.

With --partial only the values present are checked, which is how a form is
validated while it is being filled in.

Examples:
  provconf values --document providers.json --provider openai --values openai.yaml
  provconf values --catalog anthropic --values draft.json --partial`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValues(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.document, "document", "", "providers document holding the provider")
	cmd.Flags().StringVar(&opts.provider, "provider", "", "provider id within --document")
	cmd.Flags().StringVar(&opts.catalogID, "catalog", "", "built-in provider id")
	cmd.Flags().StringVar(&opts.valuesFile, "values", "", "values file (required)")
	cmd.Flags().BoolVar(&opts.partial, "partial", false, "only check the values present")
	_ = cmd.MarkFlagRequired("values")
	cmd.MarkFlagsMutuallyExclusive("catalog", "document")
	cmd.MarkFlagsRequiredTogether("document", "provider")
	return cmd
}

// valuesReport is the outcome of checking one set of values. Secret values
// are masked before the report is printed.
type valuesReport struct {
	Provider string                    `json:"provider"`
	Partial  bool                      `json:"partial"`
	Valid    bool                      `json:"valid"`
	Errors   []*errors.ValidationError `json:"errors"`
	Values   fields.Values             `json:"values"`
}

// RenderText writes the verdict followed by the masked values.
func (r valuesReport) RenderText(w io.Writer) error {
	msg := format.CreateDeveloperMessage(r.Errors)
	if r.Valid {
		msg += "\n"
	}
	if _, err := fmt.Fprintf(w, "%s: %s", r.Provider, msg); err != nil {
		return err
	}

	ids := make([]string, 0, len(r.Values))
	for id := range r.Values {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if _, err := fmt.Fprintf(w, "  %s = %v\n", id, r.Values[id]); err != nil {
			return err
		}
	}
	return nil
}

func runValues(cmd *cobra.Command, root *rootOptions, opts *valuesOptions) error {
	if opts.catalogID == "" && opts.document == "" {
		return cli.NewConfigError("values", "one of --catalog or --document is required")
	}

	a, err := newApp(cmd, root)
	if err != nil {
		return err
	}

	provider, err := resolveProvider(cmd, a, opts)
	if err != nil {
		return err
	}
	a.ctx = logging.WithProvider(a.ctx, provider.ID)
	a.logger = a.logger.WithContext(a.ctx)

	values, err := readValues(opts.valuesFile)
	if err != nil {
		return cli.NewCommandError("values", err)
	}

	result := a.engine.ValidateProviderValues(provider, values, opts.partial)
	result = a.engine.Format(result, provider.Fields())
	a.logger.Info("values checked", "valid", result.Valid, "errors", len(result.Errors), "partial", opts.partial)

	report := valuesReport{
		Provider: provider.ID,
		Partial:  opts.partial,
		Valid:    result.Valid,
		Errors:   result.Errors,
		Values:   logging.RedactValues(values, provider.Fields()),
	}
	if err := a.output.FormatTo(cmd.OutOrStdout(), report); err != nil {
		return cli.NewCommandError("values", err)
	}
	if !report.Valid {
		return &cli.InvalidError{Count: len(report.Errors)}
	}
	return nil
}

// resolveProvider loads the provider named by the flags. An invalid
// document is printed like validate prints it.
func resolveProvider(cmd *cobra.Command, a *app, opts *valuesOptions) (fields.ProviderDeclaration, error) {
	if opts.catalogID != "" {
		p, err := catalog.Get(opts.catalogID)
		if err != nil {
			return fields.ProviderDeclaration{}, cli.NewCommandError("values", err)
		}
		return p, nil
	}

	file := a.engine.CheckFile(opts.document)
	if !file.Valid {
		if err := a.output.FormatTo(cmd.OutOrStdout(), file); err != nil {
			return fields.ProviderDeclaration{}, cli.NewCommandError("values", err)
		}
		return fields.ProviderDeclaration{}, &cli.InvalidError{Count: len(file.Errors)}
	}

	p, verr := provconf.FindProvider(file.Document, opts.provider)
	if verr != nil {
		return fields.ProviderDeclaration{}, cli.NewCommandError("values", verr)
	}
	return *p, nil
}

func readValues(path string) (fields.Values, error) {
	doc, err := source.ReadFile(path)
	if err != nil {
		return nil, err
	}
	obj, ok := doc.Tree.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("values file %q must contain an object", path)
	}
	return fields.Values(obj), nil
}
