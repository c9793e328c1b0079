// Command provconf checks provider declarations, providers documents and
// user-entered configuration values.
//
// Usage:
//
//	# Validate a providers document (or every document in a directory)
//	provconf validate providers.json
//
//	# Re-validate on every change, exporting metrics
//	provconf validate providers.yaml --watch --metrics-file /var/lib/node_exporter/provconf.prom
//
//	# Check values against a provider of a document
//	provconf values --document providers.json --provider openai --values openai.yaml
//
//	# Check values against a built-in provider
//	provconf values --catalog anthropic --values anthropic.json --partial
//
//	# Summarize a document without validating it
//	provconf inspect providers.json
//
//	# List built-in providers
//	provconf catalog
//
// Exit status is 0 when everything is valid, 1 when validation found errors
// and 2 when the command itself failed.
package main

func main() {
	Execute()
}
