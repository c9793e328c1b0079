// Package catalog holds the provider declarations shipped with provconf.
//
// Declarations are embedded JSONC files. Each one is parsed and checked with
// provconf.MustProvider when the package is initialized, so a broken built-in
// fails every test and every binary that links it.
//
//	openai, err := catalog.Get("openai")
//	values := provconf.DefaultValues(openai.Fields())
package catalog
