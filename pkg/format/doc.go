// Package format turns validation errors into messages for developers or end
// users.
//
// The Mode is fixed when the Formatter is created. Development mode keeps
// technical detail: raw parser messages, line and column, rejected values.
// Production mode replaces parser and I/O messages with fixed strings,
// simplifies technical phrasing and never includes values.
//
// Every list-producing method caps its output at Config.MaxErrorCount real
// errors followed by one TRUNCATED entry counting the rest.
package format
