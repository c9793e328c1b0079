// Package source reads providers documents from disk or memory.
//
// Supported formats are JSON, JSON with comments and trailing commas
// (".jsonc", read with hujson), and YAML. Every format is parsed into the
// same untyped tree (maps with string keys, slices, strings, numbers,
// booleans) that package document validates.
//
// Parse failures are returned as *ParseError, which keeps the original
// content so that callers can turn offsets into line and column.
//
// Watcher notifies about changes to a document or a directory of documents
// using fsnotify, debouncing bursts of events.
package source
