// Package document validates persisted providers documents.
//
// A providers document carries a schema version, a non-empty list of
// provider declarations and optional metadata. Top-level keys this version
// does not know about are kept in ProvidersDocument.Extra and written back
// unchanged, so a document survives a read/validate/write cycle even when it
// was produced by a newer minor version.
//
// Versions are MAJOR.MINOR.PATCH with no prefix or suffix. A document is
// readable when its major version equals the supported one and its
// (minor, patch) is not older.
package document
