// Package health reports whether the documents provconf watches are valid.
//
// A Checker runs named checks concurrently, each bounded by a timeout.
// DocumentState is the check used in watch mode: it remembers the latest
// report of every watched document and fails while any of them is invalid.
//
// Endpoints:
//
//	/health   liveness, always 200 while the process runs
//	/ready    200 when every check passes, 503 otherwise
//	/version  build information
package health
