// Package identify runs a content-based format identification tool (Siegfried's sf, or anything
// that speaks its JSON) against a single file and turns the answer into an
// entity.IdentificationResult.
//
// Key types:
//   - Identifier: configured tool invocation (binary, timeout, reporter)
//   - Output/File/Match: typed view of the tool's JSON output
//   - Failure: why a file yielded no result, classified by FailureKind
//   - Reporter: where failures are sent (stderr, zap, or a custom sink)
//
// Identify never returns an error: a failure is reported and an empty result comes back.
// Inspect returns the *Failure instead, for callers that want to handle it themselves.
package identify
