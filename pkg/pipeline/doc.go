// Package pipeline implements the collection commands as sequential flows over
// injected collaborators: a signing identity, a ledger client, an asset store
// and a content fetcher.
//
// Every flow follows the same shape. It reads local files, uploads them, builds
// and uploads a metadata document, submits one ledger write per entity, and
// reports the results. Local precondition failures are returned as
// *PreconditionError before any remote write. Remote failures are returned
// wrapped but otherwise unmodified.
//
// When a journal is configured, each upload and ledger write is recorded under
// a content-derived key and skipped on later runs.
package pipeline
