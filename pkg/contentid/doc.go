// Package contentid derives deterministic identifiers from content bytes.
//
// Identifiers are CIDv1 strings using the raw multicodec over a sha2-256
// multihash. They key the run journal and name objects in the S3 store, so the
// same bytes always map to the same identifier across runs.
package contentid
