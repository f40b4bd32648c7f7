// Package journal records completed upload and ledger steps under
// content-derived keys so that a rerun after a partial failure can skip work
// that already reached the ledger or the asset store.
//
// Keys have the forms
//
//	upload/<cid of uploaded bytes>
//	collection/<cid of collection metadata document>
//	mint/<collection address>/<cid of image bytes>-<position>
//
// The sqlite journal persists entries across runs. The no-op journal records
// nothing and is used when no journal path is configured.
package journal
