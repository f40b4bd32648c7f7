// Package metadata builds and edits the JSON documents referenced by
// collection and asset metadata URIs.
//
// Documents follow the HIP-412 layout: name, description, image, type, files
// and properties. ReplaceName edits an existing document in place so that only
// the top-level name value changes and every other byte is kept.
package metadata
