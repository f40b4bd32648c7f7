// Collection Kit is a set of command-line tools for managing an NFT
// collection on the Hedera public ledger. Images and metadata documents are
// inscribed with HCS-1 (or stored in an S3-compatible bucket) and the
// collection itself is a non-fungible token whose metadata points at them.
//
// # Commands
//
//   - create-collection: upload assets/collection.png and create the collection token
//   - mint-assets: mint every image in assets/nfts into a collection
//   - list-assets: list the assets held by an account
//   - transfer-asset: move an asset you own to another account
//   - rename-collection: change the name in a collection's metadata
//
// Settings are read from COLLECTION_* environment variables or a --config
// file. Passing --journal records every completed upload and ledger write in
// a sqlite file so that a rerun after a failure resumes instead of minting
// duplicates.
//
// # Installation
//
//	go install github.com/hashgraph-online/collection-kit-go/cmd/...@latest
package collectionkit
