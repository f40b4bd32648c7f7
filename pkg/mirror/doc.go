// Package mirror is a read-only client for the Hedera mirror node REST API.
//
// The collection tooling reads everything it needs to know about existing
// collections, assets and accounts through this package: token records,
// individual NFT serials and their owners, the NFTs held by an account,
// account lookup by public key, and the topic messages that carry HCS-1
// inscriptions.
package mirror
