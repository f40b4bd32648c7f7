// Package ledger creates, mints, transfers and updates non-fungible token
// collections on Hedera. Writes go through the Hedera SDK; reads go through the
// mirror node.
//
// A collection is an HTS token of type NON_FUNGIBLE_UNIQUE addressed by its
// token ID. An asset is one serial of that token, addressed as "serial@token".
// Both carry a metadata URI of at most 100 bytes.
package ledger
