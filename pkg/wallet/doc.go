// Package wallet loads the local signing identity.
//
// The secret file holds a JSON array of 64 bytes: a 32-byte ed25519 seed
// followed by its 32-byte public key. A JSON string holding a DER or hex
// encoded Hedera private key is accepted as well. The account that the key
// controls is either configured explicitly or looked up on the mirror node.
package wallet
