// Package shared holds the small helpers every other package in the kit leans
// on: network name normalization, Hedera client construction for a named
// network or an explicit consensus node list, and private key parsing.
package shared
