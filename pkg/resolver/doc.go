// Package resolver downloads the content behind a metadata URI.
//
// Supported schemes are hcs://1/<topic> (HCS-1 inscriptions read from the
// mirror node), http and https, ipfs:// through a public gateway and ar://
// through arweave.net.
package resolver
