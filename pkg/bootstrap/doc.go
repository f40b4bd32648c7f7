// Package bootstrap wires the configured mirror, ledger, asset store, fetcher
// and journal into the collaborators the collection flows run against.
package bootstrap
