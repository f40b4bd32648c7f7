package report

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// ListedAsset is one line block of an owner listing.
type ListedAsset struct {
	Address string
	Name    string
}

// Reporter writes human-readable status lines. Write errors are ignored.
type Reporter struct {
	out      io.Writer
	explorer Explorer
}

func New(out io.Writer, explorer Explorer) *Reporter {
	return &Reporter{out: out, explorer: explorer}
}

func (r *Reporter) Explorer() Explorer {
	return r.explorer
}

func (r *Reporter) Wallet(address string) {
	r.printf("Using wallet: %s\n", address)
}

func (r *Reporter) Balance(balance decimal.Decimal) {
	r.printf("Wallet balance: %s HBAR\n", balance.String())
}

func (r *Reporter) Step(message string) {
	r.printf("%s\n", message)
}

func (r *Reporter) ImageUploaded(uri string) {
	r.printf("Image uploaded: %s\n", uri)
}

func (r *Reporter) MetadataUploaded(uri string) {
	r.printf("Metadata URI: %s\n", uri)
}

// Reused reports a step skipped because the journal already holds its result.
func (r *Reporter) Reused(step string, value string) {
	r.printf("Reusing recorded %s: %s\n", step, value)
}

func (r *Reporter) CollectionCreated(address string, transactionID string) {
	r.printf("\nCOLLECTION CREATED\n\n")
	r.printf("Collection address: %s\n", address)
	r.printf("Explorer TX: %s\n", r.explorer.TransactionURL(transactionID))
	r.printf("Collection: %s\n", r.explorer.TokenURL(address))
}

func (r *Reporter) CollectionLoaded(address string) {
	r.printf("Loaded collection: %s\n", address)
}

func (r *Reporter) ImagesFound(count int) {
	r.printf("Found %d images\n", count)
}

func (r *Reporter) Minting(position int, fileName string) {
	r.printf("\nMinting asset #%d (%s)...\n", position, fileName)
}

func (r *Reporter) Minted(position int, address string, transactionID string) {
	r.printf("Minted asset #%d: %s\n", position, address)
	r.printf("Explorer TX: %s\n", r.explorer.TransactionURL(transactionID))
	r.printf("Asset: %s\n", r.explorer.AssetURL(address))
}

func (r *Reporter) MintingComplete(count int) {
	r.printf("\nAll %d assets minted into the collection\n", count)
}

func (r *Reporter) FetchingAssets(owner string) {
	r.printf("Fetching assets owned by: %s\n", owner)
}

func (r *Reporter) NoAssets() {
	r.printf("No assets found for this account.\n")
}

func (r *Reporter) AssetsFound(assets []ListedAsset) {
	r.printf("\nFOUND %d asset(s):\n\n", len(assets))
	for _, asset := range assets {
		r.printf("Asset: %s\n", asset.Address)
		r.printf("Name: %s\n", asset.Name)
		r.printf("---\n")
	}
}

func (r *Reporter) AssetLoaded(address string, owner string) {
	r.printf("Loaded asset: %s\n", address)
	r.printf("Current owner: %s\n", owner)
}

func (r *Reporter) TransferComplete(transactionID string) {
	r.printf("Transfer complete!\n")
	r.printf("TX: %s\n", r.explorer.TransactionURL(transactionID))
}

func (r *Reporter) CurrentMetadata(uri string, name string) {
	r.printf("Current metadata URI: %s\n", uri)
	r.printf("Current name: %s\n", name)
}

func (r *Reporter) CollectionRenamed(address string, uri string, transactionID string) {
	r.printf("\nCOLLECTION NAME UPDATED\n")
	r.printf("Explorer TX: %s\n", r.explorer.TransactionURL(transactionID))
	r.printf("Updated URI: %s\n", uri)
	r.printf("Collection: %s\n", r.explorer.TokenURL(address))
}

func (r *Reporter) printf(format string, args ...any) {
	if r == nil || r.out == nil {
		return
	}
	_, _ = fmt.Fprintf(r.out, format, args...)
}
