package report

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newGolden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestExplorerURLs(t *testing.T) {
	explorer := NewExplorer("testnet")

	assert.Equal(t,
		"https://hashscan.io/testnet/transaction/0.0.1001-1700000000-000000001",
		explorer.TransactionURL("0.0.1001@1700000000.000000001"),
	)
	assert.Equal(t, "https://hashscan.io/testnet/token/0.0.500", explorer.TokenURL("0.0.500"))
	assert.Equal(t, "https://hashscan.io/testnet/token/0.0.500/3", explorer.AssetURL("3@0.0.500"))
	assert.Equal(t, "https://hashscan.io/testnet/account/0.0.1001", explorer.AccountURL("0.0.1001"))

	custom := Explorer{BaseURL: "https://explorer.example.com/", Network: "mainnet"}
	assert.Equal(t, "https://explorer.example.com/mainnet/token/0.0.7", custom.TokenURL("0.0.7"))
	assert.Equal(t, "https://hashscan.io/testnet/token/0.0.7", Explorer{}.TokenURL("0.0.7"))
}

func TestCreateCollectionReport(t *testing.T) {
	var out bytes.Buffer
	reporter := New(&out, NewExplorer("testnet"))

	reporter.Wallet("0.0.1001")
	reporter.Balance(decimal.RequireFromString("1.5"))
	reporter.ImageUploaded("hcs://1/0.0.600")
	reporter.MetadataUploaded("hcs://1/0.0.601")
	reporter.Step("Creating collection...")
	reporter.CollectionCreated("0.0.500", "0.0.1001@1700000000.000000001")

	newGolden(t).Assert(t, "create_collection", out.Bytes())
}

func TestMintReport(t *testing.T) {
	var out bytes.Buffer
	reporter := New(&out, NewExplorer("testnet"))

	reporter.Wallet("0.0.1001")
	reporter.CollectionLoaded("0.0.500")
	reporter.ImagesFound(2)
	reporter.Minting(1, "a.png")
	reporter.Minted(1, "1@0.0.500", "0.0.1001@1700000001.000000000")
	reporter.Minting(2, "b.png")
	reporter.Reused("mint", "2@0.0.500")
	reporter.MintingComplete(2)

	newGolden(t).Assert(t, "mint_assets", out.Bytes())
}

func TestListReport(t *testing.T) {
	var out bytes.Buffer
	reporter := New(&out, NewExplorer("mainnet"))

	reporter.FetchingAssets("0.0.1001")
	reporter.AssetsFound([]ListedAsset{
		{Address: "1@0.0.500", Name: "My NFT #1"},
		{Address: "2@0.0.500", Name: "(unknown)"},
	})

	newGolden(t).Assert(t, "list_assets", out.Bytes())
}

func TestTransferAndRenameReport(t *testing.T) {
	var out bytes.Buffer
	reporter := New(&out, NewExplorer("testnet"))

	reporter.AssetLoaded("1@0.0.500", "0.0.1001")
	reporter.TransferComplete("0.0.1001@1700000002.000000000")
	reporter.CurrentMetadata("hcs://1/0.0.601", "My Collection")
	reporter.CollectionRenamed("0.0.500", "hcs://1/0.0.602", "0.0.1001@1700000003.000000000")

	newGolden(t).Assert(t, "transfer_and_rename", out.Bytes())
}

func TestNilReporterIsSilent(t *testing.T) {
	var reporter *Reporter
	reporter.Step("ignored")
	New(nil, NewExplorer("testnet")).NoAssets()
}
