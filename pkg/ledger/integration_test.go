package ledger

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"

	"github.com/hashgraph-online/collection-kit-go/pkg/mirror"
	"github.com/hashgraph-online/collection-kit-go/pkg/shared"
)

func TestLedgerIntegration_CreateMintRename(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION") != "1" {
		t.Skip("set RUN_INTEGRATION=1 to run live integration tests")
	}

	accountID := strings.TrimSpace(os.Getenv("HEDERA_ACCOUNT_ID"))
	rawKey := strings.TrimSpace(os.Getenv("HEDERA_PRIVATE_KEY"))
	if accountID == "" || rawKey == "" {
		t.Skip("HEDERA_ACCOUNT_ID and HEDERA_PRIVATE_KEY are required")
	}

	operatorID, err := hedera.AccountIDFromString(accountID)
	if err != nil {
		t.Fatalf("invalid operator account: %v", err)
	}
	operatorKey, err := shared.ParsePrivateKey(rawKey)
	if err != nil {
		t.Fatalf("invalid operator key: %v", err)
	}
	hederaClient, err := shared.NewHederaClient(shared.NetworkTestnet)
	if err != nil {
		t.Fatalf("failed to create hedera client: %v", err)
	}
	mirrorClient, err := mirror.NewClient(mirror.Config{Network: shared.NetworkTestnet})
	if err != nil {
		t.Fatalf("failed to create mirror client: %v", err)
	}

	client, err := NewClient(Config{
		HederaClient: hederaClient,
		OperatorID:   operatorID,
		OperatorKey:  &operatorKey,
		Mirror:       mirrorClient,
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	balance, err := client.Balance(ctx, accountID)
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	t.Logf("operator balance %s HBAR", balance.String())

	created, err := client.CreateCollection(ctx, CreateCollectionRequest{
		Name:   "Collection Kit Integration",
		Symbol: "CKIT",
		URI:    "hcs://1/0.0.1",
	})
	if err != nil {
		t.Fatalf("CreateCollection failed: %v", err)
	}
	t.Logf("created collection %s (%s)", created.Address, created.TransactionID)

	minted, err := client.MintAsset(ctx, MintRequest{Collection: created.Address, URI: "hcs://1/0.0.2"})
	if err != nil {
		t.Fatalf("MintAsset failed: %v", err)
	}
	if !strings.HasSuffix(minted.Address, "@"+created.Address) {
		t.Fatalf("unexpected asset address %s", minted.Address)
	}

	if _, err := client.UpdateCollection(ctx, UpdateCollectionRequest{
		Collection: created.Address,
		Name:       "Collection Kit Renamed",
		URI:        "hcs://1/0.0.3",
	}); err != nil {
		t.Fatalf("UpdateCollection failed: %v", err)
	}
}
