package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashgraph-online/collection-kit-go/pkg/ledger"
)

// TransferAsset moves asset to recipient after checking that the identity
// currently owns it.
func TransferAsset(ctx context.Context, deps Deps, asset string, recipient string) (ledger.Receipt, error) {
	deps = deps.withDefaults()
	identity, err := deps.identity()
	if err != nil {
		return ledger.Receipt{}, err
	}
	if err := deps.requireLedger(); err != nil {
		return ledger.Receipt{}, err
	}
	if strings.TrimSpace(asset) == "" || strings.TrimSpace(recipient) == "" {
		return ledger.Receipt{}, preconditionf("asset address and recipient account ID are required")
	}
	deps.Reporter.Wallet(identity.Address())

	loaded, err := deps.Ledger.FetchAsset(ctx, asset)
	if err != nil {
		return ledger.Receipt{}, fmt.Errorf("failed to load asset %s: %w", asset, err)
	}
	deps.Reporter.AssetLoaded(loaded.Address, loaded.Owner)

	if loaded.Owner != identity.Address() {
		return ledger.Receipt{}, preconditionf(
			"you do not own asset %s: current owner is %s, wallet is %s",
			loaded.Address,
			loaded.Owner,
			identity.Address(),
		)
	}

	deps.Reporter.Step("Transferring asset...")
	receipt, err := deps.Ledger.TransferAsset(ctx, ledger.TransferRequest{
		Asset: loaded.Address,
		From:  identity.Address(),
		To:    strings.TrimSpace(recipient),
	})
	if err != nil {
		return ledger.Receipt{}, fmt.Errorf("failed to transfer asset %s: %w", loaded.Address, err)
	}

	deps.Reporter.TransferComplete(receipt.TransactionID)
	return receipt, nil
}
