package wallet

import (
	"context"
	"fmt"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"

	"github.com/hashgraph-online/collection-kit-go/pkg/mirror"
)

// AccountLookup finds the accounts controlled by a public key.
type AccountLookup interface {
	FindAccountsByPublicKey(ctx context.Context, publicKeyHex string) ([]mirror.AccountInfo, error)
}

// Identity is a keypair bound to the ledger account it controls.
type Identity struct {
	Keypair   *Keypair
	AccountID hedera.AccountID
}

// Address returns the account ID string used for ownership comparisons.
func (i Identity) Address() string {
	return i.AccountID.String()
}

// ResolveIdentity binds keypair to an account. A configured account ID wins;
// otherwise the first live account holding the key on the mirror node is used.
func ResolveIdentity(
	ctx context.Context,
	lookup AccountLookup,
	configuredAccountID string,
	keypair *Keypair,
) (Identity, error) {
	if keypair == nil {
		return Identity{}, fmt.Errorf("keypair is required")
	}

	accountID, err := ResolveAccountID(ctx, lookup, configuredAccountID, keypair.PublicKeyHex())
	if err != nil {
		return Identity{}, err
	}

	return Identity{Keypair: keypair, AccountID: accountID}, nil
}

// ResolveAccountID returns the configured account ID when set, or the first
// account the mirror node reports for publicKeyHex.
func ResolveAccountID(
	ctx context.Context,
	lookup AccountLookup,
	configuredAccountID string,
	publicKeyHex string,
) (hedera.AccountID, error) {
	if configured := strings.TrimSpace(configuredAccountID); configured != "" {
		accountID, err := hedera.AccountIDFromString(configured)
		if err != nil {
			return hedera.AccountID{}, fmt.Errorf("invalid account ID %q: %w", configured, err)
		}
		return accountID, nil
	}

	if lookup == nil {
		return hedera.AccountID{}, fmt.Errorf("account ID is not configured and no account lookup is available")
	}

	accounts, err := lookup.FindAccountsByPublicKey(ctx, publicKeyHex)
	if err != nil {
		return hedera.AccountID{}, fmt.Errorf("failed to look up account for public key: %w", err)
	}
	if len(accounts) == 0 {
		return hedera.AccountID{}, fmt.Errorf("no account found for public key %s", publicKeyHex)
	}

	accountID, err := hedera.AccountIDFromString(accounts[0].Account)
	if err != nil {
		return hedera.AccountID{}, fmt.Errorf("mirror node returned invalid account ID %q: %w", accounts[0].Account, err)
	}
	return accountID, nil
}
