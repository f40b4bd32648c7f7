package ledger

import (
	"context"
	"fmt"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/shopspring/decimal"

	"github.com/hashgraph-online/collection-kit-go/pkg/mirror"
)

// MirrorReader is the mirror node surface used for reads.
type MirrorReader interface {
	GetToken(ctx context.Context, tokenID string) (mirror.TokenInfo, error)
	GetNFT(ctx context.Context, tokenID string, serialNumber int64) (mirror.NFT, error)
	GetAccountNFTs(ctx context.Context, accountID string) ([]mirror.NFT, error)
}

// Config binds a ledger client. HederaClient and OperatorKey may be left empty
// for a read-only client.
type Config struct {
	HederaClient *hedera.Client
	OperatorID   hedera.AccountID
	OperatorKey  *hedera.PrivateKey
	Mirror       MirrorReader
}

type Client struct {
	hederaClient *hedera.Client
	operatorID   hedera.AccountID
	operatorKey  *hedera.PrivateKey
	mirror       MirrorReader
}

// NewClient creates a new Client. The operator is installed on the Hedera
// client so that submitted transactions are paid for and signed by it.
func NewClient(config Config) (*Client, error) {
	if config.Mirror == nil {
		return nil, fmt.Errorf("mirror reader is required")
	}
	if config.HederaClient != nil && config.OperatorKey == nil {
		return nil, fmt.Errorf("operator key is required when a hedera client is configured")
	}
	if config.HederaClient != nil {
		config.HederaClient.SetOperator(config.OperatorID, *config.OperatorKey)
	}

	return &Client{
		hederaClient: config.HederaClient,
		operatorID:   config.OperatorID,
		operatorKey:  config.OperatorKey,
		mirror:       config.Mirror,
	}, nil
}

// Close releases the Hedera client connections.
func (c *Client) Close() error {
	if c.hederaClient == nil {
		return nil
	}
	return c.hederaClient.Close()
}

// Balance returns the HBAR balance of an account.
func (c *Client) Balance(ctx context.Context, address string) (decimal.Decimal, error) {
	if c.hederaClient == nil {
		return decimal.Zero, ErrReadOnly
	}
	accountID, err := parseAccountID(address, "balance")
	if err != nil {
		return decimal.Zero, err
	}

	balance, err := hedera.NewAccountBalanceQuery().
		SetAccountID(accountID).
		Execute(c.hederaClient)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to query balance of %s: %w", accountID.String(), err)
	}

	return decimal.New(balance.Hbars.AsTinybar(), -8), nil
}

// CreateCollection creates a non-fungible token whose treasury and keys are the
// operator's.
func (c *Client) CreateCollection(ctx context.Context, request CreateCollectionRequest) (Receipt, error) {
	if c.hederaClient == nil || c.operatorKey == nil {
		return Receipt{}, ErrReadOnly
	}

	transaction, err := BuildCreateCollectionTx(request, c.operatorID, c.operatorKey.PublicKey())
	if err != nil {
		return Receipt{}, err
	}

	frozenTransaction, err := transaction.FreezeWith(c.hederaClient)
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to freeze token create transaction: %w", err)
	}
	response, err := frozenTransaction.Execute(c.hederaClient)
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to execute token create transaction: %w", err)
	}

	receipt, err := c.confirm(response, "token create")
	if err != nil {
		return Receipt{}, err
	}
	if receipt.TokenID == nil {
		return Receipt{}, fmt.Errorf("token create receipt did not include token ID")
	}

	return Receipt{
		TransactionID: response.TransactionID.String(),
		Address:       receipt.TokenID.String(),
	}, nil
}

// MintAsset mints one serial into a collection and returns its asset address.
func (c *Client) MintAsset(ctx context.Context, request MintRequest) (Receipt, error) {
	if c.hederaClient == nil {
		return Receipt{}, ErrReadOnly
	}

	transaction, err := BuildMintTx(request)
	if err != nil {
		return Receipt{}, err
	}

	frozenTransaction, err := transaction.FreezeWith(c.hederaClient)
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to freeze mint transaction: %w", err)
	}
	response, err := frozenTransaction.Execute(c.hederaClient)
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to execute mint transaction: %w", err)
	}

	receipt, err := c.confirm(response, "mint")
	if err != nil {
		return Receipt{}, err
	}
	if len(receipt.SerialNumbers) == 0 {
		return Receipt{}, fmt.Errorf("mint receipt did not include a serial number")
	}

	nftID := hedera.NftID{
		TokenID:      transaction.GetTokenID(),
		SerialNumber: receipt.SerialNumbers[0],
	}
	return Receipt{
		TransactionID: response.TransactionID.String(),
		Address:       nftID.String(),
	}, nil
}

// TransferAsset moves an asset between accounts. The sender must be the operator.
func (c *Client) TransferAsset(ctx context.Context, request TransferRequest) (Receipt, error) {
	if c.hederaClient == nil {
		return Receipt{}, ErrReadOnly
	}

	transaction, err := BuildTransferTx(request)
	if err != nil {
		return Receipt{}, err
	}

	frozenTransaction, err := transaction.FreezeWith(c.hederaClient)
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to freeze transfer transaction: %w", err)
	}
	response, err := frozenTransaction.Execute(c.hederaClient)
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to execute transfer transaction: %w", err)
	}

	if _, err := c.confirm(response, "transfer"); err != nil {
		return Receipt{}, err
	}

	return Receipt{
		TransactionID: response.TransactionID.String(),
		Address:       strings.TrimSpace(request.Asset),
	}, nil
}

// UpdateCollection replaces the metadata URI of a collection and, when a name
// is given, its token name.
func (c *Client) UpdateCollection(ctx context.Context, request UpdateCollectionRequest) (Receipt, error) {
	if c.hederaClient == nil {
		return Receipt{}, ErrReadOnly
	}

	transaction, err := BuildUpdateCollectionTx(request)
	if err != nil {
		return Receipt{}, err
	}

	frozenTransaction, err := transaction.FreezeWith(c.hederaClient)
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to freeze token update transaction: %w", err)
	}
	response, err := frozenTransaction.Execute(c.hederaClient)
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to execute token update transaction: %w", err)
	}

	if _, err := c.confirm(response, "token update"); err != nil {
		return Receipt{}, err
	}

	return Receipt{
		TransactionID: response.TransactionID.String(),
		Address:       strings.TrimSpace(request.Collection),
	}, nil
}

// FetchCollection loads a collection from the mirror node.
func (c *Client) FetchCollection(ctx context.Context, address string) (Collection, error) {
	tokenID, err := parseTokenID(address)
	if err != nil {
		return Collection{}, err
	}

	token, err := c.mirror.GetToken(ctx, tokenID.String())
	if err != nil {
		return Collection{}, fmt.Errorf("failed to fetch collection %s: %w", tokenID.String(), err)
	}
	if token.Deleted {
		return Collection{}, fmt.Errorf("collection %s has been deleted", tokenID.String())
	}
	if token.Type != mirror.TokenTypeNonFungibleUnique {
		return Collection{}, fmt.Errorf("token %s is not a non-fungible collection (type %s)", tokenID.String(), token.Type)
	}

	uri, err := mirror.DecodeMetadata(token.Metadata)
	if err != nil {
		return Collection{}, err
	}

	return Collection{
		Address:     tokenID.String(),
		Name:        token.Name,
		Symbol:      token.Symbol,
		URI:         uri,
		Treasury:    token.TreasuryAccountID,
		TotalSupply: token.TotalSupply,
		MaxSupply:   token.MaxSupply,
	}, nil
}

// FetchAsset loads an asset and its current owner from the mirror node.
func (c *Client) FetchAsset(ctx context.Context, address string) (Asset, error) {
	nftID, err := ParseAssetAddress(address)
	if err != nil {
		return Asset{}, err
	}

	nft, err := c.mirror.GetNFT(ctx, nftID.TokenID.String(), nftID.SerialNumber)
	if err != nil {
		return Asset{}, fmt.Errorf("failed to fetch asset %s: %w", nftID.String(), err)
	}
	if nft.Deleted {
		return Asset{}, fmt.Errorf("asset %s has been burned", nftID.String())
	}

	return assetFromNFT(nft)
}

// AssetsByOwner lists every asset an account holds.
func (c *Client) AssetsByOwner(ctx context.Context, owner string) ([]Asset, error) {
	accountID, err := parseAccountID(owner, "owner")
	if err != nil {
		return nil, err
	}

	nfts, err := c.mirror.GetAccountNFTs(ctx, accountID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list assets of %s: %w", accountID.String(), err)
	}

	assets := make([]Asset, 0, len(nfts))
	for _, nft := range nfts {
		asset, err := assetFromNFT(nft)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, nil
}

// ExecuteBytes signs and submits a serialized transaction prepared by a third
// party, such as an inscription payment, and returns its transaction ID.
func (c *Client) ExecuteBytes(ctx context.Context, transactionBytes []byte) (string, error) {
	if c.hederaClient == nil || c.operatorKey == nil {
		return "", ErrReadOnly
	}

	type executeAttempt struct {
		manualSign bool
		label      string
	}
	attempts := []executeAttempt{
		{manualSign: false, label: "operator-auto-sign"},
		{manualSign: true, label: "operator-manual-sign"},
	}

	var invalidSignatureErrors []string
	for _, attempt := range attempts {
		transaction, err := hedera.TransactionFromBytes(transactionBytes)
		if err != nil {
			return "", fmt.Errorf("failed to decode transaction bytes: %w", err)
		}

		executable := transaction
		if attempt.manualSign {
			signedTransaction, signErr := hedera.TransactionSign(transaction, *c.operatorKey)
			if signErr != nil {
				return "", fmt.Errorf("failed to sign transaction during %s: %w", attempt.label, signErr)
			}
			executable = signedTransaction
		}

		response, err := hedera.TransactionExecute(executable, c.hederaClient)
		if err != nil {
			if strings.Contains(strings.ToUpper(err.Error()), "INVALID_SIGNATURE") {
				invalidSignatureErrors = append(invalidSignatureErrors, fmt.Sprintf("%s=%v", attempt.label, err))
				continue
			}
			return "", fmt.Errorf("failed to execute transaction via %s: %w", attempt.label, err)
		}

		if _, err := c.confirm(response, attempt.label); err != nil {
			return "", err
		}
		return response.TransactionID.String(), nil
	}

	return "", fmt.Errorf("all execution strategies failed with INVALID_SIGNATURE: %s", strings.Join(invalidSignatureErrors, "; "))
}

func (c *Client) confirm(response hedera.TransactionResponse, label string) (hedera.TransactionReceipt, error) {
	receipt, err := response.GetReceipt(c.hederaClient)
	if err != nil {
		return hedera.TransactionReceipt{}, fmt.Errorf("failed to retrieve %s receipt: %w", label, err)
	}
	if receipt.Status.String() != "SUCCESS" {
		return hedera.TransactionReceipt{}, fmt.Errorf("%s transaction failed with status %s", label, receipt.Status.String())
	}
	return receipt, nil
}

func assetFromNFT(nft mirror.NFT) (Asset, error) {
	tokenID, err := parseTokenID(nft.TokenID)
	if err != nil {
		return Asset{}, err
	}
	uri, err := mirror.DecodeMetadata(nft.Metadata)
	if err != nil {
		return Asset{}, err
	}

	nftID := hedera.NftID{TokenID: tokenID, SerialNumber: nft.SerialNumber}
	return Asset{
		Address:    nftID.String(),
		Collection: tokenID.String(),
		Serial:     nft.SerialNumber,
		Owner:      nft.AccountID,
		URI:        uri,
	}, nil
}
