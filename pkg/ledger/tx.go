package ledger

import (
	"fmt"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

func BuildCreateCollectionTx(
	request CreateCollectionRequest,
	treasury hedera.AccountID,
	key hedera.PublicKey,
) (*hedera.TokenCreateTransaction, error) {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, fmt.Errorf("collection name is required")
	}
	symbol := strings.TrimSpace(request.Symbol)
	if symbol == "" {
		return nil, fmt.Errorf("collection symbol is required")
	}
	if request.MaxSupply < 0 {
		return nil, fmt.Errorf("max supply cannot be negative")
	}
	if err := validateMetadataURI(request.URI); err != nil {
		return nil, err
	}

	transaction := hedera.NewTokenCreateTransaction().
		SetTokenName(name).
		SetTokenSymbol(symbol).
		SetTokenType(hedera.TokenTypeNonFungibleUnique).
		SetDecimals(0).
		SetInitialSupply(0).
		SetTreasuryAccountID(treasury).
		SetAutoRenewAccount(treasury).
		SetAdminKey(key).
		SetSupplyKey(key).
		SetMetadataKey(key).
		SetTokenMetadata([]byte(request.URI))

	if request.MaxSupply > 0 {
		transaction.
			SetSupplyType(hedera.TokenSupplyTypeFinite).
			SetMaxSupply(request.MaxSupply)
	} else {
		transaction.SetSupplyType(hedera.TokenSupplyTypeInfinite)
	}
	if strings.TrimSpace(request.Memo) != "" {
		transaction.SetTokenMemo(request.Memo)
	}

	return transaction, nil
}

func BuildMintTx(request MintRequest) (*hedera.TokenMintTransaction, error) {
	tokenID, err := parseTokenID(request.Collection)
	if err != nil {
		return nil, err
	}
	if err := validateMetadataURI(request.URI); err != nil {
		return nil, err
	}

	transaction := hedera.NewTokenMintTransaction().
		SetTokenID(tokenID).
		SetMetadata([]byte(request.URI))

	if strings.TrimSpace(request.Memo) != "" {
		transaction.SetTransactionMemo(request.Memo)
	}

	return transaction, nil
}

func BuildTransferTx(request TransferRequest) (*hedera.TransferTransaction, error) {
	nftID, err := ParseAssetAddress(request.Asset)
	if err != nil {
		return nil, err
	}
	from, err := parseAccountID(request.From, "sender")
	if err != nil {
		return nil, err
	}
	to, err := parseAccountID(request.To, "recipient")
	if err != nil {
		return nil, err
	}
	if from.String() == to.String() {
		return nil, fmt.Errorf("sender and recipient are the same account")
	}

	return hedera.NewTransferTransaction().AddNftTransfer(nftID, from, to), nil
}

func BuildUpdateCollectionTx(request UpdateCollectionRequest) (*hedera.TokenUpdateTransaction, error) {
	tokenID, err := parseTokenID(request.Collection)
	if err != nil {
		return nil, err
	}
	if err := validateMetadataURI(request.URI); err != nil {
		return nil, err
	}

	transaction := hedera.NewTokenUpdateTransaction().
		SetTokenID(tokenID).
		SetTokenMetadata([]byte(request.URI))

	if name := strings.TrimSpace(request.Name); name != "" {
		transaction.SetTokenName(name)
	}

	return transaction, nil
}

// ParseAssetAddress parses an asset address of the form "serial@token".
func ParseAssetAddress(address string) (hedera.NftID, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return hedera.NftID{}, fmt.Errorf("asset address is required")
	}
	// NftIDFromString panics unless the address holds exactly one "@".
	if strings.Count(trimmed, "@") != 1 {
		return hedera.NftID{}, fmt.Errorf("invalid asset address %q: expected serial@token", trimmed)
	}
	nftID, err := hedera.NftIDFromString(trimmed)
	if err != nil {
		return hedera.NftID{}, fmt.Errorf("invalid asset address %q: %w", trimmed, err)
	}
	if nftID.SerialNumber <= 0 {
		return hedera.NftID{}, fmt.Errorf("invalid asset address %q: serial must be positive", trimmed)
	}
	return nftID, nil
}

func validateMetadataURI(uri string) error {
	if strings.TrimSpace(uri) == "" {
		return fmt.Errorf("metadata URI is required")
	}
	if len(uri) > MaxMetadataBytes {
		return fmt.Errorf("%w: %d bytes", ErrMetadataTooLong, len(uri))
	}
	return nil
}

func parseTokenID(value string) (hedera.TokenID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return hedera.TokenID{}, fmt.Errorf("collection address is required")
	}
	tokenID, err := hedera.TokenIDFromString(trimmed)
	if err != nil {
		return hedera.TokenID{}, fmt.Errorf("invalid collection address: %w", err)
	}
	return tokenID, nil
}

func parseAccountID(value string, role string) (hedera.AccountID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return hedera.AccountID{}, fmt.Errorf("%s account ID is required", role)
	}
	accountID, err := hedera.AccountIDFromString(trimmed)
	if err != nil {
		return hedera.AccountID{}, fmt.Errorf("invalid %s account ID: %w", role, err)
	}
	return accountID, nil
}
