package ledger

import "errors"

// MaxMetadataBytes is the ledger limit for token and serial metadata.
const MaxMetadataBytes = 100

var (
	ErrMetadataTooLong = errors.New("metadata URI exceeds 100 bytes")
	ErrReadOnly        = errors.New("ledger client has no operator")
)

type Collection struct {
	Address     string
	Name        string
	Symbol      string
	URI         string
	Treasury    string
	TotalSupply string
	MaxSupply   string
}

type Asset struct {
	Address    string
	Collection string
	Serial     int64
	Owner      string
	URI        string
}

// Receipt describes a confirmed transaction. Address is the entity the
// transaction created or touched.
type Receipt struct {
	TransactionID string
	Address       string
}

type CreateCollectionRequest struct {
	Name      string
	Symbol    string
	URI       string
	MaxSupply int64
	Memo      string
}

type MintRequest struct {
	Collection string
	URI        string
	Memo       string
}

type TransferRequest struct {
	Asset string
	From  string
	To    string
}

type UpdateCollectionRequest struct {
	Collection string
	Name       string
	URI        string
}
