package mirror

type AccountInfo struct {
	Account string         `json:"account"`
	Key     map[string]any `json:"key"`
	Memo    string         `json:"memo"`
	Balance struct {
		Balance   int64  `json:"balance"`
		Timestamp string `json:"timestamp"`
	} `json:"balance"`
	Deleted bool `json:"deleted"`
}

type accountsResponse struct {
	Accounts []AccountInfo `json:"accounts"`
	Links    links         `json:"links"`
}

type TokenInfo struct {
	TokenID           string `json:"token_id"`
	Name              string `json:"name"`
	Symbol            string `json:"symbol"`
	Type              string `json:"type"`
	Memo              string `json:"memo"`
	Metadata          string `json:"metadata"`
	TreasuryAccountID string `json:"treasury_account_id"`
	TotalSupply       string `json:"total_supply"`
	MaxSupply         string `json:"max_supply"`
	SupplyType        string `json:"supply_type"`
	Deleted           bool   `json:"deleted"`
	CreatedTimestamp  string `json:"created_timestamp"`
}

const TokenTypeNonFungibleUnique = "NON_FUNGIBLE_UNIQUE"

type NFT struct {
	AccountID         string `json:"account_id"`
	TokenID           string `json:"token_id"`
	SerialNumber      int64  `json:"serial_number"`
	Metadata          string `json:"metadata"`
	Deleted           bool   `json:"deleted"`
	CreatedTimestamp  string `json:"created_timestamp"`
	ModifiedTimestamp string `json:"modified_timestamp"`
}

type nftsResponse struct {
	NFTs  []NFT `json:"nfts"`
	Links links `json:"links"`
}

type TopicMessage struct {
	ConsensusTimestamp string     `json:"consensus_timestamp"`
	ChunkInfo          *ChunkInfo `json:"chunk_info,omitempty"`
	Message            string     `json:"message"`
	PayerAccountID     string     `json:"payer_account_id"`
	RunningHash        string     `json:"running_hash"`
	RunningHashVersion int64      `json:"running_hash_version"`
	SequenceNumber     int64      `json:"sequence_number"`
	TopicID            string     `json:"topic_id"`
}

type ChunkInfo struct {
	InitialTransactionID any `json:"initial_transaction_id,omitempty"`
	Number               int `json:"number,omitempty"`
	Total                int `json:"total,omitempty"`
}

type topicMessagesResponse struct {
	Links    links          `json:"links"`
	Messages []TopicMessage `json:"messages"`
}

type links struct {
	Next string `json:"next"`
}
