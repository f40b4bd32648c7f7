package inscriber

type Network string

const (
	NetworkMainnet Network = "mainnet"
	NetworkTestnet Network = "testnet"
)

type InscriptionMode string

const (
	ModeFile InscriptionMode = "file"
)

type ConnectionMode string

const (
	ConnectionModeHTTP      ConnectionMode = "http"
	ConnectionModeWebSocket ConnectionMode = "websocket"
)

type FileInput struct {
	Type     string `json:"type"`
	URL      string `json:"url,omitempty"`
	Base64   string `json:"base64,omitempty"`
	FileName string `json:"fileName,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

type StartInscriptionRequest struct {
	File         FileInput       `json:"file"`
	HolderID     string          `json:"holderId"`
	Mode         InscriptionMode `json:"mode"`
	Metadata     map[string]any  `json:"metadata,omitempty"`
	Tags         []string        `json:"tags,omitempty"`
	FileStandard string          `json:"fileStandard,omitempty"`
	ChunkSize    int             `json:"chunkSize,omitempty"`
}

type InscriptionJob struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	Completed        bool   `json:"completed"`
	TransactionID    string `json:"transactionId,omitempty"`
	TransactionBytes string `json:"transactionBytes,omitempty"`
	TxID             string `json:"tx_id,omitempty"`
	TopicID          string `json:"topic_id,omitempty"`
	Error            string `json:"error,omitempty"`
	TotalMessages    int64  `json:"totalMessages,omitempty"`
}

type AuthResult struct {
	APIKey string `json:"apiKey"`
}
