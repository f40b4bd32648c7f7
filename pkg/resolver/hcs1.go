package resolver

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/andybalholm/brotli"

	"github.com/hashgraph-online/collection-kit-go/pkg/mirror"
)

const dataURLPartCount = 2

var hcs1ReferencePattern = regexp.MustCompile(`^hcs://1/(\d+\.\d+\.\d+)$`)

// inscriptionChunk is one ordered message of an HCS-1 inscription. The
// concatenated chunk contents form a data URL.
type inscriptionChunk struct {
	Order   *int    `json:"o"`
	Content *string `json:"c"`
}

func (r *Resolver) resolveHCS1(ctx context.Context, reference string) ([]byte, error) {
	matches := hcs1ReferencePattern.FindStringSubmatch(reference)
	if len(matches) != 2 {
		return nil, fmt.Errorf("invalid HCS-1 reference %q", reference)
	}
	topicID := matches[1]

	topicMessages, err := r.mirror.GetTopicMessages(ctx, topicID, mirror.MessageQueryOptions{
		Limit: 100,
		Order: "asc",
	})
	if err != nil {
		return nil, err
	}
	if len(topicMessages) == 0 {
		return nil, fmt.Errorf("no HCS-1 payload found at %s", reference)
	}

	first := topicMessages[0]
	if first.ChunkInfo != nil && first.ChunkInfo.Total > 1 {
		return decodeChunkedMessage(reference, first, topicMessages)
	}

	if content, ok, err := joinInscriptionChunks(topicMessages); err != nil {
		return nil, fmt.Errorf("failed to decode HCS-1 payload at %s: %w", reference, err)
	} else if ok {
		return decodeInscriptionContent(content, maxContentBytes)
	}

	payload, err := mirror.DecodeMessageData(first)
	if err != nil {
		return nil, err
	}
	return normalizePayload(payload)
}

// joinInscriptionChunks concatenates {"o":n,"c":"..."} messages in order. It
// reports false when the topic does not hold messages of that shape.
func joinInscriptionChunks(topicMessages []mirror.TopicMessage) (string, bool, error) {
	chunks := map[int]string{}
	for _, topicMessage := range topicMessages {
		payload, err := mirror.DecodeMessageData(topicMessage)
		if err != nil {
			return "", false, nil
		}

		var chunk inscriptionChunk
		if err := json.Unmarshal(payload, &chunk); err != nil || chunk.Order == nil || chunk.Content == nil {
			return "", false, nil
		}
		if _, exists := chunks[*chunk.Order]; exists {
			continue
		}
		chunks[*chunk.Order] = *chunk.Content
	}

	orders := make([]int, 0, len(chunks))
	for order := range chunks {
		orders = append(orders, order)
	}
	sort.Ints(orders)

	var builder strings.Builder
	for index, order := range orders {
		if order != index {
			return "", false, fmt.Errorf("missing inscription chunk %d", index)
		}
		builder.WriteString(chunks[order])
	}

	return builder.String(), true, nil
}

func decodeChunkedMessage(
	reference string,
	message mirror.TopicMessage,
	topicMessages []mirror.TopicMessage,
) ([]byte, error) {
	chunkTransactionID := extractChunkTransactionID(message.ChunkInfo.InitialTransactionID)
	if chunkTransactionID == "" {
		return nil, fmt.Errorf("chunked HCS-1 payload at %s is missing initial transaction ID", reference)
	}

	chunks := map[int][]byte{}
	for _, topicMessage := range topicMessages {
		if topicMessage.ChunkInfo == nil {
			continue
		}
		if topicMessage.ChunkInfo.Total != message.ChunkInfo.Total {
			continue
		}
		if extractChunkTransactionID(topicMessage.ChunkInfo.InitialTransactionID) != chunkTransactionID {
			continue
		}
		if topicMessage.ChunkInfo.Number <= 0 {
			continue
		}

		chunkPayload, err := mirror.DecodeMessageData(topicMessage)
		if err != nil {
			return nil, err
		}
		chunks[topicMessage.ChunkInfo.Number] = chunkPayload
	}

	if len(chunks) != message.ChunkInfo.Total {
		return nil, fmt.Errorf(
			"chunked HCS-1 payload at %s incomplete: expected %d chunks, found %d",
			reference,
			message.ChunkInfo.Total,
			len(chunks),
		)
	}

	combined := make([]byte, 0)
	for expected := 1; expected <= message.ChunkInfo.Total; expected++ {
		chunk, ok := chunks[expected]
		if !ok {
			return nil, fmt.Errorf("chunked HCS-1 payload at %s missing chunk %d", reference, expected)
		}
		combined = append(combined, chunk...)
	}

	return normalizePayload(combined)
}

func normalizePayload(payload []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return payload, nil
	}
	if !bytes.Contains(trimmed, []byte(`"c"`)) {
		return payload, nil
	}

	var wrapped struct {
		Content string `json:"c"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return payload, nil
	}
	content := strings.TrimSpace(wrapped.Content)
	if content == "" {
		return payload, nil
	}

	return decodeInscriptionContent(content, maxContentBytes)
}

func decodeInscriptionContent(content string, limit int64) ([]byte, error) {
	decoded, err := decodeDataURL(content)
	if err != nil {
		return nil, err
	}

	reader := io.LimitReader(brotli.NewReader(bytes.NewReader(decoded)), limit+1)
	decompressed, err := io.ReadAll(reader)
	if err != nil || len(decompressed) == 0 {
		return decoded, nil
	}
	if int64(len(decompressed)) > limit {
		return nil, fmt.Errorf("decompressed content exceeds %d bytes", limit)
	}
	return decompressed, nil
}

func decodeDataURL(input string) ([]byte, error) {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "data:") {
		return nil, fmt.Errorf("unsupported wrapped HCS-1 payload format")
	}

	parts := strings.SplitN(trimmed, ",", dataURLPartCount)
	if len(parts) != dataURLPartCount {
		return nil, fmt.Errorf("invalid wrapped HCS-1 data URL")
	}

	header := strings.ToLower(parts[0])
	if strings.Contains(header, ";base64") {
		decoded, err := base64.StdEncoding.DecodeString(parts[1])
		if err != nil {
			return nil, fmt.Errorf("failed to decode wrapped HCS-1 base64 payload: %w", err)
		}
		return decoded, nil
	}

	unescaped, err := url.QueryUnescape(parts[1])
	if err != nil {
		return nil, fmt.Errorf("failed to decode wrapped HCS-1 payload: %w", err)
	}
	return []byte(unescaped), nil
}

func extractChunkTransactionID(initialTransactionID any) string {
	switch typed := initialTransactionID.(type) {
	case string:
		return strings.TrimSpace(typed)
	case map[string]any:
		accountID, _ := typed["account_id"].(string)
		validStart, _ := typed["transaction_valid_start"].(string)
		if strings.TrimSpace(validStart) == "" {
			validStart, _ = typed["valid_start_timestamp"].(string)
		}
		if strings.TrimSpace(accountID) != "" && strings.TrimSpace(validStart) != "" {
			return accountID + "@" + validStart
		}
	}
	return ""
}
