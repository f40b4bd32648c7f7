package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashgraph-online/collection-kit-go/pkg/contentid"
)

// Entry is one completed step.
type Entry struct {
	Key           string
	RunID         string
	URI           string
	Address       string
	TransactionID string
	RecordedAt    time.Time
}

type Journal interface {
	// Lookup returns the entry recorded under key, if any.
	Lookup(ctx context.Context, key string) (Entry, bool, error)
	// Record stores a completed step, replacing any earlier entry for its key.
	Record(ctx context.Context, entry Entry) error
	// RunID identifies the current process run.
	RunID() string
	Close() error
}

var ErrEmptyKey = errors.New("journal key is required")

func UploadKey(data []byte) (string, error) {
	id, err := contentid.Of(data)
	if err != nil {
		return "", err
	}
	return "upload/" + id, nil
}

func CollectionKey(document []byte) (string, error) {
	id, err := contentid.Of(document)
	if err != nil {
		return "", err
	}
	return "collection/" + id, nil
}

// MintKey identifies the mint of image at position index into collection.
func MintKey(collection string, image []byte, index int) (string, error) {
	trimmedCollection := strings.TrimSpace(collection)
	if trimmedCollection == "" {
		return "", fmt.Errorf("collection address is required")
	}
	id, err := contentid.Indexed(image, index)
	if err != nil {
		return "", err
	}
	return "mint/" + trimmedCollection + "/" + id, nil
}

// Nop is a Journal that remembers nothing.
type Nop struct {
	runID string
}

func NewNop(runID string) *Nop {
	return &Nop{runID: runID}
}

func (n *Nop) Lookup(context.Context, string) (Entry, bool, error) {
	return Entry{}, false, nil
}

func (n *Nop) Record(context.Context, Entry) error {
	return nil
}

func (n *Nop) RunID() string {
	return n.runID
}

func (n *Nop) Close() error {
	return nil
}
