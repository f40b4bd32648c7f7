package pipeline

import (
	"context"
	"fmt"

	"github.com/hashgraph-online/collection-kit-go/pkg/journal"
)

// uploadBinary uploads data once per content, consulting the journal.
func uploadBinary(ctx context.Context, deps Deps, data []byte, fileName string, contentType string) (string, error) {
	key, err := journal.UploadKey(data)
	if err != nil {
		return "", err
	}
	if entry, found, err := deps.Journal.Lookup(ctx, key); err != nil {
		return "", err
	} else if found && entry.URI != "" {
		deps.Logger.Debug("journal hit", "key", key, "uri", entry.URI)
		deps.Reporter.Reused("upload of "+fileName, entry.URI)
		return entry.URI, nil
	}

	deps.Logger.Debug("uploading file", "file", fileName, "bytes", len(data), "content_type", contentType)
	uri, err := deps.Store.UploadBinary(ctx, data, fileName, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", fileName, err)
	}

	if err := deps.Journal.Record(ctx, journal.Entry{Key: key, URI: uri}); err != nil {
		return "", err
	}
	return uri, nil
}

// uploadDocument encodes and uploads a metadata document once per content.
func uploadDocument(ctx context.Context, deps Deps, document []byte) (string, error) {
	key, err := journal.UploadKey(document)
	if err != nil {
		return "", err
	}
	if entry, found, err := deps.Journal.Lookup(ctx, key); err != nil {
		return "", err
	} else if found && entry.URI != "" {
		deps.Logger.Debug("journal hit", "key", key, "uri", entry.URI)
		deps.Reporter.Reused("metadata upload", entry.URI)
		return entry.URI, nil
	}

	deps.Logger.Debug("uploading metadata", "bytes", len(document))
	uri, err := deps.Store.UploadMetadata(ctx, document)
	if err != nil {
		return "", fmt.Errorf("failed to upload metadata: %w", err)
	}

	if err := deps.Journal.Record(ctx, journal.Entry{Key: key, URI: uri}); err != nil {
		return "", err
	}
	return uri, nil
}
