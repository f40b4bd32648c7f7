package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashgraph-online/collection-kit-go/pkg/metadata"
	"github.com/hashgraph-online/collection-kit-go/pkg/report"
)

const unknownName = "(unknown)"

// ListAssets reports the assets held by owner, or by the identity when owner
// is empty. Names come from each asset's metadata document.
func ListAssets(ctx context.Context, deps Deps, owner string) ([]report.ListedAsset, error) {
	deps = deps.withDefaults()
	if err := deps.requireLedger(); err != nil {
		return nil, err
	}

	owner = strings.TrimSpace(owner)
	if owner == "" {
		identity, err := deps.identity()
		if err != nil {
			return nil, preconditionf("an owner account ID or a wallet is required")
		}
		owner = identity.Address()
	}
	deps.Reporter.FetchingAssets(owner)

	assets, err := deps.Ledger.AssetsByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	if len(assets) == 0 {
		deps.Reporter.NoAssets()
		return []report.ListedAsset{}, nil
	}

	listed := make([]report.ListedAsset, 0, len(assets))
	for _, asset := range assets {
		listed = append(listed, report.ListedAsset{
			Address: asset.Address,
			Name:    resolveName(ctx, deps, asset.URI),
		})
	}

	deps.Reporter.AssetsFound(listed)
	return listed, nil
}

func resolveName(ctx context.Context, deps Deps, uri string) string {
	if deps.Fetcher == nil || strings.TrimSpace(uri) == "" {
		return unknownName
	}

	document, err := deps.Fetcher.Fetch(ctx, uri)
	if err != nil {
		deps.Logger.Debug("metadata fetch failed", "uri", uri, "err", err)
		return unknownName
	}
	name, err := metadata.Name(document)
	if err != nil || strings.TrimSpace(name) == "" {
		deps.Logger.Debug("metadata has no name", "uri", uri, "err", err)
		return unknownName
	}
	return name
}
