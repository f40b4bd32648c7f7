package metadata

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultCollectionName        = "My Collection"
	DefaultCollectionSymbol      = "MYC"
	DefaultCollectionDescription = "An NFT collection."
	DefaultAssetNamePrefix       = "My NFT"
	DefaultAssetDescription      = "Minted into a collection."
)

// Manifest describes the collection and the assets minted into it. It is read
// from collection.yaml in the assets directory when present.
type Manifest struct {
	Name        string        `yaml:"name"`
	Symbol      string        `yaml:"symbol"`
	Description string        `yaml:"description"`
	MaxSupply   int64         `yaml:"max_supply,omitempty"`
	Asset       AssetTemplate `yaml:"asset"`
}

type AssetTemplate struct {
	NamePrefix  string `yaml:"name_prefix"`
	Description string `yaml:"description"`
}

func DefaultManifest() Manifest {
	return Manifest{
		Name:        DefaultCollectionName,
		Symbol:      DefaultCollectionSymbol,
		Description: DefaultCollectionDescription,
		Asset: AssetTemplate{
			NamePrefix:  DefaultAssetNamePrefix,
			Description: DefaultAssetDescription,
		},
	}
}

// LoadManifest reads a manifest file. A missing file yields the defaults, and
// fields left empty in the file keep their default values.
func LoadManifest(path string) (Manifest, error) {
	manifest := DefaultManifest()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return manifest, nil
		}
		return manifest, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var parsed Manifest
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return manifest, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	if value := strings.TrimSpace(parsed.Name); value != "" {
		manifest.Name = value
	}
	if value := strings.TrimSpace(parsed.Symbol); value != "" {
		manifest.Symbol = value
	}
	if value := strings.TrimSpace(parsed.Description); value != "" {
		manifest.Description = value
	}
	if parsed.MaxSupply < 0 {
		return manifest, fmt.Errorf("manifest max_supply must not be negative")
	}
	manifest.MaxSupply = parsed.MaxSupply
	if value := strings.TrimSpace(parsed.Asset.NamePrefix); value != "" {
		manifest.Asset.NamePrefix = value
	}
	if value := strings.TrimSpace(parsed.Asset.Description); value != "" {
		manifest.Asset.Description = value
	}

	return manifest, nil
}

// AssetName returns the display name of the asset at a 1-based position.
func (m Manifest) AssetName(position int) string {
	return fmt.Sprintf("%s #%d", m.Asset.NamePrefix, position)
}
