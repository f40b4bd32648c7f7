package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hashgraph-online/collection-kit-go/pkg/config"
	"github.com/hashgraph-online/collection-kit-go/pkg/inscriber"
	"github.com/hashgraph-online/collection-kit-go/pkg/journal"
	"github.com/hashgraph-online/collection-kit-go/pkg/ledger"
	"github.com/hashgraph-online/collection-kit-go/pkg/metadata"
	"github.com/hashgraph-online/collection-kit-go/pkg/mirror"
	"github.com/hashgraph-online/collection-kit-go/pkg/pipeline"
	"github.com/hashgraph-online/collection-kit-go/pkg/report"
	"github.com/hashgraph-online/collection-kit-go/pkg/resolver"
	"github.com/hashgraph-online/collection-kit-go/pkg/s3store"
	"github.com/hashgraph-online/collection-kit-go/pkg/shared"
	"github.com/hashgraph-online/collection-kit-go/pkg/wallet"
)

type Options struct {
	// WalletOptional lets a missing wallet file yield a read-only runtime.
	WalletOptional bool
}

// Runtime holds the live collaborators for one command invocation.
type Runtime struct {
	Config   config.Config
	Identity *wallet.Identity
	Mirror   *mirror.Client
	Ledger   *ledger.Client
	Store    pipeline.AssetStore
	Fetcher  *resolver.Resolver
	Journal  journal.Journal
	Settings pipeline.Settings
}

// New builds a Runtime from cfg. Without a wallet the ledger client is
// read-only and no asset store is created.
func New(ctx context.Context, cfg config.Config, options Options) (*Runtime, error) {
	mirrorClient, err := mirror.NewClient(mirror.Config{
		Network: cfg.Network,
		BaseURL: cfg.MirrorURL,
		APIKey:  cfg.MirrorKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create mirror client: %w", err)
	}

	settings, err := loadSettings(cfg)
	if err != nil {
		return nil, err
	}

	runtime := &Runtime{
		Config:   cfg,
		Mirror:   mirrorClient,
		Fetcher:  resolver.New(resolver.Config{Mirror: mirrorClient}),
		Settings: settings,
	}

	keypair, err := wallet.LoadKeypair(cfg.WalletPath)
	switch {
	case err == nil:
		if err := runtime.bindWallet(ctx, keypair); err != nil {
			_ = runtime.Close()
			return nil, err
		}
	case options.WalletOptional && errors.Is(err, wallet.ErrWalletNotFound):
		runtime.Ledger, err = ledger.NewClient(ledger.Config{Mirror: mirrorClient})
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	runtime.Journal, err = openJournal(cfg.Journal)
	if err != nil {
		_ = runtime.Close()
		return nil, err
	}

	return runtime, nil
}

func (r *Runtime) bindWallet(ctx context.Context, keypair *wallet.Keypair) error {
	identity, err := wallet.ResolveIdentity(ctx, r.Mirror, r.Config.AccountID, keypair)
	if err != nil {
		return fmt.Errorf("failed to resolve wallet account: %w", err)
	}
	r.Identity = &identity

	hederaClient, err := shared.NewHederaClientForNodes(r.Config.Network, r.Config.LedgerNodes)
	if err != nil {
		return fmt.Errorf("failed to create hedera client: %w", err)
	}
	operatorKey := keypair.PrivateKey()
	r.Ledger, err = ledger.NewClient(ledger.Config{
		HederaClient: hederaClient,
		OperatorID:   identity.AccountID,
		OperatorKey:  &operatorKey,
		Mirror:       r.Mirror,
	})
	if err != nil {
		_ = hederaClient.Close()
		return err
	}

	r.Store, err = newStore(ctx, r.Config, identity, r.Ledger)
	return err
}

// Deps returns the flow collaborators reporting to out.
func (r *Runtime) Deps(out io.Writer, logger *slog.Logger) pipeline.Deps {
	deps := pipeline.Deps{
		Ledger:   r.Ledger,
		Store:    r.Store,
		Fetcher:  r.Fetcher,
		Journal:  r.Journal,
		Reporter: report.New(out, report.NewExplorer(r.Config.Network)),
		Logger:   logger,
		Settings: r.Settings,
	}
	if r.Identity != nil {
		deps.Identity = *r.Identity
	}
	return deps
}

// Close releases the ledger connections and the journal.
func (r *Runtime) Close() error {
	var errs []error
	if r.Journal != nil {
		errs = append(errs, r.Journal.Close())
	}
	if r.Ledger != nil {
		errs = append(errs, r.Ledger.Close())
	}
	return errors.Join(errs...)
}

func loadSettings(cfg config.Config) (pipeline.Settings, error) {
	minBalance, err := cfg.MinimumBalance()
	if err != nil {
		return pipeline.Settings{}, err
	}
	manifest, err := metadata.LoadManifest(cfg.ManifestPath())
	if err != nil {
		return pipeline.Settings{}, err
	}

	return pipeline.Settings{
		MinBalance:      minBalance,
		CollectionImage: cfg.CollectionImagePath(),
		AssetImagesDir:  cfg.AssetImagesDir(),
		Manifest:        manifest,
	}, nil
}

func newStore(
	ctx context.Context,
	cfg config.Config,
	identity wallet.Identity,
	executor inscriber.TransactionExecutor,
) (pipeline.AssetStore, error) {
	switch cfg.Store.Kind {
	case config.StoreS3:
		store, err := s3store.New(ctx, s3store.Config{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			PublicURL:       cfg.S3.PublicURL,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			UsePathStyle:    cfg.S3.PathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create s3 store: %w", err)
		}
		return store, nil
	case "", config.StoreInscriber:
		store, err := inscriber.NewStore(inscriber.StoreConfig{
			Network:        cfg.Network,
			AccountID:      identity.Address(),
			APIKey:         cfg.Store.APIKey,
			BaseURL:        cfg.Store.URL,
			AuthBaseURL:    cfg.Store.AuthURL,
			ConnectionMode: inscriber.ConnectionMode(cfg.Store.ConnectionMode),
		}, identity.Keypair, executor)
		if err != nil {
			return nil, fmt.Errorf("failed to create inscriber store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown asset store %q", cfg.Store.Kind)
	}
}

func openJournal(path string) (journal.Journal, error) {
	if path == "" {
		return journal.NewNop(uuid.NewString()), nil
	}
	j, err := journal.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal %s: %w", path, err)
	}
	return j, nil
}
