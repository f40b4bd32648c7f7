package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hashgraph-online/collection-kit-go/pkg/bootstrap"
	"github.com/hashgraph-online/collection-kit-go/pkg/pipeline"
)

func newCommand(app *App, use string, short string, args cobra.PositionalArgs) (*cobra.Command, *Options) {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
	}
	cmd.SetIn(app.Stdin)
	cmd.SetOut(app.Stdout)
	cmd.SetErr(app.Stderr)
	bindCommonFlags(cmd, opts)
	return cmd, opts
}

func NewCreateCollectionCommand(app *App) *cobra.Command {
	cmd, opts := newCommand(app, "create-collection", "Create a collection from assets/collection.png", positional(0, 0))
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return app.run(cmd, opts, bootstrap.Options{}, func(ctx context.Context, deps pipeline.Deps) error {
			_, err := pipeline.CreateCollection(ctx, deps)
			return err
		})
	}
	return cmd
}

func NewMintAssetsCommand(app *App) *cobra.Command {
	cmd, opts := newCommand(app, "mint-assets <COLLECTION_ID>", "Mint every image in assets/nfts into a collection", positional(1, 1))
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return app.run(cmd, opts, bootstrap.Options{}, func(ctx context.Context, deps pipeline.Deps) error {
			_, err := pipeline.MintAssets(ctx, deps, args[0])
			return err
		})
	}
	return cmd
}

func NewListAssetsCommand(app *App) *cobra.Command {
	cmd, opts := newCommand(app, "list-assets [OWNER_ACCOUNT_ID]", "List the assets held by an account", positional(0, 1))
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		owner := ""
		if len(args) == 1 {
			owner = args[0]
		}
		return app.run(cmd, opts, bootstrap.Options{WalletOptional: owner != ""}, func(ctx context.Context, deps pipeline.Deps) error {
			_, err := pipeline.ListAssets(ctx, deps, owner)
			return err
		})
	}
	return cmd
}

func NewTransferAssetCommand(app *App) *cobra.Command {
	cmd, opts := newCommand(app, "transfer-asset <ASSET_ID> <RECIPIENT_ACCOUNT_ID>", "Transfer an asset you own to another account", positional(2, 2))
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return app.run(cmd, opts, bootstrap.Options{}, func(ctx context.Context, deps pipeline.Deps) error {
			_, err := pipeline.TransferAsset(ctx, deps, args[0], args[1])
			return err
		})
	}
	return cmd
}

func NewRenameCollectionCommand(app *App) *cobra.Command {
	cmd, opts := newCommand(app, "rename-collection <COLLECTION_ID> [NEW_NAME]", "Change the name in a collection's metadata", positional(1, 2))
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		var names pipeline.NameProvider = pipeline.PromptName{In: app.Stdin, Out: app.Stdout}
		if len(args) == 2 {
			names = pipeline.StaticName(args[1])
		}
		return app.run(cmd, opts, bootstrap.Options{}, func(ctx context.Context, deps pipeline.Deps) error {
			_, err := pipeline.RenameCollection(ctx, deps, args[0], names)
			return err
		})
	}
	return cmd
}
