package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	signingtypes "cosmossdk.io/x/tx/signing"
	addresscodec "github.com/cosmos/cosmos-sdk/codec/address"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/std"
	authtx "github.com/cosmos/cosmos-sdk/x/auth/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types/v1"
	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hubcycle/imbibe/internal/config"
	"github.com/hubcycle/imbibe/internal/indexer"
	"github.com/hubcycle/imbibe/internal/normalizer"
	"github.com/hubcycle/imbibe/internal/queryserver"
	"github.com/hubcycle/imbibe/internal/rpcclient"
	"github.com/hubcycle/imbibe/internal/signer"
	"github.com/hubcycle/imbibe/internal/store"
)

func newRunCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "run the live and backfill indexers plus the query server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd.Context(), *configPath)
		},
	}
}

func runDaemon(ctx context.Context, configPath string) error {
	cfg, err := config.NewLoader(configPath).Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("app", cfg.App.Name))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	pg, err := store.NewPostgres(ctx, cfg.Db.URL, int32(cfg.Db.MaxConn))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer pg.Close()

	if err := pg.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	rpcClient, err := rpcclient.Dial(cfg.Indexer.NodeURL)
	if err != nil {
		return fmt.Errorf("dial rpc: %w", err)
	}
	if err := rpcClient.Start(ctx); err != nil {
		return fmt.Errorf("start rpc: %w", err)
	}
	defer rpcClient.Stop()

	interfaceRegistry := codectypes.NewInterfaceRegistry()
	std.RegisterInterfaces(interfaceRegistry)
	authtypes.RegisterInterfaces(interfaceRegistry)
	banktypes.RegisterInterfaces(interfaceRegistry)
	govtypes.RegisterInterfaces(interfaceRegistry)
	stakingtypes.RegisterInterfaces(interfaceRegistry)

	signingCtx, err := signingtypes.NewContext(signingtypes.Options{
		AddressCodec:          addresscodec.NewBech32Codec("cosmos"),
		ValidatorAddressCodec: addresscodec.NewBech32Codec("cosmosvaloper"),
		FileResolver:          interfaceRegistry,
		TypeResolver:          interfaceRegistry,
	})
	if err != nil {
		return fmt.Errorf("build signing context: %w", err)
	}
	registry := signer.NewRegistry(signingCtx, interfaceRegistry)

	protoCodec := codec.NewProtoCodec(interfaceRegistry)
	txConfig := authtx.NewTxConfig(protoCodec, authtx.DefaultSignModes)

	norm := normalizer.New(txConfig, registry, signer.Options{EthSupport: true})

	coordinator := indexer.NewCoordinator(pg, rpcClient, norm, cfg.App.Name, cfg.Indexer.Batch, cfg.Indexer.Workers, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return coordinator.Run(gctx)
	})

	srv := &http.Server{
		Addr:    ":8080",
		Handler: queryServerHandler(pg, log, time.Duration(cfg.Telemetry.TimeoutMillis)*time.Millisecond),
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("query server: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func queryServerHandler(pg *store.Postgres, log *slog.Logger, timeout time.Duration) http.Handler {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return queryserver.New(pg, log, timeout)
}
