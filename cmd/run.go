package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"slices"
	"syscall"

	jRPC "github.com/0xPolygon/cdk-rpc/rpc"
	rollupchain "github.com/0xPolygon/rollupchain"
	"github.com/0xPolygon/rollupchain/archive"
	"github.com/0xPolygon/rollupchain/batchchain"
	cdkcommon "github.com/0xPolygon/rollupchain/common"
	"github.com/0xPolygon/rollupchain/config"
	"github.com/0xPolygon/rollupchain/log"
	"github.com/0xPolygon/rollupchain/rpc"
	"github.com/0xPolygon/rollupchain/submitter"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

var errRPCNeedsArchive = errors.New("the rpc component needs the archive component")

func start(cliCtx *cli.Context) error {
	c, err := config.Load(cliCtx)
	if err != nil {
		return err
	}

	log.Init(c.Log)

	if c.Log.Environment == log.EnvironmentDevelopment {
		rollupchain.PrintVersion(os.Stdout)
		log.Info("Starting application")
	} else if c.Log.Environment == log.EnvironmentProduction {
		logVersion()
	}

	components := cliCtx.StringSlice(config.FlagComponents)
	if slices.Contains(components, cdkcommon.RPC) && !slices.Contains(components, cdkcommon.ARCHIVE) {
		return errRPCNeedsArchive
	}

	ctx, stop := signal.NotifyContext(cliCtx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := cdkcommon.SystemClock{}
	var (
		journal batchchain.Journal
		store   *archive.Archive
	)
	if slices.Contains(components, cdkcommon.ARCHIVE) {
		store, err = createArchive(c.Archive)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Errorf("error closing the archive: %v", err)
			}
		}()
		journal = store
	}

	ctc := batchchain.NewCanonicalTransactionChain(
		log.WithFields("module", batchchain.TransactionChainName), c.Chain, nil, clock, journal,
	)
	scc := batchchain.NewStateCommitmentChain(
		log.WithFields("module", batchchain.StateChainName), ctc, clock, journal,
	)
	if store != nil {
		if err := store.RestoreChains(ctx, ctc, scc); err != nil {
			return fmt.Errorf("error restoring the chains from the archive: %w", err)
		}
	}

	g, ctx := errgroup.WithContext(ctx)

	var txSubmitter *submitter.Submitter
	if slices.Contains(components, cdkcommon.SUBMITTER) {
		txSubmitter = submitter.New(log.WithFields("module", cdkcommon.SUBMITTER), c.Submitter, ctc, clock)
		g.Go(func() error {
			return txSubmitter.Start(ctx)
		})
	}

	if slices.Contains(components, cdkcommon.RPC) {
		server := createRPC(c.RPC, ctc, scc, store, txSubmitter)
		g.Go(func() error {
			return server.Start()
		})
		g.Go(func() error {
			<-ctx.Done()
			log.Info("terminating application gracefully...")
			return server.Stop()
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		return nil
	})

	return g.Wait()
}

func createArchive(cfg archive.Config) (*archive.Archive, error) {
	logger := log.WithFields("module", cdkcommon.ARCHIVE)
	store, err := archive.New(logger, cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating the archive at %s: %w", cfg.DBPath, err)
	}
	return store, nil
}

func createRPC(
	cfg jRPC.Config,
	ctc *batchchain.CanonicalTransactionChain,
	scc *batchchain.StateCommitmentChain,
	store *archive.Archive,
	txSubmitter *submitter.Submitter,
) *jRPC.Server {
	logger := log.WithFields("module", cdkcommon.RPC)
	var sub rpc.TransactionSubmitter
	if txSubmitter != nil {
		sub = txSubmitter
	}
	services := []jRPC.Service{
		{
			Name: rpc.CHAIN,
			Service: rpc.NewChainEndpoints(
				logger,
				cfg.WriteTimeout.Duration,
				cfg.ReadTimeout.Duration,
				ctc,
				scc,
				store,
				sub,
			),
		},
	}

	return jRPC.NewServer(cfg, services, jRPC.WithLogger(logger.GetSugaredLogger()))
}

func logVersion() {
	log.Infow("Starting application",
		// version is already logged by default
		"gitRevision", rollupchain.GitRev,
		"gitBranch", rollupchain.GitBranch,
		"goVersion", runtime.Version(),
		"built", rollupchain.BuildDate,
		"os/arch", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	)
}
