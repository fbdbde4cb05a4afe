package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/magiclamp-finance/lampd/internal/config"
	"github.com/magiclamp-finance/lampd/internal/core/amm"
	"github.com/magiclamp-finance/lampd/internal/core/keylet"
	"github.com/magiclamp-finance/lampd/internal/core/tx"
	"github.com/magiclamp-finance/lampd/internal/core/types"
	"github.com/magiclamp-finance/lampd/internal/ledger"
	"github.com/magiclamp-finance/lampd/internal/server/jsonrpc"
	"github.com/magiclamp-finance/lampd/internal/storage/statestore"
)

var (
	serverPort int
	serverBind string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the lampd daemon",
	Long: `Start the lampd server: opens the state database, writes the genesis
state on first run and serves the JSON-RPC API.`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runServer(cmd, args)
	}

	serverCmd.Flags().IntVarP(&serverPort, "port", "p", 0, "port to listen on (overrides config)")
	serverCmd.Flags().StringVar(&serverBind, "bind", "", "address to bind to (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}
	if serverBind != "" {
		cfg.Server.Host = serverBind
	}

	store, err := statestore.Open(statestore.Config{
		Type:       cfg.Database.Type,
		Path:       cfg.Database.Path,
		Compressor: cfg.Database.Compressor,
	})
	if err != nil {
		return fmt.Errorf("opening state store: %w", err)
	}
	defer store.Close()

	led, err := ledger.New(store, cfg.Database.CacheSize)
	if err != nil {
		return err
	}

	chain, err := chainAddresses(&cfg.Chain)
	if err != nil {
		return err
	}

	// First run: an empty store gets the genesis state.
	hasGenesis, err := led.Exists(keylet.TokenState(chain.Token))
	if err != nil {
		return fmt.Errorf("probing for genesis: %w", err)
	}
	if !hasGenesis {
		if !quiet {
			fmt.Println("Writing genesis state")
		}
		if err := ledger.Initialize(led, ledger.Genesis{
			Owner:         chain.Owner,
			Token:         chain.Token,
			Emitter:       chain.Emitter,
			Collection:    chain.Collection,
			Vault:         chain.Vault,
			Swap:          chain.Swap,
			LiquidityFund: chain.LiquidityFund,
			PrizeFund:     chain.PrizeFund,
			TreasuryFund:  chain.TreasuryFund,
			SaleStart:     cfg.Chain.SaleStart,
			BaseURI:       cfg.Chain.BaseURI,
		}); err != nil {
			return fmt.Errorf("writing genesis: %w", err)
		}
	}

	engine := tx.NewEngine(led, tx.EngineConfig{
		Timestamp:  uint64(time.Now().Unix()),
		Token:      chain.Token,
		Emitter:    chain.Emitter,
		Collection: chain.Collection,
		Vault:      chain.Vault,
		Swap:       chain.Swap,
		Backend:    amm.NewConstantProduct(),
	})

	handler := jsonrpc.NewHandler(engine)
	mux := http.NewServeMux()
	mux.Handle("/", jsonrpc.NewServer(handler))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok","service":"lampd"}`))
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{Addr: addr, Handler: mux}

	if !quiet {
		fmt.Printf("lampd listening on %s (store: %s)\n", addr, store.Name())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		grace := time.Duration(cfg.Server.ShutdownGraceSeconds) * time.Second
		shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// chainModules holds the parsed chain addresses.
type chainModules struct {
	Owner, Token, Emitter, Collection, Vault, Swap types.Address
	LiquidityFund, PrizeFund, TreasuryFund         types.Address
}

func chainAddresses(c *config.ChainConfig) (*chainModules, error) {
	var m chainModules
	for _, field := range []struct {
		name string
		raw  string
		dst  *types.Address
	}{
		{"owner", c.Owner, &m.Owner},
		{"token", c.Token, &m.Token},
		{"emitter", c.Emitter, &m.Emitter},
		{"collection", c.Collection, &m.Collection},
		{"vault", c.Vault, &m.Vault},
		{"swap", c.Swap, &m.Swap},
		{"liquidity_fund", c.LiquidityFund, &m.LiquidityFund},
		{"prize_fund", c.PrizeFund, &m.PrizeFund},
		{"treasury_fund", c.TreasuryFund, &m.TreasuryFund},
	} {
		addr, err := types.ParseAddress(field.raw)
		if err != nil {
			return nil, fmt.Errorf("chain.%s: invalid address %q", field.name, field.raw)
		}
		*field.dst = addr
	}
	return &m, nil
}
