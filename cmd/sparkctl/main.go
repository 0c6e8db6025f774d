package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"github.com/sparkfi/sparkgo/internal/account"
	"github.com/sparkfi/sparkgo/internal/domain"
	"github.com/sparkfi/sparkgo/internal/history"
	"github.com/sparkfi/sparkgo/internal/network"
	"github.com/sparkfi/sparkgo/pkg/config"
	"github.com/sparkfi/sparkgo/pkg/logger"
	"github.com/sparkfi/sparkgo/pkg/persistence"
	"github.com/sparkfi/sparkgo/pkg/sdk"
	"github.com/sparkfi/sparkgo/pkg/sdk/stream"
	"github.com/sparkfi/sparkgo/pkg/secretstore"
	"github.com/sparkfi/sparkgo/pkg/shutdown"
)

const usageText = `sparkctl — Spark client for the Fuel testnet

Usage: sparkctl [-config path] <command> [args]

Session:
  status                     show the current session
  connect-key                import SPARK_PRIVATE_KEY and connect
  connect-mnemonic           import SPARK_MNEMONIC and connect
  disconnect                 close the session and forget the snapshot

Wallet:
  balance <SYMBOL>           asset balance of the connected address
  mint <SYMBOL>              mint the faucet amount of a testnet asset

Markets:
  tokens                     list known assets
  markets                    list spot markets
  price <SYMBOL>             spot market price
  orders <SYMBOL>            open spot orders of the connected trader
  trades <SYMBOL>            recent spot trades
  history                    locally journaled order activity
  watch <SYMBOL>             stream live trades until interrupted
`

func main() {
	configPath := flag.String("config", "config.yaml", "config file path")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usageText) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	if err := logger.Init(cfg.Log); err != nil {
		fatal(err)
	}

	app, err := newApp(cfg)
	if err != nil {
		fatal(err)
	}
	defer app.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.run(ctx, flag.Arg(0), flag.Args()[1:]); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err.Error())
	os.Exit(1)
}

// app wires the long-lived pieces every command shares.
type app struct {
	cfg         *config.Config
	secrets     *secretstore.Store
	sessionFile persistence.Store
	journal     *history.Journal
	fuel        *network.FuelNetwork
	controller  *account.Controller
}

func newApp(cfg *config.Config) (*app, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, err
	}

	masterKey, err := secretstore.ParseKey(os.Getenv("SPARK_MASTER_KEY"))
	if err != nil {
		return nil, err
	}
	secrets, err := secretstore.Open(secretstore.OpenOptions{
		Path:          filepath.Join(cfg.DataDir, "secrets"),
		EncryptionKey: masterKey,
	})
	if err != nil {
		return nil, err
	}

	journal, err := history.Open(filepath.Join(cfg.DataDir, "journal.db"))
	if err != nil {
		secrets.Close()
		return nil, err
	}

	netURL := network.FuelNetworks[0].URL
	if cfg.NetworkURL != "" {
		netURL = cfg.NetworkURL
	}
	indexerURL := network.FuelIndexerURL
	if cfg.IndexerURL != "" {
		indexerURL = cfg.IndexerURL
	}
	fuel, err := network.NewFuelNetwork(network.FuelNetworkOptions{
		SDK: sdk.New(sdk.Config{
			Network:           domain.Descriptor{Name: network.FuelNetworks[0].Name, URL: netURL},
			IndexerAPIURL:     indexerURL,
			ContractAddresses: network.FuelContracts,
		}),
		Journal: journal,
	})
	if err != nil {
		journal.Close()
		secrets.Close()
		return nil, err
	}

	// Keys live in the encrypted store; the address-only projection goes to
	// a plain JSON file so tooling can read it without the master key.
	sessionFile := persistence.NewJSONFileService(cfg.DataDir).NewStore("account", "fuel", "session")

	var prior *account.Snapshot
	var snap account.Snapshot
	if found, err := secrets.LoadSnapshot(&snap); err != nil {
		logger.Warnf("[sparkctl] snapshot load failed: %v", err)
	} else if found {
		prior = &snap
	} else if err := sessionFile.Load(&snap); err == nil && snap.Address != "" {
		snap.PrivateKey = ""
		prior = &snap
	}

	controller, err := account.NewController(context.Background(), account.Options{
		Networks: map[network.Type]network.BlockchainNetwork{
			network.TypeFuel: fuel,
		},
		Current:  network.TypeFuel,
		Notifier: account.ConsoleNotifier{},
	}, prior)
	if err != nil {
		journal.Close()
		secrets.Close()
		return nil, err
	}

	return &app{
		cfg:         cfg,
		secrets:     secrets,
		sessionFile: sessionFile,
		journal:     journal,
		fuel:        fuel,
		controller:  controller,
	}, nil
}

func (a *app) close() {
	m := shutdown.NewManager()
	m.OnShutdown(func(context.Context) {
		if err := a.journal.Close(); err != nil {
			logger.Warnf("[sparkctl] journal close failed: %v", err)
		}
	})
	m.OnShutdown(func(context.Context) {
		if err := a.secrets.Close(); err != nil {
			logger.Warnf("[sparkctl] secret store close failed: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	m.Shutdown(ctx)
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "status":
		return a.cmdStatus()
	case "connect-key":
		return a.cmdConnectKey(ctx)
	case "connect-mnemonic":
		return a.cmdConnectMnemonic(ctx)
	case "disconnect":
		return a.cmdDisconnect(ctx)
	case "balance":
		return a.cmdBalance(ctx, args)
	case "mint":
		return a.cmdMint(ctx, args)
	case "tokens":
		return a.cmdTokens()
	case "markets":
		return a.cmdMarkets(ctx)
	case "price":
		return a.cmdPrice(ctx, args)
	case "orders":
		return a.cmdOrders(ctx, args)
	case "trades":
		return a.cmdTrades(ctx, args)
	case "history":
		return a.cmdHistory(ctx)
	case "watch":
		return a.cmdWatch(ctx, args)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

// saveSession persists the session snapshot after every session change so
// the next invocation can restore it.
func (a *app) saveSession() {
	snap := a.controller.Serialize()
	if err := a.secrets.SaveSnapshot(snap); err != nil {
		logger.Warnf("[sparkctl] snapshot save failed: %v", err)
	}
	if err := a.sessionFile.Save(account.Snapshot{Address: snap.Address}); err != nil {
		logger.Warnf("[sparkctl] session file save failed: %v", err)
	}
}

func (a *app) cmdStatus() error {
	if !a.controller.IsConnected() {
		fmt.Println("disconnected")
		return nil
	}
	fmt.Printf("connected: %s\n", a.controller.Address())
	fmt.Printf("network:   %s (%s)\n", a.fuel.NetworkType(), a.fuel.Network().URL)
	if a.fuel.IsExternalWallet() {
		fmt.Println("session:   external provider")
	} else {
		fmt.Println("session:   imported key")
	}
	return nil
}

func (a *app) cmdConnectKey(ctx context.Context) error {
	if a.cfg.PrivateKey == "" {
		return fmt.Errorf("SPARK_PRIVATE_KEY is not set")
	}
	if err := a.controller.ConnectWalletByPrivateKey(ctx, a.cfg.PrivateKey); err != nil {
		return err
	}
	a.saveSession()
	fmt.Printf("connected: %s\n", a.controller.Address())
	return nil
}

func (a *app) cmdConnectMnemonic(ctx context.Context) error {
	if a.cfg.Mnemonic == "" {
		return fmt.Errorf("SPARK_MNEMONIC is not set")
	}
	if err := a.controller.ConnectWalletByMnemonic(ctx, a.cfg.Mnemonic); err != nil {
		return err
	}
	a.saveSession()
	fmt.Printf("connected: %s\n", a.controller.Address())
	return nil
}

func (a *app) cmdDisconnect(ctx context.Context) error {
	a.controller.Disconnect(ctx)
	if err := a.secrets.DeleteSnapshot(); err != nil {
		logger.Warnf("[sparkctl] snapshot delete failed: %v", err)
	}
	if err := a.sessionFile.Save(account.Snapshot{}); err != nil {
		logger.Warnf("[sparkctl] session file clear failed: %v", err)
	}
	fmt.Println("disconnected")
	return nil
}

func (a *app) cmdBalance(ctx context.Context, args []string) error {
	token, err := a.tokenArg(args)
	if err != nil {
		return err
	}
	if !a.controller.IsConnected() {
		return domain.NewNetworkError(domain.CodeNoActiveWallet, "wallet is not connected")
	}
	bal, err := a.fuel.Balance(ctx, a.controller.Address(), token.AssetID)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s\n", token.FormatUnits(bal), token.Symbol)
	return nil
}

func (a *app) cmdMint(ctx context.Context, args []string) error {
	token, err := a.tokenArg(args)
	if err != nil {
		return err
	}
	if err := a.fuel.MintToken(ctx, token.AssetID); err != nil {
		return err
	}
	fmt.Printf("minted %s %s\n", network.FaucetAmounts[token.Symbol], token.Symbol)
	return nil
}

func (a *app) cmdTokens() error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tNAME\tDECIMALS\tASSET ID")
	for _, t := range a.fuel.TokenList() {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", t.Symbol, t.Name, t.Decimals, t.AssetID)
	}
	return w.Flush()
}

func (a *app) cmdMarkets(ctx context.Context) error {
	markets, err := a.fuel.FetchSpotMarkets(ctx, 100)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MARKET\tASSET ID\tCREATED")
	for _, m := range markets {
		symbol := m.AssetID
		if t, err := a.fuel.TokenByAssetID(m.AssetID); err == nil {
			symbol = t.Symbol + "/USDC"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", symbol, m.AssetID, m.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func (a *app) cmdPrice(ctx context.Context, args []string) error {
	token, err := a.tokenArg(args)
	if err != nil {
		return err
	}
	price, err := a.fuel.FetchSpotMarketPrice(ctx, token.AssetID)
	if err != nil {
		return err
	}
	fmt.Printf("%s/USDC %s\n", token.Symbol, price.String())
	return nil
}

func (a *app) cmdOrders(ctx context.Context, args []string) error {
	token, err := a.tokenArg(args)
	if err != nil {
		return err
	}
	if !a.controller.IsConnected() {
		return domain.NewNetworkError(domain.CodeNoActiveWallet, "wallet is not connected")
	}
	opened := true
	orders, err := a.fuel.FetchSpotOrders(ctx, domain.FetchOrdersParams{
		BaseToken: token.AssetID,
		Trader:    a.controller.Address(),
		Limit:     50,
		IsOpened:  &opened,
	})
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSIDE\tSIZE\tPRICE\tTIME")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			o.ID, o.Type, o.Size.String(), o.Price.String(), o.Timestamp.Format("15:04:05"))
	}
	return w.Flush()
}

func (a *app) cmdTrades(ctx context.Context, args []string) error {
	token, err := a.tokenArg(args)
	if err != nil {
		return err
	}
	trades, err := a.fuel.FetchSpotTrades(ctx, domain.FetchTradesParams{
		BaseToken: token.AssetID,
		Limit:     25,
	})
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tSIZE\tPRICE")
	for _, t := range trades {
		fmt.Fprintf(w, "%s\t%s\t%s\n", t.Timestamp.Format("15:04:05"), t.Size.String(), t.Price.String())
	}
	return w.Flush()
}

func (a *app) cmdHistory(ctx context.Context) error {
	if !a.controller.IsConnected() {
		return domain.NewNetworkError(domain.CodeNoActiveWallet, "wallet is not connected")
	}
	entries, err := a.journal.List(ctx, a.controller.Address(), 50)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tKIND\tACTION\tORDER\tSIZE\tPRICE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.CreatedAt.Format("2006-01-02 15:04:05"), e.Kind, e.Action, e.OrderID, e.Size, e.Price)
	}
	return w.Flush()
}

func (a *app) cmdWatch(ctx context.Context, args []string) error {
	token, err := a.tokenArg(args)
	if err != nil {
		return err
	}

	wsURL := strings.Replace(network.FuelIndexerURL, "https://", "wss://", 1) + "/stream"
	client := stream.NewClient(stream.DefaultConfig(wsURL), func(trade domain.SpotMarketTrade) {
		fmt.Printf("[%s] %s/USDC size=%s price=%s\n",
			trade.Timestamp.Format("15:04:05"), token.Symbol, trade.Size.String(), trade.Price.String())
	})
	if err := client.Subscribe(token.AssetID); err != nil {
		return err
	}
	defer client.Close()

	fmt.Printf("watching %s/USDC trades, ^C to stop\n", token.Symbol)
	return client.Run(ctx)
}

func (a *app) tokenArg(args []string) (domain.Token, error) {
	if len(args) == 0 {
		return domain.Token{}, fmt.Errorf("a token symbol is required (e.g. BTC)")
	}
	return a.fuel.TokenBySymbol(strings.ToUpper(args[0]))
}
