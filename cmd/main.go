package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"exchangenorm/src/connectors"
	"exchangenorm/src/database"
	"exchangenorm/src/loader"
	"exchangenorm/src/logging"
	"exchangenorm/src/repository"
	"exchangenorm/src/server"
)

var Version string

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	app := cli.NewApp()
	app.Name = "exchangenorm"
	app.Usage = "Unified exchange listings, symbols and precision"
	app.Version = Version
	app.Before = func(_ *cli.Context) error {
		return logging.Setup(logging.GetConfig())
	}

	app.Commands = []cli.Command{
		marketsCMD,
		resolveCMD,
		roundCMD,
		serveCMD,
	}

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var offlineFlag = cli.BoolFlag{
	Name:  "offline",
	Usage: "load listings from the newest stored snapshot instead of the exchange",
}

var (
	marketsCMD = cli.Command{
		Name:        "markets",
		Usage:       "download listings, store a snapshot and print a summary",
		Action:      marketsAction,
		Flags:       []cli.Flag{cli.BoolFlag{Name: "list", Usage: "print every symbol"}},
		Description: `Refresh markets and currencies from the exchange`,
	}
	resolveCMD = cli.Command{
		Name:        "resolve",
		Usage:       "resolve a unified symbol or native id",
		ArgsUsage:   "SYMBOL_OR_ID",
		Action:      resolveAction,
		Flags:       []cli.Flag{offlineFlag},
		Description: `Print the market a symbol or native id resolves to`,
	}
	roundCMD = cli.Command{
		Name:      "round",
		Usage:     "round a price and amount to a market's precision",
		ArgsUsage: "SYMBOL",
		Action:    roundAction,
		Flags: []cli.Flag{
			offlineFlag,
			cli.StringFlag{Name: "price", Usage: "price to round to the tick"},
			cli.StringFlag{Name: "amount", Usage: "amount to truncate to the lot step"},
		},
		Description: `Apply order placement rounding without placing an order`,
	}
	serveCMD = cli.Command{
		Name:        "serve",
		Usage:       "serve the listing API and refresh listings in the background",
		Action:      serveAction,
		Flags:       []cli.Flag{offlineFlag},
		Description: `Run the HTTP service`,
	}
)

type services struct {
	client *connectors.Client
	loader *loader.Loader
}

// bootstrap wires the client, the optional snapshot store and the loader.
func bootstrap() (*services, error) {
	client, err := connectors.NewOKXClient(connectors.GetConfig())
	if err != nil {
		return nil, err
	}
	var store loader.Store
	if dbConfig := database.GetConfig(); dbConfig.EnableDB {
		if err := database.InitMainDB(); err != nil {
			return nil, err
		}
		store = repository.NewSnapshotRepository()
	}
	return &services{client: client, loader: loader.New(client, store, loader.GetConfig())}, nil
}

// load fills the registries either from the exchange or from a snapshot.
func (rt *services) load(ctx context.Context, offline bool) error {
	if offline {
		return rt.loader.Warm(ctx)
	}
	return rt.loader.Refresh(ctx)
}

func marketsAction(c *cli.Context) error {
	logrus.WithField("cmd", "markets").Info("Refreshing listings")
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	if err := rt.load(context.Background(), false); err != nil {
		logrus.WithError(err).Error("Refreshing listings")
		return err
	}
	symbols := rt.client.Markets().Symbols()
	fmt.Printf("%d markets, %d currencies\n", len(symbols), len(rt.client.Currencies().Codes()))
	if c.Bool("list") {
		for _, s := range symbols {
			fmt.Println(s)
		}
	}
	return nil
}

func resolveAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.NewExitError("resolve needs exactly one SYMBOL_OR_ID", 2)
	}
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	if err := rt.load(context.Background(), c.Bool("offline")); err != nil {
		return err
	}
	m, err := rt.client.Markets().Resolve(c.Args().First())
	if err != nil {
		return err
	}
	printJSON(m)
	return nil
}

func roundAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.NewExitError("round needs exactly one SYMBOL", 2)
	}
	if c.String("price") == "" && c.String("amount") == "" {
		return cli.NewExitError("round needs --price or --amount", 2)
	}
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	if err := rt.load(context.Background(), c.Bool("offline")); err != nil {
		return err
	}
	out, err := rt.client.Builder().ToPrecision(c.Args().First(), c.String("price"), c.String("amount"))
	if err != nil {
		return err
	}
	printJSON(out)
	return nil
}

func serveAction(c *cli.Context) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The loop refreshes right away; offline mode serves the snapshot meanwhile.
	if c.Bool("offline") {
		if err := rt.loader.Warm(ctx); err != nil {
			logrus.WithError(err).Warn("Warm start failed, waiting for the first refresh")
		}
	}
	go func() {
		if err := rt.loader.Loop(ctx); err != nil {
			logrus.WithError(err).Error("Loader loop stopped")
		}
	}()

	router := server.NewRouter(server.Deps{
		Markets:    rt.client.Markets(),
		Currencies: rt.client.Currencies(),
		Builder:    rt.client.Builder(),
	})
	server.StartServer(ctx, server.GetConfig().Port, router)
	return nil
}
