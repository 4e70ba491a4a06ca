// Command tenord runs the tenor ledger as a daemon: it bootstraps the
// state from a JSON genesis document on first start and then drives the
// yield accrual keeper on a cron schedule.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/iov-one/tenor/app"
	"github.com/iov-one/tenor/store"
	"github.com/iov-one/tenor/x"
	"github.com/iov-one/tenor/x/bond"
	"github.com/iov-one/tenor/x/compliance"
	"github.com/iov-one/tenor/x/deposit"
	"github.com/iov-one/tenor/x/funds"
	"github.com/iov-one/tenor/x/rates"
	"github.com/iov-one/tenor/x/vault"
)

func main() {
	configPath := flag.String("config", "tenord.toml", "path to the TOML configuration")
	flag.Parse()

	// A .env file is optional, environment wins over it either way.
	_ = godotenv.Load()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "tenord: %+v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	conf, err := LoadConfig(configPath)
	if err != nil {
		return err
	}
	level, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil {
		return err
	}
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)

	db, err := store.OpenLevelDB(conf.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	auth := x.CtxAuth{Key: "auth"}
	control := funds.NewController()

	router := app.NewRouter()
	bond.RegisterRoutes(router, auth)
	compliance.RegisterRoutes(router, auth, conf.RegistrarAddress())
	rates.RegisterRoutes(router, auth, conf.OracleAddress())
	vault.RegisterRoutes(router, auth, conf.AuthorityAddress())
	deposit.RegisterRoutes(router, auth, control)

	stack := app.ChainDecorators(
		app.NewRecoveryDecorator(),
		app.NewLoggingDecorator(),
	).WithHandler(router)

	ledger := app.NewLedger(db, stack, logger)

	if err := bootstrapGenesis(ledger, conf.GenesisPath, logger); err != nil {
		return err
	}

	keeper := newKeeper(ledger, auth, conf.KeeperAddress(), logger)
	schedule := cron.New()
	if _, err := schedule.AddFunc(conf.AccrualSchedule, keeper.accrueAll); err != nil {
		return err
	}
	schedule.Start()
	defer schedule.Stop()
	logger.Info().
		Str("db", conf.DBPath).
		Str("schedule", conf.AccrualSchedule).
		Msg("tenord started")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info().Msg("tenord stopping")
	return nil
}
