package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"

	"exchangenorm/src/connectors"
	"exchangenorm/src/database"
	"exchangenorm/src/loader"
	"exchangenorm/src/logging"
	"exchangenorm/src/repository"
	"exchangenorm/src/server"
)

var APP_NAME = os.Getenv("APP_NAME")

func main() {
	_ = godotenv.Load()
	if err := logging.Setup(logging.GetConfig()); err != nil {
		logger.WithError(err).Fatal("Failed to configure logging")
	}
	defer handlePanic()

	client, err := connectors.NewOKXClient(connectors.GetConfig())
	if err != nil {
		logger.WithError(err).Fatal("Failed to build exchange client")
	}

	var store loader.Store
	if database.GetConfig().EnableDB {
		if err := database.InitMainDB(); err != nil {
			logger.WithError(err).Fatal("Failed to connect to database")
		}
		store = repository.NewSnapshotRepository()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	l := loader.New(client, store, loader.GetConfig())
	if store != nil {
		if err := l.Warm(ctx); err != nil {
			logger.WithError(err).Warn("No snapshot to warm from")
		}
	}
	go func() {
		if err := l.Loop(ctx); err != nil {
			logger.WithError(err).Error("Loader loop stopped")
		}
	}()

	server.StartServer(ctx, server.GetConfig().Port, server.NewRouter(server.Deps{
		Markets:    client.Markets(),
		Currencies: client.Currencies(),
		Builder:    client.Builder(),
	}))
}

func handlePanic() {
	if r := recover(); r != nil {
		logger.WithError(fmt.Errorf("%+v", r)).Error(fmt.Sprintf("Application %s panic", APP_NAME))
		time.Sleep(time.Second * 5)
	}
}
