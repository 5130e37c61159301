//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"names_demo/internal/app"
	"names_demo/internal/config"
	"names_demo/internal/http"
	"names_demo/internal/http/controller"
	"names_demo/internal/logging"
	"names_demo/internal/metrics"
	"names_demo/internal/queue/rabbitmq"
	"names_demo/internal/repository"
	"names_demo/internal/service/names"
	"names_demo/internal/store"
	"names_demo/internal/store/sqlstore"
)

func InitializeApp(cfg *config.Config) (*app.App, error) {
	wire.Build(
		logging.New,
		metrics.New,
		store.NewStore,
		wire.Bind(new(repository.RecordRepository), new(*sqlstore.Store)),
		names.NewService,
		controller.NewHandler,
		http.NewRouter,
		rabbitmq.NewPublisher,
		app.NewApp,
	)
	return &app.App{}, nil
}
