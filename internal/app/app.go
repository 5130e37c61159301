package app

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"names_demo/internal/config"
	"names_demo/internal/queue"
	"names_demo/internal/store/sqlstore"
)

const readyPublishTimeout = 3 * time.Second

type App struct {
	cfg          *config.Config
	store        *sqlstore.Store
	pub          queue.Publisher
	server       *http.Server
	logger       *zap.Logger
	readyTimeout time.Duration
	wg           sync.WaitGroup
}

func NewApp(cfg *config.Config, store *sqlstore.Store, publisher queue.Publisher, router *gin.Engine, logger *zap.Logger) *App {
	return &App{
		cfg:   cfg,
		store: store,
		pub:   publisher,
		server: &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: router,
		},
		logger:       logger,
		readyTimeout: readyPublishTimeout,
	}
}

// Run binds the listener, announces the seeded store and serves until
// Shutdown. A bind failure is returned before anything is published.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.cfg.HTTPAddr)
	if err != nil {
		return err
	}
	a.logger.Info("listening", zap.String("addr", ln.Addr().String()))

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.announceReady(ctx)
	}()
	return a.server.Serve(ln)
}

// announceReady is best effort and bounded by readyTimeout: the event is
// informational and a broker outage must not hold up requests.
func (a *App) announceReady(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, a.readyTimeout)
	defer cancel()

	payload, err := json.Marshal(queue.StoreReady{
		Service: a.cfg.OTELServiceName,
		Dialect: a.store.Dialect(),
		Records: a.store.Seeded(),
	})
	if err != nil {
		a.logger.Error("ready event marshal failed", zap.Error(err))
		return
	}
	if err := a.pub.Publish(ctx, payload, a.cfg.RabbitReadyKey); err != nil {
		a.logger.Warn("ready event publish failed", zap.String("routing_key", a.cfg.RabbitReadyKey), zap.Error(err))
	}
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("graceful shutdown started")
	shutdownErr := a.server.Shutdown(ctx)

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		shutdownErr = errors.Join(shutdownErr, ctx.Err())
	}

	if err := a.store.Close(); err != nil {
		a.logger.Error("store close failed", zap.Error(err))
		shutdownErr = errors.Join(shutdownErr, err)
	}
	if shutdownErr == nil {
		a.logger.Info("graceful shutdown completed")
	}
	return shutdownErr
}

func (a *App) Logger() *zap.Logger {
	return a.logger
}
