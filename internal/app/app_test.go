package app

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"names_demo/internal/config"
	"names_demo/internal/queue"
	"names_demo/internal/store/sqlstore"
)

type publisherMock struct {
	mock.Mock
}

func (m *publisherMock) Publish(ctx context.Context, payload []byte, routingKey string) error {
	args := m.Called(ctx, payload, routingKey)
	return args.Error(0)
}

func newTestApp(t *testing.T, pub queue.Publisher) *App {
	t.Helper()
	return newTestAppOn(t, pub, "127.0.0.1:0")
}

func newTestAppOn(t *testing.T, pub queue.Publisher, addr string) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := sqlstore.New(context.Background(), sqlstore.Options{}, zap.NewNop())
	require.NoError(t, err)

	cfg := &config.Config{
		HTTPAddr:        addr,
		OTELServiceName: "names-test",
		RabbitReadyKey:  "store.ready",
	}
	router := gin.New()
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	return NewApp(cfg, store, pub, router, zap.NewNop())
}

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func TestAppRunAndShutdown(t *testing.T) {
	published := make(chan []byte, 1)
	pub := &publisherMock{}
	pub.On("Publish", mock.Anything, mock.Anything, "store.ready").
		Run(func(args mock.Arguments) { published <- args.Get(1).([]byte) }).
		Return(nil).Once()
	a := newTestApp(t, pub)

	runErr := make(chan error, 1)
	go func() { runErr <- a.Run(context.Background()) }()

	var payload []byte
	select {
	case payload = <-published:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected ready event")
	}
	var event queue.StoreReady
	require.NoError(t, json.Unmarshal(payload, &event))
	require.Equal(t, queue.StoreReady{Service: "names-test", Dialect: "sqlite", Records: 4}, event)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, a.Shutdown(ctx))

	select {
	case err := <-runErr:
		require.ErrorIs(t, err, http.ErrServerClosed)
	case <-time.After(2 * time.Second):
		t.Fatalf("run did not return after shutdown")
	}
	pub.AssertExpectations(t)
}

func TestAppPublishFailureIsNotFatal(t *testing.T) {
	pub := &publisherMock{}
	pub.On("Publish", mock.Anything, mock.Anything, "store.ready").Return(errors.New("broker down")).Once()
	a := newTestApp(t, pub)

	a.announceReady(context.Background())
	pub.AssertExpectations(t)

	require.NoError(t, a.Shutdown(context.Background()))
}

func TestAppServesWhileBrokerHangs(t *testing.T) {
	addr := freeAddr(t)
	release := make(chan struct{})
	hadDeadline := make(chan bool, 1)
	pub := &publisherMock{}
	pub.On("Publish", mock.Anything, mock.Anything, "store.ready").
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			_, ok := ctx.Deadline()
			hadDeadline <- ok
			select {
			case <-ctx.Done():
			case <-release:
			}
		}).
		Return(context.DeadlineExceeded).Once()
	a := newTestAppOn(t, pub, addr)
	a.readyTimeout = time.Minute

	go func() { _ = a.Run(context.Background()) }()

	select {
	case ok := <-hadDeadline:
		require.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatalf("expected ready event")
	}

	res, err := http.Get("http://" + addr + "/health")
	require.NoError(t, err)
	_ = res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	close(release)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, a.Shutdown(ctx))
	pub.AssertExpectations(t)
}

func TestAppReadyPublishIsBounded(t *testing.T) {
	pub := &publisherMock{}
	pub.On("Publish", mock.Anything, mock.Anything, "store.ready").
		Run(func(args mock.Arguments) { <-args.Get(0).(context.Context).Done() }).
		Return(context.DeadlineExceeded).Once()
	a := newTestApp(t, pub)
	a.readyTimeout = 50 * time.Millisecond

	start := time.Now()
	a.announceReady(context.Background())
	require.Less(t, time.Since(start), time.Second)
	pub.AssertExpectations(t)

	require.NoError(t, a.Shutdown(context.Background()))
}

func TestAppBindFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	pub := &publisherMock{}
	a := newTestAppOn(t, pub, ln.Addr().String())

	err = a.Run(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, http.ErrServerClosed)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)

	require.NoError(t, a.Shutdown(context.Background()))
}
