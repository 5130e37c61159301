package e2e

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"names_demo/internal/config"
	httpserver "names_demo/internal/http"
	"names_demo/internal/http/controller"
	"names_demo/internal/metrics"
	"names_demo/internal/service/names"
	"names_demo/internal/store/sqlstore"
)

const seededBody = `[{"id":1,"name":"yes"},{"id":2,"name":"hi"},{"id":3,"name":"no"},{"id":4,"name":"wtf"}]`

func startServer(t *testing.T) (*httptest.Server, *sqlstore.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{OTELServiceName: "names-e2e", LockTimeout: 10 * time.Second}
	logger := zap.NewNop()
	m := metrics.New()

	store, err := sqlstore.New(context.Background(), sqlstore.Options{
		LockTimeout: cfg.LockTimeout,
		Observer:    m,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	svc := names.NewService(store, logger)
	handler := controller.NewHandler(svc, logger)
	router := httpserver.NewRouter(cfg, handler, m, logger)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, store
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	res, err := http.Get(url)
	require.NoError(t, err)
	defer func() { _ = res.Body.Close() }()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(body)
}

func TestNamesEndToEnd(t *testing.T) {
	server, _ := startServer(t)

	res, body := get(t, server.URL+"/names")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "application/json", res.Header.Get("Content-Type"))
	require.Equal(t, seededBody, body)
}

func TestNamesRepeatedReads(t *testing.T) {
	server, _ := startServer(t)

	for i := 0; i < 20; i++ {
		res, body := get(t, server.URL+"/names")
		require.Equal(t, http.StatusOK, res.StatusCode)
		require.Equal(t, seededBody, body)
	}
}

func TestNamesConcurrentRequests(t *testing.T) {
	server, store := startServer(t)

	const clients = 100
	bodies := make([]string, clients)
	statuses := make([]int, clients)
	errs := make([]error, clients)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			res, err := http.Get(server.URL + "/names")
			if err != nil {
				errs[i] = err
				return
			}
			defer func() { _ = res.Body.Close() }()
			b, err := io.ReadAll(res.Body)
			statuses[i], bodies[i], errs[i] = res.StatusCode, string(b), err
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 0; i < clients; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, http.StatusOK, statuses[i])
		require.Equal(t, seededBody, bodies[i])
	}
	require.LessOrEqual(t, store.PeakHolders(), int32(1))
	require.Zero(t, store.ActiveHolders())
}

func TestUnknownRoute(t *testing.T) {
	server, _ := startServer(t)

	res, _ := get(t, server.URL+"/unknown")
	require.Equal(t, http.StatusNotFound, res.StatusCode)

	res, body := get(t, server.URL+"/names")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, seededBody, body)
}

func TestMetricsExposeStoreLock(t *testing.T) {
	server, _ := startServer(t)

	// One wait for seeding, one for the request.
	get(t, server.URL+"/names")
	res, body := get(t, server.URL+"/metrics")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, body, "names_store_lock_wait_seconds_count 2")
	require.Contains(t, body, `names_http_requests_total{method="GET",route="/names",status="200"} 1`)
}
