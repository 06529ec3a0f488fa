package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusResponse struct {
	Status string
	Checks map[string]string
}

func serve(t *testing.T, h http.Handler, path string) (int, statusResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp statusResponse
	err := jx.DecodeBytes(w.Body.Bytes()).Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "status":
			v, err := d.Str()
			resp.Status = v
			return err
		case "checks":
			resp.Checks = map[string]string{}
			return d.Obj(func(d *jx.Decoder, name string) error {
				v, err := d.Str()
				resp.Checks[name] = v
				return err
			})
		default:
			return d.Skip()
		}
	})
	require.NoError(t, err)
	return w.Code, resp
}

func fail(msg string) CheckFunc {
	return func(context.Context) error { return errors.New(msg) }
}

func pass() CheckFunc {
	return func(context.Context) error { return nil }
}

func TestLive_Thresholds(t *testing.T) {
	h := New()
	h.AddLivenessCheck("db", time.Second, fail("connection refused"))
	ctx := context.Background()

	h.liveness[0].run(ctx)
	h.liveness[0].run(ctx)
	code, _ := serve(t, h.Handler(), "/livez")
	assert.Equal(t, http.StatusOK, code, "two failures stay below the threshold")

	h.liveness[0].run(ctx)
	code, resp := serve(t, h.Handler(), "/livez")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, map[string]string{"db": "connection refused"}, resp.Checks)
}

func TestLive_Recovers(t *testing.T) {
	var failing bool
	h := New()
	h.AddLivenessCheck("cache", time.Second, func(context.Context) error {
		if failing {
			return errors.New("timeout")
		}
		return nil
	})
	ctx := context.Background()

	failing = true
	for range failureThreshold {
		h.liveness[0].run(ctx)
	}
	code, _ := serve(t, h.Handler(), "/livez")
	require.Equal(t, http.StatusServiceUnavailable, code)

	failing = false
	h.liveness[0].run(ctx)
	code, resp := serve(t, h.Handler(), "/livez")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", resp.Status)
	assert.Empty(t, resp.Checks)
}

func TestReady_Gate(t *testing.T) {
	h := New()
	h.AddReadinessCheck("db", time.Second, pass())

	code, resp := serve(t, h.Handler(), "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "service is not ready", resp.Checks["_readiness"])
	assert.False(t, h.IsReady())

	h.SetReady(true)
	code, _ = serve(t, h.Handler(), "/readyz")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, h.IsReady())
}

func TestReady_FailingCheck(t *testing.T) {
	h := New()
	h.SetReady(true)
	h.AddReadinessCheck("kafka", time.Second, fail("no brokers"))
	h.AddReadinessCheck("db", time.Second, pass())

	for range failureThreshold {
		h.readiness[0].run(context.Background())
	}

	assert.False(t, h.IsReady())
	code, resp := serve(t, h.Handler(), "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, map[string]string{"kafka": "no brokers"}, resp.Checks)
}

func TestStartStop(t *testing.T) {
	h := New()
	h.SetReady(true)
	h.AddReadinessCheck("db", time.Second, fail("down"))

	h.Start(context.Background(), 5*time.Millisecond)
	defer h.Stop()

	require.Eventually(t, func() bool { return !h.IsReady() }, time.Second, 5*time.Millisecond)
	h.Stop()
	h.Stop()
}

func TestCheckTimeout(t *testing.T) {
	h := New()
	h.AddLivenessCheck("slow", 10*time.Millisecond, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	for range failureThreshold {
		h.liveness[0].run(context.Background())
	}

	_, resp := serve(t, h.Handler(), "/livez")
	assert.Equal(t, context.DeadlineExceeded.Error(), resp.Checks["slow"])
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestCheckers(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, PingCheck(stubPinger{})(ctx))
	assert.ErrorContains(t, PingCheck(stubPinger{err: errors.New("refused")})(ctx), "ping: refused")

	backlog := func(n int, err error) BacklogFunc {
		return func(context.Context) (int, error) { return n, err }
	}
	assert.NoError(t, BacklogCheck(backlog(10, nil), 10)(ctx))
	assert.ErrorContains(t, BacklogCheck(backlog(11, nil), 10)(ctx), "backlog 11 exceeds limit 10")
	assert.ErrorContains(t, BacklogCheck(backlog(0, errors.New("boom")), 10)(ctx), "count backlog")

	assert.NoError(t, GoroutineCountCheck(1_000_000)(ctx))
	assert.Error(t, GoroutineCountCheck(0)(ctx))
}
