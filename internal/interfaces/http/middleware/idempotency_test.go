package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"maisquecardapio.backend/pkg/redis"
)

func newIdempotentRouter(handler gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(TenantMiddleware(tenants))
	r.Use(IdempotencyMiddleware())
	r.POST("/api/e/orders", handler)
	return r
}

func postOrder(r *gin.Engine, slug, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/e/orders", nil)
	req.Header.Set(TenantHeader, slug)
	if key != "" {
		req.Header.Set(IdempotencyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotencyMiddleware_NoHeaderPassthrough(t *testing.T) {
	calls := 0
	r := newIdempotentRouter(func(c *gin.Context) { calls++; c.Status(http.StatusCreated) })

	postOrder(r, "joe-burger", "")
	postOrder(r, "joe-burger", "")
	assert.Equal(t, 2, calls)
}

func TestIdempotencyMiddleware_ReplaysSuccessWithStatus(t *testing.T) {
	srv := useMiniredis(t)
	calls := 0
	r := newIdempotentRouter(func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"id": 7})
	})

	w := postOrder(r, "joe-burger", "k-1")
	require.Equal(t, http.StatusCreated, w.Code)

	w2 := postOrder(r, "joe-burger", "k-1")
	require.Equal(t, http.StatusCreated, w2.Code)
	assert.Equal(t, "true", w2.Header().Get("X-Idempotency-Hit"))
	assert.JSONEq(t, `{"id":7}`, w2.Body.String())
	assert.Equal(t, 1, calls)
	assert.True(t, srv.Exists("idempotency:joe-burger:k-1"))
}

func TestIdempotencyMiddleware_KeysAreScopedPerTenant(t *testing.T) {
	useMiniredis(t)
	calls := 0
	r := newIdempotentRouter(func(c *gin.Context) { calls++; c.JSON(http.StatusCreated, gin.H{"id": calls}) })

	postOrder(r, "joe-burger", "same")
	w := postOrder(r, "pizzaria", "same")
	assert.Empty(t, w.Header().Get("X-Idempotency-Hit"))
	assert.Equal(t, 2, calls)
}

func TestIdempotencyMiddleware_ProcessingConflict(t *testing.T) {
	srv := useMiniredis(t)
	require.NoError(t, srv.Set("idempotency:joe-burger:busy", "processing"))

	r := newIdempotentRouter(func(c *gin.Context) { c.Status(http.StatusCreated) })
	w := postOrder(r, "joe-burger", "busy")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "IDEMPOTENCY_CONFLICT")
}

func TestIdempotencyMiddleware_ReleasesKeyOnFailure(t *testing.T) {
	useMiniredis(t)
	r := newIdempotentRouter(func(c *gin.Context) { c.String(http.StatusConflict, "closed") })

	w := postOrder(r, "joe-burger", "k-fail")
	require.Equal(t, http.StatusConflict, w.Code)

	_, err := redis.Get(context.Background(), "idempotency:joe-burger:k-fail")
	assert.True(t, redis.IsNil(err))
}

func TestIdempotencyMiddleware_DiscardsCorruptEntry(t *testing.T) {
	srv := useMiniredis(t)
	require.NoError(t, srv.Set("idempotency:joe-burger:bad", "not json"))

	calls := 0
	r := newIdempotentRouter(func(c *gin.Context) { calls++; c.Status(http.StatusCreated) })
	w := postOrder(r, "joe-burger", "bad")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, calls)
}

func TestIdempotencyMiddleware_RejectsLongKey(t *testing.T) {
	r := newIdempotentRouter(func(c *gin.Context) { c.Status(http.StatusCreated) })
	w := postOrder(r, "joe-burger", strings.Repeat("k", 200))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIdempotencyMiddleware_RedisDownPassthrough(t *testing.T) {
	orig := redis.GetClient()
	cli := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"})
	redis.SetClient(cli)
	t.Cleanup(func() {
		_ = cli.Close()
		redis.SetClient(orig)
	})

	r := newIdempotentRouter(func(c *gin.Context) { c.Status(http.StatusAccepted) })
	w := postOrder(r, "joe-burger", "k-down")
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestResponseWriter_Write(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	w := responseWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}

	n, err := w.Write([]byte("ok"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "ok", w.body.String())
	assert.Equal(t, "ok", rec.Body.String())
}
