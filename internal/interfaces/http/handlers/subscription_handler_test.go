package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"maisquecardapio.backend/internal/domain/entities"
	domainerrors "maisquecardapio.backend/internal/domain/errors"
)

func newSubscriptionRouter(svc SubscriptionService, cronSecret string) *gin.Engine {
	h := NewSubscriptionHandler(svc, cronSecret)
	r := gin.New()
	e := r.Group("/api/e", withTenant(joeBurger))
	e.GET("/subscription", h.GetStatus)
	e.POST("/subscription/upgrade", h.RequestUpgrade)
	e.POST("/subscription/renew", h.RequestRenewal)
	r.POST("/api/public/cron/subscriptions", h.RunCron)
	r.POST("/api/public/webhooks/payment", h.PaymentWebhook)
	r.POST("/api/public/webhooks/order-sync", h.OrderSyncWebhook)
	r.POST("/api/superadmin/subscriptions/check", h.RunCheck)
	r.POST("/api/superadmin/establishments/:id/renew", h.Renew)
	return r
}

func TestSubscriptionHandler_GetStatus(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	orig := nowFunc
	nowFunc = func() time.Time { return fixed }
	t.Cleanup(func() { nowFunc = orig })

	svc := &subscriptionServiceStub{statusFn: func(_ context.Context, est *entities.Establishment, now time.Time) (*entities.SubscriptionOverview, error) {
		assert.Equal(t, joeBurger.ID, est.ID)
		assert.Equal(t, fixed, now)
		return &entities.SubscriptionOverview{
			PlanCode:      entities.PlanCodePremium,
			State:         entities.LifecycleExpiring7d,
			DaysRemaining: null.IntFrom(7),
		}, nil
	}}

	rec := doJSON(t, newSubscriptionRouter(svc, ""), http.MethodGet, "/api/e/subscription", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, entities.LifecycleExpiring7d, body["state"])
	assert.Equal(t, float64(7), body["days_remaining"])
}

func TestSubscriptionHandler_RequestUpgradeAndRenewal(t *testing.T) {
	var inputs []*entities.UpgradeRequestInput
	svc := &subscriptionServiceStub{upgradeFn: func(_ context.Context, _ *entities.Establishment, input *entities.UpgradeRequestInput) (*entities.Subscription, error) {
		inputs = append(inputs, input)
		return &entities.Subscription{ID: 8, Status: entities.SubscriptionStatusPending, Months: input.Months}, nil
	}}
	r := newSubscriptionRouter(svc, "")

	rec := doJSON(t, r, http.MethodPost, "/api/e/subscription/upgrade", gin.H{"plan_code": "premium", "months": 3})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "pending", decode(t, rec)["status"])

	rec = doJSON(t, r, http.MethodPost, "/api/e/subscription/upgrade", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, r, http.MethodPost, "/api/e/subscription/renew", gin.H{"months": 6})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	require.Len(t, inputs, 3)
	assert.Equal(t, 3, inputs[0].Months)
	assert.Equal(t, "", inputs[1].PlanCode)
	assert.Equal(t, entities.UpgradeRequestInput{PlanCode: entities.PlanCodePremium, Months: 6}, *inputs[2])
}

func TestSubscriptionHandler_RunCron(t *testing.T) {
	calls := 0
	svc := &subscriptionServiceStub{runCheckFn: func(context.Context) (*entities.SubscriptionCheckReport, error) {
		calls++
		return &entities.SubscriptionCheckReport{Checked: 4, Reminders7d: 1, Downgraded: 1}, nil
	}}
	r := newSubscriptionRouter(svc, "cron-secret")

	rec := doJSON(t, r, http.MethodPost, "/api/public/cron/subscriptions", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/public/cron/subscriptions", nil)
	req.Header.Set(CronKeyHeader, "wrong")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, calls)

	req = httptest.NewRequest(http.MethodPost, "/api/public/cron/subscriptions", nil)
	req.Header.Set(CronKeyHeader, "cron-secret")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(4), body["checked"])
	assert.Equal(t, float64(1), body["reminders_7d"])
	assert.Equal(t, 1, calls)
}

func TestSubscriptionHandler_RunCheckLocked(t *testing.T) {
	svc := &subscriptionServiceStub{runCheckFn: func(context.Context) (*entities.SubscriptionCheckReport, error) {
		return nil, domainerrors.ErrLocked
	}}
	r := newSubscriptionRouter(svc, "")

	rec := doJSON(t, r, http.MethodPost, "/api/public/cron/subscriptions", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/superadmin/subscriptions/check", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "operation already running", decode(t, rec)["message"])
}

func TestSubscriptionHandler_PaymentWebhook(t *testing.T) {
	paidUntil := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	svc := &subscriptionServiceStub{paymentFn: func(_ context.Context, input *entities.PaymentWebhookInput) (*entities.Establishment, bool, error) {
		switch input.Status {
		case "approved":
			return &entities.Establishment{Slug: input.Slug, PaidUntil: null.TimeFrom(paidUntil)}, true, nil
		case "forged":
			return nil, false, domainerrors.Unauthorized("invalid api key")
		case "unknown":
			return nil, false, domainerrors.ErrNotFound
		}
		return nil, false, nil
	}}
	r := newSubscriptionRouter(svc, "")

	rec := doJSON(t, r, http.MethodPost, "/api/public/webhooks/payment", gin.H{"slug": "joe-burger", "status": "approved", "api_key": "k"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["renewed"])
	assert.Equal(t, "joe-burger", body["slug"])

	rec = doJSON(t, r, http.MethodPost, "/api/public/webhooks/payment", gin.H{"slug": "joe-burger", "status": "pending"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["renewed"])

	rec = doJSON(t, r, http.MethodPost, "/api/public/webhooks/payment", gin.H{"slug": "joe-burger", "status": "forged"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/public/webhooks/payment", gin.H{"slug": "nobody", "status": "unknown"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "establishment not found", decode(t, rec)["message"])

	rec = doJSON(t, r, http.MethodPost, "/api/public/webhooks/payment", gin.H{"status": "approved"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubscriptionHandler_OrderSyncWebhook(t *testing.T) {
	created := true
	svc := &subscriptionServiceStub{syncFn: func(_ context.Context, input *entities.ExternalOrderInput) (*entities.ExternalOrderResult, error) {
		assert.Equal(t, "Pizzaria da Maria", input.StoreName)
		return &entities.ExternalOrderResult{EstablishmentID: 9, Slug: "pizzaria-da-maria", Created: created}, nil
	}}
	r := newSubscriptionRouter(svc, "")
	body := gin.H{"api_key": "k", "store_name": "Pizzaria da Maria", "owner_email": "maria@example.com", "months": 1}

	rec := doJSON(t, r, http.MethodPost, "/api/public/webhooks/order-sync", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "pizzaria-da-maria", decode(t, rec)["slug"])

	created = false
	rec = doJSON(t, r, http.MethodPost, "/api/public/webhooks/order-sync", body)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/public/webhooks/order-sync", gin.H{"store_name": "x", "owner_email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubscriptionHandler_SuperadminRenew(t *testing.T) {
	var gotSource string
	var gotMonths int
	svc := &subscriptionServiceStub{renewFn: func(_ context.Context, id int64, months int, source string, _ interface{}) (*entities.Establishment, error) {
		if id == 404 {
			return nil, domainerrors.ErrNotFound
		}
		gotSource, gotMonths = source, months
		return &entities.Establishment{ID: id, Slug: "joe-burger"}, nil
	}}
	r := newSubscriptionRouter(svc, "")

	rec := doJSON(t, r, http.MethodPost, "/api/superadmin/establishments/1/renew", gin.H{"months": 12})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entities.SubscriptionSourceManual, gotSource)
	assert.Equal(t, 12, gotMonths)

	rec = doJSON(t, r, http.MethodPost, "/api/superadmin/establishments/404/renew", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/superadmin/establishments/x/renew", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubscriptionHandler_UnexpectedError(t *testing.T) {
	svc := &subscriptionServiceStub{statusFn: func(context.Context, *entities.Establishment, time.Time) (*entities.SubscriptionOverview, error) {
		return nil, errors.New("boom")
	}}
	rec := doJSON(t, newSubscriptionRouter(svc, ""), http.MethodGet, "/api/e/subscription", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}
