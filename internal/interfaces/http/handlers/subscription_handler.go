package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"maisquecardapio.backend/internal/domain/entities"
	domainerrors "maisquecardapio.backend/internal/domain/errors"
	"maisquecardapio.backend/internal/interfaces/http/response"
	"maisquecardapio.backend/pkg/crypto"
	"maisquecardapio.backend/pkg/logger"
)

// CronKeyHeader carries CRON_SECRET on the scheduler trigger
const CronKeyHeader = "X-Cron-Key"

type SubscriptionService interface {
	RunCheck(ctx context.Context) (*entities.SubscriptionCheckReport, error)
	Renew(ctx context.Context, establishmentID int64, months int, source string, payload interface{}) (*entities.Establishment, error)
	RequestUpgrade(ctx context.Context, est *entities.Establishment, input *entities.UpgradeRequestInput) (*entities.Subscription, error)
	HandlePaymentWebhook(ctx context.Context, input *entities.PaymentWebhookInput) (*entities.Establishment, bool, error)
	SyncFromExternalOrder(ctx context.Context, input *entities.ExternalOrderInput) (*entities.ExternalOrderResult, error)
	Status(ctx context.Context, est *entities.Establishment, now time.Time) (*entities.SubscriptionOverview, error)
}

// SubscriptionHandler exposes the billing lifecycle to owners, webhooks and the scheduler
type SubscriptionHandler struct {
	subscriptionUsecase SubscriptionService
	cronSecret          string
}

// NewSubscriptionHandler creates a new subscription handler.
// An empty cronSecret leaves the cron trigger unguarded.
func NewSubscriptionHandler(subscriptionUsecase SubscriptionService, cronSecret string) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionUsecase: subscriptionUsecase, cronSecret: cronSecret}
}

// GetStatus describes the caller's plan and lifecycle state
// GET /api/e/subscription
func (h *SubscriptionHandler) GetStatus(c *gin.Context) {
	est, found := establishment(c)
	if !found {
		return
	}
	overview, err := h.subscriptionUsecase.Status(c.Request.Context(), est, nowFunc())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, overview)
}

// RequestUpgrade records a pending paid plan request
// POST /api/e/subscription/upgrade
func (h *SubscriptionHandler) RequestUpgrade(c *gin.Context) {
	est, found := establishment(c)
	if !found {
		return
	}
	var input entities.UpgradeRequestInput
	if c.Request.ContentLength != 0 && !bindJSON(c, &input) {
		return
	}

	sub, err := h.subscriptionUsecase.RequestUpgrade(c.Request.Context(), est, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, sub)
}

// RequestRenewal asks for more premium months. Payment is confirmed by the payment webhook.
// POST /api/e/subscription/renew
func (h *SubscriptionHandler) RequestRenewal(c *gin.Context) {
	est, found := establishment(c)
	if !found {
		return
	}
	var input entities.RenewInput
	if c.Request.ContentLength != 0 && !bindJSON(c, &input) {
		return
	}

	sub, err := h.subscriptionUsecase.RequestUpgrade(c.Request.Context(), est, &entities.UpgradeRequestInput{
		PlanCode: entities.PlanCodePremium,
		Months:   input.Months,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, sub)
}

// RunCron runs the reminder and downgrade batch
// POST /api/public/cron/subscriptions
func (h *SubscriptionHandler) RunCron(c *gin.Context) {
	if h.cronSecret != "" && !crypto.ConstantTimeEqual(c.GetHeader(CronKeyHeader), h.cronSecret) {
		response.Error(c, domainerrors.Unauthorized("invalid cron key"))
		return
	}
	h.runCheck(c)
}

// RunCheck is the superadmin trigger for the same batch
// POST /api/superadmin/subscriptions/check
func (h *SubscriptionHandler) RunCheck(c *gin.Context) {
	h.runCheck(c)
}

func (h *SubscriptionHandler) runCheck(c *gin.Context) {
	report, err := h.subscriptionUsecase.RunCheck(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	logger.Info(c.Request.Context(), "Subscription check finished",
		zap.Int("checked", report.Checked),
		zap.Int("downgraded", report.Downgraded),
		zap.Int("errors", report.Errors),
	)
	response.Success(c, http.StatusOK, report)
}

// PaymentWebhook renews the establishment when the provider reports an approved payment
// POST /api/public/webhooks/payment
func (h *SubscriptionHandler) PaymentWebhook(c *gin.Context) {
	var input entities.PaymentWebhookInput
	if !bindJSON(c, &input) {
		return
	}

	est, renewed, err := h.subscriptionUsecase.HandlePaymentWebhook(c.Request.Context(), &input)
	if err != nil {
		response.ErrorNotFound(c, err, "establishment not found")
		return
	}
	if !renewed {
		response.Success(c, http.StatusOK, gin.H{"success": true, "renewed": false})
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"success":    true,
		"renewed":    true,
		"slug":       est.Slug,
		"paid_until": est.PaidUntil,
	})
}

// OrderSyncWebhook provisions or upgrades an establishment from a storefront sale
// POST /api/public/webhooks/order-sync
func (h *SubscriptionHandler) OrderSyncWebhook(c *gin.Context) {
	var input entities.ExternalOrderInput
	if !bindJSON(c, &input) {
		return
	}

	result, err := h.subscriptionUsecase.SyncFromExternalOrder(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	response.Success(c, status, result)
}

// Renew extends an establishment's premium period without a payment record
// POST /api/superadmin/establishments/:id/renew
func (h *SubscriptionHandler) Renew(c *gin.Context) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	var input entities.RenewInput
	if c.Request.ContentLength != 0 && !bindJSON(c, &input) {
		return
	}

	est, err := h.subscriptionUsecase.Renew(c.Request.Context(), id, input.Months, entities.SubscriptionSourceManual, gin.H{"months": input.Months})
	if err != nil {
		response.ErrorNotFound(c, err, "establishment not found")
		return
	}
	response.Success(c, http.StatusOK, est)
}
