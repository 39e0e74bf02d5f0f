package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"maisquecardapio.backend/internal/domain/entities"
	domainerrors "maisquecardapio.backend/internal/domain/errors"
	"maisquecardapio.backend/internal/domain/repositories"
	"maisquecardapio.backend/internal/infrastructure/messaging"
	"maisquecardapio.backend/pkg/crypto"
	"maisquecardapio.backend/pkg/logger"
	"maisquecardapio.backend/pkg/metrics"
)

const (
	subscriptionLockKey   = "lock:subscription-check"
	defaultLockTTL        = 10 * time.Minute
	reminder7dDedupWindow = 3 * 24 * time.Hour
	reminder3dDedupWindow = 2 * 24 * time.Hour
	temporaryPasswordLen  = 8
	provisionedTables     = 5
	dateLayoutBR          = "02/01/2006"
)

// SubscriptionConfig carries the billing settings of the process
type SubscriptionConfig struct {
	Location         *time.Location
	OperatorWhatsApp string
	WebhookAPIKey    string
	DefaultMonths    int
	LockTTL          time.Duration
}

// SubscriptionRepos groups the repositories the lifecycle engine touches
type SubscriptionRepos struct {
	Establishments repositories.EstablishmentRepository
	Plans          repositories.PlanRepository
	Subscriptions  repositories.SubscriptionRepository
	Reminders      repositories.ReminderRepository
	Settings       repositories.SettingsRepository
	Categories     repositories.CategoryRepository
	Neighborhoods  repositories.NeighborhoodRepository
	Tables         repositories.TableRepository
}

// SubscriptionUsecase drives reminders, downgrades, renewals and external provisioning
type SubscriptionUsecase struct {
	repos    SubscriptionRepos
	uow      repositories.UnitOfWork
	notifier Notifier
	cfg      SubscriptionConfig
}

// NewSubscriptionUsecase creates a new subscription usecase
func NewSubscriptionUsecase(repos SubscriptionRepos, uow repositories.UnitOfWork, notifier Notifier, cfg SubscriptionConfig) *SubscriptionUsecase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = defaultLockTTL
	}
	return &SubscriptionUsecase{repos: repos, uow: uow, notifier: notifier, cfg: cfg}
}

// RunCheck runs CheckSubscriptions under a Redis lock so overlapping triggers do not double send
func (u *SubscriptionUsecase) RunCheck(ctx context.Context) (*entities.SubscriptionCheckReport, error) {
	ok, err := acquireLock(ctx, subscriptionLockKey, nowFunc().UTC().Format(time.RFC3339), u.cfg.LockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire subscription lock: %w", err)
	}
	if !ok {
		return nil, domainerrors.ErrLocked
	}
	defer func() {
		if err := releaseLock(context.WithoutCancel(ctx), subscriptionLockKey); err != nil {
			logger.Warn(ctx, "Failed to release subscription lock", zap.Error(err))
		}
	}()

	return u.CheckSubscriptions(ctx, nowFunc())
}

// CheckSubscriptions evaluates every active premium establishment against now.
// Reminders fire only when paid_until falls exactly 7 or 3 calendar days ahead.
// A failure on one establishment is counted and the run continues.
func (u *SubscriptionUsecase) CheckSubscriptions(ctx context.Context, now time.Time) (*entities.SubscriptionCheckReport, error) {
	start := time.Now()
	defer func() { metrics.SubscriptionCheckDuration.Observe(time.Since(start).Seconds()) }()

	establishments, err := u.repos.Establishments.ListByPlanAndStatus(ctx, entities.PlanCodePremium, entities.EstablishmentStatusActive)
	if err != nil {
		return nil, err
	}
	freePlan, err := u.repos.Plans.GetByCode(ctx, entities.PlanCodeFree)
	if err != nil {
		return nil, fmt.Errorf("load free plan: %w", err)
	}

	report := &entities.SubscriptionCheckReport{}
	for _, est := range establishments {
		report.Checked++
		if !est.PaidUntil.Valid {
			continue
		}

		days := daysBetween(now, est.PaidUntil.Time, u.cfg.Location)
		var stepErr error
		switch {
		case days == 7:
			var sent bool
			sent, stepErr = u.remind(ctx, est, now, entities.ReminderExpiring7d, reminder7dDedupWindow)
			if sent {
				report.Reminders7d++
			}
		case days == 3:
			var sent bool
			sent, stepErr = u.remind(ctx, est, now, entities.ReminderExpiring3d, reminder3dDedupWindow)
			if sent {
				report.Reminders3d++
			}
		case days < 0:
			var downgraded bool
			downgraded, stepErr = u.downgrade(ctx, est, freePlan, now)
			if downgraded {
				report.Downgraded++
			}
		}

		if stepErr != nil {
			report.Errors++
			logger.Error(ctx, "Subscription check failed for establishment",
				zap.Int64("establishment_id", est.ID),
				zap.String("slug", est.Slug),
				zap.Error(stepErr),
			)
		}
	}

	return report, nil
}

func (u *SubscriptionUsecase) remind(ctx context.Context, est *entities.Establishment, now time.Time, reminderType string, window time.Duration) (bool, error) {
	already, err := u.repos.Reminders.SentSince(ctx, est.ID, reminderType, now.Add(-window).UTC())
	if err != nil {
		return false, err
	}
	if already {
		return false, nil
	}

	kind, text := messaging.KindReminder7d, reminder7dMessage(est, u.cfg.Location)
	if reminderType == entities.ReminderExpiring3d {
		kind, text = messaging.KindReminder3d, reminder3dMessage(est, u.cfg.Location)
	}
	u.notifier.Enqueue(ctx, messaging.Message{Kind: kind, EstablishmentID: est.ID, Number: est.OwnerPhone, Text: text})

	if err := u.repos.Reminders.Create(ctx, &entities.SubscriptionReminder{
		EstablishmentID: est.ID,
		Type:            reminderType,
		SentAt:          now.UTC(),
	}); err != nil {
		return false, err
	}

	metrics.SubscriptionTransitionsTotal.WithLabelValues(reminderType).Inc()
	return true, nil
}

// downgrade writes no reminder log row; the plan change itself keeps it from repeating.
// It reports false when the establishment was renewed after the batch listed it.
func (u *SubscriptionUsecase) downgrade(ctx context.Context, est *entities.Establishment, freePlan *entities.Plan, now time.Time) (bool, error) {
	cutoff := startOfDay(now, u.cfg.Location)
	var changed bool
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		var err error
		changed, err = u.repos.Establishments.DowngradeExpired(txCtx, est.ID, est.PlanID, freePlan.ID, cutoff)
		if err != nil || !changed {
			return err
		}
		return u.repos.Subscriptions.TransitionActive(txCtx, est.ID, entities.SubscriptionStatusExpired)
	})
	if err != nil {
		return false, err
	}
	if !changed {
		logger.Info(ctx, "Establishment renewed during check, downgrade skipped", zap.Int64("establishment_id", est.ID), zap.String("slug", est.Slug))
		return false, nil
	}
	est.PlanID = freePlan.ID
	est.Plan = freePlan

	u.notifier.Enqueue(ctx, messaging.Message{
		Kind:            messaging.KindExpired,
		EstablishmentID: est.ID,
		Number:          est.OwnerPhone,
		Text:            expiredMessage(est),
	})
	if u.cfg.OperatorWhatsApp != "" {
		u.notifier.Enqueue(ctx, messaging.Message{
			Kind:            messaging.KindOperator,
			EstablishmentID: est.ID,
			Number:          u.cfg.OperatorWhatsApp,
			Text:            operatorExpiredMessage(est),
		})
	}

	metrics.SubscriptionTransitionsTotal.WithLabelValues("downgraded").Inc()
	logger.Info(ctx, "Establishment downgraded to free plan", zap.Int64("establishment_id", est.ID), zap.String("slug", est.Slug))
	return true, nil
}

// Renew activates premium for months, counted from the later of paid_until and now
func (u *SubscriptionUsecase) Renew(ctx context.Context, establishmentID int64, months int, source string, payload interface{}) (*entities.Establishment, error) {
	est, err := u.renew(ctx, establishmentID, months, source, payload)
	if err != nil {
		return nil, err
	}
	u.notifier.Enqueue(ctx, messaging.Message{
		Kind:            messaging.KindRenewed,
		EstablishmentID: est.ID,
		Number:          est.OwnerPhone,
		Text:            renewedMessage(est, u.cfg.Location),
	})
	return est, nil
}

func (u *SubscriptionUsecase) renew(ctx context.Context, establishmentID int64, months int, source string, payload interface{}) (*entities.Establishment, error) {
	months = normalizeMonths(months, u.cfg.DefaultMonths)

	premium, err := u.repos.Plans.GetByCode(ctx, entities.PlanCodePremium)
	if err != nil {
		return nil, fmt.Errorf("load premium plan: %w", err)
	}

	rawPayload, err := marshalPayload(payload)
	if err != nil {
		return nil, err
	}

	now := nowFunc().UTC()
	var est *entities.Establishment
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		var err error
		est, err = u.repos.Establishments.GetByID(txCtx, establishmentID)
		if err != nil {
			return err
		}

		base := now
		if est.PaidUntil.Valid && est.PaidUntil.Time.After(now) {
			base = est.PaidUntil.Time.UTC()
		}
		paidUntil := base.AddDate(0, months, 0)

		est.PlanID = premium.ID
		est.Plan = premium
		est.Status = entities.EstablishmentStatusActive
		est.PaidUntil = null.TimeFrom(paidUntil)
		est.LastPaymentAt = null.TimeFrom(now)
		if err := u.repos.Establishments.Update(txCtx, est); err != nil {
			return err
		}

		if err := u.repos.Subscriptions.TransitionActive(txCtx, est.ID, entities.SubscriptionStatusExpired); err != nil {
			return err
		}

		pending, err := u.repos.Subscriptions.GetLatestPending(txCtx, est.ID)
		switch {
		case err == nil:
			return u.repos.Subscriptions.Activate(txCtx, pending.ID, entities.SubscriptionActivation{
				PlanID:    premium.ID,
				Price:     roundCents(premium.Price * float64(months)),
				Months:    months,
				StartedAt: now,
				EndsAt:    paidUntil,
			})
		case !errors.Is(err, domainerrors.ErrNotFound):
			return err
		}

		return u.repos.Subscriptions.Create(txCtx, &entities.Subscription{
			EstablishmentID: est.ID,
			PlanID:          premium.ID,
			Price:           roundCents(premium.Price * float64(months)),
			Months:          months,
			Status:          entities.SubscriptionStatusActive,
			Source:          source,
			StartedAt:       null.TimeFrom(now),
			EndsAt:          null.TimeFrom(paidUntil),
			NextPaymentAt:   null.TimeFrom(paidUntil),
			Payload:         rawPayload,
		})
	})
	if err != nil {
		return nil, err
	}

	metrics.SubscriptionTransitionsTotal.WithLabelValues("renewed").Inc()
	logger.Info(ctx, "Subscription renewed",
		zap.Int64("establishment_id", est.ID),
		zap.Int("months", months),
		zap.String("source", source),
		zap.Time("paid_until", est.PaidUntil.Time),
	)
	return est, nil
}

// RequestUpgrade records a pending upgrade; the payment webhook activates it
func (u *SubscriptionUsecase) RequestUpgrade(ctx context.Context, est *entities.Establishment, input *entities.UpgradeRequestInput) (*entities.Subscription, error) {
	code := strings.TrimSpace(input.PlanCode)
	if code == "" {
		code = entities.PlanCodePremium
	}
	plan, err := u.repos.Plans.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.BadRequest("unknown plan")
		}
		return nil, err
	}
	if plan.Price <= 0 {
		return nil, domainerrors.BadRequest("plan has no price to pay")
	}

	months := normalizeMonths(input.Months, u.cfg.DefaultMonths)
	sub := &entities.Subscription{
		EstablishmentID: est.ID,
		PlanID:          plan.ID,
		Price:           roundCents(plan.Price * float64(months)),
		Months:          months,
		Status:          entities.SubscriptionStatusPending,
		Source:          entities.SubscriptionSourceUpgrade,
	}
	if err := u.repos.Subscriptions.Create(ctx, sub); err != nil {
		return nil, err
	}

	u.notifier.Enqueue(ctx, messaging.Message{
		Kind:            messaging.KindUpgrade,
		EstablishmentID: est.ID,
		Number:          u.cfg.OperatorWhatsApp,
		Text:            fmt.Sprintf("Pedido de upgrade: %s (%s) quer o plano %s por %d mes(es), total %s.", est.Name, est.Slug, plan.Name, months, formatBRL(sub.Price)),
	})
	return sub, nil
}

// HandlePaymentWebhook renews on approved payments and acknowledges every other status
func (u *SubscriptionUsecase) HandlePaymentWebhook(ctx context.Context, input *entities.PaymentWebhookInput) (*entities.Establishment, bool, error) {
	if err := u.checkAPIKey(input.APIKey); err != nil {
		return nil, false, err
	}
	if !strings.EqualFold(strings.TrimSpace(input.Status), entities.PaymentStatusApproved) {
		logger.Info(ctx, "Payment webhook ignored", zap.String("slug", input.Slug), zap.String("status", input.Status))
		return nil, false, nil
	}

	est, err := u.repos.Establishments.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(input.Slug)))
	if err != nil {
		return nil, false, err
	}

	payload := map[string]interface{}{
		"reference": input.Reference,
		"amount":    input.Amount,
		"status":    input.Status,
	}
	est, err = u.Renew(ctx, est.ID, input.Months, entities.SubscriptionSourcePayment, payload)
	if err != nil {
		return nil, false, err
	}
	return est, true, nil
}

// SyncFromExternalOrder provisions or upgrades the establishment behind a storefront purchase
func (u *SubscriptionUsecase) SyncFromExternalOrder(ctx context.Context, input *entities.ExternalOrderInput) (*entities.ExternalOrderResult, error) {
	if err := u.checkAPIKey(input.APIKey); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(input.OwnerEmail))
	phone := strings.TrimSpace(input.OwnerPhone)
	if email == "" && phone == "" {
		return nil, domainerrors.BadRequest("owner_email or owner_phone is required")
	}

	payload := map[string]interface{}{
		"order_id": input.OrderID,
		"amount":   input.Amount,
		"months":   input.Months,
	}

	existing, err := u.repos.Establishments.FindByOwnerContact(ctx, email, phone)
	switch {
	case err == nil:
		est, err := u.renew(ctx, existing.ID, input.Months, entities.SubscriptionSourceExternalOrder, payload)
		if err != nil {
			return nil, err
		}
		u.notifier.Enqueue(ctx, messaging.Message{
			Kind:            messaging.KindUpgrade,
			EstablishmentID: est.ID,
			Number:          est.OwnerPhone,
			Text:            upgradeMessage(est, u.cfg.Location),
		})
		return &entities.ExternalOrderResult{EstablishmentID: est.ID, Slug: est.Slug, PaidUntil: est.PaidUntil.Time}, nil
	case !errors.Is(err, domainerrors.ErrNotFound):
		return nil, err
	}

	est, password, err := u.provision(ctx, input.StoreName, email, phone)
	if err != nil {
		return nil, err
	}
	est, err = u.renew(ctx, est.ID, input.Months, entities.SubscriptionSourceExternalOrder, payload)
	if err != nil {
		return nil, err
	}

	u.notifier.Enqueue(ctx, messaging.Message{
		Kind:            messaging.KindWelcome,
		EstablishmentID: est.ID,
		Number:          est.OwnerPhone,
		Text:            welcomeMessage(est, password, u.cfg.Location),
	})
	return &entities.ExternalOrderResult{EstablishmentID: est.ID, Slug: est.Slug, Created: true, PaidUntil: est.PaidUntil.Time}, nil
}

// provision creates a ready to use establishment with starter data in one transaction
func (u *SubscriptionUsecase) provision(ctx context.Context, storeName, email, phone string) (*entities.Establishment, string, error) {
	storeName = strings.TrimSpace(storeName)
	if storeName == "" {
		return nil, "", domainerrors.BadRequest("store_name is required")
	}

	freePlan, err := u.repos.Plans.GetByCode(ctx, entities.PlanCodeFree)
	if err != nil {
		return nil, "", fmt.Errorf("load free plan: %w", err)
	}
	password, err := tempPassword(temporaryPasswordLen)
	if err != nil {
		return nil, "", err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, "", err
	}

	est := &entities.Establishment{
		Name:         storeName,
		OwnerEmail:   email,
		OwnerPhone:   phone,
		PasswordHash: hash,
		PlanID:       freePlan.ID,
		Plan:         freePlan,
		Status:       entities.EstablishmentStatusActive,
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		slug, err := uniqueSlug(txCtx, u.repos.Establishments, storeName)
		if err != nil {
			return err
		}
		est.Slug = slug

		if err := u.repos.Establishments.Create(txCtx, est); err != nil {
			return err
		}
		if err := u.repos.Settings.Upsert(txCtx, est.ID, entities.DefaultSettings(storeName)); err != nil {
			return err
		}
		if err := u.repos.Categories.Create(txCtx, &entities.Category{EstablishmentID: est.ID, Name: "Geral"}); err != nil {
			return err
		}
		if err := u.repos.Neighborhoods.Create(txCtx, &entities.Neighborhood{EstablishmentID: est.ID, Name: "Centro"}); err != nil {
			return err
		}
		for n := 1; n <= provisionedTables; n++ {
			if err := u.repos.Tables.Create(txCtx, &entities.Table{EstablishmentID: est.ID, Number: n, Status: entities.TableStatusAvailable}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	logger.Info(ctx, "Establishment provisioned from external order", zap.Int64("establishment_id", est.ID), zap.String("slug", est.Slug))
	return est, password, nil
}

// Status describes where the establishment is in its billing lifecycle
func (u *SubscriptionUsecase) Status(ctx context.Context, est *entities.Establishment, now time.Time) (*entities.SubscriptionOverview, error) {
	plan := est.Plan
	if plan == nil {
		var err error
		plan, err = u.repos.Plans.GetByID(ctx, est.PlanID)
		if err != nil {
			return nil, err
		}
	}

	overview := &entities.SubscriptionOverview{
		PlanCode:    plan.Code,
		PlanName:    plan.Name,
		Status:      est.Status,
		State:       entities.LifecycleFree,
		PaidUntil:   est.PaidUntil,
		TrialEndsAt: est.TrialEndsAt,
	}

	if est.PaidUntil.Valid {
		days := daysBetween(now, est.PaidUntil.Time, u.cfg.Location)
		overview.DaysRemaining = null.IntFrom(max(days, 0))
		overview.State = lifecycleState(plan.IsPremium(), days)
	}

	pending, err := u.repos.Subscriptions.GetLatestPending(ctx, est.ID)
	switch {
	case err == nil:
		overview.Pending = pending
	case !errors.Is(err, domainerrors.ErrNotFound):
		return nil, err
	}
	return overview, nil
}

func lifecycleState(premium bool, days int) string {
	switch {
	case days < 0:
		return entities.LifecycleExpired
	case !premium:
		return entities.LifecycleFree
	case days <= 3:
		return entities.LifecycleExpiring3d
	case days <= 7:
		return entities.LifecycleExpiring7d
	default:
		return entities.LifecyclePremiumActive
	}
}

func (u *SubscriptionUsecase) checkAPIKey(key string) error {
	if u.cfg.WebhookAPIKey == "" || !crypto.ConstantTimeEqual(key, u.cfg.WebhookAPIKey) {
		return domainerrors.Unauthorized("invalid api key")
	}
	return nil
}

func marshalPayload(payload interface{}) (datatypes.JSON, error) {
	if payload == nil {
		return nil, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal subscription payload: %w", err)
	}
	return datatypes.JSON(raw), nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func reminder7dMessage(est *entities.Establishment, loc *time.Location) string {
	return fmt.Sprintf("Olá! O plano Premium de *%s* vence em 7 dias (%s). Renove para continuar com todos os recursos.",
		est.Name, est.PaidUntil.Time.In(loc).Format(dateLayoutBR))
}

func reminder3dMessage(est *entities.Establishment, loc *time.Location) string {
	return fmt.Sprintf("*Atenção:* o plano Premium de *%s* vence em 3 dias (%s). Renove agora para não perder os recursos Premium.",
		est.Name, est.PaidUntil.Time.In(loc).Format(dateLayoutBR))
}

func expiredMessage(est *entities.Establishment) string {
	return fmt.Sprintf("O plano Premium de *%s* expirou e a loja voltou para o plano Gratuito. Renove para reativar os recursos Premium.", est.Name)
}

func operatorExpiredMessage(est *entities.Establishment) string {
	return fmt.Sprintf("Plano expirado: %s (%s) voltou para o plano Gratuito. Contato: %s %s",
		est.Name, est.Slug, est.OwnerPhone, est.OwnerEmail)
}

func renewedMessage(est *entities.Establishment, loc *time.Location) string {
	return fmt.Sprintf("Pagamento confirmado! O plano Premium de *%s* está ativo até %s.",
		est.Name, est.PaidUntil.Time.In(loc).Format(dateLayoutBR))
}

func upgradeMessage(est *entities.Establishment, loc *time.Location) string {
	return fmt.Sprintf("Seu plano foi atualizado para Premium! A loja *%s* está ativa até %s.",
		est.Name, est.PaidUntil.Time.In(loc).Format(dateLayoutBR))
}

func welcomeMessage(est *entities.Establishment, password string, loc *time.Location) string {
	return fmt.Sprintf("Bem-vindo ao MaisQueCardapio! Sua loja *%s* foi criada.\n\n*Endereço:* %s\n*Senha temporária:* %s\n\nPlano Premium ativo até %s.",
		est.Name, est.Slug, password, est.PaidUntil.Time.In(loc).Format(dateLayoutBR))
}
