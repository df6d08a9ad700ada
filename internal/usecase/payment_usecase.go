package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"instala_control/internal/domain/entities"
	"instala_control/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPaymentPayload          = errors.New("invalid mercado pago payload")
	ErrInvalidPaymentAmount           = errors.New("payment amount must be positive")
	ErrPaymentExceedsBalance          = errors.New("payment amount exceeds the budget balance")
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// PaymentOptions configures how deposits are charged.
type PaymentOptions struct {
	// Mock skips the gateway and approves every charge locally.
	Mock bool
	// SandboxPayerEmail is used when the payload names no payer.
	SandboxPayerEmail string
}

// ChargeInput is one deposit against a budget. A nil Amount charges the
// outstanding balance.
type ChargeInput struct {
	Amount  *decimal.Decimal
	Payload json.RawMessage
}

type IPaymentUseCase interface {
	Charge(ctx context.Context, userID, budgetID string, in ChargeInput) (entities.Payment, error)
	ListByBudget(ctx context.Context, userID, budgetID string) ([]entities.Payment, error)
}

type PaymentUseCase struct {
	repo       interfaces.IPaymentRepository
	budgetRepo interfaces.IBudgetRepository
	gateway    interfaces.IPaymentGateway
	opts       PaymentOptions
	now        func() time.Time
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(repo interfaces.IPaymentRepository, budgetRepo interfaces.IBudgetRepository, gateway interfaces.IPaymentGateway, opts PaymentOptions) *PaymentUseCase {
	return &PaymentUseCase{repo: repo, budgetRepo: budgetRepo, gateway: gateway, opts: opts, now: time.Now}
}

// Charge sends a Mercado Pago payment for a budget and stores the provider
// response. transaction_amount is always overwritten with the requested amount
// or, when none is given, the budget's open balance.
func (u *PaymentUseCase) Charge(ctx context.Context, userID, budgetID string, in ChargeInput) (entities.Payment, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return entities.Payment{}, err
	}
	budgetID = strings.TrimSpace(budgetID)
	if budgetID == "" {
		return entities.Payment{}, ErrInvalidBudgetID
	}
	log.Printf("[payment][usecase] charge start user_id=%s budget_id=%s payload_len=%d mock=%t", userID, budgetID, len(in.Payload), u.opts.Mock)

	payload := in.Payload
	if len(payload) == 0 || !json.Valid(payload) {
		if !u.opts.Mock {
			log.Printf("[payment][usecase] invalid payload budget_id=%s", budgetID)
			return entities.Payment{}, ErrInvalidPaymentPayload
		}
		payload = json.RawMessage("{}")
	}
	if !u.opts.Mock && u.gateway == nil {
		return entities.Payment{}, ErrPaymentGatewayNotConfigured
	}

	b, err := u.budgetRepo.GetByID(ctx, userID, budgetID)
	if err != nil {
		log.Printf("[payment][usecase] failed loading budget budget_id=%s err=%v", budgetID, err)
		return entities.Payment{}, err
	}
	if b.ID == "" {
		return entities.Payment{}, ErrBudgetNotFound
	}

	amount, err := u.amountFor(ctx, b, in.Amount)
	if err != nil {
		return entities.Payment{}, err
	}

	var req map[string]any
	if err := json.Unmarshal(payload, &req); err != nil || req == nil {
		return entities.Payment{}, ErrInvalidPaymentPayload
	}
	if !u.opts.Mock {
		if !hasNonEmptyString(req, "payment_method_id") {
			log.Printf("[payment][usecase] missing payment_method_id budget_id=%s", budgetID)
			return entities.Payment{}, ErrInvalidPaymentPayload
		}
		ensurePayerDefaults(req, u.opts.SandboxPayerEmail)
		if !hasPayer(req) {
			log.Printf("[payment][usecase] missing/invalid payer budget_id=%s", budgetID)
			return entities.Payment{}, ErrInvalidPaymentPayload
		}
	}
	if _, ok := req["external_reference"]; !ok {
		req["external_reference"] = b.ID
	}
	if _, ok := req["description"]; !ok {
		req["description"] = fmt.Sprintf("Orçamento #%s - %s", b.BudgetNumber, b.ClientData.Name)
	}
	req["transaction_amount"] = amount.InexactFloat64()
	if payload, err = json.Marshal(req); err != nil {
		return entities.Payment{}, err
	}

	var (
		providerID     string
		providerStatus string
		providerResp   json.RawMessage
	)
	if u.opts.Mock {
		log.Printf("[payment][usecase] mock mode; skipping gateway budget_id=%s", budgetID)
		providerID, providerStatus, providerResp, err = u.mockCharge(req)
	} else {
		providerID, providerStatus, providerResp, err = u.gateway.CreatePayment(ctx, payload)
		err = mapGatewayError(err)
	}
	if err != nil {
		log.Printf("[payment][usecase] gateway failed budget_id=%s err=%v", budgetID, err)
		return entities.Payment{}, err
	}
	log.Printf("[payment][usecase] gateway success budget_id=%s provider_payment_id=%s provider_status=%s", budgetID, providerID, providerStatus)

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Printf("[payment][usecase] provider response unmarshal failed budget_id=%s err=%v", budgetID, err)
	}

	p := entities.Payment{
		ID:                 providerID,
		UserID:             userID,
		BudgetID:           b.ID,
		Date:               u.now().UTC(),
		Status:             statusFromProvider(providerStatus),
		Amount:             amount,
		ProviderPayloadRaw: providerResp,
		ProviderPayload:    parsed,
	}
	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Printf("[payment][usecase] repository create failed budget_id=%s payment_id=%s err=%v", budgetID, p.ID, err)
		return entities.Payment{}, err
	}
	log.Printf("[payment][usecase] charge done budget_id=%s payment_id=%s status=%s amount=%s", budgetID, created.ID, created.Status, created.Amount.StringFixed(2))
	return created, nil
}

// amountFor defaults to the outstanding balance: budget total minus every
// approved payment so far.
func (u *PaymentUseCase) amountFor(ctx context.Context, b entities.Budget, requested *decimal.Decimal) (decimal.Decimal, error) {
	paid := decimal.Zero
	prior, err := u.repo.ListByBudgetID(ctx, b.UserID, b.ID)
	if err != nil {
		return decimal.Zero, err
	}
	for _, p := range prior {
		if p.Status == entities.PaymentStatusAprovado {
			paid = paid.Add(p.Amount)
		}
	}
	balance := b.Total.Sub(paid)

	amount := balance
	if requested != nil {
		amount = requested.Round(2)
	}
	if !amount.IsPositive() {
		if requested == nil {
			return decimal.Zero, ErrPaymentExceedsBalance
		}
		return decimal.Zero, ErrInvalidPaymentAmount
	}
	if amount.GreaterThan(balance) {
		return decimal.Zero, ErrPaymentExceedsBalance
	}
	return amount, nil
}

func (u *PaymentUseCase) mockCharge(req map[string]any) (string, string, json.RawMessage, error) {
	id := strconv.FormatInt(u.now().UTC().UnixNano(), 10)
	at := u.now().UTC().Format(time.RFC3339Nano)
	resp := make(map[string]any, len(req)+5)
	for k, v := range req {
		resp[k] = v
	}
	resp["id"] = id
	resp["status"] = "approved"
	resp["status_detail"] = "accredited"
	resp["date_created"] = at
	resp["date_approved"] = at
	b, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	return id, "approved", b, nil
}

func (u *PaymentUseCase) ListByBudget(ctx context.Context, userID, budgetID string) ([]entities.Payment, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return nil, err
	}
	budgetID = strings.TrimSpace(budgetID)
	if budgetID == "" {
		return nil, ErrInvalidBudgetID
	}
	return u.repo.ListByBudgetID(ctx, userID, budgetID)
}

func statusFromProvider(s string) entities.PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approved", "authorized":
		return entities.PaymentStatusAprovado
	case "rejected", "cancelled", "refunded", "charged_back":
		return entities.PaymentStatusNegado
	default:
		return entities.PaymentStatusPendente
	}
}

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

func ensurePayerDefaults(m map[string]any, sandboxEmail string) {
	if m["payer"] == nil {
		m["payer"] = map[string]any{}
	}
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}
	if !hasPayerID(payer) && !hasNonEmptyString(payer, "email") && sandboxEmail != "" {
		payer["email"] = sandboxEmail
	}
}

func mapGatewayError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002"):
		return ErrPaymentGatewayCustomerNotFound
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034"):
		return ErrPaymentGatewayInvalidUsers
	case strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401"):
		return ErrPaymentGatewayUnauthorized
	case strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400"):
		return ErrPaymentGatewayBadRequest
	}
	return err
}
