// File: internal/backend/client.go
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"telegram-robux-store/internal/domain/model"
	"telegram-robux-store/internal/infra/logging"
	"telegram-robux-store/internal/infra/metrics"
)

// Client maps each outbound intent onto one HTTP call against the storefront
// backend. It is stateless and safe for concurrent use; it performs no
// retries and no caching of its own.
type Client struct {
	baseURL  string
	botToken string
	http     *http.Client
	log      *zerolog.Logger
}

func NewClient(baseURL, botToken string, timeout time.Duration, logger *zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	compLog := logger.With().Str("component", "BackendClient").Logger()
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		botToken: botToken,
		http:     &http.Client{Timeout: timeout},
		log:      &compLog,
	}
}

// headers sets the caller-identity pair on every authenticated request.
func (c *Client) headers(req *http.Request, tgID int64) {
	req.Header.Set("x-bot-token", c.botToken)
	if tgID != 0 {
		req.Header.Set("x-telegram-id", strconv.FormatInt(tgID, 10))
	}
}

func (c *Client) do(ctx context.Context, op, method, path string, tgID int64, body any, out any) error {
	defer logging.TraceDuration(logging.With(ctx, c.log), "Client."+op)()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindRejected, Op: op, Message: err.Error()}
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return &Error{Kind: KindRejected, Op: op, Message: err.Error()}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.headers(req, tgID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveBackendRequest(op, 0, time.Since(start))
		return &Error{Kind: KindUnavailable, Op: op, Message: err.Error()}
	}
	defer resp.Body.Close()
	metrics.ObserveBackendRequest(op, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := readErrorMessage(resp.Body)
		return &Error{Kind: classify(resp.StatusCode), Status: resp.StatusCode, Op: op, Message: msg}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindUnavailable, Op: op, Message: fmt.Sprintf("decode response: %v", err)}
	}
	return nil
}

// readErrorMessage pulls the backend's {"error": "..."} body when present.
func readErrorMessage(r io.Reader) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 4096)).Decode(&body); err != nil {
		return ""
	}
	return body.Error
}

// ---- user sync / profile ----

type SyncUserParams struct {
	TgID       int64
	Username   string
	FirstName  string
	PhotoURL   string
	ReferrerID string
}

func (c *Client) SyncUser(ctx context.Context, p SyncUserParams) (*model.Profile, error) {
	payload := map[string]any{
		"id":        strconv.FormatInt(p.TgID, 10),
		"username":  p.Username,
		"firstName": p.FirstName,
	}
	if p.PhotoURL != "" {
		payload["photoUrl"] = p.PhotoURL
	}
	if p.ReferrerID != "" {
		payload["referrerId"] = p.ReferrerID
	}
	var out struct {
		User model.Profile `json:"user"`
	}
	if err := c.do(ctx, "SyncUser", http.MethodPost, "/api/bot/user-sync", 0, payload, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) Me(ctx context.Context, tgID int64) (*model.Profile, error) {
	var out struct {
		User model.Profile `json:"user"`
	}
	if err := c.do(ctx, "Me", http.MethodGet, "/api/me", tgID, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// SetBybitUID stores or clears (empty uid) the user's exchange UID.
func (c *Client) SetBybitUID(ctx context.Context, tgID int64, uid string) error {
	payload := map[string]any{"bybitUid": nil}
	if uid != "" {
		payload["bybitUid"] = uid
	}
	return c.do(ctx, "SetBybitUID", http.MethodPatch, "/api/me/bybit-uid", tgID, payload, nil)
}

// ---- referrals ----

func (c *Client) Referrals(ctx context.Context, tgID int64) (*model.ReferralStats, error) {
	var out model.ReferralStats
	if err := c.do(ctx, "Referrals", http.MethodGet, "/api/bot/referrals", tgID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TransferReferralBalance(ctx context.Context, tgID int64) (float64, error) {
	var out struct {
		Transferred float64 `json:"transferred"`
	}
	if err := c.do(ctx, "TransferReferralBalance", http.MethodPost, "/api/bot/referrals/transfer", tgID, nil, &out); err != nil {
		return 0, err
	}
	return out.Transferred, nil
}

// ---- wallet ----

func (c *Client) WalletHistory(ctx context.Context, tgID int64) ([]model.Payment, error) {
	var out struct {
		Payments []model.Payment `json:"payments"`
	}
	if err := c.do(ctx, "WalletHistory", http.MethodGet, "/api/wallet/history", tgID, nil, &out); err != nil {
		return nil, err
	}
	return out.Payments, nil
}

func (c *Client) CreateTopup(ctx context.Context, tgID int64, amount float64) (*model.TopupInvoice, error) {
	var out model.TopupInvoice
	payload := map[string]any{"amount": amount}
	if err := c.do(ctx, "CreateTopup", http.MethodPost, "/api/wallet/topup", tgID, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateManualPayment(ctx context.Context, tgID int64, amount float64, method string, providerData map[string]any) error {
	payload := map[string]any{
		"amount":       amount,
		"method":       method,
		"providerData": providerData,
	}
	return c.do(ctx, "CreateManualPayment", http.MethodPost, "/api/wallet/manual", tgID, payload, nil)
}

func (c *Client) CreateBybitPayOrder(ctx context.Context, tgID int64, amountRub float64) (*model.TopupInvoice, error) {
	var out model.TopupInvoice
	payload := map[string]any{"telegramId": tgID, "amount": amountRub}
	if err := c.do(ctx, "CreateBybitPayOrder", http.MethodPost, "/api/wallet/bybit/create", tgID, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckBybitPayment confirms a specific payment. A 409 means the payment was
// already processed and is reported as (false, nil), not a failure.
func (c *Client) CheckBybitPayment(ctx context.Context, tgID int64, paymentID string) (bool, error) {
	var out struct {
		Success bool `json:"success"`
	}
	payload := map[string]any{"paymentId": paymentID}
	err := c.do(ctx, "CheckBybitPayment", http.MethodPost, "/api/wallet/bybit/check", tgID, payload, &out)
	if err != nil {
		if IsKind(err, KindConflict) {
			return false, nil
		}
		return false, err
	}
	return out.Success, nil
}

// BybitQuickCheck scans for fresh deposits, returning how many were applied.
func (c *Client) BybitQuickCheck(ctx context.Context, tgID int64) (int, error) {
	var out struct {
		Success   bool   `json:"success"`
		Processed int    `json:"processed"`
		Error     string `json:"error"`
	}
	if err := c.do(ctx, "BybitQuickCheck", http.MethodPost, "/api/wallet/bybit/check", tgID, nil, &out); err != nil {
		return 0, err
	}
	if !out.Success {
		return 0, &Error{Kind: KindRejected, Op: "BybitQuickCheck", Message: out.Error}
	}
	return out.Processed, nil
}

// ---- orders ----

type CreateOrderParams struct {
	Username string
	Amount   int
	PlaceID  string
}

// CreateOrder submits a purchase order. A success=false body is a rejection
// with the backend's reason attached.
func (c *Client) CreateOrder(ctx context.Context, tgID int64, p CreateOrderParams) (string, error) {
	var out struct {
		Success bool   `json:"success"`
		OrderID string `json:"orderId"`
		Error   string `json:"error"`
	}
	payload := map[string]any{
		"username": p.Username,
		"amount":   p.Amount,
		"placeId":  p.PlaceID,
	}
	if err := c.do(ctx, "CreateOrder", http.MethodPost, "/api/orders", tgID, payload, &out); err != nil {
		return "", err
	}
	if !out.Success {
		return "", &Error{Kind: KindRejected, Op: "CreateOrder", Message: out.Error}
	}
	return out.OrderID, nil
}

func (c *Client) MyOrders(ctx context.Context, tgID int64) ([]model.Order, error) {
	var out struct {
		Orders []model.Order `json:"orders"`
	}
	if err := c.do(ctx, "MyOrders", http.MethodGet, "/api/orders/my", tgID, nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

func (c *Client) CancelOrder(ctx context.Context, tgID int64, orderID string) error {
	return c.do(ctx, "CancelOrder", http.MethodPost, "/api/orders/"+url.PathEscape(orderID)+"/cancel", tgID, nil, nil)
}

// ---- public config / stock ----

func (c *Client) PublicSettings(ctx context.Context) (*model.PublicSettings, error) {
	var out model.PublicSettings
	if err := c.do(ctx, "PublicSettings", http.MethodGet, "/api/settings/public", 0, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) StockSummary(ctx context.Context) (*model.StockSummary, error) {
	var out model.StockSummary
	if err := c.do(ctx, "StockSummary", http.MethodGet, "/api/rbx/stock/summary", 0, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---- reconciliation ----

// SyncOrders returns the order status changes accumulated since the previous
// call. Delivery dedup is the backend's bookkeeping, not ours.
func (c *Client) SyncOrders(ctx context.Context) ([]model.OrderStatusEvent, error) {
	var out struct {
		Updates []model.OrderStatusEvent `json:"updates"`
	}
	if err := c.do(ctx, "SyncOrders", http.MethodPost, "/api/bot/sync-orders", 0, nil, &out); err != nil {
		return nil, err
	}
	return out.Updates, nil
}
