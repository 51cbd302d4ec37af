// File: internal/backend/admin.go
package backend

import (
	"context"
	"net/http"
	"net/url"

	"telegram-robux-store/internal/domain/model"
)

// Admin-only calls. The backend enforces the role from the x-telegram-id
// header; the bot only checks it up front for UX.

func (c *Client) AdminOrdersSummary(ctx context.Context, tgID int64) (*model.OrdersSummary, error) {
	var out model.OrdersSummary
	if err := c.do(ctx, "AdminOrdersSummary", http.MethodGet, "/api/admin/orders", tgID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminPayments(ctx context.Context, tgID int64) ([]model.AdminPayment, error) {
	var out struct {
		Payments []model.AdminPayment `json:"payments"`
	}
	if err := c.do(ctx, "AdminPayments", http.MethodGet, "/api/admin/payments", tgID, nil, &out); err != nil {
		return nil, err
	}
	return out.Payments, nil
}

func (c *Client) AdminUsers(ctx context.Context, tgID int64, search string) ([]model.AdminUser, error) {
	path := "/api/admin/users"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}
	var out struct {
		Users []model.AdminUser `json:"users"`
	}
	if err := c.do(ctx, "AdminUsers", http.MethodGet, path, tgID, nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *Client) AdminLogs(ctx context.Context, tgID int64) ([]model.LogEntry, error) {
	var out struct {
		Logs []model.LogEntry `json:"logs"`
	}
	if err := c.do(ctx, "AdminLogs", http.MethodGet, "/api/admin/logs", tgID, nil, &out); err != nil {
		return nil, err
	}
	return out.Logs, nil
}

func (c *Client) AdminCryptoBotCheck(ctx context.Context, tgID int64) (*model.CryptoBotStatus, error) {
	var out model.CryptoBotStatus
	if err := c.do(ctx, "AdminCryptoBotCheck", http.MethodGet, "/api/admin/crypto-bot/check", tgID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminCryptoBotRate(ctx context.Context, tgID int64) (*model.CryptoBotRate, error) {
	var out model.CryptoBotRate
	if err := c.do(ctx, "AdminCryptoBotRate", http.MethodGet, "/api/admin/crypto-bot/rate", tgID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminRbxBalance(ctx context.Context, tgID int64) (*model.RbxBalance, error) {
	var out model.RbxBalance
	if err := c.do(ctx, "AdminRbxBalance", http.MethodGet, "/api/admin/rbx/balance", tgID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminRbxStock(ctx context.Context, tgID int64) ([]model.RbxStockAccount, error) {
	var out struct {
		Accounts []model.RbxStockAccount `json:"accounts"`
	}
	if err := c.do(ctx, "AdminRbxStock", http.MethodGet, "/api/admin/rbx/stock/detailed", tgID, nil, &out); err != nil {
		return nil, err
	}
	return out.Accounts, nil
}

func (c *Client) AdminRbxOrderInfo(ctx context.Context, tgID int64, orderID string) (*model.RbxOrderInfo, error) {
	var out model.RbxOrderInfo
	payload := map[string]any{"orderId": orderID}
	if err := c.do(ctx, "AdminRbxOrderInfo", http.MethodPost, "/api/admin/rbx/orders/info", tgID, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminRbxOrderResend(ctx context.Context, tgID int64, orderID string, placeID int64) error {
	payload := map[string]any{"orderId": orderID, "placeId": placeID}
	return c.do(ctx, "AdminRbxOrderResend", http.MethodPost, "/api/admin/rbx/orders/resend", tgID, payload, nil)
}

func (c *Client) AdminRbxOrderVIPServer(ctx context.Context, tgID int64, orderID, robloxUsername string, amount int, placeID int64) error {
	payload := map[string]any{
		"orderId":        orderID,
		"robloxUsername": robloxUsername,
		"amount":         amount,
		"placeId":        placeID,
	}
	return c.do(ctx, "AdminRbxOrderVIPServer", http.MethodPost, "/api/admin/rbx/orders/vip-server", tgID, payload, nil)
}

func (c *Client) AdminSettings(ctx context.Context, tgID int64) (model.StoreSettings, error) {
	var out model.StoreSettings
	if err := c.do(ctx, "AdminSettings", http.MethodGet, "/api/admin/settings", tgID, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdminUpdateSettings(ctx context.Context, tgID int64, patch model.StoreSettings) error {
	return c.do(ctx, "AdminUpdateSettings", http.MethodPatch, "/api/admin/settings", tgID, patch, nil)
}
