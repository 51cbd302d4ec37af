//go:build !integration

// File: internal/backend/client_test.go
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"telegram-robux-store/internal/domain/model"
)

var testLogger = zerolog.Nop()

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "secret-token", 2*time.Second, &testLogger), srv
}

func TestClient_SetsIdentityHeaders(t *testing.T) {
	t.Parallel()

	var gotToken, gotTgID string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("x-bot-token")
		gotTgID = r.Header.Get("x-telegram-id")
		_ = json.NewEncoder(w).Encode(map[string]any{"user": map[string]any{"id": "u1"}})
	})

	if _, err := c.Me(context.Background(), 12345); err != nil {
		t.Fatalf("Me returned error: %v", err)
	}
	if gotToken != "secret-token" {
		t.Fatalf("expected bot token header, got %q", gotToken)
	}
	if gotTgID != "12345" {
		t.Fatalf("expected telegram id header, got %q", gotTgID)
	}
}

func TestClient_OmitsTelegramIDOnPublicCalls(t *testing.T) {
	t.Parallel()

	var sawTgID bool
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		sawTgID = r.Header.Get("x-telegram-id") != ""
		_ = json.NewEncoder(w).Encode(model.PublicSettings{Rate: 0.8})
	})

	settings, err := c.PublicSettings(context.Background())
	if err != nil {
		t.Fatalf("PublicSettings returned error: %v", err)
	}
	if sawTgID {
		t.Fatalf("expected no telegram id header on public call")
	}
	if settings.Rate != 0.8 {
		t.Fatalf("expected rate 0.8, got %v", settings.Rate)
	}
}

func TestClient_ErrorClassification(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status int
		kind   Kind
	}{
		{http.StatusUnauthorized, KindForbidden},
		{http.StatusForbidden, KindForbidden},
		{http.StatusNotFound, KindNotFound},
		{http.StatusConflict, KindConflict},
		{http.StatusBadRequest, KindRejected},
		{http.StatusInternalServerError, KindUnavailable},
	}
	for _, tc := range cases {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "nope"})
		})
		_, err := c.Me(context.Background(), 1)
		if !IsKind(err, tc.kind) {
			t.Fatalf("status %d: expected kind %s, got %v", tc.status, tc.kind, err)
		}
	}
}

func TestClient_NetworkErrorIsUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // refuse all connections
	c := NewClient(srv.URL, "secret", time.Second, &testLogger)

	_, err := c.Me(context.Background(), 1)
	if !IsKind(err, KindUnavailable) {
		t.Fatalf("expected unavailable kind, got %v", err)
	}
}

func TestCreateOrder_RejectionCarriesBackendReason(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   "Недостаточно средств",
		})
	})

	_, err := c.CreateOrder(context.Background(), 1, CreateOrderParams{
		Username: "builderman", Amount: 500, PlaceID: "123",
	})
	if !IsKind(err, KindRejected) {
		t.Fatalf("expected rejection, got %v", err)
	}
	var be *Error
	if !errors.As(err, &be) || be.Message != "Недостаточно средств" {
		t.Fatalf("expected backend reason on error, got %v", err)
	}
}

func TestCreateOrder_Success(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["username"] != "builderman" || body["placeId"] != "123" {
			t.Errorf("unexpected order payload: %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "orderId": "ord-1"})
	})

	id, err := c.CreateOrder(context.Background(), 1, CreateOrderParams{
		Username: "builderman", Amount: 500, PlaceID: "123",
	})
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}
	if id != "ord-1" {
		t.Fatalf("expected order id ord-1, got %q", id)
	}
}

func TestCheckBybitPayment_ConflictMeansAlreadyProcessed(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "already processed"})
	})

	confirmed, err := c.CheckBybitPayment(context.Background(), 1, "pay-1")
	if err != nil {
		t.Fatalf("expected conflict to be absorbed, got %v", err)
	}
	if confirmed {
		t.Fatalf("expected confirmed=false for already processed payment")
	}
}

func TestSyncOrders_DecodesUpdates(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/bot/sync-orders" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"updates": []map[string]any{
				{"userId": "100", "orderId": "o1", "amount": 500, "status": "completed"},
				{"userId": "clx9", "orderId": "o2", "amount": 100, "status": "failed", "refunded": true},
			},
		})
	})

	updates, err := c.SyncOrders(context.Background())
	if err != nil {
		t.Fatalf("SyncOrders returned error: %v", err)
	}
	if len(updates) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(updates))
	}
	if updates[0].UserID != "100" || updates[0].Status != model.OrderStatusCompleted {
		t.Fatalf("unexpected first update: %+v", updates[0])
	}
	if !updates[1].Refunded {
		t.Fatalf("expected refunded flag on second update")
	}
}

func TestSetBybitUID_EmptyClears(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH, got %s", r.Method)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	})

	if err := c.SetBybitUID(context.Background(), 1, ""); err != nil {
		t.Fatalf("SetBybitUID returned error: %v", err)
	}
	if gotBody["bybitUid"] != nil {
		t.Fatalf("expected null uid to clear, got %v", gotBody["bybitUid"])
	}
}

func TestCreateManualPayment_Payload(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/wallet/manual" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	})

	err := c.CreateManualPayment(context.Background(), 1, 500, "bybit", map[string]any{"uid": "u-1"})
	if err != nil {
		t.Fatalf("CreateManualPayment returned error: %v", err)
	}
	if gotBody["method"] != "bybit" || gotBody["amount"] != float64(500) {
		t.Fatalf("unexpected payload: %v", gotBody)
	}
}

func TestAdminUsers_SearchQuery(t *testing.T) {
	t.Parallel()

	var gotQuery string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("search")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"users": []map[string]any{{"id": "u1", "username": "builderman"}},
		})
	})

	users, err := c.AdminUsers(context.Background(), 1, "builder")
	if err != nil {
		t.Fatalf("AdminUsers returned error: %v", err)
	}
	if gotQuery != "builder" {
		t.Fatalf("expected search query, got %q", gotQuery)
	}
	if len(users) != 1 || users[0].Username != "builderman" {
		t.Fatalf("unexpected users: %+v", users)
	}
}
