package model

// DTOs exchanged with the storefront backend. Field names mirror the
// backend's JSON contract (camelCase), the backend stays the source of truth
// for all of them.

// Profile is the backend's view of a storefront user.
type Profile struct {
	ID              string  `json:"id"`
	Username        string  `json:"username"`
	FirstName       string  `json:"firstName"`
	Role            string  `json:"role"` // "user" | "admin"
	Balance         float64 `json:"balance"`
	BybitUID        string  `json:"bybitUid"`
	ReferralBalance float64 `json:"referralBalance"`
}

func (p Profile) IsAdmin() bool { return p.Role == "admin" }

// Payment is one wallet history entry.
type Payment struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
	Method string  `json:"method"`
}

// Order is one purchase order as reported by the backend.
type Order struct {
	ID        string `json:"id"`
	Status    string `json:"status"` // pending | completed | failed
	Username  string `json:"username"`
	Amount    int    `json:"amount"`
	PlaceID   string `json:"placeId"`
	CreatedAt string `json:"createdAt"`
}

// ReferralStats aggregates a user's referral program standing.
type ReferralStats struct {
	ReferralBalance float64 `json:"referralBalance"`
	ReferralsCount  int     `json:"referralsCount"`
	ReferralPercent float64 `json:"referralPercent"`
}

// PublicSettings is the unauthenticated store configuration blob.
type PublicSettings struct {
	Rate          float64 `json:"rate"` // RUB per 1 R$
	SupportLink   string  `json:"supportLink"`
	FaqURL        string  `json:"faqUrl"`
	Maintenance   bool    `json:"maintenance"`
	OrdersEnabled bool    `json:"ordersEnabled"`
	TopupEnabled  bool    `json:"topupEnabled"`
}

// StockSummary reports how much currency is currently sellable.
type StockSummary struct {
	RobuxAvailable int `json:"robuxAvailable"`
}

// TopupInvoice is returned when a top-up request is created.
type TopupInvoice struct {
	PaymentID  string `json:"paymentId"`
	PaymentURL string `json:"paymentUrl"`
}

// OrderStatusEvent is one status change reported by the sync endpoint.
// UserID is a string on the wire: non-numeric values identify web-only
// accounts that have no chat to notify.
type OrderStatusEvent struct {
	UserID   string `json:"userId"`
	OrderID  string `json:"orderId"`
	Amount   int    `json:"amount"`
	Status   string `json:"status"` // completed | failed
	Refunded bool   `json:"refunded"`
}

// OrderStatusCompleted and friends are the statuses the poller reacts to.
const (
	OrderStatusCompleted = "completed"
	OrderStatusFailed    = "failed"
	OrderStatusPending   = "pending"
)
