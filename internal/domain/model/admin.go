package model

// Read-only aggregates rendered by the admin views. The backend computes
// them, the bot only formats.

type OrdersSummary struct {
	TotalOrders     int     `json:"totalOrders"`
	PendingOrders   int     `json:"pendingOrders"`
	CompletedOrders int     `json:"completedOrders"`
	FailedOrders    int     `json:"failedOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
}

type AdminPayment struct {
	ID       string  `json:"id"`
	UserID   string  `json:"userId"`
	Amount   float64 `json:"amount"`
	Status   string  `json:"status"`
	Method   string  `json:"method"`
	Created  string  `json:"createdAt"`
	Provider string  `json:"provider"`
}

type AdminUser struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Balance  float64 `json:"balance"`
	Role     string  `json:"role"`
	IsBanned bool    `json:"isBanned"`
}

type LogEntry struct {
	Time    string `json:"createdAt"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

type RbxBalance struct {
	Balance int `json:"balance"`
}

type RbxStockAccount struct {
	Name    string `json:"name"`
	Balance int    `json:"balance"`
}

type CryptoBotStatus struct {
	OK      bool   `json:"ok"`
	AppName string `json:"appName"`
	Error   string `json:"error"`
}

type CryptoBotRate struct {
	Rate float64 `json:"rate"` // RUB → USDT
}

type RbxOrderInfo struct {
	OrderID  string `json:"orderId"`
	Status   string `json:"status"`
	Username string `json:"username"`
	Amount   int    `json:"amount"`
	PlaceID  int64  `json:"placeId"`
	Error    string `json:"error"`
}

// StoreSettings is the editable settings document. Keys not understood by
// the bot are preserved as-is so a partial PATCH never clobbers them.
type StoreSettings map[string]any
