package http

// Request and response contracts of the HTTP API. Kept hand-written:
// the surface is small and the floor terminals consume it directly.

// Error is the uniform error body.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ScanRequest registers one barcode scan against an order.
type ScanRequest struct {
	ItemCode   string   `json:"itemCode"`
	Delta      float64  `json:"delta"`
	OrderedQty *float64 `json:"orderedQty,omitempty"`
	ActingUser string   `json:"actingUser"`
}

// ScanResponse reports the scan outcome and the authoritative
// post-increment quantity.
type ScanResponse struct {
	Outcome        string  `json:"outcome"`
	ItemCode       string  `json:"itemCode"`
	QuantityPicked float64 `json:"quantityPicked"`
	Limit          float64 `json:"limit"`
	Message        string  `json:"message,omitempty"`
}

// ItemQuantitiesResponse is the snapshot of one pick line.
type ItemQuantitiesResponse struct {
	OrderID         int64   `json:"orderId"`
	ItemCode        string  `json:"itemCode"`
	QuantityPicked  float64 `json:"quantityPicked"`
	QuantityOrdered float64 `json:"quantityOrdered"`
	Missing         float64 `json:"missing"`
}

// CompletionLine is one pick line snapshot the caller submits with a
// completion request.
type CompletionLine struct {
	LineID          int64   `json:"lineId"`
	ItemCode        string  `json:"itemCode"`
	WarehouseID     int     `json:"warehouseId"`
	QuantityOrdered float64 `json:"quantityOrdered"`
}

// CompletionRequest triggers the completion of an order.
type CompletionRequest struct {
	PackageCount int                `json:"packageCount"`
	ActingUser   string             `json:"actingUser"`
	Lines        []CompletionLine   `json:"lines"`
	Picked       map[string]float64 `json:"picked"`
}

// CompletionResponse reports the completion outcome.
type CompletionResponse struct {
	Outcome      string `json:"outcome"`
	OrderNumber  string `json:"orderNumber,omitempty"`
	PackageCount int    `json:"packageCount,omitempty"`
	Message      string `json:"message,omitempty"`
}

// CompletionLockResponse reports the observed state of an order's
// completion lock.
type CompletionLockResponse struct {
	OrderID   int64  `json:"orderId"`
	LockName  string `json:"lockName"`
	Held      bool   `json:"held"`
	SessionID int    `json:"sessionId,omitempty"`
}

// PendingOrderResponse is one entry of the completion work queue.
type PendingOrderResponse struct {
	OrderID      int64  `json:"orderId"`
	OrderNumber  string `json:"orderNumber"`
	Status       string `json:"status"`
	CustomerCode string `json:"customerCode,omitempty"`
	EnqueuedAt   string `json:"enqueuedAt"`
}

// LoadPackageRequest marks one shipment package as loaded.
type LoadPackageRequest struct {
	ActingUser string `json:"actingUser"`
}
