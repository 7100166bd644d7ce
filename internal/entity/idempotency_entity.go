package entity

// IdempotentResponse is a stored HTTP response replayed for a repeated Idempotency-Key.
type IdempotentResponse struct {
	Pending     bool   `json:"pending"`
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}
