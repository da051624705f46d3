package models

// ChargeRequest carries an opaque token from the payment processor's client SDK; card data never reaches this service.
type ChargeRequest struct {
	BookingID    int64  `json:"bookingId"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency,omitempty"`
	PaymentToken string `json:"paymentToken"`
}

type ChargeResult struct {
	ChargeID  string `json:"chargeId"`
	BookingID int64  `json:"bookingId"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}
