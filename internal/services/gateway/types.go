package gateway

import "context"

// VerifiedPayment is the gateway's answer for one reference. Amount is in
// the gateway's minor currency unit; divide by 100 before any ledger effect.
type VerifiedPayment struct {
	Reference     string
	Status        string
	Amount        int64
	CustomerEmail string
}

// MajorAmount converts the minor-unit amount to the ledger's unit.
func (p *VerifiedPayment) MajorAmount() float64 {
	return float64(p.Amount) / 100
}

// Client verifies payments by reference against the external gateway. Only
// the gateway's returned status is trusted; a client-supplied "I paid" flag
// never is.
type Client interface {
	Verify(ctx context.Context, reference string) (*VerifiedPayment, error)
}
