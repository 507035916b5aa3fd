package gateway

import "errors"

// Client errors
var (
	// ErrGatewayUnavailable covers timeouts and transport failures. The
	// payment may have succeeded on the gateway side, so callers surface it
	// as "verification pending" and retry; they never report it as a failed
	// payment.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrPaymentNotSuccessful means the gateway answered and the payment did
	// not succeed. Terminal: no ledger effect, the user restarts payment.
	ErrPaymentNotSuccessful = errors.New("payment not successful")

	// ErrReferenceMismatch means the gateway answered for a different
	// reference than the one asked about. Treated as unavailable so the
	// caller retries rather than recording the wrong payment.
	ErrReferenceMismatch = errors.New("gateway response reference mismatch")
)
