package payment

// OutcomeStatus classifies what a ProcessPayment call did.
type OutcomeStatus string

const (
	// OutcomeApplied: the ledger entry was written and the kind's side
	// effect (credit, order finalization, role upgrade) ran, exactly once.
	OutcomeApplied OutcomeStatus = "applied"

	// OutcomeAlreadyProcessed: the reference was seen before; nothing was
	// written on this call.
	OutcomeAlreadyProcessed OutcomeStatus = "already_processed"

	// OutcomeReconciliationRequired: the payment verified and was recorded,
	// but could not be fully applied (no matching user, order, or amount).
	// The money is in the ledger awaiting manual review; it is never dropped.
	OutcomeReconciliationRequired OutcomeStatus = "reconciliation_required"

	// OutcomeFailed: the gateway reported the payment did not succeed.
	// Terminal, no ledger effect.
	OutcomeFailed OutcomeStatus = "failed"
)

// Outcome is the result of one ProcessPayment call.
type Outcome struct {
	Status     OutcomeStatus `json:"status"`
	Reference  string        `json:"reference"`
	Amount     float64       `json:"amount,omitempty"`
	NewBalance float64       `json:"new_balance,omitempty"`
	Reason     string        `json:"reason,omitempty"`
}
