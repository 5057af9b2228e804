package transaction

// Status is the lifecycle status of a charge or withdrawal. Values keep the
// wire form used by the original fleet system.
type Status string

const (
	// StatusPending is the initial status of every transaction
	StatusPending Status = "pendiente"
	// StatusValidated marks a transaction approved by a validator (terminal)
	StatusValidated Status = "validada"
	// StatusRejected marks a transaction rejected by a validator; its ledger
	// effect has been reversed and it may be soft-deleted
	StatusRejected Status = "rechazada"
)

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsValid returns true if the status is a known value
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusValidated, StatusRejected:
		return true
	}
	return false
}

// IsTerminal returns true if no further status transition is permitted
func (s Status) IsTerminal() bool {
	return s == StatusValidated || s == StatusRejected
}
