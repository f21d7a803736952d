package model

// TransactionValidator exposes both phases of transaction
// verification. The two phases stay independently invocable so the
// orchestrator can run the cheap structural phase without touching the
// store.
type TransactionValidator interface {
	TransactionChecker
	TransactionAcceptor
}
