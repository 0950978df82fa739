package model

import "time"

// -----------------------------------------------------------------------------
// Database Records
// -----------------------------------------------------------------------------

// VerificationRecord is the latest verification request for a wallet (Poktpool wallet_verf_req).
type VerificationRecord struct {
	WalletAddress string  `json:"wallet_address"`
	ReqTimestamp  string  `json:"req_timestamp"` // ISO-8601, UTC
	VerfAmount    float64 `json:"verf_amount"`   // Amount requested
}

// TransactionRecord is an observed on-chain transfer (Waxtrax network_txn).
type TransactionRecord struct {
	NetworkID         int64   `json:"network_id"`
	NetworkTxnHash    string  `json:"network_txn_hash"`
	FromWalletAddress string  `json:"from_wallet_address"`
	ToWalletAddress   string  `json:"to_wallet_address"`
	Amount            float64 `json:"amount"` // Amount sent
}

// -----------------------------------------------------------------------------
// Derived Values
// -----------------------------------------------------------------------------

// Status classifies a report.
type Status string

const (
	StatusSuccess      Status = "success"      // sent >= requested
	StatusInsufficient Status = "insufficient" // sent < requested
	StatusError        Status = "error"        // at least one record missing
)

// Summary is the comparison of one verification against one transaction.
type Summary struct {
	Difference float64 `json:"difference"`
	Status     Status  `json:"status"`
}

// DatabaseStatus is the outcome of one liveness probe.
type DatabaseStatus struct {
	Connected   bool      `json:"connected"`
	LatencyMs   int64     `json:"latency"`
	Error       string    `json:"error,omitempty"`
	LastChecked time.Time `json:"lastChecked"`
}
