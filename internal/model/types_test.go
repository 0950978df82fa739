package model

import (
	"encoding/json"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

func TestVerificationFromRow(t *testing.T) {
	ts := time.Date(2024, 1, 15, 12, 30, 45, 123000000, time.UTC)

	tests := []struct {
		name    string
		row     map[string]any
		want    VerificationRecord
		wantErr string
	}{
		{
			name: "float amount and timestamptz",
			row: map[string]any{
				"wallet_address": "0xabc",
				"req_timestamp":  ts,
				"verf_amount":    100.0,
			},
			want: VerificationRecord{WalletAddress: "0xabc", ReqTimestamp: "2024-01-15T12:30:45.123Z", VerfAmount: 100},
		},
		{
			name: "numeric amount",
			row: map[string]any{
				"wallet_address": "0xabc",
				"req_timestamp":  "2024-01-15 12:30:45",
				"verf_amount":    pgtype.Numeric{Int: big.NewInt(1234567), Exp: -2, Valid: true},
			},
			want: VerificationRecord{WalletAddress: "0xabc", ReqTimestamp: "2024-01-15 12:30:45", VerfAmount: 12345.67},
		},
		{
			name: "bigint amount in micro units",
			row: map[string]any{
				"wallet_address": "0xabc",
				"req_timestamp":  pgtype.Timestamp{Time: ts, Valid: true},
				"verf_amount":    int64(1500000),
			},
			want: VerificationRecord{WalletAddress: "0xabc", ReqTimestamp: "2024-01-15T12:30:45.123Z", VerfAmount: 1500000},
		},
		{
			name: "missing column",
			row: map[string]any{
				"wallet_address": "0xabc",
				"verf_amount":    1.0,
			},
			wantErr: `column "req_timestamp" missing from result`,
		},
		{
			name: "null amount",
			row: map[string]any{
				"wallet_address": "0xabc",
				"req_timestamp":  ts,
				"verf_amount":    nil,
			},
			wantErr: `column "verf_amount" is null`,
		},
		{
			name: "numeric NaN amount",
			row: map[string]any{
				"wallet_address": "0xabc",
				"req_timestamp":  ts,
				"verf_amount":    pgtype.Numeric{NaN: true, Valid: true},
			},
			wantErr: `column "verf_amount" is not a finite number: NaN`,
		},
		{
			name: "numeric infinite amount",
			row: map[string]any{
				"wallet_address": "0xabc",
				"req_timestamp":  ts,
				"verf_amount":    pgtype.Numeric{InfinityModifier: pgtype.Infinity, Valid: true},
			},
			wantErr: `column "verf_amount" is not a finite number: +Inf`,
		},
		{
			name: "NaN text amount",
			row: map[string]any{
				"wallet_address": "0xabc",
				"req_timestamp":  ts,
				"verf_amount":    "NaN",
			},
			wantErr: `column "verf_amount" is not a finite number: NaN`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := VerificationFromRow(tt.row)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTransactionFromRow(t *testing.T) {
	row := map[string]any{
		"network_id":          int32(2),
		"network_txn_hash":    "0xdef",
		"from_wallet_address": "0xabc",
		"to_wallet_address":   "0xpool",
		"amount":              150.0,
	}

	got, err := TransactionFromRow(row)
	if err != nil {
		t.Fatalf("TransactionFromRow failed: %v", err)
	}

	want := TransactionRecord{
		NetworkID:         2,
		NetworkTxnHash:    "0xdef",
		FromWalletAddress: "0xabc",
		ToWalletAddress:   "0xpool",
		Amount:            150,
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	row["network_id"] = 2.5
	if _, err := TransactionFromRow(row); err == nil || !strings.Contains(err.Error(), "not an integer") {
		t.Errorf("fractional network_id error = %v", err)
	}

	row["network_id"] = int64(2)
	row["amount"] = []int{1}
	if _, err := TransactionFromRow(row); err == nil || !strings.Contains(err.Error(), "unexpected type") {
		t.Errorf("bad amount type error = %v", err)
	}
}

func TestJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(DatabaseStatus{
		Connected:   true,
		LatencyMs:   12,
		LastChecked: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"connected":true,"latency":12,"lastChecked":"2024-01-01T00:00:00Z"}`
	if string(data) != want {
		t.Errorf("DatabaseStatus JSON = %s, want %s", data, want)
	}

	data, err = json.Marshal(Summary{Difference: -0.5, Status: StatusInsufficient})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"difference":-0.5,"status":"insufficient"}` {
		t.Errorf("Summary JSON = %s", data)
	}
}
