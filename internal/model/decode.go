package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// isoMillis matches JavaScript's Date.toISOString, which is what the UI expects.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

var errNull = errors.New("null value")

// VerificationFromRow maps a wallet_verf_req row onto a VerificationRecord.
func VerificationFromRow(row map[string]any) (VerificationRecord, error) {
	var rec VerificationRecord
	var err error

	if rec.WalletAddress, err = stringColumn(row, "wallet_address"); err != nil {
		return VerificationRecord{}, err
	}
	if rec.ReqTimestamp, err = timestampColumn(row, "req_timestamp"); err != nil {
		return VerificationRecord{}, err
	}
	if rec.VerfAmount, err = floatColumn(row, "verf_amount"); err != nil {
		return VerificationRecord{}, err
	}
	return rec, nil
}

// TransactionFromRow maps a network_txn row onto a TransactionRecord.
func TransactionFromRow(row map[string]any) (TransactionRecord, error) {
	var rec TransactionRecord
	var err error

	if rec.NetworkID, err = intColumn(row, "network_id"); err != nil {
		return TransactionRecord{}, err
	}
	if rec.NetworkTxnHash, err = stringColumn(row, "network_txn_hash"); err != nil {
		return TransactionRecord{}, err
	}
	if rec.FromWalletAddress, err = stringColumn(row, "from_wallet_address"); err != nil {
		return TransactionRecord{}, err
	}
	if rec.ToWalletAddress, err = stringColumn(row, "to_wallet_address"); err != nil {
		return TransactionRecord{}, err
	}
	if rec.Amount, err = floatColumn(row, "amount"); err != nil {
		return TransactionRecord{}, err
	}
	return rec, nil
}

func column(row map[string]any, name string) (any, error) {
	v, ok := row[name]
	if !ok {
		return nil, fmt.Errorf("column %q missing from result", name)
	}
	return v, nil
}

func stringColumn(row map[string]any, name string) (string, error) {
	v, err := column(row, name)
	if err != nil {
		return "", err
	}
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	case fmt.Stringer:
		return s.String(), nil
	default:
		return "", fmt.Errorf("column %q: unexpected type %T", name, v)
	}
}

func timestampColumn(row map[string]any, name string) (string, error) {
	v, err := column(row, name)
	if err != nil {
		return "", err
	}
	switch ts := v.(type) {
	case time.Time:
		return ts.UTC().Format(isoMillis), nil
	case pgtype.Timestamptz:
		if !ts.Valid {
			return "", nil
		}
		return ts.Time.UTC().Format(isoMillis), nil
	case pgtype.Timestamp:
		if !ts.Valid {
			return "", nil
		}
		return ts.Time.UTC().Format(isoMillis), nil
	default:
		return stringColumn(row, name)
	}
}

func floatColumn(row map[string]any, name string) (float64, error) {
	v, err := column(row, name)
	if err != nil {
		return 0, err
	}
	f, err := toFloat(v)
	if errors.Is(err, errNull) {
		return 0, fmt.Errorf("column %q is null", name)
	}
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", name, err)
	}
	// NUMERIC admits NaN and infinities; amounts must be finite.
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("column %q is not a finite number: %v", name, f)
	}
	return f, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int:
		return float64(n), nil
	case pgtype.Numeric:
		f, err := n.Float64Value()
		if err != nil {
			return 0, err
		}
		if !f.Valid {
			return 0, errNull
		}
		return f.Float64, nil
	case string:
		return strconv.ParseFloat(n, 64)
	case nil:
		return 0, errNull
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}

func intColumn(row map[string]any, name string) (int64, error) {
	f, err := floatColumn(row, name)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("column %q: %v is not an integer", name, f)
	}
	return int64(f), nil
}
