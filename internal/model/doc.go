// Package model defines the records read from the external databases and the values
// derived from them.
//
// Conventions:
//   - Amounts: float64 as stored upstream; micro-unit scaling is applied only when
//     computing or displaying (see package amount)
//   - Latencies: integer milliseconds
//   - Identifiers (wallet addresses, transaction hashes): lower-case strings
package model
