// Package database provides connection pool management for the two external PostgreSQL
// databases the report service reads from:
//   - Poktpool: verification requests (amount owed per wallet)
//   - Waxtrax: observed network transactions (amount actually sent)
//
// Both databases are owned by other systems. Everything here is read-only: a single
// parameterized SELECT per call, no transactions, no migrations.
package database
