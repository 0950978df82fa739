// Package server exposes the report service over HTTP.
//
// Routes:
//   - GET  /health         database connectivity (public)
//   - GET  /health/stream  websocket push of every monitor tick (session)
//   - POST /report         verification report for a wallet / transaction pair (session)
//   - POST /login, POST /logout, GET /session
//   - GET  /brand          UI theming constants (session)
//   - GET  /version        build information (public)
//   - metrics path         Prometheus exposition (public, optional)
package server
