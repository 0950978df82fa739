// Package monitor runs the database health check on an interval.
//
// The monitor keeps the most recent health.Report, forwards it to an optional
// Observer (Prometheus gauges), and fans it out to subscribers such as the
// /health/stream websocket. Slow subscribers drop intermediate reports; they
// always receive the newest one.
package monitor
