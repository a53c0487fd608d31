// Package observability carries the structured logger, Prometheus metrics and
// OpenTelemetry spans shared by the client services and the dev ledger.
//
// Secret material never reaches a log line. Public keys are logged as
// fingerprints.
package observability
