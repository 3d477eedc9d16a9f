// Package metricsaudit finds custom metrics that nobody has queried recently.
//
// A metric is custom when its name does not start with one of the namespaces
// used by the monitoring platform, cloud providers or common integrations
// (aws., system., kubernetes., ...). For each custom metric in the platform
// inventory the job queries the trailing 24 hours; metrics that return no
// series are reported as unqueried.
//
// Features:
//   - Inventory read from the tag configuration endpoint
//   - One time-series query per custom metric, optionally in parallel
//   - Per-metric failures are logged and skipped, never fatal
//   - Text or JSON report on standard output
//   - Extra vendor prefixes from a YAML file
//   - Job counters written as a Prometheus textfile
//   - Structured logging
//
// Credentials are read from DD_API_KEY and DD_APP_KEY (or a .env file). The
// remaining settings are available as command-line flags and environment
// variables; see cmd/audit.
package metricsaudit
