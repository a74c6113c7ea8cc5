// Package logging builds the slog loggers used across subweave.
//
// Two output formats are supported: a human-oriented console format and
// line-delimited JSON. Both resolve level and destinations from the
// application config, and helpers here attach standardized job and stage
// fields pulled from the request context.
package logging
