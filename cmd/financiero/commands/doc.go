// Package commands defines the financiero CLI and wires dependencies for subcommands.
//
// Commands
//
//   - product     Price a product: tax, margin, break-even and ROI
//   - employer    Employer payroll cost for one salary
//   - employee    Employee net pay including overtime
//   - batch       Run a JSON-lines file of calculations and export the history
//   - categories  List the calculation categories
//   - serve       Run the JSON HTTP API
//   - hash-key    Generate or hash an API key for API_KEY_HASH
//
// # Implementation
//
// The root command loads an optional .env file, configures slog and builds the
// calculation service before any subcommand runs. Calculation flags are passed
// to the engine as raw text so the CLI and the HTTP API share one parser.
package commands
