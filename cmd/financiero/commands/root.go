package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yourorg/financiero/internal/finance"
)

var (
	envFile   string
	logFormat string
	logLevel  string
	asJSON    bool
	appCtx    *app
)

type app struct {
	cfg    finance.Config
	svc    *finance.Service
	logger *slog.Logger
}

// userError carries the message shown to the user for a failed calculation.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

// Execute runs the CLI and reports any failure on stderr.
func Execute() error {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(root.ErrOrStderr(), errorText(err))
	}
	return err
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "financiero",
		Short:         "Product pricing and payroll calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadEnv(envFile); err != nil {
				return err
			}
			logger, err := newLogger(cmd.ErrOrStderr(), firstNonEmpty(logFormat, os.Getenv("LOG_FORMAT")), firstNonEmpty(logLevel, os.Getenv("LOG_LEVEL")))
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			cfg := finance.LoadConfig()
			appCtx = &app{cfg: cfg, svc: finance.NewService(cfg, logger), logger: logger}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load (default .env when present)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json (env LOG_FORMAT)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error (env LOG_LEVEL, default warn)")
	root.PersistentFlags().BoolVar(&asJSON, "json", false, "print results as JSON")

	root.AddCommand(
		productCmd(),
		employerCmd(),
		employeeCmd(),
		batchCmd(),
		categoriesCmd(),
		serveCmd(),
		hashKeyCmd(),
	)
	return root
}

func loadEnv(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func newLogger(w io.Writer, format, level string) (*slog.Logger, error) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "":
		lvl = slog.LevelWarn
	default:
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q", level)
		}
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("invalid log format %q", format)
}

// calculate runs one calculation and prints its summary.
func calculate(cmd *cobra.Command, d finance.Domain, f finance.Fields) error {
	rec, err := appCtx.svc.Calculate(d, f)
	if err != nil {
		return toUserError(err)
	}
	return printRecord(cmd.OutOrStdout(), rec)
}

func printRecord(w io.Writer, rec finance.Record) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}
	_, err := fmt.Fprintln(w, rec.Summary)
	return err
}

func toUserError(err error) error {
	var calcErr *finance.CalculationError
	if errors.As(err, &calcErr) {
		appCtx.logger.Debug("calculation failed", "error", err)
		return &userError{msg: finance.UserMessage, err: err}
	}
	return err
}

func errorText(err error) string {
	var uerr *userError
	if errors.As(err, &uerr) {
		return uerr.msg
	}
	return "error: " + err.Error()
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
