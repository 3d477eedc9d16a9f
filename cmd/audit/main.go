package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Schera-ole/metricsaudit/internal/classifier"
	"github.com/Schera-ole/metricsaudit/internal/config"
	"github.com/Schera-ole/metricsaudit/internal/logger"
	middlewareinternal "github.com/Schera-ole/metricsaudit/internal/middleware"
	"github.com/Schera-ole/metricsaudit/internal/report"
	"github.com/Schera-ole/metricsaudit/internal/repository"
	"github.com/Schera-ole/metricsaudit/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes one audit. Configuration is validated before any request is made.
// Logs share stdout with the text report and move to stderr for a JSON report.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	auditConfig, err := config.NewAuditConfig(args)
	if err != nil {
		return err
	}

	logOutput := stdout
	if auditConfig.OutputFormat == config.FormatJSON {
		logOutput = stderr
	}
	log, err := logger.New(auditConfig.LogLevel, logOutput)
	if err != nil {
		return err
	}
	defer log.Sync()
	log = log.With("run_id", uuid.NewString())

	var extraPrefixes []string
	if auditConfig.PrefixesFile != "" {
		extraPrefixes, err = config.LoadPrefixes(auditConfig.PrefixesFile)
		if err != nil {
			return err
		}
		log.Debugf("loaded %d extra vendor prefixes from %s", len(extraPrefixes), auditConfig.PrefixesFile)
	}

	cls := classifier.New(extraPrefixes...)
	log.Debugf("classifying with %d vendor prefixes", len(cls.Prefixes()))

	auditService, err := newAuditService(auditConfig, cls, log)
	if err != nil {
		return err
	}

	result, err := auditService.Run(ctx)
	if err != nil {
		return err
	}

	if err := report.Write(stdout, auditConfig.OutputFormat, result); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}

	if auditConfig.MetricsTextfile != "" {
		if err := auditService.Stats().WriteTextfile(auditConfig.MetricsTextfile); err != nil {
			return fmt.Errorf("error writing metrics textfile: %w", err)
		}
	}
	return nil
}

func newAuditService(auditConfig *config.AuditConfig, cls *classifier.Classifier, log *zap.SugaredLogger) (*service.AuditService, error) {
	client := middlewareinternal.NewClient(log)
	baseURL := auditConfig.BaseURL()

	inventory, err := repository.NewTagConfigInventory(baseURL, auditConfig.APIKey, auditConfig.AppKey, client, log)
	if err != nil {
		return nil, err
	}
	prober := repository.NewQueryProber(baseURL, auditConfig.APIKey, auditConfig.AppKey, client)

	return service.NewAuditService(inventory, prober, cls, log,
		service.WithConcurrency(auditConfig.Concurrency),
	), nil
}
