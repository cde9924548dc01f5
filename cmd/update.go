package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"stock-radar/internal/delivery/telegram"
	"stock-radar/internal/repository"
	"stock-radar/internal/service"
	"stock-radar/pkg/logger"

	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Run one full discovery and ingestion cycle",
	Run:   Update,
}

// Update runs the batch job once. Per-ticker failures are logged and
// counted but never fatal; the process exits non-zero only when the store
// itself fails.
func Update(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency()
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}
	defer func() {
		if err := appDep.Close(); err != nil {
			appDep.log.Error("Failed to close app dependency", logger.ErrorField(err))
		}
	}()

	repo := repository.NewRepository(appDep.cfg, appDep.db.DB, appDep.log)
	services := service.NewService(appDep.cfg, appDep.log, repo, appDep.cache)

	notifier, err := telegram.NewReportNotifier(appDep.cfg, appDep.log)
	if err != nil {
		appDep.log.Warn("Telegram notifier unavailable", logger.ErrorField(err))
	}

	report, err := services.IngestService.Run(ctx)
	if err != nil {
		appDep.log.Error("Ingestion run failed", logger.ErrorField(err))
		os.Exit(1)
	}

	appDep.log.Info("Update completed",
		logger.IntField("total", report.Total),
		logger.IntField("succeeded", report.Succeeded),
		logger.IntField("skipped", report.Skipped),
		logger.IntField("failed", report.Failed))

	if notifier != nil {
		if err := notifier.SendRunReport(report); err != nil {
			appDep.log.Warn("Failed to notify run report", logger.ErrorField(err))
		}
	}
}
