package cmd

import (
	"context"
	"fmt"
	"log"
	httpNet "net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	internalHttp "stock-radar/internal/delivery/http"
	"stock-radar/internal/repository"
	"stock-radar/internal/service"
	"stock-radar/pkg/logger"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the viewer API and the scheduled ingestion",
	Run:   Start,
}

func Start(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency()
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}

	repo := repository.NewRepository(appDep.cfg, appDep.db.DB, appDep.log)
	services := service.NewService(appDep.cfg, appDep.log, repo, appDep.cache)

	httpHandler := internalHttp.NewHttpAPIHandler(appDep.echo, appDep.validator, services)
	httpHandler.SetupRoutes()

	scheduler := startScheduler(ctx, appDep, services)

	go func() {
		address := fmt.Sprintf(":%d", appDep.cfg.API.Port)
		appDep.log.Info("Starting HTTP server", zap.Int("port", appDep.cfg.API.Port))
		if err := appDep.echo.Start(address); err != nil && err != httpNet.ErrServerClosed {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	<-ctx.Done()
	appDep.log.Info("Shutting down gracefully")

	if scheduler != nil {
		scheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := appDep.echo.Shutdown(shutdownCtx); err != nil {
		appDep.log.Error("Error stopping HTTP server", logger.ErrorField(err))
	}

	if err := appDep.Close(); err != nil {
		log.Fatalf("Failed to close app dependency: %v", err)
	}
}

// startScheduler wires the daily ingestion cron when one is configured.
// Overlapping runs are skipped: a run still in flight wins.
func startScheduler(ctx context.Context, appDep *AppDependency, services *service.Service) *cron.Cron {
	if appDep.cfg.Scheduler.UpdateCron == "" {
		return nil
	}

	var running atomic.Bool
	c := cron.New()
	_, err := c.AddFunc(appDep.cfg.Scheduler.UpdateCron, func() {
		if !running.CompareAndSwap(false, true) {
			appDep.log.Warn("Skipping scheduled update, previous run still in flight")
			return
		}
		defer running.Store(false)

		report, err := services.IngestService.Run(ctx)
		if err != nil {
			appDep.log.Error("Scheduled update failed", logger.ErrorField(err))
			return
		}
		appDep.log.Info("Scheduled update completed",
			logger.IntField("total", report.Total),
			logger.IntField("succeeded", report.Succeeded),
			logger.IntField("skipped", report.Skipped),
			logger.IntField("failed", report.Failed))
	})
	if err != nil {
		appDep.log.Error("Invalid update cron expression",
			logger.StringField("cron", appDep.cfg.Scheduler.UpdateCron),
			logger.ErrorField(err))
		return nil
	}

	c.Start()
	appDep.log.Info("Update scheduler started",
		logger.StringField("cron", appDep.cfg.Scheduler.UpdateCron))
	return c
}
