package telegram

import (
	"fmt"
	"strings"
	"time"

	"stock-radar/config"
	"stock-radar/internal/dto"
	"stock-radar/pkg/logger"

	"gopkg.in/telebot.v3"
)

// ReportNotifier pushes a run summary to a Telegram chat after each
// ingestion cycle. It is optional: without a bot token the batch job just
// logs the report.
type ReportNotifier struct {
	bot    *telebot.Bot
	chatID int64
	log    *logger.Logger
}

func NewReportNotifier(cfg *config.Config, log *logger.Logger) (*ReportNotifier, error) {
	if cfg.Telegram.BotToken == "" {
		return nil, nil
	}

	bot, err := telebot.NewBot(telebot.Settings{
		Token:   cfg.Telegram.BotToken,
		Offline: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &ReportNotifier{
		bot:    bot,
		chatID: cfg.Telegram.ChatID,
		log:    log,
	}, nil
}

func (n *ReportNotifier) SendRunReport(report *dto.RunReport) error {
	sb := &strings.Builder{}
	sb.WriteString("📊 <b>Ingestion Run Report</b>\n")
	fmt.Fprintf(sb, "%s\n\n", time.Now().UTC().Format(time.RFC1123))
	fmt.Fprintf(sb, "Tickers: <b>%d</b>\n", report.Total)
	fmt.Fprintf(sb, "✅ Refreshed: %d\n", report.Succeeded)
	fmt.Fprintf(sb, "⏭ Skipped (no price): %d\n", report.Skipped)
	fmt.Fprintf(sb, "⚠️ Failed: %d\n", report.Failed)
	if len(report.FailedTickers) > 0 {
		fmt.Fprintf(sb, "\nFailed: %s\n", strings.Join(report.FailedTickers, ", "))
	}

	_, err := n.bot.Send(telebot.ChatID(n.chatID), sb.String(), telebot.ModeHTML)
	if err != nil {
		n.log.Error("Failed to send run report", logger.ErrorField(err))
		return err
	}
	return nil
}
