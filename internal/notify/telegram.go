// Package notify sends fire-and-forget run-completion notifications.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/beasiswa"
)

const defaultBaseURL = "https://api.telegram.org"

const finishedAtLayout = "02/01/2006, 15.04.05"

// Config holds Telegram credentials. Empty token or chat ID disables sending.
type Config struct {
	BotToken string
	ChatID   string
	// BaseURL overrides the Telegram API host (tests).
	BaseURL string
}

// Telegram implements Notifier over the Telegram bot API. Delivery failures
// are logged and swallowed; a notification is never load-bearing.
type Telegram struct {
	http   *resty.Client
	cfg    Config
	logger *zap.Logger
}

// NewTelegram builds a Telegram notifier.
func NewTelegram(cfg Config, logger *zap.Logger) *Telegram {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	client := resty.New()
	client.SetBaseURL(cfg.BaseURL)
	client.SetTimeout(10 * time.Second)
	return &Telegram{http: client, cfg: cfg, logger: logger}
}

// NotifyRunFinished sends the success or failure message for one run.
func (t *Telegram) NotifyRunFinished(ctx context.Context, summary beasiswa.RunSummary) {
	if t.cfg.BotToken == "" || t.cfg.ChatID == "" {
		t.logger.Warn("telegram credentials not configured")
		return
	}
	resp, err := t.http.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"chat_id":    t.cfg.ChatID,
			"text":       FormatMessage(summary),
			"parse_mode": "HTML",
		}).
		Post("/bot" + t.cfg.BotToken + "/sendMessage")
	if err != nil {
		t.logger.Error("telegram notification failed", zap.Error(err))
		return
	}
	if resp.StatusCode() != http.StatusOK {
		t.logger.Error("telegram notification rejected", zap.Int("status", resp.StatusCode()))
		return
	}
	t.logger.Info("telegram notification sent")
}

// FormatMessage renders the notification text for a run summary.
func FormatMessage(s beasiswa.RunSummary) string {
	duration := "N/A"
	if s.Duration > 0 {
		duration = fmt.Sprintf("%d detik", int(s.Duration.Seconds()))
	}
	if s.Succeeded {
		return fmt.Sprintf(`✅ <b>Scraping Beasiswa Berhasil!</b>

📊 <b>Detail:</b>
• Status: Berhasil
• Waktu Selesai: %s
• Total Beasiswa: %s
• Durasi: %s
• Retry Attempts: %d

🤖 Notifikasi otomatis dari sistem scraping beasiswa`,
			s.FinishedAt.Format(finishedAtLayout), s.TotalRecords, duration, s.Attempts)
	}
	return fmt.Sprintf(`❌ <b>Scraping Beasiswa Gagal</b>

🚨 <b>Detail Error:</b>
• Status: Gagal
• Waktu Error: %s
• Error Message: %s
• Retry Attempts: %d
• Durasi: %s

⚠️ Action Required: Silakan periksa sistem scraping secara manual untuk mengatasi masalah ini.

🤖 Notifikasi otomatis dari sistem scraping beasiswa`,
		s.FinishedAt.Format(finishedAtLayout), s.ErrorMessage, s.Attempts, duration)
}

// NoOp discards notifications.
type NoOp struct{}

// NotifyRunFinished does nothing.
func (NoOp) NotifyRunFinished(context.Context, beasiswa.RunSummary) {}
