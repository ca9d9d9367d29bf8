package telegramimpl

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/insta-profile-sync/internal/domain"
	"github.com/orgball2608/insta-profile-sync/pkg/formatter"
)

func (tg *TelegramImpl) NotifyReport(ctx context.Context, report domain.RunReport) error {
	if len(report.Runs) == 0 {
		return nil
	}
	return tg.send(ctx, FormatReport(report))
}

func (tg *TelegramImpl) NotifyUnauthorized(ctx context.Context, run domain.SyncRun) error {
	text := fmt.Sprintf("*Access lost* for `%s`\n%s",
		formatter.EscapeMarkdownV2(run.TargetUsername),
		formatter.EscapeMarkdownV2(run.ErrorMessage))
	return tg.send(ctx, text)
}

func (tg *TelegramImpl) send(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(tg.ChatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.DisableWebPagePreview = true

	if _, err := tg.Bot.Send(msg); err != nil {
		tg.Logger.Error("Error sending message", "chat_id", tg.ChatID, "error", err)
		return fmt.Errorf("failed to send telegram message: %w", err)
	}

	tg.Logger.Debug("Message sent", "chat_id", tg.ChatID)
	return nil
}

// FormatReport renders a report as MarkdownV2.
func FormatReport(report domain.RunReport) string {
	succeeded, partial, failed := report.Counts()

	var sb strings.Builder
	fmt.Fprintf(&sb, "*Sync finished* in %s\n",
		formatter.EscapeMarkdownV2(formatter.FormatDuration(report.FinishedAt.Sub(report.StartedAt))))
	fmt.Fprintf(&sb, "%s succeeded, %s partial, %s failed\n",
		formatter.FormatNumber(succeeded), formatter.FormatNumber(partial), formatter.FormatNumber(failed))

	for _, run := range report.Runs {
		line := fmt.Sprintf("%s %s: %d fetched, %d failed",
			run.TargetUsername, run.Outcome, run.ItemsFetched, run.ItemsFailed)
		if run.ErrorKind != "" {
			line += " (" + run.ErrorKind + ")"
		}
		sb.WriteString("\n")
		sb.WriteString(formatter.EscapeMarkdownV2(line))
	}
	return sb.String()
}
