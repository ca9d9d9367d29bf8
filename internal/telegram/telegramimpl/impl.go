package telegramimpl

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/insta-profile-sync/internal/telegram"
	"github.com/orgball2608/insta-profile-sync/pkg/config"
	"github.com/orgball2608/insta-profile-sync/pkg/logger"
	"go.uber.org/fx"
)

// Sender is the part of tgbotapi.BotAPI used here.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type TelegramImpl struct {
	Bot    Sender
	ChatID int64
	Logger logger.Logger
}

// New returns a Telegram notifier, or a no-op one when no token is set.
func New(opts Opts) (telegram.Notifier, error) {
	if opts.Config.Telegram.Token == "" || opts.Config.Telegram.ChatID == 0 {
		opts.Logger.Debug("Telegram notifications disabled")
		return telegram.Nop{}, nil
	}

	tgBot, err := tgbotapi.NewBotAPI(opts.Config.Telegram.Token)
	if err != nil {
		opts.Logger.Error("Error creating bot", "error", err)
		return nil, err
	}

	return NewWithSender(tgBot, opts.Config.Telegram.ChatID, opts.Logger), nil
}

func NewWithSender(bot Sender, chatID int64, log logger.Logger) *TelegramImpl {
	return &TelegramImpl{
		Bot:    bot,
		ChatID: chatID,
		Logger: log.WithComponent("Telegram"),
	}
}

var _ telegram.Notifier = (*TelegramImpl)(nil)
