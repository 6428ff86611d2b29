package telegramimpl

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/reel-publisher-bot/internal/notifier"
	"github.com/orgball2608/reel-publisher-bot/pkg/config"
	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type TelegramImpl struct {
	TgBot  *tgbotapi.BotAPI
	ChatID int64
	Prefix string
	Logger logger.Logger
}

// New connects the bot. Without a token, or when the bot cannot be reached,
// messages are only logged so a run never fails on its notifier.
func New(opts Opts) *TelegramImpl {
	log := opts.Logger.WithComponent("telegram")
	tg := &TelegramImpl{
		ChatID: opts.Config.Telegram.ChatID,
		Prefix: opts.Config.App.Name,
		Logger: log,
	}

	if opts.Config.Telegram.Token == "" {
		log.Warn("Telegram token not configured, notifications are logged only")
		return tg
	}

	endpoint := opts.Config.Telegram.APIEndpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(opts.Config.Telegram.Token, endpoint)
	if err != nil {
		log.Error("Error creating bot, notifications are logged only", "error", err)
		return tg
	}
	tg.TgBot = bot
	return tg
}

var _ notifier.Notifier = (*TelegramImpl)(nil)

func (tg *TelegramImpl) format(message string) string {
	if tg.Prefix == "" {
		return message
	}
	return fmt.Sprintf("[%s]\n%s", tg.Prefix, message)
}
