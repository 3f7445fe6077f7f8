package telegram

import (
	"context"
	"fmt"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/jkruckivey/assessments/internal/config"
	"github.com/jkruckivey/assessments/internal/core"
	"github.com/jkruckivey/assessments/internal/service/assistant"
	"github.com/jkruckivey/assessments/internal/service/command"
	"github.com/jkruckivey/assessments/pkg/log"
)

const baseContextKey = "base_context"

const welcomeMessage = "Hi! I'm the " + core.BotName + ". Ask me anything about designing effective, inclusive assessments. Send /clear to start a new conversation or /help for more commands."

type Bot struct {
	bot      *tele.Bot
	cfg      *config.TelegramConfig
	chat     *conversation
	commands *command.Router
	sender   *sender
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	pipeline *assistant.Pipeline,
	sessions core.SessionStore,
	commands *command.Router,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:      b,
		cfg:      cfg,
		chat:     newConversation(pipeline, sessions),
		commands: commands,
		sender:   newSender(b),
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Middleware: restrict to the owner when one is configured
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if !allowed(cfg.OwnerID, c.Sender()) {
				return nil
			}
			return next(c)
		}
	})

	b.Handle("/start", bot.handleStart)
	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func allowed(ownerID int64, sender *tele.User) bool {
	if ownerID == 0 {
		return true
	}
	return sender != nil && sender.ID == ownerID
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleStart(c tele.Context) error {
	return c.Send(welcomeMessage)
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)

	// Slash commands other than /start arrive here too
	if out, ok := b.commands.Execute(ctx, sessionID(c.Chat().ID), c.Text()); ok {
		return b.sender.sendMarkdown(ctx, c.Chat(), out, true)
	}

	// Notify user we are working
	_ = c.Notify(tele.Typing)

	reply := b.chat.reply(ctx, c.Chat().ID, c.Text())
	return b.sender.sendMarkdown(ctx, c.Chat(), reply, false)
}
