// Package telegram exposes the skin tone analyzer as a Telegram bot:
// send a photo, get the average skin color back.
package telegram

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"gopkg.in/telebot.v4"

	"skintone/pkg/imaging"
	"skintone/pkg/skin"
)

type Bot struct {
	bot    *telebot.Bot
	logger *log.Logger

	keepPercent int
	context     context.Context
}

type Config struct {
	Token       string
	Output      io.Writer
	KeepPercent int
	Context     context.Context
}

func New(config Config) (*Bot, error) {
	if config.Token == "" {
		return nil, errors.New("telegram token is required")
	}

	bot, err := telebot.NewBot(telebot.Settings{
		Token:  config.Token,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("error creating telegram bot: %w", err)
	}

	logger := log.NewWithOptions(config.Output,
		log.Options{
			Level:           log.DebugLevel,
			ReportTimestamp: true,
			Prefix:          "[Telegram]",
		},
	)
	logger.SetColorProfile(termenv.TrueColor)

	keep := config.KeepPercent
	if keep == 0 {
		keep = 60
	}

	ctx := config.Context
	if ctx == nil {
		ctx = context.Background()
	}

	return &Bot{
		bot:         bot,
		logger:      logger,
		keepPercent: keep,
		context:     ctx,
	}, nil
}

func (b *Bot) Logger() *log.Logger { return b.logger }

// Commands registers the bot command list shown in the Telegram UI.
func (b *Bot) Commands() error {
	return b.bot.SetCommands([]telebot.Command{
		{Text: "start", Description: "How to use the analyzer"},
	})
}

// Handlers registers the message handlers.
func (b *Bot) Handlers() {
	b.bot.Handle("/start", func(c telebot.Context) error {
		return c.Reply("Send me a photo with the face centered in the frame and I'll reply with the average skin color.")
	})
	b.bot.Handle(telebot.OnPhoto, b.handlePhoto)
}

func (b *Bot) handlePhoto(c telebot.Context) error {
	photo := c.Message().Photo
	if photo == nil {
		return nil
	}

	b.logger.Info("Photo received", "chat", c.Chat().ID, "size", photo.FileSize)

	file, err := b.bot.File(&photo.File)
	if err != nil {
		b.logger.Error("Error downloading photo", "err", err)
		return c.Reply("I couldn't download that photo, please try again.")
	}
	defer file.Close()

	src, err := imaging.Decode(file)
	if err != nil {
		b.logger.Error("Error decoding photo", "err", err)
		return c.Reply("I couldn't read that photo, please send a jpg or png.")
	}

	region, _ := skin.CentralRegion(imaging.Fit(src, imaging.DefaultMaxDim), b.keepPercent)
	tone, ok := skin.Estimate(region)
	if !ok {
		b.logger.Warn("No skin-toned pixels found", "chat", c.Chat().ID)
		return c.Reply("Could not extract a skin color from that photo. Try another one.")
	}

	swatch, err := imaging.EncodePNG(imaging.Swatch(tone.RGBA(), 100, 100))
	if err != nil {
		b.logger.Error("Error encoding swatch", "err", err)
		return c.Reply(fmt.Sprintf("RGB: (%d, %d, %d)\nHEX: %s", tone.R, tone.G, tone.B, tone.Hex()))
	}

	b.logger.Debug("Replying with tone", "chat", c.Chat().ID, "hex", tone.Hex())
	return c.Reply(&telebot.Photo{
		File:    telebot.FromReader(bytes.NewReader(swatch)),
		Caption: fmt.Sprintf("RGB: (%d, %d, %d)\nHEX: %s", tone.R, tone.G, tone.B, tone.Hex()),
	})
}

// Start begins long-polling and blocks until Stop is called or the
// configured context is done.
func (b *Bot) Start() error {
	go func() {
		<-b.context.Done()
		b.bot.Stop()
	}()
	b.logger.Info("Bot starting", "username", b.bot.Me.Username)
	b.bot.Start()
	return nil
}

func (b *Bot) Stop() error {
	b.bot.Stop()
	return nil
}
