package album

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/samber/lo"
	tele "gopkg.in/telebot.v3"

	"vmuicon/pkg/bitmap"
	"vmuicon/pkg/mixer"
)

func NewBot(token string, player *Player, lib *Library, h *History) (*Bot, error) {
	pref := tele.Settings{
		Token: token,
		Poller: &tele.LongPoller{
			Timeout: 30 * time.Second,
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}

	return &Bot{
		b:      b,
		player: player,
		lib:    lib,
		h:      h,
	}, nil
}

// Bot lets a Telegram chat drive the player: pause it, jump to an icon,
// print text or upload a picture.
type Bot struct {
	b      *tele.Bot
	player *Player
	lib    *Library
	h      *History
}

// show draws icon and holds it on screen until /resume.
func (b *Bot) show(context tele.Context, name string, icon bitmap.Icon) error {
	b.player.Pause()
	if err := b.player.Show(name, icon); err != nil {
		return context.Reply(fmt.Sprintf("draw failed: %s", err))
	}
	return context.Reply("OK")
}

func (b *Bot) handleBase() {
	b.b.Handle("/pause", func(context tele.Context) error {
		b.player.Pause()
		return context.Reply("OK")
	})

	b.b.Handle("/resume", func(context tele.Context) error {
		b.player.Wakeup()
		return context.Reply("OK")
	})

	b.b.Handle("/interval", func(context tele.Context) error {
		in := context.Message().Payload
		if in == "" {
			return context.Reply(b.player.ChangeWait().String())
		}

		duration, err := time.ParseDuration(in)
		if err != nil {
			return context.Reply(fmt.Sprintf("change failed: %s", err))
		}

		b.player.SetChangeWait(duration)
		b.player.Wakeup()
		return context.Reply("OK")
	})
}

func (b *Bot) handleDraw() {
	b.b.Handle("/list", func(context tele.Context) error {
		names := b.player.Playlist()
		if len(names) == 0 {
			return context.Reply("Playlist is empty")
		}
		return context.Reply(strings.Join(names, "\n"))
	})

	b.b.Handle("/icon", func(context tele.Context) error {
		name := strings.TrimSpace(context.Message().Payload)
		if name == "" {
			return context.Reply("Usage: /icon <name>")
		}

		icon, err := b.lib.Load(name)
		if err != nil {
			return context.Reply(fmt.Sprintf("load failed: %s", err))
		}

		return b.show(context, name, icon)
	})

	b.b.Handle("/text", func(context tele.Context) error {
		text := strings.ReplaceAll(context.Message().Payload, `\n`, "\n")
		icon, err := mixer.NewDrawer(mixer.WithEffect(mixer.EffectText(text))).Canvas(nil)
		if err != nil {
			return context.Reply(fmt.Sprintf("render failed: %s", err))
		}

		return b.show(context, "text", icon)
	})

	b.b.Handle("/clear", func(context tele.Context) error {
		return b.show(context, "clear", bitmap.Icon{})
	})

	b.b.Handle("/prev", func(context tele.Context) error {
		log := b.h.Prev()
		if log == nil {
			return context.Reply("Previous no item")
		}

		return b.show(context, log.Name, log.Icon)
	})

	b.b.Handle("/info", func(context tele.Context) error {
		log := b.h.Curr()
		if log == nil {
			return context.Reply("Current no icon")
		}

		return context.Reply(fmt.Sprintf("%s\n%s", log.Name, bitmap.FormatCArray("", log.Icon)))
	})

	b.b.Handle(tele.OnPhoto, func(context tele.Context) error {
		photo := context.Message().Photo
		rc, err := b.b.File(&photo.File)
		if err != nil {
			return context.Reply(fmt.Sprintf("download failed: %s", err))
		}
		defer func() {
			_ = rc.Close()
		}()

		bs, err := io.ReadAll(rc)
		if err != nil {
			return context.Reply(fmt.Sprintf("download failed: %s", err))
		}

		icon, err := b.lib.DecodeImage(bs)
		if err != nil {
			return context.Reply(fmt.Sprintf("decode failed: %s", err))
		}

		return b.show(context, lo.Ternary(photo.UniqueID != "", photo.UniqueID, "photo"), icon)
	})
}

func (b *Bot) Start() {
	b.handleBase()
	b.handleDraw()
	go b.b.Start()
}

func (b *Bot) Stop() {
	go b.b.Stop()
}
