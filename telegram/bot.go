package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/negarbot/negar/binding"
	"github.com/negarbot/negar/directive"
	"github.com/negarbot/negar/layout"
)

// API is the slice of the Bot API the bot logic needs. *Client
// implements it; tests substitute fakes.
type API interface {
	GetUpdates(ctx context.Context, offset int64, timeout int) ([]Update, error)
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendPhoto(ctx context.Context, chatID int64, name string, photo []byte) error
}

// CardRenderer is what the bot needs from the rendering side: the
// measurer that layout runs against, the canvas dimensions, and the
// final rasterization.
type CardRenderer interface {
	layout.Measurer
	BackgroundSize() (int, int, error)
	Render(result *layout.Result) ([][]byte, error)
	RenderOn(result *layout.Result, backgroundPath string) ([][]byte, error)
}

// Replies are the bot's user-facing message templates, interpolated via
// the binding package. Persian first, English below, matching the
// audience of the bot.
var Replies = map[string]string{
	"welcome": "سلام! متن خود را بفرستید تا روی کارت بنشیند.\n" +
		"برای کارت با عنوان از /new استفاده کنید.\n\n" +
		"Hi! Send your text and I will set it on a card.\n" +
		"Use /new for a card with a title.",
	"help": "متن بفرستید تا کارت بسازم. حداکثر ${limit} کلمه.\n" +
		"/new — کارت با عنوان\n/cancel — انصراف\n\n" +
		"Send text and I will make a card. At most ${limit} words.\n" +
		"/new — card with a title\n/cancel — abort",
	"askTitle": "عنوان کارت را بفرستید. برای کارت بدون عنوان «-» بفرستید.\n\n" +
		"Send the card title, or \"-\" for no title.",
	"askBody":    "حالا متن کارت را بفرستید.\n\nNow send the card text.",
	"canceled":   "لغو شد.\n\nCanceled.",
	"processing": "در حال ساخت کارت…\n\nMaking your card…",
	"multiPage": "متن شما در ${pages} تصویر ارسال می‌شود.\n\n" +
		"Your text spans ${pages} images.",
	"tooManyWords": "متن شما ${count} کلمه دارد؛ حداکثر ${limit} کلمه مجاز است.\n\n" +
		"Your text has ${count} words; at most ${limit} are allowed.",
	"tooLong": "متن در ${pages} صفحه جا نمی‌شود. لطفاً کوتاه‌ترش کنید.\n\n" +
		"The text does not fit on ${pages} pages. Please shorten it.",
	"badDirective": "خط @card قابل خواندن نیست: ${error}\n\n" +
		"The @card line could not be read: ${error}",
	"renderFailed": "ساخت کارت ممکن نشد. بعداً دوباره تلاش کنید.\n\n" +
		"The card could not be rendered. Please try again later.",
}

// Bot wires updates to the layout engine and renderer.
type Bot struct {
	api      API
	renderer CardRenderer
	shaper   layout.Shaper
	states   *StateStore

	policy      layout.Policy
	maxWords    int
	pollTimeout int
	// imageDir anchors @card bg overrides.
	imageDir string
}

// BotOptions configures a Bot.
type BotOptions struct {
	API         API
	Renderer    CardRenderer
	Shaper      layout.Shaper
	Policy      layout.Policy
	MaxWords    int
	PollTimeout int
	ImageDir    string
}

func NewBot(opts BotOptions) (*Bot, error) {
	if opts.API == nil || opts.Renderer == nil || opts.Shaper == nil {
		return nil, fmt.Errorf("telegram: bot needs an api, a renderer and a shaper")
	}
	if opts.MaxWords <= 0 {
		opts.MaxWords = 350
	}
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = 30
	}
	return &Bot{
		api:         opts.API,
		renderer:    opts.Renderer,
		shaper:      opts.Shaper,
		states:      NewStateStore(),
		policy:      opts.Policy,
		maxWords:    opts.MaxWords,
		pollTimeout: opts.PollTimeout,
		imageDir:    opts.ImageDir,
	}, nil
}

// Poll runs the long-polling loop until ctx is canceled.
func (b *Bot) Poll(ctx context.Context) error {
	var offset int64
	for {
		updates, err := b.api.GetUpdates(ctx, offset, b.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("poll: %v", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(5 * time.Second):
			}
			continue
		}
		for _, u := range updates {
			offset = u.UpdateID + 1
			b.HandleUpdate(ctx, u)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}
	}
}

// HandleUpdate processes one update. Errors are reported to the chat
// and logged; the loop never stops for a single bad message.
func (b *Bot) HandleUpdate(ctx context.Context, u Update) {
	if u.Message == nil || strings.TrimSpace(u.Message.Text) == "" {
		return
	}
	chatID := u.Message.Chat.ID
	text := strings.TrimSpace(u.Message.Text)

	switch {
	case text == "/start":
		b.states.Reset(chatID)
		b.reply(ctx, chatID, "welcome", nil)
		return
	case text == "/help":
		b.reply(ctx, chatID, "help", map[string]any{"limit": b.maxWords})
		return
	case text == "/cancel":
		b.states.Reset(chatID)
		b.reply(ctx, chatID, "canceled", nil)
		return
	case text == "/new":
		b.states.AwaitTitle(chatID)
		b.reply(ctx, chatID, "askTitle", nil)
		return
	}

	phase, title := b.states.Get(chatID)
	switch phase {
	case PhaseAwaitingTitle:
		if text == "-" {
			text = ""
		}
		b.states.AwaitBody(chatID, text)
		b.reply(ctx, chatID, "askBody", nil)
	case PhaseAwaitingBody:
		b.states.Reset(chatID)
		b.makeCard(ctx, chatID, title, text)
	default:
		// A bare message is a card without a title.
		b.makeCard(ctx, chatID, "", text)
	}
}

func (b *Bot) makeCard(ctx context.Context, chatID int64, title, body string) {
	d, rest, err := directive.Parse(body)
	if err != nil {
		b.reply(ctx, chatID, "badDirective", map[string]any{"error": err.Error()})
		return
	}
	body = strings.TrimSpace(rest)

	if count := len(strings.Fields(body)); count > b.maxWords {
		b.reply(ctx, chatID, "tooManyWords", map[string]any{
			"count": count,
			"limit": b.maxWords,
		})
		return
	}

	policy := b.policy
	background := ""
	if d != nil {
		if d.Size > 0 {
			s := float64(d.Size)
			policy.MinFontSize, policy.DefaultFontSize, policy.MaxFontSize = s, s, s
		}
		if d.Pages > 0 {
			policy.MaxPages = d.Pages
		}
		if d.Background != "" {
			background = filepath.Join(b.imageDir, filepath.Base(d.Background))
		}
	}

	b.reply(ctx, chatID, "processing", nil)

	w, h, err := b.renderer.BackgroundSize()
	if err != nil {
		log.Printf("chat %d: background: %v", chatID, err)
		b.reply(ctx, chatID, "renderFailed", nil)
		return
	}

	res, err := layout.Layout(layout.Document{Title: title, Body: body}, float64(w), float64(h), layout.Options{
		Measurer: b.renderer,
		Shaper:   b.shaper,
		Policy:   policy,
	})
	if errors.Is(err, layout.ErrTooLong) {
		b.reply(ctx, chatID, "tooLong", map[string]any{"pages": policy.MaxPages})
		return
	}
	if err != nil {
		log.Printf("chat %d: layout: %v", chatID, err)
		b.reply(ctx, chatID, "renderFailed", nil)
		return
	}

	var images [][]byte
	if background != "" {
		images, err = b.renderer.RenderOn(res, background)
	} else {
		images, err = b.renderer.Render(res)
	}
	if err != nil {
		log.Printf("chat %d: render: %v", chatID, err)
		b.reply(ctx, chatID, "renderFailed", nil)
		return
	}

	if len(images) > 1 {
		b.reply(ctx, chatID, "multiPage", map[string]any{"pages": len(images)})
	}
	for i, img := range images {
		name := fmt.Sprintf("card_%d.jpg", i+1)
		if err := b.api.SendPhoto(ctx, chatID, name, img); err != nil {
			log.Printf("chat %d: send photo %d: %v", chatID, i, err)
			return
		}
	}
}

func (b *Bot) reply(ctx context.Context, chatID int64, key string, data map[string]any) {
	text, ok := Replies[key]
	if !ok {
		log.Printf("chat %d: unknown reply template %q", chatID, key)
		return
	}
	if err := b.api.SendMessage(ctx, chatID, binding.Interpolate(text, data)); err != nil {
		log.Printf("chat %d: send message: %v", chatID, err)
	}
}
