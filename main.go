package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/negarbot/negar/config"
	"github.com/negarbot/negar/directive"
	"github.com/negarbot/negar/layout"
	canvasrenderer "github.com/negarbot/negar/renderer/canvas"
	"github.com/negarbot/negar/shaping"
	"github.com/negarbot/negar/telegram"
)

func main() {
	mode := flag.String("mode", "render", "run mode: render, poll, webhook, or bot (poll/webhook per config)")
	title := flag.String("title", "", "card title (render mode)")
	text := flag.String("text", "", "card text (render mode)")
	input := flag.String("in", "", "read the card text from a file instead of -text")
	output := flag.String("out", "", "output directory for rendered cards")
	configPath := flag.String("config", "", "YAML configuration file")
	debug := flag.String("debug", "", "layout debug JSON output path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *output != "" {
		cfg.Assets.OutputDir = *output
	}

	r, err := newRenderer(cfg)
	if err != nil {
		log.Fatalf("renderer: %v", err)
	}

	switch *mode {
	case "render":
		if err := runRender(cfg, r, *title, *text, *input, *debug); err != nil {
			log.Fatalf("render: %v", err)
		}
	case "poll", "webhook":
		if err := runBot(cfg, r, *mode); err != nil {
			log.Fatalf("bot: %v", err)
		}
	case "bot":
		if err := runBot(cfg, r, cfg.Telegram.Mode); err != nil {
			log.Fatalf("bot: %v", err)
		}
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

func newRenderer(cfg *config.Config) (*canvasrenderer.Renderer, error) {
	return canvasrenderer.New(canvasrenderer.Options{
		BackgroundPath: cfg.Assets.BackgroundPath,
		FontChain:      cfg.Assets.FontChain,
		TitleFontChain: cfg.Assets.TitleFontChain,
		OverlayAlpha:   cfg.OverlayAlpha,
		JPEGQuality:    cfg.JPEGQuality,
		Shaper:         shaping.Bidi{},
	})
}

// runRender lays out one card from the command line and writes the page
// JPEGs to the output directory.
func runRender(cfg *config.Config, r *canvasrenderer.Renderer, title, text, inputPath, debugPath string) error {
	if inputPath != "" {
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return fmt.Errorf("read %s: %w", inputPath, err)
		}
		text = string(data)
	}
	if text == "" {
		return fmt.Errorf("nothing to render, pass -text or -in")
	}

	d, rest, err := directive.Parse(text)
	if err != nil {
		return err
	}
	text = rest

	policy := cfg.Layout
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
			background = filepath.Join(filepath.Dir(cfg.Assets.BackgroundPath), filepath.Base(d.Background))
		}
	}

	w, h, err := r.BackgroundSize()
	if err != nil {
		return err
	}

	res, err := layout.Layout(layout.Document{Title: title, Body: text}, float64(w), float64(h), layout.Options{
		Measurer: r,
		Shaper:   shaping.Bidi{},
		Policy:   policy,
	})
	if err != nil {
		return err
	}

	if debugPath != "" {
		if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		if err := layout.WriteDebugJSON(res, debugPath); err != nil {
			return err
		}
	}

	var images [][]byte
	if background != "" {
		images, err = r.RenderOn(res, background)
	} else {
		images, err = r.Render(res)
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Assets.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for i, img := range images {
		path := filepath.Join(cfg.Assets.OutputDir, fmt.Sprintf("card_%d.jpg", i+1))
		if err := os.WriteFile(path, img, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Printf("wrote %s\n", path)
	}
	return nil
}

// runBot serves Telegram updates, either by long polling or behind a
// webhook, until interrupted.
func runBot(cfg *config.Config, r *canvasrenderer.Renderer, mode string) error {
	if cfg.Telegram.Token == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
	}

	client := telegram.NewClient(cfg.Telegram.Token, "")
	bot, err := telegram.NewBot(telegram.BotOptions{
		API:         client,
		Renderer:    r,
		Shaper:      shaping.Bidi{},
		Policy:      cfg.Layout,
		MaxWords:    cfg.MaxWords,
		PollTimeout: cfg.Telegram.PollTimeout,
		ImageDir:    filepath.Dir(cfg.Assets.BackgroundPath),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch mode {
	case "poll":
		log.Printf("polling for updates")
		if err := bot.Poll(ctx); err != nil && ctx.Err() == nil {
			return err
		}
	case "webhook":
		router := telegram.NewWebhookRouter(bot, cfg.Telegram.WebhookPath)
		log.Printf("serving webhook on %s%s", cfg.Telegram.ListenAddr, cfg.Telegram.WebhookPath)
		if err := router.Run(cfg.Telegram.ListenAddr); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown bot mode %q", mode)
	}
	return nil
}
