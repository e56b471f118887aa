// quickllm - a quick-prompt LLM assistant for the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"github.com/peterh/liner"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/jeranaias/quickllm/internal/autocomplete"
	"github.com/jeranaias/quickllm/internal/config"
	"github.com/jeranaias/quickllm/internal/conversation"
	"github.com/jeranaias/quickllm/internal/engine"
	"github.com/jeranaias/quickllm/internal/index"
	"github.com/jeranaias/quickllm/internal/llm"
	"github.com/jeranaias/quickllm/internal/scanner"
	"github.com/jeranaias/quickllm/internal/shortcuts"
	"github.com/jeranaias/quickllm/internal/storage"
	"github.com/jeranaias/quickllm/internal/tags"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// app bundles the pieces rebuilt wholesale on config reload.
type app struct {
	cfg     *config.Config
	table   *shortcuts.Table
	matcher *autocomplete.Matcher
	eng     *engine.Engine
	client  llm.Client
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger().Level(zerolog.InfoLevel)
	if os.Getenv("QUICKLLM_DEBUG") != "" {
		log = log.Level(zerolog.DebugLevel)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		log.Fatal().Msg("quickllm needs an interactive terminal")
	}

	dir, err := config.Dir()
	if err != nil {
		log.Fatal().Err(err).Msg("config directory")
	}
	if err := config.EnsureStarter(dir); err != nil {
		log.Warn().Err(err).Msg("could not write starter config")
	}

	files := index.New(log)

	// Configuration errors are fatal here, before any conversation starts.
	a, err := buildApp(dir, files, log)
	if err != nil {
		log.Fatal().Err(err).Msg("configuration")
	}

	store := openStore(dir, log)
	if store != nil {
		defer store.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reload := make(chan struct{}, 1)
	go func() {
		err := config.Watch(ctx, dir, log, func() {
			select {
			case reload <- struct{}{}:
			default:
			}
		})
		if err != nil && ctx.Err() == nil {
			log.Warn().Err(err).Msg("config watcher stopped")
		}
	}()

	runREPL(ctx, a, files, store, reload, dir, log)
}

// buildApp loads configuration and assembles the pipeline around it. Called
// at startup and again for every config reload.
func buildApp(dir string, files *index.Indexer, log zerolog.Logger) (*app, error) {
	sources, err := config.DefaultSources(dir)
	if err != nil {
		return nil, err
	}
	cfg, shortcutSources, err := config.Load(sources)
	if err != nil {
		return nil, err
	}

	table, cfgTags, err := shortcuts.Load(shortcutSources)
	if err != nil {
		return nil, err
	}

	filePlugin := tags.NewFilePlugin("")
	registry, err := tags.NewRegistry(
		tags.NewClipboardPlugin(),
		filePlugin,
		tags.NewURLPlugin(nil),
		tags.NewScreenshotPlugin(nil),
		tags.NewSpeedPlugin(),
	)
	if err != nil {
		return nil, err
	}

	// Config tags (e.g. @IndexFiles) dispatch before any user interaction.
	for _, ct := range cfgTags {
		if err := registry.DispatchConfig(ct.Trigger, ct.Value); err != nil {
			return nil, err
		}
	}

	// Index build runs in the background; autocomplete degrades gracefully
	// until it lands.
	if roots := filePlugin.IndexRoots(); len(roots) > 0 {
		go files.Build(roots)
	}

	return &app{
		cfg:     cfg,
		table:   table,
		matcher: autocomplete.New(table, registry, files),
		eng:     engine.New(table, registry, cfg.ClipboardMarker, log),
		client: llm.NewHTTPClient(
			cfg.Model.Endpoint,
			cfg.Model.APIKeyEnv,
			time.Duration(cfg.Model.TimeoutSecs)*time.Second,
		),
	}, nil
}

// openStore opens the history database. Persistence is optional: failure
// degrades to memory-only.
func openStore(dir string, log zerolog.Logger) *storage.Store {
	store, err := storage.Open(filepath.Join(dir, "history.db"))
	if err != nil {
		log.Warn().Err(err).Msg("history disabled")
		return nil
	}
	return store
}

// =============================================================================
// INTERACTIVE LOOP
// =============================================================================

func runREPL(ctx context.Context, a *app, files *index.Indexer, store *storage.Store, reload <-chan struct{}, dir string, log zerolog.Logger) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	line.SetCompleter(func(input string) []string {
		return completions(a, input)
	})

	renderer := newRenderer()
	conv := conversation.New()

	fmt.Printf("quickllm %s - /shortcuts, @tags, :new resets, :quit exits\n", Version)

	// Clipboard content starting with the trigger marker acts as a first
	// submission.
	if content, err := clipboard.ReadAll(); err == nil {
		if input, ok := a.eng.ClipboardTrigger(content); ok && input != "" {
			fmt.Printf("> %s\n", input)
			submit(ctx, a, conv, store, renderer, input, log)
		}
	}

	for {
		select {
		case <-reload:
			fresh, err := buildApp(dir, files, log)
			if err != nil {
				// A broken edit must not kill the running session.
				log.Warn().Err(err).Msg("config reload failed, keeping previous configuration")
			} else {
				a.cfg, a.table, a.matcher, a.eng, a.client =
					fresh.cfg, fresh.table, fresh.matcher, fresh.eng, fresh.client
				line.SetCompleter(func(input string) []string {
					return completions(a, input)
				})
			}
		default:
		}

		input, err := line.Prompt("> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return
			}
			log.Warn().Err(err).Msg("read input")
			return
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		switch input {
		case ":quit", ":q":
			return
		case ":new":
			conv.Reset()
			fmt.Println("new conversation")
			continue
		case ":context":
			printContext(conv)
			continue
		}

		submit(ctx, a, conv, store, renderer, input, log)
	}
}

// submit runs one input through the engine and the model, printing the
// rendered reply.
func submit(ctx context.Context, a *app, conv *conversation.Conversation, store *storage.Store, renderer *glamour.TermRenderer, input string, log zerolog.Logger) {
	res, err := a.eng.Process(ctx, conv, input)
	if err != nil {
		log.Warn().Err(err).Msg("submission abandoned")
		return
	}
	for _, w := range res.Warnings {
		fmt.Printf("  ! %s\n", w)
	}
	if labels := conv.ContextSummary(); len(labels) > 0 {
		fmt.Printf("  [%s]\n", strings.Join(labels, "] ["))
	}

	model := llm.PickModel(conv, a.cfg.Model.Model, a.cfg.Model.FastModel, a.cfg.Model.DeepModel)
	reply, err := a.client.Complete(ctx, llm.Request{
		Model:    model,
		Messages: llm.BuildMessages(conv, res.Prompt),
	})
	if err != nil {
		log.Error().Err(err).Str("model", model).Msg("inference failed")
		return
	}

	conv.AddTurn(conversation.RoleUser, res.Prompt)
	conv.AddTurn(conversation.RoleAssistant, reply)
	persist(conv, store, log)

	printReply(renderer, reply)
}

// persist mirrors the conversation to the history store, best effort.
func persist(conv *conversation.Conversation, store *storage.Store, log zerolog.Logger) {
	if store == nil {
		return
	}
	turns := conv.Turns()
	for _, turn := range turns[max(0, len(turns)-2):] {
		if err := store.SaveTurn(conv.ID(), turn); err != nil {
			log.Warn().Err(err).Msg("history: save turn")
			return
		}
	}
	if err := store.SaveContext(conv.ID(), conv.Items()); err != nil {
		log.Warn().Err(err).Msg("history: save context")
	}
}

// completions adapts the matcher to liner's whole-line completion model: the
// fragment under the cursor is replaced, the rest of the line is preserved.
func completions(a *app, input string) []string {
	frag, start, ok := scanner.FragmentAt(input, len(input))
	if !ok {
		return nil
	}
	suggestions := a.matcher.Suggest(frag)
	out := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, input[:start]+s.InsertText)
	}
	return out
}

func printContext(conv *conversation.Conversation) {
	items := conv.Items()
	if len(items) == 0 {
		fmt.Println("no context attached")
		return
	}
	for _, item := range items {
		note := ""
		if item.Truncated {
			note = " (truncated)"
		}
		fmt.Printf("  %-9s %s%s\n", item.Kind, item.Label, note)
	}
}

// =============================================================================
// RENDERING
// =============================================================================

// newRenderer builds a markdown renderer matched to the terminal's color
// profile. A nil renderer falls back to plain text.
func newRenderer() *glamour.TermRenderer {
	style := glamour.WithAutoStyle()
	if termenv.EnvColorProfile() == termenv.Ascii {
		style = glamour.WithStandardStyle("notty")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(100))
	if err != nil {
		return nil
	}
	return r
}

func printReply(renderer *glamour.TermRenderer, reply string) {
	if renderer != nil {
		if out, err := renderer.Render(reply); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Println(reply)
}
