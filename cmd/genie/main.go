// Package main is the Genie CLI entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/hyperjump/genie/internal/cli"
	"github.com/hyperjump/genie/internal/config"
	"github.com/hyperjump/genie/internal/embedding"
	"github.com/hyperjump/genie/internal/extract"
	"github.com/hyperjump/genie/internal/llm"
	"github.com/hyperjump/genie/internal/models"
	"github.com/hyperjump/genie/internal/server"
	"github.com/hyperjump/genie/internal/session"
	"github.com/hyperjump/genie/internal/speech"
	"github.com/hyperjump/genie/internal/watcher"
	"github.com/hyperjump/genie/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/genie/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used, so that "genie server" from the project dir uses the project's
// config (including debug).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "summarize":
		runSummarize()
	case "ask":
		runAsk()
	case "podcast":
		runPodcast()
	case "version", "--version", "-v":
		fmt.Printf("genie version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// buildSession wires a session against the hosted services configured in cfg.
// The API key comes from the environment, never from the config file.
func buildSession(cfg *config.Config, logger *zap.Logger) (*session.Session, error) {
	apiKey := os.Getenv(cfg.LLM.APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("environment variable %s is not set", cfg.LLM.APIKeyEnv)
	}
	embedder := embedding.NewOpenAIEmbedder(apiKey, cfg.LLM.BaseURL, cfg.Embedding.Model,
		cfg.Embedding.Dimensions, cfg.Embedding.CacheSize)
	client := llm.NewOpenAIClient(apiKey, cfg.LLM.BaseURL, cfg.LLM.Model)
	synth := speech.NewOpenAISynthesizer(apiKey, cfg.LLM.BaseURL, cfg.Speech.Model)
	return session.New(cfg, embedder, client, synth, logger), nil
}

func setup(configPath string, debugFlag bool) (*config.Config, *zap.Logger, *session.Session) {
	cfg, resolvedPath, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || debugFlag
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("config loaded", zap.String("config_path", resolvedPath), zap.Bool("debug", debugMode))
	sess, err := buildSession(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	return cfg, logger, sess
}

// documentsFromArgs reads each path into a source document.
func documentsFromArgs(paths []string) ([]models.SourceDocument, error) {
	docs := make([]models.SourceDocument, 0, len(paths))
	for _, path := range paths {
		doc, err := extract.FromFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func processFiles(ctx context.Context, sess *session.Session, paths []string) {
	docs, err := documentsFromArgs(paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if _, err := sess.ProcessDocuments(ctx, docs); err != nil {
		fmt.Fprintf(os.Stderr, "Processing failed: %v\n", err)
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, logger, sess := setup(*configPath, *debug)
	defer logger.Sync()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Inbox.Directory != "" {
		watchOpts := []watcher.Option{}
		if cfg.Debug || *debug {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		inbox := watcher.NewInbox(cfg.Inbox.Directory, cfg.Inbox.Extensions,
			func(docs []models.SourceDocument) {
				if _, err := sess.ProcessDocuments(context.Background(), docs); err != nil {
					logger.Warn("inbox processing failed", zap.Error(err))
				}
			},
			watchOpts...,
		)
		if err := inbox.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start inbox watcher", zap.Error(err))
		}
		defer inbox.Stop()
		inbox.Sync()
	}

	srv := server.NewServer(sess, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runSummarize() {
	fs := flag.NewFlagSet("summarize", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: genie summarize [flags] <file>...")
		os.Exit(1)
	}
	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	_, logger, sess := setup(*configPath, false)
	defer logger.Sync()

	ctx := context.Background()
	processFiles(ctx, sess, fs.Args())

	summary, err := sess.Summarize(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Summarization failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteResult(os.Stdout, "summary", summary, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runAsk() {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	outputFormat := fs.String("output", "text", "output format: text or json")
	question := fs.String("question", "", "question to answer from the documents")
	_ = fs.Parse(os.Args[2:])

	if *question == "" || fs.NArg() < 1 {
		fmt.Println("Usage: genie ask [flags] --question \"...\" <file>...")
		os.Exit(1)
	}
	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	_, logger, sess := setup(*configPath, false)
	defer logger.Sync()

	ctx := context.Background()
	processFiles(ctx, sess, fs.Args())

	answer, err := sess.Ask(ctx, *question)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Answering failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteResult(os.Stdout, "answer", answer, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runPodcast() {
	fs := flag.NewFlagSet("podcast", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	outPath := fs.String("out", "podcast_dual_voice.mp3", "output audio file")
	scriptOnly := fs.Bool("script-only", false, "print the generated script without synthesizing audio")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: genie podcast [flags] <file>...")
		os.Exit(1)
	}

	_, logger, sess := setup(*configPath, false)
	defer logger.Sync()

	ctx := context.Background()
	processFiles(ctx, sess, fs.Args())

	fmt.Fprintln(os.Stderr, "Generating script...")
	script, err := sess.GenerateScript(ctx)
	if err != nil {
		// A stopping failure may still have produced a usable partial script.
		if script == "" {
			fmt.Fprintf(os.Stderr, "Script generation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Script generation stopped early: %v (continuing with partial script)\n", err)
	}
	if *scriptOnly {
		fmt.Println(script)
		return
	}

	audio, err := sess.SynthesizeAudio(ctx, cli.ProgressPrinter(os.Stderr, "Synthesizing"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Audio synthesis failed: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outPath, audio, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", *outPath, err)
		os.Exit(1)
	}
	fmt.Printf("Podcast written to %s (%d bytes, %d dialogue lines)\n",
		*outPath, len(audio), strings.Count(script, "\n")+1)
}

func printUsage() {
	fmt.Println(`genie - Turn documents into summaries, grounded answers, and two-voice podcasts

Usage:
  genie server [flags]                        Start the HTTP server
  genie summarize [flags] <file>...           Summarize documents
  genie ask [flags] --question "..." <file>...  Answer a question from documents
  genie podcast [flags] <file>...             Generate a two-voice podcast
  genie version                               Show version
  genie help                                  Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/genie/config.yaml)
  --debug            Enable debug logging

Summarize Flags:
  --config string    Config file path
  --output string    Output format: text or json (default: text)

Ask Flags:
  --config string    Config file path
  --question string  Question to answer from the documents
  --output string    Output format: text or json (default: text)

Podcast Flags:
  --config string    Config file path
  --out string       Output audio file (default: podcast_dual_voice.mp3)
  --script-only      Print the generated script without synthesizing audio

Supported file types: .pdf, .docx, .txt

Examples:
  genie server
  genie summarize report.pdf notes.txt
  genie ask --question "What were the quarterly results?" report.pdf
  genie podcast --out episode.mp3 report.pdf
  genie podcast --script-only report.pdf`)
}
