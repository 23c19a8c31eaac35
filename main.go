package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/lexandro/gnews-mcp/client"
	"github.com/lexandro/gnews-mcp/register"
	"github.com/lexandro/gnews-mcp/server"
	"github.com/lexandro/gnews-mcp/tools"
)

const version = "0.1.0"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "register" {
		register.Run(register.ServerInfo{Name: "gnews"}, os.Args[2:])
		return
	}

	var (
		baseURL     string
		timeout     time.Duration
		maxBodySize int64
		proxy       string
		insecure    bool
		logLevel    string
	)

	flag.StringVar(&baseURL, "base-url", client.DefaultBaseURL, "GNews API base URL")
	flag.DurationVar(&timeout, "timeout", client.DefaultTimeout, "Upstream request timeout")
	flag.Int64Var(&maxBodySize, "max-body-size", client.DefaultMaxBodySize, "Maximum response body size in bytes")
	flag.StringVar(&proxy, "proxy", "", "HTTP/HTTPS proxy URL")
	flag.BoolVar(&insecure, "insecure", false, "Skip TLS certificate verification")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug/info/warn/error)")

	flag.Parse()

	logger := newLogger(logLevel)
	slog.SetDefault(logger)

	// .env is optional; a value already in the environment wins.
	_ = godotenv.Load()

	apiKey := os.Getenv("GNEWS_API_KEY")
	if apiKey == "" {
		logger.Warn("GNEWS_API_KEY is not set; every tool call will fail with a configuration error")
	}

	gnews := client.NewClient(client.Config{
		BaseURL:     baseURL,
		APIKey:      apiKey,
		Timeout:     timeout,
		MaxBodySize: maxBodySize,
		ProxyURL:    proxy,
		InsecureTLS: insecure,
		Logger:      logger,
	})

	mcpServer := server.New(version)
	if err := tools.Register(mcpServer, gnews); err != nil {
		logger.Error("registering tools", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Info("starting gnews-mcp server", "version", version, "transport", "stdio")
	if err := server.Run(ctx, mcpServer); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// newLogger builds a stderr logger; stdout carries the MCP stdio transport.
func newLogger(level string) *slog.Logger {
	var parsed slog.Level
	switch strings.ToLower(level) {
	case "debug":
		parsed = slog.LevelDebug
	case "warn":
		parsed = slog.LevelWarn
	case "error":
		parsed = slog.LevelError
	default:
		parsed = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parsed}))
}
