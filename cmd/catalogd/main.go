// # cmd/catalogd/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"catalogd/internal/bootstrap"
	"catalogd/internal/config"
	"catalogd/internal/mcpapi/runtime"
	"catalogd/internal/platformdir"
	"catalogd/internal/present"
	"catalogd/internal/search"
)

var (
	configPath      = flag.String("config", "./catalogd.toml", "Path to config file")
	hbkPath         = flag.String("hbk", "", "Override source.hbk_path")
	jsonDir         = flag.String("json-dir", "", "Override source.json_dir")
	platformVersion = flag.String("platform-version", "", "Override source.platform_version")
	mcpTransport    = flag.String("mcp-transport", "", "Override mcp.transport (stdio|sse)")
	verbose         = flag.Bool("verbose", false, "Enable verbose logging")
	version         = flag.Bool("version", false, "Print version and exit")
	queryFlag       = flag.String("query", "", "Run a single search and print it as Markdown, instead of starting the MCP server")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("catalogd v%s\n", VERSION)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		if *configPath == "./catalogd.toml" {
			cfg, err = config.Load("./catalogd.example.toml")
		}
		if err != nil {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
	}

	applyFlagOverrides(cfg)

	if err := resolvePlatformVersion(cfg); err != nil {
		slog.Error("failed to resolve platform version", "error", err)
		os.Exit(1)
	}

	build, sourceLabel, err := selectBuildFunc(cfg, logger)
	if err != nil {
		slog.Error("failed to select ingestion source", "error", err)
		os.Exit(1)
	}

	boot := bootstrap.New(sourceLabel, build)
	result, err := boot.Ensure()
	if err != nil {
		slog.Error("ingestion aborted", "error", err)
		os.Exit(1)
	}
	logSummary(logger, result.Summary)

	if cfg.Source.WatchForChanges {
		watchPath := cfg.Source.HBKPath
		if watchPath == "" {
			watchPath = cfg.Source.JSONDir
		}
		sw := config.NewSourceWatcher(watchPath, logger)
		if err := sw.Start(); err != nil {
			slog.Warn("failed to start source watcher", "error", err)
		} else {
			defer sw.Stop()
		}
	}

	svc := search.NewService(result.Catalog, result.Indexes, cfg.Search.DefaultLimit, cfg.Search.MaxLimit)

	if *queryFlag != "" {
		runOneShotQuery(svc, *queryFlag, cfg.Search.DefaultLimit)
		return
	}

	server, err := runtime.Build(cfg, svc, logger)
	if err != nil {
		slog.Error("failed to build MCP server", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := server.Run(ctx); err != nil && ctx.Err() == nil {
		slog.Error("mcp server exited with error", "error", err)
		os.Exit(1)
	}
}

func applyFlagOverrides(cfg *config.Config) {
	if *hbkPath != "" {
		cfg.Source.HBKPath = *hbkPath
		cfg.Source.JSONDir = ""
		cfg.Source.PlatformVersionsDir = ""
	}
	if *jsonDir != "" {
		cfg.Source.JSONDir = *jsonDir
		cfg.Source.HBKPath = ""
		cfg.Source.PlatformVersionsDir = ""
	}
	if *platformVersion != "" {
		cfg.Source.PlatformVersion = *platformVersion
	}
	if *mcpTransport != "" {
		cfg.MCP.Transport = *mcpTransport
	}
}

// resolvePlatformVersion turns cfg.Source.PlatformVersionsDir into a
// concrete HBK/JSON path per spec.md §6's "core accepts an
// already-resolved concrete path; discovery is outside the core" rule.
// Only cmd/catalogd ever calls internal/platformdir.
func resolvePlatformVersion(cfg *config.Config) error {
	if cfg.Source.PlatformVersionsDir == "" {
		return nil
	}
	resolved, err := platformdir.Discover(cfg.Source.PlatformVersionsDir, cfg.Source.PlatformVersion)
	if err != nil {
		return err
	}

	hbkCandidate := resolved + ".hbk"
	if _, statErr := os.Stat(hbkCandidate); statErr == nil {
		cfg.Source.HBKPath = hbkCandidate
		return nil
	}
	cfg.Source.JSONDir = resolved
	return nil
}

func selectBuildFunc(cfg *config.Config, logger *slog.Logger) (bootstrap.BuildFunc, string, error) {
	switch {
	case cfg.Source.HBKPath != "":
		return bootstrap.FromHBK(cfg.Source.HBKPath, cfg.Source.ExcludeGlobs, logger), "hbk", nil
	case cfg.Source.JSONDir != "":
		return bootstrap.FromJSON(cfg.Source.JSONDir), "json", nil
	default:
		return nil, "", fmt.Errorf("no ingestion source resolved: set source.hbk_path or source.json_dir")
	}
}

func logSummary(logger *slog.Logger, summary bootstrap.Summary) {
	args := []any{"duration_ms", summary.Duration.Milliseconds(), "warnings", len(summary.Warnings)}
	for kind, n := range summary.Counts {
		args = append(args, string(kind), n)
	}
	logger.Info("catalog built", args...)
	for _, w := range summary.Warnings {
		logger.Debug("ingestion warning", "code", w.Code, "message", w.Message)
	}
}

func runOneShotQuery(svc *search.Service, query string, defaultLimit int) {
	results, err := svc.Search(context.Background(), query, search.Options{Limit: defaultLimit})
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	fmt.Print(present.FormatResult(results))
}
