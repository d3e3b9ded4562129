package main

import (
	"context"
	"flag"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"github.com/forgebot/rangediff/internal/config"
	"github.com/forgebot/rangediff/internal/github"
	"github.com/forgebot/rangediff/internal/httpclient"
	"github.com/forgebot/rangediff/internal/logger"
	"github.com/forgebot/rangediff/internal/rangediff"
	"github.com/forgebot/rangediff/internal/server"
)

func main() {
	// Flags
	globalConfigFile := flag.String("globalconfig", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := flag.String("gc", "", "Alias for --globalconfig")

	listenAddr := flag.String("listen", "", "Listen address (overrides config file if set)")
	listenAddrAlias := flag.String("l", "", "Alias for --listen")
	flag.Parse()

	// Consolidate alias flags
	if *globalConfigFile == "" && *globalConfigFileAlias != "" {
		*globalConfigFile = *globalConfigFileAlias
	}
	if *listenAddr == "" && *listenAddrAlias != "" {
		*listenAddr = *listenAddrAlias
	}

	// Bootstrap logger for the config-loading phase
	bootLogger, err := logger.New(logger.NewDefaultFileLogConfig())
	if err != nil {
		stdlog.Fatalf("[FATAL] Main: Could not initialize bootstrap logger: %v", err)
	}

	gCfg, err := config.LoadGlobalConfig(*globalConfigFile, bootLogger)
	if err != nil {
		bootLogger.Fatal().Err(err).Str("path", *globalConfigFile).Msg("Could not load global config")
	}

	if *listenAddr != "" {
		gCfg.ServerConfig.ListenAddr = *listenAddr
	}
	if gCfg.GitHubConfig.Token == "" {
		gCfg.GitHubConfig.Token = os.Getenv("GITHUB_TOKEN")
	}

	if err := config.ValidateConfig(gCfg); err != nil {
		bootLogger.Fatal().Err(err).Msg("Configuration validation failed")
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		bootLogger.Fatal().Err(err).Msg("Could not initialize logger")
	}
	zLogger.Info().Msg("Logger initialized successfully")

	// HTTP client shared by the GitHub client and the authorizer
	httpClient, err := httpclient.NewHTTPClient(httpclient.DefaultHTTPClientConfig(), zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to initialize HTTP client")
	}
	httpClient.WithRetryHandler(httpclient.NewRetryHandler(gCfg.RetryConfig, zLogger))

	ghClient := github.NewClient(httpClient, gCfg.GitHubConfig, zLogger)
	authorizer := github.NewAuthorizer(httpClient, gCfg.AuthorizerConfig, zLogger)
	renderer := rangediff.NewRenderer(zLogger)

	srv := server.New(gCfg.ServerConfig, ghClient, authorizer, renderer, zLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		zLogger.Fatal().Err(err).Msg("HTTP server failed")
	}
	zLogger.Info().Msg("Shutdown complete")
}
