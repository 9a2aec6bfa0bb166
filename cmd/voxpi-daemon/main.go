package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	cli "github.com/spf13/pflag"

	"github.com/lmittmann/tint"
	log "log/slog"

	"voxpi/internal/assistant"
	"voxpi/internal/auth"
	"voxpi/internal/config"
	"voxpi/internal/engine"
	"voxpi/internal/ipc"
	"voxpi/internal/nlu"
	"voxpi/internal/notify"
	"voxpi/internal/proxy"
	"voxpi/internal/statusui"
	"voxpi/internal/system"
	"voxpi/internal/tts"
	"voxpi/internal/tts/espeak"
)

var logLevelMap = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func main() {
	configPath := cli.StringP("config", "c", "", "YAML config file")
	envFile := cli.StringP("env", "e", ".env", "Env file path")
	engineURL := cli.StringP("url", "u", "", "Url of the recognition engine")
	proxyAddr := cli.StringP("proxy", "p", "", "Socks Proxy Address")
	socket := cli.StringP("socket", "s", "", "Control socket path")
	logLevel := cli.StringP("log", "l", "", "Log level")
	cli.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if cli.CommandLine.Changed("url") {
		cfg.EngineURL = *engineURL
	}
	if cli.CommandLine.Changed("proxy") {
		cfg.Proxy = *proxyAddr
	}
	if cli.CommandLine.Changed("socket") {
		cfg.Socket = *socket
	}
	if cli.CommandLine.Changed("log") {
		cfg.LogLevel = *logLevel
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Invalid config:", err)
		os.Exit(1)
	}

	log.SetDefault(log.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: logLevelMap[cfg.LogLevel],
	})))

	log.Info("Booting up")

	if err := godotenv.Load(*envFile); err != nil {
		log.Debug("No env file", "path", *envFile, "err", err)
	}

	if err := run(cfg); err != nil {
		log.Error("Assistant stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	dialer, err := proxy.NewSocksDialer(cfg.Proxy)
	if err != nil {
		return fmt.Errorf("socks proxy %s: %w", cfg.Proxy, err)
	}

	button, err := ipc.Listen(cfg.Socket)
	if err != nil {
		return fmt.Errorf("control socket: %w", err)
	}
	defer button.Close()
	go func() {
		if err := button.Serve(); err != nil {
			log.Error("Control socket failed", "err", err)
		}
	}()

	log.Debug("Listening for button presses", "socket", cfg.Socket)

	voice := tts.NewVoice(espeak.Synth{}, tts.Options{
		Language: cfg.LanguageCode,
		Pitch:    cfg.TTSPitch,
		Volume:   cfg.TTSVolume,
	})

	var led *statusui.LED
	if cfg.LED != "" {
		led = statusui.NewLED(cfg.LED)
	}
	var cue statusui.Player
	if cfg.Cue != "" {
		c, err := notify.LoadCue(cfg.Cue)
		if err != nil {
			log.Warn("Cue disabled", "path", cfg.Cue, "err", err)
		} else {
			cue = c
		}
	}

	dispatcher := assistant.NewDispatcher(assistant.DispatcherConfig{
		Status: statusui.New(led, cue),
		Button: button,
		Actions: nlu.Actions{
			Voice:            voice,
			Shell:            system.NewShell(),
			PowerOffCommand:  cfg.PowerOffCommand,
			RebootCommand:    cfg.RebootCommand,
			IPAddressCommand: cfg.IPAddressCommand,
			VolumeStep:       cfg.VolumeStep,
			VolumeUpRaises:   cfg.VolumeUpRaises,
		},
		Interactive: isatty.IsTerminal(os.Stdout.Fd()),
	})

	runner := assistant.NewRunner(
		&auth.Provider{Env: cfg.CredentialsEnv, File: cfg.CredentialsFile},
		&engine.Opener{URL: cfg.EngineURL, Language: cfg.LanguageCode, Dialer: dialer},
		dispatcher,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Boot up - successful")
	runner.Start(ctx)
	<-runner.Done()

	return runner.Err()
}
