package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"advisord/internal/actions"
	"advisord/internal/catalog"
	"advisord/internal/common/fsutil"
	"advisord/internal/config"
	"advisord/internal/fit"
	"advisord/internal/httpapi"
	"advisord/internal/probe"
	"advisord/internal/recovery"
	"advisord/internal/service"
	"advisord/pkg/types"
)

// defaultConfigPaths are tried in order when --config is not given.
var defaultConfigPaths = []string{
	"./advisord.yaml",
	"./advisord.toml",
	"~/.config/advisord/config.yaml",
	"~/.config/advisord/config.toml",
}

const eventBufferSize = 256

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "advisord:", err)
		os.Exit(1)
	}
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// envBool returns nil when key is unset or not a boolean.
func envBool(key string) *bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return nil
	}
	return &b
}

// defaults returns the built-in configuration with ADVISORD_* environment overrides.
func defaults() config.Config {
	total, _ := strconv.ParseUint(os.Getenv("ADVISORD_TOTAL_RAM_BYTES"), 10, 64)
	return config.Config{
		Addr:            envStr("ADVISORD_ADDR", ":8080"),
		ModelsDir:       envStr("ADVISORD_MODELS_DIR", ""),
		ModelsFile:      envStr("ADVISORD_MODELS_FILE", ""),
		TotalRAMBytes:   total,
		ProbeTimeoutMS:  envInt("ADVISORD_PROBE_TIMEOUT_MS", 3000),
		ProbeCacheTTLMS: envInt("ADVISORD_PROBE_CACHE_TTL_MS", 60000),
		ResendURL:       envStr("ADVISORD_RESEND_URL", ""),
		ResendTimeoutMS: envInt("ADVISORD_RESEND_TIMEOUT_MS", 10000),
		LogLevel:        envStr("ADVISORD_LOG_LEVEL", "info"),
		LogFormat:       envStr("ADVISORD_LOG_FORMAT", "console"),
		MaxBodyBytes:    1 << 20,
		CORSEnabled:     envBool("ADVISORD_CORS_ENABLED"),
		CORSOrigins:     splitCSV(os.Getenv("ADVISORD_CORS_ORIGINS")),
	}
}

func buildRootCmd() *cobra.Command {
	base := defaults()
	var (
		cfgPath     string
		corsOrigins string
		totalRAM    uint64
		corsOn      bool
		flagCfg     = base
	)
	root := &cobra.Command{
		Use:           "advisord",
		Short:         "Model resource-fit advice and chat message recovery over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flagCfg.CORSOrigins = splitCSV(corsOrigins)
			flagCfg.TotalRAMBytes = totalRAM
			flagCfg.CORSEnabled = &corsOn
			cfg, err := resolveConfig(base, cfgPath, changedOnly(cmd, flagCfg))
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}
	f := root.Flags()
	f.StringVar(&cfgPath, "config", os.Getenv("ADVISORD_CONFIG"), "Config file (.yaml, .json or .toml)")
	f.StringVar(&flagCfg.Addr, "addr", base.Addr, "HTTP listen address, e.g. :8080")
	f.StringVar(&flagCfg.ModelsDir, "models-dir", base.ModelsDir, "Directory to scan for *.gguf model files")
	f.StringVar(&flagCfg.ModelsFile, "models-file", base.ModelsFile, "Model manifest (.yaml, .json or .toml)")
	f.Uint64Var(&totalRAM, "total-ram-bytes", base.TotalRAMBytes, "Fixed host RAM in bytes (0 = probe the host)")
	f.IntVar(&flagCfg.ProbeTimeoutMS, "probe-timeout-ms", base.ProbeTimeoutMS, "Resource probe timeout in milliseconds")
	f.IntVar(&flagCfg.ProbeCacheTTLMS, "probe-cache-ttl-ms", base.ProbeCacheTTLMS, "How long a successful probe is reused")
	f.StringVar(&flagCfg.ResendURL, "resend-url", base.ResendURL, "Webhook that regenerates an interrupted message")
	f.IntVar(&flagCfg.ResendTimeoutMS, "resend-timeout-ms", base.ResendTimeoutMS, "Webhook request timeout in milliseconds")
	f.StringVar(&flagCfg.LogLevel, "log-level", base.LogLevel, "Log level: debug|info|warn|error")
	f.StringVar(&flagCfg.LogFormat, "log-format", base.LogFormat, "Log format: console|json")
	f.Int64Var(&flagCfg.MaxBodyBytes, "max-body-bytes", base.MaxBodyBytes, "Maximum JSON request body size")
	f.BoolVar(&corsOn, "cors", base.CORS(), "Enable CORS middleware")
	f.StringVar(&corsOrigins, "cors-origins", strings.Join(base.CORSOrigins, ","), "Comma-separated allowed CORS origins")
	return root
}

// changedOnly keeps the fields whose flags were set on the command line so a
// config file can sit between the built-in defaults and explicit flags.
func changedOnly(cmd *cobra.Command, in config.Config) config.Config {
	var out config.Config
	ch := cmd.Flags().Changed
	if ch("addr") {
		out.Addr = in.Addr
	}
	if ch("models-dir") {
		out.ModelsDir = in.ModelsDir
	}
	if ch("models-file") {
		out.ModelsFile = in.ModelsFile
	}
	if ch("total-ram-bytes") {
		out.TotalRAMBytes = in.TotalRAMBytes
	}
	if ch("probe-timeout-ms") {
		out.ProbeTimeoutMS = in.ProbeTimeoutMS
	}
	if ch("probe-cache-ttl-ms") {
		out.ProbeCacheTTLMS = in.ProbeCacheTTLMS
	}
	if ch("resend-url") {
		out.ResendURL = in.ResendURL
	}
	if ch("resend-timeout-ms") {
		out.ResendTimeoutMS = in.ResendTimeoutMS
	}
	if ch("log-level") {
		out.LogLevel = in.LogLevel
	}
	if ch("log-format") {
		out.LogFormat = in.LogFormat
	}
	if ch("max-body-bytes") {
		out.MaxBodyBytes = in.MaxBodyBytes
	}
	if ch("cors") {
		out.CORSEnabled = in.CORSEnabled
	}
	if ch("cors-origins") {
		out.CORSOrigins = in.CORSOrigins
	}
	return out
}

// resolveConfig layers defaults, the config file (explicit or discovered) and flags.
func resolveConfig(base config.Config, path string, flags config.Config) (config.Config, error) {
	cfg := base
	if path == "" {
		path, _ = fsutil.FirstExisting(defaultConfigPaths...)
	}
	if path != "" {
		fileCfg, err := config.Load(path)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
		cfg = config.Merge(cfg, fileCfg)
	}
	return config.Merge(cfg, flags), nil
}

func newLogger(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	var l zerolog.Logger
	if strings.EqualFold(format, "json") {
		l = zerolog.New(os.Stderr)
	} else {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	return l.Level(lvl).With().Timestamp().Str("svc", "advisord").Logger()
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// buildProber returns the resource prober and a readiness check. A fixed
// total RAM is always ready; a probed host is ready after its first success.
func buildProber(cfg config.Config, log zerolog.Logger) (fit.Prober, service.ReadyFunc) {
	if cfg.TotalRAMBytes > 0 {
		return probe.StaticProber{Total: cfg.TotalRAMBytes}, func() bool { return true }
	}
	cached := probe.NewCached(probe.SystemProber{}, ms(cfg.ProbeCacheTTLMS), log)
	return cached, cached.Probed
}

func loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	var sets [][]types.Model
	if cfg.ModelsDir != "" {
		found, err := catalog.LoadDir(cfg.ModelsDir)
		if err != nil {
			return nil, fmt.Errorf("scan models dir: %w", err)
		}
		sets = append(sets, found)
	}
	if cfg.ModelsFile != "" {
		found, err := catalog.LoadFile(cfg.ModelsFile)
		if err != nil {
			return nil, fmt.Errorf("load models file: %w", err)
		}
		sets = append(sets, found)
	}
	return catalog.New(sets...), nil
}

// newService assembles every collaborator behind the HTTP surface.
func newService(cfg config.Config, log zerolog.Logger) (*service.Service, error) {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	prober, ready := buildProber(cfg, log.With().Str("component", "probe").Logger())
	advLog := log.With().Str("component", "fit").Logger()
	adv := fit.NewAdvisorWithConfig(fit.AdvisorConfig{
		Prober:  prober,
		Timeout: ms(cfg.ProbeTimeoutMS),
		Logger:  &advLog,
	})

	recent := actions.NewMemoryPublisher(eventBufferSize)
	pub := actions.Fanout{
		actions.LogPublisher{Log: log.With().Str("component", "actions").Logger()},
		recent,
	}
	nav := actions.NewNavState(pub)
	resender := &actions.WebhookResender{
		URL:     cfg.ResendURL,
		Timeout: ms(cfg.ResendTimeoutMS),
		Pub:     pub,
		Log:     log.With().Str("component", "resender").Logger(),
	}
	disp := recovery.NewDispatcher(resender, nav,
		recovery.WithLogger(log.With().Str("component", "recovery").Logger()))

	return service.New(service.Config{
		Advisor:    adv,
		Catalog:    cat,
		Dispatcher: disp,
		Nav:        nav,
		Events:     recent,
		Ready:      ready,
		Logger:     log,
	}), nil
}

func run(ctx context.Context, cfg config.Config) error {
	log := newLogger(cfg.LogLevel, cfg.LogFormat)
	svc, err := newService(cfg, log)
	if err != nil {
		return err
	}
	// Warm the probe so /readyz flips without waiting for the first fit request.
	go func() {
		if _, err := svc.Resources(ctx); err != nil {
			log.Warn().Err(err).Msg("initial resource probe failed")
		}
	}()

	httpapi.SetLogger(log.With().Str("component", "http").Logger())
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(cfg.CORS(), cfg.CORSOrigins, nil, nil)
	httpapi.SetBaseContext(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("models_dir", cfg.ModelsDir).Int("models", len(svc.ListModels())).Msg("advisord listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("graceful shutdown error")
	}
	return nil
}

// splitCSV splits a comma-separated list, trimming blanks and dropping empties.
func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
