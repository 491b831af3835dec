package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/classcal/classcal/internal/profile"
	"github.com/classcal/classcal/plugin/ai"
	"github.com/classcal/classcal/server"
	"github.com/classcal/classcal/server/service/calendar"
	"github.com/classcal/classcal/server/service/schedule"
	"github.com/classcal/classcal/store"
)

const version = "0.2.0"

var rootCmd = &cobra.Command{
	Use:   "classcal",
	Short: "Turns photos of class schedules into downloadable iCalendar files",
	RunE: func(_ *cobra.Command, _ []string) error {
		return run()
	},
}

func init() {
	// Local .env is honored the same way the hosted deployment's real
	// environment is.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().String("mode", "dev", `mode of server, can be "prod" or "dev"`)
	rootCmd.PersistentFlags().String("addr", "127.0.0.1", "address of server")
	rootCmd.PersistentFlags().Int("port", 8081, "port of server")
	rootCmd.PersistentFlags().String("data", "./data", "data directory for uploads and generated calendars")
	rootCmd.PersistentFlags().StringSlice("origin", nil, "allowed CORS origins")

	cobra.CheckErr(viper.BindPFlag("mode", rootCmd.PersistentFlags().Lookup("mode")))
	cobra.CheckErr(viper.BindPFlag("addr", rootCmd.PersistentFlags().Lookup("addr")))
	cobra.CheckErr(viper.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port")))
	cobra.CheckErr(viper.BindPFlag("data", rootCmd.PersistentFlags().Lookup("data")))
	cobra.CheckErr(viper.BindPFlag("origin", rootCmd.PersistentFlags().Lookup("origin")))

	viper.SetEnvPrefix("classcal")
	viper.AutomaticEnv()
	cobra.CheckErr(viper.BindEnv("ai.base-url", "CLASSCAL_AI_BASE_URL"))
	cobra.CheckErr(viper.BindEnv("ai.api-key", "CLASSCAL_AI_API_KEY", "OPENAI_API_KEY"))
	cobra.CheckErr(viper.BindEnv("ai.model", "CLASSCAL_AI_MODEL"))
	cobra.CheckErr(viper.BindEnv("ai.max-tokens", "CLASSCAL_AI_MAX_TOKENS"))
}

func loadProfile() (*profile.Profile, error) {
	p := &profile.Profile{
		Mode:        viper.GetString("mode"),
		Addr:        viper.GetString("addr"),
		Port:        viper.GetInt("port"),
		Data:        viper.GetString("data"),
		Version:     version,
		Origins:     viper.GetStringSlice("origin"),
		AIBaseURL:   viper.GetString("ai.base-url"),
		AIAPIKey:    viper.GetString("ai.api-key"),
		AIModel:     viper.GetString("ai.model"),
		AIMaxTokens: viper.GetInt("ai.max-tokens"),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func newLogger(p *profile.Profile) *slog.Logger {
	if p.IsDev() {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func run() error {
	p, err := loadProfile()
	if err != nil {
		return err
	}
	slog.SetDefault(newLogger(p))

	fileStore, err := store.New(p.UploadDir(), p.CalendarDir())
	if err != nil {
		return err
	}

	extractor, err := ai.NewExtractionService(ai.NewExtractionConfigFromProfile(p))
	if err != nil {
		return err
	}

	scheduleService := schedule.NewService(extractor, calendar.NewEmitter(fileStore.CalendarDir()))
	srv := server.NewServer(p, fileStore, scheduleService)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	slog.Info("classcal started",
		slog.String("version", p.Version),
		slog.String("mode", p.Mode),
		slog.String("listen", fmt.Sprintf("%s:%d", p.Addr, p.Port)),
		slog.String("data", p.Data),
	)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shut down gracefully", slog.String("error", err.Error()))
		return err
	}
	slog.Info("classcal stopped")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
