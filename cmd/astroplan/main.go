package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vinayk028/astroplan/console"
	"github.com/vinayk028/astroplan/internal/logging"
	"github.com/vinayk028/astroplan/internal/profile"
	"github.com/vinayk028/astroplan/internal/version"
	"github.com/vinayk028/astroplan/schedule"
	"github.com/vinayk028/astroplan/store"
)

var (
	rootCmd = &cobra.Command{
		Use:     "astroplan",
		Short:   `An interactive daily schedule organizer for astronauts. Add, edit and remove tasks with conflict detection and undo.`,
		Version: version.String(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Only load .env for direct binary execution (not when running as systemd service)
			// Systemd service units carry their own environment configuration
			if !isRunningAsSystemdService() {
				// Try to load .env file from current directory (ignore error if file doesn't exist)
				_ = godotenv.Load()
			}
			return nil
		},
		Run: func(_ *cobra.Command, _ []string) {
			instanceProfile := &profile.Profile{
				Mode:         viper.GetString("mode"),
				LogLevel:     viper.GetString("log-level"),
				LogFormat:    viper.GetString("log-format"),
				HistoryLimit: viper.GetInt("history-limit"),
				Version:      version.GetCurrentVersion(viper.GetString("mode")),
			}
			instanceProfile.FromEnv()
			if err := instanceProfile.Validate(); err != nil {
				panic(err)
			}

			slog.SetDefault(logging.NewLogger(logging.ParseLevel(instanceProfile.LogLevel), instanceProfile.LogFormat))

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			notifier := store.NewNotifier()
			taskStore := store.NewTaskStore(notifier)
			journal := schedule.NewJournal(instanceProfile.HistoryLimit)
			notifier.Subscribe(schedule.NewLogObserver())
			notifier.Subscribe(journal)

			scheduler := schedule.New(taskStore)
			if instanceProfile.Mode == "demo" {
				seedDemoSchedule(scheduler)
			}

			c := make(chan os.Signal, 1)
			// Trigger graceful shutdown on SIGINT or SIGTERM.
			// The default signal sent by the `kill` command is SIGTERM,
			// which is taken as the graceful shutdown signal for many systems, eg., Kubernetes, Gunicorn.
			signal.Notify(c, terminationSignals...)
			go func() {
				<-c
				cancel()
			}()

			printGreetings(instanceProfile)

			session := console.New(scheduler, journal, os.Stdin, os.Stdout)
			if err := session.Run(ctx); err != nil {
				slog.Error("session failed", "error", err)
			}
		},
	}
)

func init() {
	viper.SetDefault("mode", "dev")
	viper.SetDefault("log-level", "info")
	viper.SetDefault("log-format", "text")
	viper.SetDefault("history-limit", 50)

	rootCmd.PersistentFlags().String("mode", "dev", `mode of the organizer, can be "prod" or "dev" or "demo"`)
	rootCmd.PersistentFlags().String("log-level", "info", `log level, can be "debug", "info", "warn" or "error"`)
	rootCmd.PersistentFlags().String("log-format", "text", `log format, can be "text" or "json"`)
	rootCmd.PersistentFlags().Int("history-limit", 50, "maximum number of change journal entries kept in memory")

	if err := viper.BindPFlag("mode", rootCmd.PersistentFlags().Lookup("mode")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("history-limit", rootCmd.PersistentFlags().Lookup("history-limit")); err != nil {
		panic(err)
	}

	viper.SetEnvPrefix("astroplan")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

// seedDemoSchedule fills the organizer with a small sample day so demo
// sessions have something to list, edit and undo right away.
func seedDemoSchedule(svc schedule.Service) {
	samples := []*schedule.CreateTaskRequest{
		{Description: "Morning Exercise", StartTime: "07:00", EndTime: "08:00", Priority: "HIGH"},
		{Description: "Team Meeting", StartTime: "09:00", EndTime: "10:00", Priority: "MEDIUM"},
		{Description: "Equipment Check", StartTime: "13:00", EndTime: "14:30", Priority: "LOW"},
	}
	for _, sample := range samples {
		if _, err := svc.AddTask(sample); err != nil {
			slog.Warn("demo task skipped", "description", sample.Description, "error", err)
		}
	}
}

func printGreetings(profile *profile.Profile) {
	fmt.Printf("AstroPlan %s started successfully!\n", profile.Version)

	if profile.IsDev() {
		fmt.Fprint(os.Stderr, "Development mode is enabled\n")
		fmt.Fprintf(os.Stderr, "Build: %s\n", version.StringFull())
	}

	fmt.Printf("Mode: %s\n", profile.Mode)
	fmt.Println()
}

// isRunningAsSystemdService detects if the process is running under systemd
func isRunningAsSystemdService() bool {
	// Check if invoked by systemd (environment variables set by systemd)
	return os.Getenv("INVOCATION_ID") != "" || os.Getenv("WATCHDOG_USEC") != ""
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}
