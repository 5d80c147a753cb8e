// Package main is the talentview CLI entry point.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/clearhire/talentview/internal/auth"
	"github.com/clearhire/talentview/internal/config"
	"github.com/clearhire/talentview/internal/models"
	"github.com/clearhire/talentview/internal/server"
	"github.com/clearhire/talentview/internal/store"
	"github.com/clearhire/talentview/pkg/apiclient"
	"github.com/clearhire/talentview/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/talentview/config.yaml"

// loadConfig loads config from path. When path is the default, it first
// looks for config.yaml in the current directory (for development); if that
// exists it is used, so that "talentview server" from the project dir uses
// the project's config (including debug).
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
	case "login":
		runLogin()
	case "interviews":
		runInterviews()
	case "dashboard":
		runDashboard()
	case "version", "--version", "-v":
		fmt.Printf("talentview version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.Bool("debug", debugMode),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := initStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize store", zap.Error(err))
	}
	defer st.Close()

	authSvc := auth.NewService(st, []byte(cfg.Auth.Secret), cfg.Auth.Issuer, cfg.Auth.TTL())
	srv := server.NewServer(st, authSvc, &cfg.Server, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	case sig := <-sigCh:
		logger.Info("Shutting down", zap.String("signal", sig.String()))
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			logger.Warn("Shutdown error", zap.Error(err))
		}
	}
}

// initStore builds the configured store backend and seeds it. The memory
// backend can additionally watch its fixture file for changes.
func initStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.Store, error) {
	seed, err := loadSeed(cfg)
	if err != nil {
		return nil, err
	}

	switch cfg.Storage.Driver {
	case "memory":
		mem := store.NewMemoryStore()
		mem.Load(seed)
		if cfg.Seed.Reload && cfg.Seed.Path != "" {
			watcher := store.NewSeedWatcher(cfg.Seed.Path, mem, logger)
			if err := watcher.Start(ctx); err != nil {
				return nil, fmt.Errorf("failed to watch seed file: %w", err)
			}
		}
		return mem, nil
	case "sqlite":
		st, err := store.NewSQLiteStore(cfg.Storage.DatabasePath)
		if err != nil {
			return nil, err
		}
		if err := st.SeedIfEmpty(ctx, seed); err != nil {
			_ = st.Close()
			return nil, err
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}
}

func loadSeed(cfg *config.Config) (store.Seed, error) {
	if cfg.Seed.Path == "" {
		return store.DefaultSeed(time.Now()), nil
	}
	return store.LoadSeed(cfg.Seed.Path)
}

func defaultTokenPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".talentview", "token")
	}
	return ".talentview-token"
}

// newClient builds an API client whose credential survives between CLI
// invocations via the token file.
func newClient(serverURL, tokenPath string) *apiclient.Client {
	return apiclient.New(serverURL,
		apiclient.WithTokenStore(apiclient.NewFileTokenStore(tokenPath)),
		apiclient.WithOnUnauthorized(func() {
			fmt.Println("Session expired. Run 'talentview login' to sign in again.")
		}),
	)
}

func runLogin() {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	tokenPath := fs.String("token-file", defaultTokenPath(), "token file path")
	_ = fs.Parse(os.Args[2:])

	if *email == "" || *password == "" {
		fmt.Println("Both -email and -password are required")
		os.Exit(1)
	}

	client := newClient(*serverURL, *tokenPath)
	user, err := client.Login(context.Background(), *email, *password)
	if err != nil {
		fmt.Printf("Login failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Signed in as %s (%s)\n", user.Name, user.Email)
}

func runInterviews() {
	fs := flag.NewFlagSet("interviews", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	tokenPath := fs.String("token-file", defaultTokenPath(), "token file path")
	search := fs.String("search", "", "match candidate name or position")
	position := fs.String("position", "", "exact position filter")
	status := fs.String("status", "", "exact status filter (pending, awaitingResponse, completed)")
	_ = fs.Parse(os.Args[2:])

	client := newClient(*serverURL, *tokenPath)
	interviews, err := client.ListInterviews(context.Background(), apiclient.InterviewFilters{
		Search:   *search,
		Position: *position,
		Status:   models.InterviewStatus(*status),
	})
	if err != nil {
		fmt.Printf("Failed to list interviews: %v\n", err)
		os.Exit(1)
	}

	if len(interviews) == 0 {
		fmt.Println("No interviews found")
		return
	}
	for _, iv := range interviews {
		score := "-"
		if iv.Score != nil {
			score = fmt.Sprintf("%d", *iv.Score)
		}
		fmt.Printf("%s  %-20s %-22s %-16s score=%s\n",
			iv.Date.Format("2006-01-02 15:04"), iv.CandidateName, iv.Position, iv.Status, score)
	}
}

func runDashboard() {
	fs := flag.NewFlagSet("dashboard", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	tokenPath := fs.String("token-file", defaultTokenPath(), "token file path")
	_ = fs.Parse(os.Args[2:])

	client := newClient(*serverURL, *tokenPath)
	summary, err := client.Dashboard(context.Background())
	if err != nil {
		fmt.Printf("Failed to fetch dashboard: %v\n", err)
		os.Exit(1)
	}

	m := summary.Metrics
	fmt.Printf("Total interviews:     %d\n", m.TotalInterviews)
	fmt.Printf("This week:            %d\n", m.ThisWeekInterviews)
	fmt.Printf("Pending candidates:   %d\n", m.PendingCandidates)
	fmt.Printf("Completed:            %d\n", m.CompletedInterviews)
	fmt.Printf("Average score:        %d\n", m.AverageScore)
	fmt.Printf("Most active position: %s\n", m.MostActivePosition)
	if len(summary.UpcomingInterviews) > 0 {
		fmt.Println("\nUpcoming:")
		for _, iv := range summary.UpcomingInterviews {
			fmt.Printf("  %s  %s (%s)\n", iv.Date.Format("2006-01-02 15:04"), iv.CandidateName, iv.Position)
		}
	}
}

func printUsage() {
	fmt.Println(`talentview - HR interview management

Usage:
  talentview server [-config path] [-debug]     start the API server
  talentview login -email a@b.c -password pw    sign in and store a session token
  talentview interviews [-search s] [-position p] [-status st]
                                                list interviews
  talentview dashboard                          show aggregate metrics
  talentview version                            print version

Client commands accept -server (default http://localhost:8080) and
-token-file (default ~/.talentview/token).`)
}
