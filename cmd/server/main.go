// Command server runs the taskhive HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/skillsenselab/taskhive/internal/api"
	"github.com/skillsenselab/taskhive/internal/auth"
	"github.com/skillsenselab/taskhive/internal/auth/password"
	"github.com/skillsenselab/taskhive/internal/auth/token"
	"github.com/skillsenselab/taskhive/internal/config"
	"github.com/skillsenselab/taskhive/internal/logger"
	"github.com/skillsenselab/taskhive/internal/ratelimit"
	"github.com/skillsenselab/taskhive/internal/server"
	"github.com/skillsenselab/taskhive/internal/store"
	"github.com/skillsenselab/taskhive/internal/tasks"
	"github.com/skillsenselab/taskhive/internal/users"
	"github.com/skillsenselab/taskhive/internal/version"
)

func main() {
	configFile := flag.String("config", "", "path to config.yml")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		info := version.Get()
		fmt.Printf("taskhive %s (%s, %s)\n", info.Version, info.GitCommit, info.GoVersion)
		return
	}

	if err := run(*configFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	log := logger.New(&cfg.Logging, "taskhive")
	log.Info("starting", logger.Fields("version", version.Get().Version))

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	// Signing keys are loaded once here and held immutable for the process
	// lifetime.
	keys, err := cfg.Auth.LoadKeys()
	if err != nil {
		return fmt.Errorf("load signing keys: %w", err)
	}

	db, err := store.Open(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(&users.User{}, &tasks.Task{}); err != nil {
			return err
		}
	}

	codec, err := token.NewCodec(cfg.Auth, keys)
	if err != nil {
		return err
	}
	issuer := token.NewIssuer(codec)
	hasher := password.NewHasher(cfg.Password)

	userStore := users.NewGormStore(db.Gorm)
	taskStore := tasks.NewGormStore(db.Gorm)

	validator := auth.NewValidator(codec, userStore)
	flow := auth.NewFlow(userStore, hasher, issuer, log)
	taskSvc := tasks.NewService(taskStore, log)

	limiter := ratelimit.New(cfg.RateLimit)
	defer limiter.Close()

	srv := server.New(cfg.Server, log)
	api.RegisterRoutes(srv.GinEngine(), api.Deps{
		Auth:      api.NewAuthHandler(flow),
		Tasks:     api.NewTaskHandler(taskSvc),
		Users:     api.NewUserHandler(userStore),
		Validator: validator,
		Limiter:   limiter,
		Log:       log,
	})

	if err := srv.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	return srv.Stop(context.Background())
}
