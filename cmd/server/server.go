package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexedwards/scs/v2"
	"github.com/ardanlabs/conf/v3"
	"github.com/irsalhamdi/learnhub/api"
	"github.com/irsalhamdi/learnhub/config"
	"github.com/irsalhamdi/learnhub/core/auth"
	"github.com/irsalhamdi/learnhub/core/course"
	"github.com/irsalhamdi/learnhub/database"
	"github.com/irsalhamdi/learnhub/rate"
	"github.com/irsalhamdi/learnhub/storage"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if err := Run(log); err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			return
		}
		log.Error(err)
		os.Exit(1)
	}
}

func Run(logger *logrus.Logger) error {
	var cfg config.Config
	help, err := conf.Parse(config.Prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return err
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	logger.Infof("starting server")
	defer logger.Info("shutdown complete")

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	logger.Infof("startup config:\n%v", out)

	lw := logger.Writer()
	defer lw.Close()
	errLog := log.New(lw, "", 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	catalog, err := loadCatalog(ctx, logger, cfg)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	logger.Infof("catalog ready with %d courses from %s", catalog.Len(), cfg.Catalog.Source)

	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.Session.Lifetime
	sessionManager.Cookie.Name = "learnhub_session"
	sessionManager.Cookie.Secure = cfg.Session.Secure
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode

	source, closeSource, err := storeSource(ctx, cfg, sessionManager)
	if err != nil {
		return fmt.Errorf("preparing browser store: %w", err)
	}
	defer closeSource()

	users := auth.NewDirectory(cfg.Auth.BcryptCost)
	demo := auth.UserNew{Name: cfg.Auth.DemoName, Email: cfg.Auth.DemoEmail, Password: cfg.Auth.DemoPassword}
	if _, err := users.Create(ctx, demo, auth.RoleUser); err != nil {
		return fmt.Errorf("creating demo account: %w", err)
	}

	limiter := rate.NewLimiter(ctx, cfg.Rate.Burst, cfg.Rate.Expiry, rate.Every(cfg.Rate.Every))

	mux := api.APIMux(api.APIConfig{
		CorsOrigin:  cfg.Cors.Origin,
		Log:         logger,
		Session:     sessionManager,
		Store:       source,
		Catalog:     catalog,
		Users:       users,
		Limiter:     limiter,
		NotifyTTL:   cfg.Notify.TTL,
		NotifyLimit: cfg.Notify.Limit,
	})

	api := http.Server{
		Handler:      mux,
		Addr:         cfg.Web.Address,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     errLog,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Infof("starting api router at %s", api.Addr)
		serverErrors <- api.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Infof("shutting down: signal %s", sig)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}
	return nil
}

func loadCatalog(ctx context.Context, logger logrus.FieldLogger, cfg config.Config) (*course.Catalog, error) {
	switch cfg.Catalog.Source {
	case "embedded":
		return course.LoadEmbedded()

	case "file":
		return course.LoadFile(cfg.Catalog.Path)

	case "postgres":
		db, err := database.Open(cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to open db connection: %w", err)
		}
		defer db.Close()

		if err := database.StatusCheck(ctx, db); err != nil {
			return nil, err
		}

		if cfg.DB.Migrate {
			if err := database.Migrate(db); err != nil {
				return nil, err
			}
			seed, err := course.LoadEmbedded()
			if err != nil {
				return nil, err
			}
			if err := course.Seed(ctx, db, seed); err != nil {
				return nil, fmt.Errorf("seeding catalog: %w", err)
			}
			logger.Info("catalog schema up to date")
		}

		return course.LoadDB(ctx, db)
	}

	return nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
}

func storeSource(ctx context.Context, cfg config.Config, sm *scs.SessionManager) (storage.Source, func(), error) {
	switch cfg.Storage.Backend {
	case "session":
		return storage.NewSessionSource(sm, cfg.Storage.QuotaBytes), func() {}, nil

	case "redis":
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing redis url: %w", err)
		}
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("reaching redis: %w", err)
		}
		return storage.NewRedisSource(client, sm, cfg.Redis.TTL), func() { client.Close() }, nil
	}

	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
