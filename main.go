package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/suessflorian/gqlfetch"
	"github.com/urfave/cli/v2"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"go.uber.org/zap"
	"paskoocheh/internal/accounts"
	"paskoocheh/internal/blog"
	"paskoocheh/internal/cache"
	"paskoocheh/internal/catalog"
	"paskoocheh/internal/config"
	"paskoocheh/internal/gql"
	"paskoocheh/internal/i18n"
	"paskoocheh/internal/locale"
	"paskoocheh/internal/logging"
	"paskoocheh/internal/platforms"
	"paskoocheh/internal/rewards"
	"paskoocheh/internal/session"
	"paskoocheh/internal/web"
	"paskoocheh/internal/web/appcore"
)

const shutdownTimeout = 10 * time.Second

func main() {
	app := &cli.App{
		Name:  "paskoocheh",
		Usage: "Paskoocheh web frontend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Value: ".env",
				Usage: "dotenv file loaded before reading the environment; missing files are ignored",
			},
		},
		Before: func(c *cli.Context) error {
			err := godotenv.Load(c.String("env-file"))
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("load %s: %w", c.String("env-file"), err)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the site",
				Action: serve,
			},
			{
				Name:  "schema",
				Usage: "Download the backend GraphQL schema for code generation",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Value: "internal/gql/schema.graphql",
						Usage: "file the schema is written to",
					},
				},
				Action: fetchSchema,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	store := cache.New(cache.Options{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: cfg.CacheTTL,
	}, logger)
	defer func() { _ = store.Close() }()

	messages, err := i18n.Load()
	if err != nil {
		return err
	}

	sdk := gql.NewSDK(gql.Options{
		Endpoint: cfg.GraphQLEndpoint(),
		Timeout:  cfg.GraphQLTimeout,
		Logger:   logger,
	})
	sessions := session.NewManager(cfg.SessionLifetime, !cfg.IsDevelopment())
	defaultLocale, _ := locale.Parse(cfg.DefaultLocale)

	appCtx := appcore.NewContext(appcore.Dependencies{
		Settings: appcore.Settings{
			PublicURL: cfg.PublicURL,
			Defaults:  locale.Defaults{Locale: defaultLocale, Platform: cfg.DefaultPlatform},
			PageSize:  cfg.PageSize,
			MaxItems:  cfg.MaxPreviewItems,
			LiveViews: cfg.LiveViews,
		},
		Services: appcore.Services{
			Platforms: platforms.NewService(sdk.Anonymous(http.MethodGet), store, platforms.ServiceConfig{
				TTL:      cfg.CacheTTL,
				MediaURL: cfg.MediaURL,
			}),
			Catalog: catalog.NewService(catalog.Config{
				PageSize:  cfg.PageSize,
				PublicURL: cfg.PublicURL,
				MediaURL:  cfg.MediaURL,
			}),
			Blog: blog.NewService(blog.Config{
				PageSize:  cfg.PageSize,
				PublicURL: cfg.PublicURL,
				MediaURL:  cfg.MediaURL,
				Cache:     store,
				CacheTTL:  cfg.CacheTTL,
			}),
			Accounts: accounts.NewService(sdk, logger),
			Rewards: rewards.NewService(rewards.Config{
				PublicURL:       cfg.PublicURL,
				ReferralEnabled: cfg.ReferralEnabled,
			}),
		},
		Clients: sdk,
		Tokens:  session.NewSCSStore(sessions),
		Strings: messages,
		Logger:  logger,
	})

	handler, err := web.NewRouter(web.Options{
		AppContext:          appCtx,
		Sessions:            sessions,
		StaticDir:           cfg.StaticDir,
		LiveNavigationCache: cfg.CacheLiveNavigation,
		LoginRatePerMinute:  cfg.LoginRatePerMinute,
		TrustedOrigins:      cfg.TrustedOrigins,
		Logger:              logger,
	})
	if err != nil {
		return fmt.Errorf("handler setup failed: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		logger.Info("paskoocheh listening",
			zap.String("addr", cfg.ListenAddr),
			zap.String("backend", cfg.BackendURL),
			zap.String("default_locale", string(defaultLocale)),
		)
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// fetchSchema introspects the backend and writes the schema genqlient generates from. The
// result is parsed before writing so a broken response never replaces a working schema.
func fetchSchema(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context, cfg.GraphQLTimeout)
	defer cancel()

	schema, err := gqlfetch.BuildClientSchema(ctx, cfg.GraphQLEndpoint(), true)
	if err != nil {
		return fmt.Errorf("introspect %s: %w", cfg.GraphQLEndpoint(), err)
	}

	out := c.String("out")
	if _, err := gqlparser.LoadSchema(&ast.Source{Name: out, Input: schema}); err != nil {
		return fmt.Errorf("backend returned an invalid schema: %w", err)
	}

	if err := os.WriteFile(out, []byte(schema), 0o644); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "wrote %s\n", out)
	return nil
}
