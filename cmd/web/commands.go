package main

import (
	"context"
	"fmt"

	"github.com/cloudwego/hertz/pkg/app/server"
	hzconfig "github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"book-catalog/pkg/common/config"
	authservice "book-catalog/pkg/core/auth/service"
	"book-catalog/pkg/core/book/model"
	dao "book-catalog/pkg/core/book/repository/dao/impl"
	bookservice "book-catalog/pkg/core/book/service"
	"book-catalog/pkg/web/router"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "web",
		Short:        "Book catalog HTTP service",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(false)
		},
	}

	var seed bool
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Migrate the schema and start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(seed)
		},
	}
	serve.Flags().BoolVar(&seed, "seed", false, "seed sample books even when database.seed is off")

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the libros table",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := setup()
			if err != nil {
				return err
			}
			defer closeDB(db)
			hlog.Info("migration complete")
			return nil
		},
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample books into an empty catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := setup()
			if err != nil {
				return err
			}
			defer closeDB(db)

			books := bookservice.NewBookService(dao.NewGormBookRepository(db, cfg.Database.QueryTimeout))
			n, err := books.Seed(cmd.Context())
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d libros insertados\n", n)
			return nil
		},
	}

	root.AddCommand(serve, migrate, seedCmd)
	return root
}

// setup loads configuration, opens the database and migrates the schema.
func setup() (*config.Config, *gorm.DB, error) {
	cfg := config.Load()
	hlog.SetLevel(cfg.HlogLevel())

	db, err := cfg.InitDB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		closeDB(db)
		return nil, nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return cfg, db, nil
}

func runServe(forceSeed bool) error {
	cfg, db, err := setup()
	if err != nil {
		return err
	}

	books := bookservice.NewBookService(dao.NewGormBookRepository(db, cfg.Database.QueryTimeout))
	if cfg.Database.Seed || forceSeed {
		if _, err := books.Seed(context.Background()); err != nil {
			closeDB(db)
			return fmt.Errorf("seed: %w", err)
		}
	}

	issuer, err := authservice.NewTokenIssuer(cfg.Middleware.JWT)
	if err != nil {
		closeDB(db)
		return err
	}
	auth := authservice.NewAuthService(issuer, cfg.Auth.BcryptCost)

	opts := []hzconfig.Option{
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	}
	if size := cfg.Middleware.Security.MaxBodySize; size > 0 {
		opts = append(opts, server.WithMaxRequestBodySize(int(size)))
	}
	h := server.Default(opts...)
	h.OnShutdown = append(h.OnShutdown, func(ctx context.Context) {
		closeDB(db)
	})

	router.RegisterAPIs(h, router.Deps{
		Config: cfg,
		Books:  books,
		Auth:   auth,
	})

	hlog.Infof("listening on %s (env=%s, driver=%s)", cfg.Server.Address, cfg.Env, cfg.Database.Driver)
	h.Spin()
	return nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
