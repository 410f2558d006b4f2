package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/classlog/classlog/internal/auth"
	"github.com/classlog/classlog/internal/config"
	"github.com/classlog/classlog/internal/repository"
	"github.com/classlog/classlog/internal/server"
	"github.com/classlog/classlog/internal/storage"
)

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Debug),
		glog.WithName("classlog"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	if err := run(lgr); err != nil {
		lgr.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(lgr *glog.BaseLogger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DSN)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to open database")
	}
	defer sqldb.Close()

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if err := repository.CreateTables(ctx, db); err != nil {
		return err
	}

	repos := repository.NewManager(db)

	tokens := auth.NewTokenService(cfg.GetSigningKey(), cfg.GetTokenTTL(), lgr.GetLogger("tokens"))
	resolver := auth.NewSessionResolver(tokens, repos.Users(), lgr.GetLogger("auth"))

	files, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		return err
	}

	srv := server.New(cfg, repos, resolver, files, lgr.GetLogger("http"))

	errCh := make(chan error, 1)
	go func() {
		lgr.Info("listening", "addr", cfg.ListenAddr, "environment", cfg.Environment)
		errCh <- srv.Listen(cfg.ListenAddr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		lgr.Info("shutting down", "signal", sig.String())
		return srv.Shutdown()
	}
}
