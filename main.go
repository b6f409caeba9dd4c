package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yourusername/invoicer/billing"
	"github.com/yourusername/invoicer/config"
	"github.com/yourusername/invoicer/handlers"
	"github.com/yourusername/invoicer/invoicepdf"
	"github.com/yourusername/invoicer/logger"
	"github.com/yourusername/invoicer/store"
)

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.New,
			config.InitDB,
			newSnowflakeNode,
			store.New,
			newGenerator,
			newBillingService,
			newRouter,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		fx.Invoke(ensureSettings),
		fx.Invoke(runHTTP),
	)
	app.Run()
}

func newSnowflakeNode(cfg *config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.SnowflakeNode)
}

func newGenerator(st *store.Store, cfg *config.Config, log *zap.Logger) *invoicepdf.Generator {
	return invoicepdf.NewGenerator(st, log, invoicepdf.WithBatchLimit(cfg.ExportConcurrency))
}

func newBillingService(st *store.Store, node *snowflake.Node, log *zap.Logger) *billing.Service {
	return billing.NewService(st, node, log)
}

func newRouter(cfg *config.Config, log *zap.Logger, st *store.Store, gen *invoicepdf.Generator, svc *billing.Service, node *snowflake.Node) *gin.Engine {
	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	return handlers.NewRouter(handlers.Deps{
		Config:    cfg,
		Logger:    log,
		Store:     st,
		Generator: gen,
		Billing:   svc,
		Node:      node,
	})
}

// ensureSettings creates the default settings row of a fresh installation.
func ensureSettings(lc fx.Lifecycle, st *store.Store) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_, err := st.EnsureSettings(ctx)
			return err
		},
	})
}

func runHTTP(lc fx.Lifecycle, cfg *config.Config, router *gin.Engine, db *gorm.DB, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("Starting invoicer API server", zap.String("addr", srv.Addr), zap.Bool("auth", cfg.AuthEnabled()))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			err := srv.Shutdown(ctx)
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				sqlDB.Close()
			}
			_ = log.Sync()
			return err
		},
	})
}
