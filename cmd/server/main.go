package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"fonda/internal/admin"
	"fonda/internal/comment"
	"fonda/internal/config"
	"fonda/internal/customer"
	"fonda/internal/domain"
	"fonda/internal/guisado"
	"fonda/internal/guisado/availability"
	guisadoservice "fonda/internal/guisado/service"
	"fonda/internal/infrastructure/broker"
	"fonda/internal/infrastructure/logger"
	"fonda/internal/infrastructure/mysql"
	"fonda/internal/order"
	"fonda/internal/product"
	"fonda/internal/sales"
	"fonda/internal/server"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load("internal/config/config.yaml")
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	if cfg.Database.AutoMigrate {
		if err := mysql.Migrate(ctx, db); err != nil {
			zapLogger.Fatal("running migrations", zap.Error(err))
		}
	}

	g, ctx := errgroup.WithContext(ctx)

	hub := availability.NewHub(zapLogger)
	// cerrar los streams SSE para que Shutdown no espere a que expiren
	g.Go(func() error {
		<-ctx.Done()
		hub.Close()
		return nil
	})

	var publisher guisadoservice.EventPublisher = hub
	if cfg.RabbitMQ.URL != "" {
		mq, err := broker.New(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, zapLogger)
		if err != nil {
			zapLogger.Warn("rabbitmq unavailable, availability events stay in-process", zap.Error(err))
		} else {
			defer mq.Close()
			publisher = mq
			g.Go(func() error {
				return mq.Consume(ctx, func(ev domain.AvailabilityEvent) { hub.Broadcast(ev) })
			})
			zapLogger.Info("rabbitmq connected", zap.String("exchange", cfg.RabbitMQ.Exchange))
		}
	}

	customers := customer.NewModule(db, zapLogger)
	products := product.NewModule(db, zapLogger)
	adminModule := admin.NewModule(db, cfg.Auth, zapLogger)

	handlers := server.Handlers{
		Product:  products.Controller,
		Guisado:  guisado.NewModule(db, publisher, hub, cfg.App.Location, zapLogger),
		Order:    order.NewModule(db, customers, products.Service, cfg, zapLogger),
		Sales:    sales.NewModule(db, cfg.App.Location, cfg.Order.TxTimeout, zapLogger),
		Comment:  comment.NewModule(db, customers, cfg.Order.TxTimeout, zapLogger),
		Admin:    adminModule.Controller,
		Verifier: adminModule.Auth,
		DB:       db,
	}

	limiter := server.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	g.Go(func() error {
		limiter.Run(ctx)
		return nil
	})

	router := server.NewRouter(handlers, server.RouterOptions{
		RequireAdminToken: cfg.Auth.RequireAdminToken,
		Limiter:           limiter,
	}, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)
	g.Go(func() error {
		return srv.Run(ctx)
	})

	if err := g.Wait(); err != nil {
		zapLogger.Error("application terminated with error", zap.Error(err))
		os.Exit(1)
	}
}
