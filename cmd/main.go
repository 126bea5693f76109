package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/weiawesome/stream-service/internal/auth"
	"github.com/weiawesome/stream-service/internal/config"
	"github.com/weiawesome/stream-service/internal/dispatcher"
	"github.com/weiawesome/stream-service/internal/events"
	"github.com/weiawesome/stream-service/internal/handler"
	"github.com/weiawesome/stream-service/internal/history"
	"github.com/weiawesome/stream-service/internal/hub"
	"github.com/weiawesome/stream-service/internal/kafka"
	"github.com/weiawesome/stream-service/internal/registry"
	"github.com/weiawesome/stream-service/internal/relay"
	"github.com/weiawesome/stream-service/internal/session"
	"github.com/weiawesome/stream-service/internal/store"
	pkglog "github.com/weiawesome/stream-service/pkg/log"
	"github.com/weiawesome/stream-service/pkg/middleware"
	"github.com/weiawesome/stream-service/pkg/pubsub"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	if cfg.Server.InstanceID == "" {
		cfg.Server.InstanceID = uuid.New().String()
	}
	cfg.Log.InstanceID = cfg.Server.InstanceID
	pkglog.Init(cfg.Log)
	logger := pkglog.L()

	if err := run(cfg); err != nil {
		logger.Fatal().Err(err).Msg("stream-service stopped with error")
	}
	logger.Info().Msg("stream-service stopped")
}

func run(cfg *config.Config) error {
	logger := pkglog.L()
	logger.Info().Str("host", cfg.Server.Host).Int("port", cfg.Server.Port).Msg("starting stream-service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize persistence
	gw, err := store.NewRedisGateway(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer gw.Close()
	logger.Info().Str("address", cfg.Redis.Address).Msg("connected to redis")

	resolver, err := auth.NewResolver(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to configure auth: %w", err)
	}

	// Core services
	wsHub := hub.NewHub(cfg.WebSocket)
	rooms := registry.New(gw)
	ring := history.NewRing(gw, cfg.History.MaxMessages)
	var members session.Membership
	if cfg.Relay.Enabled {
		members = session.NewSharedMembership(gw, cfg.Server.InstanceID)
	}
	sessions := session.NewManager(wsHub, rooms, members)

	bus := events.NewBus()
	bus.SubscribeAll(wsHub.Deliver)
	d := dispatcher.New(rooms, ring, sessions, bus)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		wsHub.Run(gctx)
		return nil
	})

	// Cross-instance relay
	if cfg.Relay.Enabled {
		ps := pubsub.NewRedisPubSubFromClient(gw.Client(), cfg.Relay.Buffer)
		rel := relay.New(ps, cfg.Relay.Channel, cfg.Server.InstanceID, wsHub.Deliver)
		bus.SubscribeAll(rel.Forward)
		g.Go(func() error {
			rel.Run(gctx)
			return nil
		})
		logger.Info().Str("channel", cfg.Relay.Channel).Msg("relay enabled")
	}

	// Lifecycle events
	if cfg.Kafka.Enabled {
		producer, err := kafka.NewConfluentProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.Partitions)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to create kafka producer, stream events disabled")
		} else {
			defer producer.Close()
			kafka.Attach(bus, producer)
			logger.Info().Str("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("connected to kafka")
		}
	}

	// HTTP surface
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(pkglog.GinMiddleware(logger))

	wsHandler := handler.NewWSHandler(sessions, d, cfg.WebSocket, cfg.Server.FrontendURL)
	handler.NewHandler(rooms, wsHub).RegisterRoutes(router, wsHandler, middleware.Identify(resolver))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g.Go(func() error {
		logger.Info().Str("addr", server.Addr).Msg("stream-service listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down stream-service")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		wsHub.Shutdown()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
