package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nstepanov-hw/shop-api/internal/config"
	"github.com/nstepanov-hw/shop-api/internal/es"
	"github.com/nstepanov-hw/shop-api/internal/events"
	"github.com/nstepanov-hw/shop-api/internal/handlers"
	"github.com/nstepanov-hw/shop-api/internal/logging"
	"github.com/nstepanov-hw/shop-api/internal/store"
	httpserver "github.com/nstepanov-hw/shop-api/internal/transport/http"
	"github.com/nstepanov-hw/shop-api/internal/users"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	var prod *events.Producer
	if configuration.KAFKA_ADDRESS != "" {
		brokers := []string{configuration.KAFKA_ADDRESS}
		topics := []string{"user_events", "cart_events", "item_events"}
		prod, err = events.NewProducer(brokers, topics)
		if err != nil {
			log.Fatal(err)
		}
	}

	var esClient *elasticsearch.Client
	if configuration.ES_URL != "" {
		esClient, err = es.NewClient(configuration)
		if err != nil {
			log.Fatal(err)
		}
	}

	userService := users.NewService(
		&store.UserStore{DB: db},
		users.PasswordLongerThan8,
		users.PasswordHasDigit,
	)

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), logging.RequestLogger(logger))

	deps := httpserver.Deps{
		Users:       userService,
		MathHandler: &handlers.MathHandler{},
		ItemHandler: &handlers.ItemHandler{
			Store:    &store.ItemStore{DB: db},
			Producer: prod,
			ES:       esClient,
			Index:    configuration.ES_INDEX,
		},
		CartHandler: &handlers.CartHandler{
			Store:    &store.CartStore{DB: db},
			Producer: prod,
		},
		UserHandler: &handlers.UserHandler{
			Users:     userService,
			Producer:  prod,
			JWTSecret: []byte(configuration.JWT_SECRET),
		},
		SearchHandler: &handlers.SearchHandler{ES: esClient, Index: configuration.ES_INDEX},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
