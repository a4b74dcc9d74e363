package main

import (
	"context"
	"log"

	"github.com/Renal37/campus-eats/internal/cache"
	"github.com/Renal37/campus-eats/internal/database"
	router "github.com/Renal37/campus-eats/internal/http"
	"github.com/Renal37/campus-eats/internal/logger"
	"github.com/Renal37/campus-eats/internal/services"
	"github.com/Renal37/campus-eats/internal/utils"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
)

func main() {
	ctx := context.Background()
	config := NewConfig()

	if err := logger.Initialize(config.logLevel, config.env); err != nil {
		log.Fatalf("Logger wasn't initialized due to %s", err)
	}

	db, err := database.New(ctx, config.dsn)

	if err != nil {
		log.Fatalf("Database wasn't initialized due to %s", err)
	}

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Migrations weren't run due to %s", err)
	}

	// Кэш меню включается только при заданном адресе Redis.
	var menuStore cache.MenuStore = db
	if config.redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: config.redisAddr})
		menuStore = cache.NewCachedMenuStore(db, rdb)
	}

	// Шина уведомлений опциональна: без нее уведомления только пишутся в базу.
	var nc *nats.Conn
	if config.natsURL != "" {
		nc, err = nats.Connect(config.natsURL)
		if err != nil {
			log.Printf("WARNING: NATS connection failed, notifications won't be mirrored: %s\n", err)
			nc = nil
		}
	}

	log.Printf("Running server on %s\n", config.endpoint)

	notificationService := services.NewNotificationService(db, nc)
	creditService := services.NewCreditService(db, notificationService)
	orderService := services.NewOrderService(db, creditService, notificationService)

	utils.HandleTerminationProcess(func() {
		if nc != nil {
			nc.Close()
		}
		db.Close()
	})

	router.New(
		router.Config{Endpoint: config.endpoint},
		services.NewAuthService(db),
		services.NewJWTService(config.authSecretKey),
		orderService,
		creditService,
		services.NewCartService(db),
		services.NewMenuService(menuStore),
		services.NewRestaurantService(db),
		services.NewFeedbackService(db, creditService),
		services.NewAdminService(db, creditService),
		notificationService,
	).Run()
}
