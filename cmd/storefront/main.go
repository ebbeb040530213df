package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/MikeMC777/storefront/internal/checkout"
	"github.com/MikeMC777/storefront/internal/config"
	"github.com/MikeMC777/storefront/internal/db"
	"github.com/MikeMC777/storefront/internal/httpx"
	"github.com/MikeMC777/storefront/internal/order"
	"github.com/MikeMC777/storefront/internal/payment"
	"github.com/MikeMC777/storefront/internal/product"
	"github.com/MikeMC777/storefront/internal/session"
	"github.com/MikeMC777/storefront/internal/user"
)

// @title        Storefront API
// @version      1.0
// @description  Product catalog, session cart, hosted checkout and order history.
// @BasePath     /
func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("[db] %v", err)
	}
	defer pool.Close()
	if err := db.Migrate(pool); err != nil {
		log.Fatalf("[db] %v", err)
	}

	products := product.NewPGRepo(pool)
	if cfg.SeedProducts {
		if _, err := product.Seed(ctx, products, product.DemoCatalog); err != nil {
			log.Fatalf("[db] seed: %v", err)
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("[session] redis ping: %v", err)
	}

	events := order.NewPublisher(cfg.KafkaBrokers, cfg.OrdersTopic)
	defer events.Close()

	reg := prometheus.DefaultRegisterer
	orders := order.NewPGRepo(pool)
	sessions := session.NewManager(
		session.NewRedisStore(rdb, cfg.SessionTTL),
		session.NewCodec(cfg.SessionSecret, cfg.SessionTTL),
		cfg.SessionTTL,
	)
	sessions.Secure = strings.HasPrefix(cfg.PublicBaseURL, "https://")

	a := &app{
		products: products,
		users:    user.NewService(user.NewPGRepo(pool)),
		orders:   orders,
		checkout: &checkout.Service{
			Products: products,
			Orders:   orders,
			Gateway:  payment.NewStripeGateway(cfg.StripeSecretKey),
			Events:   events,
			Metrics:  checkout.NewMetrics(reg),
			Currency: cfg.Currency,
		},
		sessions:      sessions,
		publicBaseURL: cfg.PublicBaseURL,
	}

	metrics := httpx.NewMetrics(reg)
	r := newRouter(a, metrics.Middleware())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	health, err := startHealth(cfg.HealthGRPCAddr)
	if err != nil {
		log.Fatalf("[health] %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("storefront listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[http] %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")
	health.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[http] shutdown: %v", err)
	}
}
