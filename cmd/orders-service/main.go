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

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Nest-Microservices-Learning-Oscar/orders-ms/internal/cache"
	"github.com/Nest-Microservices-Learning-Oscar/orders-ms/internal/config"
	"github.com/Nest-Microservices-Learning-Oscar/orders-ms/internal/httpx"
	ord "github.com/Nest-Microservices-Learning-Oscar/orders-ms/internal/order"
)

func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("[orders] pgx pool: %v", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("[orders] database ping: %v", err)
	}
	log.Printf("[orders] database connected")

	var store cache.Cache
	if cfg.RedisAddr != "" {
		store = cache.NewRedis(cfg.RedisAddr, "orders-ms")
	}
	catalog := ord.NewCatalog(cfg.CatalogBaseURL, cfg.CatalogTimeout, store)
	svc := ord.NewService(ord.NewPGRepo(pool), catalog)

	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.POST("/orders", createOrderHandler(svc))
	r.GET("/orders", listOrdersHandler(svc))
	r.GET("/orders/:id", getOrderHandler(svc))
	r.PUT("/orders/:id/status", changeOrderStatusHandler(svc))

	srv := &http.Server{Addr: cfg.OrdersAddr, Handler: r}
	go func() {
		log.Printf("orders-service listening on %s", cfg.OrdersAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[orders] serve: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		log.Printf("[orders] shutdown: %v", err)
	}
	log.Printf("[orders] stopped")
}
