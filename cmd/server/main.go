package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"order-tracking-service/internal/config"
	"order-tracking-service/internal/controller"
	"order-tracking-service/internal/metrics"
	"order-tracking-service/internal/middleware"
	"order-tracking-service/internal/rabbit"
	"order-tracking-service/internal/repository"
	"order-tracking-service/internal/service"
)

func main() {
	cfg := config.Load()

	// Conexión a MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal(err)
	}
	db := client.Database(cfg.MongoDBName)

	// Repositorio y servicio
	repo := repository.NewMongoOrderRepository(db)
	trackingService := service.NewOrderTrackingService(repo)

	// Handlers
	ctrl := controller.NewOrderController(trackingService)

	// Métricas
	metrics.Register()

	// Router
	r := gin.Default()
	r.Use(middleware.CORS())

	r.GET("/orders/:orderId", ctrl.GetOrderStatus)
	r.GET("/orders/:orderId/history", ctrl.GetOrderHistory)
	r.GET("/customers/:customerId/orders", ctrl.GetCustomerOrders)
	r.GET("/dashboard/orders", ctrl.GetDashboardOrders)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Conexión a RabbitMQ
	conn, err := amqp091.Dial(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("Error conectando a RabbitMQ: %v", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("Error creando canal en RabbitMQ: %v", err)
	}

	rabbit.SetupConsumers(ch, cfg.EventsExchange, trackingService)

	// Ejecutar servidor
	log.Printf("Order Tracking Service ejecutándose en puerto %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
