package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"marketplace/cmd"
	"marketplace/internal/adapters/out/amqp"
	"marketplace/internal/adapters/out/postgres/cartrepo"
	"marketplace/internal/adapters/out/postgres/lookuprepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/core/ports"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := connectDB(configs)
	publisher := buildPublisher(configs, logger)

	app, err := cmd.NewCompositionRoot(configs, gormDB, publisher)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	jobManager := app.CreateJobManager(logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:      goDotEnvVariable("HTTP_PORT"),
		DBHost:        goDotEnvVariable("DB_HOST"),
		DBPort:        goDotEnvVariable("DB_PORT"),
		DBUser:        goDotEnvVariable("DB_USER"),
		DBPassword:    goDotEnvVariable("DB_PASSWORD"),
		DBName:        goDotEnvVariable("DB_NAME"),
		DBSslMode:     goDotEnvVariable("DB_SSLMODE"),
		AmqpURL:       os.Getenv("AMQP_URL"),
		DeliveryFee:   envOrDefault("DELIVERY_FEE", "2.00"),
		MaxPendingAge: durationOrDefault("MAX_PENDING_AGE", 15*time.Minute),
		CartRetention: durationOrDefault("CART_RETENTION", 7*24*time.Hour),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("Invalid duration in %s: %v", key, err)
	}
	return d
}

func connectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{},
		&cartrepo.CartDTO{}, &cartrepo.CartItemDTO{},
		&lookuprepo.RestaurantDTO{}, &lookuprepo.MenuItemDTO{}, &lookuprepo.AddressDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err = orderrepo.CreateActiveDeliveryIndex(gormDB); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	return gormDB
}

func buildPublisher(configs cmd.Config, logger *slog.Logger) ports.EventPublisher {
	if configs.AmqpURL == "" {
		return amqp.NewNoopPublisher(logger)
	}

	publisher, err := amqp.NewPublisher(configs.AmqpURL, logger)
	if err != nil {
		log.Fatalf("Failed to connect to message broker: %v", err)
	}
	return publisher
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	app.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
