package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"warehouse/cmd"
	httpin "warehouse/internal/adapters/in/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}
	defer app.Close()

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:            goDotEnvVariable("HTTP_PORT"),
		DBHost:              goDotEnvVariable("DB_HOST"),
		DBPort:              goDotEnvVariable("DB_PORT"),
		DBUser:              goDotEnvVariable("DB_USER"),
		DBPassword:          goDotEnvVariable("DB_PASSWORD"),
		DBName:              goDotEnvVariable("DB_NAME"),
		DBSslMode:           goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:           goDotEnvVariable("KAFKA_HOST"),
		KafkaOrderTopic:     goDotEnvVariable("KAFKA_ORDER_TOPIC"),
		CarrierLabelBaseURL: goDotEnvVariable("CARRIER_LABEL_BASE_URL"),
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

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser,
		config.DBPassword, config.DBName, config.DBSslMode,
	)
	return gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	server := httpin.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateAllocateOrderCommandHandler(),
		app.CreateDeallocateOrderCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateHoldOrderCommandHandler(),
		app.CreateReleaseOrderCommandHandler(),
		app.CreateGeneratePickTasksCommandHandler(),
		app.CreateAssignPickTaskCommandHandler(),
		app.CreatePickItemCommandHandler(),
		app.CreateCompletePickTaskCommandHandler(),
		app.CreateGeneratePackTaskCommandHandler(),
		app.CreateOpenCartonCommandHandler(),
		app.CreatePackItemCommandHandler(),
		app.CreateDeclarePackVarianceCommandHandler(),
		app.CreateGenerateShippingLabelCommandHandler(),
		app.CreateCompletePackTaskCommandHandler(),
		app.CreateCreateShipmentCommandHandler(),
		app.CreateUpdateDeliveryStatusCommandHandler(),
		app.CreateCheckAllocationAvailabilityQueryHandler(),
		app.CreateGetActiveOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil {
			e.Logger.Info("Shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}
