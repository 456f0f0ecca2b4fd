package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"dispatch/cmd"
	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/in/ws"
	"dispatch/internal/adapters/out/postgres/bookingrepo"
	"dispatch/internal/adapters/out/postgres/providerrepo"
	"dispatch/internal/adapters/out/postgres/settingsrepo"
	"dispatch/internal/core/domain/model/settings"
	"dispatch/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs := getConfigs()

	gormDB, err := openDatabase(configs)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err = migrateDatabase(gormDB, configs); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	app := cmd.NewCompositionRoot(configs, gormDB)

	jobManager := jobs.NewJobManager(
		app.CreateRebroadcastPendingBookingsCommandHandler(),
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		logger.Error("Failed to start background jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:          goDotEnvVariable("HTTP_PORT"),
		DBHost:            goDotEnvVariable("DB_HOST"),
		DBPort:            goDotEnvVariable("DB_PORT"),
		DBUser:            goDotEnvVariable("DB_USER"),
		DBPassword:        goDotEnvVariable("DB_PASSWORD"),
		DBName:            goDotEnvVariable("DB_NAME"),
		DBSslMode:         goDotEnvVariable("DB_SSLMODE"),
		MinimumBalance:    goDotEnvFloat("MINIMUM_BALANCE", 100),
		CommissionPercent: goDotEnvFloat("COMMISSION_PERCENT", 10),
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		slog.Error("Error loading .env file", "error", err)
		os.Exit(1)
	}
	return os.Getenv(key)
}

func goDotEnvFloat(key string, fallback float64) float64 {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		slog.Error("Invalid numeric value in .env", "key", key, "value", raw)
		os.Exit(1)
	}
	return value
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	return gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
}

func migrateDatabase(gormDB *gorm.DB, configs cmd.Config) error {
	err := gormDB.AutoMigrate(
		&bookingrepo.BookingDTO{},
		&providerrepo.ProviderDTO{},
		&providerrepo.CapabilityDTO{},
		&settingsrepo.SettingsDTO{},
	)
	if err != nil {
		return err
	}

	defaults, err := settings.NewPlatformSettings(configs.MinimumBalance, configs.CommissionPercent)
	if err != nil {
		return err
	}

	return settingsrepo.Seed(context.Background(), gormDB, defaults)
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.Use(middleware.Recover())

	server := httpin.NewServer(
		app.CreateCreateBookingCommandHandler(),
		app.CreateAcceptBookingCommandHandler(),
		app.CreateStartServiceCommandHandler(),
		app.CreateCompleteServiceCommandHandler(),
		app.CreateCancelBookingCommandHandler(),
		app.CreateCreateProviderCommandHandler(),
		app.CreateTopUpWalletCommandHandler(),
		app.CreateUpdateProviderLocationCommandHandler(),
		app.CreateGetNearbyPendingBookingsQueryHandler(),
		app.CreateGetOwnerBookingsQueryHandler(),
		app.CreateGetProviderBookingsQueryHandler(),
		app.PresenceRegistry(),
	)
	server.RegisterRoutes(e)

	wsHandler := ws.NewHandler(
		app.Hub(),
		app.CreateAcceptBookingCommandHandler(),
		app.CreateUpdateProviderLocationCommandHandler(),
	)
	e.GET("/ws", wsHandler.HandleConnection)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
