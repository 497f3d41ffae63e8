package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	postgresStorage "event-manager-api/internal/adapters/database/postgres"
	redisAdapter "event-manager-api/internal/adapters/database/redis"
	"event-manager-api/internal/domain/service"
	"event-manager-api/pkg/logger"
)

// Config is the immutable process configuration, assembled once at start
// and passed explicitly to everything that needs it.
type Config struct {
	Database *gorm.DB
	Redis    *redisAdapter.Client
	Auth     service.AuthConfig
	Listen   string
}

func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	// Master credentials mirror the historical env defaults.
	viper.SetDefault("auth.master-username", "masteradmin")
	viper.SetDefault("auth.master-password", "masteradmin")
	viper.SetDefault("auth.token-ttl", 3*time.Hour)
	viper.SetDefault("service.server.host", "0.0.0.0")
	viper.SetDefault("service.server.port", 8080)

	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}
}

func Get() *Config {
	initConfig()

	err := logger.Init(logger.Config{
		Debug:     viper.GetBool("settings.debug"),
		LogToFile: viper.GetBool("settings.log-to-file"),
		LogsDir:   viper.GetString("settings.logs-dir"),
	})
	if err != nil {
		panic(err)
	}

	var gormConfig *gorm.Config
	if viper.GetBool("settings.debug") {
		newLogger := gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				SlowThreshold: time.Second,
				LogLevel:      gormLogger.Info,
				Colorful:      true,
			},
		)
		gormConfig = &gorm.Config{
			Logger: newLogger,
		}
	} else {
		gormConfig = &gorm.Config{}
	}

	dsn := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%d sslmode=disable TimeZone=UTC",
		viper.GetString("service.database.user"),
		viper.GetString("service.database.password"),
		viper.GetString("service.database.name"),
		viper.GetString("service.database.host"),
		viper.GetInt("service.database.port"),
	)

	database, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		logger.Log.Panicf("Failed to connect to the database: %v", err)
	} else {
		logger.Log.Info("Successfully connected to the database")
	}

	errMigrate := database.AutoMigrate(postgresStorage.Migrations...)
	if errMigrate != nil {
		logger.Log.Panicf("Failed to migrate database: %v", errMigrate)
	}

	redisDB, err := redisAdapter.New(redisAdapter.Options{
		Host:     viper.GetString("service.redis.host"),
		Port:     viper.GetString("service.redis.port"),
		Password: viper.GetString("service.redis.password"),
	})
	if err != nil {
		logger.Log.Panicf("Failed to connect to redis: %v", err)
	} else {
		logger.Log.Info("Successfully connected to redis")
	}

	return &Config{
		Database: database,
		Redis:    redisDB,
		Auth: service.AuthConfig{
			MasterUsername: viper.GetString("auth.master-username"),
			MasterPassword: viper.GetString("auth.master-password"),
			JWTSecret:      viper.GetString("auth.jwt-secret"),
			TokenTTL:       viper.GetDuration("auth.token-ttl"),
		},
		Listen: fmt.Sprintf("%s:%d",
			viper.GetString("service.server.host"),
			viper.GetInt("service.server.port"),
		),
	}
}
