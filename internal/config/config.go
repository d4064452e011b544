package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string
	DatabasePath    string
	DatabaseURL     string
	MigrationsPath  string
	RedisAddr       string
	DailyPuzzleCron string
	WordSampleSize  int
}

// Load reads configuration from environment variables with sensible
// defaults. A .env file in the working directory is applied first when
// present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		DatabaseType:    getEnv("DB_TYPE", "sqlite"),
		DatabasePath:    getEnv("DB_PATH", "./wordstreak.db"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		DailyPuzzleCron: getEnv("DAILY_PUZZLE_CRON", "0 0 * * *"),
		WordSampleSize:  getEnvInt("WORD_SAMPLE_SIZE", 500),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Ignoring non-numeric value %q for %s", value, key)
		return defaultValue
	}
	return parsed
}
