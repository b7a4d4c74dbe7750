package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP          string        // Host IP for the server
	RESTPort        int           // Port for the REST API
	GinMode         string        // Mode for the Gin framework (e.g., release, debug, test)
	DBHost          string        // Hostname or IP address for the database
	DBPort          int           // Port number for the database
	DBUser          string        // Username for the database
	DBPassword      string        // Password for the database
	DBName          string        // Name of the database
	RedisHost       string        // Hostname or IP address for Redis
	RedisPort       int           // Port number for Redis
	RedisPassword   string        // Password for Redis, empty when auth is disabled
	RedisDB         int           // Redis logical database index
	JWTSecret       string        // Secret key for JWT signing
	JWTIssuer       string        // Issuer claim for JWTs
	GridSize        int           // Rows and columns of every session maze
	PathDensity     float64       // Noise knob of the maze generator, within [0, 1]
	RegenInterval   time.Duration // How often a session maze is regenerated
	SessionDuration time.Duration // How long a session lasts before it is stopped
	SnapshotTTL     time.Duration // How long the latest session state is kept in Redis
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:          mustGetEnv("HOST_IP"),
		RESTPort:        mustGetEnvAsInt("REST_PORT"),
		GinMode:         getEnvWithDefault("GIN_MODE", "release"),
		DBHost:          mustGetEnv("DB_HOST"),
		DBPort:          mustGetEnvAsInt("DB_PORT"),
		DBUser:          mustGetEnv("DB_USER"),
		DBPassword:      mustGetEnv("DB_PASS"),
		DBName:          mustGetEnv("DB_NAME"),
		RedisHost:       mustGetEnv("REDIS_HOST"),
		RedisPort:       mustGetEnvAsInt("REDIS_PORT"),
		RedisPassword:   getEnvWithDefault("REDIS_PASS", ""),
		RedisDB:         getEnvAsIntWithDefault("REDIS_DB", 0),
		JWTSecret:       mustGetEnv("JWT_SECRET"),
		JWTIssuer:       mustGetEnv("JWT_ISSUER"),
		GridSize:        getEnvAsIntWithDefault("GRID_SIZE", 25),
		PathDensity:     getEnvAsFloatWithDefault("PATH_DENSITY", 0.18),
		RegenInterval:   time.Duration(getEnvAsIntWithDefault("REGEN_INTERVAL_SECONDS", 5)) * time.Second,
		SessionDuration: time.Duration(getEnvAsIntWithDefault("SESSION_DURATION_SECONDS", 300)) * time.Second,
		SnapshotTTL:     time.Duration(getEnvAsIntWithDefault("SNAPSHOT_TTL_SECONDS", 600)) * time.Second,
	}
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// mustGetEnvAsInt retrieves the value of an environment variable as an integer or logs a fatal error if not set or cannot be parsed.
func mustGetEnvAsInt(key string) int {
	valueStr := mustGetEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault parses an optional integer variable; a malformed value is fatal.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvAsFloatWithDefault parses an optional float variable; a malformed value is fatal.
func getEnvAsFloatWithDefault(key string, defaultValue float64) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be a number: %v", key, err)
	}
	return value
}
