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
	HostIP           string        // Host IP for the server
	RESTPort         int           // Port for the REST API
	GinMode          string        // Mode for the Gin framework (e.g., release, debug, test)
	LogLevel         string        // Minimum log level (debug, info, warning, error)
	MongoURI         string        // MongoDB connection string; empty keeps the catalog in memory
	DBName           string        // Name of the database
	RedisAddr        string        // Redis address; empty keeps rendered mazes in memory
	RedisPassword    string        // Password for Redis
	RenderCacheTTL   time.Duration // How long rendered mazes stay cached
	JWTSecret        string        // Secret key for signing share tokens
	JWTIssuer        string        // Issuer claim for share tokens
	ShareTTL         time.Duration // Lifetime of share tokens
	MazeSize         int           // Default grid side
	MazeMaxSize      int           // Largest grid side accepted from clients
	MazeStrategy     string        // Spanning strategy (rejection or kruskal)
	MazeIterationCap int           // Draw cap before the shuffled finish; 0 disables it
	MazeVerify       bool          // Run the invariant check on every generated maze
	LineWidth        float64       // Stroke width for SVG/PNG output
	CellSize         int           // Pixels per cell for SVG/PNG output
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
		HostIP:           getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:         getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:          getEnvWithDefault("GIN_MODE", "release"),
		LogLevel:         getEnvWithDefault("LOG_LEVEL", "info"),
		MongoURI:         getEnvWithDefault("MONGO_URI", ""),
		DBName:           getEnvWithDefault("DB_NAME", "vinom_maze"),
		RedisAddr:        getEnvWithDefault("REDIS_ADDR", ""),
		RedisPassword:    getEnvWithDefault("REDIS_PASSWORD", ""),
		RenderCacheTTL:   getEnvAsDurationWithDefault("RENDER_CACHE_TTL", time.Hour),
		JWTSecret:        getEnvWithDefault("JWT_SECRET", ""),
		JWTIssuer:        getEnvWithDefault("JWT_ISSUER", "vinom-maze"),
		ShareTTL:         getEnvAsDurationWithDefault("SHARE_TTL", 7*24*time.Hour),
		MazeSize:         getEnvAsIntWithDefault("MAZE_SIZE", 30),
		MazeMaxSize:      getEnvAsIntWithDefault("MAZE_MAX_SIZE", 256),
		MazeStrategy:     getEnvWithDefault("MAZE_STRATEGY", "rejection"),
		MazeIterationCap: getEnvAsIntWithDefault("MAZE_ITERATION_CAP", 0),
		MazeVerify:       getEnvAsBoolWithDefault("MAZE_VERIFY", false),
		LineWidth:        getEnvAsFloatWithDefault("LINE_WIDTH", 2),
		CellSize:         getEnvAsIntWithDefault("CELL_SIZE", 16),
	}
}

// MustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func MustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
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

// getEnvAsIntWithDefault retrieves an integer environment variable or returns a default value if not set.
// A value that cannot be parsed is fatal.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvAsFloatWithDefault retrieves a float environment variable or returns a default value if not set.
func getEnvAsFloatWithDefault(key string, defaultValue float64) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be a number: %v", key, err)
	}
	return value
}

// getEnvAsBoolWithDefault retrieves a boolean environment variable or returns a default value if not set.
func getEnvAsBoolWithDefault(key string, defaultValue bool) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be a boolean: %v", key, err)
	}
	return value
}

// getEnvAsDurationWithDefault retrieves a duration (e.g. "90s", "2h") or returns a default value if not set.
func getEnvAsDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be a duration: %v", key, err)
	}
	return value
}
