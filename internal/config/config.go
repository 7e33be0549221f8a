package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort    string // Listening port
	MongoURI   string // Document store connection string
	MongoDB    string // Document store database name
	AuthSecret string // Identity token signing secret
	RedisAddr  string // Redis server address
	RedisPass  string // Redis password
	RedisDB    int    // Redis database number
	IsProd     bool   // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "5000" // Default listening port
	}
	return &Config{
		AppPort:    port,
		MongoURI:   os.Getenv("MONGO_URI"),         // Store connection string
		MongoDB:    os.Getenv("MONGO_DB"),          // Store database name
		AuthSecret: os.Getenv("AUTH_SECRET"),       // Token signing secret
		RedisAddr:  os.Getenv("REDIS_ADDR"),        // Redis server address
		RedisPass:  os.Getenv("REDIS_PASS"),        // Redis password
		RedisDB:    redisDB,                        // Redis database number
		IsProd:     os.Getenv("IS_PROD") == "true", // Is production environment
	}
}
