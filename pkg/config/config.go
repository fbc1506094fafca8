// Package config provides configuration management for the bot.
// It loads environment variables and makes them available throughout the application.
package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the bot
type Config struct {
	// Discord
	BotToken   string
	DevGuildID string
	GuildID    string

	// Channels
	SuspendedChannelID string

	// Roles
	ModeratorRoleID string
	BackendRoleID   string
	SuspendedRoleID string
	// RankRoleIDs are the roles stripped on suspension and cached on the
	// record for later restoration.
	RankRoleIDs []string

	// MongoDB
	MongoDBURL string
	DBName     string

	// MQTT
	MQTTHost     string
	MQTTPort     string
	MQTTUser     string
	MQTTPassword string

	// Web Server
	Port string

	// Sweep intervals (fixed delay between runs, not fixed rate)
	ExpirySweepInterval       time.Duration
	SuspensionDrainInterval   time.Duration
	UnsuspensionDrainInterval time.Duration
	TierDecayInterval         time.Duration

	// Environment
	Environment string

	// Webhooks
	ErrorWebhook      string
	LogsWebhook       string
	LogsWebServerHook string
}

var (
	Version   = "Dev-Local"
	BuildTime = "Hoy"
)

// cfg holds the global configuration instance
var (
	cfg     *Config
	cfgOnce sync.Once
)

// resetForTesting resets the configuration for testing purposes.
// This function should only be called from test code.
func resetForTesting() {
	cfg = nil
	cfgOnce = sync.Once{}
}

// loadConfig performs the actual configuration loading
func loadConfig() {
	// Load .env file if it exists (ignoring error if it doesn't)
	_ = godotenv.Load()

	cfg = &Config{
		// Discord
		BotToken:   getEnv("botToken", ""),
		DevGuildID: getEnv("devGuildId", ""),
		GuildID:    getEnv("guildId", ""),

		// Channels
		SuspendedChannelID: getEnv("suspendedChannelId", ""),

		// Roles
		ModeratorRoleID: getEnv("moderatorRoleId", ""),
		BackendRoleID:   getEnv("backendRoleId", ""),
		SuspendedRoleID: getEnv("suspendedRoleId", ""),
		RankRoleIDs:     splitIDs(getEnv("rankRoleIds", "")),

		// MongoDB
		MongoDBURL: getEnv("mongodbUrl", "mongodb://localhost:27017"),
		DBName:     getEnv("dbName", "SuspensionBot"),

		// MQTT
		MQTTHost:     getEnv("MQTT_Host", "localhost"),
		MQTTPort:     getEnv("MQTT_Port", "1883"),
		MQTTUser:     getEnv("MQTT_User", ""),
		MQTTPassword: getEnv("MQTT_Password", ""),

		// Web Server
		Port: getEnv("PORT", "3000"),

		// Sweep intervals
		ExpirySweepInterval:       getEnvSeconds("expirySweepSeconds", 325),
		SuspensionDrainInterval:   getEnvSeconds("suspensionDrainSeconds", 1030),
		UnsuspensionDrainInterval: getEnvSeconds("unsuspensionDrainSeconds", 135),
		TierDecayInterval:         getEnvSeconds("tierDecaySeconds", 3600),

		// Environment
		Environment: getEnv("enviroment", "dev"),

		// Webhooks
		ErrorWebhook:      getEnv("errorWebhook", ""),
		LogsWebhook:       getEnv("logsWebhook", ""),
		LogsWebServerHook: getEnv("logsWebServerWebhook", ""),
	}
}

// Load initializes the configuration from environment variables
func Load() (*Config, error) {
	cfgOnce.Do(loadConfig)
	return cfg, nil
}

// Get returns the current configuration
func Get() *Config {
	// Use sync.Once to ensure thread-safe initialization if Load wasn't called
	cfgOnce.Do(loadConfig)
	return cfg
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvSeconds reads an integer number of seconds or returns a default value
func getEnvSeconds(key string, defaultSeconds int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(defaultSeconds) * time.Second
}

// splitIDs parses a comma separated list of snowflake ids
func splitIDs(value string) []string {
	if value == "" {
		return nil
	}
	var ids []string
	for _, part := range strings.Split(value, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// IsProd returns true if the environment is production
func (c *Config) IsProd() bool {
	return c.Environment == "prod"
}
