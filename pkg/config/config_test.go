package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Set up test environment variables
	os.Setenv("botToken", "test-token")
	os.Setenv("PORT", "3001")
	os.Setenv("enviroment", "test")
	os.Setenv("guildId", "123456789")
	os.Setenv("rankRoleIds", "1, 2,3")
	os.Setenv("unsuspensionDrainSeconds", "60")
	defer func() {
		os.Unsetenv("botToken")
		os.Unsetenv("PORT")
		os.Unsetenv("enviroment")
		os.Unsetenv("guildId")
		os.Unsetenv("rankRoleIds")
		os.Unsetenv("unsuspensionDrainSeconds")
	}()

	// Reset global config
	resetForTesting()

	config, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if config.BotToken != "test-token" {
		t.Errorf("BotToken = %v, want %v", config.BotToken, "test-token")
	}

	if config.Port != "3001" {
		t.Errorf("Port = %v, want %v", config.Port, "3001")
	}

	if config.Environment != "test" {
		t.Errorf("Environment = %v, want %v", config.Environment, "test")
	}

	if config.GuildID != "123456789" {
		t.Errorf("GuildID = %v, want %v", config.GuildID, "123456789")
	}

	if len(config.RankRoleIDs) != 3 || config.RankRoleIDs[1] != "2" {
		t.Errorf("RankRoleIDs = %v, want [1 2 3]", config.RankRoleIDs)
	}

	if config.UnsuspensionDrainInterval != 60*time.Second {
		t.Errorf("UnsuspensionDrainInterval = %v, want 60s", config.UnsuspensionDrainInterval)
	}
}

func TestDefaultIntervals(t *testing.T) {
	resetForTesting()

	config, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if config.ExpirySweepInterval != 325*time.Second {
		t.Errorf("ExpirySweepInterval = %v, want 325s", config.ExpirySweepInterval)
	}
	if config.SuspensionDrainInterval != 1030*time.Second {
		t.Errorf("SuspensionDrainInterval = %v, want 1030s", config.SuspensionDrainInterval)
	}
	if config.UnsuspensionDrainInterval != 135*time.Second {
		t.Errorf("UnsuspensionDrainInterval = %v, want 135s", config.UnsuspensionDrainInterval)
	}
	if config.TierDecayInterval != time.Hour {
		t.Errorf("TierDecayInterval = %v, want 1h", config.TierDecayInterval)
	}
}

func TestGetEnv(t *testing.T) {
	os.Setenv("TEST_VAR", "test-value")
	defer os.Unsetenv("TEST_VAR")

	if got := getEnv("TEST_VAR", "default"); got != "test-value" {
		t.Errorf("getEnv() = %v, want %v", got, "test-value")
	}

	if got := getEnv("NON_EXISTENT_VAR", "default"); got != "default" {
		t.Errorf("getEnv() = %v, want %v", got, "default")
	}
}
