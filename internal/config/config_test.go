package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestServerDefaults() {
	cfg, err := LoadServer(map[string]string{})
	s.Require().NoError(err)
	s.Equal(":8080", cfg.HTTPAddr)
	s.Equal("localhost:6379", cfg.RedisAddr)
	s.Equal(0, cfg.RedisDB)
	s.False(cfg.EnforceGM)
	s.Equal(100, cfg.MaxDice)
	s.Equal(64, cfg.SendBuffer)
	s.Equal("info", cfg.LogLevel)
	s.Equal(10*time.Second, cfg.ShutdownTimeout)
}

func (s *ConfigTestSuite) TestServerOverrides() {
	cfg, err := LoadServer(map[string]string{
		"MIDNIGHT_HTTP_ADDR":        ":9000",
		"MIDNIGHT_REDIS_DB":         "3",
		"MIDNIGHT_ENFORCE_GM":       "true",
		"MIDNIGHT_MAX_DICE":         "20",
		"MIDNIGHT_LOG_LEVEL":        "debug",
		"MIDNIGHT_SHUTDOWN_TIMEOUT": "2s",
	})
	s.Require().NoError(err)
	s.Equal(":9000", cfg.HTTPAddr)
	s.Equal(3, cfg.RedisDB)
	s.True(cfg.EnforceGM)
	s.Equal(20, cfg.MaxDice)
	s.Equal(2*time.Second, cfg.ShutdownTimeout)
}

func (s *ConfigTestSuite) TestServerRejectsBadValues() {
	_, err := LoadServer(map[string]string{"MIDNIGHT_MAX_DICE": "0"})
	s.Error(err)

	_, err = LoadServer(map[string]string{"MIDNIGHT_SEND_BUFFER": "-1"})
	s.Error(err)

	_, err = LoadServer(map[string]string{"MIDNIGHT_REDIS_DB": "one"})
	s.Error(err)

	_, err = LoadServer(map[string]string{"MIDNIGHT_LOG_LEVEL": "loud"})
	s.Error(err)
}

func (s *ConfigTestSuite) TestRoller() {
	cfg, err := LoadRoller(map[string]string{
		"ROLLER_CAMPAIGN": "camp-1",
		"ROLLER_USER":     "gm-1",
		"ROLLER_NAME":     "Marcus",
		"ROLLER_GM":       "true",
	})
	s.Require().NoError(err)
	s.Equal("ws://localhost:8080/ws", cfg.ServerURL)
	s.Equal("camp-1", cfg.CampaignID)
	s.Equal("Marcus", cfg.Name)
	s.True(cfg.IsGM)
}

func (s *ConfigTestSuite) TestLoadDotEnv() {
	dir := s.T().TempDir()
	file := filepath.Join(dir, "test.env")
	s.Require().NoError(os.WriteFile(file, []byte("MIDNIGHT_TEST_DOTENV=loaded\n"), 0o600))
	s.T().Cleanup(func() { os.Unsetenv("MIDNIGHT_TEST_DOTENV") })

	s.Require().NoError(LoadDotEnv(filepath.Join(dir, "missing.env"), file))
	s.Equal("loaded", os.Getenv("MIDNIGHT_TEST_DOTENV"))
}

func (s *ConfigTestSuite) TestParseLogLevel() {
	level, err := ParseLogLevel("WARN")
	s.Require().NoError(err)
	s.Equal(slog.LevelWarn, level)

	level, err = ParseLogLevel("")
	s.Require().NoError(err)
	s.Equal(slog.LevelInfo, level)
}

func (s *ConfigTestSuite) TestNewLoggerFiltersLevel() {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn")
	logger.Info("hidden")
	logger.Warn("shown", "campaign_id", "camp-1")

	s.NotContains(buf.String(), "hidden")
	s.Contains(buf.String(), "campaign_id=camp-1")
}
