package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/scrimkit/scrimbot/internal/core"
)

type ScrimConfig struct {
	TeamSize       int                 `mapstructure:"team_size"`
	AnnounceExtras bool                `mapstructure:"announce_extras"`
	MatchTTL       time.Duration       `mapstructure:"match_ttl"`
	SweepInterval  time.Duration       `mapstructure:"sweep_interval"`
	CategoryName   string              `mapstructure:"category_name"`
	WaitingRoom    string              `mapstructure:"waiting_room"`
	Games          map[string][]string `mapstructure:"games"`
}

type Config struct {
	Mode   string      `mapstructure:"mode"`
	Port   int         `mapstructure:"port"`
	Secret string      `mapstructure:"secret"`
	Scrim  ScrimConfig `mapstructure:"scrim"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("scrim.team_size", 5)
	v.SetDefault("scrim.announce_extras", true)
	v.SetDefault("scrim.match_ttl", "2h")
	v.SetDefault("scrim.sweep_interval", "30m")
	v.SetDefault("scrim.category_name", "PUGs")
	v.SetDefault("scrim.waiting_room", "ScrimPre")
	v.SetDefault("scrim.games", core.DefaultMaps())

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("⚠️ Config file not found (%s), using defaults\n", fileName)
	} else {
		fmt.Printf("✅ Loaded config: %s\n", fileName)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	fmt.Printf("🧩 Mode: %s | Port: %d | Team size: %d\n", cfg.Mode, cfg.Port, cfg.Scrim.TeamSize)
	return &cfg, nil
}
