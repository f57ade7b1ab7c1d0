package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port         string `mapstructure:"PORT"`
	DatabasePath string `mapstructure:"DATABASE_PATH"`
	JWTSecret    string `mapstructure:"JWT_SECRET"`

	SSOClientID     string `mapstructure:"SSO_CLIENT_ID"`
	SSOClientSecret string `mapstructure:"SSO_CLIENT_SECRET"`
	SSORedirectURL  string `mapstructure:"SSO_REDIRECT_URL"`
	SSOAuthURL      string `mapstructure:"SSO_AUTH_URL"`
	SSOTokenURL     string `mapstructure:"SSO_TOKEN_URL"`
	SSOUserInfoURL  string `mapstructure:"SSO_USERINFO_URL"`

	DiscordBotToken          string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordAnnounceChannelID string `mapstructure:"DISCORD_ANNOUNCE_CHANNEL_ID"`

	FrontendURL string `mapstructure:"FRONTEND_URL"`
	EnableCORS  bool   `mapstructure:"ENABLE_CORS"`
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_PATH", "campus_events.db")
	viper.SetDefault("SSO_REDIRECT_URL", "http://127.0.0.1:8080/auth/sso/callback")
	viper.SetDefault("FRONTEND_URL", "http://127.0.0.1:4000")

	viper.BindEnv("JWT_SECRET")
	viper.BindEnv("SSO_CLIENT_ID")
	viper.BindEnv("SSO_CLIENT_SECRET")
	viper.BindEnv("SSO_REDIRECT_URL")
	viper.BindEnv("SSO_AUTH_URL")
	viper.BindEnv("SSO_TOKEN_URL")
	viper.BindEnv("SSO_USERINFO_URL")
	viper.BindEnv("DISCORD_BOT_TOKEN")
	viper.BindEnv("DISCORD_ANNOUNCE_CHANNEL_ID")
	viper.BindEnv("FRONTEND_URL")
	viper.BindEnv("ENABLE_CORS")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}
