package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Bootstrap BootstrapConfig
	Storage   StorageConfig
	Throttle  ThrottleConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type SessionConfig struct {
	// TTLHours bounds a non-remembered session; its cookie carries no
	// Max-Age so the browser drops it when the session ends.
	TTLHours int
	// RememberDays bounds a remembered session and its persistent cookie.
	RememberDays int
	CookieName   string
}

type BootstrapConfig struct {
	AdminEmail    string
	AdminPassword string
}

type StorageConfig struct {
	AvatarDir string
}

type ThrottleConfig struct {
	// LastSeenWindowMinutes is how long a recorded last-seen timestamp
	// suppresses further writes.
	LastSeenWindowMinutes int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	viper.SetDefault("APP_NAME", "staffly")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_TTL_HOURS", 12)
	viper.SetDefault("SESSION_REMEMBER_DAYS", 30)
	viper.SetDefault("SESSION_COOKIE", "staffly_session")
	viper.SetDefault("AVATAR_DIR", "media/avatars")
	viper.SetDefault("LAST_SEEN_WINDOW_MINUTES", 60)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			TTLHours:     viper.GetInt("SESSION_TTL_HOURS"),
			RememberDays: viper.GetInt("SESSION_REMEMBER_DAYS"),
			CookieName:   viper.GetString("SESSION_COOKIE"),
		},
		Bootstrap: BootstrapConfig{
			AdminEmail:    viper.GetString("BOOTSTRAP_ADMIN_EMAIL"),
			AdminPassword: viper.GetString("BOOTSTRAP_ADMIN_PASSWORD"),
		},
		Storage: StorageConfig{
			AvatarDir: viper.GetString("AVATAR_DIR"),
		},
		Throttle: ThrottleConfig{
			LastSeenWindowMinutes: viper.GetInt("LAST_SEEN_WINDOW_MINUTES"),
		},
	}

	return config, nil
}
