package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Schedule ScheduleConfig
}

type AppConfig struct {
	Port          string
	Env           string
	AllowedOrigin string
}

type DBConfig struct {
	Host          string
	Port          string
	User          string
	Password      string
	Name          string
	MigrationsDir string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// ScheduleConfig holds the availability grid bounds. These are deployment
// configuration, not invariants: a caller may run a narrower or wider day.
// Malformed values are rejected during bootstrap when the slot grid is built.
type ScheduleConfig struct {
	DayStart             string // Format: HH:MM
	DayEnd               string // Format: HH:MM
	GridMinutes          int
	AvailabilityCacheTTL time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.SetDefault("SCHEDULE_DAY_START", "07:00")
	viper.SetDefault("SCHEDULE_DAY_END", "23:00")
	viper.SetDefault("SCHEDULE_GRID_MINUTES", 30)
	viper.SetDefault("DB_MIGRATIONS_DIR", "migrations")
	viper.SetDefault("APP_ALLOWED_ORIGIN", "*")

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	cacheTTL, err := time.ParseDuration(viper.GetString("SCHEDULE_AVAILABILITY_CACHE_TTL"))
	if err != nil {
		cacheTTL = time.Minute
	}

	config := &Config{
		App: AppConfig{
			Port:          viper.GetString("APP_PORT"),
			Env:           viper.GetString("APP_ENV"),
			AllowedOrigin: viper.GetString("APP_ALLOWED_ORIGIN"),
		},
		DB: DBConfig{
			Host:          viper.GetString("DB_HOST"),
			Port:          viper.GetString("DB_PORT"),
			User:          viper.GetString("DB_USER"),
			Password:      viper.GetString("DB_PASSWORD"),
			Name:          viper.GetString("DB_NAME"),
			MigrationsDir: viper.GetString("DB_MIGRATIONS_DIR"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Schedule: ScheduleConfig{
			DayStart:             viper.GetString("SCHEDULE_DAY_START"),
			DayEnd:               viper.GetString("SCHEDULE_DAY_END"),
			GridMinutes:          viper.GetInt("SCHEDULE_GRID_MINUTES"),
			AvailabilityCacheTTL: cacheTTL,
		},
	}

	return config, nil
}
