package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Telegram  TelegramConfig  `toml:"telegram"`
	Calendar  CalendarConfig  `toml:"calendar"`
	Scheduler SchedulerConfig `toml:"scheduler"`
	Bookings  BookingsConfig  `toml:"bookings"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN собирает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type TelegramConfig struct {
	BotToken        string `toml:"bot_token"`
	TrainerID       int64  `toml:"trainer_id"` // Telegram id тренера, определяет роль
	TrainerUsername string `toml:"trainer_username"`
	WebAppURL       string `toml:"webapp_url"`
	InitDataMaxAge  int    `toml:"init_data_max_age"` // секунды
}

type CalendarConfig struct {
	URL        string `toml:"url"`    // URL развернутого Apps Script Web App
	Secret     string `toml:"secret"` // shared secret для авторизации
	CalendarID string `toml:"calendar_id"`
	Timeout    int    `toml:"timeout"`  // секунды
	Timezone   string `toml:"timezone"` // единая зона всех вычислений
	Location   string `toml:"location"` // место проведения тренировок для событий
}

type SchedulerConfig struct {
	TickMinutes         int  `toml:"tick_minutes"`
	BirthdayHour        int  `toml:"birthday_hour"` // локальный час ежедневной рассылки поздравлений
	LowBalanceThreshold int  `toml:"low_balance_threshold"`
	LowBalanceNotify    bool `toml:"low_balance_notify"`
}

type BookingsConfig struct {
	HorizonDays int `toml:"horizon_days"` // скользящий горизонт списка дней для записи
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Telegram.InitDataMaxAge == 0 {
		cfg.Telegram.InitDataMaxAge = 86400
	}
	if cfg.Calendar.Timeout == 0 {
		cfg.Calendar.Timeout = 30
	}
	if cfg.Calendar.Timezone == "" {
		cfg.Calendar.Timezone = "Europe/Moscow"
	}
	if cfg.Scheduler.TickMinutes == 0 {
		cfg.Scheduler.TickMinutes = 10
	}
	if cfg.Scheduler.BirthdayHour == 0 {
		cfg.Scheduler.BirthdayHour = 10
	}
	if cfg.Scheduler.LowBalanceThreshold == 0 {
		cfg.Scheduler.LowBalanceThreshold = 2
	}
	if cfg.Bookings.HorizonDays == 0 {
		cfg.Bookings.HorizonDays = 30
	}
}

func validate(cfg *Config) error {
	if cfg.Telegram.BotToken == "" {
		return fmt.Errorf("config: telegram.bot_token is required")
	}
	if cfg.Telegram.TrainerID == 0 {
		return fmt.Errorf("config: telegram.trainer_id is required")
	}
	if cfg.Calendar.URL == "" {
		return fmt.Errorf("config: calendar.url is required")
	}
	if cfg.Calendar.Secret == "" {
		return fmt.Errorf("config: calendar.secret is required")
	}
	if cfg.Calendar.CalendarID == "" {
		return fmt.Errorf("config: calendar.calendar_id is required")
	}
	if _, err := time.LoadLocation(cfg.Calendar.Timezone); err != nil {
		return fmt.Errorf("config: invalid calendar.timezone %q: %w", cfg.Calendar.Timezone, err)
	}
	return nil
}
