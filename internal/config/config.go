package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	Log       LogConfig       `yaml:"log"`
	Admin     AdminConfig     `yaml:"admin"`
	Market    MarketConfig    `yaml:"market"`
	Scraper   ScraperConfig   `yaml:"scraper"`
	Analytics AnalyticsConfig `yaml:"analytics"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Mode string `yaml:"mode"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret      string `yaml:"secret"`
	ExpireHours int    `yaml:"expire_hours"`
}

type LogConfig struct {
	Dir   string `yaml:"dir"`
	Level string `yaml:"level"`
}

// AdminConfig seeds the first administrator when the users table has none.
type AdminConfig struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type MarketConfig struct {
	IndicesURL      string        `yaml:"indices_url"`
	SectorsURL      string        `yaml:"sectors_url"`
	GainersURL      string        `yaml:"gainers_url"`
	LosersURL       string        `yaml:"losers_url"`
	Timeout         time.Duration `yaml:"timeout"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	CacheTTL        time.Duration `yaml:"cache_ttl"`
}

type ScraperConfig struct {
	NewsFeedURL string        `yaml:"news_feed_url"`
	SplitsURL   string        `yaml:"splits_url"`
	Schedule    string        `yaml:"schedule"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxItems    int           `yaml:"max_items"`
}

type AnalyticsConfig struct {
	Timezone      string  `yaml:"timezone"`
	BaseCapital   float64 `yaml:"base_capital"`
	LifetimeStart string  `yaml:"lifetime_start"`
}

// Load loads configuration from file and environment variables
func Load(path string) (*Config, error) {
	cfg := &Config{}

	// Load from YAML file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// Override with environment variables if present
	cfg.loadFromEnv()
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) loadFromEnv() {
	// Server
	if v := os.Getenv("SERVER_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("SERVER_MODE"); v != "" {
		c.Server.Mode = v
	}

	// Database
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Database.Port = port
		}
	}
	if v := os.Getenv("DB_USER"); v != "" {
		c.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		c.Database.DBName = v
	}

	// Redis
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Redis.Port = port
		}
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}

	// JWT
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.JWT.Secret = v
	}
	if v := os.Getenv("JWT_EXPIRE_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil {
			c.JWT.ExpireHours = hours
		}
	}

	// Logging
	if v := os.Getenv("LOG_DIR"); v != "" {
		c.Log.Dir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}

	// Admin seed
	if v := os.Getenv("ADMIN_EMAIL"); v != "" {
		c.Admin.Email = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		c.Admin.Password = v
	}

	// Market data
	if v := os.Getenv("MARKET_INDICES_URL"); v != "" {
		c.Market.IndicesURL = v
	}
	if v := os.Getenv("MARKET_SECTORS_URL"); v != "" {
		c.Market.SectorsURL = v
	}
	if v := os.Getenv("MARKET_REFRESH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Market.RefreshInterval = d
		}
	}

	// Analytics
	if v := os.Getenv("ANALYTICS_TIMEZONE"); v != "" {
		c.Analytics.Timezone = v
	}
	if v := os.Getenv("ANALYTICS_BASE_CAPITAL"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Analytics.BaseCapital = f
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "debug"
	}
	if c.JWT.ExpireHours == 0 {
		c.JWT.ExpireHours = 24
	}
	if c.Log.Dir == "" {
		c.Log.Dir = "logs"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Market.Timeout == 0 {
		c.Market.Timeout = 10 * time.Second
	}
	if c.Market.RefreshInterval == 0 {
		c.Market.RefreshInterval = time.Minute
	}
	if c.Market.CacheTTL == 0 {
		c.Market.CacheTTL = 5 * time.Minute
	}
	if c.Scraper.Schedule == "" {
		c.Scraper.Schedule = "@every 30m"
	}
	if c.Scraper.Timeout == 0 {
		c.Scraper.Timeout = 15 * time.Second
	}
	if c.Scraper.MaxItems == 0 {
		c.Scraper.MaxItems = 20
	}
	if c.Analytics.Timezone == "" {
		c.Analytics.Timezone = "America/New_York"
	}
	if c.Analytics.BaseCapital == 0 {
		c.Analytics.BaseCapital = 100000
	}
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + strconv.Itoa(c.Port) +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}
