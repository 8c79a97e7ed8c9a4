package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	ServerName  string         `mapstructure:"server_name" yaml:"server_name"`
	Version     string         `mapstructure:"version" yaml:"version"`
	Environment string         `mapstructure:"environment" yaml:"environment"`
	Port        int            `mapstructure:"port" yaml:"port"`
	Postgres    PostgresConfig `mapstructure:"postgres" yaml:"postgres"`
	Redis       RedisConfig    `mapstructure:"redis" yaml:"redis"`
	LLM         LLMConfig      `mapstructure:"llm" yaml:"llm"`
	RAWG        RAWGConfig     `mapstructure:"rawg" yaml:"rawg"`
}

type PostgresConfig struct {
	Address  string        `mapstructure:"address" yaml:"address"`
	Port     int           `mapstructure:"port" yaml:"port"`
	User     string        `mapstructure:"user" yaml:"user"`
	Password string        `mapstructure:"password" yaml:"password"`
	DBName   string        `mapstructure:"db_name" yaml:"db_name"`
	MaxIdle  int           `mapstructure:"max_idle" yaml:"max_idle"`
	MaxOpen  int           `mapstructure:"max_open" yaml:"max_open"`
	MaxLife  time.Duration `mapstructure:"max_life" yaml:"max_life"`
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Address, c.Port, c.User, c.Password, c.DBName)
}

type RedisConfig struct {
	Address      string        `mapstructure:"address" yaml:"address"`
	Port         int           `mapstructure:"port" yaml:"port"`
	Password     string        `mapstructure:"password" yaml:"password"`
	Database     int           `mapstructure:"database" yaml:"database"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout" yaml:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	PoolSize     int           `mapstructure:"pool_size" yaml:"pool_size"`
	RateLimitQPS int           `mapstructure:"rate_limit_qps" yaml:"rate_limit_qps"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Address, c.Port)
}

type LLMConfig struct {
	BaseURL     string  `mapstructure:"base_url" yaml:"base_url"`
	APIKey      string  `mapstructure:"api_key" yaml:"api_key"`
	Model       string  `mapstructure:"model" yaml:"model"`
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens" yaml:"max_tokens"`
}

type RAWGConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	APIKey  string `mapstructure:"api_key" yaml:"api_key"`
}

func LoadConfig() (*AppConfig, error) {
	var config AppConfig

	viper.SetConfigFile("config/config.yml")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return &config, err
	}
	if err := viper.Unmarshal(&config); err != nil {
		return &config, err
	}
	return &config, nil
}
