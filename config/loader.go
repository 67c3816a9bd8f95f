package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// default first
	setDefaults(v)

	// File Config
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Env Config
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read File
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Validate
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("service_name", "uptime-monitor")
	v.SetDefault("port", 8080)

	v.SetDefault("auth.expiry_min", 60)

	v.SetDefault("scheduler.interval", "1m")
	v.SetDefault("executor.max_concurrent", 500)
	v.SetDefault("rotation.interval", "24h")

	v.SetDefault("log.dir", ".logs")

	v.SetDefault("store.driver", "file")
	v.SetDefault("store.dir", ".data")

	v.SetDefault("inflight.driver", "local")
	v.SetDefault("inflight.ttl", "30s")

	v.SetDefault("checks.max_per_user", 5)

	v.SetDefault("alert.driver", "log")
	v.SetDefault("alert.worker_count", 4)
	v.SetDefault("alert.queue_size", 256)

	v.SetDefault("twilio.base_url", "https://api.twilio.com")

	v.SetDefault("rabbitmq.exchange_type", "direct")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("redis.read_timeout", "3s")
	v.SetDefault("redis.write_timeout", "3s")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 5)
	v.SetDefault("redis.conn_max_lifetime", "2m")
	v.SetDefault("redis.conn_max_idle_time", "30s")

	v.SetDefault("db.max_open_conns", 50)
	v.SetDefault("db.min_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "1h")
	v.SetDefault("db.conn_max_idle_time", "30m")
	v.SetDefault("db.health_timeout", "5s")
}

func validateConfig(cfg *Config) error {

	validate := validator.New()

	if err := validate.Struct(cfg); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return formatValidationErrors(ve)
		}
		return err
	}

	// driver specific requirements
	switch {
	case cfg.Store.Driver == "postgres" && cfg.DB.URL == "":
		return errors.New("config validation failed:\n- field 'Config.DB.URL' is required for the postgres store")
	case cfg.Alert.Driver == "sms" && (cfg.Twilio.AccountSID == "" || cfg.Twilio.AuthToken == "" || cfg.Twilio.FromPhone == ""):
		return errors.New("config validation failed:\n- twilio credentials are required for the sms alert driver")
	case cfg.Alert.Driver == "rabbitmq" && (cfg.RabbitMQ.BrokerLink == "" || cfg.RabbitMQ.ExchangeName == ""):
		return errors.New("config validation failed:\n- rabbitmq broker_link and exchange_name are required for the rabbitmq alert driver")
	}
	return nil
}

func formatValidationErrors(ve validator.ValidationErrors) error {
	var sb strings.Builder
	sb.WriteString("config validation failed:\n")

	for _, fe := range ve {
		fmt.Fprintf(&sb, "- field '%s' failed on '%s'\n", fe.Namespace(), fe.Tag())
	}
	return errors.New(sb.String())
}
