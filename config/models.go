package config

import "time"

type AuthConfig struct {
	Secret    string `mapstructure:"secret" validate:"required,min=16"`
	ExpiryMin int    `mapstructure:"expiry_min" validate:"gte=1"`
}

type SchedulerConfig struct {
	Interval time.Duration `mapstructure:"interval" validate:"gt=0"` // how often every check is probed
}

type ExecutorConfig struct {
	MaxConcurrent int `mapstructure:"max_concurrent" validate:"gte=1"` // concurrent outbound probes
}

type RotationConfig struct {
	Interval time.Duration `mapstructure:"interval" validate:"gt=0"`
}

type LogConfig struct {
	Dir string `mapstructure:"dir" validate:"required"` // per-check log files and archives
}

type StoreConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=file redis postgres"`
	Dir    string `mapstructure:"dir" validate:"required_if=Driver file"`
}

type InflightConfig struct {
	Driver string        `mapstructure:"driver" validate:"oneof=local redis"`
	TTL    time.Duration `mapstructure:"ttl" validate:"gt=0"`
}

type ChecksConfig struct {
	MaxPerUser int `mapstructure:"max_per_user" validate:"gte=1"`
}

type RedisConfig struct {
	Addr            string        `mapstructure:"addr"`
	Password        string        `mapstructure:"password"`
	DB              int           `mapstructure:"db"`
	DialTimeout     time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	PoolSize        int           `mapstructure:"pool_size"`
	MinIdleConns    int           `mapstructure:"min_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

type DBConfig struct {
	URL             string        `mapstructure:"url"`
	MaxOpenConns    int32         `mapstructure:"max_open_conns"`
	MinIdleConns    int32         `mapstructure:"min_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	HealthTimeout   time.Duration `mapstructure:"health_timeout"`
}

type AlertConfig struct {
	Driver      string `mapstructure:"driver" validate:"oneof=log sms rabbitmq"`
	WorkerCount int    `mapstructure:"worker_count" validate:"gte=1"`
	QueueSize   int    `mapstructure:"queue_size" validate:"gte=1"`
}

type TwilioConfig struct {
	BaseURL    string `mapstructure:"base_url" validate:"omitempty,url"`
	AccountSID string `mapstructure:"account_sid"`
	AuthToken  string `mapstructure:"auth_token"`
	FromPhone  string `mapstructure:"from_phone"`
}

type RabbitMQConfig struct {
	BrokerLink   string `mapstructure:"broker_link"`
	ExchangeName string `mapstructure:"exchange_name"`
	ExchangeType string `mapstructure:"exchange_type"`
	QueueName    string `mapstructure:"queue_name"`
	RoutingKey   string `mapstructure:"routing_key"`
}

type Config struct {
	Port        int             `mapstructure:"port" validate:"gte=1,lte=65535"`
	Env         string          `mapstructure:"env" validate:"required"`
	ServiceName string          `mapstructure:"service_name" validate:"required"`
	Scheduler   SchedulerConfig `mapstructure:"scheduler"`
	Executor    ExecutorConfig  `mapstructure:"executor"`
	Rotation    RotationConfig  `mapstructure:"rotation"`
	Log         LogConfig       `mapstructure:"log"`
	Store       StoreConfig     `mapstructure:"store"`
	Inflight    InflightConfig  `mapstructure:"inflight"`
	Checks      ChecksConfig    `mapstructure:"checks"`
	Redis       RedisConfig     `mapstructure:"redis"`
	DB          DBConfig        `mapstructure:"db"`
	Alert       AlertConfig     `mapstructure:"alert"`
	Twilio      TwilioConfig    `mapstructure:"twilio"`
	RabbitMQ    RabbitMQConfig  `mapstructure:"rabbitmq"`
	Auth        AuthConfig      `mapstructure:"auth"`
}
