package config

import (
	"time"

	"github.com/spf13/viper"
	pkgconfig "github.com/weiawesome/stream-service/pkg/config"
	pkglog "github.com/weiawesome/stream-service/pkg/log"
)

type Config struct {
	Server    ServerConfig
	WebSocket WebSocketConfig
	Redis     RedisConfig
	History   HistoryConfig
	Relay     RelayConfig
	Kafka     KafkaConfig
	Auth      AuthConfig
	Log       pkglog.Config
}

type ServerConfig struct {
	Host            string
	Port            int
	InstanceID      string        `mapstructure:"instance_id"`
	FrontendURL     string        `mapstructure:"frontend_url"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type WebSocketConfig struct {
	PingInterval     time.Duration `mapstructure:"ping_interval"`
	PongWait         time.Duration `mapstructure:"pong_wait"`
	WriteWait        time.Duration `mapstructure:"write_wait"`
	HandshakeTimeout time.Duration `mapstructure:"handshake_timeout"`
	MaxMessageSize   int64         `mapstructure:"max_message_size"`
	SendBuffer       int           `mapstructure:"send_buffer"`
}

type RedisConfig struct {
	Address         string
	Password        string
	DB              int
	DialTimeout     time.Duration `mapstructure:"dial_timeout"`
	CommandTimeout  time.Duration `mapstructure:"command_timeout"`
	MaxAttempts     int           `mapstructure:"max_attempts"`
	RetryBackoff    time.Duration `mapstructure:"retry_backoff"`
	MaxRetryBackoff time.Duration `mapstructure:"max_retry_backoff"`
}

type HistoryConfig struct {
	MaxMessages int `mapstructure:"max_messages"`
}

type RelayConfig struct {
	Enabled bool
	Channel string
	Buffer  int
}

type KafkaConfig struct {
	Enabled    bool
	Brokers    string
	Topic      string
	Partitions int
}

type AuthConfig struct {
	UserParam  string `mapstructure:"user_param"`
	TokenParam string `mapstructure:"token_param"`
	JWTSecret  string `mapstructure:"jwt_secret"`
}

func Load() (*Config, error) {
	v, err := pkgconfig.Load("./config", "config")
	if err != nil {
		return nil, err
	}
	return FromViper(v)
}

// FromViper applies defaults and environment bindings to v and decodes it.
func FromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.instance_id", "")
	v.SetDefault("server.frontend_url", "http://localhost:3000")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("websocket.ping_interval", "25s")
	v.SetDefault("websocket.pong_wait", "60s")
	v.SetDefault("websocket.write_wait", "10s")
	v.SetDefault("websocket.handshake_timeout", "10s")
	v.SetDefault("websocket.max_message_size", 65536)
	v.SetDefault("websocket.send_buffer", 256)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("redis.command_timeout", "3s")
	v.SetDefault("redis.max_attempts", 3)
	v.SetDefault("redis.retry_backoff", "1s")
	v.SetDefault("redis.max_retry_backoff", "3s")
	v.SetDefault("history.max_messages", 20)
	v.SetDefault("relay.enabled", false)
	v.SetDefault("relay.channel", "stream:events")
	v.SetDefault("relay.buffer", 256)
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", "localhost:9092")
	v.SetDefault("kafka.topic", "broadcast-events")
	v.SetDefault("kafka.partitions", 4)
	v.SetDefault("auth.user_param", "userId")
	v.SetDefault("auth.token_param", "token")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("log.service_name", "stream-service")

	// Override from environment
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.instance_id", "INSTANCE_ID")
	v.BindEnv("server.frontend_url", "FRONTEND_URL")
	v.BindEnv("redis.address", "REDIS_ADDRESS")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("relay.enabled", "RELAY_ENABLED")
	v.BindEnv("kafka.enabled", "KAFKA_ENABLED")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("kafka.topic", "KAFKA_BROADCAST_TOPIC")
	v.BindEnv("auth.jwt_secret", "AUTH_JWT_SECRET")
	v.BindEnv("log.level", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Parse durations
	cfg.Server.ShutdownTimeout = pkgconfig.Duration(v, "server.shutdown_timeout", 10*time.Second)
	cfg.WebSocket.PingInterval = pkgconfig.Duration(v, "websocket.ping_interval", 25*time.Second)
	cfg.WebSocket.PongWait = pkgconfig.Duration(v, "websocket.pong_wait", 60*time.Second)
	cfg.WebSocket.WriteWait = pkgconfig.Duration(v, "websocket.write_wait", 10*time.Second)
	cfg.WebSocket.HandshakeTimeout = pkgconfig.Duration(v, "websocket.handshake_timeout", 10*time.Second)
	cfg.Redis.DialTimeout = pkgconfig.Duration(v, "redis.dial_timeout", 5*time.Second)
	cfg.Redis.CommandTimeout = pkgconfig.Duration(v, "redis.command_timeout", 3*time.Second)
	cfg.Redis.RetryBackoff = pkgconfig.Duration(v, "redis.retry_backoff", time.Second)
	cfg.Redis.MaxRetryBackoff = pkgconfig.Duration(v, "redis.max_retry_backoff", 3*time.Second)

	if cfg.History.MaxMessages <= 0 {
		cfg.History.MaxMessages = 20
	}
	if cfg.Redis.MaxAttempts <= 0 {
		cfg.Redis.MaxAttempts = 1
	}

	return &cfg, nil
}
