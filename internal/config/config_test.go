package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	r := require.New(t)

	cfg, err := FromViper(viper.New())
	r.NoError(err)

	r.Equal(3001, cfg.Server.Port)
	r.Equal(20, cfg.History.MaxMessages)
	r.Equal(3, cfg.Redis.MaxAttempts)
	r.Equal(time.Second, cfg.Redis.RetryBackoff)
	r.Equal(3*time.Second, cfg.Redis.MaxRetryBackoff)
	r.Equal(10*time.Second, cfg.WebSocket.HandshakeTimeout)
	r.Equal("stream:events", cfg.Relay.Channel)
	r.False(cfg.Kafka.Enabled)
	r.Equal("broadcast-events", cfg.Kafka.Topic)
	r.Equal("userId", cfg.Auth.UserParam)
	r.Equal("stream-service", cfg.Log.ServiceName)
}

func TestFromViperFileAndEnv(t *testing.T) {
	r := require.New(t)

	t.Setenv("PORT", "4000")
	t.Setenv("REDIS_ADDRESS", "redis:6380")

	v := viper.New()
	v.SetConfigType("yaml")
	r.NoError(v.ReadConfig(strings.NewReader(`
history:
  max_messages: 5
websocket:
  pong_wait: 90s
`)))

	cfg, err := FromViper(v)
	r.NoError(err)

	r.Equal(4000, cfg.Server.Port)
	r.Equal("redis:6380", cfg.Redis.Address)
	r.Equal(5, cfg.History.MaxMessages)
	r.Equal(90*time.Second, cfg.WebSocket.PongWait)
	r.Equal(25*time.Second, cfg.WebSocket.PingInterval)
}
