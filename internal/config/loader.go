package config

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/minervahq/minerva/pkg/errors"
	"github.com/minervahq/minerva/pkg/logger"
)

// Loader reads the configuration and watches the config file for changes.
// File lookup order: /etc/minerva/config.yaml, ./config.yaml. Every key can
// be overridden with a MINERVA_-prefixed environment variable, e.g.
// MINERVA_SERVER_PORT=9090.
type Loader struct {
	v   *viper.Viper
	log logger.Logger

	mu       sync.Mutex
	handlers []func(*Config)
}

// NewLoader creates a Loader.
func NewLoader(log logger.Logger) *Loader {
	return &Loader{v: viper.New(), log: log}
}

// Load reads the configuration and starts watching the config file. Invalid
// reloads are logged and discarded; valid ones are handed to the handlers
// registered with OnReload.
func (l *Loader) Load() (*Config, error) {
	setDefaults(l.v)

	l.v.SetConfigName("config")
	l.v.SetConfigType("yaml")
	l.v.AddConfigPath("/etc/minerva/")
	l.v.AddConfigPath(".")
	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.ErrInternalServer.
				WithDescription("failed to read config file").WithError(err)
		}
		l.log.Info(context.Background(), "no config file found, using defaults")
	}

	l.v.SetEnvPrefix("MINERVA")
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	cfg, err := unmarshal(l.v)
	if err != nil {
		return nil, err
	}

	l.v.OnConfigChange(func(e fsnotify.Event) {
		l.log.Info(context.Background(), "config file changed", logger.Fields{
			"file": e.Name,
			"op":   e.Op.String(),
		})
		l.applyChange()
	})
	l.v.WatchConfig()

	return cfg, nil
}

// OnReload registers fn to run with every valid reloaded configuration.
// Listeners, the report TTL and the rate limiter are fixed at startup; a
// reload only affects what the registered handlers apply, such as the log
// level.
func (l *Loader) OnReload(fn func(*Config)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handlers = append(l.handlers, fn)
}

func (l *Loader) applyChange() {
	cfg, err := unmarshal(l.v)
	if err != nil {
		l.log.Warn(context.Background(), "ignoring invalid config change", logger.Fields{
			"error": err.Error(),
		})
		return
	}

	l.mu.Lock()
	handlers := make([]func(*Config), len(l.handlers))
	copy(handlers, l.handlers)
	l.mu.Unlock()

	for _, fn := range handlers {
		fn(cfg)
	}
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.ErrInternalServer.
			WithDescription("failed to unmarshal config").WithError(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.ErrInternalServer.
			WithDescription("invalid configuration").WithError(err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)

	v.SetDefault("log.level", "info")

	v.SetDefault("scoring.report_ttl", 30*time.Minute)

	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.limit", 30)
	v.SetDefault("rate_limit.window", time.Minute)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.jaeger_endpoint", "http://localhost:14268/api/traces")
	v.SetDefault("tracing.sampling_rate", 1.0)

	v.SetDefault("pprof.enabled", false)
}
