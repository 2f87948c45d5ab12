package cli

import (
	"os"
	"sort"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/BurntSushi/toml"

	"github.com/matzehuels/textblock/pkg/cache"
	"github.com/matzehuels/textblock/pkg/errors"
	"github.com/matzehuels/textblock/pkg/pipeline"
)

// Config is the user configuration read from config.toml. Unset values take
// the defaults from defaultConfig; command-line flags override both.
//
//	format = "text"
//
//	[cache]
//	disabled = false
//	dir = "/var/cache/textblock"
//	ttl = "24h"
//	redis_addr = "localhost:6379"
//	redis_prefix = "textblock:"
//
//	[serve]
//	addr = ":8080"
//	max_body = 1048576
type Config struct {
	Format string      `toml:"format"`
	Cache  CacheConfig `toml:"cache"`
	Serve  ServeConfig `toml:"serve"`
}

// CacheConfig selects and tunes the render cache.
type CacheConfig struct {
	Disabled    bool          `toml:"disabled"`
	Dir         string        `toml:"dir"`
	TTL         time.Duration `toml:"ttl"`
	RedisAddr   string        `toml:"redis_addr"`
	RedisPrefix string        `toml:"redis_prefix"`
}

// ServeConfig configures the HTTP service.
type ServeConfig struct {
	Addr    string `toml:"addr"`
	MaxBody int64  `toml:"max_body"`
}

func defaultConfig() Config {
	return Config{
		Format: pipeline.FormatText,
		Cache: CacheConfig{
			TTL:         cache.TTLRender,
			RedisPrefix: appName + ":",
		},
		Serve: ServeConfig{
			Addr:    ":8080",
			MaxBody: pipeline.MaxSourceSize,
		},
	}
}

// loadConfig reads the config file at path, or the default location when
// path is empty, and fills in defaults. A missing default file is not an
// error; a missing explicit one is.
func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := configFile()
		if err != nil {
			return defaultConfig(), nil
		}
		path = p
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err) && !explicit:
	case os.IsNotExist(err):
		return Config{}, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
	case err != nil:
		return Config{}, errors.Wrap(errors.ErrCodeInternal, err, "read config %s", path)
	default:
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return Config{}, errors.New(errors.ErrCodeInvalidFormat, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
		}
	}

	if err := mergo.Merge(&cfg, defaultConfig()); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInternal, err, "apply config defaults")
	}
	if err := errors.ValidateFormat(cfg.Format, pipeline.Formats...); err != nil {
		return Config{}, err
	}
	if cfg.Cache.TTL < 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	if cfg.Serve.MaxBody < 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidInput, "serve.max_body must not be negative")
	}
	return cfg, nil
}
