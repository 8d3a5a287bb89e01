// Package config loads craftshelf settings from a TOML file, an optional .env file
// and CRAFTSHELF_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/qyinm/craftshelf/catalog"
	"github.com/qyinm/craftshelf/order"
	"github.com/qyinm/craftshelf/render"
	"github.com/qyinm/craftshelf/types"
)

// ErrInvalid marks a configuration that failed validation.
var ErrInvalid = errors.New("invalid configuration")

// Duration is a time.Duration written as "500ms", "2s" in TOML.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

type Config struct {
	Endpoint string   `toml:"endpoint"`
	Timeout  Duration `toml:"timeout"`

	Display DisplayConfig `toml:"display"`
	Order   OrderConfig   `toml:"order"`
	Log     LogConfig     `toml:"log"`
}

type DisplayConfig struct {
	Currency        string   `toml:"currency"`
	DefaultCategory string   `toml:"default_category"`
	SearchDelay     Duration `toml:"search_delay"`
}

type OrderConfig struct {
	DeepLinkBase  string   `toml:"deep_link_base"`
	Destination   string   `toml:"destination"`
	StartingPrice string   `toml:"starting_price"`
	ConfirmAfter  Duration `toml:"confirm_after"`
	OpenAfter     Duration `toml:"open_after"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the storefront's stock settings.
func Default() Config {
	return Config{
		Endpoint: catalog.DefaultEndpoint,
		Timeout:  Duration{10 * time.Second},
		Display: DisplayConfig{
			Currency:        render.DefaultCurrency,
			DefaultCategory: "hair accessories",
			SearchDelay:     Duration{500 * time.Millisecond},
		},
		Order: OrderConfig{
			DeepLinkBase:  order.DefaultDeepLinkBase,
			Destination:   "918111835438",
			StartingPrice: "199",
			ConfirmAfter:  Duration{order.DefaultConfirmAfter},
			OpenAfter:     Duration{order.DefaultOpenAfter},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/craftshelf/config.toml (or the OS equivalent).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "craftshelf", "config.toml")
}

// Load builds the configuration. An explicit path must exist; when path is empty the
// default path is read only if present. A .env file in the working directory is
// loaded into the environment first without overriding variables already set.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	cfg.applyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	c.Endpoint = parseString(getenv("CRAFTSHELF_ENDPOINT"), c.Endpoint)
	c.Timeout.Duration = parseDuration(getenv("CRAFTSHELF_TIMEOUT"), c.Timeout.Duration)
	c.Display.Currency = parseString(getenv("CRAFTSHELF_CURRENCY"), c.Display.Currency)
	c.Display.DefaultCategory = parseString(getenv("CRAFTSHELF_DEFAULT_CATEGORY"), c.Display.DefaultCategory)
	c.Display.SearchDelay.Duration = parseDuration(getenv("CRAFTSHELF_SEARCH_DELAY"), c.Display.SearchDelay.Duration)
	c.Order.DeepLinkBase = parseString(getenv("CRAFTSHELF_DEEP_LINK_BASE"), c.Order.DeepLinkBase)
	c.Order.Destination = parseString(getenv("CRAFTSHELF_DESTINATION"), c.Order.Destination)
	c.Order.StartingPrice = parseString(getenv("CRAFTSHELF_STARTING_PRICE"), c.Order.StartingPrice)
	c.Order.ConfirmAfter.Duration = parseDuration(getenv("CRAFTSHELF_CONFIRM_AFTER"), c.Order.ConfirmAfter.Duration)
	c.Order.OpenAfter.Duration = parseDuration(getenv("CRAFTSHELF_OPEN_AFTER"), c.Order.OpenAfter.Duration)
	c.Log.Level = parseString(getenv("LOG_LEVEL"), c.Log.Level)
	c.Log.File = parseString(getenv("CRAFTSHELF_LOG_FILE"), c.Log.File)
}

// Validate checks required fields and delay ordering.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Endpoint) == "" {
		errs = append(errs, errors.New("endpoint is required"))
	}
	if strings.TrimSpace(c.Order.Destination) == "" {
		errs = append(errs, errors.New("order.destination is required"))
	}
	if c.Display.SearchDelay.Duration < 0 {
		errs = append(errs, errors.New("display.search_delay must not be negative"))
	}
	if c.Order.ConfirmAfter.Duration < 0 || c.Order.OpenAfter.Duration < 0 {
		errs = append(errs, errors.New("order delays must not be negative"))
	}
	if c.Order.OpenAfter.Duration < c.Order.ConfirmAfter.Duration {
		errs = append(errs, errors.New("order.open_after must not be before order.confirm_after"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// Source returns the catalog source for the configured endpoint.
func (c Config) Source() types.CatalogSource {
	return catalog.NewSource(c.Endpoint, c.Timeout.Duration)
}

// Composer returns the order composer for the configured destination.
func (c Config) Composer() order.Composer {
	return order.Composer{
		Base:          c.Order.DeepLinkBase,
		Destination:   c.Order.Destination,
		Currency:      c.Display.Currency,
		StartingPrice: c.Order.StartingPrice,
	}
}

// Sequence returns the order feedback staging.
func (c Config) Sequence() order.Sequence {
	return order.Sequence{
		ConfirmAfter: c.Order.ConfirmAfter.Duration,
		OpenAfter:    c.Order.OpenAfter.Duration,
	}
}

// RenderOptions returns the card formatting options.
func (c Config) RenderOptions() render.Options {
	return render.Options{Currency: c.Display.Currency}
}

// DefaultFilter is the exact-category filter applied at startup, or no filter when
// no default category is configured.
func (c Config) DefaultFilter() types.Filter {
	if strings.TrimSpace(c.Display.DefaultCategory) == "" {
		return types.Filter{}
	}
	return types.Exact(c.Display.DefaultCategory)
}

func parseString(raw, fallback string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return fallback
	}
	return v
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(raw)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
