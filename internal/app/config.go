package app

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const EnvPrefix = "SURVEY_DECK_"

// Config controls runtime behavior for the TUI app.
type Config struct {
	DeckPath     string   `env:"DECK"`
	LogPath      string   `env:"LOG"`
	Debug        bool     `env:"DEBUG"`
	ASCIIOnly    bool     `env:"ASCII"`
	StartSlide   int      `env:"START"`
	DemoScenario string   `env:"DEMO"`
	DevStateDir  string   `env:"DEV_STATE_DIR"`
	UI           UIConfig `envPrefix:"UI_"`
}

type UIConfig struct {
	StyleVariant string `env:"STYLE"`
	MotionLevel  string `env:"MOTION"`
	MouseScope   string `env:"MOUSE"`
}

func DefaultConfig() Config {
	return Config{
		UI: UIConfig{
			StyleVariant: "modern_arcade",
			MotionLevel:  "full",
			MouseScope:   "scoped",
		},
	}
}

// LoadEnv overlays SURVEY_DECK_* variables onto c. Unset variables leave
// the current value alone.
func LoadEnv(c *Config) error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.StartSlide < 0 {
		return fmt.Errorf("invalid start slide %d", c.StartSlide)
	}
	switch c.UI.StyleVariant {
	case "", "modern_arcade", "cozy_clean", "retro_terminal":
	default:
		return fmt.Errorf("invalid ui style variant %q", c.UI.StyleVariant)
	}
	if c.UI.StyleVariant == "" {
		c.UI.StyleVariant = "modern_arcade"
	}
	switch c.UI.MotionLevel {
	case "", "off", "reduced", "full":
	default:
		return fmt.Errorf("invalid ui motion level %q", c.UI.MotionLevel)
	}
	if c.UI.MotionLevel == "" {
		c.UI.MotionLevel = "full"
	}
	switch c.UI.MouseScope {
	case "", "off", "scoped", "full":
	default:
		return fmt.Errorf("invalid ui mouse scope %q", c.UI.MouseScope)
	}
	if c.UI.MouseScope == "" {
		c.UI.MouseScope = "scoped"
	}
	return nil
}
