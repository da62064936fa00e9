package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "planday.db"
	DefaultLogName        = "planday.log"
	appDirName            = "planday"
)

type Keymap struct {
	Quit       string `toml:"quit"`
	Help       string `toml:"help"`
	Up         string `toml:"up"`
	Down       string `toml:"down"`
	Next       string `toml:"next"`
	Previous   string `toml:"previous"`
	Today      string `toml:"today"`
	ToggleView string `toml:"toggle_view"`
	Picker     string `toml:"picker"`
	Add        string `toml:"add"`
	AddSub     string `toml:"add_sub"`
	Toggle     string `toml:"toggle"`
	Expand     string `toml:"expand"`
	Edit       string `toml:"edit"`
	Delete     string `toml:"delete"`
	Palette    string `toml:"palette"`
	Confirm    string `toml:"confirm"`
	Cancel     string `toml:"cancel"`
}

type Config struct {
	DBPath      string `toml:"db_path"`
	DefaultView string `toml:"default_view"`
	LogLevel    string `toml:"log_level"`
	LogFile     string `toml:"log_file"`
	ShowClock   bool   `toml:"show_clock"`
	Alarms      bool   `toml:"alarms"`
	Keys        Keymap `toml:"keys"`
}

func Default() Config {
	return Config{
		DBPath:      DefaultDBName,
		DefaultView: "day",
		LogLevel:    "info",
		LogFile:     DefaultLogName,
		ShowClock:   true,
		Alarms:      true,
		Keys: Keymap{
			Quit:       "q",
			Help:       "?",
			Up:         "k",
			Down:       "j",
			Next:       "l",
			Previous:   "h",
			Today:      "t",
			ToggleView: "w",
			Picker:     "m",
			Add:        "a",
			AddSub:     "s",
			Toggle:     " ",
			Expand:     "tab",
			Edit:       "e",
			Delete:     "d",
			Palette:    ":",
			Confirm:    "enter",
			Cancel:     "esc",
		},
	}
}

// ResolvePath returns PLANDAY_CONFIG when set, otherwise config.toml under the
// user config directory.
func ResolvePath() (string, error) {
	if p := strings.TrimSpace(os.Getenv("PLANDAY_CONFIG")); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve user config dir: %w", err)
	}
	return filepath.Join(dir, appDirName, DefaultConfigFileName), nil
}

// LoadOrCreate reads the TOML file at path, writing the defaults there first
// when it does not exist. Relative db and log paths are resolved against the
// config file's directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(filepath.Dir(path)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if cfg.DefaultView == "" {
		cfg.DefaultView = "day"
	}
	cfg.Keys = cfg.Keys.withDefaults(Default().Keys)
	return cfg.resolve(filepath.Dir(path)), nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (c Config) resolve(base string) Config {
	if c.DBPath != "" && c.DBPath != ":memory:" && !strings.HasPrefix(c.DBPath, "file:") && !filepath.IsAbs(c.DBPath) {
		c.DBPath = filepath.Join(base, c.DBPath)
	}
	if c.LogFile != "" && !filepath.IsAbs(c.LogFile) {
		c.LogFile = filepath.Join(base, c.LogFile)
	}
	return c
}

// FromEnv applies PLANDAY_* overrides on top of base.
func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("PLANDAY_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("PLANDAY_LOG_LEVEL"); ok {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := getEnvString("PLANDAY_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvString("PLANDAY_DEFAULT_VIEW"); ok {
		cfg.DefaultView = strings.ToLower(v)
	}
	if v, ok := getEnvBool("PLANDAY_SHOW_CLOCK"); ok {
		cfg.ShowClock = v
	}
	if v, ok := getEnvBool("PLANDAY_ALARMS"); ok {
		cfg.Alarms = v
	}
	return cfg
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}

func (k Keymap) withDefaults(def Keymap) Keymap {
	fill := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	fill(&k.Quit, def.Quit)
	fill(&k.Help, def.Help)
	fill(&k.Up, def.Up)
	fill(&k.Down, def.Down)
	fill(&k.Next, def.Next)
	fill(&k.Previous, def.Previous)
	fill(&k.Today, def.Today)
	fill(&k.ToggleView, def.ToggleView)
	fill(&k.Picker, def.Picker)
	fill(&k.Add, def.Add)
	fill(&k.AddSub, def.AddSub)
	fill(&k.Toggle, def.Toggle)
	fill(&k.Expand, def.Expand)
	fill(&k.Edit, def.Edit)
	fill(&k.Delete, def.Delete)
	fill(&k.Palette, def.Palette)
	fill(&k.Confirm, def.Confirm)
	fill(&k.Cancel, def.Cancel)
	return k
}
