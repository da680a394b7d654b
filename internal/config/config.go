package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Environment variables understood besides the TODO_<KEY> overrides
const (
	EnvPrefix     = "TODO"
	EnvConfigFile = "TODO_CONFIG"
)

// Defaults
const (
	DefaultDataDir    = "~/.todo-cli"
	DefaultDataFile   = "data.csv"
	DefaultLogFile    = "debug.log"
	DefaultConfigFile = "config.json"

	IDsRandom     = "random"
	IDsSequential = "sequential"
)

// ErrNoConfigPaths is returned when there is no config location that can be watched
var ErrNoConfigPaths = errors.New("no config paths to watch")

// Config represents the application configuration
type Config struct {
	DataDir     string            `mapstructure:"dataDir" json:"dataDir"`
	DataFile    string            `mapstructure:"dataFile" json:"dataFile"`
	LogFile     string            `mapstructure:"logFile" json:"logFile"`
	Debug       bool              `mapstructure:"debug" json:"debug"`
	IDs         string            `mapstructure:"ids" json:"ids"`
	KeyBindings map[string]string `mapstructure:"keyBindings" json:"keyBindings"`

	// ConfigFile is the file the values were read from; empty when none exists
	ConfigFile string `mapstructure:"-" json:"-"`
}

// Options carries explicit overrides, typically command line flags.
// Zero values leave the configured value in place.
type Options struct {
	ConfigFile string
	DataDir    string
	Debug      bool
}

// DataPath returns the location of the task file
func (c *Config) DataPath() string {
	if filepath.IsAbs(c.DataFile) {
		return c.DataFile
	}
	return filepath.Join(c.DataDir, c.DataFile)
}

// LogPath returns the location of the debug log
func (c *Config) LogPath() string {
	if filepath.IsAbs(c.LogFile) {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, c.LogFile)
}

// Load reads configuration from defaults, the JSON config file and TODO_* environment variables,
// in increasing order of precedence. Options win over all of them.
func Load(opts Options) (*Config, error) {
	v := viper.New()

	v.SetDefault("dataDir", DefaultDataDir)
	v.SetDefault("dataFile", DefaultDataFile)
	v.SetDefault("logFile", DefaultLogFile)
	v.SetDefault("debug", false)
	v.SetDefault("ids", IDsRandom)
	v.SetDefault("keyBindings", map[string]string{})

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.DataDir != "" {
		v.Set("dataDir", opts.DataDir)
	}

	configFile, err := resolveConfigFile(opts.ConfigFile, v.GetString("dataDir"))
	if err != nil {
		return nil, err
	}

	v.SetConfigType("json")
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		configFile = ""
	}

	// Explicit overrides beat the file
	if opts.DataDir != "" {
		v.Set("dataDir", opts.DataDir)
	}
	if opts.Debug {
		v.Set("debug", true)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.ConfigFile = configFile

	if cfg.DataDir, err = homedir.Expand(cfg.DataDir); err != nil {
		return nil, fmt.Errorf("failed to resolve data dir: %w", err)
	}
	if cfg.DataFile, err = homedir.Expand(cfg.DataFile); err != nil {
		return nil, fmt.Errorf("failed to resolve data file: %w", err)
	}
	if cfg.LogFile, err = homedir.Expand(cfg.LogFile); err != nil {
		return nil, fmt.Errorf("failed to resolve log file: %w", err)
	}
	if cfg.DataFile == "" {
		cfg.DataFile = DefaultDataFile
	}
	if cfg.LogFile == "" {
		cfg.LogFile = DefaultLogFile
	}
	if cfg.KeyBindings == nil {
		cfg.KeyBindings = map[string]string{}
	}

	switch cfg.IDs = strings.ToLower(strings.TrimSpace(cfg.IDs)); cfg.IDs {
	case "":
		cfg.IDs = IDsRandom
	case IDsRandom, IDsSequential:
	default:
		return nil, fmt.Errorf("invalid ids mode %q: expected %q or %q", cfg.IDs, IDsRandom, IDsSequential)
	}

	return cfg, nil
}

// resolveConfigFile picks the config file: explicit path, then $TODO_CONFIG, then <dataDir>/config.json
func resolveConfigFile(explicit, dataDir string) (string, error) {
	path := explicit
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path == "" {
		path = filepath.Join(dataDir, DefaultConfigFile)
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve config file: %w", err)
	}
	return expanded, nil
}

// ConfigManager handles configuration with file watching capabilities
type ConfigManager struct {
	opts       Options
	config     *Config
	watcher    *Watcher
	reloadChan chan struct{}
	logger     *slog.Logger
	mu         sync.RWMutex
}

// NewConfigManager loads the configuration and prepares it for watching
func NewConfigManager(opts Options, logger *slog.Logger) (*ConfigManager, error) {
	cfg, err := Load(opts)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &ConfigManager{
		opts:       opts,
		config:     cfg,
		reloadChan: make(chan struct{}, 1),
		logger:     logger,
	}, nil
}

// GetConfig returns the current configuration (thread-safe)
func (cm *ConfigManager) GetConfig() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// SetLogger replaces the logger used for reload diagnostics
func (cm *ConfigManager) SetLogger(logger *slog.Logger) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.logger = logger
}

// Reload loads the configuration from disk.
// The previous configuration stays active when the new one cannot be read.
func (cm *ConfigManager) Reload() error {
	cfg, err := Load(cm.opts)
	if err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}

	cm.mu.Lock()
	cm.config = cfg
	cm.mu.Unlock()
	return nil
}

// watchPaths returns the config file location if its directory exists.
// The file itself may be missing; creating it later triggers a reload.
func (cm *ConfigManager) watchPaths() []string {
	path, err := resolveConfigFile(cm.opts.ConfigFile, cm.config.DataDir)
	if err != nil {
		return nil
	}
	if info, err := os.Stat(filepath.Dir(path)); err != nil || !info.IsDir() {
		return nil
	}
	return []string{path}
}

// StartWatcher begins watching the config file for changes with a 300ms debounce
func (cm *ConfigManager) StartWatcher(ctx context.Context) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.watcher != nil {
		return fmt.Errorf("watcher already started")
	}

	paths := cm.watchPaths()
	if len(paths) == 0 {
		return ErrNoConfigPaths
	}

	watcher, err := NewWatcher(ctx, paths...)
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := watcher.Start(300 * time.Millisecond); err != nil {
		watcher.Stop()
		return fmt.Errorf("failed to start config watcher: %w", err)
	}
	cm.watcher = watcher

	go cm.handleConfigChanges(ctx, watcher)

	return nil
}

// handleConfigChanges reloads the config on every debounced change notification
func (cm *ConfigManager) handleConfigChanges(ctx context.Context, w *Watcher) {
	for {
		select {
		case <-ctx.Done():
			return

		case _, ok := <-w.Events():
			if !ok {
				return
			}
			if err := cm.Reload(); err != nil {
				cm.log().Warn("config reload failed", "err", err)
				continue
			}
			cm.log().Debug("config reloaded", "file", cm.GetConfig().ConfigFile)

			select {
			case cm.reloadChan <- struct{}{}:
			default:
				// notification already pending
			}

		case err, ok := <-w.Errors():
			if !ok {
				return
			}
			cm.log().Warn("config watcher error", "err", err)
		}
	}
}

func (cm *ConfigManager) log() *slog.Logger {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.logger
}

// StopWatcher stops the config file watcher if it's running
func (cm *ConfigManager) StopWatcher() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.watcher == nil {
		return nil
	}

	err := cm.watcher.Stop()
	cm.watcher = nil
	return err
}

// KeyBindings returns the configured key binding overrides
func (cm *ConfigManager) KeyBindings() map[string]string {
	return cm.GetConfig().KeyBindings
}

// ReloadEvents returns a channel that signals when config has been reloaded
func (cm *ConfigManager) ReloadEvents() <-chan struct{} {
	return cm.reloadChan
}
