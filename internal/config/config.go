package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// EnvPrefix is the prefix for all environment variables
	EnvPrefix = "DCBAK_"
	// EnvStoragePrefix is the prefix for storage pool environment variables
	EnvStoragePrefix = EnvPrefix + "STORAGE_"
	// EnvNotifyPrefix is the prefix for notification provider environment variables
	EnvNotifyPrefix = EnvPrefix + "NOTIFY_"
)

// Default backup directory resolution: the absolute path wins when it
// exists on the host, otherwise a directory relative to the working
// directory is used.
const (
	DefaultBackupDir  = "/backup"
	FallbackBackupDir = "./backup"
)

// Config holds the global application configuration
type Config struct {
	// Docker settings
	DockerHost string

	// Where artifacts are written. Empty means resolve at run time via
	// ResolveBackupDir.
	BackupDir string

	// Upper bound for a single runtime call (exec, archive fetch).
	// Zero disables the limit.
	JobTimeout time.Duration

	// Mirror storage settings
	StorageArgs  []string
	StoragePools map[string]*StoragePool

	// Notification settings
	NotifyArgs    []string
	NotifyConfigs map[string]*NotifyConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// StoragePool represents a named mirror storage pool configuration
type StoragePool struct {
	Name    string
	Type    string
	Options map[string]string
}

// NotifyConfig represents a named notification provider configuration
type NotifyConfig struct {
	Name    string
	Type    string
	Options map[string]string
}

// New creates a new Config with default values
func New() *Config {
	return &Config{
		DockerHost:    "unix:///var/run/docker.sock",
		JobTimeout:    10 * time.Minute,
		LogLevel:      "info",
		LogFormat:     "text",
		StoragePools:  make(map[string]*StoragePool),
		NotifyConfigs: make(map[string]*NotifyConfig),
	}
}

// ResolveBackupDir returns the directory artifacts are written to. An
// explicitly configured directory wins; otherwise /backup is used when it
// exists on the host and ./backup as the fallback.
func (c *Config) ResolveBackupDir() string {
	if c.BackupDir != "" {
		return c.BackupDir
	}
	if info, err := os.Stat(DefaultBackupDir); err == nil && info.IsDir() {
		return DefaultBackupDir
	}
	return FallbackBackupDir
}

// ParseStoragePools merges mirror pool settings from environment variables
// and CLI arguments (CLI wins).
func (c *Config) ParseStoragePools() error {
	c.parseStorageEnvVars()

	for _, arg := range c.StorageArgs {
		poolName, option, value, err := splitPoolArg(arg)
		if err != nil {
			return fmt.Errorf("invalid storage argument: %w", err)
		}
		c.setStoragePoolOption(poolName, option, value)
	}

	for name, pool := range c.StoragePools {
		if pool.Type == "" {
			return fmt.Errorf("storage pool %q is missing required 'type' option", name)
		}
	}

	return nil
}

// ParseNotifyConfigs merges notification provider settings from environment
// variables and CLI arguments (CLI wins).
func (c *Config) ParseNotifyConfigs() error {
	c.parseNotifyEnvVars()

	for _, arg := range c.NotifyArgs {
		providerName, option, value, err := splitPoolArg(arg)
		if err != nil {
			return fmt.Errorf("invalid notify argument: %w", err)
		}
		c.setNotifyConfigOption(providerName, option, value)
	}

	for name, cfg := range c.NotifyConfigs {
		if cfg.Type == "" {
			return fmt.Errorf("notification provider %q is missing required 'type' option", name)
		}
	}

	return nil
}

// splitPoolArg parses "name.option=value" into its parts
func splitPoolArg(arg string) (name, option, value string, err error) {
	parts := strings.SplitN(arg, "=", 2)
	if len(parts) != 2 {
		return "", "", "", fmt.Errorf("%s (expected name.option=value)", arg)
	}

	keyParts := strings.SplitN(parts[0], ".", 2)
	if len(keyParts) != 2 {
		return "", "", "", fmt.Errorf("%s (expected name.option=value)", arg)
	}

	return keyParts[0], keyParts[1], parts[1], nil
}

func (c *Config) parseStorageEnvVars() {
	for _, env := range os.Environ() {
		name, option, value, ok := splitEnvVar(env, EnvStoragePrefix)
		if !ok {
			continue
		}
		c.setStoragePoolOption(name, option, value)
	}
}

func (c *Config) parseNotifyEnvVars() {
	for _, env := range os.Environ() {
		name, option, value, ok := splitEnvVar(env, EnvNotifyPrefix)
		if !ok {
			continue
		}
		c.setNotifyConfigOption(name, option, value)
	}
}

// splitEnvVar parses DCBAK_STORAGE_S3PROD_ACCESS_KEY=... into
// ("s3prod", "access-key", value). The first underscore after the prefix
// separates the pool name from the option.
func splitEnvVar(env, prefix string) (name, option, value string, ok bool) {
	if !strings.HasPrefix(env, prefix) {
		return "", "", "", false
	}

	parts := strings.SplitN(env, "=", 2)
	if len(parts) != 2 {
		return "", "", "", false
	}

	remainder := strings.TrimPrefix(parts[0], prefix)
	underscoreIdx := strings.Index(remainder, "_")
	if underscoreIdx == -1 {
		return "", "", "", false
	}

	name = strings.ToLower(remainder[:underscoreIdx])
	option = strings.ToLower(remainder[underscoreIdx+1:])
	option = strings.ReplaceAll(option, "_", "-")

	return name, option, parts[1], true
}

func (c *Config) setStoragePoolOption(poolName, option, value string) {
	pool, exists := c.StoragePools[poolName]
	if !exists {
		pool = &StoragePool{
			Name:    poolName,
			Options: make(map[string]string),
		}
		c.StoragePools[poolName] = pool
	}

	if option == "type" {
		pool.Type = value
	} else {
		pool.Options[option] = value
	}
}

func (c *Config) setNotifyConfigOption(providerName, option, value string) {
	cfg, exists := c.NotifyConfigs[providerName]
	if !exists {
		cfg = &NotifyConfig{
			Name:    providerName,
			Options: make(map[string]string),
		}
		c.NotifyConfigs[providerName] = cfg
	}

	if option == "type" {
		cfg.Type = value
	} else {
		cfg.Options[option] = value
	}
}
