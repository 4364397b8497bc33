// Package config loads the credential configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/tara-vision/what/internal/environ"
	"github.com/tara-vision/what/internal/provider"
)

// DefaultFileName is the config file created in the home directory
const DefaultFileName = ".what.config.json"

// Config is the resolved configuration
type Config struct {
	Path    string
	Token   string
	BaseURL string
	Model   string
}

// Error reports a missing or unusable configuration
type Error struct {
	Path   string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Reason
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// DefaultPath returns the config path in the user's home directory
func DefaultPath(env environ.Env) (string, error) {
	home, err := env.HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultFileName), nil
}

// Load reads the JSON config at path, or at DefaultPath when path is
// empty. A missing file is created empty and reported as an error so the
// operator can fill in the token, unless the environment already carries
// one. Environment values take precedence over the file.
func Load(path string, env environ.Env) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultPath(env)
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetDefault("base_url", provider.DefaultBaseURL)
	v.SetDefault("model", provider.DefaultModel.String())

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := v.ReadInConfig(); err != nil {
			return Config{}, &Error{Path: path, Reason: "couldn't parse configuration file", Err: err}
		}
	case errors.Is(statErr, os.ErrNotExist):
		if env.Token == "" {
			if err := createEmpty(path); err != nil {
				return Config{}, &Error{Path: path, Reason: "couldn't create config file", Err: err}
			}
			return Config{}, &Error{Path: path, Reason: `couldn't find configuration file, created an empty one; add {"token": "..."} to it`}
		}
	default:
		return Config{}, &Error{Path: path, Reason: "couldn't read configuration file", Err: statErr}
	}

	cfg := Config{
		Path:    path,
		Token:   strings.TrimSpace(v.GetString("token")),
		BaseURL: v.GetString("base_url"),
		Model:   v.GetString("model"),
	}
	if env.Token != "" {
		cfg.Token = env.Token
	}
	if env.BaseURL != "" {
		cfg.BaseURL = env.BaseURL
	}
	if env.Model != "" {
		cfg.Model = env.Model
	}
	if cfg.Token == "" {
		return Config{}, &Error{Path: path, Reason: "token is missing from configuration"}
	}
	return cfg, nil
}

func createEmpty(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	return f.Close()
}
