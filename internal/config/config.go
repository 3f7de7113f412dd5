// Package config provides run configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// FacebookAuth is the credential shape the Facebook fetcher understands:
// an optional browser-exported cookies.txt file.
type FacebookAuth struct {
	CookiesFile string
}

// InstagramAuth is the credential shape the Instagram fetcher understands:
// an optional username/password pair plus the session file persisted across
// runs.
type InstagramAuth struct {
	Username    string
	Password    string
	SessionFile string
}

// HasCredentials reports whether a login should be attempted.
func (a *InstagramAuth) HasCredentials() bool {
	return a.Username != "" && a.Password != ""
}

// Config represents the run configuration. It can be loaded from a JSON
// file; CLI flags override file values.
type Config struct {
	// Output
	Output string `json:"output,omitempty"`

	// Limits
	MaxResults    int `json:"max_results,omitempty" validate:"gte=0"`
	MaxPerKeyword int `json:"max_per_keyword,omitempty" validate:"gte=0"`
	DelaySeconds  int `json:"delay_seconds,omitempty" validate:"gte=0"`

	// Credentials
	FBCookies string `json:"fb_cookies,omitempty"`
	IGUser    string `json:"ig_user,omitempty"`
	IGPass    string `json:"ig_pass,omitempty"`
	IGSession string `json:"ig_session,omitempty"`

	// Behavior
	ProxyURL   string `json:"proxy,omitempty" validate:"omitempty,url"`
	UseBrowser bool   `json:"use_browser,omitempty"`
	Verbose    bool   `json:"verbose,omitempty"`
}

// DefaultSessionFile is where Instagram session cookies persist when no
// explicit path is configured.
const DefaultSessionFile = ".ig_session.json"

var validate = validator.New()

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// Instagram credentials only make sense as a pair.
	if (c.IGUser == "") != (c.IGPass == "") {
		return fmt.Errorf("config error: ig_user and ig_pass must be provided together")
	}

	if c.FBCookies != "" {
		if _, err := os.Stat(c.FBCookies); os.IsNotExist(err) {
			return fmt.Errorf("config error: Facebook cookie file not found: %s", c.FBCookies)
		}
	}

	return nil
}

// Facebook returns the Facebook credential variant.
func (c *Config) Facebook() *FacebookAuth {
	return &FacebookAuth{CookiesFile: c.FBCookies}
}

// Instagram returns the Instagram credential variant.
func (c *Config) Instagram() *InstagramAuth {
	session := c.IGSession
	if session == "" {
		session = DefaultSessionFile
	}
	return &InstagramAuth{
		Username:    c.IGUser,
		Password:    c.IGPass,
		SessionFile: session,
	}
}

// HasAnyCredentials reports whether either platform got credential
// material. The pipeline warns explicitly when running fully anonymous.
func (c *Config) HasAnyCredentials() bool {
	return c.FBCookies != "" || c.Instagram().HasCredentials()
}
