// Package main - flags.go carries the flag set shared by the business and
// city commands: output path, credentials and fetch behavior.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonathan/social-scout/internal/config"
)

// commonFlags holds the per-command storage for the shared flag set.
type commonFlags struct {
	configPath string
	output     string
	fbCookies  string
	igUser     string
	igPass     string
	igSession  string
	proxy      string
	delay      int
	useBrowser bool
	verbose    bool
}

// registerCommonFlags wires the shared flags onto a command.
func registerCommonFlags(cmd *cobra.Command, f *commonFlags, defaultOutput string) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	cmd.Flags().StringVarP(&f.output, "output", "o", defaultOutput, "Destination CSV file")
	cmd.Flags().StringVar(&f.fbCookies, "fb-cookies", "", "Path to Facebook cookies.txt file (optional, defaults to FB_COOKIES env var)")
	cmd.Flags().StringVar(&f.igUser, "ig-user", "", "Instagram username (optional, defaults to IG_USERNAME env var)")
	cmd.Flags().StringVar(&f.igPass, "ig-pass", "", "Instagram password (optional, defaults to IG_PASSWORD env var)")
	cmd.Flags().StringVar(&f.igSession, "ig-session", "", "Path for the persisted Instagram session file")
	cmd.Flags().StringVar(&f.proxy, "proxy", "", "HTTP proxy URL for all outbound requests")
	cmd.Flags().IntVar(&f.delay, "delay", 0, "Seconds to wait between profile fetches")
	cmd.Flags().BoolVar(&f.useBrowser, "browser", false, "Render JS-walled pages with a headless browser (requires Chrome)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Print detailed debug information")
}

// buildConfig merges config file values, shared flag overrides and
// environment fallbacks into a validated run configuration.
func buildConfig(cmd *cobra.Command, f *commonFlags) (*config.Config, error) {
	var cfg config.Config
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	// CLI flags win over config file values when explicitly set.
	if cmd.Flags().Changed("output") || cfg.Output == "" {
		cfg.Output = f.output
	}
	if cmd.Flags().Changed("fb-cookies") {
		cfg.FBCookies = f.fbCookies
	}
	if cmd.Flags().Changed("ig-user") {
		cfg.IGUser = f.igUser
	}
	if cmd.Flags().Changed("ig-pass") {
		cfg.IGPass = f.igPass
	}
	if cmd.Flags().Changed("ig-session") {
		cfg.IGSession = f.igSession
	}
	if cmd.Flags().Changed("proxy") {
		cfg.ProxyURL = f.proxy
	}
	if cmd.Flags().Changed("delay") {
		cfg.DelaySeconds = f.delay
	}
	if f.useBrowser {
		cfg.UseBrowser = true
	}
	if f.verbose {
		cfg.Verbose = true
	}

	overlayEnv(&cfg)

	if cfg.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// overlayEnv fills credential fields that neither flags nor config file
// provided from the environment (or a .env file).
func overlayEnv(cfg *config.Config) {
	if cfg.FBCookies == "" {
		cfg.FBCookies = os.Getenv("FB_COOKIES")
	}
	if cfg.IGUser == "" {
		cfg.IGUser = os.Getenv("IG_USERNAME")
	}
	if cfg.IGPass == "" {
		cfg.IGPass = os.Getenv("IG_PASSWORD")
	}
}
