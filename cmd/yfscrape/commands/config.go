package commands

import (
	"time"
	"yfscrape/internal/components/telemetry"
	"yfscrape/internal/scrapers/yahoo"
	"yfscrape/lib/browser"
	"yfscrape/lib/httpfetch"
)

const defaultConfigName = "yfscrape.json5"

type HttpConfig struct {
	// UserAgent is empty to pick a random Chrome user agent per run.
	UserAgent         string            `json:"user_agent"`
	TimeoutSeconds    int               `json:"timeout_seconds"`
	RequestsPerSecond float64           `json:"requests_per_second"`
	Headers           map[string]string `json:"headers"`
	// DumpDir keeps a copy of every fetched page when set.
	DumpDir string `json:"dump_dir"`
}

type BrowserConfig struct {
	Enabled            bool   `json:"enabled"`
	RemoteURL          string `json:"remote_url"`
	Headless           bool   `json:"headless"`
	Stealth            bool   `json:"stealth"`
	WaitTimeoutSeconds int    `json:"wait_timeout_seconds"`
}

type Config struct {
	BaseURL   string           `json:"base_url"`
	Http      HttpConfig       `json:"http"`
	Browser   BrowserConfig    `json:"browser"`
	Telemetry telemetry.Config `json:"telemetry"`
}

func defaultConfig() Config {
	return Config{
		BaseURL: yahoo.DefaultBaseURL,
		Http: HttpConfig{
			TimeoutSeconds:    30,
			RequestsPerSecond: 2,
		},
		Browser: BrowserConfig{
			Headless:           true,
			Stealth:            true,
			WaitTimeoutSeconds: int(browser.DefaultTimeout / time.Second),
		},
	}
}

func (c Config) fetcherOptions() httpfetch.Options {
	return httpfetch.Options{
		UserAgent:         c.Http.UserAgent,
		Timeout:           time.Duration(c.Http.TimeoutSeconds) * time.Second,
		RequestsPerSecond: c.Http.RequestsPerSecond,
		Headers:           c.Http.Headers,
		DumpDir:           c.Http.DumpDir,
	}
}

func (c Config) browserConfig() browser.Config {
	return browser.Config{
		RemoteURL:   c.Browser.RemoteURL,
		Headless:    c.Browser.Headless,
		Stealth:     c.Browser.Stealth,
		UserAgent:   c.Http.UserAgent,
		WaitTimeout: c.waitTimeout(),
	}
}

func (c Config) waitTimeout() time.Duration {
	return time.Duration(c.Browser.WaitTimeoutSeconds) * time.Second
}
