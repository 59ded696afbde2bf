package browser

import (
	"context"
	"fmt"
	"time"
	"yfscrape/internal/components/assert"
	"yfscrape/internal/components/telemetry"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

const report_driver_launch = "driver.launch"

type Config struct {
	// RemoteURL is the DevTools endpoint of an already running browser.
	// Empty = launch a local Chrome via launcher.
	RemoteURL string
	Headless  bool
	// Stealth opens pages with the evasions of go-rod/stealth applied.
	Stealth     bool
	UserAgent   string
	WaitTimeout time.Duration
}

// Driver owns one browser process (or remote connection) and opens a fresh
// tab for every render.
type Driver struct {
	cfg      Config
	browser  *rod.Browser
	launcher *launcher.Launcher
	tel      telemetry.API
}

func Launch(ctx context.Context, cfg Config, tel telemetry.API) (*Driver, error) {
	assert.NotNil(tel)
	tel = telemetry.NewScopedAPI("browser", tel)

	d := &Driver{cfg: cfg, tel: tel}

	var wsURL string
	if cfg.RemoteURL != "" {
		u, err := launcher.ResolveURL(cfg.RemoteURL)
		if err != nil {
			tel.ReportBroken(report_driver_launch, err, cfg.RemoteURL)
			return nil, fmt.Errorf("browser: resolve %s: %w", cfg.RemoteURL, err)
		}
		wsURL = u
	} else {
		l := launcher.New().
			Context(ctx).
			Headless(cfg.Headless).
			Set("disable-blink-features", "AutomationControlled")
		u, err := l.Launch()
		if err != nil {
			tel.ReportBroken(report_driver_launch, err)
			return nil, fmt.Errorf("browser: launch: %w", err)
		}
		wsURL = u
		d.launcher = l
	}
	tel.ReportDebug(report_driver_launch, wsURL)

	b := rod.New().ControlURL(wsURL)
	err := b.Connect()
	if err != nil {
		d.Close()
		tel.ReportBroken(report_driver_launch, err, wsURL)
		return nil, fmt.Errorf("browser: connect: %w", err)
	}
	d.browser = b
	return d, nil
}

// Open creates a new tab.
func (d *Driver) Open(ctx context.Context) (Session, error) {
	var page *rod.Page
	var err error
	if d.cfg.Stealth {
		page, err = stealth.Page(d.browser)
	} else {
		page, err = d.browser.Page(proto.TargetCreateTarget{URL: ""})
	}
	if err != nil {
		return nil, fmt.Errorf("browser: create tab: %w", err)
	}

	if d.cfg.UserAgent != "" {
		err = page.Context(ctx).SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent:      d.cfg.UserAgent,
			AcceptLanguage: "en-US,en;q=0.9",
		})
		if err != nil {
			page.Close()
			return nil, fmt.Errorf("browser: set user agent: %w", err)
		}
	}
	return rodSession{page: page}, nil
}

// Render opens a tab, renders url with steps and closes the tab.
func (d *Driver) Render(ctx context.Context, url string, steps []Step) (string, error) {
	s, err := d.Open(ctx)
	if err != nil {
		d.tel.ReportBroken(report_render, err)
		return "", err
	}
	defer s.Close()
	return Render(ctx, s, url, steps, d.cfg.WaitTimeout, d.tel)
}

func (d *Driver) Close() error {
	var err error
	if d.browser != nil {
		err = d.browser.Close()
	}
	if d.launcher != nil {
		d.launcher.Kill()
	}
	return err
}

type rodSession struct {
	page *rod.Page
}

func (s rodSession) Navigate(ctx context.Context, url string) error {
	page := s.page.Context(ctx)
	err := page.Navigate(url)
	if err != nil {
		return err
	}
	return page.WaitLoad()
}

func (s rodSession) WaitFor(ctx context.Context, selector string) (Element, error) {
	el, err := s.page.Context(ctx).Element(selector)
	if err != nil {
		return nil, err
	}
	return rodElement{el: el}, nil
}

func (s rodSession) HTML(ctx context.Context) (string, error) {
	return s.page.Context(ctx).HTML()
}

func (s rodSession) Close() error {
	return s.page.Close()
}

type rodElement struct {
	el *rod.Element
}

func (e rodElement) Click(ctx context.Context) error {
	return e.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1)
}
