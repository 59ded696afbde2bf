// Package browser renders pages that need a real browser, running the
// interactions ("precondition steps") that must complete before the markup
// holds the data to extract.
package browser

import (
	"context"
	"errors"
	"fmt"
	"time"
	"yfscrape/internal/components/telemetry"
)

const (
	report_prepare_step = "prepare.step"
	report_render       = "render"
)

// DefaultTimeout bounds the wait for a step's element when neither the step
// nor the caller sets a timeout.
const DefaultTimeout = time.Second * 120

// optionalTimeout bounds the wait of an optional step without its own timeout.
var optionalTimeout = time.Second * 10

var ErrPreconditionTimeout = errors.New("precondition timeout")

type PreconditionTimeoutError struct {
	Step     string
	Selector string
	Timeout  time.Duration
}

func (e *PreconditionTimeoutError) Error() string {
	return fmt.Sprintf(
		"precondition %q: %q did not appear within %s",
		e.Step, e.Selector, e.Timeout,
	)
}

func (e *PreconditionTimeoutError) Is(target error) bool {
	return target == ErrPreconditionTimeout
}

type Element interface {
	Click(ctx context.Context) error
}

// Session is one open browser tab.
type Session interface {
	Navigate(ctx context.Context, url string) error
	// WaitFor blocks until an element matching selector is present or ctx is done.
	WaitFor(ctx context.Context, selector string) (Element, error)
	HTML(ctx context.Context) (string, error)
	Close() error
}

// Step waits for Selector and clicks it.
type Step struct {
	Name     string
	Selector string
	// Timeout overrides the default timeout of Prepare when set. Optional
	// steps default to the shorter of 10 seconds and that timeout.
	Timeout time.Duration
	// Optional steps are skipped with a warning instead of failing Prepare.
	Optional bool
}

// Prepare runs steps in order against s. A required step whose element does
// not appear in time fails with a PreconditionTimeoutError, after which the
// session must not be read.
func Prepare(ctx context.Context, s Session, steps []Step, defaultTimeout time.Duration, tel telemetry.API) error {
	if defaultTimeout <= 0 {
		defaultTimeout = DefaultTimeout
	}
	for _, step := range steps {
		timeout := step.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
			if step.Optional && optionalTimeout < timeout {
				timeout = optionalTimeout
			}
		}

		err := runStep(ctx, s, step, timeout)
		if err == nil {
			tel.ReportDebug(report_prepare_step, step.Name, "done")
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if step.Optional {
			tel.ReportWarning(report_prepare_step, step.Name, "skipped", err)
			continue
		}
		tel.ReportBroken(report_prepare_step, step.Name, err)
		return err
	}
	return nil
}

func runStep(ctx context.Context, s Session, step Step, timeout time.Duration) error {
	stepCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	el, err := s.WaitFor(stepCtx, step.Selector)
	if err != nil {
		if errors.Is(stepCtx.Err(), context.DeadlineExceeded) {
			return &PreconditionTimeoutError{
				Step:     step.Name,
				Selector: step.Selector,
				Timeout:  timeout,
			}
		}
		return fmt.Errorf("%s: wait for %q: %w", step.Name, step.Selector, err)
	}

	err = el.Click(stepCtx)
	if err != nil {
		return fmt.Errorf("%s: click %q: %w", step.Name, step.Selector, err)
	}
	return nil
}

// Render navigates s to url, prepares it and returns the rendered markup.
// Closing s is up to the caller.
func Render(ctx context.Context, s Session, url string, steps []Step, timeout time.Duration, tel telemetry.API) (string, error) {
	tel.ReportDebug(report_render, url)

	err := s.Navigate(ctx, url)
	if err != nil {
		tel.ReportBroken(report_render, url, err)
		return "", fmt.Errorf("navigate %s: %w", url, err)
	}
	err = Prepare(ctx, s, steps, timeout, tel)
	if err != nil {
		return "", err
	}
	return s.HTML(ctx)
}
