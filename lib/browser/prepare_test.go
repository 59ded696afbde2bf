package browser

import (
	"context"
	"errors"
	"testing"
	"time"
	"yfscrape/internal/components/telemetry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type fakeElement struct {
	session  *fakeSession
	selector string
}

func (e fakeElement) Click(context.Context) error {
	e.session.clicked = append(e.session.clicked, e.selector)
	if reveal, ok := e.session.reveals[e.selector]; ok {
		e.session.html = reveal
	}
	return nil
}

// fakeSession holds a page where only the selectors in present ever appear.
type fakeSession struct {
	present   map[string]bool
	reveals   map[string]string
	html      string
	navigated string
	clicked   []string
}

func (s *fakeSession) Navigate(_ context.Context, url string) error {
	s.navigated = url
	return nil
}

func (s *fakeSession) WaitFor(ctx context.Context, selector string) (Element, error) {
	if s.present[selector] {
		return fakeElement{session: s, selector: selector}, nil
	}
	<-ctx.Done()
	return nil, ctx.Err()
}

func (s *fakeSession) HTML(context.Context) (string, error) {
	return s.html, nil
}

func (s *fakeSession) Close() error {
	return nil
}

const (
	consent = "button.reject-all"
	expand  = "section > div:nth-child(2) > button"
)

func TestRender(t *testing.T) {
	s := &fakeSession{
		present: map[string]bool{expand: true},
		reveals: map[string]string{expand: "<table>expanded</table>"},
		html:    "<table>collapsed</table>",
	}
	rec := &telemetry.Recorder{}

	html, err := Render(
		context.Background(), s, "https://finance.yahoo.com/quote/GLE.PA/balance-sheet?p=GLE.PA",
		[]Step{
			{Name: "dismiss consent", Selector: consent, Timeout: time.Millisecond * 20, Optional: true},
			{Name: "expand rows", Selector: expand},
		},
		time.Second, rec,
	)
	require.NoError(t, err)
	require.Equal(t, "<table>expanded</table>", html)
	require.Equal(t, "https://finance.yahoo.com/quote/GLE.PA/balance-sheet?p=GLE.PA", s.navigated)
	require.Empty(t, cmp.Diff([]string{expand}, s.clicked))
	require.Empty(t, cmp.Diff([]string{report_prepare_step}, rec.IDs(telemetry.KindWarning)))
}

func TestPrepareTimeout(t *testing.T) {
	s := &fakeSession{present: map[string]bool{consent: true}}
	rec := &telemetry.Recorder{}

	err := Prepare(
		context.Background(), s,
		[]Step{
			{Name: "dismiss consent", Selector: consent, Optional: true},
			{Name: "expand rows", Selector: expand},
		},
		time.Millisecond*20, rec,
	)
	require.ErrorIs(t, err, ErrPreconditionTimeout)

	var timeout *PreconditionTimeoutError
	require.True(t, errors.As(err, &timeout))
	require.Equal(t, "expand rows", timeout.Step)
	require.Equal(t, time.Millisecond*20, timeout.Timeout)
	require.Empty(t, cmp.Diff([]string{consent}, s.clicked))
	require.Empty(t, cmp.Diff([]string{report_prepare_step}, rec.IDs(telemetry.KindBroken)))
}

func TestPrepareSkipsMissingOptionalStepQuickly(t *testing.T) {
	previous := optionalTimeout
	optionalTimeout = time.Millisecond * 20
	t.Cleanup(func() { optionalTimeout = previous })

	s := &fakeSession{present: map[string]bool{expand: true}}
	rec := &telemetry.Recorder{}

	start := time.Now()
	err := Prepare(
		context.Background(), s,
		[]Step{
			{Name: "dismiss consent", Selector: consent, Optional: true},
			{Name: "expand rows", Selector: expand},
		},
		time.Second*5, rec,
	)
	require.NoError(t, err)
	require.Less(t, time.Since(start), time.Second)
	require.Empty(t, cmp.Diff([]string{expand}, s.clicked))
	require.Empty(t, cmp.Diff([]string{report_prepare_step}, rec.IDs(telemetry.KindWarning)))
}

func TestPrepareOptionalStepKeepsShorterDefault(t *testing.T) {
	s := &fakeSession{}

	start := time.Now()
	err := Prepare(
		context.Background(), s,
		[]Step{{Name: "dismiss consent", Selector: consent, Optional: true}},
		time.Millisecond*20, &telemetry.Recorder{},
	)
	require.NoError(t, err)
	require.Less(t, time.Since(start), time.Second)
}

func TestRenderDoesNotReadUnpreparedPage(t *testing.T) {
	s := &fakeSession{html: "<table>collapsed</table>"}

	html, err := Render(
		context.Background(), s, "https://finance.yahoo.com/quote/GLE.PA/financials?p=GLE.PA",
		[]Step{{Name: "expand rows", Selector: expand, Timeout: time.Millisecond * 10}},
		time.Second, &telemetry.Recorder{},
	)
	require.ErrorIs(t, err, ErrPreconditionTimeout)
	require.Empty(t, html)
}

func TestPrepareCanceled(t *testing.T) {
	s := &fakeSession{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Prepare(ctx, s, []Step{{Name: "expand rows", Selector: expand}}, time.Second, &telemetry.Recorder{})
	require.ErrorIs(t, err, context.Canceled)
}
