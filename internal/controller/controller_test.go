package controller

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ytget/videogen/internal/api"
	"github.com/ytget/videogen/internal/download"
	"github.com/ytget/videogen/internal/model"
	"github.com/ytget/videogen/internal/notify"
)

const testInterval = 10 * time.Millisecond

type fakeView struct {
	mu            sync.Mutex
	resets        int
	percent       float64
	text          string
	enabled       bool
	enabledEvents []bool
	progressCalls int
}

func (v *fakeView) ResetProgress() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resets++
	v.percent = 0
}

func (v *fakeView) SetProgress(percent float64, text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.percent = percent
	v.text = text
	v.progressCalls++
}

func (v *fakeView) SetSubmitEnabled(enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.enabled = enabled
	v.enabledEvents = append(v.enabledEvents, enabled)
}

func (v *fakeView) state() (float64, string, bool, []bool, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	events := append([]bool(nil), v.enabledEvents...)
	return v.percent, v.text, v.enabled, events, v.progressCalls
}

type fakeNotifier struct {
	mu    sync.Mutex
	shown []notify.Fragment
}

func (n *fakeNotifier) Notify(message string, severity model.Severity) notify.Fragment {
	n.mu.Lock()
	defer n.mu.Unlock()
	f := notify.Render(message, severity)
	n.shown = append(n.shown, f)
	return f
}

func (n *fakeNotifier) all() []notify.Fragment {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Fragment(nil), n.shown...)
}

// fakeGenerator blocks Generate until release is closed
type fakeGenerator struct {
	release   chan struct{}
	result    *api.Result
	err       error
	onGen     func()
	progress  func(n int32) (model.ProgressSnapshot, error)
	pollCount atomic.Int32
}

func (g *fakeGenerator) Generate(ctx context.Context, form *api.Form) (*api.Result, error) {
	if g.onGen != nil {
		g.onGen()
	}
	if g.release != nil {
		select {
		case <-g.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return g.result, g.err
}

func (g *fakeGenerator) Progress(ctx context.Context) (model.ProgressSnapshot, error) {
	n := g.pollCount.Add(1)
	if g.progress == nil {
		return model.ProgressSnapshot{}, nil
	}
	return g.progress(n)
}

type fakeSaver struct {
	path string
	err  error
	data []byte
}

func (s *fakeSaver) Save(ctx context.Context, data []byte) (string, error) {
	s.data = data
	return s.path, s.err
}

func newTestController(gen Generator, saver Saver) (*Controller, *fakeView, *fakeNotifier) {
	view := &fakeView{enabled: true}
	notifier := &fakeNotifier{}
	c := New(view, notifier, gen, saver)
	c.SetPollInterval(testInterval)
	return c, view, notifier
}

func topicForm() *api.Form {
	return api.NewForm().Set(api.FieldTopic, "volcanoes")
}

func TestOnSubmit_SubmitControlDisabledOnlyWhileInFlight(t *testing.T) {
	tests := []struct {
		name     string
		gen      *fakeGenerator
		saver    *fakeSaver
		severity model.Severity
	}{
		{
			name:     "success",
			gen:      &fakeGenerator{result: &api.Result{Data: []byte("v")}},
			saver:    &fakeSaver{path: "/tmp/video.mp4"},
			severity: model.SeveritySuccess,
		},
		{
			name:     "generation error",
			gen:      &fakeGenerator{err: &api.GenerationError{StatusCode: 500, Message: "bad codec"}},
			saver:    &fakeSaver{},
			severity: model.SeverityDanger,
		},
		{
			name:     "transport error",
			gen:      &fakeGenerator{err: &api.TransportError{Op: api.OpGenerate, Err: errors.New("connection refused")}},
			saver:    &fakeSaver{},
			severity: model.SeverityDanger,
		},
		{
			name:     "save error",
			gen:      &fakeGenerator{result: &api.Result{Data: []byte("v")}},
			saver:    &fakeSaver{err: errors.New("disk full")},
			severity: model.SeverityDanger,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

			c, view, notifier := newTestController(tt.gen, tt.saver)

			var enabledDuring bool
			var submittingDuring bool
			tt.gen.onGen = func() {
				_, _, enabledDuring, _, _ = view.state()
				submittingDuring = c.Submitting()
			}

			_ = c.OnSubmit(context.Background(), topicForm())

			assert.False(t, enabledDuring, "submit must be disabled while the request is in flight")
			assert.True(t, submittingDuring)

			_, _, enabled, events, _ := view.state()
			assert.True(t, enabled)
			assert.Equal(t, []bool{false, true}, events)
			view.mu.Lock()
			assert.Equal(t, 1, view.resets)
			view.mu.Unlock()
			assert.False(t, c.Submitting())
			assert.False(t, c.PollActive())
			assert.Equal(t, model.SubmissionIdle, c.Status())

			shown := notifier.all()
			require.Len(t, shown, 1)
			assert.Equal(t, tt.severity, shown[0].Severity)
		})
	}
}

func TestOnSubmit_ReportsErrorMessages(t *testing.T) {
	gen := &fakeGenerator{err: &api.GenerationError{StatusCode: 400, Message: "bad codec"}}
	c, _, notifier := newTestController(gen, &fakeSaver{})

	err := c.OnSubmit(context.Background(), topicForm())
	var genErr *api.GenerationError
	require.True(t, errors.As(err, &genErr))

	shown := notifier.all()
	require.Len(t, shown, 1)
	assert.Equal(t, "bad codec", shown[0].Message)

	last, ok := c.LastSubmission()
	require.True(t, ok)
	assert.Equal(t, model.SubmissionFailed, last.Status)
	assert.Equal(t, "bad codec", last.LastError)
	assert.Equal(t, "volcanoes", last.Topic)
}

func TestOnSubmit_RejectsConcurrentSubmission(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	gen := &fakeGenerator{
		release: make(chan struct{}),
		result:  &api.Result{Data: []byte("v")},
	}
	c, view, _ := newTestController(gen, &fakeSaver{path: "p"})

	done := make(chan error, 1)
	go func() { done <- c.OnSubmit(context.Background(), topicForm()) }()

	require.Eventually(t, c.PollActive, time.Second, time.Millisecond)
	assert.True(t, c.Submitting())
	assert.Equal(t, model.SubmissionSubmitting, c.Status())

	err := c.OnSubmit(context.Background(), topicForm())
	assert.ErrorIs(t, err, ErrBusy)

	close(gen.release)
	require.NoError(t, <-done)

	_, _, _, events, _ := view.state()
	assert.Equal(t, []bool{false, true}, events, "rejected submission must not touch the submit control")
	assert.False(t, c.PollActive())
}

func TestPollProgress_RendersSnapshot(t *testing.T) {
	gen := &fakeGenerator{progress: func(int32) (model.ProgressSnapshot, error) {
		return model.ProgressSnapshot{Progress: 45, Status: "Encoding"}, nil
	}}
	c, view, _ := newTestController(gen, &fakeSaver{})

	c.PollProgress(context.Background())

	percent, text, _, _, _ := view.state()
	assert.Equal(t, 45.0, percent)
	assert.Equal(t, "Encoding (45%)", text)
}

func TestPollProgress_StopsAtHundred(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	gen := &fakeGenerator{
		release: make(chan struct{}),
		result:  &api.Result{Data: []byte("v")},
		progress: func(n int32) (model.ProgressSnapshot, error) {
			if n < 3 {
				return model.ProgressSnapshot{Progress: float64(n) * 40, Status: "Rendering"}, nil
			}
			return model.ProgressSnapshot{Progress: 100}, nil
		},
	}
	c, view, notifier := newTestController(gen, &fakeSaver{path: "p"})

	done := make(chan error, 1)
	go func() { done <- c.OnSubmit(context.Background(), topicForm()) }()

	require.Eventually(t, func() bool { return gen.pollCount.Load() == 3 }, time.Second, time.Millisecond)
	require.Eventually(t, func() bool { return !c.PollActive() }, time.Second, time.Millisecond)

	time.Sleep(5 * testInterval)
	assert.Equal(t, int32(3), gen.pollCount.Load(), "no polling after 100%")
	assert.True(t, c.Submitting(), "submission stays open until generate settles")
	assert.Empty(t, notifier.all())

	percent, text, enabled, _, _ := view.state()
	assert.Equal(t, 100.0, percent)
	assert.Equal(t, "Processing... (100%)", text)
	assert.False(t, enabled)

	close(gen.release)
	require.NoError(t, <-done)
}

func TestPollProgress_FailuresAreSwallowed(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	var healthy atomic.Bool
	gen := &fakeGenerator{
		release: make(chan struct{}),
		result:  &api.Result{Data: []byte("v")},
		progress: func(n int32) (model.ProgressSnapshot, error) {
			if healthy.Load() {
				return model.ProgressSnapshot{Progress: 50, Status: "Halfway"}, nil
			}
			return model.ProgressSnapshot{}, &api.TransportError{Op: api.OpProgress, Err: errors.New("boom")}
		},
	}
	c, view, notifier := newTestController(gen, &fakeSaver{path: "p"})

	done := make(chan error, 1)
	go func() { done <- c.OnSubmit(context.Background(), topicForm()) }()

	require.Eventually(t, func() bool { return gen.pollCount.Load() >= 4 }, time.Second, time.Millisecond)
	_, _, _, _, calls := view.state()
	assert.Equal(t, 0, calls, "failed polls must not touch the view")
	assert.Empty(t, notifier.all())
	assert.True(t, c.PollActive(), "polling continues after failures")

	healthy.Store(true)
	require.Eventually(t, func() bool {
		_, text, _, _, _ := view.state()
		return text == "Halfway (50%)"
	}, time.Second, time.Millisecond)

	close(gen.release)
	require.NoError(t, <-done)

	shown := notifier.all()
	require.Len(t, shown, 1)
	assert.Equal(t, model.SeveritySuccess, shown[0].Severity)
}

func TestOnSubmit_PollStoppedBeforeSettlement(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	gen := &fakeGenerator{
		release: make(chan struct{}),
		result:  &api.Result{Data: []byte("v")},
	}
	c, _, _ := newTestController(gen, &fakeSaver{path: "p"})

	var pollActiveAtSettle atomic.Bool
	pollActiveAtSettle.Store(true)
	c.SetSettledCallback(func(sub model.Submission) {
		pollActiveAtSettle.Store(c.PollActive())
	})

	done := make(chan error, 1)
	go func() { done <- c.OnSubmit(context.Background(), topicForm()) }()

	require.Eventually(t, func() bool { return gen.pollCount.Load() >= 2 }, time.Second, time.Millisecond)
	close(gen.release)
	require.NoError(t, <-done)

	assert.False(t, pollActiveAtSettle.Load())
	after := gen.pollCount.Load()
	time.Sleep(5 * testInterval)
	assert.Equal(t, after, gen.pollCount.Load())
}

func TestOnSubmit_AgainstServer(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantSev     model.Severity
		wantFile    bool
	}{
		{"video", http.StatusOK, "mp4-data", SuccessMessage, model.SeveritySuccess, true},
		{"empty video", http.StatusOK, "", SuccessMessage, model.SeveritySuccess, true},
		{"numeric error", http.StatusBadRequest, `{"error": 42}`, "42", model.SeverityDanger, false},
		{"json error", http.StatusBadRequest, `{"error": "bad codec"}`, "bad codec", model.SeverityDanger, false},
		{"unparseable error", http.StatusInternalServerError, `oops`, "Failed to generate video", model.SeverityDanger, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc(api.GeneratePath, func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(3 * testInterval)
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			mux.HandleFunc(api.ProgressPath, func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, `{"progress": 45, "status": "Encoding"}`)
			})
			srv := httptest.NewServer(mux)
			defer srv.Close()
			defer srv.CloseClientConnections()

			dir := t.TempDir()
			client := api.NewClient(srv.URL, srv.Client())
			c, _, notifier := newTestController(client, download.NewService(dir))

			_ = c.OnSubmit(context.Background(), topicForm())

			shown := notifier.all()
			require.Len(t, shown, 1)
			assert.Equal(t, tt.wantMessage, shown[0].Message)
			assert.Equal(t, tt.wantSev, shown[0].Severity)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			if !tt.wantFile {
				assert.Empty(t, entries)
				return
			}
			require.Len(t, entries, 1, "temporary file must be released")
			assert.Equal(t, download.DefaultFilename, entries[0].Name())
			data, err := os.ReadFile(filepath.Join(dir, download.DefaultFilename))
			require.NoError(t, err)
			assert.Equal(t, tt.body, string(data))
		})
	}
}

func TestController_SetGeneratorAppliesToNextSubmission(t *testing.T) {
	first := &fakeGenerator{err: &api.GenerationError{StatusCode: 500, Message: "old server"}}
	second := &fakeGenerator{result: &api.Result{Data: []byte("mp4")}}
	saver := &fakeSaver{path: "/tmp/video.mp4"}

	c, _, notifier := newTestController(first, saver)
	require.Error(t, c.OnSubmit(context.Background(), topicForm()))

	c.SetGenerator(second)
	require.NoError(t, c.OnSubmit(context.Background(), topicForm()))

	shown := notifier.all()
	require.Len(t, shown, 2)
	assert.Equal(t, "old server", shown[0].Message)
	assert.Equal(t, SuccessMessage, shown[1].Message)
	assert.Equal(t, []byte("mp4"), saver.data)
}

type panickingSaver struct{}

func (panickingSaver) Save(ctx context.Context, data []byte) (string, error) {
	panic("disk on fire")
}

func TestOnSubmit_PanicBecomesDangerNotification(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	gen := &fakeGenerator{result: &api.Result{Data: []byte("mp4")}}
	c, view, notifier := newTestController(gen, panickingSaver{})

	var err error
	require.NotPanics(t, func() {
		err = c.OnSubmit(context.Background(), topicForm())
	})
	require.ErrorIs(t, err, ErrPanicked)
	assert.Contains(t, err.Error(), "disk on fire")

	shown := notifier.all()
	require.Len(t, shown, 1)
	assert.Equal(t, model.SeverityDanger, shown[0].Severity)
	assert.Equal(t, api.DefaultGenerateError, shown[0].Message)

	last, ok := c.LastSubmission()
	require.True(t, ok)
	assert.Equal(t, model.SubmissionFailed, last.Status)
	assert.False(t, c.Submitting())
	assert.False(t, c.PollActive())

	_, _, enabled, _, _ := view.state()
	assert.True(t, enabled)
}
