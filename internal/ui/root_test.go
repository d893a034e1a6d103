package ui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/videogen/internal/api"
	"github.com/ytget/videogen/internal/controller"
	"github.com/ytget/videogen/internal/download"
	"github.com/ytget/videogen/internal/model"
	"github.com/ytget/videogen/internal/notify"
)

func newTestRootUI(t *testing.T, serverURL string) (*RootUI, string) {
	t.Helper()

	app := test.NewApp()
	window := app.NewWindow("test")
	dir := t.TempDir()

	ui := NewRootUI(window, app, api.NewClient(serverURL, nil), download.NewService(dir))
	t.Cleanup(ui.Close)
	return ui, dir
}

func TestRootUI_ViewMethods(t *testing.T) {
	ui, _ := newTestRootUI(t, "http://localhost:5000")

	assert.False(t, ui.progressBar.Visible(), "progress bar hidden before submit")

	ui.ResetProgress()
	assert.True(t, ui.progressBar.Visible())
	assert.Equal(t, float64(ProgressMin), ui.progressBar.Value)
	assert.Equal(t, "", ui.statusLabel.Text)

	ui.SetProgress(45, "Encoding (45%)")
	assert.Equal(t, 45.0, ui.progressBar.Value)
	assert.Equal(t, "Encoding (45%)", ui.statusLabel.Text)

	ui.SetSubmitEnabled(false)
	assert.True(t, ui.generateBtn.Disabled())
	ui.SetSubmitEnabled(true)
	assert.False(t, ui.generateBtn.Disabled())
}

func TestRootUI_BannersPrependAndRemove(t *testing.T) {
	ui, _ := newTestRootUI(t, "http://localhost:5000")

	first := notify.Render("first", model.SeverityDanger)
	second := notify.Render("second", model.SeveritySuccess)

	ui.Prepend(first)
	ui.Prepend(second)
	require.Len(t, ui.notifications.Objects, 2)
	assert.Same(t, ui.banners[second.ID], ui.notifications.Objects[0], "newest banner on top")

	ui.Remove(first.ID)
	require.Len(t, ui.notifications.Objects, 1)
	assert.Same(t, ui.banners[second.ID], ui.notifications.Objects[0])

	// Unknown IDs are ignored
	ui.Remove("missing")
	assert.Len(t, ui.notifications.Objects, 1)
}

func TestRootUI_GenerateEndToEnd(t *testing.T) {
	payload := []byte("fake mp4 bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case api.GeneratePath:
			assert.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "volcanoes", r.FormValue(api.FieldTopic))
			w.Header().Set("Content-Type", "video/mp4")
			_, _ = w.Write(payload)
		case api.ProgressPath:
			_, _ = w.Write([]byte(`{"progress": 50, "status": "Rendering"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ui, dir := newTestRootUI(t, srv.URL)
	ui.controller.SetPollInterval(10 * time.Millisecond)

	settled := make(chan model.Submission, 1)
	ui.controller.SetSettledCallback(func(sub model.Submission) {
		ui.onSettled(sub)
		settled <- sub
	})

	test.Type(ui.topicEntry, "  volcanoes ")
	test.Tap(ui.generateBtn)

	select {
	case sub := <-settled:
		assert.Equal(t, sub.OutputPath, ui.LastVideo())
	case <-time.After(2 * time.Second):
		t.Fatal("submission did not settle")
	}

	data, err := os.ReadFile(filepath.Join(dir, download.DefaultFilename))
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	last, ok := ui.controller.LastSubmission()
	require.True(t, ok)
	assert.Equal(t, model.SubmissionSucceeded, last.Status)
	assert.Len(t, ui.notifications.Objects, 1)
	assert.False(t, ui.generateBtn.Disabled())
	assert.False(t, ui.openBtn.Disabled())
	assert.False(t, ui.revealBtn.Disabled())
}

func TestRootUI_GenerateFailureShowsDanger(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == api.GeneratePath {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error": "Topic is required"}`))
			return
		}
		_, _ = w.Write([]byte(`{"progress": 0}`))
	}))
	defer srv.Close()

	ui, dir := newTestRootUI(t, srv.URL)

	err := ui.controller.OnSubmit(ui.ctx, api.NewForm().Set(api.FieldTopic, ""))
	var genErr *api.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, http.StatusBadRequest, genErr.StatusCode)

	last, ok := ui.controller.LastSubmission()
	require.True(t, ok)
	assert.Equal(t, model.SubmissionFailed, last.Status)
	assert.Equal(t, "Topic is required", last.LastError)
	assert.Len(t, ui.notifications.Objects, 1)
	assert.True(t, ui.openBtn.Disabled())

	_, statErr := os.Stat(filepath.Join(dir, download.DefaultFilename))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRootUI_ApplySettings(t *testing.T) {
	ui, _ := newTestRootUI(t, "http://localhost:5000")
	dir := t.TempDir()

	ui.settings.SetDownloadDirectory(dir)
	ui.settings.SetLanguage("ru")
	ui.applySettings()

	assert.Equal(t, filepath.Join(dir, download.DefaultFilename), ui.saver.OutputPath())
	assert.Equal(t, "ru", ui.localization.GetCurrentLanguage())
	assert.Equal(t, ui.localization.GetText(KeyGenerate), ui.generateBtn.Text)
}

func TestRootUI_ImplementsCollaborators(t *testing.T) {
	var _ controller.View = (*RootUI)(nil)
	var _ notify.Container = (*RootUI)(nil)
	var _ fyne.Theme = NewCompactTheme()
}

type recordingSaver struct {
	dir     string
	onSaved func(string)
}

func (s *recordingSaver) Save(ctx context.Context, data []byte) (string, error) {
	path := filepath.Join(s.dir, download.DefaultFilename)
	s.onSaved(path)
	return path, nil
}

func (s *recordingSaver) SetSavedCallback(callback func(string)) { s.onSaved = callback }
func (s *recordingSaver) SetDownloadDirectory(dir string)        { s.dir = dir }
func (s *recordingSaver) OutputPath() string {
	return filepath.Join(s.dir, download.DefaultFilename)
}

func TestRootUI_UsesSaverInterface(t *testing.T) {
	app := test.NewApp()
	saver := &recordingSaver{dir: "/videos"}
	ui := NewRootUI(app.NewWindow("test"), app, api.NewClient("http://localhost:5000", nil), saver)
	t.Cleanup(ui.Close)

	require.NotNil(t, saver.onSaved, "saved callback registered")

	_, err := saver.Save(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/videos", download.DefaultFilename), ui.LastVideo())

	ui.settings.SetDownloadDirectory("/elsewhere")
	ui.applySettings()
	assert.Equal(t, "/elsewhere", saver.dir)
}
