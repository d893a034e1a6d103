package bootstrap

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/videogen/internal/config"
)

func TestSetup(t *testing.T) {
	a := test.NewApp()
	dir := t.TempDir() + "/videos"
	config.NewSettings(a).SetDownloadDirectory(dir)

	window, root := Setup(a, "1.2.3")
	require.NotNil(t, root)
	t.Cleanup(root.Close)

	assert.NotNil(t, window.Content())
	assert.NotNil(t, window.MainMenu())
	assert.DirExists(t, dir, "downloads dir created on start")
	assert.False(t, root.Controller().Submitting())
}
