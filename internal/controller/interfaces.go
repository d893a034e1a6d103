package controller

import (
	"context"

	"github.com/ytget/videogen/internal/api"
	"github.com/ytget/videogen/internal/model"
	"github.com/ytget/videogen/internal/notify"
)

// View is the part of the window the controller mutates
type View interface {
	// ResetProgress sets the bar to 0% and makes the progress widgets visible
	ResetProgress()
	// SetProgress sets the bar to percent and the status line to text
	SetProgress(percent float64, text string)
	// SetSubmitEnabled enables or disables the submit control
	SetSubmitEnabled(enabled bool)
}

// Notifier shows transient banners
type Notifier interface {
	Notify(message string, severity model.Severity) notify.Fragment
}

// Generator is the server API
type Generator interface {
	Generate(ctx context.Context, form *api.Form) (*api.Result, error)
	Progress(ctx context.Context) (model.ProgressSnapshot, error)
}

// Saver stores a generated video and returns its path
type Saver interface {
	Save(ctx context.Context, data []byte) (string, error)
}
