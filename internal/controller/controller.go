package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ytget/videogen/internal/api"
	vlog "github.com/ytget/videogen/internal/log"
	"github.com/ytget/videogen/internal/model"
	"github.com/ytget/videogen/internal/poll"
)

// Messages and timing
const (
	SuccessMessage = "Success! Your video has been generated."

	DefaultPollInterval = 1 * time.Second

	// PollFailureWarnThreshold consecutive progress failures trigger one warning
	PollFailureWarnThreshold = 3
)

// ErrBusy is returned when a submission is already in flight
var ErrBusy = errors.New("a video is already being generated")

// ErrPanicked wraps a panic recovered while generating or saving
var ErrPanicked = errors.New("submission panicked")

// Controller orchestrates a single submission at a time
type Controller struct {
	view      View
	notifier  Notifier
	generator Generator
	saver     Saver
	logger    zerolog.Logger

	poller poll.Single

	mu           sync.Mutex
	interval     time.Duration
	submitting   bool
	current      *model.Submission
	pollFailures int
	onSettled    func(model.Submission)
}

// New creates a controller wired to its collaborators
func New(view View, notifier Notifier, generator Generator, saver Saver) *Controller {
	return &Controller{
		view:      view,
		notifier:  notifier,
		generator: generator,
		saver:     saver,
		logger:    vlog.WithComponent("controller"),
		interval:  DefaultPollInterval,
	}
}

// SetPollInterval changes the progress poll period for the next submission
func (c *Controller) SetPollInterval(interval time.Duration) {
	if interval <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interval = interval
}

// SetGenerator replaces the server API used by the next submission
func (c *Controller) SetGenerator(generator Generator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generator = generator
}

// SetSettledCallback registers a hook called after every submission settles
func (c *Controller) SetSettledCallback(callback func(model.Submission)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSettled = callback
}

// Submitting reports whether a request is in flight
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Status returns the state of the current or last submission
func (c *Controller) Status() model.SubmissionStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil || (!c.submitting && c.current.Status.IsFinished()) {
		return model.SubmissionIdle
	}
	return c.current.Status
}

// LastSubmission returns a copy of the current or last submission
func (c *Controller) LastSubmission() (model.Submission, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return model.Submission{}, false
	}
	return *c.current, true
}

// PollActive reports whether the progress poll task is running
func (c *Controller) PollActive() bool {
	return c.poller.Active()
}

// OnSubmit runs one submission to completion. It blocks until the generate
// request settles; the outcome is reported through the Notifier and also
// returned. The submit control is re-enabled on every exit path, and a panic
// while generating or saving is reported as a failed submission.
func (c *Controller) OnSubmit(ctx context.Context, form *api.Form) (err error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrBusy
	}
	c.submitting = true
	c.pollFailures = 0
	sub := model.NewSubmission(form.Get(api.FieldTopic))
	c.current = sub
	interval := c.interval
	generator := c.generator
	c.mu.Unlock()

	logger := c.logger.With().Str(vlog.FieldSubmissionID, sub.ID).Logger()
	logger.Info().Str("topic", sub.Topic).Msg("submission started")

	c.view.ResetProgress()
	c.view.SetSubmitEnabled(false)

	defer c.settle(sub, logger)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanicked, r)
			c.fail(sub, logger, err, api.DefaultGenerateError)
		}
	}()

	pollFn := func(ctx context.Context) { c.pollProgress(ctx, generator) }
	if _, err := c.poller.Start(ctx, interval, pollFn); err != nil {
		logger.Error().Err(err).Msg("progress polling not started")
	}

	path, err := c.generate(ctx, generator, form)
	if err != nil {
		c.fail(sub, logger, err, errorMessage(err))
		return err
	}

	c.mu.Lock()
	sub.Succeed(path)
	c.mu.Unlock()

	logger.Info().Str(vlog.FieldPath, path).Dur("elapsed", sub.Elapsed()).Msg("submission succeeded")
	c.notifier.Notify(SuccessMessage, model.SeveritySuccess)
	return nil
}

// fail records the failure and shows message as a danger notification
func (c *Controller) fail(sub *model.Submission, logger zerolog.Logger, err error, message string) {
	c.mu.Lock()
	sub.Fail(message)
	c.mu.Unlock()

	logger.Error().Err(err).Msg("submission failed")
	c.notifier.Notify(message, model.SeverityDanger)
}

// generate performs the request and saves the video
func (c *Controller) generate(ctx context.Context, generator Generator, form *api.Form) (string, error) {
	result, err := generator.Generate(ctx, form)
	if err != nil {
		return "", err
	}
	return c.saver.Save(ctx, result.Data)
}

// settle stops polling and unlocks the form
func (c *Controller) settle(sub *model.Submission, logger zerolog.Logger) {
	c.poller.StopAndWait()

	c.mu.Lock()
	c.submitting = false
	settled := *sub
	callback := c.onSettled
	c.mu.Unlock()

	c.view.SetSubmitEnabled(true)
	logger.Debug().Str("status", settled.Status.String()).Msg("submission settled")

	if callback != nil {
		callback(settled)
	}
}

// PollProgress fetches progress once and renders it. Failures are logged and
// otherwise ignored. Reaching 100% stops the poll task but leaves the
// submission running until the generate request settles.
func (c *Controller) PollProgress(ctx context.Context) {
	c.mu.Lock()
	generator := c.generator
	c.mu.Unlock()
	c.pollProgress(ctx, generator)
}

func (c *Controller) pollProgress(ctx context.Context, generator Generator) {
	snapshot, err := generator.Progress(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		c.recordPollFailure(err)
		return
	}

	c.mu.Lock()
	c.pollFailures = 0
	if c.current != nil && c.submitting {
		c.current.Progress = snapshot.Progress
	}
	c.mu.Unlock()

	c.view.SetProgress(snapshot.Progress, snapshot.Label())

	if snapshot.Done() {
		c.logger.Debug().Float64(vlog.FieldProgress, snapshot.Progress).Msg("progress complete, polling stopped")
		c.poller.Stop()
	}
}

func (c *Controller) recordPollFailure(err error) {
	c.mu.Lock()
	c.pollFailures++
	failures := c.pollFailures
	c.mu.Unlock()

	c.logger.Error().Err(err).Int("consecutive", failures).Msg("error checking progress")
	if failures == PollFailureWarnThreshold {
		c.logger.Warn().Int("consecutive", failures).Msg("progress endpoint keeps failing, generation continues")
	}
}

// errorMessage picks the user-facing text for err
func errorMessage(err error) string {
	var genErr *api.GenerationError
	if errors.As(err, &genErr) {
		return genErr.Message
	}
	return err.Error()
}
