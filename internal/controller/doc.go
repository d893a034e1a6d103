package controller

// Package controller drives one video-generation submission: it locks the
// form, polls server progress, saves the result and reports the outcome.
