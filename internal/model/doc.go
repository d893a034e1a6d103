package model

// Package model defines domain data structures used across the app: the
// submission record, progress snapshots and notification severities.
