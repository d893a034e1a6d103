package poll

// Package poll provides a cancellable repeating task and a holder that keeps
// at most one such task alive.
