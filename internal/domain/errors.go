package domain

import "errors"

var (
	ErrNotFound          = errors.New("resource not found")
	ErrNoFiles           = errors.New("no input files matched")
	ErrInputDirNotFound  = errors.New("input directory not found")
	ErrBatchRunning      = errors.New("a batch is already running")
	ErrNoBatchRunning    = errors.New("no batch running")
	ErrInvalidTransition = errors.New("invalid job transition")
	ErrCancelled         = errors.New("cancelled")
)
