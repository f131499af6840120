package services

import "errors"

// Service errors
var (
	// Report errors
	ErrNoReportsFound = errors.New("no reports found")
	ErrTableNotReady  = errors.New("compliance table not computed yet")

	// Upload errors
	ErrUnknownSource = errors.New("unknown upload source")

	// File errors
	ErrFileNotFound    = errors.New("file not found")
	ErrInvalidFileType = errors.New("invalid file type")

	// General errors
	ErrInvalidInput = errors.New("invalid input")
)
