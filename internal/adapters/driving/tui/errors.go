package tui

import "errors"

// ErrMissingTallyService is returned when the tally service is not provided.
var ErrMissingTallyService = errors.New("tui: tally service is required")

// ErrMissingDocument is returned when no document loader is provided.
var ErrMissingDocument = errors.New("tui: document loader is required")
