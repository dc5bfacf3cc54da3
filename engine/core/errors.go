package core

import (
	"errors"
)

var (
	ErrUnknownResourceType = errors.New("unknown resource type")
	ErrNoLoader            = errors.New("no loader registered for resource type")
	ErrAssetNotFound       = errors.New("asset not found")
	ErrWatcherClosed       = errors.New("asset watcher already closed")
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrSceneNotLoaded      = errors.New("scene not loaded")
)
