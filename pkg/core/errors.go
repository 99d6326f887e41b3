package core

import (
	errorsmod "cosmossdk.io/errors"
)

// Codespace groups the renderer's registered errors.
const Codespace = "raytracer"

var (
	// ErrInvalidConfig is returned when a scene, camera or material is rejected at construction time
	ErrInvalidConfig = errorsmod.Register(Codespace, 2, "invalid configuration")
	// ErrDegenerateGeometry is returned for zero-length vectors and other unusable geometry
	ErrDegenerateGeometry = errorsmod.Register(Codespace, 3, "degenerate geometry")
	// ErrImageWrite is returned when the rendered image cannot be persisted
	ErrImageWrite = errorsmod.Register(Codespace, 4, "image write failed")
	// ErrUnknownScene is returned when a scene name resolves to neither a built-in nor a file
	ErrUnknownScene = errorsmod.Register(Codespace, 5, "unknown scene")
	// ErrSceneWrite is returned when a scene description cannot be exported
	ErrSceneWrite = errorsmod.Register(Codespace, 6, "scene write failed")
)

// Wrap annotates err with a message, keeping it matchable with errors.Is
func Wrap(err error, description string) error {
	return errorsmod.Wrap(err, description)
}

// Wrapf annotates err with a formatted message
func Wrapf(err error, format string, args ...interface{}) error {
	return errorsmod.Wrapf(err, format, args...)
}
