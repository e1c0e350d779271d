package marionette

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownNode is returned when a NodeID was never issued by the scene
	// or its node has been removed.
	ErrUnknownNode = errors.New("marionette: unknown node")

	// ErrInvalidTimeDelta is returned when a negative, NaN or infinite time
	// delta is passed to a stepping operation. No state is mutated.
	ErrInvalidTimeDelta = errors.New("marionette: invalid time delta")

	// ErrQuit is returned by App.Frame once a quit command was processed.
	ErrQuit = errors.New("marionette: quit")
)

// AssetKind names the kind of asset that failed to load.
type AssetKind string

const (
	AssetTexture AssetKind = "texture"
	AssetFont    AssetKind = "font"
	AssetSound   AssetKind = "sound"
)

// AssetLoadError reports a missing or corrupt asset file. It is fatal at
// startup: the scene cannot be built without its assets.
type AssetLoadError struct {
	Kind AssetKind
	Path string
	Err  error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("marionette: load %s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *AssetLoadError) Unwrap() error {
	return e.Err
}

func unknownNode(id NodeID) error {
	return fmt.Errorf("%w: %d", ErrUnknownNode, id)
}
