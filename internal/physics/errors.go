package physics

import "errors"

var (
	// ErrUnknownKind is returned for collider tags outside Kinds.
	ErrUnknownKind = errors.New("physics: unknown collider kind")

	// ErrDegenerateCollider is returned for boxes without area.
	ErrDegenerateCollider = errors.New("physics: collider has no area")

	// ErrInvalidParams is returned by Params.Validate.
	ErrInvalidParams = errors.New("physics: invalid parameters")

	// ErrInvalidStage is returned by NewStage for unusable ball or goal shapes.
	ErrInvalidStage = errors.New("physics: invalid stage")
)
