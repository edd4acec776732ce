package predict

import "errors"

// Sentinel kinds for prediction errors.
var (
	ErrUnknownModel = errors.New("unknown model type")
)
