package noise

import "errors"

var (
	// ErrInvalidConfig reports a configuration value that would produce NaN or meaningless output.
	ErrInvalidConfig = errors.New("noise: invalid config")

	// ErrInvalidAxisForDimension reports a strip axis or square plane that does not
	// exist in the requested dimensionality, e.g. a W-axis strip in 3D.
	ErrInvalidAxisForDimension = errors.New("noise: invalid axis for dimension")

	// ErrUnsupportedDimension reports a noise type that has no form in the requested dimension.
	ErrUnsupportedDimension = errors.New("noise: unsupported dimension")

	// ErrInvalidSize reports a negative batch extent or an output slice of the wrong length.
	ErrInvalidSize = errors.New("noise: invalid batch size")
)
