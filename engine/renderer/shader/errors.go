package shader

import "errors"

var (
	ErrCreateShader      = errors.New("shader: failed to create shader object")
	ErrCompileVertex     = errors.New("shader: vertex stage failed to compile")
	ErrCompileFragment   = errors.New("shader: fragment stage failed to compile")
	ErrCreateProgram     = errors.New("shader: failed to create program object")
	ErrLinkProgram       = errors.New("shader: program failed to link")
	ErrUniformNotFound   = errors.New("shader: uniform not found")
	ErrAttributeMismatch = errors.New("shader: attribute location mismatch")
	ErrAnnotation        = errors.New("shader: malformed annotation")
)
