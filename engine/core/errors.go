package core

import (
	"errors"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrShaderCompile   = errors.New("unable to compile shader")
	ErrShaderLink      = errors.New("unable to link shader program")
	ErrShaderInvalid   = errors.New("shader program is not initialized")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidOBJ      = errors.New("invalid obj data")
	ErrGL              = errors.New("gl error")
)
