package config

import "errors"

var (
	ErrInvalidBirthday = errors.New("invalid birthday")
	ErrInvalidOffset   = errors.New("invalid offset")
	ErrInvalidFormat   = errors.New("invalid output format")
	ErrInvalidWorkers  = errors.New("invalid worker count")
	ErrInvalidMethod   = errors.New("invalid capture method")
	ErrConfigFile      = errors.New("can't read config file")
)
