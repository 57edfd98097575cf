package app

import "errors"

var (
	ErrNoInput = errors.New("no input files")
	ErrRender  = errors.New("can't write report")
)
