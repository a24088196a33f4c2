package service

import "errors"

var (
	ErrImageNotFound  = errors.New("image not found")
	ErrFileNotFound   = errors.New("file not found")
	ErrInvalidPath    = errors.New("invalid file path")
	ErrInvalidLogKind = errors.New("invalid log kind")
)
