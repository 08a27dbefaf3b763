package view

import "errors"

var (
	// ErrTemplateNotFound indicates the template file was not found.
	ErrTemplateNotFound = errors.New("view: template not found")

	// ErrRenderFailed indicates template rendering failed.
	ErrRenderFailed = errors.New("view: render failed")

	// ErrNoEngine indicates no engine is registered for the template's extension.
	ErrNoEngine = errors.New("view: no engine for extension")
)
