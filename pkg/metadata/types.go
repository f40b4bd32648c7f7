package metadata

import "errors"

const (
	ContentTypePNG  = "image/png"
	ContentTypeJSON = "application/json"
	CategoryImage   = "image"
)

var ErrEmptyName = errors.New("name cannot be empty")

type File struct {
	URI  string `json:"uri"`
	Type string `json:"type"`
}

type Properties struct {
	Category string `json:"category,omitempty"`
}

type Document struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Image       string      `json:"image"`
	Type        string      `json:"type,omitempty"`
	Files       []File      `json:"files,omitempty"`
	Properties  *Properties `json:"properties,omitempty"`
}
