package domain

import "strings"

// SearchInput is either a FileInput or a URLInput. A nil SearchInput means
// the user has provided nothing yet.
type SearchInput interface {
	isSearchInput()
}

// FileInput is an uploaded image held in memory for the session.
type FileInput struct {
	Filename    string
	ContentType string
	Data        []byte
}

// URLInput is an image URL pasted by the user.
type URLInput struct {
	Value string
}

func (FileInput) isSearchInput() {}
func (URLInput) isSearchInput()  {}

// IsEmptyInput reports whether input cannot be submitted.
func IsEmptyInput(input SearchInput) bool {
	switch in := input.(type) {
	case FileInput:
		return len(in.Data) == 0
	case URLInput:
		return strings.TrimSpace(in.Value) == ""
	default:
		return true
	}
}
