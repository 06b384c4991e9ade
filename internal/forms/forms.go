// Package forms holds the submission forms bound from post and comment
// requests, together with their field-level validation errors. A form with a
// non-empty Errors map is re-rendered to the client instead of being persisted.
package forms

import "strconv"

// PostForm carries the user-editable fields of a post submission.
// Group is the raw submitted group id; empty means no group.
type PostForm struct {
	Text   string            `json:"text" form:"text"`
	Group  string            `json:"group" form:"group"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Validate checks the intrinsic field constraints and records errors.
// Relational checks (group existence) are appended by the handler.
func (f *PostForm) Validate() bool {
	f.Errors = map[string]string{}
	if f.Text == "" {
		f.Errors["text"] = "This field is required"
	}
	if f.Group != "" {
		if _, err := strconv.ParseUint(f.Group, 10, 32); err != nil {
			f.Errors["group"] = "Select a valid choice"
		}
	}
	return len(f.Errors) == 0
}

// AddError records a field error (used for checks outside the form itself).
func (f *PostForm) AddError(field, msg string) {
	if f.Errors == nil {
		f.Errors = map[string]string{}
	}
	f.Errors[field] = msg
}

// GroupID returns the parsed group reference, or nil when no group was chosen.
// Call only after Validate has accepted the form.
func (f *PostForm) GroupID() *uint {
	if f.Group == "" {
		return nil
	}
	id, err := strconv.ParseUint(f.Group, 10, 32)
	if err != nil {
		return nil
	}
	gid := uint(id)
	return &gid
}

// CommentForm carries the single text field of a comment submission.
type CommentForm struct {
	Text   string            `json:"text" form:"text"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Validate checks the comment text and records errors.
func (f *CommentForm) Validate() bool {
	f.Errors = map[string]string{}
	if f.Text == "" {
		f.Errors["text"] = "This field is required"
	}
	return len(f.Errors) == 0
}
