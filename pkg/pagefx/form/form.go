// Package form holds the contact form state on the client: per-field valid
// flags, the attached file, and a controller that allows one submission
// in flight.
package form

import (
	"strings"
	"sync"
)

// Contact form field names, shared with the relay endpoint.
const (
	FieldName           = "name"
	FieldEmail          = "email"
	FieldPhone          = "phone"
	FieldVideoType      = "video_type"
	FieldProjectDetails = "project_details"
	FieldUpload         = "reference_upload"
)

// ContactFields is the field order of the contact form.
var ContactFields = []string{FieldName, FieldEmail, FieldPhone, FieldVideoType, FieldProjectDetails}

// File is an attached file.
type File struct {
	Name string
	Data []byte
}

// Form holds field values in declaration order.
type Form struct {
	mu     sync.Mutex
	order  []string
	values map[string]string
	file   *File
}

func New(fields ...string) *Form {
	if len(fields) == 0 {
		fields = ContactFields
	}
	f := &Form{
		order:  append([]string(nil), fields...),
		values: make(map[string]string, len(fields)),
	}
	return f
}

// Set stores value and returns the field's valid flag.
func (f *Form) Set(field, value string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.has(field) {
		f.order = append(f.order, field)
	}
	f.values[field] = value
	return Valid(value)
}

func (f *Form) has(field string) bool {
	for _, name := range f.order {
		if name == field {
			return true
		}
	}
	return false
}

// Valid is the visual flag on a form group: the trimmed value is non-empty.
func Valid(value string) bool {
	return strings.TrimSpace(value) != ""
}

// IsValid reports the flag for a field.
func (f *Form) IsValid(field string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Valid(f.values[field])
}

// Attach sets or clears (nil) the file.
func (f *Form) Attach(file *File) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.file = file
}

// Filename is shown on the file input wrapper; empty when nothing is attached.
func (f *Form) Filename() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.file == nil {
		return ""
	}
	return f.file.Name
}

// Reset clears values, flags and the file.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = make(map[string]string, len(f.order))
	f.file = nil
}

// Submission is a snapshot of the form ready to send.
type Submission struct {
	Fields []Field
	File   *File
}

// Field is one name/value pair.
type Field struct {
	Name  string
	Value string
}

// Snapshot copies the current values in field order.
func (f *Form) Snapshot() Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := Submission{Fields: make([]Field, 0, len(f.order)), File: f.file}
	for _, name := range f.order {
		s.Fields = append(s.Fields, Field{Name: name, Value: f.values[name]})
	}
	return s
}
