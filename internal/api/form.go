package api

import (
	"bytes"
	"fmt"
	"mime/multipart"
)

// FieldTopic is the form field the server requires
const FieldTopic = "topic"

// Form is an ordered set of text fields sent as multipart/form-data
type Form struct {
	keys   []string
	values map[string]string
}

// NewForm creates an empty form
func NewForm() *Form {
	return &Form{values: make(map[string]string)}
}

// Set adds or replaces a field, keeping first insertion order
func (f *Form) Set(key, value string) *Form {
	if _, exists := f.values[key]; !exists {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
	return f
}

// Get returns a field value
func (f *Form) Get(key string) string {
	return f.values[key]
}

// Encode writes the fields as a multipart body and returns it with its content type
func (f *Form) Encode() (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, key := range f.keys {
		if err := writer.WriteField(key, f.values[key]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", key, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}
