package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// Request is the typed descriptor every domain call hands to the client.
// Enumerating the recognized options here gives the retry and auth logic a
// stable contract instead of an open-ended options map.
type Request struct {
	Method string
	Path   string
	Body   any
	Query  url.Values
	Header http.Header

	// Form and File switch the encoding to multipart/form-data. They are
	// held as values, not consumed readers, so a retry can rebuild the
	// body from scratch.
	Form map[string]string
	File *FileUpload
}

type FileUpload struct {
	Field   string
	Name    string
	Content []byte
}

// encodeBody materializes the request body. Called once per attempt: the
// reader returned from a failed attempt is never reused.
func (r Request) encodeBody() (io.Reader, string, error) {
	if r.Form != nil || r.File != nil {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		for field, value := range r.Form {
			if err := writer.WriteField(field, value); err != nil {
				return nil, "", fmt.Errorf("write form field %s: %w", field, err)
			}
		}
		if r.File != nil {
			part, err := writer.CreateFormFile(r.File.Field, r.File.Name)
			if err != nil {
				return nil, "", fmt.Errorf("create form file: %w", err)
			}
			if _, err := part.Write(r.File.Content); err != nil {
				return nil, "", fmt.Errorf("write form file: %w", err)
			}
		}
		if err := writer.Close(); err != nil {
			return nil, "", fmt.Errorf("close multipart body: %w", err)
		}
		return &buf, writer.FormDataContentType(), nil
	}

	if r.Body == nil {
		return nil, "", nil
	}
	encoded, err := json.Marshal(r.Body)
	if err != nil {
		return nil, "", fmt.Errorf("encode request body: %w", err)
	}
	return bytes.NewReader(encoded), "application/json", nil
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response) Decode(into any) error {
	if len(r.Body) == 0 {
		return fmt.Errorf("empty response body")
	}
	if err := json.Unmarshal(r.Body, into); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ErrorMessage pulls a human-readable message out of an error response
// body, trying the field names the backend is known to use.
func (r *Response) ErrorMessage(fallback string) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(r.Body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return fallback
}

// RetryAfterSeconds reads a cooldown duration from an error body,
// defaulting when the backend omits it.
func (r *Response) RetryAfterSeconds(fallback int) int {
	var payload struct {
		RetryAfter int `json:"retryAfter"`
	}
	if err := json.Unmarshal(r.Body, &payload); err == nil && payload.RetryAfter > 0 {
		return payload.RetryAfter
	}
	return fallback
}
