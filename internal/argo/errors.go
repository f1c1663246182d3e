package argo

import "fmt"

// SourceError records the failure of a single source lookup
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to fetch %s ARGO data: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("failed to fetch %s ARGO data", e.Source)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError creates a new source error
func NewSourceError(source string, err error) *SourceError {
	return &SourceError{
		Source: source,
		Err:    err,
	}
}

// UpstreamError is returned when a data repository answers with a non-2xx status
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}

func NewUpstreamError(statusCode int, body []byte) *UpstreamError {
	const maxBody = 256
	if len(body) > maxBody {
		body = body[:maxBody]
	}
	return &UpstreamError{
		StatusCode: statusCode,
		Body:       string(body),
	}
}
