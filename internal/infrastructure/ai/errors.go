package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrNoAPIKey means no credential is configured; no request is sent.
	ErrNoAPIKey = errors.New("api key is not configured")
	// ErrInvalidCredential maps HTTP 401.
	ErrInvalidCredential = errors.New("invalid api credential")
	// ErrRateLimited maps HTTP 429.
	ErrRateLimited = errors.New("rate limited by completion endpoint")
	// ErrEmptyCompletion means the endpoint answered without content.
	ErrEmptyCompletion = errors.New("empty completion response")
)

// HTTPError carries a non-2xx status outside the dedicated cases.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("completion endpoint returned HTTP %d: %s", e.Status, e.Body)
}

// IsRetryableParseError reports whether an error indicates truncated or
// otherwise malformed JSON output from the model, the only failure class
// worth resubmitting the same message for. Classification is by decode-error
// type, never by message text.
func IsRetryableParseError(err error) bool {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF)
}
