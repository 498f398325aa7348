package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// ProviderError is a classified failure from a provider call.
//
// Status carries the HTTP status of the failed request, or 0 when the
// request never produced a response (connection failures and the like).
type ProviderError struct {
	Provider string
	Status   int
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("provider %s: status %d: %v", e.Provider, e.Status, e.Err)
	}
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Transient reports whether the failure is worth retrying on another
// provider. Rate limiting (429) and server-side errors (>=500) are
// transient; any other status is a configuration/auth/bad-request class
// failure. Transport-level failures without a status count as transient.
func (e *ProviderError) Transient() bool {
	return e.Status == 0 || e.Status == http.StatusTooManyRequests || e.Status >= 500
}

// AsProviderError unwraps err into a ProviderError if there is one in the
// chain.
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	ok := errors.As(err, &pe)
	return pe, ok
}
