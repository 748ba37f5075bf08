package httpx

import (
	"errors"
	"net/http"

	"github.com/zerodivida/zerodivida/internal/shared"
)

// RespondError maps domain errors to HTTP responses. Input and domain errors
// become 400, authentication failures 401, missing resources 404, and anything
// unexpected a generic 500 that never leaks internals to the client.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrMissingField):
		Fail(w, http.StatusBadRequest, "missing required fields")
	case errors.Is(err, shared.ErrDuplicateUser):
		Fail(w, http.StatusBadRequest, "email or cpf already registered")
	case errors.Is(err, shared.ErrUserNotFound):
		Fail(w, http.StatusUnauthorized, "user not found")
	case errors.Is(err, shared.ErrInvalidCredential):
		Fail(w, http.StatusUnauthorized, "incorrect password")
	case errors.Is(err, shared.ErrForbidden):
		Fail(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, shared.ErrNotFound):
		Fail(w, http.StatusNotFound, "not found")
	default:
		Fail(w, http.StatusInternalServerError, "server error")
	}
}
