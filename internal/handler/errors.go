package handler

import (
	"errors"
	"net/http"

	"inotebook-server/internal/service"
	"inotebook-server/pkg/response"

	log "github.com/sirupsen/logrus"
)

// writeError maps a service error onto the response envelope. Anything not
// recognised is logged with fields and reported as an internal error.
func writeError(w http.ResponseWriter, err error, fields log.Fields) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.ValidationFailed(w, validationErr.Errors)
	case errors.Is(err, service.ErrNoteNotFound):
		response.NotFound(w, "Not Found")
	case errors.Is(err, service.ErrNotAllowed):
		response.Unauthorized(w, "Not Allowed")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(w, "User not found")
	case errors.Is(err, service.ErrEmailTaken):
		response.BadRequest(w, "Sorry a user with this email already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(w, "Please try to login with correct credentials")
	case errors.Is(err, service.ErrInvalidToken):
		response.Unauthorized(w, "Invalid or expired token")
	default:
		log.WithFields(fields).WithError(err).Error("request failed")
		response.InternalError(w)
	}
}
