package handler

import (
	"net/http"

	"inotebook-server/internal/middleware"
	"inotebook-server/internal/service"
	"inotebook-server/pkg/response"

	log "github.com/sirupsen/logrus"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		writeError(w, err, log.Fields{"op": "get_user", "user_id": userID})
		return
	}

	response.Success(w, user)
}
