package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"inotebook-server/internal/domain"
	"inotebook-server/internal/middleware"
	"inotebook-server/internal/service"
	"inotebook-server/pkg/response"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type NoteHandler struct {
	service *service.NoteService
}

func NewNoteHandler(service *service.NoteService) *NoteHandler {
	return &NoteHandler{
		service: service,
	}
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	notes, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeError(w, err, log.Fields{"op": "list_notes", "user_id": userID})
		return
	}

	response.Success(w, notes)
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request body")
		return
	}

	userID := middleware.GetUserID(r)

	note, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err, log.Fields{"op": "create_note", "user_id": userID})
		return
	}

	response.Success(w, note)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]
	if noteID == "" {
		response.BadRequest(w, "Note ID is required")
		return
	}

	var req domain.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request body")
		return
	}

	userID := middleware.GetUserID(r)

	note, err := h.service.Update(r.Context(), userID, noteID, &req)
	if err != nil {
		writeError(w, err, log.Fields{"op": "update_note", "user_id": userID, "note_id": noteID})
		return
	}

	response.Success(w, note)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]
	if noteID == "" {
		response.BadRequest(w, "Note ID is required")
		return
	}

	userID := middleware.GetUserID(r)

	if err := h.service.Delete(r.Context(), userID, noteID); err != nil {
		writeError(w, err, log.Fields{"op": "delete_note", "user_id": userID, "note_id": noteID})
		return
	}

	response.Success(w, domain.DeleteNoteResponse{Success: "Note deleted successfully"})
}

func (h *NoteHandler) DeleteByTitle(w http.ResponseWriter, r *http.Request) {
	var req domain.DeleteNoteByTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request body")
		return
	}

	userID := middleware.GetUserID(r)

	note, err := h.service.DeleteByTitle(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err, log.Fields{"op": "delete_note_by_title", "user_id": userID})
		return
	}

	response.Success(w, note)
}

func (h *NoteHandler) DeleteByTag(w http.ResponseWriter, r *http.Request) {
	var req domain.DeleteNoteByTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request body")
		return
	}

	userID := middleware.GetUserID(r)

	note, err := h.service.DeleteByTag(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err, log.Fields{"op": "delete_note_by_tag", "user_id": userID})
		return
	}

	response.Success(w, note)
}
