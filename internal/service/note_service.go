package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inotebook-server/internal/domain"
	"inotebook-server/internal/repository"
	"inotebook-server/internal/validation"

	"github.com/google/uuid"
)

type NoteService struct {
	repo      repository.NoteRepository
	validator *validation.Validator
}

func NewNoteService(repo repository.NoteRepository, validator *validation.Validator) *NoteService {
	return &NoteService{
		repo:      repo,
		validator: validator,
	}
}

func (s *NoteService) validate(req interface{}) error {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func (s *NoteService) List(ctx context.Context, userID string) ([]*domain.Note, error) {
	notes, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	if notes == nil {
		notes = []*domain.Note{}
	}

	return notes, nil
}

func (s *NoteService) Create(ctx context.Context, userID string, req *domain.CreateNoteRequest) (*domain.Note, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	note := &domain.Note{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Tag:         req.Tag,
		Date:        time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, note); err != nil {
		return nil, err
	}

	return note, nil
}

// owned loads a note and checks that userID owns it.
func (s *NoteService) owned(ctx context.Context, userID, noteID string) (*domain.Note, error) {
	note, err := s.repo.FindByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	if note.UserID != userID {
		return nil, ErrNotAllowed
	}

	return note, nil
}

// Update applies only the non-empty fields of req. Lengths are not checked.
func (s *NoteService) Update(ctx context.Context, userID, noteID string, req *domain.UpdateNoteRequest) (*domain.Note, error) {
	note, err := s.owned(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != "" {
		note.Title = *req.Title
	}
	if req.Description != nil && *req.Description != "" {
		note.Description = *req.Description
	}
	if req.Tag != nil && *req.Tag != "" {
		note.Tag = *req.Tag
	}

	if err := s.repo.Update(ctx, note); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, userID, noteID string) error {
	if _, err := s.owned(ctx, userID, noteID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, noteID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoteNotFound
		}
		return err
	}

	return nil
}

// DeleteByTitle removes at most one of the caller's notes with the given
// title. Matching is always restricted to notes owned by userID.
func (s *NoteService) DeleteByTitle(ctx context.Context, userID string, req *domain.DeleteNoteByTitleRequest) (*domain.Note, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	return s.deleteOne(ctx, repository.NoteFilter{UserID: userID, Title: req.Title})
}

// DeleteByTag is DeleteByTitle keyed on tag.
func (s *NoteService) DeleteByTag(ctx context.Context, userID string, req *domain.DeleteNoteByTagRequest) (*domain.Note, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	return s.deleteOne(ctx, repository.NoteFilter{UserID: userID, Tag: req.Tag})
}

func (s *NoteService) deleteOne(ctx context.Context, filter repository.NoteFilter) (*domain.Note, error) {
	if filter.UserID == "" {
		return nil, fmt.Errorf("refusing unscoped delete: %w", ErrNotAllowed)
	}

	note, err := s.repo.FindOneAndDelete(ctx, filter)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	return note, nil
}
