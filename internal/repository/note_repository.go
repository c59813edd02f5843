package repository

import (
	"context"
	"fmt"

	"inotebook-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	FindByID(ctx context.Context, id string) (*domain.Note, error)
	List(ctx context.Context, userID string) ([]*domain.Note, error)
	Update(ctx context.Context, note *domain.Note) error
	Delete(ctx context.Context, id string) error
	FindOneAndDelete(ctx context.Context, filter NoteFilter) (*domain.Note, error)
}

// NoteFilter selects notes by exact match on every non-empty field.
type NoteFilter struct {
	UserID string
	Title  string
	Tag    string
}

func (f NoteFilter) selector() map[string]interface{} {
	sel := map[string]interface{}{"doc_type": docTypeNote}
	if f.UserID != "" {
		sel["user"] = f.UserID
	}
	if f.Title != "" {
		sel["title"] = f.Title
	}
	if f.Tag != "" {
		sel["tag"] = f.Tag
	}
	return sel
}

type noteDocument struct {
	Rev     string `json:"_rev,omitempty"`
	DocType string `json:"doc_type"`
	domain.Note
}

type noteRepository struct {
	client *kivik.Client
	dbName string
}

func NewNoteRepository(client *kivik.Client, dbName string) NoteRepository {
	return &noteRepository{
		client: client,
		dbName: dbName,
	}
}

func noteDocID(id string) string {
	return fmt.Sprintf("note:%s", id)
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) error {
	db := r.client.DB(r.dbName)

	doc := noteDocument{DocType: docTypeNote, Note: *note}
	if _, err := db.Put(ctx, noteDocID(note.ID), doc); err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	return nil
}

func (r *noteRepository) get(ctx context.Context, db *kivik.DB, id string) (*noteDocument, error) {
	var doc noteDocument
	if err := db.Get(ctx, noteDocID(id)).ScanDoc(&doc); err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}

	if doc.DocType != docTypeNote {
		return nil, ErrNotFound
	}

	return &doc, nil
}

func (r *noteRepository) FindByID(ctx context.Context, id string) (*domain.Note, error) {
	doc, err := r.get(ctx, r.client.DB(r.dbName), id)
	if err != nil {
		return nil, err
	}

	return &doc.Note, nil
}

func (r *noteRepository) List(ctx context.Context, userID string) ([]*domain.Note, error) {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": NoteFilter{UserID: userID}.selector(),
	}

	rows := db.Find(ctx, query)
	defer rows.Close()

	notes := make([]*domain.Note, 0)
	for rows.Next() {
		var doc noteDocument
		if err := rows.ScanDoc(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, &doc.Note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	return notes, nil
}

// Update overwrites title, description and tag of the stored note. Owner and
// date always come from the stored document.
func (r *noteRepository) Update(ctx context.Context, note *domain.Note) error {
	db := r.client.DB(r.dbName)

	doc, err := r.get(ctx, db, note.ID)
	if err != nil {
		return err
	}

	doc.Title = note.Title
	doc.Description = note.Description
	doc.Tag = note.Tag

	if _, err := db.Put(ctx, noteDocID(note.ID), doc); err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	return nil
}

func (r *noteRepository) Delete(ctx context.Context, id string) error {
	db := r.client.DB(r.dbName)

	doc, err := r.get(ctx, db, id)
	if err != nil {
		return err
	}

	if _, err := db.Delete(ctx, noteDocID(id), doc.Rev); err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete note: %w", err)
	}

	return nil
}

// FindOneAndDelete removes the first note matching filter and returns it.
func (r *noteRepository) FindOneAndDelete(ctx context.Context, filter NoteFilter) (*domain.Note, error) {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": filter.selector(),
		"limit":    1,
	}

	rows := db.Find(ctx, query)
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to query note: %w", err)
		}
		return nil, ErrNotFound
	}

	var doc noteDocument
	if err := rows.ScanDoc(&doc); err != nil {
		return nil, fmt.Errorf("failed to scan note: %w", err)
	}

	if _, err := db.Delete(ctx, noteDocID(doc.ID), doc.Rev); err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete note: %w", err)
	}

	return &doc.Note, nil
}
