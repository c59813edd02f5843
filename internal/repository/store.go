package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-kivik/kivik/v4"
	_ "github.com/go-kivik/kivik/v4/couchdb"
	log "github.com/sirupsen/logrus"
)

const (
	docTypeNote = "note"
	docTypeUser = "user"
)

var ErrNotFound = errors.New("document not found")

// Store owns the CouchDB client shared by all repositories.
type Store struct {
	client *kivik.Client
	dbName string
}

// Open connects to CouchDB at dsn, creates dbName when missing and ensures the
// Mango indexes used by the repositories.
func Open(ctx context.Context, dsn, dbName string) (*Store, error) {
	client, err := kivik.New("couch", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create couchdb client: %w", err)
	}

	s := &Store{client: client, dbName: dbName}

	if _, err := s.Ping(ctx); err != nil {
		client.Close()
		return nil, err
	}

	exists, err := client.DBExists(ctx, dbName)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to check database existence: %w", err)
	}

	if !exists {
		if err := client.CreateDB(ctx, dbName); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to create database: %w", err)
		}
		log.WithField("db", dbName).Info("created database")
	}

	if err := s.ensureIndexes(ctx); err != nil {
		client.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	db := s.client.DB(s.dbName)

	indexes := map[string][]string{
		"notes-by-user":  {"doc_type", "user"},
		"users-by-email": {"doc_type", "email"},
	}

	for name, fields := range indexes {
		index := map[string]interface{}{"fields": fields}
		if err := db.CreateIndex(ctx, name, name, index); err != nil {
			return fmt.Errorf("failed to create index %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) Client() *kivik.Client {
	return s.client
}

func (s *Store) DBName() string {
	return s.dbName
}

// Ping reports whether the CouchDB server is reachable.
func (s *Store) Ping(ctx context.Context) (bool, error) {
	ok, err := s.client.Ping(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to reach couchdb: %w", err)
	}
	if !ok {
		return false, errors.New("couchdb is not ready")
	}
	return true, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func isNotFound(err error) bool {
	return kivik.HTTPStatus(err) == http.StatusNotFound
}
