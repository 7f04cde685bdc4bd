package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"telegram-budget-bot/internal/models"
)

// Store persists the whole ledger document. Every mutating tracker
// operation saves the full document synchronously before returning.
type Store interface {
	Load(ctx context.Context) (*models.LedgerDocument, error)
	Save(ctx context.Context, doc *models.LedgerDocument) error
}

// FileStore keeps the ledger in a single JSON file. Saves go through a
// temp file and a rename so a crash mid-write never corrupts durable data.
type FileStore struct {
	path string
}

// NewFileStore creates a file store at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the ledger file. A missing or malformed file yields a fresh
// empty document rather than an error.
func (s *FileStore) Load(ctx context.Context) (*models.LedgerDocument, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.NewLedgerDocument(), nil
		}
		return nil, fmt.Errorf("failed to read ledger file: %w", err)
	}

	doc := models.NewLedgerDocument()
	if err := json.Unmarshal(content, doc); err != nil {
		log.Printf("Ledger file %s is malformed, starting fresh: %v", s.path, err)
		return models.NewLedgerDocument(), nil
	}
	if doc.Users == nil {
		doc.Users = make(map[string]*models.UserAccount)
	}
	return doc, nil
}

// Save writes the full document, replacing the previous file atomically.
func (s *FileStore) Save(ctx context.Context, doc *models.LedgerDocument) error {
	payload, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}

	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create ledger directory: %w", err)
		}
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write temp ledger file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to replace ledger file: %w", err)
	}
	return nil
}
