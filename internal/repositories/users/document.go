package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/dmitrijs2005/jobkeeper/internal/models"
	"github.com/dmitrijs2005/jobkeeper/internal/objects"
)

// DocumentName is the object holding every credential record.
const DocumentName = "users.json"

// DocumentRepository keeps all credentials in one JSON object keyed by
// username. Every Create rewrites the whole document.
type DocumentRepository struct {
	mu    sync.Mutex
	store objects.Store
}

func NewDocumentRepository(store objects.Store) *DocumentRepository {
	return &DocumentRepository{store: store}
}

func (r *DocumentRepository) load(ctx context.Context) (map[string]models.Credential, error) {
	data, err := r.store.Read(ctx, DocumentName)
	if errors.Is(err, objects.ErrNotExist) {
		return map[string]models.Credential{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", common.ErrIO, DocumentName, err)
	}

	creds := map[string]models.Credential{}
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrCorruptStore, DocumentName, err)
	}
	if creds == nil {
		// literal null
		creds = map[string]models.Credential{}
	}
	for name, c := range creds {
		c.Username = name
		creds[name] = c
	}
	return creds, nil
}

func (r *DocumentRepository) Create(ctx context.Context, cred models.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	creds, err := r.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := creds[cred.Username]; ok {
		return fmt.Errorf("%w: %q", common.ErrDuplicateUsername, cred.Username)
	}
	creds[cred.Username] = cred

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", DocumentName, err)
	}
	if err := r.store.Write(ctx, DocumentName, data); err != nil {
		return fmt.Errorf("%w: write %s: %w", common.ErrIO, DocumentName, err)
	}
	return nil
}

func (r *DocumentRepository) GetByUsername(ctx context.Context, username string) (models.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	creds, err := r.load(ctx)
	if err != nil {
		return models.Credential{}, err
	}
	c, ok := creds[username]
	if !ok {
		return models.Credential{}, common.ErrorNotFound
	}
	return c, nil
}
