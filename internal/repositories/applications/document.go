package applications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/dmitrijs2005/jobkeeper/internal/models"
	"github.com/dmitrijs2005/jobkeeper/internal/objects"
)

// DocumentRepository stores one JSON array per user on an objects.Store.
type DocumentRepository struct {
	store objects.Store
}

func NewDocumentRepository(store objects.Store) *DocumentRepository {
	return &DocumentRepository{store: store}
}

func (r *DocumentRepository) Load(ctx context.Context, username string) ([]models.Application, error) {
	name := ObjectName(username)

	data, err := r.store.Read(ctx, name)
	if errors.Is(err, objects.ErrNotExist) {
		return []models.Application{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", common.ErrIO, name, err)
	}

	var apps []models.Application
	if err := json.Unmarshal(data, &apps); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrCorruptStore, name, err)
	}
	if err := models.ValidateAll(apps); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrCorruptStore, name, err)
	}
	return models.Clone(apps), nil
}

func (r *DocumentRepository) Save(ctx context.Context, username string, apps []models.Application) error {
	name := ObjectName(username)

	data, err := json.MarshalIndent(models.Clone(apps), "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := r.store.Write(ctx, name, data); err != nil {
		return fmt.Errorf("%w: write %s: %w", common.ErrIO, name, err)
	}
	return nil
}
