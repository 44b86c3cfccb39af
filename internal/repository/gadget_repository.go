package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akumarujon/imf-gadget-api/internal/model"
)

// GadgetRepository defines gadget persistence operations.
type GadgetRepository interface {
	Create(ctx context.Context, gadget *model.Gadget) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Gadget, error)
	FindByCodename(ctx context.Context, codename string) (*model.Gadget, error)
	List(ctx context.Context) ([]model.Gadget, error)
	ListByStatus(ctx context.Context, status model.Status) ([]model.Gadget, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
}

type gadgetRepository struct {
	db *gorm.DB
}

// NewGadgetRepository creates a new gadget repository.
func NewGadgetRepository(db *gorm.DB) GadgetRepository {
	return &gadgetRepository{db: db}
}

// Create creates a new gadget.
func (r *gadgetRepository) Create(ctx context.Context, gadget *model.Gadget) error {
	return r.db.WithContext(ctx).Create(gadget).Error
}

// FindByID finds a gadget by ID.
func (r *gadgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Gadget, error) {
	var gadget model.Gadget
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&gadget).Error; err != nil {
		return nil, err
	}
	return &gadget, nil
}

// FindByCodename finds a gadget by codename.
func (r *gadgetRepository) FindByCodename(ctx context.Context, codename string) (*model.Gadget, error) {
	var gadget model.Gadget
	if err := r.db.WithContext(ctx).Where("codename = ?", codename).First(&gadget).Error; err != nil {
		return nil, err
	}
	return &gadget, nil
}

// List returns all gadgets. Order is not guaranteed.
func (r *gadgetRepository) List(ctx context.Context) ([]model.Gadget, error) {
	var gadgets []model.Gadget
	if err := r.db.WithContext(ctx).Find(&gadgets).Error; err != nil {
		return nil, err
	}
	return gadgets, nil
}

// ListByStatus returns all gadgets with the given canonical status.
func (r *gadgetRepository) ListByStatus(ctx context.Context, status model.Status) ([]model.Gadget, error) {
	var gadgets []model.Gadget
	if err := r.db.WithContext(ctx).Where("status = ?", status).Find(&gadgets).Error; err != nil {
		return nil, err
	}
	return gadgets, nil
}

// UpdateFields updates selected columns of a gadget.
func (r *gadgetRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Gadget{}).
		Where("id = ?", id).
		Updates(fields).Error
}
