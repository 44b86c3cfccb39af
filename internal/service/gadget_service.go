package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/akumarujon/imf-gadget-api/internal/errors"
	"github.com/akumarujon/imf-gadget-api/internal/model"
	"github.com/akumarujon/imf-gadget-api/internal/repository"
)

// codenameNouns feeds the codename generator. Collisions against existing
// codenames retry with a numeric suffix.
var codenameNouns = []string{
	"Nightingale", "Kraken", "Phantom", "Mirage", "Basilisk",
	"Wraith", "Chimera", "Specter", "Vortex", "Falcon",
	"Hydra", "Cobra", "Siren", "Griffin", "Leviathan",
	"Mantis", "Obsidian", "Pegasus", "Raven", "Tempest",
}

// GadgetView is a gadget decorated with a per-request mission success
// probability. The probability is never stored.
type GadgetView struct {
	model.Gadget
	MissionSuccessProbability int `json:"mission_success_probability"`
}

// SelfDestructResult is returned by a successful destroy.
type SelfDestructResult struct {
	Gadget           *model.Gadget `json:"gadget"`
	ConfirmationCode string        `json:"confirmation_code"`
}

// GadgetService owns every mutation to a gadget's status. Decommission and
// destroy re-read current state and reject repeat calls instead of silently
// succeeding; the administrative update path carries no such guard.
type GadgetService interface {
	Get(ctx context.Context, id string) (*model.Gadget, error)
	List(ctx context.Context) ([]GadgetView, error)
	ListByStatus(ctx context.Context, status string) ([]GadgetView, error)
	Create(ctx context.Context, name, status string) (*model.Gadget, error)
	Update(ctx context.Context, id string, newName, newStatus *string) (*model.Gadget, error)
	Decommission(ctx context.Context, id string) (*model.Gadget, error)
	Destroy(ctx context.Context, id string) (*SelfDestructResult, error)
}

type gadgetService struct {
	repo repository.GadgetRepository
}

// NewGadgetService creates a new gadget lifecycle service.
func NewGadgetService(repo repository.GadgetRepository) GadgetService {
	return &gadgetService{repo: repo}
}

// Get returns a single gadget.
func (s *gadgetService) Get(ctx context.Context, id string) (*model.Gadget, error) {
	gadgetID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.ErrInvalidGadgetID
	}
	return s.find(ctx, gadgetID)
}

// List returns every gadget decorated with a success probability.
func (s *gadgetService) List(ctx context.Context) ([]GadgetView, error) {
	gadgets, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list gadgets: %w", err)
	}
	return decorate(gadgets), nil
}

// ListByStatus filters by status, case-insensitively.
func (s *gadgetService) ListByStatus(ctx context.Context, status string) ([]GadgetView, error) {
	canonical, ok := model.NormalizeStatus(status)
	if !ok {
		return nil, apperrors.ErrInvalidStatus
	}
	gadgets, err := s.repo.ListByStatus(ctx, canonical)
	if err != nil {
		return nil, fmt.Errorf("list gadgets by status: %w", err)
	}
	return decorate(gadgets), nil
}

// Create inserts a gadget with a generated codename. Any of the four
// statuses is accepted at creation; there is no transition guard.
func (s *gadgetService) Create(ctx context.Context, name, status string) (*model.Gadget, error) {
	canonical, ok := model.NormalizeStatus(status)
	if !ok {
		return nil, apperrors.ErrInvalidStatus
	}

	codename, err := s.generateCodename(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate codename: %w", err)
	}

	gadget := &model.Gadget{
		Name:     name,
		Codename: codename,
		Status:   canonical,
	}
	if err := s.repo.Create(ctx, gadget); err != nil {
		return nil, fmt.Errorf("create gadget: %w", err)
	}
	return gadget, nil
}

// Update is the permissive administrative path: rename and/or set any
// status, bypassing the decommission/destroy guards.
func (s *gadgetService) Update(ctx context.Context, id string, newName, newStatus *string) (*model.Gadget, error) {
	gadgetID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.ErrInvalidGadgetID
	}

	gadget, err := s.find(ctx, gadgetID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if newName != nil {
		gadget.Name = *newName
		fields["name"] = *newName
	}
	if newStatus != nil {
		canonical, ok := model.NormalizeStatus(*newStatus)
		if !ok {
			return nil, apperrors.ErrInvalidStatus
		}
		gadget.Status = canonical
		fields["status"] = canonical
	}
	if len(fields) == 0 {
		return gadget, nil
	}

	if err := s.repo.UpdateFields(ctx, gadgetID, fields); err != nil {
		return nil, fmt.Errorf("update gadget: %w", err)
	}
	return gadget, nil
}

// Decommission soft-deletes: status flips to Decommissioned and the record
// stays queryable. Repeat calls are rejected.
func (s *gadgetService) Decommission(ctx context.Context, id string) (*model.Gadget, error) {
	gadgetID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.ErrInvalidGadgetID
	}

	gadget, err := s.find(ctx, gadgetID)
	if err != nil {
		return nil, err
	}
	if gadget.Status == model.StatusDecommissioned {
		return nil, apperrors.ErrAlreadyDecommissioned
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateFields(ctx, gadgetID, map[string]interface{}{
		"status":            model.StatusDecommissioned,
		"decommissioned_at": now,
	}); err != nil {
		return nil, fmt.Errorf("decommission gadget: %w", err)
	}

	gadget.Status = model.StatusDecommissioned
	gadget.DecommissionedAt = &now
	return gadget, nil
}

// Destroy sets the terminal Destroyed status and returns a one-time
// confirmation code. Repeat calls are rejected.
func (s *gadgetService) Destroy(ctx context.Context, id string) (*SelfDestructResult, error) {
	gadgetID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.ErrInvalidGadgetID
	}

	gadget, err := s.find(ctx, gadgetID)
	if err != nil {
		return nil, err
	}
	if gadget.Status == model.StatusDestroyed {
		return nil, apperrors.ErrAlreadyDestroyed
	}

	// the code is generated first so a failure here leaves the gadget untouched
	code, err := confirmationCode()
	if err != nil {
		return nil, fmt.Errorf("confirmation code: %w", err)
	}

	if err := s.repo.UpdateFields(ctx, gadgetID, map[string]interface{}{
		"status": model.StatusDestroyed,
	}); err != nil {
		return nil, fmt.Errorf("destroy gadget: %w", err)
	}

	gadget.Status = model.StatusDestroyed
	return &SelfDestructResult{Gadget: gadget, ConfirmationCode: code}, nil
}

func (s *gadgetService) find(ctx context.Context, id uuid.UUID) (*model.Gadget, error) {
	gadget, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrGadgetNotFound
		}
		return nil, fmt.Errorf("find gadget: %w", err)
	}
	return gadget, nil
}

// generateCodename picks "The <Noun>", retrying with a numeric suffix until
// no existing gadget holds it.
func (s *gadgetService) generateCodename(ctx context.Context) (string, error) {
	idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(codenameNouns))))
	if err != nil {
		return "", err
	}
	base := "The " + codenameNouns[idx.Int64()]

	candidate := base
	for suffix := 2; ; suffix++ {
		_, err := s.repo.FindByCodename(ctx, candidate)
		if err == gorm.ErrRecordNotFound {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = fmt.Sprintf("%s %d", base, suffix)
	}
}

func decorate(gadgets []model.Gadget) []GadgetView {
	views := make([]GadgetView, 0, len(gadgets))
	for _, g := range gadgets {
		views = append(views, GadgetView{
			Gadget:                    g,
			MissionSuccessProbability: successProbability(),
		})
	}
	return views
}

// confirmationCode produces a six-digit one-time code for self-destruct
// responses.
func confirmationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// successProbability returns a fresh 1-100 percentage per call.
func successProbability() int {
	n, err := rand.Int(rand.Reader, big.NewInt(100))
	if err != nil {
		return 50
	}
	return int(n.Int64()) + 1
}
