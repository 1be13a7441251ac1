package services

import (
	"context"
	"errors"
	"log/slog"

	"speed-camera-registry/be/models"
	"speed-camera-registry/be/store"
)

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

// OperationRecorder counts operation outcomes.
type OperationRecorder interface {
	RecordOperation(operation, outcome string)
}

// Page selects a window of the full camera listing.
type Page struct {
	Limit  int
	Offset int
}

type PageResult struct {
	Data   []models.Camera `json:"data"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
	Total  int             `json:"total"`
}

// CameraService runs each registry operation: validate, then hand the
// atomic duplicate-check-and-write to the store, then translate store
// errors into ValidationError, DuplicateError or NotFoundError.
type CameraService struct {
	store    store.Store
	query    *QueryEngine
	recorder OperationRecorder
	logger   *slog.Logger
}

func NewCameraService(s store.Store, recorder OperationRecorder, logger *slog.Logger) *CameraService {
	return &CameraService{
		store:    s,
		query:    NewQueryEngine(s),
		recorder: recorder,
		logger:   logger,
	}
}

func (s *CameraService) Create(ctx context.Context, in models.CameraPatch) (models.Camera, error) {
	candidate, err := ValidateCreate(in)
	if err != nil {
		return models.Camera{}, s.fail("create", err)
	}

	created, err := s.store.Create(ctx, candidate)
	if err != nil {
		return models.Camera{}, s.fail("create", s.translate(err, 0, candidate))
	}

	s.succeed("create")
	s.logger.Info("camera created", "id", created.ID, "zipcode", created.Zipcode)
	return created, nil
}

func (s *CameraService) Get(ctx context.Context, id uint) (models.Camera, error) {
	c, err := s.store.Get(ctx, id)
	if err != nil {
		return models.Camera{}, s.translate(err, id, models.Camera{})
	}
	return c, nil
}

// List returns one page of all cameras ordered by id.
func (s *CameraService) List(ctx context.Context, page Page) (PageResult, error) {
	if page.Limit <= 0 {
		return PageResult{}, &ValidationError{Field: "limit", Message: "must be a positive integer"}
	}
	if page.Offset < 0 {
		return PageResult{}, &ValidationError{Field: "offset", Message: "must not be negative"}
	}
	if page.Limit > MaxPageLimit {
		page.Limit = MaxPageLimit
	}

	all, err := s.store.Scan(ctx)
	if err != nil {
		return PageResult{}, err
	}

	start := min(page.Offset, len(all))
	end := min(start+page.Limit, len(all))
	return PageResult{
		Data:   all[start:end],
		Limit:  page.Limit,
		Offset: page.Offset,
		Total:  len(all),
	}, nil
}

func (s *CameraService) ListByZipcode(ctx context.Context, zipcode string) ([]models.Camera, error) {
	return s.query.ByZipcode(ctx, zipcode)
}

func (s *CameraService) Search(ctx context.Context, street, zipcode string) ([]models.Camera, error) {
	return s.query.SearchByStreet(ctx, street, zipcode)
}

// Update applies the fields present in patch to camera id.
func (s *CameraService) Update(ctx context.Context, id uint, patch models.CameraPatch) (models.Camera, error) {
	if err := ValidatePatch(patch); err != nil {
		return models.Camera{}, s.fail("update", err)
	}

	updated, err := s.store.Update(ctx, id, patch)
	if err != nil {
		var (
			attempted models.Camera
			dup       *store.DuplicateError
		)
		if errors.As(err, &dup) {
			attempted = dup.Camera
		}
		return models.Camera{}, s.fail("update", s.translate(err, id, attempted))
	}

	s.succeed("update")
	s.logger.Info("camera updated", "id", updated.ID)
	return updated, nil
}

func (s *CameraService) Delete(ctx context.Context, id uint) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return s.fail("delete", s.translate(err, id, models.Camera{}))
	}

	s.succeed("delete")
	s.logger.Info("camera deleted", "id", id)
	return nil
}

// Ready reports whether the backing store is reachable.
func (s *CameraService) Ready(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *CameraService) translate(err error, id uint, candidate models.Camera) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return &NotFoundError{ID: id}
	case errors.Is(err, store.ErrDuplicate):
		return &DuplicateError{Intersection: candidate.Intersection()}
	default:
		return err
	}
}

func (s *CameraService) fail(op string, err error) error {
	var (
		validation *ValidationError
		duplicate  *DuplicateError
		notFound   *NotFoundError
	)
	outcome := "error"
	switch {
	case errors.As(err, &validation):
		outcome = "invalid"
	case errors.As(err, &duplicate):
		outcome = "duplicate"
	case errors.As(err, &notFound):
		outcome = "not_found"
	}
	s.record(op, outcome)
	return err
}

func (s *CameraService) succeed(op string) {
	s.record(op, "success")
}

func (s *CameraService) record(op, outcome string) {
	if s.recorder != nil {
		s.recorder.RecordOperation(op, outcome)
	}
}
