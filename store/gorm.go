package store

import (
	"context"
	"errors"
	"fmt"

	"speed-camera-registry/be/models"

	"gorm.io/gorm"
)

// GormStore persists cameras in PostgreSQL. The unique index on the
// intersection columns backs up the in-transaction duplicate check when two
// transactions race.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, c models.Camera) (models.Camera, error) {
	c.ID = 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkDuplicate(tx, c); err != nil {
			return err
		}
		return tx.Create(&c).Error
	})
	if err != nil {
		return models.Camera{}, duplicateOf(translateError("create camera", err), c)
	}
	return c, nil
}

func (s *GormStore) Get(ctx context.Context, id uint) (models.Camera, error) {
	var c models.Camera
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return models.Camera{}, translateError("get camera", err)
	}
	return c, nil
}

func (s *GormStore) Update(ctx context.Context, id uint, patch models.CameraPatch) (models.Camera, error) {
	var merged models.Camera
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Camera
		if err := tx.First(&current, id).Error; err != nil {
			return err
		}

		merged = patch.Apply(current)
		if err := checkDuplicate(tx, merged); err != nil {
			return err
		}
		return tx.Save(&merged).Error
	})
	if err != nil {
		return models.Camera{}, duplicateOf(translateError("update camera", err), merged)
	}
	return merged, nil
}

func (s *GormStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Camera{}, id)
	if res.Error != nil {
		return translateError("delete camera", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) Scan(ctx context.Context) ([]models.Camera, error) {
	cameras := []models.Camera{}
	if err := s.db.WithContext(ctx).Order("id").Find(&cameras).Error; err != nil {
		return nil, translateError("scan cameras", err)
	}
	return cameras, nil
}

func (s *GormStore) ListByZipcode(ctx context.Context, zipcode string) ([]models.Camera, error) {
	cameras := []models.Camera{}
	if err := s.db.WithContext(ctx).Where("zipcode = ?", zipcode).Order("id").Find(&cameras).Error; err != nil {
		return nil, translateError("list cameras by zipcode", err)
	}
	return cameras, nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func checkDuplicate(tx *gorm.DB, c models.Camera) error {
	var peers []models.Camera
	if err := tx.Where("zipcode = ?", c.Zipcode).Find(&peers).Error; err != nil {
		return err
	}
	if _, dup := FindDuplicate(c, peers); dup {
		return ErrDuplicate
	}
	return nil
}

func translateError(op string, err error) error {
	switch {
	case errors.Is(err, ErrDuplicate), errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
