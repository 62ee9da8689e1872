package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"octopus/internal/models"
)

type InventoryStore struct{ db *gorm.DB }

func NewInventoryStore(db *gorm.DB) *InventoryStore { return &InventoryStore{db: db} }

func (s *InventoryStore) List(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := s.db.WithContext(ctx).Order("updated_at desc").Find(&items).Error
	return items, err
}

func (s *InventoryStore) GetByID(ctx context.Context, id uint) (*models.InventoryItem, error) {
	var it models.InventoryItem
	err := s.db.WithContext(ctx).First(&it, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create возвращает ErrConflict при повторном serial_number.
func (s *InventoryStore) Create(ctx context.Context, it *models.InventoryItem) error {
	err := s.db.WithContext(ctx).Create(it).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	return err
}

func (s *InventoryStore) Update(ctx context.Context, id uint, fields map[string]any) (*models.InventoryItem, error) {
	var it models.InventoryItem
	err := s.db.WithContext(ctx).First(&it, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(&it).Updates(fields).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrConflict
			}
			return nil, err
		}
		if err := s.db.WithContext(ctx).First(&it, id).Error; err != nil {
			return nil, err
		}
	}
	return &it, nil
}

func (s *InventoryStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.InventoryItem{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
