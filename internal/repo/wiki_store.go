package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"octopus/internal/models"
)

type WikiStore struct{ db *gorm.DB }

func NewWikiStore(db *gorm.DB) *WikiStore { return &WikiStore{db: db} }

func (s *WikiStore) List(ctx context.Context) ([]models.WikiPage, error) {
	var pages []models.WikiPage
	err := s.db.WithContext(ctx).Order("updated_at desc").Find(&pages).Error
	return pages, err
}

func (s *WikiStore) GetByID(ctx context.Context, id uint) (*models.WikiPage, error) {
	var p models.WikiPage
	err := s.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *WikiStore) Create(ctx context.Context, p *models.WikiPage) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *WikiStore) Update(ctx context.Context, id uint, fields map[string]any) (*models.WikiPage, error) {
	var p models.WikiPage
	err := s.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(&p).Updates(fields).Error; err != nil {
			return nil, err
		}
		if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func (s *WikiStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.WikiPage{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
