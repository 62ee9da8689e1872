package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"octopus/internal/models"
)

type ProjectStore struct{ db *gorm.DB }

func NewProjectStore(db *gorm.DB) *ProjectStore { return &ProjectStore{db: db} }

func (s *ProjectStore) List(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.WithContext(ctx).Order("created_at desc").Find(&projects).Error
	return projects, err
}

func (s *ProjectStore) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var p models.Project
	err := s.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProjectStore) Create(ctx context.Context, p *models.Project) error {
	err := s.db.WithContext(ctx).Create(p).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	return err
}

func (s *ProjectStore) Update(ctx context.Context, id uint, fields map[string]any) (*models.Project, error) {
	var p models.Project
	err := s.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(&p).Updates(fields).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrConflict
			}
			return nil, err
		}
		if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func (s *ProjectStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Project{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
