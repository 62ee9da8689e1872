package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"octopus/internal/models"
)

// TicketFilter — опциональные фильтры списка; несколько условий
// комбинируются через AND.
type TicketFilter struct {
	ProjectID *uint
	Status    *models.TicketStatus
}

type TicketStore struct{ db *gorm.DB }

func NewTicketStore(db *gorm.DB) *TicketStore { return &TicketStore{db: db} }

func (s *TicketStore) List(ctx context.Context, f TicketFilter) ([]models.Ticket, error) {
	q := s.db.WithContext(ctx).Order("created_at desc")
	if f.ProjectID != nil {
		q = q.Where("project_id = ?", *f.ProjectID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	var tickets []models.Ticket
	err := q.Find(&tickets).Error
	return tickets, err
}

func (s *TicketStore) GetByID(ctx context.Context, id uint) (*models.Ticket, error) {
	var t models.Ticket
	err := s.db.WithContext(ctx).First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TicketStore) Create(ctx context.Context, t *models.Ticket) error {
	return s.db.WithContext(ctx).Create(t).Error
}

func (s *TicketStore) Update(ctx context.Context, id uint, fields map[string]any) (*models.Ticket, error) {
	var t models.Ticket
	err := s.db.WithContext(ctx).First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(&t).Updates(fields).Error; err != nil {
			return nil, err
		}
		if err := s.db.WithContext(ctx).First(&t, id).Error; err != nil {
			return nil, err
		}
	}
	return &t, nil
}

func (s *TicketStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Ticket{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
