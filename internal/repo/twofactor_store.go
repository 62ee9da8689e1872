package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"octopus/internal/models"
)

type TwoFactorStore struct{ db *gorm.DB }

func NewTwoFactorStore(db *gorm.DB) *TwoFactorStore { return &TwoFactorStore{db: db} }

// Replace гасит прежнюю запись пользователя и вставляет новую в одной
// транзакции: живой challenge всегда не более одного.
func (s *TwoFactorStore) Replace(ctx context.Context, c *models.TwoFactorChallenge) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", c.UserID).
			Delete(&models.TwoFactorChallenge{}).Error; err != nil {
			return err
		}
		return tx.Create(c).Error
	})
}

func (s *TwoFactorStore) GetByToken(ctx context.Context, token string) (*models.TwoFactorChallenge, error) {
	var c models.TwoFactorChallenge
	err := s.db.WithContext(ctx).Where("token = ?", token).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Consume — атомарный check-and-delete по паре token+code; false, если
// запись уже погашена (защита от replay).
func (s *TwoFactorStore) Consume(ctx context.Context, token, code string) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("token = ? AND code = ?", token, code).
		Delete(&models.TwoFactorChallenge{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *TwoFactorStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.TwoFactorChallenge{}, id).Error
}
