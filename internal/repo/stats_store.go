package repo

import (
	"context"

	"gorm.io/gorm"

	"octopus/internal/models"
)

// Totals — счётчики сущностей для дашборда.
type Totals struct {
	Users     int64 `json:"users"`
	Projects  int64 `json:"projects"`
	Tickets   int64 `json:"tickets"`
	Wikis     int64 `json:"wikis"`
	Inventory int64 `json:"inventory"`
}

type StatsStore struct{ db *gorm.DB }

func NewStatsStore(db *gorm.DB) *StatsStore { return &StatsStore{db: db} }

func (s *StatsStore) Totals(ctx context.Context) (*Totals, error) {
	var t Totals
	for _, c := range []struct {
		model any
		dst   *int64
	}{
		{&models.User{}, &t.Users},
		{&models.Project{}, &t.Projects},
		{&models.Ticket{}, &t.Tickets},
		{&models.WikiPage{}, &t.Wikis},
		{&models.InventoryItem{}, &t.Inventory},
	} {
		if err := s.db.WithContext(ctx).Model(c.model).Count(c.dst).Error; err != nil {
			return nil, err
		}
	}
	return &t, nil
}

// TicketsByStatus — количество тикетов по каждому встречающемуся статусу;
// статусы без тикетов в ответ не попадают.
func (s *StatsStore) TicketsByStatus(ctx context.Context) (map[models.TicketStatus]int64, error) {
	var rows []struct {
		Status models.TicketStatus
		Count  int64
	}
	if err := s.db.WithContext(ctx).Model(&models.Ticket{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[models.TicketStatus]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.Count
	}
	return out, nil
}
