package api

import (
	"context"

	"octopus/internal/models"
	"octopus/internal/repo"
)

// Контракты хранилищ, нужные HTTP-слою. Реализация — internal/repo;
// в тестах — in-memory фейки. Отсутствие записи в Get* — (nil, nil);
// Update/Delete по отсутствующему id — repo.ErrNotFound.

type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, id uint, fields map[string]any) (*models.User, error)
	Delete(ctx context.Context, id uint) error
}

type ProjectStore interface {
	List(ctx context.Context) ([]models.Project, error)
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	Create(ctx context.Context, p *models.Project) error
	Update(ctx context.Context, id uint, fields map[string]any) (*models.Project, error)
	Delete(ctx context.Context, id uint) error
}

type TicketStore interface {
	List(ctx context.Context, f repo.TicketFilter) ([]models.Ticket, error)
	GetByID(ctx context.Context, id uint) (*models.Ticket, error)
	Create(ctx context.Context, t *models.Ticket) error
	Update(ctx context.Context, id uint, fields map[string]any) (*models.Ticket, error)
	Delete(ctx context.Context, id uint) error
}

type WikiStore interface {
	List(ctx context.Context) ([]models.WikiPage, error)
	GetByID(ctx context.Context, id uint) (*models.WikiPage, error)
	Create(ctx context.Context, p *models.WikiPage) error
	Update(ctx context.Context, id uint, fields map[string]any) (*models.WikiPage, error)
	Delete(ctx context.Context, id uint) error
}

type InventoryStore interface {
	List(ctx context.Context) ([]models.InventoryItem, error)
	GetByID(ctx context.Context, id uint) (*models.InventoryItem, error)
	Create(ctx context.Context, it *models.InventoryItem) error
	Update(ctx context.Context, id uint, fields map[string]any) (*models.InventoryItem, error)
	Delete(ctx context.Context, id uint) error
}

type StatsStore interface {
	Totals(ctx context.Context) (*repo.Totals, error)
	TicketsByStatus(ctx context.Context) (map[models.TicketStatus]int64, error)
}
