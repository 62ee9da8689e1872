package api

import (
	"context"
	"net/http"
	"testing"

	"octopus/internal/models"
)

func TestDashboardStats(t *testing.T) {
	e := newEnv(t)
	reporter, _ := e.addUser(t, models.RoleStandardUser, true)
	_, viewerTok := e.addUser(t, models.RoleViewer, true)

	e.addTicket(t, models.Ticket{ProjectID: 1, ReporterID: reporter.ID, Title: "p1", Priority: models.PriorityLow, Status: models.StatusPending})
	e.addTicket(t, models.Ticket{ProjectID: 1, ReporterID: reporter.ID, Title: "p2", Priority: models.PriorityLow, Status: models.StatusPending})
	e.addTicket(t, models.Ticket{ProjectID: 2, ReporterID: reporter.ID, Title: "c1", Priority: models.PriorityLow, Status: models.StatusClosed})
	if err := e.projects.Create(context.Background(), &models.Project{Name: "Solo"}); err != nil {
		t.Fatal(err)
	}

	// Статистика доступна любому аутентифицированному, включая viewer.
	w := e.do(t, http.MethodGet, "/api/dashboard/stats", viewerTok, nil)
	wantStatus(t, w, http.StatusOK)
	res := decodeBody[statsResponse](t, w)

	if res.Totals == nil {
		t.Fatal("totals missing")
	}
	if res.Totals.Users != 2 || res.Totals.Projects != 1 || res.Totals.Tickets != 3 {
		t.Fatalf("totals = %+v", res.Totals)
	}
	if res.Totals.Wikis != 0 || res.Totals.Inventory != 0 {
		t.Fatalf("empty stores must count as zero: %+v", res.Totals)
	}

	if res.TicketsByStatus[models.StatusPending] != 2 || res.TicketsByStatus[models.StatusClosed] != 1 {
		t.Fatalf("tickets_by_status = %+v", res.TicketsByStatus)
	}
	// Статусы без тикетов в разбивке не появляются.
	if _, ok := res.TicketsByStatus[models.StatusInProgress]; ok {
		t.Fatalf("zero statuses must be omitted: %+v", res.TicketsByStatus)
	}

	wantStatus(t, e.do(t, http.MethodGet, "/api/dashboard/stats", "", nil), http.StatusUnauthorized)
}
