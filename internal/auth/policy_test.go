package auth

import (
	"testing"

	"octopus/internal/models"
)

func user(id uint, role models.UserRole) *models.User {
	return &models.User{ID: id, Role: role, IsActive: true}
}

func TestHasCapability(t *testing.T) {
	cases := []struct {
		role models.UserRole
		cap  Capability
		want bool
	}{
		{models.RoleViewer, CapAuthenticated, true},
		{models.RoleStandardUser, CapAuthenticated, true},
		{models.RoleViewer, CapProjectManager, false},
		{models.RoleStandardUser, CapProjectManager, false},
		{models.RoleProjectManager, CapProjectManager, true},
		{models.RoleAdmin, CapProjectManager, true},
		{models.RoleProjectManager, CapAdmin, false},
		{models.RoleAdmin, CapAdmin, true},
	}
	for _, c := range cases {
		if got := HasCapability(user(1, c.role), c.cap); got != c.want {
			t.Errorf("HasCapability(%s, %d) = %v, want %v", c.role, c.cap, got, c.want)
		}
	}
}

func TestCanCreateTicket(t *testing.T) {
	if !CanCreateTicket(user(1, models.RoleStandardUser), 1) {
		t.Error("standard user must be able to report own tickets")
	}
	if CanCreateTicket(user(1, models.RoleStandardUser), 2) {
		t.Error("standard user must not report on behalf of others")
	}
	if CanCreateTicket(user(1, models.RoleProjectManager), 2) {
		t.Error("manager is not exempt from the reporter rule")
	}
	if !CanCreateTicket(user(1, models.RoleAdmin), 2) {
		t.Error("admin may set any reporter")
	}
}

func TestCanUpdateTicket(t *testing.T) {
	assignee := uint(5)
	ticket := &models.Ticket{ReporterID: 3, AssigneeID: &assignee}

	if !CanUpdateTicket(user(1, models.RoleAdmin), ticket) {
		t.Error("admin")
	}
	if !CanUpdateTicket(user(1, models.RoleProjectManager), ticket) {
		t.Error("project manager")
	}
	if !CanUpdateTicket(user(3, models.RoleStandardUser), ticket) {
		t.Error("reporter")
	}
	if !CanUpdateTicket(user(5, models.RoleStandardUser), ticket) {
		t.Error("assignee")
	}
	if CanUpdateTicket(user(7, models.RoleStandardUser), ticket) {
		t.Error("unrelated standard user must be denied")
	}
	if CanUpdateTicket(user(7, models.RoleViewer), &models.Ticket{ReporterID: 3}) {
		t.Error("viewer on ticket without assignee must be denied")
	}
}

func TestCanEditWiki(t *testing.T) {
	if CanEditWiki(user(1, models.RoleViewer)) {
		t.Error("viewer must not edit wikis")
	}
	for _, role := range []models.UserRole{models.RoleStandardUser, models.RoleProjectManager, models.RoleAdmin} {
		if !CanEditWiki(user(1, role)) {
			t.Errorf("%s must edit wikis", role)
		}
	}
}

func TestCanDeleteUser(t *testing.T) {
	if CanDeleteUser(user(1, models.RoleAdmin), 1) {
		t.Error("self-deletion must be refused even for admin")
	}
	if !CanDeleteUser(user(1, models.RoleAdmin), 2) {
		t.Error("deleting another user is allowed")
	}
}
