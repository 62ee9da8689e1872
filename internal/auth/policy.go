package auth

import "octopus/internal/models"

// Capability — декларативное требование операции к роли вызывающего.
type Capability int

const (
	// CapAuthenticated — достаточно валидного токена активного пользователя.
	CapAuthenticated Capability = iota
	// CapProjectManager — роль ADMIN или PROJECT_MANAGER.
	CapProjectManager
	// CapAdmin — только ADMIN.
	CapAdmin
)

// HasCapability — ролевой гейт; бизнес-правила поверх него ниже.
func HasCapability(u *models.User, c Capability) bool {
	switch c {
	case CapAuthenticated:
		return true
	case CapProjectManager:
		return u.Role == models.RoleAdmin || u.Role == models.RoleProjectManager
	case CapAdmin:
		return u.Role == models.RoleAdmin
	}
	return false
}

// CanCreateTicket: не-админ заводит тикеты только от своего имени.
func CanCreateTicket(caller *models.User, reporterID uint) bool {
	return caller.Role == models.RoleAdmin || reporterID == caller.ID
}

// CanUpdateTicket: админ, менеджер, либо автор/исполнитель тикета.
func CanUpdateTicket(caller *models.User, t *models.Ticket) bool {
	if caller.Role == models.RoleAdmin || caller.Role == models.RoleProjectManager {
		return true
	}
	if t.ReporterID == caller.ID {
		return true
	}
	return t.AssigneeID != nil && *t.AssigneeID == caller.ID
}

// CanEditWiki: роль VIEWER не создаёт и не правит wiki-страницы.
func CanEditWiki(caller *models.User) bool {
	return caller.Role != models.RoleViewer
}

// CanDeleteUser: самоудаление запрещено даже админу.
func CanDeleteUser(caller *models.User, targetID uint) bool {
	return caller.ID != targetID
}
