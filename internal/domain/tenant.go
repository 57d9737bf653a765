package domain

// TenantContext контекст вызывающей стороны, построенный из сессии.
// Передается явным аргументом во все операции сервисов - никогда не
// хранится в глобальном состоянии. Любые communityCode/ownerId/renterId
// из тела запроса игнорируются в пользу этих значений.
type TenantContext struct {
	UserID        string
	CommunityCode string
	Role          Role
}

// IsAdmin проверяет, что вызывающий - администратор своего ЖК
func (t TenantContext) IsAdmin() bool {
	return t.Role == RoleAdmin
}
