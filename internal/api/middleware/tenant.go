package middleware

import (
	"context"

	"github.com/velikanov/CPS-ParkingService/internal/domain"
)

// Tenant тенант-контекст, построенный Auth middleware из сессии.
// Единственный источник идентичности и ЖК для всех операций.
type Tenant = domain.TenantContext

type tenantContextKey struct{}

// WithTenant кладет тенант-контекст в контекст запроса
func WithTenant(ctx context.Context, tenant Tenant) context.Context {
	return context.WithValue(ctx, tenantContextKey{}, tenant)
}

// GetTenant извлекает тенант-контекст из контекста запроса.
// Тенант присутствует на всех маршрутах за Auth middleware.
func GetTenant(ctx context.Context) (Tenant, bool) {
	tenant, ok := ctx.Value(tenantContextKey{}).(Tenant)
	return tenant, ok
}
