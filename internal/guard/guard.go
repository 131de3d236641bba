// Package guard gates tenant-owned resources behind three ordered checks:
// the caller is authenticated, the caller is an agency owning a tenant, and
// the target row belongs to that tenant. The ownership check is always part
// of the lookup predicate, so a foreign row and a missing row both produce
// ErrNotFound.
package guard

import (
	"context"
	"errors"

	"github.com/tappyimob/tappy-imob/internal/model"
	"github.com/tappyimob/tappy-imob/pkg/jwtutil"
	"gorm.io/gorm"
)

// Actor is the authenticated caller of one request
type Actor struct {
	UserID string
	Email  string
	Role   model.Role
}

// ActorFromClaims resolves session claims to an Actor
func ActorFromClaims(claims *jwtutil.UserClaims) (*Actor, error) {
	if claims == nil || claims.UserID == "" {
		return nil, ErrUnauthenticated
	}
	return &Actor{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   model.Role(claims.Role),
	}, nil
}

// Guard resolves actors to tenants and tenant-scoped rows
type Guard struct {
	db *gorm.DB
}

// New creates a Guard over the given database
func New(db *gorm.DB) *Guard {
	return &Guard{db: db}
}

// Authorize authenticates the claims and resolves the agency tenant of the actor.
// It never touches the target resource.
func (g *Guard) Authorize(ctx context.Context, claims *jwtutil.UserClaims) (*Actor, *model.Imobiliaria, error) {
	actor, err := ActorFromClaims(claims)
	if err != nil {
		return nil, nil, err
	}

	tenant, err := g.Tenant(ctx, actor)
	if err != nil {
		return actor, nil, err
	}
	return actor, tenant, nil
}

// Tenant returns the imobiliaria owned by an active agency actor. A deactivated
// owner loses access at once, even with an unexpired session.
func (g *Guard) Tenant(ctx context.Context, actor *Actor) (*model.Imobiliaria, error) {
	if actor.Role != model.RoleImobiliaria {
		return nil, ErrForbidden
	}

	db := g.db.WithContext(ctx)
	activeUsers := db.Session(&gorm.Session{NewDB: true}).
		Model(&model.User{}).
		Select("id").
		Where("status = ?", model.UserStatusAtivo)

	var tenant model.Imobiliaria
	err := db.Where("user_id = ? AND user_id IN (?)", actor.UserID, activeUsers).First(&tenant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrForbidden
	}
	if err != nil {
		return nil, Internal("resolve tenant", err)
	}
	return &tenant, nil
}

// Scoped loads the row of T with the given id owned by the tenant, through
// tx so callers can add preloads or run inside a transaction. T's table must
// carry an imobiliaria_id column.
func Scoped[T any](tx *gorm.DB, tenantID, id string) (*T, error) {
	var rec T
	err := tx.Where("id = ? AND imobiliaria_id = ?", id, tenantID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, Internal("scoped lookup", err)
	}
	return &rec, nil
}

// TenantAgentes returns a subquery selecting the ids of the tenant's agentes
func TenantAgentes(tx *gorm.DB, tenantID string) *gorm.DB {
	return tx.Session(&gorm.Session{NewDB: true}).
		Model(&model.Agente{}).
		Select("id").
		Where("imobiliaria_id = ?", tenantID)
}

// ScopedIntegracao loads an integration whose agente belongs to the tenant, in one query
func ScopedIntegracao(tx *gorm.DB, tenantID, id string) (*model.Integracao, error) {
	var integracao model.Integracao
	err := tx.Where("id = ? AND agente_id IN (?)", id, TenantAgentes(tx, tenantID)).
		First(&integracao).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, Internal("scoped integracao lookup", err)
	}
	return &integracao, nil
}
