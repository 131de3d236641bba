package guard

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tappyimob/tappy-imob/internal/model"
	"github.com/tappyimob/tappy-imob/internal/testutil"
	"github.com/tappyimob/tappy-imob/pkg/jwtutil"
)

func claimsFor(u model.User) *jwtutil.UserClaims {
	return &jwtutil.UserClaims{UserID: u.ID, Email: u.Email, Role: string(u.Role)}
}

func TestAuthorize(t *testing.T) {
	db := testutil.NewDB(t)
	g := New(db)
	ctx := context.Background()

	t1 := testutil.CreateTenant(t, db, "Imob Um")
	cliente := testutil.CreateCliente(t, db, t1, "Carla")

	orphan := model.User{Nome: "Sem imobiliaria", Email: "orphan@imob.test", Role: model.RoleImobiliaria}
	require.NoError(t, db.Create(&orphan).Error)

	t.Run("missing claims", func(t *testing.T) {
		_, _, err := g.Authorize(ctx, nil)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("wrong role", func(t *testing.T) {
		_, _, err := g.Authorize(ctx, claimsFor(cliente.User))
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("agency role without tenant", func(t *testing.T) {
		_, _, err := g.Authorize(ctx, claimsFor(orphan))
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("deactivated agency owner", func(t *testing.T) {
		t2 := testutil.CreateTenant(t, db, "Imob Dois")
		require.NoError(t, db.Model(&t2.Owner).Update("status", model.UserStatusInativo).Error)

		_, _, err := g.Authorize(ctx, claimsFor(t2.Owner))
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("agency owner", func(t *testing.T) {
		actor, tenant, err := g.Authorize(ctx, claimsFor(t1.Owner))
		require.NoError(t, err)
		assert.Equal(t, t1.Owner.ID, actor.UserID)
		assert.Equal(t, t1.Imobiliaria.ID, tenant.ID)
	})
}

func TestScopedHidesForeignRows(t *testing.T) {
	db := testutil.NewDB(t)

	t1 := testutil.CreateTenant(t, db, "Imob Um")
	t2 := testutil.CreateTenant(t, db, "Imob Dois")
	c1 := testutil.CreateCliente(t, db, t1, "Carla")

	got, err := Scoped[model.Cliente](db, t1.Imobiliaria.ID, c1.ID)
	require.NoError(t, err)
	assert.Equal(t, c1.ID, got.ID)

	_, foreignErr := Scoped[model.Cliente](db, t2.Imobiliaria.ID, c1.ID)
	_, missingErr := Scoped[model.Cliente](db, t2.Imobiliaria.ID, "does-not-exist")

	assert.ErrorIs(t, foreignErr, ErrNotFound)
	assert.ErrorIs(t, missingErr, ErrNotFound)
	assert.Equal(t, missingErr.Error(), foreignErr.Error())
}

func TestScopedIntegracao(t *testing.T) {
	db := testutil.NewDB(t)

	t1 := testutil.CreateTenant(t, db, "Imob Um")
	t2 := testutil.CreateTenant(t, db, "Imob Dois")
	i1 := testutil.CreateIntegracao(t, db, t1, model.TipoWhatsApp, model.StatusPausada)

	got, err := ScopedIntegracao(db, t1.Imobiliaria.ID, i1.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPausada, got.Status)

	_, err = ScopedIntegracao(db, t2.Imobiliaria.ID, i1.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, StatusCode(ErrUnauthenticated))
	assert.Equal(t, http.StatusForbidden, StatusCode(ErrForbidden))
	assert.Equal(t, http.StatusNotFound, StatusCode(ErrNotFound))

	wrapped := Internal("update cliente", errors.New("connection reset"))
	assert.ErrorIs(t, wrapped, ErrInternal)
	assert.Equal(t, http.StatusInternalServerError, StatusCode(wrapped))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("boom")))
	assert.Equal(t, "internal", Reason(wrapped))
	assert.Equal(t, "not_found", Reason(ErrNotFound))
}
