package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntegracaoStatusValid(t *testing.T) {
	for _, s := range IntegracaoStatuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, IntegracaoStatus("ATIVO").Valid())
	assert.False(t, IntegracaoStatus("").Valid())
}

func TestIntegracaoTipoValid(t *testing.T) {
	assert.Len(t, IntegracaoTipos, 7)
	for _, tipo := range IntegracaoTipos {
		assert.True(t, tipo.Valid(), tipo)
	}
	assert.False(t, IntegracaoTipo("TELEGRAM").Valid())
}

func TestUserBeforeCreateDefaults(t *testing.T) {
	u := &User{Nome: "Ana"}
	assert.NoError(t, u.BeforeCreate(nil))
	assert.NotEmpty(t, u.ID)
	assert.True(t, u.Active())

	u = &User{ID: "fixed", Status: UserStatusInativo}
	assert.NoError(t, u.BeforeCreate(nil))
	assert.Equal(t, "fixed", u.ID)
	assert.False(t, u.Active())
}
