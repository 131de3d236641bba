// Package testutil provides an in-memory database and fixtures shared by package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tappyimob/tappy-imob/internal/model"
	"github.com/tappyimob/tappy-imob/pkg/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with every model migrated
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps the shared-cache database alive and serializes writers
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.MigrateModels(db, model.All()...))
	return db
}

// Tenant is an agency fixture with its owner user
type Tenant struct {
	Owner       model.User
	Imobiliaria model.Imobiliaria
}

// CreateTenant stores an agency owner and its imobiliaria
func CreateTenant(t *testing.T, db *gorm.DB, name string) Tenant {
	t.Helper()

	owner := model.User{
		Nome:  name,
		Email: uuid.NewString() + "@imob.test",
		Role:  model.RoleImobiliaria,
	}
	require.NoError(t, db.Create(&owner).Error)

	imob := model.Imobiliaria{UserID: owner.ID, RazaoSocial: name}
	require.NoError(t, db.Create(&imob).Error)

	return Tenant{Owner: owner, Imobiliaria: imob}
}

// CreateCorretor stores a broker of the tenant
func CreateCorretor(t *testing.T, db *gorm.DB, tenant Tenant, nome string) model.Corretor {
	t.Helper()

	user := model.User{
		Nome:  nome,
		Email: uuid.NewString() + "@corretor.test",
		Role:  model.RoleCorretor,
	}
	require.NoError(t, db.Create(&user).Error)

	corretor := model.Corretor{UserID: user.ID, ImobiliariaID: tenant.Imobiliaria.ID, CRECI: "12345-F"}
	require.NoError(t, db.Create(&corretor).Error)
	corretor.User = user
	return corretor
}

// CreateCliente stores a customer of the tenant with its owning user
func CreateCliente(t *testing.T, db *gorm.DB, tenant Tenant, nome string) model.Cliente {
	t.Helper()

	user := model.User{
		Nome:     nome,
		Email:    uuid.NewString() + "@cliente.test",
		Telefone: "1133334444",
		Role:     model.RoleCliente,
	}
	require.NoError(t, db.Create(&user).Error)

	cliente := model.Cliente{
		UserID:        user.ID,
		ImobiliariaID: tenant.Imobiliaria.ID,
		Endereco:      "Rua Augusta",
		Numero:        "100",
		Cidade:        "São Paulo",
		Estado:        "SP",
		CEP:           "01305-000",
	}
	require.NoError(t, db.Create(&cliente).Error)
	cliente.User = user
	return cliente
}

// CreateMensagem stores a message for the cliente at the given instant
func CreateMensagem(t *testing.T, db *gorm.DB, cliente model.Cliente, conteudo string, at time.Time) model.Mensagem {
	t.Helper()

	msg := model.Mensagem{ClienteID: cliente.ID, RemetenteID: cliente.UserID, Conteudo: conteudo, CreatedAt: at}
	require.NoError(t, db.Create(&msg).Error)
	return msg
}

// CreateIntegracao stores an integration under a new agente of the tenant
func CreateIntegracao(t *testing.T, db *gorm.DB, tenant Tenant, tipo model.IntegracaoTipo, status model.IntegracaoStatus) model.Integracao {
	t.Helper()

	agente := model.Agente{ImobiliariaID: tenant.Imobiliaria.ID, Nome: "Agente " + string(tipo)}
	require.NoError(t, db.Create(&agente).Error)

	integracao := model.Integracao{AgenteID: agente.ID, Nome: string(tipo), Tipo: tipo, Status: status}
	require.NoError(t, db.Create(&integracao).Error)
	return integracao
}
