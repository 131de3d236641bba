package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/tappyimob/tappy-imob/internal/model"
	"github.com/tappyimob/tappy-imob/pkg/config"
	"github.com/tappyimob/tappy-imob/pkg/database"
	"github.com/tappyimob/tappy-imob/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const ownerEmail = "demo@tappyimob.com.br"

func main() {
	conf, err := config.Load("tappy-imob-seed")
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.InitLogger(&logger.LogConfig{
		Level:       conf.Log.Level,
		Environment: conf.Server.Env,
		ServiceName: conf.ServiceName,
	}); err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.GetLogger()
	defer log.Sync()

	db, err := database.InitDB(&conf.DB, log)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := database.MigrateModels(db, model.All()...); err != nil {
		log.Fatal("Failed to migrate database models", zap.Error(err))
	}

	// 1. Skip when the demo tenant already exists
	var existing model.User
	err = db.Where("email = ?", ownerEmail).First(&existing).Error
	if err == nil {
		log.Info("Demo tenant already seeded", zap.String("user_id", existing.ID))
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatal("Failed to look up demo tenant", zap.Error(err))
	}

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "tappy123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password", zap.Error(err))
	}

	// 2. Create the tenant graph in one transaction
	err = db.Transaction(func(tx *gorm.DB) error {
		owner := model.User{Nome: "Imobiliária Demo", Email: ownerEmail, Senha: string(hash), Role: model.RoleImobiliaria}
		if err := tx.Create(&owner).Error; err != nil {
			return err
		}
		imob := model.Imobiliaria{UserID: owner.ID, RazaoSocial: "Imobiliária Demo Ltda", CNPJ: "12.345.678/0001-90"}
		if err := tx.Create(&imob).Error; err != nil {
			return err
		}

		corretorUser := model.User{Nome: "Paula Corretora", Email: "paula@tappyimob.com.br", Senha: string(hash), Role: model.RoleCorretor}
		if err := tx.Create(&corretorUser).Error; err != nil {
			return err
		}
		corretor := model.Corretor{UserID: corretorUser.ID, ImobiliariaID: imob.ID, CRECI: "123456-F"}
		if err := tx.Create(&corretor).Error; err != nil {
			return err
		}

		imovel := model.Imovel{ImobiliariaID: imob.ID, Titulo: "Apartamento 2 quartos", Tipo: "APARTAMENTO", Preco: 450000, Cidade: "São Paulo", Estado: "SP"}
		if err := tx.Create(&imovel).Error; err != nil {
			return err
		}

		clienteUser := model.User{Nome: "Carla Cliente", Email: "carla@example.com", Telefone: "11999990000", Role: model.RoleCliente}
		if err := tx.Create(&clienteUser).Error; err != nil {
			return err
		}
		cliente := model.Cliente{
			UserID:        clienteUser.ID,
			ImobiliariaID: imob.ID,
			Cidade:        "São Paulo",
			Estado:        "SP",
			Imoveis:       []model.Imovel{imovel},
			Corretores:    []model.Corretor{corretor},
		}
		if err := tx.Omit("Imoveis.*", "Corretores.*").Create(&cliente).Error; err != nil {
			return err
		}
		if err := tx.Create(&model.Mensagem{ClienteID: cliente.ID, RemetenteID: clienteUser.ID, Conteudo: "Olá, tenho interesse no apartamento."}).Error; err != nil {
			return err
		}

		agente := model.Agente{ImobiliariaID: imob.ID, Nome: "Assistente Tappy"}
		if err := tx.Create(&agente).Error; err != nil {
			return err
		}
		integracoes := []model.Integracao{
			{AgenteID: agente.ID, Nome: "WhatsApp Comercial", Tipo: model.TipoWhatsApp, Status: model.StatusAtiva},
			{AgenteID: agente.ID, Nome: "Chat do Site", Tipo: model.TipoSiteChat, Status: model.StatusConfigurando},
			{AgenteID: agente.ID, Nome: "Instagram", Tipo: model.TipoInstagram, Status: model.StatusPausada},
			{AgenteID: agente.ID, Nome: "E-mail", Tipo: model.TipoEmail, Status: model.StatusErro},
		}
		return tx.Create(&integracoes).Error
	})
	if err != nil {
		log.Fatal("Failed to seed demo tenant", zap.Error(err))
	}

	log.Info("Demo tenant seeded", zap.String("email", ownerEmail))
}
