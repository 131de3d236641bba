package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/tappyimob/tappy-imob/internal/model"
	"github.com/tappyimob/tappy-imob/internal/panel"
	"github.com/tappyimob/tappy-imob/pkg/config"
	"github.com/tappyimob/tappy-imob/pkg/logger"
	"go.uber.org/zap"
)

const usage = `usage: panel [list | activate <id> | pause <id>]

Environment:
  PANEL_BASE_URL   server to talk to (default http://localhost:8080)
  PANEL_TOKEN      session token of an IMOBILIARIA user
  PANEL_AGENTE_ID  restrict the list to one agente
  PANEL_TIMEOUT    per-request timeout (default 10s)`

func main() {
	conf, err := config.Load("tappy-imob-panel")
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

	if err := run(context.Background(), conf.Panel, os.Args[1:], log); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Println(usage)
			os.Exit(2)
		}
		log.Error("Panel command failed", zap.Error(err))
		os.Exit(1)
	}
}

var errUsage = errors.New("bad arguments")

func run(ctx context.Context, conf config.PanelConfig, args []string, log *zap.Logger) error {
	cmd, id, err := parseArgs(args)
	if err != nil {
		return err
	}
	if conf.Token == "" {
		return errors.New("PANEL_TOKEN is required")
	}

	client := panel.NewClient(conf.BaseURL, conf.Token, log)
	client.AgenteID = conf.AgenteID
	client.HTTPClient.Timeout = conf.Timeout

	p := panel.New(client, log)
	defer p.Close()

	if err := p.Refresh(ctx); err != nil {
		return fmt.Errorf("load integracoes: %w", err)
	}

	switch cmd {
	case "activate":
		err = p.Activate(ctx, id)
	case "pause":
		err = p.Pause(ctx, id)
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", cmd, id, err)
	}

	report(p.State(), log)
	return nil
}

func parseArgs(args []string) (cmd, id string, err error) {
	switch {
	case len(args) == 0:
		return "list", "", nil
	case args[0] == "list" && len(args) == 1:
		return "list", "", nil
	case (args[0] == "activate" || args[0] == "pause") && len(args) == 2 && args[1] != "":
		return args[0], args[1], nil
	}
	return "", "", errUsage
}

func report(s panel.State, log *zap.Logger) {
	switch s.Empty {
	case panel.EmptyNoIntegracoes:
		log.Info("No integracoes configured yet")
		return
	case panel.EmptyNoMatch:
		log.Info("No integracoes match the filters")
		return
	}

	for _, i := range s.Integracoes {
		log.Info("Integracao",
			zap.String("id", i.ID),
			zap.String("nome", i.Nome),
			zap.String("tipo", string(i.Tipo)),
			zap.String("status", string(i.Status)),
			zap.Strings("actions", actionNames(i.Status)))
	}
}

func actionNames(status model.IntegracaoStatus) []string {
	actions := panel.Actions(status)
	names := make([]string, 0, len(actions))
	for _, a := range actions {
		names = append(names, string(a))
	}
	return names
}
