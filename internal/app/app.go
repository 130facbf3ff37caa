package app

import (
	"github.com/Prakash-Shridharan/handshake/internal/config"
	"github.com/Prakash-Shridharan/handshake/internal/ledger"
	"github.com/Prakash-Shridharan/handshake/internal/utils"
)

/*
App wires the process-wide dependencies: configuration and the in-memory
marketplace ledger. There is no database; the ledger is the store.
*/
type App struct {
	Config *config.Config
	Ledger *ledger.Ledger
}

func NewApp(cfg *config.Config) *App {
	l := ledger.New()

	if cfg.LDFlag_SeedDemoData {
		utils.Logger.Info("seed_demo_data flag is on, seeding demo marketplace data")
		SeedDemoData(l)
	}

	return &App{
		Config: cfg,
		Ledger: l,
	}
}

func (a *App) Close() {
	a.Config.Close()
}
