package app

import (
	"log/slog"

	"github.com/trebuchet-org/deployledger/internal/domain/config"
	"github.com/trebuchet-org/deployledger/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Shared dependencies
	Chains   usecase.ChainRegistry
	Dialer   usecase.ChainDialer
	Selector usecase.ChainSelector
	Plans    usecase.PlanReader
	Progress usecase.ProgressSink

	// Use cases
	RegisterContract *usecase.RegisterContract
	VerifyContract   *usecase.VerifyContract
	GenerateTables   *usecase.GenerateTables
	UpdateRecord     *usecase.UpdateRecord
	ApplyPlan        *usecase.ApplyPlan
	ExportAddresses  *usecase.ExportAddresses
	ShowRecord       *usecase.ShowRecord
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	chains usecase.ChainRegistry,
	dialer usecase.ChainDialer,
	selector usecase.ChainSelector,
	plans usecase.PlanReader,
	progress usecase.ProgressSink,
	registerContract *usecase.RegisterContract,
	verifyContract *usecase.VerifyContract,
	generateTables *usecase.GenerateTables,
	updateRecord *usecase.UpdateRecord,
	applyPlan *usecase.ApplyPlan,
	exportAddresses *usecase.ExportAddresses,
	showRecord *usecase.ShowRecord,
) (*App, error) {
	return &App{
		Config:           cfg,
		Log:              log,
		Chains:           chains,
		Dialer:           dialer,
		Selector:         selector,
		Plans:            plans,
		Progress:         progress,
		RegisterContract: registerContract,
		VerifyContract:   verifyContract,
		GenerateTables:   generateTables,
		UpdateRecord:     updateRecord,
		ApplyPlan:        applyPlan,
		ExportAddresses:  exportAddresses,
		ShowRecord:       showRecord,
	}, nil
}
