//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/deployledger/internal/adapters"
	"github.com/trebuchet-org/deployledger/internal/config"
	"github.com/trebuchet-org/deployledger/internal/logging"
	"github.com/trebuchet-org/deployledger/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewGenerateTables,
		usecase.NewRegisterContract,
		usecase.NewVerifyContract,
		usecase.NewUpdateRecord,
		usecase.NewApplyPlan,
		usecase.NewExportAddresses,
		usecase.NewShowRecord,

		// App
		NewApp,
	)
	return nil, nil
}
