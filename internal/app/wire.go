//go:build wireinject
// +build wireinject

package app

import (
	"io"

	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/stakewise/proxy-deployer/internal/adapters"
	"github.com/stakewise/proxy-deployer/internal/cli/render"
	"github.com/stakewise/proxy-deployer/internal/config"
	"github.com/stakewise/proxy-deployer/internal/logging"
	"github.com/stakewise/proxy-deployer/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink, out io.Writer) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Output
		render.NewReporter,
		wire.Bind(new(usecase.DeploymentReporter), new(*render.Reporter)),

		// Use cases
		usecase.NewDeployProxy,
		usecase.NewSaltResolver,
		usecase.NewDeploySingle,
		usecase.NewDeployStack,
		usecase.NewPredictAddresses,
		usecase.NewListDeployments,
		usecase.NewListNetworks,
		usecase.NewShowConfig,
		usecase.NewSetConfig,
		usecase.NewRemoveConfig,

		// App
		NewApp,
	)
	return nil, nil
}
