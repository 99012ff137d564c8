package app

import (
	"log/slog"

	"github.com/stakewise/proxy-deployer/internal/domain/config"
	"github.com/stakewise/proxy-deployer/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Use cases
	DeployProxy      *usecase.DeployProxy
	DeploySingle     *usecase.DeploySingle
	DeployStack      *usecase.DeployStack
	PredictAddresses *usecase.PredictAddresses
	ListDeployments  *usecase.ListDeployments
	ListNetworks     *usecase.ListNetworks
	ShowConfig       *usecase.ShowConfig
	SetConfig        *usecase.SetConfig
	RemoveConfig     *usecase.RemoveConfig
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	deployProxy *usecase.DeployProxy,
	deploySingle *usecase.DeploySingle,
	deployStack *usecase.DeployStack,
	predictAddresses *usecase.PredictAddresses,
	listDeployments *usecase.ListDeployments,
	listNetworks *usecase.ListNetworks,
	showConfig *usecase.ShowConfig,
	setConfig *usecase.SetConfig,
	removeConfig *usecase.RemoveConfig,
) (*App, error) {
	return &App{
		Config:           cfg,
		Log:              log,
		DeployProxy:      deployProxy,
		DeploySingle:     deploySingle,
		DeployStack:      deployStack,
		PredictAddresses: predictAddresses,
		ListDeployments:  listDeployments,
		ListNetworks:     listNetworks,
		ShowConfig:       showConfig,
		SetConfig:        setConfig,
		RemoveConfig:     removeConfig,
	}, nil
}
