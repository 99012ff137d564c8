package cli

import (
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/stakewise/proxy-deployer/internal/cli/render"
	"github.com/stakewise/proxy-deployer/internal/domain"
	"github.com/stakewise/proxy-deployer/internal/usecase"
)

// NewPredictCmd creates the predict command
func NewPredictCmd() *cobra.Command {
	salts := map[domain.ProxyKind]*usecase.SaltSpec{
		domain.ProxyKindPools:              {},
		domain.ProxyKindPrivates:           {},
		domain.ProxyKindValidatorsRegistry: {},
	}

	cmd := &cobra.Command{
		Use:   "predict [kind...]",
		Short: "Show the addresses proxies will be deployed to",
		Long: `Compute the CreateX CREATE3 addresses of the proxies for the current sender
and salts without broadcasting. Kinds are pools, privates and
validators-registry; all of them are shown by default.`,
		ValidArgs: lo.Map(domain.AllProxyKinds(), func(k domain.ProxyKind, _ int) string { return k.String() }),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			kinds, err := parseKinds(args)
			if err != nil {
				return err
			}

			predictions, err := app.PredictAddresses.Run(cmd.Context(), usecase.PredictAddressesParams{
				Kinds: kinds,
				Salts: saltSpecs(salts),
			})
			if err != nil {
				return err
			}

			return render.NewPredictionsRenderer(cmd.OutOrStdout()).Render(app.Config.Network, predictions)
		},
	}

	addStackSaltFlags(cmd.Flags(), salts)

	return cmd
}

// parseKinds parses CLI kind names, dropping duplicates
func parseKinds(args []string) ([]domain.ProxyKind, error) {
	kinds := make([]domain.ProxyKind, 0, len(args))
	for _, arg := range args {
		kind, err := domain.ParseProxyKind(arg)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}
	return lo.Uniq(kinds), nil
}
