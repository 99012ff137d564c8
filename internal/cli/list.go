package cli

import (
	"github.com/spf13/cobra"
	"github.com/stakewise/proxy-deployer/internal/cli/render"
	"github.com/stakewise/proxy-deployer/internal/domain"
	"github.com/stakewise/proxy-deployer/internal/usecase"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var (
		kind          string
		allNamespaces bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List deployed proxies from the registry",
		Long: `List the proxies recorded in .deployer/deployments.json.

Results are limited to the current namespace and, when --network is set,
to that chain.`,
		Example: `  # List proxies of the current namespace on every chain
  proxy-deployer list

  # List ValidatorsRegistry proxies of all namespaces on sepolia
  proxy-deployer list -n sepolia --kind validators-registry --all-namespaces`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.ListDeploymentsParams{AllNamespaces: allNamespaces}
			if kind != "" {
				if params.Kind, err = domain.ParseProxyKind(kind); err != nil {
					return err
				}
			}

			proxies, err := app.ListDeployments.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return render.NewDeploymentsRenderer(cmd.OutOrStdout()).Render(proxies)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Filter by proxy kind (pools, privates, validators-registry)")
	cmd.Flags().BoolVar(&allNamespaces, "all-namespaces", false, "Include every namespace")

	return cmd
}
