package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stakewise/proxy-deployer/internal/cli/render"
	"github.com/stakewise/proxy-deployer/internal/domain"
	"github.com/stakewise/proxy-deployer/internal/usecase"
)

// NewDeployCmd creates the deploy command group
func NewDeployCmd() *cobra.Command {
	deployCmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy upgradeable proxies",
		Long: `Deploy the Pools, Privates and ValidatorsRegistry proxies through CreateX.

Dependency addresses default to the [networks.<network>] section of
deployer.toml and can be overridden with flags.`,
	}

	deployCmd.AddCommand(
		newDeployCollectorCmd(domain.ProxyKindPools),
		newDeployCollectorCmd(domain.ProxyKindPrivates),
		newDeployRegistryCmd(),
		newDeployAllCmd(),
	)

	return deployCmd
}

// newDeployCollectorCmd creates "deploy pools" and "deploy privates"
func newDeployCollectorCmd(kind domain.ProxyKind) *cobra.Command {
	var (
		addresses usecase.AddressOverrides
		salt      usecase.SaltSpec
		registry  usecase.SaltSpec
	)

	cmd := &cobra.Command{
		Use:   kind.String(),
		Short: fmt.Sprintf("Deploy the %s proxy", kind.LogicalName()),
		Example: fmt.Sprintf(`  # Deploy with inputs from deployer.toml
  proxy-deployer deploy %[1]s --network sepolia

  # Override the validators registry and pick a salt entropy
  proxy-deployer deploy %[1]s -n sepolia --validators-registry 0x... --entropy v2/%[2]s`, kind, kind.Alias()),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			_, err = app.DeploySingle.Run(cmd.Context(), usecase.DeploySingleParams{
				Kind:         kind,
				Addresses:    addresses,
				Salt:         salt,
				RegistrySalt: registry,
			})
			return err
		},
	}

	addCollectorInputFlags(cmd.Flags(), &addresses)
	addSaltFlags(cmd.Flags(), &salt, "", "the proxy")
	addSaltFlags(cmd.Flags(), &registry, "registry-", "the predicted validators registry")

	return cmd
}

// newDeployRegistryCmd creates "deploy validators-registry"
func newDeployRegistryCmd() *cobra.Command {
	var (
		addresses usecase.AddressOverrides
		salt      usecase.SaltSpec
	)

	kind := domain.ProxyKindValidatorsRegistry
	cmd := &cobra.Command{
		Use:   kind.String(),
		Short: fmt.Sprintf("Deploy the %s proxy", kind.LogicalName()),
		Long: `Deploy the ValidatorsRegistry proxy. The Pools and Privates addresses come
from flags or from proxies already recorded for the network and namespace.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			_, err = app.DeploySingle.Run(cmd.Context(), usecase.DeploySingleParams{
				Kind:      kind,
				Addresses: addresses,
				Salt:      salt,
			})
			return err
		},
	}

	cmd.Flags().StringVar(&addresses.Pools, "pools", "", "Pools proxy address (defaults to the recorded deployment)")
	cmd.Flags().StringVar(&addresses.Privates, "privates", "", "Privates proxy address (defaults to the recorded deployment)")
	cmd.Flags().StringVar(&addresses.Settings, "settings", "", "Settings contract address")
	addSaltFlags(cmd.Flags(), &salt, "", "the proxy")

	return cmd
}

// newDeployAllCmd creates "deploy all"
func newDeployAllCmd() *cobra.Command {
	var (
		addresses    usecase.AddressOverrides
		skipExisting bool
		out          string
		salts        = map[domain.ProxyKind]*usecase.SaltSpec{
			domain.ProxyKindPools:              {},
			domain.ProxyKindPrivates:           {},
			domain.ProxyKindValidatorsRegistry: {},
		}
	)

	cmd := &cobra.Command{
		Use:   "all",
		Short: "Deploy Pools, Privates and ValidatorsRegistry in dependency order",
		Example: `  # Full rollout, reusing proxies already deployed on this chain
  proxy-deployer deploy all -n sepolia --skip-existing

  # Write a report of the deployed addresses
  proxy-deployer deploy all -n mainnet --out deployments/mainnet.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.DeployStack.Run(cmd.Context(), usecase.DeployStackParams{
				Addresses:    addresses,
				Salts:        saltSpecs(salts),
				SkipExisting: skipExisting,
			})
			if err != nil {
				return err
			}

			if err := render.NewStackRenderer(cmd.OutOrStdout()).Render(result); err != nil {
				return err
			}

			if out != "" && result != nil {
				if err := render.WriteReport(out, render.NewStackReport(result)); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), render.FormatSuccess("Report written to "+out))
			}
			return nil
		},
	}

	addCollectorInputFlags(cmd.Flags(), &addresses)
	addStackSaltFlags(cmd.Flags(), salts)
	cmd.Flags().BoolVar(&skipExisting, "skip-existing", false, "Reuse proxies already recorded for this network and namespace")
	cmd.Flags().StringVar(&out, "out", "", "Write a deployment report (.json, .yaml or .yml)")

	return cmd
}

func addCollectorInputFlags(flags *pflag.FlagSet, addresses *usecase.AddressOverrides) {
	flags.StringVar(&addresses.Deposits, "deposits", "", "Deposits contract address")
	flags.StringVar(&addresses.Settings, "settings", "", "Settings contract address")
	flags.StringVar(&addresses.Operators, "operators", "", "Operators contract address")
	flags.StringVar(&addresses.VRC, "vrc", "", "Validator registration contract address")
	flags.StringVar(&addresses.ValidatorsRegistry, "validators-registry", "", "ValidatorsRegistry proxy address (predicted when unset)")
}

func addSaltFlags(flags *pflag.FlagSet, spec *usecase.SaltSpec, prefix, target string) {
	flags.StringVar(&spec.Salt, prefix+"salt", "", fmt.Sprintf("32 byte hex salt for %s", target))
	flags.StringVar(&spec.Entropy, prefix+"entropy", "", fmt.Sprintf("Salt entropy for %s", target))
}

func addStackSaltFlags(flags *pflag.FlagSet, salts map[domain.ProxyKind]*usecase.SaltSpec) {
	addSaltFlags(flags, salts[domain.ProxyKindPools], "pools-", "the Pools proxy")
	addSaltFlags(flags, salts[domain.ProxyKindPrivates], "privates-", "the Privates proxy")
	addSaltFlags(flags, salts[domain.ProxyKindValidatorsRegistry], "registry-", "the ValidatorsRegistry proxy")
}

// saltSpecs drops empty specs so configured and default salts apply
func saltSpecs(salts map[domain.ProxyKind]*usecase.SaltSpec) map[domain.ProxyKind]usecase.SaltSpec {
	specs := make(map[domain.ProxyKind]usecase.SaltSpec)
	for kind, spec := range salts {
		if spec.Salt != "" || spec.Entropy != "" {
			specs[kind] = *spec
		}
	}
	return specs
}
