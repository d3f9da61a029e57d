package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/lixenwraith/efield/config"
	"github.com/lixenwraith/efield/logging"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "dev"

// cli carries state shared by the commands of one invocation
type cli struct {
	v         *viper.Viper
	cfgFile   string
	debug     bool
	cfg       *config.Config
	newScreen func() (tcell.Screen, error)
}

func newCLI() *cli {
	v := viper.New()
	config.SetDefaults(v)
	return &cli{v: v, newScreen: tcell.NewScreen}
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "efield",
		Short: "Explore electrostatic forces on a central charge in the terminal",
		Long: `efield places point charges around a fixed central charge and shows the
Coulomb force each one exerts on it, together with the net force.

Run without a subcommand to open the interactive view.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		RunE:              c.runInteractive,
	}
	root.SetVersionTemplate(`{{printf "efield %s\n" .Version}}`)

	pf := root.PersistentFlags()
	pf.StringVarP(&c.cfgFile, "config", "c", "", "config file (default ./efield.toml)")
	pf.BoolVar(&c.debug, "debug", false, "write debug logs to the log file")
	pf.Float64("central", 0, "magnitude of the central charge in coulombs")
	pf.Int("max-charges", 0, "maximum number of charges, 0 for no limit")
	pf.String("sign-policy", "", "magnitude edits: preserve or literal")
	// Lookup never returns nil for flags declared above
	_ = c.v.BindPFlag("physics.central_charge", pf.Lookup("central"))
	_ = c.v.BindPFlag("store.max_charges", pf.Lookup("max-charges"))
	_ = c.v.BindPFlag("store.sign_policy", pf.Lookup("sign-policy"))

	root.AddCommand(c.runCmd(), c.reportCmd(), c.versionCmd())
	return root
}

// setup reads configuration and starts logging before any command runs
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if err := c.readConfig(); err != nil {
		return err
	}
	cfg, err := config.Load(c.v)
	if err != nil {
		return err
	}
	if c.debug {
		cfg.Logger.Enabled = true
		cfg.Logger.Level = "debug"
	}
	c.cfg = cfg

	logging.Initialize(cfg.Logger)
	logging.GetLogger().Info("starting efield",
		zap.String("version", Version),
		zap.String("command", cmd.Name()),
		zap.String("config_file", c.v.ConfigFileUsed()),
	)
	return nil
}

// readConfig loads efield.toml and EFIELD_ environment variables
// A missing default config file is not an error; a missing explicit one is
func (c *cli) readConfig() error {
	if c.cfgFile != "" {
		c.v.SetConfigFile(c.cfgFile)
	} else {
		c.v.AddConfigPath(".")
		c.v.SetConfigName("efield")
		c.v.SetConfigType("toml")
	}

	c.v.SetEnvPrefix("EFIELD")
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	c.v.AutomaticEnv()

	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "efield %s\n", Version)
		},
	}
}
