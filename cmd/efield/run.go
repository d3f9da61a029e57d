package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/efield/audio"
	"github.com/lixenwraith/efield/engine"
	"github.com/lixenwraith/efield/logging"
)

func (c *cli) runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the interactive view (default)",
		Args:  cobra.NoArgs,
		RunE:  c.runInteractive,
	}
	cmd.Flags().Bool("audio", false, "play cues for add, delete, clear and errors")
	_ = c.v.BindPFlag("audio.enabled", cmd.Flags().Lookup("audio"))
	return cmd
}

func (c *cli) runInteractive(_ *cobra.Command, _ []string) error {
	log := logging.GetLogger()
	defer logging.Sync()

	player, err := audio.New(c.cfg.AudioSettings())
	if err != nil {
		log.Warn("audio unavailable, continuing without sound", zap.Error(err))
	}
	defer player.Close()

	app, err := engine.New(c.cfg, player, log)
	if err != nil {
		return err
	}

	screen, err := c.newScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	return app.Run(screen)
}
