package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/efield/charge"
	"github.com/lixenwraith/efield/format"
	"github.com/lixenwraith/efield/logging"
	"github.com/lixenwraith/efield/physics"
)

func (c *cli) reportCmd() *cobra.Command {
	var specs []string
	var plain bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the force report for a set of charges",
		Example: `  efield report --charge 3,0,1
  efield report --charge=-2,1,-5e-6 --charge 0,3,2e-6 --central 1e-6 --plain`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := charge.NewStore(c.cfg.StoreOptions())
			for _, spec := range specs {
				ch, err := parseCharge(spec)
				if err != nil {
					return err
				}
				if _, err := store.AddAt(ch); err != nil {
					return fmt.Errorf("charge %q: %w", spec, err)
				}
			}

			rep := physics.Evaluate(c.cfg.Central(), store.Snapshot(), c.cfg.PhysicsParams())
			logging.GetLogger().Debug("report computed",
				zap.Int("charges", store.Len()),
				zap.Int("undefined", rep.Undefined()),
				zap.Float64("net", rep.NetMagnitude),
			)

			opts := format.DefaultOptions()
			opts.Plain = plain
			_, err := fmt.Fprint(cmd.OutOrStdout(), format.Text(rep, opts))
			return err
		},
	}
	cmd.Flags().StringArrayVar(&specs, "charge", nil, "charge as x,y,q in world units and coulombs, repeatable")
	cmd.Flags().BoolVar(&plain, "plain", false, "ASCII exponents such as 1.00e9")
	return cmd
}

// parseCharge reads "x,y,q"; positions outside the bounds are clamped by the store
func parseCharge(spec string) (charge.Charge, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 3 {
		return charge.Charge{}, fmt.Errorf("%w: charge %q must be x,y,q", charge.ErrValidation, spec)
	}
	var vals [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return charge.Charge{}, fmt.Errorf("%w: charge %q: %q is not a number", charge.ErrValidation, spec, p)
		}
		vals[i] = v
	}
	return charge.Charge{X: vals[0], Y: vals[1], Q: vals[2]}, nil
}
