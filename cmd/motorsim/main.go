package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/motorsim/internal/config"
	"github.com/san-kum/motorsim/internal/eng"
	"github.com/san-kum/motorsim/internal/motor"
	"github.com/san-kum/motorsim/internal/store"
	"github.com/san-kum/motorsim/internal/viz"
)

var (
	burnStart  float64
	burnOut    float64
	outPath    string
	motorName  string
	newBurnOut float64
	newImpulse float64
	plotHeight int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "motorsim",
		Short: "rocket motor mass, inertia and thrust modeling",
	}

	infoCmd := &cobra.Command{
		Use:   "info [motor file]",
		Short: "summarize a motor and plot its thrust curve",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}
	infoCmd.Flags().IntVar(&plotHeight, "height", 10, "plot height in rows")
	addWindowFlags(infoCmd)

	exportCmd := &cobra.Command{
		Use:   "export [motor file]",
		Short: "export derived curves as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	exportCmd.Flags().StringVar(&outPath, "out", "", "output path (default stdout)")
	addWindowFlags(exportCmd)

	convertCmd := &cobra.Command{
		Use:   "convert [input] [output]",
		Short: "convert between .eng and .yaml motor files",
		Args:  cobra.ExactArgs(2),
		RunE:  runConvert,
	}
	convertCmd.Flags().StringVar(&motorName, "name", "motor", "motor name written to .eng output")

	reshapeCmd := &cobra.Command{
		Use:   "reshape [motor file]",
		Short: "rescale a thrust curve to a new burn time and total impulse",
		Args:  cobra.ExactArgs(1),
		RunE:  runReshape,
	}
	reshapeCmd.Flags().Float64Var(&newBurnOut, "burn-out", 0, "new burn out time in seconds")
	reshapeCmd.Flags().Float64Var(&newImpulse, "impulse", 0, "new total impulse in N s")
	reshapeCmd.Flags().StringVar(&outPath, "out", "", "output .eng path (default stdout)")
	reshapeCmd.Flags().StringVar(&motorName, "name", "motor", "motor name written to .eng output")

	rootCmd.AddCommand(infoCmd, exportCmd, convertCmd, reshapeCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&burnStart, "burn-start", math.NaN(), "override burn start time in seconds")
	cmd.Flags().Float64Var(&burnOut, "burn-out", math.NaN(), "override burn out time in seconds")
}

func windowOverride() *motor.Window {
	switch {
	case !math.IsNaN(burnStart) && !math.IsNaN(burnOut):
		return motor.Span(burnStart, burnOut)
	case !math.IsNaN(burnOut):
		return motor.Until(burnOut)
	}
	return nil
}

// loadMotor builds a motor from either a .eng thrust file or a YAML
// snapshot, selected by extension.
func loadMotor(path string) (*motor.Generic, error) {
	switch filepath.Ext(path) {
	case eng.Extension:
		return motor.LoadENG(path, motor.ENGOptions{
			CenterOfDryMass: math.NaN(), // default to the chamber position
			BurnWindow:      windowOverride(),
		})
	case ".yaml", ".yml":
		return config.Build(path)
	}
	return nil, fmt.Errorf("unsupported motor file %q: expected .eng or .yaml", path)
}

func reportAdjustment(g *motor.Generic) {
	if adj := g.Adjustment(); adj != nil {
		fmt.Fprintln(os.Stderr, viz.Warn.Render("warning: "+adj.String()))
	}
}

func runInfo(cmd *cobra.Command, args []string) error {
	g, err := loadMotor(args[0])
	if err != nil {
		return err
	}
	reportAdjustment(g)

	ratio, err := g.StructuralMassRatio()
	if err != nil {
		return err
	}

	fmt.Println(viz.Title.Render("Motor " + strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	row := func(label, format string, v ...any) {
		fmt.Fprintf(w, "%s\t%s\n", viz.Label.Render(label), viz.Value.Render(fmt.Sprintf(format, v...)))
	}
	row("burn time", "(%.3f, %.3f) s", g.BurnStart(), g.BurnOut())
	row("total impulse", "%.1f N s", g.TotalImpulse())
	row("average thrust", "%.1f N", g.AverageThrust())
	row("max thrust", "%.1f N at %.3f s", g.MaxThrust(), g.MaxThrustTime())
	row("exhaust velocity", "%.1f m/s", g.ExhaustVelocity().At(g.BurnStart()))
	row("propellant mass", "%.4f kg", g.InitialMass())
	row("dry mass", "%.4f kg", g.DryMass())
	row("structural mass ratio", "%.4f", ratio)
	row("center of mass at ignition", "%.4f m", g.CenterOfMass().At(g.BurnStart()))
	row("center of mass at burnout", "%.4f m", g.CenterOfMass().At(g.BurnOut()))
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(viz.Plot(g.Thrust(), g.BurnStart(), g.BurnOut(), plotHeight))
	fmt.Println()
	fmt.Println(viz.Plot(g.TotalMass(), g.BurnStart(), g.BurnOut(), plotHeight))
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	g, err := loadMotor(args[0])
	if err != nil {
		return err
	}
	reportAdjustment(g)

	name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	if outPath == "" {
		return store.WriteJSON(os.Stdout, name, g)
	}
	return store.ExportJSON(outPath, name, g)
}

func runConvert(cmd *cobra.Command, args []string) error {
	in, out := args[0], args[1]
	g, err := loadMotor(in)
	if err != nil {
		return err
	}
	reportAdjustment(g)

	switch filepath.Ext(out) {
	case ".yaml", ".yml":
		snap, err := g.Snapshot(true)
		if err != nil {
			return err
		}
		return config.Save(out, snap)
	case eng.Extension:
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		missing, err := g.ExportENG(f, motorName)
		if missing {
			fmt.Fprintln(os.Stderr, viz.Warn.Render("warning: chamber geometry unavailable, wrote zeros to description"))
		}
		return err
	}
	return fmt.Errorf("unsupported output %q: expected .eng or .yaml", out)
}

func runReshape(cmd *cobra.Command, args []string) error {
	if newBurnOut <= 0 || newImpulse <= 0 {
		return fmt.Errorf("reshape requires positive --burn-out and --impulse")
	}
	g, err := loadMotor(args[0])
	if err != nil {
		return err
	}

	snap, err := g.Snapshot(false)
	if err != nil {
		return err
	}
	snap.BurnTime = nil
	snap.Reshape = &motor.ReshapeSnapshot{
		BurnTime:     []float64{newBurnOut},
		TotalImpulse: newImpulse,
	}
	reshaped, err := motor.FromSnapshot(snap)
	if err != nil {
		return err
	}

	w := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	missing, err := reshaped.ExportENG(w, motorName)
	if missing {
		fmt.Fprintln(os.Stderr, viz.Warn.Render("warning: chamber geometry unavailable, wrote zeros to description"))
	}
	return err
}
