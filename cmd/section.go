package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexiusacademia/gobeam/internal/nscp"
	"github.com/alexiusacademia/gobeam/internal/section"
)

// sectionOptions are the flags that describe a cross-section. They are
// shared by the section and analyze commands.
type sectionOptions struct {
	file    string
	width   float64
	height  float64
	fc      float64
	e       float64
	cracked bool
	factor  float64
}

func (o *sectionOptions) bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.file, "section", "", "Path to section JSON file (polygon vertices in mm)")
	fs.Float64VarP(&o.width, "width", "b", 0, "Rectangular section width (mm)")
	fs.Float64Var(&o.height, "height", 0, "Rectangular section depth (mm)")
	fs.Float64Var(&o.fc, "fc", 28, "Concrete compressive strength f'c (MPa), used when --e is not given")
	fs.Float64Var(&o.e, "e", 0, "Modulus of elasticity E (MPa), overrides f'c")
	fs.BoolVar(&o.cracked, "cracked", false, fmt.Sprintf("Use cracked inertia (%.2f Ig)", nscp.CrackedInertiaFactor))
	fs.Float64Var(&o.factor, "inertia-factor", 0, "Multiplier on the gross moment of inertia (0 < f ≤ 1)")
}

// given reports whether any geometry was supplied
func (o *sectionOptions) given() bool {
	return o.file != "" || o.width > 0 || o.height > 0
}

// build returns the section described by the flags
func (o *sectionOptions) build() (*section.Section, error) {
	var sec *section.Section
	switch {
	case o.file != "":
		s, err := section.LoadFromFile(o.file)
		if err != nil {
			return nil, fmt.Errorf("load section: %w", err)
		}
		sec = s
	case o.width > 0 && o.height > 0:
		sec = section.Rectangle(fmt.Sprintf("%.0f x %.0f", o.width, o.height), o.width, o.height)
		sec.Fc = o.fc
	default:
		return nil, fmt.Errorf("a section needs --section or both --width and --height")
	}

	if o.e > 0 {
		sec.E = o.e
	}
	if sec.E == 0 && sec.Fc == 0 {
		sec.Fc = o.fc
	}
	switch {
	case o.factor > 0:
		sec.InertiaFactor = o.factor
	case o.cracked:
		sec.InertiaFactor = nscp.CrackedInertiaFactor
	}

	if err := sec.Validate(); err != nil {
		return nil, err
	}
	return sec, nil
}

var sectionOpts sectionOptions

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Compute section properties and flexural rigidity",
	Long: `Compute the geometric properties of a polygon or rectangular
cross-section and its flexural rigidity EI for beam analysis.

The modulus is taken from --e, or from f'c as Ec = 4700√f'c (NSCP 2015).

Example JSON file structure:
{
  "name": "T-Beam Section",
  "fc": 28,
  "inertia_factor": 0.35,
  "vertices": [
    {"x": 0, "y": 0},
    {"x": 300, "y": 0},
    {"x": 300, "y": 400},
    {"x": 600, "y": 400},
    {"x": 600, "y": 500},
    {"x": 0, "y": 500}
  ]
}

Examples:
  gobeam section --width 300 --height 500 --fc 28
  gobeam section --section t-beam.json --cracked`,
	RunE: runSection,
}

func init() {
	rootCmd.AddCommand(sectionCmd)
	sectionOpts.bind(sectionCmd.Flags())
}

func runSection(cmd *cobra.Command, args []string) error {
	sec, err := sectionOpts.build()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "              SECTION PROPERTIES - NSCP 2015")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)
	if sec.Name != "" {
		fmt.Fprintf(out, "  Section: %s\n", sec.Name)
	}
	if sec.Description != "" {
		fmt.Fprintf(out, "  Description: %s\n", sec.Description)
	}
	fmt.Fprintln(out)

	printSection(out, sec)
	return nil
}

func printSection(out io.Writer, sec *section.Section) {
	props := sec.CalculateProperties()

	fmt.Fprintln(out, "SECTION GEOMETRY:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Width (max):\t%.0f mm\n", props.Width)
	fmt.Fprintf(w, "  Height:\t%.0f mm\n", props.Height)
	fmt.Fprintf(w, "  Gross Area:\t%.0f mm²\n", props.Area)
	fmt.Fprintf(w, "  Centroid (x, y):\t(%.1f, %.1f) mm\n", props.CentroidX, props.CentroidY)
	fmt.Fprintf(w, "  Vertices:\t%d points\n", len(sec.Vertices))
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprintln(out, "STIFFNESS:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Gross inertia (Ig):\t%.4e mm⁴\n", props.Ix)
	fmt.Fprintf(w, "  Section modulus (top):\t%.4e mm³\n", props.SectionModulusTop)
	fmt.Fprintf(w, "  Section modulus (bottom):\t%.4e mm³\n", props.SectionModulusBottom)
	if sec.InertiaFactor > 0 && sec.InertiaFactor != 1 {
		fmt.Fprintf(w, "  Effective inertia (%.2f Ig):\t%.4e mm⁴\n", sec.InertiaFactor, sec.EffectiveInertia())
	}
	if sec.E > 0 {
		fmt.Fprintf(w, "  E:\t%.0f MPa\n", sec.Modulus())
	} else {
		fmt.Fprintf(w, "  Ec = 4700√f'c (f'c = %.1f MPa):\t%.0f MPa\n", sec.Fc, sec.Modulus())
	}
	fmt.Fprintf(w, "  Flexural rigidity (EI):\t%.4f kN·m²\n", sec.FlexuralRigidity())
	w.Flush()
	fmt.Fprintln(out)
}
