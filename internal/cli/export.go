package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"happydash/internal/assets"
	"happydash/internal/chart"
	"happydash/internal/config"
	"happydash/internal/dataset"
	"happydash/internal/filter"
	"happydash/internal/scene"
	"happydash/internal/selection"
	"happydash/internal/telemetry"
)

var (
	ErrUnknownView   = errors.New("unknown view")
	ErrUnknownFormat = errors.New("unknown format")
)

// Views accepted by export.
const (
	ViewMap        = "map"
	ViewScatter    = "scatter"
	ViewLegend     = "legend"
	ViewContinents = "continents"
)

type exportOptions struct {
	View       string
	Format     string
	Out        string
	X, Y       string
	Continent  string
	Regression bool
	Selected   []string
	Width      float64
	Height     float64
	Scale      float64
}

func newExportCommand(st *state) *cobra.Command {
	opts := exportOptions{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a static rendering of one view as SVG or PNG",
		Long: `Render one dashboard view with the same colours and scales as the terminal UI
and write it as SVG or PNG.

Views:
  map         Choropleth of life ladder scores for --year
  scatter     Scatterplot of --x against --y for --year and --continent
  legend      Life ladder gradient legend
  continents  Continent colour legend

Examples:
  happydash export --view map --year 2023 --out map.svg
  happydash export --view scatter --x gpdPerCapita --y lifeLadder --regression --format png --out gdp.png
  happydash export --view map --select Norway:2023 --out -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime(cmd.Context(), st.cfg, true)
			if err != nil {
				return err
			}
			defer rt.Close(context.WithoutCancel(cmd.Context()))

			w, closeOut, err := openOutput(cmd.OutOrStdout(), opts.Out)
			if err != nil {
				return err
			}
			start := time.Now()
			err = runExport(cmd.Context(), rt, st.cfg, opts, w)
			if cerr := closeOut(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			rt.Metrics.ObserveRender(opts.View, time.Since(start))
			rt.Log.Info("exported", "view", opts.View, "format", opts.Format, "out", opts.Out)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.View, "view", ViewMap, "View to render: map|scatter|legend|continents")
	f.StringVar(&opts.Format, "format", "svg", "Output format: svg|png")
	f.StringVarP(&opts.Out, "out", "o", "-", "Output file, - for stdout")
	f.StringVar(&opts.X, "x", dataset.FieldPCA1, "Scatterplot x field")
	f.StringVar(&opts.Y, "y", dataset.FieldPCA2, "Scatterplot y field")
	f.StringVar(&opts.Continent, "continent", filter.AllContinents, "Scatterplot continent filter")
	f.BoolVar(&opts.Regression, "regression", false, "Draw the scatterplot regression line")
	f.StringArrayVar(&opts.Selected, "select", nil, "Mark Country:Year as selected (repeatable)")
	f.Float64Var(&opts.Width, "width", 960, "Canvas width")
	f.Float64Var(&opts.Height, "height", 540, "Canvas height")
	f.Float64Var(&opts.Scale, "scale", 1, "PNG pixel scale")
	return cmd
}

func openOutput(stdout io.Writer, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, f.Close, nil
}

// runExport renders opts.View and writes it to w.
func runExport(ctx context.Context, rt *runtime, cfg *config.Config, opts exportOptions, w io.Writer) error {
	_, span := rt.Tracer.Start(ctx, "export.render",
		telemetry.KeyView.String(opts.View), telemetry.KeyPath.String(opts.Out))
	defer span.End()

	format := strings.ToLower(opts.Format)
	if format != "svg" && format != "png" {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}
	s, err := exportScene(cfg, opts)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if format == "png" {
		return scene.WritePNG(w, s, opts.Scale)
	}
	return scene.WriteSVG(w, s)
}

func exportScene(cfg *config.Config, opts exportOptions) (*scene.Scene, error) {
	switch opts.View {
	case ViewLegend:
		return chart.HappinessLegend(opts.Width, 60), nil
	case ViewContinents:
		return chart.ContinentLegend(opts.Width, 20, nil), nil
	case ViewMap, ViewScatter:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, opts.View)
	}

	ds, err := assets.Dataset(cfg.DataPath)
	if err != nil {
		return nil, err
	}
	year := resolveYear(ds, cfg.Year)
	store := selection.New()
	for _, s := range opts.Selected {
		key, err := parseSelection(s)
		if err != nil {
			return nil, err
		}
		store.Toggle(key.Country, key.Year)
	}

	if opts.View == ViewScatter {
		e := chart.NewScatterEngine(opts.Width, opts.Height)
		e.Regression = opts.Regression
		points := filter.Project(ds.Records(), year, opts.Continent)
		return e.Render(points, opts.X, opts.Y, store)
	}
	g, err := assets.Geography(cfg.GeoPath)
	if err != nil {
		return nil, err
	}
	e := chart.NewMapEngine(opts.Width, opts.Height)
	e.SetGeography(g)
	return e.Render(ds, year, store), nil
}

// resolveYear clamps year into the data, treating 0 as the latest year.
func resolveYear(ds *dataset.Dataset, year int) int {
	if year == 0 {
		_, hi, _ := ds.YearBounds()
		return hi
	}
	return ds.ClampYear(year)
}
