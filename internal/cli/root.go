// Package cli contains the happydash commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"happydash/internal/config"
	"happydash/internal/ui"
)

// Version is the current version of happydash.
var Version = "0.1.0"

// flagKeys maps command-line flags to configuration keys. Only flags the
// user actually set override the file and environment.
var flagKeys = map[string]string{
	"data":          "data_path",
	"geo":           "geo_path",
	"year":          "year",
	"scatter-count": "scatter_count",
	"zoom":          "zoom",
	"log-level":     "log_level",
	"log-file":      "log_file",
	"otlp-endpoint": "otlp_endpoint",
	"trace-stdout":  "trace_stdout",
	"metrics-addr":  "metrics_addr",
}

// state is shared by the root command and its subcommands.
type state struct {
	configPath string
	cfg        *config.Config
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	st := &state{}
	root := &cobra.Command{
		Use:   "happydash",
		Short: "Interactive World Happiness Report dashboard",
		Long: `happydash shows World Happiness Report data as coordinated views in the terminal.

A choropleth map of life ladder scores, one or more scatterplots with
independent filters and a table of selected countries share a single
selection: hover a country anywhere to highlight it everywhere, click to
add its row to the table.

Without --data and --geo the embedded sample files are used.

Examples:
  happydash                                   # Run the dashboard
  happydash --data whr.json --geo world.json  # Use your own files
  happydash export --view map --year 2023 --out map.svg
  happydash table --select Norway:2023 --select Kenya:2023`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Context(), st.configPath, flagOverrides(cmd.Flags()))
			if err != nil {
				return err
			}
			st.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd, st.cfg)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&st.configPath, "config", "", "Path to a YAML config file (default: $"+config.EnvConfigPath+")")
	pf.String("data", "", "Records JSON file (default: embedded sample)")
	pf.String("geo", "", "Country GeoJSON file (default: embedded outlines)")
	pf.Int("year", 0, "Year to show (default: latest in the data)")
	pf.String("log-level", "info", "Log level: debug|info|warn|error")
	pf.String("log-file", "", "Write logs to this file")
	pf.String("otlp-endpoint", "", "Export traces over OTLP/HTTP to host:port")
	pf.String("trace-stdout", "", "Write traces as JSON to this file")
	pf.String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9464")

	root.Flags().Int("scatter-count", 2, fmt.Sprintf("Scatterplots at start (1-%d)", config.MaxScatterCount))
	root.Flags().Float64("zoom", 1, fmt.Sprintf("Initial zoom (%g-%g)", config.MinZoom, config.MaxZoom))

	root.AddCommand(newExportCommand(st), newTableCommand(st))
	return root
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func flagOverrides(fs *pflag.FlagSet) map[string]any {
	out := make(map[string]any)
	fs.Visit(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			out[key] = f.Value.String()
		}
	})
	return out
}

func runDashboard(cmd *cobra.Command, cfg *config.Config) error {
	ctx := cmd.Context()
	rt, err := newRuntime(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer rt.Close(context.WithoutCancel(ctx))

	model := ui.NewAppModel(ctx, cfg, rt.Log, rt.Tracer, rt.Metrics).AsTeaModel()
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		rt.Log.Error("dashboard exited", "error", err)
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
