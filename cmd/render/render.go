package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sr-consultoria/farmreport/internal/app"
	"github.com/sr-consultoria/farmreport/internal/reportdata"
	"github.com/sr-consultoria/farmreport/internal/reportgen"
)

type renderCmd struct {
	input        string
	output       string
	html         bool
	kind         string
	validateOnly bool
	sample       bool
	logoPath     string
	chartEngine  string
	timeout      time.Duration

	stdout io.Writer
	stderr io.Writer
	now    func() time.Time
	config func() (*app.Config, error)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	return newCommand(&renderCmd{stdout: stdout, stderr: stderr, now: time.Now, config: app.LoadConfig})
}

func newCommand(rc *renderCmd) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "render",
		Short:         "Render a farm report from a ReportData JSON file",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          rc.run,
	}
	cmd.SetOut(rc.stdout)
	cmd.SetErr(rc.stderr)

	cmd.Flags().StringVarP(&rc.input, "input", "i", "", "ReportData JSON file, - for stdin")
	cmd.Flags().StringVarP(&rc.output, "output", "o", "", "output file, - for stdout (default report.<ext>)")
	cmd.Flags().BoolVar(&rc.html, "html", false, "emit the HTML document (same as --kind html)")
	cmd.Flags().StringVar(&rc.kind, "kind", string(reportgen.KindPDF), "output kind: pdf, html or html.pdf")
	cmd.Flags().BoolVar(&rc.validateOnly, "validate-only", false, "only validate the input")
	cmd.Flags().BoolVar(&rc.sample, "sample", false, "write the built-in sample ReportData JSON and exit")
	cmd.Flags().StringVar(&rc.logoPath, "logo", "", "logo PNG path (default LOGO_PATH)")
	cmd.Flags().StringVar(&rc.chartEngine, "chart-engine", "", "HTML chart engine: svg or chartjs (default CHART_ENGINE)")
	cmd.Flags().DurationVar(&rc.timeout, "timeout", 2*time.Minute, "overall deadline")
	return cmd
}

func (rc *renderCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, rc.timeout)
	defer cancel()

	if rc.sample {
		return rc.writeSample()
	}
	if rc.input == "" {
		return errors.New("render: --input is required")
	}
	kind := reportgen.Kind(rc.kind)
	if rc.html {
		kind = reportgen.KindHTML
	}
	if _, err := reportgen.ParseKind(string(kind)); err != nil {
		return err
	}

	data, err := rc.readInput()
	if err != nil {
		return err
	}
	if err := reportdata.Validate(data); err != nil {
		rc.printProblems(err)
		return err
	}
	if rc.validateOnly {
		sections := data.PresentSections()
		names := make([]string, len(sections))
		for i, s := range sections {
			names[i] = string(s)
		}
		_, _ = fmt.Fprintf(rc.stdout, "valid: %s\n", strings.Join(names, ", "))
		return nil
	}

	cfg, err := rc.loadConfig(kind)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(rc.stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	stack, err := app.NewReportStack(cfg, app.ReportDeps{Logger: logger})
	if err != nil {
		return err
	}
	stack.Generator.WithNow(rc.now)
	stack.HTML.WithNow(rc.now)

	res, err := stack.Service.Generate(ctx, kind, data)
	if err != nil {
		return err
	}
	return rc.writeOutput(kind, res.Body)
}

// loadConfig reads the environment, relaxing rasterizer checks for kinds
// that never start a browser.
func (rc *renderCmd) loadConfig(kind reportgen.Kind) (*app.Config, error) {
	cfg, err := rc.config()
	if err != nil {
		if kind == reportgen.KindHTMLPDF {
			return nil, err
		}
		cfg = &app.Config{Rasterizer: app.RasterizerGotenberg, ChartEngine: "svg", LogFormat: "pretty", ChartsReadyTimeout: 15 * time.Second}
	}
	if rc.logoPath != "" {
		cfg.LogoPath = rc.logoPath
	}
	if rc.chartEngine != "" {
		cfg.ChartEngine = strings.ToLower(rc.chartEngine)
	}
	return cfg, nil
}

func (rc *renderCmd) readInput() (*reportdata.ReportData, error) {
	var r io.Reader
	if rc.input == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(rc.input)
		if err != nil {
			return nil, fmt.Errorf("render: open input: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	var data reportdata.ReportData
	dec := json.NewDecoder(r)
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("render: decode input: %w", err)
	}
	return &data, nil
}

func (rc *renderCmd) printProblems(err error) {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			_, _ = fmt.Fprintf(rc.stderr, "invalid: %v\n", e)
		}
		return
	}
	_, _ = fmt.Fprintf(rc.stderr, "invalid: %v\n", err)
}

func (rc *renderCmd) writeSample() error {
	raw, err := json.MarshalIndent(reportdata.Sample(rc.now()), "", "  ")
	if err != nil {
		return err
	}
	raw = append(raw, '\n')
	if rc.output == "" || rc.output == "-" {
		_, err = rc.stdout.Write(raw)
		return err
	}
	return os.WriteFile(rc.output, raw, 0o644)
}

func (rc *renderCmd) writeOutput(kind reportgen.Kind, body []byte) error {
	path := rc.output
	if path == "" {
		path = "report" + kind.Extension()
	}
	if path == "-" {
		_, err := rc.stdout.Write(body)
		return err
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("render: write output: %w", err)
	}
	_, _ = fmt.Fprintf(rc.stderr, "wrote %s (%d bytes)\n", path, len(body))
	return nil
}
