package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pkg/browser"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sarchlab/stagehand/config"
	"github.com/sarchlab/stagehand/datarecording"
	"github.com/sarchlab/stagehand/idgen"
	"github.com/sarchlab/stagehand/instrumentation/logging"
	"github.com/sarchlab/stagehand/instrumentation/metrics"
	"github.com/sarchlab/stagehand/monitoring"
	"github.com/sarchlab/stagehand/scenario"
)

type runOptions struct {
	envFiles []string
	monitor  bool
	open     bool
	realTime bool
	record   string
}

var runOpts runOptions

var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml>",
	Short: "Run a scenario.",
	Long: `Run a scenario frame by frame. Every lifecycle signal is logged at ` +
		`debug level. With --monitor, the run is served over HTTP and paced ` +
		`in real time so that it can be paused and inspected.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(
			cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return run(ctx, args[0], runOpts)
	},
}

func init() {
	runCmd.Flags().StringSliceVar(&runOpts.envFiles, "env-file", nil,
		".env files to load before reading the environment")
	runCmd.Flags().BoolVar(&runOpts.monitor, "monitor", false,
		"serve the monitor while running")
	runCmd.Flags().BoolVar(&runOpts.open, "open", false,
		"open the monitor in a browser, implies --monitor")
	runCmd.Flags().BoolVar(&runOpts.realTime, "realtime", false,
		"pace the frames in wall-clock time")
	runCmd.Flags().StringVar(&runOpts.record, "record", "",
		"record the lifecycle signals into this SQLite file, without extension")

	rootCmd.AddCommand(runCmd)
}

func run(ctx context.Context, path string, opts runOptions) error {
	cfg, err := config.Load(opts.envFiles...)
	if err != nil {
		return err
	}

	if cfg.ParallelIDs {
		idgen.UseParallelGenerator()
	}

	logger := cfg.Logger(os.Stderr)

	s, err := scenario.Load(path)
	if err != nil {
		return err
	}

	applyConfig(s, cfg)

	monitorOn := opts.monitor || opts.open

	runner, err := scenario.MakeRunnerBuilder().
		WithRealTime(opts.realTime || monitorOn).
		Build(s)
	if err != nil {
		return err
	}
	defer runner.Dispose()

	manager := runner.Manager()
	manager.AcceptHook(logging.NewLogHook(logger, runner.Driver()))

	registry := prometheus.NewRegistry()
	manager.AcceptHook(metrics.NewCollector().MustRegister(registry))

	recordPath := opts.record
	if recordPath == "" {
		recordPath = cfg.RecordPath
	}

	if recordPath != "" {
		finish := startRecording(recordPath, path, runner)
		defer finish()
	}

	if monitorOn {
		stopMonitor, err := startMonitor(cfg, opts, runner, registry, logger)
		if err != nil {
			return err
		}
		defer stopMonitor()
	}

	logger.Info().
		Str("scenario", path).
		Uint64("frames", s.NumFrames()).
		Msg("run started")

	err = runner.Run(ctx)

	for _, snap := range runner.Snapshots() {
		logger.Info().
			Str("slot", snap.ID).
			Str("phase", snap.Phase).
			Str("active", snap.ActiveID).
			Msg("slot at end of run")
	}

	if err != nil {
		logger.Error().Err(err).Msg("run failed")
		return err
	}

	logger.Info().
		Float64("time", float64(runner.Driver().CurrentTime())).
		Msg("run finished")

	return nil
}

// applyConfig fills the frame rate and the stall threshold that the scenario
// leaves unset.
func applyConfig(s *scenario.Scenario, cfg *config.Config) {
	if s.FrameRate == 0 {
		s.FrameRate = cfg.FrameRate
	}

	if s.StallThreshold == 0 {
		s.StallThreshold = cfg.StallThreshold
	}
}

func startRecording(
	recordPath, scenarioPath string,
	runner *scenario.Runner,
) func() {
	recorder := datarecording.New(recordPath)

	runRecorder := datarecording.NewRunRecorder(recorder)
	runRecorder.Start()

	if abs, err := filepath.Abs(scenarioPath); err == nil {
		runRecorder.Set("Scenario", abs)
	}

	runner.Manager().AcceptHook(datarecording.NewLifecycleRecorder(
		recorder, "lifecycle", runner.Driver()))

	return func() {
		runner.Dispose()
		runRecorder.End()

		if err := recorder.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "close recording: %v\n", err)
		}
	}
}

type progressListener struct {
	bar *monitoring.ProgressBar
}

func (l progressListener) FrameDone(_, _ uint64) {
	l.bar.IncrementFinished(1)
}

func startMonitor(
	cfg *config.Config,
	opts runOptions,
	runner *scenario.Runner,
	registry *prometheus.Registry,
	logger zerolog.Logger,
) (func(), error) {
	m := monitoring.NewMonitor().WithPortNumber(cfg.MonitorPort)
	m.RegisterDriver(runner.Driver())
	m.RegisterManager(runner.Manager())
	m.RegisterGatherer(registry)

	bar := m.CreateProgressBar("frames", runner.Scenario().NumFrames())
	runner.AddFrameListener(progressListener{bar: bar})

	url, err := m.StartServer()
	if err != nil {
		return nil, err
	}

	if opts.open {
		if err := browser.OpenURL(url); err != nil {
			logger.Warn().Err(err).Str("url", url).Msg("cannot open browser")
		}
	}

	return func() {
		m.CompleteProgressBar(bar)

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		_ = m.Shutdown(ctx)
	}, nil
}
