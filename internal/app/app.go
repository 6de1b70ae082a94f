// SPDX-License-Identifier: MIT

// Package app wires the command line to a simulation run.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/YoshaTogame/TER/config"
	"github.com/YoshaTogame/TER/flux"
	"github.com/YoshaTogame/TER/mesh"
	"github.com/YoshaTogame/TER/output"
	"github.com/YoshaTogame/TER/physics"
	"github.com/YoshaTogame/TER/probe"
	"github.com/YoshaTogame/TER/simulation"
	"github.com/YoshaTogame/TER/timescheme"
)

// Exit codes.
const (
	ExitOK     = 0
	ExitRun    = 1 // the run or the upload failed
	ExitConfig = 2 // bad flags, configuration or case setup
)

const (
	runIDLayout = "20060102T150405Z"
	defaultEnv  = ".env"
)

type options struct {
	config    string
	envFile   string
	results   string
	scheme    string
	flux      string
	verbosity int
	upload    bool
	runID     string
}

func newFlagSet(o *options) *flag.FlagSet {
	fs := flag.NewFlagSet("ter", flag.ContinueOnError)
	fs.StringVar(&o.config, "config", "", "YAML run configuration (defaults: Stoker dam break)")
	fs.StringVar(&o.envFile, "env", "", "dotenv file with TER_* overrides (default: ./.env if present)")
	fs.StringVar(&o.results, "results", "", "results directory (overrides output.dir)")
	fs.StringVar(&o.scheme, "scheme", "", fmt.Sprintf("time scheme %v", timescheme.Kinds()))
	fs.StringVar(&o.flux, "flux", "", fmt.Sprintf("numerical flux %v", flux.Kinds()))
	fs.IntVar(&o.verbosity, "v", 1, "verbosity: 0 quiet, 1 progress, 2 every step")
	fs.BoolVar(&o.upload, "upload", false, "upload the results directory to S3 after the run")
	fs.StringVar(&o.runID, "run-id", "", "object key prefix for the upload (default: UTC timestamp)")

	return fs
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// RunContext parses argv, runs one simulation and returns the exit code.
// Progress and the test-case report go to stdout, errors to stderr.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	var o options
	fs := newFlagSet(&o)
	fs.SetOutput(stderr)
	if err := fs.Parse(argv); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		return ExitConfig
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg, err := loadConfig(o, set)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitConfig
	}

	logger := log.New(stdout, "", 0)
	driver, err := build(cfg, logger)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitConfig
	}
	if _, err = driver.Run(); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitRun
	}

	if cfg.Upload.Enabled {
		runID := o.runID
		if runID == "" {
			runID = time.Now().UTC().Format(runIDLayout)
		}
		if err = upload(ctx, cfg, runID, logger); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return ExitRun
		}
	}

	return ExitOK
}

// loadConfig layers the YAML file, the dotenv file under the process
// environment and the explicitly set flags, then validates. The dotenv file
// never changes the process environment.
func loadConfig(o options, set map[string]bool) (config.Config, error) {
	lookup := config.LookupFunc(os.LookupEnv)
	envFile := o.envFile
	if envFile == "" {
		if _, err := os.Stat(defaultEnv); err == nil {
			envFile = defaultEnv
		}
	}
	if envFile != "" {
		env, err := config.ReadEnvFile(envFile)
		if err != nil {
			return config.Config{}, fmt.Errorf("env file: %w", err)
		}
		lookup = config.FirstOf(os.LookupEnv, config.MapLookup(env))
	}

	cfg, err := config.LoadWith(o.config, lookup)
	if err != nil {
		return config.Config{}, err
	}
	if set["results"] {
		cfg.Output.Dir = o.results
	}
	if set["scheme"] {
		cfg.Scheme = o.scheme
	}
	if set["flux"] {
		cfg.Flux = o.flux
	}
	if set["v"] {
		cfg.Verbosity = o.verbosity
	}
	if set["upload"] {
		cfg.Upload.Enabled = o.upload
	}
	if err = cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

// build assembles mesh → physics → flux → scheme → output → driver.
func build(cfg config.Config, logger *log.Logger) (*simulation.Driver, error) {
	geom, err := mesh.NewUniform(cfg.Mesh.XMin, cfg.Mesh.XMax, cfg.Mesh.Cells)
	if err != nil {
		return nil, err
	}
	model, err := physics.New(cfg.Case.Name, geom, cfg.Gravity, cfg.Case.Params)
	if err != nil {
		return nil, err
	}
	fopts, err := fluxOptions(cfg)
	if err != nil {
		return nil, err
	}
	f, err := flux.New(cfg.Flux, model.Gravity(), fopts...)
	if err != nil {
		return nil, err
	}
	scheme, err := timescheme.New(cfg.Scheme, f, model)
	if err != nil {
		return nil, err
	}
	results, err := output.NewResults(cfg.Output.Dir)
	if err != nil {
		return nil, err
	}

	var sampler simulation.Sampler
	if n := len(cfg.Probes.Refs); n > 0 {
		probes := make([]probe.Probe, n)
		for i := range probes {
			probes[i] = probe.Probe{Ref: cfg.Probes.Refs[i], Position: cfg.Probes.Positions[i]}
		}
		sampler = probe.NewSampler(results.Dir(), probes, model.Gravity())
	}

	opts := simulation.Options{
		TimeStep:      cfg.Time.Dt,
		InitialTime:   cfg.Time.Initial,
		FinalTime:     cfg.Time.Final,
		SaveFrequency: cfg.Output.SaveFrequency,
		SaveFinalOnly: cfg.Output.SaveFinalOnly,
		TestCase:      cfg.TestCase,
		StrictDepth:   cfg.StrictDepth,
		Verbosity:     cfg.Verbosity,
	}

	return simulation.New(opts, geom, model, f.Name(), scheme, results, sampler, logger)
}

// fluxOptions maps the boundary and inflow settings to flux options.
func fluxOptions(cfg config.Config) ([]flux.Option, error) {
	both, err := flux.ParseBoundary(cfg.Boundary)
	if err != nil {
		return nil, err
	}
	opts := []flux.Option{flux.WithBoundary(both)}

	left, right := cfg.Boundaries()
	if left != cfg.Boundary || right != cfg.Boundary {
		lb, err := flux.ParseBoundary(left)
		if err != nil {
			return nil, fmt.Errorf("boundary_left: %w", err)
		}
		rb, err := flux.ParseBoundary(right)
		if err != nil {
			return nil, fmt.Errorf("boundary_right: %w", err)
		}
		opts = append(opts, flux.WithBoundaries(lb, rb))
	}
	if in := cfg.Inflow; in != nil {
		opts = append(opts, flux.WithLeftDischarge(flux.LinearRamp(in.Discharge, in.Ramp)))
	}

	return opts, nil
}

func upload(ctx context.Context, cfg config.Config, runID string, logger *log.Logger) error {
	u, err := output.NewUploader(output.S3Config{
		Endpoint:  cfg.Upload.Endpoint,
		Region:    cfg.Upload.Region,
		AccessKey: cfg.Upload.AccessKey,
		SecretKey: cfg.Upload.SecretKey,
		Bucket:    cfg.Upload.Bucket,
		Prefix:    cfg.Upload.Prefix,
		UseSSL:    cfg.Upload.UseSSL,
	})
	if err != nil {
		return err
	}
	keys, err := u.UploadDir(ctx, runID, cfg.Output.Dir)
	if err != nil {
		return err
	}
	if cfg.Verbosity > 0 {
		logger.Printf("Uploaded %d files to s3://%s (run %s)", len(keys), cfg.Upload.Bucket, runID)
	}

	return nil
}
