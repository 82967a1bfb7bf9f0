// Пакет main реализует утилиту проверки записей с персональными данными.
// Поддерживает два режима работы:
//   - одиночный: record-validator <input> <output>
//   - пакетный: record-validator --config jobs.yaml (список заданий в конфигурации)
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"record-validator/internal/config"
	apperrors "record-validator/internal/errors"
	"record-validator/internal/logging"
	"record-validator/internal/progress"
	"record-validator/internal/records"
	"record-validator/internal/report"
	"record-validator/internal/utils"
	"record-validator/internal/validator"
)

const name = "record-validator"

// переопределяется при сборке через -ldflags
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     "Validate personal-data records and keep only the valid ones",
		ArgsUsage: "<input> <output>",
		Version:   version,
		Description: `Reads a JSON array of records from <input>, checks every field against
its pattern and writes the valid records to <output> ("-" for stdout).

Without positional arguments the jobs listed in --config are processed.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (YAML/JSON/TOML)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error); defaults to $LOG_LEVEL or info",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Log format (text, json)",
			},
			&cli.StringFlag{
				Name:  "match",
				Usage: "Pattern match mode (prefix, full)",
			},
			&cli.StringFlag{
				Name:    "report",
				Aliases: []string{"r"},
				Usage:   "Write a run report to this path (.yaml/.yml for YAML, JSON otherwise)",
			},
			&cli.BoolFlag{
				Name:  "no-progress",
				Usage: "Disable progress messages",
			},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}
	applyFlags(cfg, cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.SetDefault(name, version, cfg.LogLevel, logging.Format(cfg.LogFormat))

	jobs, err := selectJobs(cmd, cfg)
	if err != nil {
		return err
	}

	rules := validator.DefaultRules().WithMatchMode(cfg.Mode())
	logger.Debug("starting", "jobs", len(jobs), "match", rules.MatchMode(), "workers", cfg.Workers)
	return runJobs(ctx, cfg, rules, jobs, logger)
}

func applyFlags(cfg *config.AppConfig, cmd *cli.Command) {
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}
	if cmd.IsSet("log-format") {
		cfg.LogFormat = cmd.String("log-format")
	}
	if cmd.IsSet("match") {
		cfg.MatchMode = cmd.String("match")
	}
	if cmd.Bool("no-progress") {
		cfg.Progress = false
	}
}

func selectJobs(cmd *cli.Command, cfg *config.AppConfig) ([]config.Job, error) {
	args := cmd.Args()
	switch {
	case args.Len() == 2:
		return []config.Job{{
			Name:   "main",
			Input:  args.Get(0),
			Output: args.Get(1),
			Report: cmd.String("report"),
		}}, nil
	case args.Len() == 0 && len(cfg.Jobs) > 0:
		if cmd.IsSet("report") {
			return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
				"--report applies to a single input; set report per job in the config file")
		}
		return cfg.Jobs, nil
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("expected <input> <output>, got %d argument(s)", args.Len()))
	}
}

func runJobs(ctx context.Context, cfg *config.AppConfig, rules *validator.RuleTable, jobs []config.Job, logger *slog.Logger) error {
	loader := records.NewLoader()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := runJob(job, cfg, rules, loader, logger); err != nil {
				return fmt.Errorf("job %s: %w", job.Name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func runJob(job config.Job, cfg *config.AppConfig, rules *validator.RuleTable, loader *records.Loader, logger *slog.Logger) error {
	if utils.SamePath(job.Input, job.Output) {
		logger.Warn("output overwrites input", "job", job.Name, "path", job.Output)
	}

	logger.Info("reading", "job", job.Name, "input", job.Input)
	recs, err := loader.Load(job.Input)
	if err != nil {
		return err
	}

	var opts []validator.Option
	if cfg.Progress {
		p := progress.NewReporter(job.Name, logger, cfg.ProgressInterval)
		opts = append(opts, validator.WithProgress(p.Observe))
	}

	logger.Info("validating", "job", job.Name, "records", len(recs))
	res, err := validator.Validate(recs, rules, opts...)
	if err != nil {
		return err
	}

	if job.Output == config.StdoutOutput {
		err = records.Stdout(res.Valid)
	} else {
		logger.Info("writing", "job", job.Name, "output", job.Output)
		err = records.WriteFile(job.Output, res.Valid)
	}
	if err != nil {
		return err
	}
	logger.Info("done", "job", job.Name)

	report.Log(logger, job.Name, res.Report)
	if job.Report != "" {
		doc := report.NewDocument(job.Input, job.Output, rules.MatchMode(), res.Report)
		if err := report.WriteFile(job.Report, doc); err != nil {
			return err
		}
		logger.Info("report saved", "job", job.Name, "path", job.Report, "run_id", doc.RunID)
	}
	return nil
}
