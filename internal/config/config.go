// Package config загружает настройки утилиты из файла (YAML/JSON/TOML)
// и переменных окружения с префиксом RECVAL_.
package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	apperrors "record-validator/internal/errors"
	"record-validator/internal/logging"
	"record-validator/internal/utils"
	"record-validator/internal/validator"
)

// EnvPrefix задаёт префикс переменных окружения.
const EnvPrefix = "RECVAL"

// StdoutOutput означает вывод валидных записей в стандартный поток.
const StdoutOutput = "-"

const defaultProgressInterval = 2 * time.Second

// Job описывает одно задание: входной файл, выходной файл и отчёт.
type Job struct {
	Name   string `mapstructure:"name"`
	Input  string `mapstructure:"input"`
	Output string `mapstructure:"output"`
	Report string `mapstructure:"report"`
}

type AppConfig struct {
	LogLevel         string        `mapstructure:"log_level"`
	LogFormat        string        `mapstructure:"log_format"`
	MatchMode        string        `mapstructure:"match_mode"`
	Progress         bool          `mapstructure:"progress"`
	ProgressInterval time.Duration `mapstructure:"progress_interval"`
	Workers          int           `mapstructure:"workers"`
	ReportDir        string        `mapstructure:"report_dir"`
	Jobs             []Job         `mapstructure:"jobs"`
}

// Init заполняет пустые значения значениями по умолчанию.
func (cfg *AppConfig) Init() {
	if cfg.LogFormat == "" {
		cfg.LogFormat = string(logging.FormatText)
	}
	if cfg.MatchMode == "" {
		cfg.MatchMode = string(validator.MatchPrefix)
	}
	if cfg.ProgressInterval <= 0 {
		cfg.ProgressInterval = defaultProgressInterval
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	for i := range cfg.Jobs {
		if cfg.Jobs[i].Name == "" {
			cfg.Jobs[i].Name = fmt.Sprintf("job-%d", i+1)
		}
	}
}

// Validate проверяет согласованность настроек. Повторный вызов безопасен.
func (cfg *AppConfig) Validate() error {
	if _, err := validator.ParseMatchMode(cfg.MatchMode); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeConfiguration, "match_mode", err)
	}
	switch logging.Format(cfg.LogFormat) {
	case logging.FormatText, logging.FormatJSON:
	default:
		return apperrors.New(apperrors.ErrCodeConfiguration,
			fmt.Sprintf("unknown log_format %q", cfg.LogFormat))
	}
	seen := make(map[string]bool, len(cfg.Jobs))
	for _, job := range cfg.Jobs {
		if job.Input == "" || job.Output == "" {
			return apperrors.NewWithContext(apperrors.ErrCodeConfiguration,
				"job requires input and output", map[string]any{"job": job.Name})
		}
		if seen[job.Name] {
			return apperrors.NewWithContext(apperrors.ErrCodeConfiguration,
				"duplicate job name", map[string]any{"job": job.Name})
		}
		seen[job.Name] = true
	}
	return cfg.validateTargets()
}

// validateTargets запрещает заданиям писать в один и тот же файл: задания
// выполняются параллельно, и одна запись затёрла бы другую.
func (cfg *AppConfig) validateTargets() error {
	var targets []string
	stdoutJob := ""
	for _, job := range cfg.Jobs {
		if job.Output == StdoutOutput {
			if stdoutJob != "" {
				return apperrors.NewWithContext(apperrors.ErrCodeConfiguration,
					"only one job may write to stdout", map[string]any{"job": job.Name, "other": stdoutJob})
			}
			stdoutJob = job.Name
		} else if err := claimTarget(&targets, job.Name, "output", job.Output); err != nil {
			return err
		}
		if job.Report != "" {
			if err := claimTarget(&targets, job.Name, "report", job.Report); err != nil {
				return err
			}
		}
	}
	return nil
}

func claimTarget(targets *[]string, job, kind, path string) error {
	for _, t := range *targets {
		if utils.SamePath(t, path) {
			return apperrors.NewWithContext(apperrors.ErrCodeConfiguration,
				fmt.Sprintf("%s path is already used by another job", kind),
				map[string]any{"job": job, "path": path})
		}
	}
	*targets = append(*targets, path)
	return nil
}

// resolveReports делает относительные пути отчётов путями внутри ReportDir.
func (cfg *AppConfig) resolveReports() error {
	if cfg.ReportDir == "" {
		return nil
	}
	for i := range cfg.Jobs {
		job := &cfg.Jobs[i]
		if job.Report == "" || filepath.IsAbs(job.Report) {
			continue
		}
		resolved := filepath.Join(cfg.ReportDir, job.Report)
		if !utils.IsPathSafe(resolved, cfg.ReportDir) {
			return apperrors.NewWithContext(apperrors.ErrCodeConfiguration,
				"report path escapes report_dir", map[string]any{"job": job.Name, "report": job.Report})
		}
		job.Report = resolved
	}
	return nil
}

// Mode возвращает разобранный режим сопоставления.
func (cfg *AppConfig) Mode() validator.MatchMode {
	m, err := validator.ParseMatchMode(cfg.MatchMode)
	if err != nil {
		return validator.MatchPrefix
	}
	return m
}

// Load читает конфигурацию. Пустой path означает только окружение и значения по умолчанию.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log_level", "")
	v.SetDefault("log_format", string(logging.FormatText))
	v.SetDefault("match_mode", string(validator.MatchPrefix))
	v.SetDefault("progress", true)
	v.SetDefault("progress_interval", defaultProgressInterval)
	v.SetDefault("workers", 0)
	v.SetDefault("report_dir", "")

	if path != "" {
		v.SetConfigFile(path)
		ext := filepath.Ext(path)
		if ext == ".yaml" || ext == ".yml" {
			v.SetConfigType("yaml")
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, apperrors.WrapWithContext(apperrors.ErrCodeConfiguration, "read config file", err,
				map[string]any{"path": path})
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeConfiguration, "parse config", err)
	}
	cfg.Init()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.resolveReports(); err != nil {
		return nil, err
	}
	if err := cfg.validateTargets(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
