// Package app contains the core application logic: loading a project,
// building the envelope model, computing the indicators and writing the
// report, decoupled from any specific entrypoint like a CLI.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/thermenv/internal/catalog"
	"github.com/vk/thermenv/internal/convert"
	"github.com/vk/thermenv/internal/ctxlog"
	"github.com/vk/thermenv/internal/energy"
	"github.com/vk/thermenv/internal/hclfront"
	"github.com/vk/thermenv/internal/report"
)

// App encapsulates the application's dependencies, configuration and
// lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger.
func NewApp(outW io.Writer, config *Config) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, os.Stderr)
	logger.Debug("Logger configured successfully.")
	return &App{outW: outW, logger: logger, config: config}
}

// Run executes the full pipeline: parse the project files, merge the
// default catalog, build the model, compute the indicators and write
// the report.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	set, err := hclfront.NewLoader().Load(ctx, a.config.ProjectPath)
	if err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}
	a.logger.Debug("Project records loaded.", "count", len(set.Records))

	if a.config.UseCatalog {
		if err := catalog.Merge(set); err != nil {
			return fmt.Errorf("failed to merge default catalog: %w", err)
		}
		a.logger.Debug("Default catalog merged.", "total_records", len(set.Records))
	}

	m, convWarns, err := convert.Convert(set)
	if err != nil {
		return fmt.Errorf("failed to build envelope model: %w", err)
	}
	a.logger.Debug("Envelope model built.",
		"spaces", len(m.Spaces), "walls", len(m.Walls), "windows", len(m.Windows))

	if a.config.Purge {
		m.PurgeUnused()
		a.logger.Debug("Unreferenced catalog entries purged.")
	}
	if a.config.RayTrace {
		energy.UpdateFShobst(m)
		a.logger.Debug("Window obstruction factors ray traced.")
	}

	rep := report.Generate(m, report.Overrides{})
	rep.Warnings = append(convWarns, rep.Warnings...)

	a.logger.Info("Indicators computed.",
		"K", rep.K.K,
		"q_soljul", rep.QSolJul.QSolJul,
		"n50", rep.N50.N50,
		"a_ref", rep.ARef,
		"warnings", len(rep.Warnings))

	if a.config.ModelOutputPath != "" {
		data, err := m.AsJSON()
		if err != nil {
			return fmt.Errorf("failed to serialize model: %w", err)
		}
		if err := os.WriteFile(a.config.ModelOutputPath, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("failed to write model file: %w", err)
		}
		a.logger.Info("Model written.", "path", a.config.ModelOutputPath)
	}

	data, err := rep.AsJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}
	data = append(data, '\n')
	if a.config.OutputPath != "" {
		if err := os.WriteFile(a.config.OutputPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write report file: %w", err)
		}
		a.logger.Info("Report written.", "path", a.config.OutputPath)
	} else {
		if _, err := a.outW.Write(data); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
