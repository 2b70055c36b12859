package main

import (
	"fmt"
	"io"

	"github.com/sahnico/taxcalc/internal/calculation"
	"github.com/sahnico/taxcalc/internal/config"
	"github.com/sahnico/taxcalc/internal/domain"
	"github.com/sahnico/taxcalc/internal/logging"
	"github.com/sahnico/taxcalc/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the state shared by every subcommand once settings are loaded
type app struct {
	configPath string
	logLevel   string

	settings *config.Settings
	logger   *zap.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "taxcalc",
		Short:         "Income tax calculator for the old and new regimes",
		Long:          "taxcalc compares income tax under the old and new regimes, recommends the cheaper one and produces client reports.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to settings file (YAML)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(
		newCompareCmd(a),
		newSlabsCmd(a),
		newBreakEvenCmd(a),
		newGSTCmd(),
		newEMICmd(),
		newNotifyCmd(a),
		newExampleCmd(a),
		newValidateCmd(a),
	)
	return root
}

func (a *app) init() error {
	settings, err := config.LoadSettings(a.configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(settings.Logging, a.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.settings = settings
	a.logger = logger
	return nil
}

func (a *app) firm() output.Firm {
	return output.Firm{
		Name:    a.settings.Firm.Name,
		Tagline: a.settings.Firm.Tagline,
		Email:   a.settings.Firm.Email,
		Website: a.settings.Firm.Website,
	}
}

// rules resolves the rule table for year. Flags win over settings, and an
// empty year means the latest year loaded.
func (a *app) rules(rulesFile, year string) (*domain.TaxRules, error) {
	if rulesFile == "" {
		rulesFile = a.settings.Rules.File
	}
	if year == "" {
		year = a.settings.Rules.AssessmentYear
	}

	rs, err := config.LoadRules(rulesFile)
	if err != nil {
		return nil, err
	}
	return rs.Resolve(year)
}

// computeReport loads a taxpayer document and runs the regime comparison on it
func (a *app) computeReport(inputPath, rulesFile, year string) (*output.Report, error) {
	parser := config.NewInputParser(a.logger)
	input, err := parser.LoadFromFile(inputPath)
	if err != nil {
		return nil, err
	}
	if year == "" {
		year = input.Taxpayer.AssessmentYear
	}

	rules, err := a.rules(rulesFile, year)
	if err != nil {
		return nil, err
	}
	engine, err := calculation.NewEngine(rules)
	if err != nil {
		return nil, err
	}

	capped := parser.ApplyDeductionCaps(input, rules)
	comparison, ok := engine.CompareRegimes(input.Income, input.Deductions)
	if !ok {
		return nil, fmt.Errorf("%s: gross income must be positive to compare regimes", inputPath)
	}

	a.logger.Info("regimes compared",
		zap.String("op", "main.computeReport"),
		zap.String("pan", input.Taxpayer.PAN),
		zap.String("assessment_year", rules.AssessmentYear),
		zap.String("recommended", string(comparison.Recommended)),
	)
	return output.NewReport(a.firm(), input, comparison, capped), nil
}
