// SPDX-FileCopyrightText: 2026 Panoptes contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/util/validation/field"
	"k8s.io/component-base/version"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/panoptes-k8s/panoptes/cmd/internal/slogr"
	"github.com/panoptes-k8s/panoptes/pkg/config"
	"github.com/panoptes-k8s/panoptes/pkg/metadata"
	"github.com/panoptes-k8s/panoptes/pkg/monitor"
	"github.com/panoptes-k8s/panoptes/pkg/provider"
	"github.com/panoptes-k8s/panoptes/pkg/report"
	"github.com/panoptes-k8s/panoptes/pkg/rule"
	"github.com/panoptes-k8s/panoptes/pkg/ruleset"
)

// NewPanoptesCommand creates a new command that is used to start Panoptes.
func NewPanoptesCommand(providerOptions map[string]provider.ProviderOption) *cobra.Command {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	log.SetLogger(slogr.NewLogr(logger))

	rootCmd := &cobra.Command{
		Use:   "panoptes",
		Short: "Panoptes is a security-posture watcher for Kubernetes namespaces.",
		Long: `Panoptes is a security-posture watcher for Kubernetes namespaces.
It lists the workloads, role bindings and network policies of a target namespace,
evaluates them against the OWASP Kubernetes Top Ten ruleset and emits human-readable findings,
either once or periodically until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var opts runOptions
	runCommand := &cobra.Command{
		Use:   "run",
		Short: "Run some rulesets and rules.",
		Long:  `Run allows running rulesets and rules for the given provider(s).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCmd(cmd.Context(), providerOptions, opts)
		},
	}

	addRunFlags(runCommand, &opts)
	rootCmd.AddCommand(runCommand)

	var watchOpts watchOptions
	watchCommand := &cobra.Command{
		Use:   "watch",
		Short: "Scan the configured providers on a fixed interval.",
		Long:  `Watch runs a scan cycle for all configured providers once per interval until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchCmd(cmd.Context(), providerOptions, watchOpts)
		},
	}

	addWatchFlags(watchCommand, &watchOpts)
	rootCmd.AddCommand(watchCommand)

	var reportOpts reportOptions
	reportCommand := &cobra.Command{
		Use:   "report",
		Short: "Report converts output files.",
		Long:  `Report converts output files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return reportCmd(args, reportOpts)
		},
	}

	addReportFlags(reportCommand, &reportOpts)
	rootCmd.AddCommand(reportCommand)

	showCommand := &cobra.Command{
		Use:   "show",
		Short: "Show metadata about known entities.",
		Long:  `Show prints metadata about the entities known to Panoptes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	showProviderCommand := &cobra.Command{
		Use:   "provider",
		Short: "Show metadata about known providers.",
		Long:  `Show provider prints metadata about the providers known to Panoptes and their supported rulesets.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showProviderCmd(args, providerOptions)
		},
	}

	showCommand.AddCommand(showProviderCommand)
	rootCmd.AddCommand(showCommand)

	versionCommand := &cobra.Command{
		Use:   "version",
		Short: "Print the version of Panoptes.",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("version: %s\n", version.Get().GitVersion)
			return nil
		},
	}

	rootCmd.AddCommand(versionCommand)

	return rootCmd
}

func addRunFlags(cmd *cobra.Command, opts *runOptions) {
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Configuration file for panoptes containing info about providers and rulesets.")
	cmd.PersistentFlags().BoolVar(&opts.all, "all", false, "If set to true panoptes will run all rulesets for all known providers.")
	cmd.PersistentFlags().StringVar(&opts.provider, "provider", "", "The provider that should be used to run checks.")
	cmd.PersistentFlags().StringVar(&opts.rulesetID, "ruleset-id", "", "The id of the ruleset that should be run. If provided --ruleset-version should also be set. If both flags are empty all rulesets for the provider will be run.")
	cmd.PersistentFlags().StringVar(&opts.rulesetVersion, "ruleset-version", "", "The version of the ruleset that should be run. If provided --ruleset-id should also be set. If both flags are empty all rulesets for the provider will be run.")
	cmd.PersistentFlags().StringVar(&opts.ruleID, "rule-id", "", "If set only the rule with the provided id will be run.")
}

func addWatchFlags(cmd *cobra.Command, opts *watchOptions) {
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Configuration file for panoptes containing info about providers and rulesets.")
	cmd.PersistentFlags().DurationVar(&opts.interval, "interval", 30*time.Second, "Wait period between two scan cycles.")
}

func addReportFlags(cmd *cobra.Command, opts *reportOptions) {
	cmd.PersistentFlags().StringVar(&opts.output, "output", "html", "Output type.")
}

func reportCmd(args []string, opts reportOptions) error {
	if len(args) != 1 {
		return errors.New("report requires a single filepath argument")
	}

	if opts.output != "html" {
		return fmt.Errorf("unsuported output format: %s", opts.output)
	}

	fileData, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file %s:%w", args[0], err)
	}

	rep := &report.Report{}
	if err := json.Unmarshal(fileData, rep); err != nil {
		return fmt.Errorf("failed to unmarshal data: %w", err)
	}

	htlmRenderer, err := report.NewHTMLRenderer()
	if err != nil {
		return fmt.Errorf("failed to initialize renderer: %w", err)
	}

	return htlmRenderer.Render(os.Stdout, rep)
}

func runCmd(ctx context.Context, providerOptions map[string]provider.ProviderOption, opts runOptions) error {
	conf, err := readConfig(opts.configFile)
	if err != nil {
		return err
	}

	providers, err := getProvidersFromConfig(conf, providerOptions)
	if err != nil {
		return err
	}

	if opts.all {
		providerResults := []provider.ProviderResult{}
		for _, p := range providers {
			res, err := p.RunAll(ctx)
			if err != nil {
				return err
			}
			providerResults = append(providerResults, res)
		}

		return writeReport(conf, providerResults)
	}

	p, ok := providers[opts.provider]
	if !ok {
		return fmt.Errorf("unknown provider: %s", opts.provider)
	}

	switch {
	case opts.rulesetID == "" && opts.rulesetVersion == "":
		// run all rulesets for the provider
		res, err := p.RunAll(ctx)
		if err != nil {
			return err
		}

		return writeReport(conf, []provider.ProviderResult{res})
	case opts.rulesetID != "" && opts.rulesetVersion == "":
		return errors.New("--ruleset-version should be set along with --ruleset-id")
	case opts.rulesetID == "" && opts.rulesetVersion != "":
		return errors.New("--ruleset-id should be set along with --ruleset-version")
	}

	if opts.ruleID == "" {
		// run the whole ruleset
		res, err := p.RunRuleset(ctx, opts.rulesetID, opts.rulesetVersion)
		if err != nil {
			return err
		}

		return writeReport(conf, []provider.ProviderResult{{
			ProviderID:     p.ID(),
			ProviderName:   p.Name(),
			Metadata:       p.Metadata(),
			RulesetResults: []ruleset.RulesetResult{res},
		}})
	}

	return runRule(ctx, p, opts.rulesetID, opts.rulesetVersion, opts.ruleID)
}

func watchCmd(ctx context.Context, providerOptions map[string]provider.ProviderOption, opts watchOptions) error {
	if opts.interval <= 0 {
		return errors.New("--interval should be a positive duration")
	}

	conf, err := readConfig(opts.configFile)
	if err != nil {
		return err
	}

	providersByID, err := getProvidersFromConfig(conf, providerOptions)
	if err != nil {
		return err
	}

	providers := make([]provider.Provider, 0, len(providersByID))
	for _, p := range providersByID {
		providers = append(providers, p)
	}
	// keep the provider order stable across scan cycles
	slices.SortFunc(providers, func(a, b provider.Provider) int {
		return cmp.Compare(a.ID(), b.ID())
	})

	monitorOptions := []monitor.CreateOption{
		monitor.WithProviders(providers...),
		monitor.WithInterval(opts.interval),
	}
	if conf.Output != nil && conf.Output.MinStatus != "" {
		monitorOptions = append(monitorOptions, monitor.WithMinStatus(conf.Output.MinStatus))
	}

	return monitor.New(monitorOptions...).Run(ctx)
}

func runRule(ctx context.Context, p provider.Provider, rulesetID, rulesetVersion, ruleID string) error {
	res, err := p.RunRule(ctx, rulesetID, rulesetVersion, ruleID)
	if err != nil {
		return err
	}

	fmt.Printf("Rule: %s\n", res.RuleName)
	for _, cr := range res.CheckResults {
		fmt.Printf("- Status: %s %s Message: %s Target: %s\n", cr.Status, string(rule.StatusIcon(cr.Status)), cr.Message, cr.Target)
	}

	return nil
}

func showProviderCmd(args []string, providerOptions map[string]provider.ProviderOption) error {
	providerIDs := args
	if len(providerIDs) == 0 {
		for id := range providerOptions {
			providerIDs = append(providerIDs, id)
		}
		slices.Sort(providerIDs)
	}

	providersMetadata := make([]metadata.ProviderDetailed, 0, len(providerIDs))
	for _, providerID := range providerIDs {
		providerOption, ok := providerOptions[providerID]
		if !ok {
			return fmt.Errorf("unknown provider: %s", providerID)
		}
		providersMetadata = append(providersMetadata, providerOption.MetadataFunc())
	}

	out, err := yaml.Marshal(providersMetadata)
	if err != nil {
		return fmt.Errorf("failed to marshal provider metadata: %w", err)
	}

	fmt.Print(string(out))
	return nil
}

func writeReport(conf *config.PanoptesConfig, providerResults []provider.ProviderResult) error {
	if conf.Output == nil || conf.Output.Path == "" {
		return nil
	}

	opts := []report.ReportOption{}
	if conf.Output.MinStatus != "" {
		opts = append(opts, report.MinStatus(conf.Output.MinStatus))
	}

	rep := report.FromProviderResults(providerResults, opts...)
	return rep.WriteToFile(conf.Output.Path)
}

type runOptions struct {
	configFile     string
	all            bool
	provider       string
	rulesetID      string
	rulesetVersion string
	ruleID         string
}

type watchOptions struct {
	configFile string
	interval   time.Duration
}

type reportOptions struct {
	output string
}

func readConfig(filePath string) (*config.PanoptesConfig, error) {
	data, err := os.ReadFile(filepath.Clean(filePath))
	if err != nil {
		return nil, err
	}

	c := &config.PanoptesConfig{}
	err = yaml.Unmarshal(data, c)

	if err != nil {
		return nil, err
	}

	return c, nil
}

func getProvidersFromConfig(c *config.PanoptesConfig, providerOptions map[string]provider.ProviderOption) (map[string]provider.Provider, error) {
	providers := map[string]provider.Provider{}
	providersPath := field.NewPath("providers")
	for idx, providerConfig := range c.Providers {
		providerOption, ok := providerOptions[providerConfig.ID]
		if !ok {
			return nil, fmt.Errorf("unknown provider identifier: %s", providerConfig.ID)
		}

		p, err := providerOption.ProviderFromConfigFunc(providerConfig, providersPath.Index(idx))
		if err != nil {
			return nil, err
		}

		if _, ok := providers[p.ID()]; ok {
			return nil, fmt.Errorf("provider with id %s was already registered", p.ID())
		}
		providers[p.ID()] = p
	}

	return providers, nil
}
