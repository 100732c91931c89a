package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/adri-oss/adri-go/pkg/config"
	"github.com/adri-oss/adri-go/pkg/generator"
	"github.com/adri-oss/adri-go/pkg/tabular"
)

// generateCmd synthesizes a standard from a training dataset
var generateCmd = &cobra.Command{
	Use:   "generate-standard <training-data-file>",
	Short: "Generate a quality standard from a training dataset",
	Long:  `Profile a training dataset, infer per-field rules, and write a standard the training data itself is guaranteed to pass.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().String("name", "", "Standard name (defaults to the data file stem)")
	generateCmd.Flags().String("out", "", "Output path (defaults to <contracts-dir>/<name>.yaml)")
	generateCmd.Flags().Float64("overall-minimum", 0, "Overall minimum score to require (default 75)")
	generateCmd.Flags().Bool("force", false, "Overwrite an existing standard file")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	out, _ := cmd.Flags().GetString("out")
	overallMin, _ := cmd.Flags().GetFloat64("overall-minimum")
	force, _ := cmd.Flags().GetBool("force")

	if name == "" {
		base := filepath.Base(args[0])
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	ds, err := tabular.ReadFile(args[0])
	if err != nil {
		return err
	}

	genCfg := generator.DefaultConfig()
	genCfg.StandardID = name
	genCfg.StandardName = name
	if overallMin > 0 {
		genCfg.OverallMinimum = overallMin
	}

	std, err := generator.Generate(ds, genCfg)
	if err != nil {
		return err
	}

	if out == "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		out = filepath.Join(cfg.Paths.Contracts, name+".yaml")
	}
	if _, err := os.Stat(out); err == nil && !force {
		return fmt.Errorf("standard file %q already exists (use --force to overwrite)", out)
	}

	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := yaml.Marshal(std)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}

	fmt.Printf("Generated standard %q (%d fields, %d training rows) at %s\n",
		name, len(std.Requirements.FieldRequirements), ds.Rows(), out)
	return nil
}
