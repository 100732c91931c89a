package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/adri-oss/adri-go/pkg/adri"
	"github.com/adri-oss/adri-go/pkg/config"
	"github.com/adri-oss/adri-go/pkg/standards"
	"github.com/adri-oss/adri-go/pkg/tabular"
	"github.com/adri-oss/adri-go/pkg/validation"
)

// assessCmd scores a dataset against a standard
var assessCmd = &cobra.Command{
	Use:   "assess <data-file>",
	Short: "Assess a dataset against a quality standard",
	Long:  `Score a CSV/JSON dataset against a standard across the five quality dimensions (validity, completeness, consistency, freshness, plausibility) and report the result.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAssess,
}

func init() {
	assessCmd.Flags().String("standard", "", "Standard to assess against (bundled name, contract name, or file path)")
	assessCmd.Flags().Float64("min-score", 0, "Override the standard's overall minimum score")
	assessCmd.MarkFlagRequired("standard")
}

func runAssess(cmd *cobra.Command, args []string) error {
	ref, _ := cmd.Flags().GetString("standard")
	minScore, _ := cmd.Flags().GetFloat64("min-score")

	ds, err := tabular.ReadFile(args[0])
	if err != nil {
		return err
	}

	std, source, err := resolveStandardRef(ref)
	if err != nil {
		return err
	}
	if minScore > 0 {
		std.Requirements.OverallMinimum = minScore
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Using standard: %s\n", source)
	}

	result := validation.Assess(ds, std, validation.DefaultConfig(), uuid.NewString(), time.Now())

	if output == "table" {
		return outputAssessmentTable(result, source)
	}
	return outputResult(result)
}

// resolveStandardRef resolves a --standard argument the same way the
// protection engine does: bundled standards first, then an explicit
// file path, then the configured contracts directory.
func resolveStandardRef(ref string) (*adri.Standard, string, error) {
	if bundled, err := standards.Bundled(); err == nil && bundled.Exists(ref) {
		std, err := bundled.Load(ref)
		if err != nil {
			return nil, "", err
		}
		return std, ref + " (bundled)", nil
	}

	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		std, err := standards.LoadFile(ref)
		if err != nil {
			return nil, "", err
		}
		return std, ref, nil
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, "", err
	}
	res := cfg.ResolveContractPath(ref, ".")
	if !res.Exists {
		return nil, "", &adri.StandardNotFoundError{Name: ref, Path: res.Path}
	}
	std, err := standards.LoadFile(res.Path)
	if err != nil {
		return nil, "", err
	}
	return std, res.Path, nil
}

func outputAssessmentTable(result *adri.AssessmentResult, source string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DIMENSION\tSCORE\tMAX")
	for _, dim := range adri.Dimensions {
		if score, ok := result.DimensionScoreOrZero(dim); ok {
			fmt.Fprintf(w, "%s\t%.1f\t20.0\n", dim, score)
		}
	}
	fmt.Fprintf(w, "overall\t%.1f\t100.0\n", result.OverallScore)
	if err := w.Flush(); err != nil {
		return err
	}

	status := "FAILED"
	if result.Passed {
		status = "PASSED"
	}
	fmt.Printf("\n%s  standard=%s  score=%.1f\n", status, source, result.OverallScore)

	if !result.Passed && len(result.FailedValidations) > 0 {
		fmt.Println("\nTop issues:")
		for i, f := range result.FailedValidations {
			if i >= 5 {
				break
			}
			fmt.Printf("  - %s: %s (%d rows, %.1f%%)\n", f.FieldName, f.IssueType, f.AffectedRows, f.AffectedPercentage)
		}
	}
	return nil
}
