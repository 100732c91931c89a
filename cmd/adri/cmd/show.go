package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/adri-oss/adri-go/pkg/adri"
	"github.com/adri-oss/adri-go/pkg/standards"
)

// showCmd inspects a standard
var showCmd = &cobra.Command{
	Use:   "show-standard <name-or-path>",
	Short: "Show a standard's requirements",
	Long:  `Display a standard document: its identity, overall minimum, per-field rules, and dimension configuration. Bundled standards take precedence over same-named files.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

// listStandardsCmd lists the bundled standards
var listStandardsCmd = &cobra.Command{
	Use:   "list-standards",
	Short: "List bundled standards",
	RunE:  runListStandards,
}

func init() {
	rootCmd.AddCommand(listStandardsCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	std, source, err := resolveStandardRef(args[0])
	if err != nil {
		return err
	}

	if output != "table" {
		return outputResult(std)
	}

	fmt.Printf("Standard: %s (version %s)\nSource:   %s\n", std.Standards.Name, std.Standards.Version, source)
	if std.Standards.Description != "" {
		fmt.Printf("          %s\n", std.Standards.Description)
	}
	fmt.Printf("Overall minimum: %.1f\n\n", std.Requirements.OverallMinimum)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tTYPE\tNULLABLE\tRULES")
	for name, rule := range std.Requirements.FieldRequirements {
		fmt.Fprintf(w, "%s\t%s\t%v\t%s\n", name, rule.Type, rule.IsNullable(), ruleSummary(rule))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if std.RecordIdentification != nil {
		fmt.Printf("\nPrimary key: %v (%s)\n", std.RecordIdentification.PrimaryKeyFields, std.RecordIdentification.Strategy)
	}
	return nil
}

func ruleSummary(rule adri.FieldRule) string {
	var parts []string
	if len(rule.AllowedValues) > 0 {
		parts = append(parts, fmt.Sprintf("enum(%d)", len(rule.AllowedValues)))
	}
	if rule.MinValue != nil || rule.MaxValue != nil {
		parts = append(parts, fmt.Sprintf("range[%s, %s]", floatLabel(rule.MinValue), floatLabel(rule.MaxValue)))
	}
	if rule.MinLength != nil || rule.MaxLength != nil {
		parts = append(parts, "length")
	}
	if rule.Pattern != "" {
		parts = append(parts, "pattern")
	}
	if rule.AfterDate != "" || rule.BeforeDate != "" || rule.AfterDateTime != "" || rule.BeforeDateTime != "" {
		parts = append(parts, "date-window")
	}
	if len(parts) == 0 {
		return "-"
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += ", " + p
	}
	return out
}

func floatLabel(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *v)
}

func runListStandards(cmd *cobra.Command, args []string) error {
	bundled, err := standards.Bundled()
	if err != nil {
		return err
	}
	names, err := bundled.List()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tID\tVERSION\tDESCRIPTION")
	for _, name := range names {
		meta, err := bundled.Metadata(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, meta.ID, meta.Version, meta.Description)
	}
	return w.Flush()
}
