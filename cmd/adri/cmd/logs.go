package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/adri-oss/adri-go/pkg/audit"
	"github.com/adri-oss/adri-go/pkg/config"
)

// logsCmd reads the append-only audit trail
var logsCmd = &cobra.Command{
	Use:   "view-logs",
	Short: "View the assessment audit trail",
	Long:  `Read the append-only JSONL audit files: assessment rows, per-dimension scores, and failed validations.`,
	RunE:  runViewLogs,
}

func init() {
	logsCmd.Flags().String("dir", "", "Audit log directory (defaults to the configured paths.audit_logs)")
	logsCmd.Flags().String("kind", "assessments", "Log kind to view (assessments, dimensions, failures)")
	logsCmd.Flags().Int("tail", 20, "Number of most recent rows to show")
}

var logKindFiles = map[string]string{
	"assessments": "adri_assessment_logs.jsonl",
	"dimensions":  "adri_dimension_scores.jsonl",
	"failures":    "adri_failed_validations.jsonl",
}

func runViewLogs(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	kind, _ := cmd.Flags().GetString("kind")
	tail, _ := cmd.Flags().GetInt("tail")

	file, ok := logKindFiles[kind]
	if !ok {
		return fmt.Errorf("unknown log kind %q (expected assessments, dimensions, or failures)", kind)
	}

	if dir == "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		dir = cfg.Paths.AuditLogs
	}

	rows, err := readJSONLTail(filepath.Join(dir, file), tail)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("No audit rows recorded.")
		return nil
	}

	if output != "table" {
		return outputResult(rows)
	}
	if kind == "assessments" {
		return outputAssessmentLogTable(rows)
	}
	// Dimension and failure rows have ragged shapes; key-value per row.
	for _, row := range rows {
		if err := outputKeyValueTable(row); err != nil {
			return err
		}
		fmt.Println()
	}
	return nil
}

// readJSONLTail decodes the last n lines of a JSONL file, skipping a
// trailing partial line if a writer is mid-append (spec: rows must
// remain parseable line-by-line even while the tail is written).
func readJSONLTail(path string, n int) ([]map[string]interface{}, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []map[string]interface{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		var row map[string]interface{}
		if err := json.Unmarshal(scanner.Bytes(), &row); err != nil {
			continue
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if n > 0 && len(rows) > n {
		rows = rows[len(rows)-n:]
	}
	return rows, nil
}

func outputAssessmentLogTable(rows []map[string]interface{}) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIMESTAMP\tFUNCTION\tSTANDARD\tSCORE\tDECISION")
	for _, row := range rows {
		score := 0.0
		if s, ok := row["overall_score"].(float64); ok {
			score = s
		}
		decision := audit.DecisionAllowed
		if d, ok := row["execution_decision"].(string); ok {
			decision = audit.ExecutionDecision(d)
		}
		fmt.Fprintf(w, "%v\t%v\t%v\t%.1f\t%s\n",
			row["timestamp"], row["function_name"], row["standard_id"], score, decision)
	}
	return w.Flush()
}
