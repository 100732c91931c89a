package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// outputResult renders a command result in the format chosen by the
// global --output flag.
func outputResult(result interface{}) error {
	switch output {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)

	case "yaml":
		encoder := yaml.NewEncoder(os.Stdout)
		encoder.SetIndent(2)
		return encoder.Encode(result)

	case "table":
		return outputKeyValueTable(result)

	default:
		return fmt.Errorf("unsupported output format: %s", output)
	}
}

func outputKeyValueTable(result interface{}) error {
	data, ok := result.(map[string]interface{})
	if !ok {
		// Fallback to JSON for complex types
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for k, v := range data {
		fmt.Fprintf(w, "%s:\t%v\n", k, v)
	}
	return w.Flush()
}
