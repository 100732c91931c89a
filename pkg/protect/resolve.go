package protect

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/adri-oss/adri-go/pkg/adri"
	"github.com/adri-oss/adri-go/pkg/generator"
	"github.com/adri-oss/adri-go/pkg/standards"
)

// defaultInferredPattern mirrors spec §4.8 step 2's default
// "{function_name}_{data_param}" naming convention.
const defaultInferredPattern = "%s_%s"

// resolveAndEnsure implements spec §4.8 steps 2-3: resolve a standard
// source by precedence, then guarantee a usable *adri.Standard exists,
// auto-generating and persisting one if permitted. It returns the
// standard plus a human-readable description of where it came from,
// used by the BLOCKED diagnostic (spec §7).
func (g *Guard) resolveAndEnsure(data *adri.Dataset, opts RunOptions) (*adri.Standard, string, error) {
	if opts.StandardDict != nil {
		return opts.StandardDict, "inline standard", nil
	}

	name := opts.StandardName
	if name == "" && opts.StandardFile == "" {
		name = fmt.Sprintf(defaultInferredPattern, opts.FunctionName, opts.DataParam)
	}

	if name != "" && g.bundled != nil && g.bundled.Exists(name) {
		std, err := g.bundled.Load(name)
		if err != nil {
			return nil, "", &adri.ProtectionError{
				Message:      fmt.Sprintf("adri: bundled standard %q failed to load: %v", name, err),
				FunctionName: opts.FunctionName,
				Err:          err,
			}
		}
		return std, name + " (bundled)", nil
	}

	path := opts.StandardFile
	if path == "" && name != "" {
		res := g.cfg.ResolveContractPath(name, g.packageDir)
		path = res.Path
	}

	if path != "" {
		if std, err := standards.LoadFile(path); err == nil {
			return std, path, nil
		} else if !os.IsNotExist(err) {
			return nil, "", &adri.ProtectionError{
				Message:      fmt.Sprintf("adri: standard file %q is invalid: %v", path, err),
				FunctionName: opts.FunctionName,
				Err:          err,
			}
		}
	}

	if !opts.AutoGenerate {
		return nil, "", &adri.ProtectionError{
			Message:      fmt.Sprintf("adri: standard file not found for %s (auto_generate disabled)", opts.FunctionName),
			FunctionName: opts.FunctionName,
		}
	}

	sampled := data.Head(g.cfg.Assessment.MaxSampleRows)
	cfg := g.genCfg
	if name != "" {
		cfg.StandardName = name
		cfg.StandardID = name
	}
	std, err := generator.Generate(sampled, cfg)
	if err != nil {
		return nil, "", &adri.ProtectionError{
			Message:      fmt.Sprintf("adri: auto-generation failed for %s: %v", opts.FunctionName, err),
			FunctionName: opts.FunctionName,
			Err:          err,
		}
	}

	if path == "" {
		path = filepath.Join(g.cfg.Paths.Contracts, name+".yaml")
	}
	if err := persistStandard(std, path); err != nil {
		return nil, "", &adri.ProtectionError{
			Message:      fmt.Sprintf("adri: could not persist generated standard to %q: %v", path, err),
			FunctionName: opts.FunctionName,
			Err:          err,
		}
	}
	return std, path + " (auto-generated)", nil
}

func persistStandard(std *adri.Standard, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := yaml.Marshal(std)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
