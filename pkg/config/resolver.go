package config

import (
	"os"
	"path/filepath"
)

// ContractSource names where a resolved contract path came from, for
// audit-grade traceability (spec §4.7).
type ContractSource string

const (
	SourceEnvOverride  ContractSource = "env_override"
	SourcePackageLocal ContractSource = "package_local"
	SourceCentralized  ContractSource = "centralized"
	SourceFallback     ContractSource = "fallback"
)

// ContractResolution is the result of resolving a standard name to a
// file path, carrying everything an auditor needs to reconstruct why
// that path was chosen (spec §4.7).
type ContractResolution struct {
	Path           string
	Source         ContractSource
	PackageContext string
	Exists         bool
	StrategyUsed   ResolutionStrategy
}

// ResolveContractPath resolves name to a standard file location under
// one of three strategies (spec §4.7):
//
//   - flat: always the centralized contracts directory.
//   - package_local: always <packageContext>/<subdir>/<name>.yaml.
//   - hybrid (default): package-local first, centralized fallback.
//
// ADRI_CONTRACTS_DIR overrides every strategy when set.
func (c *Config) ResolveContractPath(name, packageContext string) ContractResolution {
	strategy := c.ResolutionStrategy
	if strategy == "" {
		strategy = StrategyHybrid
	}

	if envDir := os.Getenv(EnvContractsDir); envDir != "" {
		path := filepath.Join(envDir, name+".yaml")
		return ContractResolution{
			Path: path, Source: SourceEnvOverride, PackageContext: packageContext,
			Exists: fileExists(path), StrategyUsed: strategy,
		}
	}

	centralized := filepath.Join(c.Paths.Contracts, name+".yaml")
	packageLocal := filepath.Join(packageContext, c.PackageSubdirectory, name+".yaml")

	switch strategy {
	case StrategyFlat:
		return ContractResolution{
			Path: centralized, Source: SourceCentralized, PackageContext: packageContext,
			Exists: fileExists(centralized), StrategyUsed: strategy,
		}
	case StrategyPackageLocal:
		return ContractResolution{
			Path: packageLocal, Source: SourcePackageLocal, PackageContext: packageContext,
			Exists: fileExists(packageLocal), StrategyUsed: strategy,
		}
	default: // hybrid
		if fileExists(packageLocal) {
			return ContractResolution{
				Path: packageLocal, Source: SourcePackageLocal, PackageContext: packageContext,
				Exists: true, StrategyUsed: strategy,
			}
		}
		return ContractResolution{
			Path: centralized, Source: SourceFallback, PackageContext: packageContext,
			Exists: fileExists(centralized), StrategyUsed: strategy,
		}
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
