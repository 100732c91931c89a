package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adri-oss/adri-go/pkg/config"
)

func TestLoad_NoConfigFoundReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	withCwd(t, dir)
	clearConfigEnv(t)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.StrategyHybrid, cfg.ResolutionStrategy)
	assert.Equal(t, 75.0, cfg.Protection.DefaultMinScore)
}

func TestLoad_ExplicitPath(t *testing.T) {
	clearConfigEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
project:
  name: myproj
protection:
  default_min_score: 90
  default_failure_mode: warn
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "myproj", cfg.Project.Name)
	assert.Equal(t, 90.0, cfg.Protection.DefaultMinScore)
	assert.Equal(t, "warn", cfg.Protection.DefaultFailureMode)
	// Unset fields keep their defaults, not viper-zeroed.
	assert.Equal(t, "ADRI/contracts", cfg.Paths.Contracts)
}

func TestLoad_InlineEnvWins(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv(config.EnvConfigInline, "project:\n  name: inline-proj\n")

	cfg, err := config.Load("/should/not/be/read.yaml")
	require.NoError(t, err)
	assert.Equal(t, "inline-proj", cfg.Project.Name)
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv(config.EnvResolutionStrategy, "flat")
	t.Setenv(config.EnvPackageSubdirectory, "custom-adri")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.StrategyFlat, cfg.ResolutionStrategy)
	assert.Equal(t, "custom-adri", cfg.PackageSubdirectory)
}

func TestResolveContractPath_Hybrid(t *testing.T) {
	clearConfigEnv(t)
	cfg := config.Default()
	pkgDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(pkgDir, "adri"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "adri", "orders.yaml"), []byte("x"), 0o644))

	res := cfg.ResolveContractPath("orders", pkgDir)
	assert.Equal(t, config.SourcePackageLocal, res.Source)
	assert.True(t, res.Exists)

	res2 := cfg.ResolveContractPath("invoices", pkgDir)
	assert.Equal(t, config.SourceFallback, res2.Source)
}

func TestResolveContractPath_Flat(t *testing.T) {
	clearConfigEnv(t)
	cfg := config.Default()
	cfg.ResolutionStrategy = config.StrategyFlat
	res := cfg.ResolveContractPath("orders", t.TempDir())
	assert.Equal(t, config.SourceCentralized, res.Source)
}

func TestResolveContractPath_EnvOverrideWins(t *testing.T) {
	clearConfigEnv(t)
	dir := t.TempDir()
	t.Setenv(config.EnvContractsDir, dir)
	cfg := config.Default()
	cfg.ResolutionStrategy = config.StrategyPackageLocal

	res := cfg.ResolveContractPath("orders", t.TempDir())
	assert.Equal(t, config.SourceEnvOverride, res.Source)
	assert.Equal(t, filepath.Join(dir, "orders.yaml"), res.Path)
}

func withCwd(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		config.EnvConfigInline, config.EnvConfigPath, config.EnvConfigFile,
		config.EnvContractsDir, config.EnvResolutionStrategy, config.EnvPackageSubdirectory,
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_InvalidResolutionStrategyFallsBackToHybrid(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv(config.EnvResolutionStrategy, "bogus")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.StrategyHybrid, cfg.ResolutionStrategy)
}
