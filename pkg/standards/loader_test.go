package standards_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adri-oss/adri-go/pkg/adri"
	"github.com/adri-oss/adri-go/pkg/standards"
)

func writeStandard(t *testing.T, dir, name, id string) {
	t.Helper()
	doc := `
standards:
  id: ` + id + `
  name: ` + name + `
  version: "1.0.0"
requirements:
  overall_minimum: 75
  field_requirements:
    amount:
      type: float
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(doc), 0o644))
}

func TestLoader_LoadListExistsMetadata(t *testing.T) {
	dir := t.TempDir()
	writeStandard(t, dir, "invoices", "invoices-v1")
	writeStandard(t, dir, "customers", "customers-v1")

	loader, err := standards.NewFromDir(dir)
	require.NoError(t, err)

	names, err := loader.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"customers", "invoices"}, names)

	assert.True(t, loader.Exists("invoices"))
	assert.False(t, loader.Exists("missing"))

	std, err := loader.Load("invoices")
	require.NoError(t, err)
	assert.Equal(t, "invoices-v1", std.Standards.ID)
	assert.Equal(t, 75.0, std.Requirements.OverallMinimum)

	meta, err := loader.Metadata("customers")
	require.NoError(t, err)
	assert.Equal(t, "customers-v1", meta.ID)
}

func TestLoader_LoadReturnsCloneNotSharedPointer(t *testing.T) {
	dir := t.TempDir()
	writeStandard(t, dir, "invoices", "invoices-v1")
	loader, err := standards.NewFromDir(dir)
	require.NoError(t, err)

	a, err := loader.Load("invoices")
	require.NoError(t, err)
	b, err := loader.Load("invoices")
	require.NoError(t, err)

	a.Requirements.FieldRequirements["amount"] = adri.FieldRule{Type: adri.FieldString}
	assert.Equal(t, adri.FieldFloat, b.Requirements.FieldRequirements["amount"].Type, "cached copies must be immutable to consumers")
}

func TestLoader_MissingStandard(t *testing.T) {
	dir := t.TempDir()
	loader, err := standards.NewFromDir(dir)
	require.NoError(t, err)

	_, err = loader.Load("ghost")
	require.Error(t, err)
	var notFound *adri.StandardNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestLoader_InvalidStandard(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("standards: {}\n"), 0o644))

	loader, err := standards.NewFromDir(dir)
	require.NoError(t, err)

	_, err = loader.Load("broken")
	require.Error(t, err)
	var invalid *adri.InvalidStandardError
	assert.ErrorAs(t, err, &invalid)
}

func TestNewFromDir_MissingDirectory(t *testing.T) {
	_, err := standards.NewFromDir(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	var notFound *adri.StandardsDirectoryNotFoundError
	assert.ErrorAs(t, err, &notFound)
}
