package profiles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/erp/orderdesk/internal/domain/industry"
	"github.com/erp/orderdesk/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func writeProfiles(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const pharmacyTOML = `
[[industries]]
id = " Pharmacy "
name = "Pharmacy"
workflow_type = "Sales"
categories = ["Medicines", "Supplements"]
units = ["box", "strip"]
default_roles = ["pharmacist", "cashier"]

[industries.features]
point_of_sale = true
expiry_tracking = true
prescription_control = true

[[industries]]
id = "retail"
name = "Retail (custom)"
workflow_type = "hybrid"
`

func TestLoad_TOML(t *testing.T) {
	configs, err := Load(writeProfiles(t, "profiles.toml", pharmacyTOML))
	require.NoError(t, err)
	require.Len(t, configs, 2)

	p := configs[0]
	assert.Equal(t, "pharmacy", p.ID)
	assert.Equal(t, industry.WorkflowSales, p.Workflow)
	assert.Equal(t, []string{"box", "strip"}, p.Units)
	assert.True(t, p.Features.PointOfSale)
	assert.True(t, p.Features.PrescriptionControl)
	assert.False(t, p.Features.Requisitions)
}

func TestLoad_JSON(t *testing.T) {
	path := writeProfiles(t, "profiles.json", `{"industries":[
		{"id":"lab","name":"Laboratory","workflow_type":"requisition","features":{"batch_tracking":true}}
	]}`)

	configs, err := Load(path)
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, industry.WorkflowRequisition, configs[0].Workflow)
	assert.True(t, configs[0].Features.BatchTracking)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	reg := industry.NewRegistry()
	before := reg.Count()

	n, err := Apply(reg, writeProfiles(t, "profiles.toml", pharmacyTOML), zap.New(core))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, before+1, reg.Count())

	pharmacy := reg.Resolve("PHARMACY")
	assert.Equal(t, "pharmacy", pharmacy.ID)
	assert.True(t, industry.Features(pharmacy).Enabled(industry.FeaturePrescriptionControl))

	retail, ok := reg.Lookup("retail")
	require.True(t, ok)
	assert.Equal(t, "Retail (custom)", retail.Name)
	assert.Equal(t, industry.WorkflowHybrid, retail.Workflow)

	entries := logs.FilterMessage("Industry profile loaded").All()
	require.Len(t, entries, 2)
	assert.Equal(t, false, entries[0].ContextMap()["replaced"])
	assert.Equal(t, true, entries[1].ContextMap()["replaced"])
}

func TestApply_EmptyPath(t *testing.T) {
	n, err := Apply(industry.NewRegistry(), "", zap.NewNop())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestApply_InvalidProfileInstallsNothing(t *testing.T) {
	path := writeProfiles(t, "profiles.toml", `
[[industries]]
id = "lab"
name = "Laboratory"
workflow_type = "requisition"

[[industries]]
id = "broken"
name = "Broken"
workflow_type = "barter"
`)
	reg := industry.NewRegistry()
	before := reg.Count()

	_, err := Apply(reg, path, zap.NewNop())
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	assert.Equal(t, before, reg.Count())
	assert.False(t, reg.Known("lab"))
}
