package industry

import (
	"context"
	"testing"

	"github.com/erp/orderdesk/internal/domain/industry"
	"github.com/erp/orderdesk/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestService(defaultID string) *IndustryService {
	return NewIndustryService(industry.NewRegistry(), defaultID, nil, zap.NewNop())
}

func TestIndustryService_ResolveKnown(t *testing.T) {
	svc := newTestService("")
	resp := svc.Resolve(context.Background(), "healthcare")

	assert.Equal(t, "healthcare", resp.ID)
	assert.Equal(t, "requisition", resp.WorkflowType)
	assert.True(t, resp.Features.PatientTracking)
	assert.False(t, resp.Fallback)
	assert.Equal(t, "healthcare", resp.ResolvedFrom)
}

func TestIndustryService_ResolveUnknownFallsBack(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	svc := NewIndustryService(industry.NewRegistry(), "", nil, zap.New(core))

	unknown := svc.Resolve(context.Background(), "doesnotexist")
	general := svc.Resolve(context.Background(), "general")

	assert.True(t, unknown.Fallback)
	assert.Equal(t, "doesnotexist", unknown.ResolvedFrom)
	assert.Equal(t, general.ID, unknown.ID)
	assert.Equal(t, general.Features, unknown.Features)
	assert.Equal(t, general.Units, unknown.Units)
	assert.Equal(t, 1, logs.FilterMessage("Unknown industry, using general profile").Len())
}

func TestIndustryService_EmptyUsesDefault(t *testing.T) {
	svc := newTestService(" Retail ")
	assert.Equal(t, "retail", svc.DefaultID())

	resp := svc.Resolve(context.Background(), "")
	assert.Equal(t, "retail", resp.ID)
	assert.False(t, resp.Fallback)

	assert.Equal(t, industry.GeneralID, newTestService("").DefaultID())
}

func TestIndustryService_List(t *testing.T) {
	list := newTestService("").List(context.Background())
	require.Len(t, list, len(industry.Builtin()))
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].ID, list[i].ID)
	}
}

func TestIndustryService_Features(t *testing.T) {
	fs := newTestService("").Features(context.Background(), "hospitality")

	assert.Equal(t, "hospitality", fs.IndustryID)
	assert.True(t, fs.AllowsSales)
	assert.True(t, fs.AllowsRequisitions)
	assert.Contains(t, fs.Enabled, "room_service")
	assert.Contains(t, fs.Enabled, "recipe_management")
	assert.NotContains(t, fs.Enabled, "patient_tracking")
	assert.NotEmpty(t, fs.Departments)
}

func TestIndustryService_FeatureEnabled(t *testing.T) {
	svc := newTestService("")
	ctx := context.Background()

	check, err := svc.FeatureEnabled(ctx, "healthcare", "Patient_Tracking")
	require.NoError(t, err)
	assert.True(t, check.Enabled)
	assert.Equal(t, "patient_tracking", check.Feature)

	check, err = svc.FeatureEnabled(ctx, "retail", "room_service")
	require.NoError(t, err)
	assert.False(t, check.Enabled)

	_, err = svc.FeatureEnabled(ctx, "retail", "teleportation")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}
