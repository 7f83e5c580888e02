package industry

import (
	"fmt"
	"slices"

	"github.com/erp/orderdesk/internal/domain/shared"
)

// Feature names a single capability flag
type Feature string

const (
	FeaturePointOfSale         Feature = "point_of_sale"
	FeatureRequisitions        Feature = "requisitions"
	FeatureExpiryTracking      Feature = "expiry_tracking"
	FeatureBatchTracking       Feature = "batch_tracking"
	FeatureRecipeManagement    Feature = "recipe_management"
	FeatureRoomService         Feature = "room_service"
	FeaturePatientTracking     Feature = "patient_tracking"
	FeaturePrescriptionControl Feature = "prescription_control"
	FeatureSerialTracking      Feature = "serial_tracking"
)

// AllFeatures lists every feature in display order
var AllFeatures = []Feature{
	FeaturePointOfSale,
	FeatureRequisitions,
	FeatureExpiryTracking,
	FeatureBatchTracking,
	FeatureRecipeManagement,
	FeatureRoomService,
	FeaturePatientTracking,
	FeaturePrescriptionControl,
	FeatureSerialTracking,
}

// ParseFeature validates a feature name
func ParseFeature(s string) (Feature, error) {
	f := Feature(NormalizeID(s))
	if !slices.Contains(AllFeatures, f) {
		return "", fmt.Errorf("%w: unknown feature '%s'", shared.ErrInvalidInput, s)
	}
	return f, nil
}

// FeatureSet is the read-only projection the UI uses to decide which actions
// and fields are available.
type FeatureSet struct {
	IndustryID   string       `json:"industry_id"`
	Flags        FeatureFlags `json:"flags"`
	Workflow     WorkflowType `json:"workflow_type"`
	Categories   []string     `json:"categories"`
	Departments  []string     `json:"departments"`
	Units        []string     `json:"units"`
	DefaultRoles []string     `json:"default_roles"`
}

// Features projects a config into its feature set
func Features(cfg Config) FeatureSet {
	cfg = cfg.Clone()
	return FeatureSet{
		IndustryID:   cfg.ID,
		Flags:        cfg.Features,
		Workflow:     cfg.Workflow,
		Categories:   cfg.Categories,
		Departments:  cfg.Departments,
		Units:        cfg.Units,
		DefaultRoles: cfg.DefaultRoles,
	}
}

// Enabled reports whether a feature is switched on
func (s FeatureSet) Enabled(f Feature) bool {
	switch f {
	case FeaturePointOfSale:
		return s.Flags.PointOfSale
	case FeatureRequisitions:
		return s.Flags.Requisitions
	case FeatureExpiryTracking:
		return s.Flags.ExpiryTracking
	case FeatureBatchTracking:
		return s.Flags.BatchTracking
	case FeatureRecipeManagement:
		return s.Flags.RecipeManagement
	case FeatureRoomService:
		return s.Flags.RoomService
	case FeaturePatientTracking:
		return s.Flags.PatientTracking
	case FeaturePrescriptionControl:
		return s.Flags.PrescriptionControl
	case FeatureSerialTracking:
		return s.Flags.SerialTracking
	}
	return false
}

// EnabledFeatures returns the switched-on features in display order
func (s FeatureSet) EnabledFeatures() []Feature {
	enabled := make([]Feature, 0, len(AllFeatures))
	for _, f := range AllFeatures {
		if s.Enabled(f) {
			enabled = append(enabled, f)
		}
	}
	return enabled
}
