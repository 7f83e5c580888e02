package industry

import (
	"fmt"
	"slices"
	"strings"

	"github.com/erp/orderdesk/internal/domain/shared"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// GeneralID is the identifier of the fallback profile
const GeneralID = "general"

// WorkflowType selects how orders are raised in an industry
type WorkflowType string

const (
	WorkflowSales       WorkflowType = "sales"
	WorkflowRequisition WorkflowType = "requisition"
	WorkflowHybrid      WorkflowType = "hybrid"
)

// IsValid checks if the workflow type is known
func (w WorkflowType) IsValid() bool {
	switch w {
	case WorkflowSales, WorkflowRequisition, WorkflowHybrid:
		return true
	}
	return false
}

// String returns the string representation
func (w WorkflowType) String() string {
	return string(w)
}

// AllowsSales reports whether direct sales are part of the workflow
func (w WorkflowType) AllowsSales() bool {
	return w == WorkflowSales || w == WorkflowHybrid
}

// AllowsRequisitions reports whether internal requisitions are part of the workflow
func (w WorkflowType) AllowsRequisitions() bool {
	return w == WorkflowRequisition || w == WorkflowHybrid
}

// FeatureFlags are the nine capability switches of an industry profile
type FeatureFlags struct {
	PointOfSale         bool `json:"point_of_sale" mapstructure:"point_of_sale"`
	Requisitions        bool `json:"requisitions" mapstructure:"requisitions"`
	ExpiryTracking      bool `json:"expiry_tracking" mapstructure:"expiry_tracking"`
	BatchTracking       bool `json:"batch_tracking" mapstructure:"batch_tracking"`
	RecipeManagement    bool `json:"recipe_management" mapstructure:"recipe_management"`
	RoomService         bool `json:"room_service" mapstructure:"room_service"`
	PatientTracking     bool `json:"patient_tracking" mapstructure:"patient_tracking"`
	PrescriptionControl bool `json:"prescription_control" mapstructure:"prescription_control"`
	SerialTracking      bool `json:"serial_tracking" mapstructure:"serial_tracking"`
}

// Config is a static industry profile: vocabulary, feature switches and the
// workflow the UI should offer.
type Config struct {
	ID           string       `json:"id" mapstructure:"id"`
	Name         string       `json:"name" mapstructure:"name"`
	Categories   []string     `json:"categories" mapstructure:"categories"`
	Departments  []string     `json:"departments" mapstructure:"departments"`
	Units        []string     `json:"units" mapstructure:"units"`
	Features     FeatureFlags `json:"features" mapstructure:"features"`
	DefaultRoles []string     `json:"default_roles" mapstructure:"default_roles"`
	Workflow     WorkflowType `json:"workflow_type" mapstructure:"workflow_type"`
}

// Validate checks the profile can be registered
func (c Config) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("%w: industry id cannot be empty", shared.ErrInvalidInput)
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: industry '%s' has no name", shared.ErrInvalidInput, c.ID)
	}
	if !c.Workflow.IsValid() {
		return fmt.Errorf("%w: industry '%s' has invalid workflow type '%s'", shared.ErrInvalidInput, c.ID, c.Workflow)
	}
	return nil
}

// Clone returns a deep copy so the registry never shares slices with callers
func (c Config) Clone() Config {
	c.Categories = slices.Clone(c.Categories)
	c.Departments = slices.Clone(c.Departments)
	c.Units = slices.Clone(c.Units)
	c.DefaultRoles = slices.Clone(c.DefaultRoles)
	return c
}

// NormalizeID trims and lower-cases an industry identifier. A Caser holds
// state, so one is built per call.
func NormalizeID(id string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(id))
}
