package industry

// Builtin returns the profiles shipped with the service
func Builtin() []Config {
	return []Config{
		{
			ID:          GeneralID,
			Name:        "General Business",
			Categories:  []string{"Supplies", "Equipment", "Services", "Consumables", "Other"},
			Departments: []string{"Administration", "Operations", "Sales", "Stores"},
			Units:       []string{"pcs", "box", "pack", "kg", "litre"},
			Features: FeatureFlags{
				PointOfSale:  true,
				Requisitions: true,
			},
			DefaultRoles: []string{"admin", "manager", "staff"},
			Workflow:     WorkflowHybrid,
		},
		{
			ID:          "retail",
			Name:        "Retail",
			Categories:  []string{"Groceries", "Beverages", "Household", "Personal Care", "Electronics"},
			Departments: []string{"Shop Floor", "Storeroom", "Checkout"},
			Units:       []string{"pcs", "pack", "carton", "kg"},
			Features: FeatureFlags{
				PointOfSale:    true,
				ExpiryTracking: true,
				BatchTracking:  true,
			},
			DefaultRoles: []string{"admin", "store_manager", "cashier"},
			Workflow:     WorkflowSales,
		},
		{
			ID:          "hospitality",
			Name:        "Hospitality",
			Categories:  []string{"Food", "Beverages", "Linen", "Toiletries", "Cleaning"},
			Departments: []string{"Kitchen", "Bar", "Housekeeping", "Front Office", "Restaurant"},
			Units:       []string{"portion", "bottle", "plate", "kg", "litre", "pcs"},
			Features: FeatureFlags{
				PointOfSale:      true,
				Requisitions:     true,
				ExpiryTracking:   true,
				RecipeManagement: true,
				RoomService:      true,
			},
			DefaultRoles: []string{"admin", "manager", "chef", "bartender", "storekeeper"},
			Workflow:     WorkflowHybrid,
		},
		{
			ID:          "healthcare",
			Name:        "Healthcare",
			Categories:  []string{"Medication", "Consumables", "Surgical", "Laboratory", "Equipment"},
			Departments: []string{"Pharmacy", "Ward", "Theatre", "Laboratory", "Outpatient"},
			Units:       []string{"tablet", "vial", "ampoule", "box", "ml", "pcs"},
			Features: FeatureFlags{
				Requisitions:        true,
				ExpiryTracking:      true,
				BatchTracking:       true,
				PatientTracking:     true,
				PrescriptionControl: true,
			},
			DefaultRoles: []string{"admin", "pharmacist", "nurse", "doctor", "storekeeper"},
			Workflow:     WorkflowRequisition,
		},
		{
			ID:          "manufacturing",
			Name:        "Manufacturing",
			Categories:  []string{"Raw Materials", "Components", "Work In Progress", "Finished Goods", "Spares"},
			Departments: []string{"Production", "Maintenance", "Quality", "Warehouse"},
			Units:       []string{"pcs", "kg", "metre", "roll", "set"},
			Features: FeatureFlags{
				Requisitions:     true,
				BatchTracking:    true,
				RecipeManagement: true,
				SerialTracking:   true,
			},
			DefaultRoles: []string{"admin", "plant_manager", "supervisor", "storekeeper"},
			Workflow:     WorkflowRequisition,
		},
		{
			ID:          "agriculture",
			Name:        "Agriculture",
			Categories:  []string{"Seeds", "Fertilizers", "Pesticides", "Feed", "Tools"},
			Departments: []string{"Sales Counter", "Warehouse", "Field Service"},
			Units:       []string{"bag", "kg", "litre", "tonne", "pcs"},
			Features: FeatureFlags{
				PointOfSale:    true,
				ExpiryTracking: true,
				BatchTracking:  true,
			},
			DefaultRoles: []string{"admin", "sales_agent", "storekeeper"},
			Workflow:     WorkflowSales,
		},
		{
			ID:          "education",
			Name:        "Education",
			Categories:  []string{"Stationery", "Books", "Laboratory", "Sports", "Catering"},
			Departments: []string{"Administration", "Library", "Science Lab", "Kitchen", "Sports"},
			Units:       []string{"pcs", "ream", "box", "set"},
			Features: FeatureFlags{
				Requisitions:   true,
				SerialTracking: true,
			},
			DefaultRoles: []string{"admin", "bursar", "instructor", "storekeeper"},
			Workflow:     WorkflowRequisition,
		},
	}
}
