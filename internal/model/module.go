package model

// ModuleID identifies a cabinet module in the catalog.
type ModuleID string

const (
	ModuleFridgeColumn    ModuleID = "CAFI"
	ModuleMicrowaveColumn ModuleID = "CAMI"
	ModuleOvenColumn      ModuleID = "CAOV"
	ModuleFreezerColumn   ModuleID = "CAFE"
	ModulePantry          ModuleID = "CSSP"
	ModuleDoublePantry    ModuleID = "CSDP"
	ModuleRangeBase       ModuleID = "BARA"
	ModuleDrawerBase      ModuleID = "BSDR"
	ModuleDoubleDoorBase  ModuleID = "BSDD"
	ModuleSingleDoorBase  ModuleID = "BSSD"
	ModuleIsland          ModuleID = "ISNA"
	ModuleUpperDoor       ModuleID = "BADI"
	ModuleDishwasher      ModuleID = "USDO"
)

// Category groups modules by their installation role.
type Category string

const (
	CategoryColumn Category = "Column"
	CategoryBase   Category = "Base"
	CategorySnack  Category = "Snack"
	CategoryUpper  Category = "Upper"
)

// HasWorktop reports whether modules of this category carry a countertop panel.
func (c Category) HasWorktop() bool {
	return c == CategoryBase || c == CategorySnack
}

// ModuleSpec is an immutable catalog entry. Dimensions are in mm, cost in USD.
type ModuleSpec struct {
	ID          ModuleID `json:"id"`
	Category    Category `json:"category"`
	Label       string   `json:"label"`
	Width       float64  `json:"width"`
	Depth       float64  `json:"depth"`
	Height      float64  `json:"height"`
	BaseCostUSD int      `json:"baseCostUSD"`
}

var moduleList = []ModuleSpec{
	{ID: ModuleFridgeColumn, Category: CategoryColumn, Label: "Fridge Unit", Width: 600, Depth: 595, Height: 2123, BaseCostUSD: 1200},
	{ID: ModuleMicrowaveColumn, Category: CategoryColumn, Label: "Microwave Unit", Width: 600, Depth: 595, Height: 2123, BaseCostUSD: 1200},
	{ID: ModuleOvenColumn, Category: CategoryColumn, Label: "Oven Unit", Width: 600, Depth: 595, Height: 2123, BaseCostUSD: 1200},
	{ID: ModuleFreezerColumn, Category: CategoryColumn, Label: "Freezer Unit", Width: 600, Depth: 595, Height: 2123, BaseCostUSD: 1200},
	{ID: ModulePantry, Category: CategoryColumn, Label: "Pantry", Width: 600, Depth: 595, Height: 2123, BaseCostUSD: 1200},
	{ID: ModuleDoublePantry, Category: CategoryColumn, Label: "Double Pantry", Width: 1256, Depth: 595, Height: 2123, BaseCostUSD: 1800},
	{ID: ModuleRangeBase, Category: CategoryBase, Label: "Range Unit", Width: 1200, Depth: 745, Height: 828, BaseCostUSD: 800},
	{ID: ModuleDrawerBase, Category: CategoryBase, Label: "Drawer Base", Width: 1200, Depth: 745, Height: 828, BaseCostUSD: 600},
	{ID: ModuleDoubleDoorBase, Category: CategoryBase, Label: "Double Door Base", Width: 1200, Depth: 595, Height: 633, BaseCostUSD: 500},
	{ID: ModuleSingleDoorBase, Category: CategoryBase, Label: "Single Door Base", Width: 600, Depth: 595, Height: 633, BaseCostUSD: 400},
	{ID: ModuleIsland, Category: CategorySnack, Label: "Island Extension", Width: 1200, Depth: 1240, Height: 932, BaseCostUSD: 2000},
	{ID: ModuleUpperDoor, Category: CategoryUpper, Label: "Upper Door", Width: 600, Depth: 595, Height: 722, BaseCostUSD: 400},
	{ID: ModuleDishwasher, Category: CategoryBase, Label: "Dishwasher Unit", Width: 600, Depth: 595, Height: 828, BaseCostUSD: 400},
}

var modulesByID = indexModules(moduleList)

func indexModules(list []ModuleSpec) map[ModuleID]ModuleSpec {
	m := make(map[ModuleID]ModuleSpec, len(list))
	for _, spec := range list {
		m[spec.ID] = spec
	}
	return m
}

// LookupModule returns the catalog entry for id.
func LookupModule(id ModuleID) (ModuleSpec, error) {
	spec, ok := modulesByID[id]
	if !ok {
		return ModuleSpec{}, unknownIdentifier(ErrCodeUnknownModule, "module", string(id))
	}
	return spec, nil
}

// Modules returns the catalog in declaration order. The slice is a copy.
func Modules() []ModuleSpec {
	out := make([]ModuleSpec, len(moduleList))
	copy(out, moduleList)
	return out
}

// ModuleIDs returns all catalog ids in declaration order.
func ModuleIDs() []ModuleID {
	ids := make([]ModuleID, len(moduleList))
	for i, spec := range moduleList {
		ids[i] = spec.ID
	}
	return ids
}
