package model

func base(moduleID ModuleID, x, y float64, key string) PlacementDefinition {
	return PlacementDefinition{ModuleID: moduleID, X: x, Y: y, Key: key}
}

func optionalBase(moduleID ModuleID, x, y float64, note, key string) PlacementDefinition {
	return PlacementDefinition{ModuleID: moduleID, X: x, Y: y, Note: note, Optional: true, Key: key}
}

func addition(moduleID ModuleID, roomID string, x, y float64, note, key string) PlacementDefinition {
	return PlacementDefinition{ModuleID: moduleID, RoomID: roomID, X: x, Y: y, Note: note, Optional: true, Key: key}
}

var backKitchen = LayoutTemplate{
	ID:           LayoutBackKitchen,
	Name:         "2X Kitchen (Show + Prep)",
	Summary:      "Dual-room layout with a showcase kitchen and offset prep space for parallel workflows.",
	DefaultScale: MillimeterToPixel,
	Rooms: []RoomTemplate{
		{
			ID: "show", Label: "Show Kitchen", Width: 6000, Depth: 3500,
			Placements: []PlacementDefinition{
				base(ModuleFridgeColumn, 200, 0, "show:CAFI-1"),
				base(ModuleOvenColumn, 800, 0, "show:CAOV-1"),
				base(ModuleMicrowaveColumn, 1400, 0, "show:CAMI-1"),
				base(ModuleRangeBase, 2000, 0, "show:BARA-1"),
				base(ModuleDoubleDoorBase, 3200, 0, "show:BSDD-1"),
				base(ModulePantry, 4400, 0, "show:CSSP-1"),
				optionalBase(ModuleSingleDoorBase, 5000, 0, "", "show:BSSD-1"),
				optionalBase(ModuleIsland, 1800, 1900, "Show island left", "show:ISNA-1"),
				optionalBase(ModuleIsland, 3200, 1900, "Show island right", "show:ISNA-2"),
			},
		},
		{
			ID: "prep", Label: "Prep Kitchen", Width: 4500, Depth: 3000,
			Origin: Point{X: 7000, Y: 0},
			Placements: []PlacementDefinition{
				base(ModulePantry, 7100, 0, "prep:CSSP-1"),
				base(ModuleDishwasher, 7700, 0, "prep:USDO-1"),
				base(ModuleDoubleDoorBase, 8300, 0, "prep:BSDD-1"),
				optionalBase(ModuleDrawerBase, 9500, 0, "", "prep:BSDR-1"),
				base(ModuleFreezerColumn, 10900, 0, "prep:CAFE-1"),
			},
		},
	},
	RemovalOrder: []string{
		"show:ISNA-1",
		"show:ISNA-2",
		"show:BSSD-1",
		"prep:BSDR-1",
		"show:BSDD-1",
	},
	AdditionQueue: []PlacementDefinition{
		addition(ModuleUpperDoor, "show", 200, 0, "Upper fridge cab", "show:BADI-1"),
		addition(ModuleUpperDoor, "show", 800, 0, "Upper oven cab", "show:BADI-2"),
		addition(ModuleUpperDoor, "show", 2000, 0, "Upper range cab", "show:BADI-3"),
		addition(ModuleSingleDoorBase, "prep", 8900, 0, "Prep single base", "prep:BSSD-1"),
	},
}

var dualIsland = LayoutTemplate{
	ID:           LayoutDualIsland,
	Name:         "Dual Island",
	Summary:      "Symmetric dual-island layout for entertaining and prep zones.",
	DefaultScale: MillimeterToPixel,
	Rooms: []RoomTemplate{
		{
			ID: "primary", Label: "Dual Island Room", Width: 6000, Depth: 4000,
			Placements: []PlacementDefinition{
				base(ModuleFridgeColumn, 200, 0, "primary:CAFI-1"),
				base(ModuleDishwasher, 800, 0, "primary:USDO-1"),
				base(ModuleRangeBase, 1400, 0, "primary:BARA-1"),
				base(ModuleDoubleDoorBase, 2600, 0, "primary:BSDD-1"),
				base(ModulePantry, 3800, 0, "primary:CSSP-1"),
				base(ModuleOvenColumn, 4400, 0, "primary:CAOV-1"),
				base(ModuleMicrowaveColumn, 5000, 0, "primary:CAMI-1"),
				optionalBase(ModuleIsland, 1500, 2000, "Wet island", "primary:ISNA-1"),
				optionalBase(ModuleIsland, 3000, 2600, "Dry island", "primary:ISNA-2"),
			},
		},
	},
	RemovalOrder: []string{"primary:ISNA-1", "primary:ISNA-2", "primary:BSDD-1"},
	AdditionQueue: []PlacementDefinition{
		addition(ModuleUpperDoor, "primary", 200, 0, "Upper fridge cab", "primary:BADI-1"),
		addition(ModuleUpperDoor, "primary", 800, 0, "Upper dishwasher cab", "primary:BADI-2"),
		addition(ModuleUpperDoor, "primary", 1400, 0, "Upper range cab", "primary:BADI-3"),
	},
}

var brokenPlan = LayoutTemplate{
	ID:           LayoutBrokenPlan,
	Name:         "Broken Plan Kitchen",
	Summary:      "Partition-ready layout balancing pantry storage and preparation zones.",
	DefaultScale: MillimeterToPixel,
	Rooms: []RoomTemplate{
		{
			ID: "primary", Label: "Broken Plan Kitchen", Width: 6500, Depth: 4200,
			Placements: []PlacementDefinition{
				base(ModuleFridgeColumn, 200, 0, "primary:CAFI-1"),
				base(ModuleDishwasher, 800, 0, "primary:USDO-1"),
				base(ModuleRangeBase, 1400, 0, "primary:BARA-1"),
				base(ModuleDoubleDoorBase, 2600, 0, "primary:BSDD-1"),
				{ModuleID: ModuleDoublePantry, X: 3800, Y: 0, Note: "Ends at 5056", Key: "primary:CSDP-1"},
				base(ModuleMicrowaveColumn, 5056, 0, "primary:CAMI-1"),
				base(ModuleOvenColumn, 5656, 0, "primary:CAOV-1"),
				optionalBase(ModuleIsland, 2600, 2400, "", "primary:ISNA-1"),
			},
		},
	},
	RemovalOrder: []string{"primary:ISNA-1", "primary:BSDD-1"},
	AdditionQueue: []PlacementDefinition{
		addition(ModuleUpperDoor, "primary", 200, 0, "Upper fridge cab", "primary:BADI-1"),
		addition(ModuleUpperDoor, "primary", 800, 0, "Upper dishwasher cab", "primary:BADI-2"),
		addition(ModuleUpperDoor, "primary", 1400, 0, "Upper range cab", "primary:BADI-3"),
		addition(ModuleSingleDoorBase, "primary", 6200, 0, "End cap base", "primary:BSSD-1"),
	},
}

var disappearingLinear = LayoutTemplate{
	ID:           LayoutDisappearingLinear,
	Name:         "Disappearing Linear",
	Summary:      "Concealed functional wall with a monolithic island for minimal visual clutter.",
	DefaultScale: MillimeterToPixel,
	Rooms: []RoomTemplate{
		{
			ID: "primary", Label: "Linear Kitchen", Width: 5200, Depth: 3600,
			Placements: []PlacementDefinition{
				{ModuleID: ModuleDoublePantry, X: 200, Y: 0, Note: "Ends at 1456", Key: "primary:CSDP-1"},
				base(ModuleFridgeColumn, 1456, 0, "primary:CAFI-1"),
				base(ModuleMicrowaveColumn, 2056, 0, "primary:CAMI-1"),
				base(ModuleOvenColumn, 2656, 0, "primary:CAOV-1"),
				base(ModuleRangeBase, 3256, 0, "primary:BARA-1"),
				base(ModulePantry, 4456, 0, "primary:CSSP-1"),
				optionalBase(ModuleIsland, 1400, 2200, "", "primary:ISNA-1"),
				optionalBase(ModuleIsland, 2800, 2200, "", "primary:ISNA-2"),
			},
		},
	},
	RemovalOrder: []string{"primary:ISNA-1", "primary:ISNA-2"},
	AdditionQueue: []PlacementDefinition{
		addition(ModuleUpperDoor, "primary", 1456, 0, "Upper fridge cab", "primary:BADI-1"),
		addition(ModuleUpperDoor, "primary", 2056, 0, "Upper microwave cab", "primary:BADI-2"),
		addition(ModuleUpperDoor, "primary", 3256, 0, "Upper range cab", "primary:BADI-3"),
	},
}

var layoutTemplates = map[LayoutID]LayoutTemplate{
	LayoutBackKitchen:        backKitchen,
	LayoutDualIsland:         dualIsland,
	LayoutBrokenPlan:         brokenPlan,
	LayoutDisappearingLinear: disappearingLinear,
}
