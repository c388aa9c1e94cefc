package refdata

var builtinCategories = []Category{
	{Name: "Custom Prints", Code: "CP", Subcategories: []Subcategory{
		{Name: "Functional Parts", Code: "CP01"},
		{Name: "Decorative Items", Code: "CP02"},
		{Name: "Prototypes", Code: "CP03"},
		{Name: "Miniatures & Models", Code: "CP04"},
		{Name: "Architectural Models", Code: "CP05"},
		{Name: "Educational Models", Code: "CP06"},
	}},
	{Name: "Pre-Designed: Home & Living", Code: "PDHL", Subcategories: []Subcategory{
		{Name: "Organization & Storage", Code: "PDHL01"},
		{Name: "Kitchen & Dining", Code: "PDHL02"},
		{Name: "Bathroom Accessories", Code: "PDHL03"},
		{Name: "Home Decor", Code: "PDHL04"},
		{Name: "Lighting", Code: "PDHL05"},
	}},
	{Name: "Pre-Designed: Toys & Games", Code: "PDTG", Subcategories: []Subcategory{
		{Name: "Action Figures & Collectibles", Code: "PDTG01"},
		{Name: "Puzzles & Brain Teasers", Code: "PDTG02"},
		{Name: "Educational Toys", Code: "PDTG03"},
		{Name: "Board Game Accessories", Code: "PDTG04"},
		{Name: "Outdoor Toys", Code: "PDTG05"},
	}},
	{Name: "Pre-Designed: Tech & Gadgets", Code: "PDTC", Subcategories: []Subcategory{
		{Name: "Phone & Tablet Accessories", Code: "PDTC01"},
		{Name: "Computer Accessories", Code: "PDTC02"},
		{Name: "Gaming Accessories", Code: "PDTC03"},
		{Name: "Smart Home Mounts", Code: "PDTC04"},
		{Name: "Tool & Equipment Holders", Code: "PDTC05"},
	}},
	{Name: "Pre-Designed: Automotive", Code: "PDAU", Subcategories: []Subcategory{
		{Name: "Interior Accessories", Code: "PDAU01"},
		{Name: "Exterior Accessories", Code: "PDAU02"},
		{Name: "Tool Holders & Organizers", Code: "PDAU03"},
		{Name: "Replacement Parts", Code: "PDAU04"},
	}},
	{Name: "Pre-Designed: Jewelry & Fashion", Code: "PDJF", Subcategories: []Subcategory{
		{Name: "Rings & Bracelets", Code: "PDJF01"},
		{Name: "Pendants & Necklaces", Code: "PDJF02"},
		{Name: "Earrings", Code: "PDJF03"},
		{Name: "Brooches & Pins", Code: "PDJF04"},
		{Name: "Accessories", Code: "PDJF05"},
	}},
	{Name: "Pre-Designed: Office & Stationery", Code: "PDOF", Subcategories: []Subcategory{
		{Name: "Desk Organization", Code: "PDOF01"},
		{Name: "Writing Accessories", Code: "PDOF02"},
		{Name: "Bookmarks & Clips", Code: "PDOF03"},
		{Name: "Name Plates & Signs", Code: "PDOF04"},
	}},
	{Name: "Prototyping Services", Code: "PS", Subcategories: []Subcategory{
		{Name: "Rapid Prototyping", Code: "PS01"},
		{Name: "Iterative Development", Code: "PS02"},
		{Name: "Functional Testing", Code: "PS03"},
		{Name: "Visual/Presentation Models", Code: "PS04"},
		{Name: "Low-Volume Production", Code: "PS05"},
		{Name: "Design Consultation", Code: "PS06"},
	}},
	{Name: "Materials: Filaments by Type", Code: "MFFT", Subcategories: []Subcategory{
		{Name: "PLA Filament", Code: "MFFT01"},
		{Name: "PETG Filament", Code: "MFFT02"},
		{Name: "ABS Filament", Code: "MFFT03"},
		{Name: "TPU/Flexible", Code: "MFFT04"},
		{Name: "Specialty Filaments", Code: "MFFT05"},
		{Name: "Engineering Filaments", Code: "MFFT06"},
	}},
	{Name: "Materials: Filaments by Color", Code: "MFFC", Subcategories: []Subcategory{
		{Name: "Solid Colors", Code: "MFFC01"},
		{Name: "Multi-Color/Gradient", Code: "MFFC02"},
		{Name: "Metallic & Shimmer", Code: "MFFC03"},
		{Name: "Translucent & Clear", Code: "MFFC04"},
	}},
	{Name: "Materials: Accessories & Supplies", Code: "MFAS", Subcategories: []Subcategory{
		{Name: "Build Surface", Code: "MFAS01"},
		{Name: "Maintenance Tools", Code: "MFAS02"},
		{Name: "Post-Processing", Code: "MFAS03"},
		{Name: "Storage Solutions", Code: "MFAS04"},
	}},
}

var builtinMaterials = []Entry{
	{Code: "PLA", Name: "PLA", Description: "Polylactic Acid (Standard)"},
	{Code: "PLP", Name: "PLA+", Description: "Enhanced PLA"},
	{Code: "PET", Name: "PETG", Description: "Polyethylene Terephthalate Glycol"},
	{Code: "ABS", Name: "ABS", Description: "Acrylonitrile Butadiene Styrene"},
	{Code: "TPU", Name: "TPU", Description: "Thermoplastic Polyurethane (Flexible)"},
	{Code: "NYL", Name: "Nylon", Description: "Nylon (PA)"},
	{Code: "PCB", Name: "Polycarbonate", Description: "PC"},
	{Code: "ASA", Name: "ASA", Description: "UV-Resistant ABS Alternative"},
	{Code: "WDF", Name: "Wood-Fill", Description: "Wood composite filament"},
	{Code: "MTF", Name: "Metal-Fill", Description: "Metal composite filament"},
	{Code: "CFB", Name: "Carbon Fiber", Description: "Carbon fiber composite"},
	{Code: "GID", Name: "Glow-in-Dark", Description: "Glow-in-the-dark filament"},
	{Code: "CHG", Name: "Color-Change", Description: "Temperature/UV color-changing"},
	{Code: "RES", Name: "Resin", Description: "Resin (for SLA/DLP printers)"},
	{Code: "MLT", Name: "Multi-Material", Description: "Multiple materials used"},
	{Code: "CST", Name: "Custom", Description: "Custom material specification"},
	{Code: "NAP", Name: "N/A", Description: "Not applicable (services/non-material items)"},
}

var builtinColors = []Entry{
	{Code: "BLK", Name: "Black", Hex: "#000000"},
	{Code: "WHT", Name: "White", Hex: "#FFFFFF"},
	{Code: "GRY", Name: "Gray", Hex: "#808080"},
	{Code: "RED", Name: "Red", Hex: "#FF0000"},
	{Code: "BLU", Name: "Blue", Hex: "#0000FF"},
	{Code: "GRN", Name: "Green", Hex: "#00FF00"},
	{Code: "YEL", Name: "Yellow", Hex: "#FFFF00"},
	{Code: "ORG", Name: "Orange", Hex: "#FFA500"},
	{Code: "PUR", Name: "Purple", Hex: "#800080"},
	{Code: "PNK", Name: "Pink", Hex: "#FFC0CB"},
	{Code: "BRN", Name: "Brown", Hex: "#8B4513"},
	{Code: "TAN", Name: "Tan/Beige", Hex: "#D2B48C"},
}

var builtinSpecialColors = []Entry{
	{Code: "CLR", Name: "Clear/Transparent"},
	{Code: "TRA", Name: "Translucent"},
	{Code: "MTL", Name: "Metallic"},
	{Code: "GLD", Name: "Gold"},
	{Code: "SLV", Name: "Silver"},
	{Code: "BRZ", Name: "Bronze"},
	{Code: "CPR", Name: "Copper"},
	{Code: "RNB", Name: "Rainbow/Multi-Color"},
	{Code: "GRD", Name: "Gradient"},
	{Code: "GLT", Name: "Glitter"},
	{Code: "GID", Name: "Glow-in-Dark"},
	{Code: "CHG", Name: "Color-Changing"},
	{Code: "NAT", Name: "Natural (Uncolored)"},
	{Code: "CSM", Name: "Custom Color"},
	{Code: "MIX", Name: "Mixed/Multi-Color Print"},
}

var builtinSizes = []Entry{
	{Code: "XS", Name: "Extra Small", Description: "< 50mm"},
	{Code: "S", Name: "Small", Description: "50-100mm"},
	{Code: "M", Name: "Medium", Description: "100-150mm"},
	{Code: "L", Name: "Large", Description: "150-200mm"},
	{Code: "XL", Name: "Extra Large", Description: "200-250mm"},
	{Code: "XXL", Name: "Extra Extra Large", Description: "> 250mm"},
}

var builtinSpecialSizes = []Entry{
	{Code: "UNI", Name: "Universal/One Size"},
	{Code: "ADJ", Name: "Adjustable"},
	{Code: "VAR", Name: "Variable/Custom"},
	{Code: "SET", Name: "Set of multiple sizes"},
	{Code: "KG1", Name: "1 KG", Description: "For filament spools"},
	{Code: "G500", Name: "500g", Description: "For filament spools"},
	{Code: "G250", Name: "250g", Description: "For filament samples"},
}
