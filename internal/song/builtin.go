package song

// Built-in catalogs. Small representative slices of each game's base
// content; config packages extend them.

var arcaeaDifficulties = []string{"PST", "PRS", "FTR", "BYD"}

var arcaeaSongs = []Song{
	{Title: "Sayonara Hatsukoi", Package: "Arcaea", Difficulties: []string{"PST", "PRS", "FTR"}},
	{Title: "Fairytale", Package: "Arcaea", Difficulties: []string{"PST", "PRS", "FTR"}},
	{Title: "Grimheart", Package: "Arcaea", Difficulties: []string{"PST", "PRS", "FTR"}},
	{Title: "Lost Civilization", Package: "Arcaea", Difficulties: []string{"PST", "PRS", "FTR"}},
	{Title: "Tempestissimo", Package: "Black Fate", Difficulties: []string{"PST", "PRS", "FTR", "BYD"}},
	{Title: "Dantalion", Package: "Black Fate", Difficulties: []string{"PST", "PRS", "FTR"}},
	{Title: "Fracture Ray", Package: "Luminous Sky", Difficulties: []string{"PST", "PRS", "FTR"}},
	{Title: "Grievous Lady", Package: "Luminous Sky", Difficulties: []string{"PST", "PRS", "FTR"}},
	{Title: "Singularity", Package: "Eternal Core", Difficulties: []string{"PST", "PRS", "FTR"}},
	{Title: "Cyanine", Package: "Eternal Core", Difficulties: []string{"PST", "PRS", "FTR"}},
}

var phigrosDifficulties = []string{"EZ", "HD", "IN", "AT"}

var phigrosSongs = []Song{
	{Title: "Glaciaxion", Package: "Chapter Legacy", Difficulties: []string{"EZ", "HD", "IN"}},
	{Title: "Cereris", Package: "Chapter Legacy", Difficulties: []string{"EZ", "HD", "IN"}},
	{Title: "Sunset Sail", Package: "Chapter Legacy", Difficulties: []string{"EZ", "HD", "IN"}},
	{Title: "Rrhar'il", Package: "Chapter 6", Difficulties: []string{"EZ", "HD", "IN", "AT"}},
	{Title: "Igallta", Package: "Chapter 6", Difficulties: []string{"EZ", "HD", "IN", "AT"}},
	{Title: "Spasmodic", Package: "Chapter 5", Difficulties: []string{"EZ", "HD", "IN", "AT"}},
	{Title: "Burn", Package: "Chapter 5", Difficulties: []string{"EZ", "HD", "IN"}},
	{Title: "Shadow", Package: "Side Story", Difficulties: []string{"EZ", "HD", "IN"}},
	{Title: "Reimei", Package: "Side Story", Difficulties: []string{"EZ", "HD", "IN"}},
}
