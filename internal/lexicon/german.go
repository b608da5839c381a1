package lexicon

func init() {
	register(German, definition{
		fillers: []string{
			"äh", "ähm", "öhm", "hm", "hmm", "also", "halt", "mal", "eben",
			"ja", "naja", "so", "quasi",
		},
		numbers: map[int][]string{
			1:  {"ein", "eine", "einen", "einem", "einer", "eins"},
			2:  {"zwei", "zwo"},
			3:  {"drei"},
			4:  {"vier"},
			5:  {"fünf"},
			6:  {"sechs"},
			7:  {"sieben"},
			8:  {"acht"},
			9:  {"neun"},
			10: {"zehn"},
			11: {"elf"},
			12: {"zwölf", "dutzend"},
		},
		synonyms: map[string][]string{
			"kaffee":        {"käffchen", "kaffe"},
			"brötchen":      {"semmel", "semmeln", "schrippe", "schrippen", "wecken"},
			"mineralwasser": {"sprudel", "selters", "sprudelwasser"},
			"pommes":        {"fritten", "pommes frites"},
			"kartoffeln":    {"erdäpfel", "grumbeere"},
			"apfelschorle":  {"apfelsaftschorle", "schorle"},
			"croissant":     {"hörnchen", "gipfel"},
		},
		sizes: map[Size][]string{
			SizeSmall:  {"klein", "kleine", "kleinen", "kleiner", "kleines"},
			SizeMedium: {"mittel", "mittlere", "mittleren", "mittlerer", "mittleres", "normal", "normale", "normalen", "normaler", "normales"},
			SizeLarge:  {"groß", "große", "großen", "großer", "großes", "gross", "grosse", "grossen", "grosser", "grosses"},
		},
		modifications: map[ModificationType][]string{
			ModAdd:    {"mit extra", "mit", "extra", "zusätzlich"},
			ModRemove: {"ohne", "kein", "keine", "keinen", "nicht mit"},
			ModChange: {"anstelle von", "statt", "anstatt", "stattdessen"},
		},
		conjunctions: []string{"und", "oder", "sowie", "plus", "dazu"},
		markers: []string{
			"bitte", "danke", "wenn möglich", "könnten sie", "wäre nett",
		},
		patterns: []string{
			`^ich (?:hätte|möchte|nehme|will|würde) gern(?:e)? (.+)$`,
			`^ich (?:hätte|möchte|nehme|will|bekomme) (.+)$`,
			`^(?:geben sie|gib) mir (.+)$`,
			`^für mich (.+)$`,
			`^(.+) bitte$`,
		},
	})
}
