package lexicon

// Zurich dialect. Spelling is not standardised, so number words carry
// several variants each and doubled vowels are collapsed during
// normalization.
func init() {
	register(SwissGerman, definition{
		fillers: []string{
			"äh", "ähm", "ehm", "hm", "hmm", "also", "halt", "gäll", "öppe",
			"jo", "ja", "so", "nu", "emal", "mal", "äbe", "sozäge",
		},
		numbers: map[int][]string{
			1:  {"eis", "ein", "eine", "eini", "ei", "es", "e", "äs", "ä", "en"},
			2:  {"zwei", "zwöi", "zwee", "zwo", "zwai", "zwoi"},
			3:  {"drü", "drüü", "drei", "drie"},
			4:  {"vier", "vieri", "viär", "feer"},
			5:  {"föif", "füüf", "füf", "fünf", "foif"},
			6:  {"sächs", "sechs", "säx", "sächsi"},
			7:  {"sibe", "sibä", "siebe", "sieben", "sibni"},
			8:  {"acht", "achti", "achte"},
			9:  {"nün", "nüün", "neun", "nüni"},
			10: {"zäh", "zää", "zäni", "zehn"},
			11: {"elf", "elfi", "öuf"},
			12: {"zwölf", "zwölfi", "zwöuf"},
		},
		synonyms: map[string][]string{
			"kaffee":        {"kafi", "kaffi", "kaffe", "gaffi", "kafe"},
			"milchkaffee":   {"schale", "schäli", "milchkafi", "milchkaffi"},
			"espresso":      {"schpresso", "presso", "espressi"},
			"gipfeli":       {"gipfäli", "gipfali", "gipfel"},
			"brötchen":      {"weggli", "mütschli", "bürli", "brötli"},
			"bier":          {"stange", "schtange", "bierli", "stangä"},
			"mineralwasser": {"mineral", "minerali", "sprudel", "mineräli"},
			"kartoffeln":    {"härdöpfel", "herdöpfel", "erdäpfel", "härdöpfu"},
			"würstchen":     {"wienerli", "würstli", "wurschtli"},
			"apfelsaft":     {"süessmost", "süssmost", "öpfelsaft"},
			"tee":           {"thee", "tii", "teeli"},
			"wein":          {"wii", "wy", "wiiu"},
			"orangensaft":   {"orangschesaft", "oranschesaft", "o-saft"},
			"pommes":        {"fritten", "frittli", "pommfrit", "pomfrit"},
			"rösti":         {"röschti", "röstii"},
			"glace":         {"glacé", "glassé", "glacee"},
			"frühstück":     {"zmorge", "zmorgä"},
		},
		collapseVowels: true,
		sizes: map[Size][]string{
			SizeSmall:  {"chli", "chlii", "chlini", "chlis", "chline", "chliine", "klein", "kleini"},
			SizeMedium: {"mittel", "mittleri", "mittlers", "normal", "normali", "normals"},
			SizeLarge:  {"gross", "grossi", "grosse", "grosses", "groß"},
		},
		modifications: map[ModificationType][]string{
			ModAdd:    {"mit extra", "mit", "extra", "zusätzlich", "dezue mit"},
			ModRemove: {"ohni", "ohne", "kei", "keis", "keini", "nöd mit"},
			ModChange: {"anstell vo", "anstelle vo", "statt", "anstatt", "ersetz", "tuusch"},
		},
		conjunctions: []string{"und", "u", "ond", "oder", "plus", "dezue"},
		markers: []string{
			"bitte", "merci", "wenn möglich", "wänn möglich", "chönd sie",
			"chönntet sie", "wär nett",
		},
		patterns: []string{
			`^(?:ich )?hätt(?:i|e)? gern(?:e)? (.+)$`,
			`^(?:ich )?möcht(?:i|e)? (.+)$`,
			`^(?:ich )?nimm(?:e)? (.+)$`,
			`^gib(?:sch)? mir (.+)$`,
			`^für mich (.+)$`,
			`^(.+) bitte$`,
		},
	})
}
