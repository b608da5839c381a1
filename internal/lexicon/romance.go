package lexicon

func init() {
	register(French, definition{
		fillers: []string{
			"euh", "heu", "ben", "bah", "bon", "alors", "hein", "genre", "voilà", "donc",
		},
		numbers: map[int][]string{
			1:  {"un", "une"},
			2:  {"deux"},
			3:  {"trois"},
			4:  {"quatre"},
			5:  {"cinq"},
			6:  {"six"},
			7:  {"sept"},
			8:  {"huit"},
			9:  {"neuf"},
			10: {"dix"},
			11: {"onze"},
			12: {"douze"},
		},
		synonyms: map[string][]string{
			"café":           {"caf", "kawa"},
			"bière":          {"pression", "binouze"},
			"eau minérale":   {"eau pétillante", "eau gazeuse", "pétillante", "perrier"},
			"frites":         {"fritte", "patates"},
			"croissant":      {"croiss"},
			"chocolat chaud": {"choco", "chocolat au lait chaud"},
		},
		sizes: map[Size][]string{
			SizeSmall:  {"petit", "petite", "petits", "petites"},
			SizeMedium: {"moyen", "moyenne", "moyens", "moyennes", "normal", "normale"},
			SizeLarge:  {"grand", "grande", "grands", "grandes"},
		},
		modifications: map[ModificationType][]string{
			ModAdd:    {"en plus", "avec", "supplément", "rajoutez"},
			ModRemove: {"pas de", "sans", "enlevez"},
			ModChange: {"à la place de", "au lieu de", "remplacez"},
		},
		conjunctions: []string{"et", "ou", "puis"},
		markers: []string{
			"s'il vous plaît", "s'il te plaît", "svp", "merci", "si possible",
		},
		patterns: []string{
			`^je voudrais (.+)$`,
			`^j'aimerais (.+)$`,
			`^je (?:prends|vais prendre) (.+)$`,
			`^donne(?:z)?-moi (.+)$`,
			`^pour moi (.+)$`,
			`^(.+) s'il (?:vous|te) plaît$`,
		},
	})

	register(Italian, definition{
		fillers: []string{
			"ehm", "eh", "allora", "cioè", "tipo", "beh", "mah", "insomma", "ecco", "dunque",
		},
		numbers: map[int][]string{
			1:  {"un", "uno", "una"},
			2:  {"due"},
			3:  {"tre"},
			4:  {"quattro"},
			5:  {"cinque"},
			6:  {"sei"},
			7:  {"sette"},
			8:  {"otto"},
			9:  {"nove"},
			10: {"dieci"},
			11: {"undici"},
			12: {"dodici"},
		},
		synonyms: map[string][]string{
			"caffè":           {"caffe", "espresso", "caffé"},
			"birra":           {"bionda", "birretta"},
			"acqua frizzante": {"acqua gassata", "frizzante", "gassata"},
			"patatine":        {"patate fritte", "patatine fritte"},
			"cornetto":        {"brioche", "croissant"},
		},
		sizes: map[Size][]string{
			SizeSmall:  {"piccolo", "piccola", "piccoli", "piccole"},
			SizeMedium: {"medio", "media", "medi", "medie", "normale", "normali"},
			SizeLarge:  {"grande", "grandi"},
		},
		modifications: map[ModificationType][]string{
			ModAdd:    {"in più", "con", "extra", "aggiungi"},
			ModRemove: {"senza", "niente", "togli"},
			ModChange: {"al posto di", "invece di", "sostituisci"},
		},
		conjunctions: []string{"e", "ed", "o", "oppure", "poi"},
		markers: []string{
			"per favore", "per piacere", "grazie", "se possibile",
		},
		patterns: []string{
			`^vorrei (.+)$`,
			`^(?:prendo|prenderei) (.+)$`,
			`^(?:mi dà|mi dia|dammi) (.+)$`,
			`^per me (.+)$`,
			`^(.+) per favore$`,
		},
	})
}
