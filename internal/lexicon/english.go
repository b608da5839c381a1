package lexicon

func init() {
	register(English, definition{
		fillers: []string{
			"um", "umm", "uh", "uhm", "er", "erm", "hmm", "well", "so", "okay", "ok", "yeah", "just",
		},
		numbers: map[int][]string{
			1:  {"a", "an", "one"},
			2:  {"two"},
			3:  {"three"},
			4:  {"four"},
			5:  {"five"},
			6:  {"six"},
			7:  {"seven"},
			8:  {"eight"},
			9:  {"nine"},
			10: {"ten"},
			11: {"eleven"},
			12: {"twelve", "dozen"},
		},
		synonyms: map[string][]string{
			"coffee":          {"cuppa", "joe", "coffees"},
			"french fries":    {"fries", "chips"},
			"sparkling water": {"soda water", "seltzer"},
			"soda":            {"pop", "soft drink"},
		},
		sizes: map[Size][]string{
			SizeSmall:  {"small", "little", "short", "mini"},
			SizeMedium: {"medium", "regular", "normal"},
			SizeLarge:  {"large", "big", "huge", "xl"},
		},
		modifications: map[ModificationType][]string{
			ModAdd:    {"with extra", "with", "extra", "add"},
			ModRemove: {"hold the", "without", "no", "minus"},
			ModChange: {"instead of", "swap", "substitute", "replace"},
		},
		conjunctions: []string{"and", "or", "plus", "also"},
		markers: []string{
			"please", "thanks", "thank you", "if possible", "could you",
		},
		patterns: []string{
			`^i(?:'d| would) like (.+)$`,
			`^i(?:'ll| will) (?:have|take) (.+)$`,
			`^can i (?:get|have) (.+)$`,
			`^give me (.+)$`,
			`^for me (.+)$`,
			`^(.+) please$`,
		},
	})
}
