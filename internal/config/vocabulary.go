package config

// Curated vocabulary shipped as the default configuration. Each list is a
// set of hand-translated nouns followed by ten of the most common English
// nouns in that language.
func defaultLanguages() []LanguageConfig {
	return []LanguageConfig{
		{Code: "af", Words: []string{
			"koning", "hond", "kat", "koningin", "boot", "see", "strand", "kroon", "seil", "lewe",
			"man", "vrou", "geskiedenis", "verlede", "now", "toekoms",
			"tyd", "persoon", "jaar", "manier", "dag", "ding", "man", "wêreld", "lewe", "hand",
		}},
		{Code: "en", Words: []string{
			"king", "dog", "cat", "queen", "boat", "sea", "beach", "crown", "sail", "live",
			"hamster", "man", "woman", "royalty", "history", "story", "past", "present", "future",
			"time", "person", "year", "way", "day", "thing", "man", "world", "life", "hand",
		}},
		{Code: "de", Words: []string{
			"König", "hund", "katze", "Königin", "boot", "meer", "strand", "krone", "segel", "lebe",
			"hamster", "mann", "frau", "Königtum", "geschichte", "geschichte", "Vergangenheit", "jetzt", "Zukunft",
			"Zeit", "Person", "Jahr", "Weg", "Tag", "Ding", "Mann", "Welt", "Leben", "Hand",
		}},
	}
}
