package scripture

import (
	"strconv"
	"strings"
)

// canonicalBooks maps normalized lookup keys (lowercase, spaces removed)
// to display names. Common abbreviations are included alongside full names.
var canonicalBooks = map[string]string{}

func init() {
	add := func(name string, aliases ...string) {
		key := normalizeKey(name)
		canonicalBooks[key] = name
		for _, a := range aliases {
			canonicalBooks[normalizeKey(a)] = name
		}
	}

	add("Genesis", "gen", "ge", "gn")
	add("Exodus", "exo", "ex", "exod")
	add("Leviticus", "lev", "le", "lv")
	add("Numbers", "num", "nu", "nm", "nb")
	add("Deuteronomy", "deut", "dt", "de")
	add("Joshua", "josh", "jos", "jsh")
	add("Judges", "judg", "jdg", "jg")
	add("Ruth", "rth", "ru")
	add("1 Samuel", "1 sam", "1sa", "1 sm", "i samuel")
	add("2 Samuel", "2 sam", "2sa", "2 sm", "ii samuel")
	add("1 Kings", "1 kgs", "1ki", "i kings")
	add("2 Kings", "2 kgs", "2ki", "ii kings")
	add("1 Chronicles", "1 chron", "1 chr", "1ch", "i chronicles")
	add("2 Chronicles", "2 chron", "2 chr", "2ch", "ii chronicles")
	add("Ezra", "ezr")
	add("Nehemiah", "neh", "ne")
	add("Esther", "esth", "est", "es")
	add("Job", "jb")
	add("Psalms", "psalm", "ps", "psa", "pss")
	add("Proverbs", "prov", "pro", "prv", "pr")
	add("Ecclesiastes", "eccl", "ecc", "ec", "qoheleth")
	add("Song of Solomon", "song of songs", "song", "sos", "canticles")
	add("Isaiah", "isa", "is")
	add("Jeremiah", "jer", "je", "jr")
	add("Lamentations", "lam", "la")
	add("Ezekiel", "ezek", "eze", "ezk")
	add("Daniel", "dan", "da", "dn")
	add("Hosea", "hos", "ho")
	add("Joel", "jl")
	add("Amos", "am")
	add("Obadiah", "obad", "ob")
	add("Jonah", "jon", "jnh")
	add("Micah", "mic", "mc")
	add("Nahum", "nah", "na")
	add("Habakkuk", "hab", "hb")
	add("Zephaniah", "zeph", "zep", "zp")
	add("Haggai", "hag", "hg")
	add("Zechariah", "zech", "zec", "zc")
	add("Malachi", "mal", "ml")
	add("Matthew", "matt", "mat", "mt")
	add("Mark", "mrk", "mk", "mr")
	add("Luke", "luk", "lk")
	add("John", "jn", "jhn", "joh")
	add("Acts", "act", "ac")
	add("Romans", "rom", "ro", "rm")
	add("1 Corinthians", "1 cor", "1co", "i corinthians")
	add("2 Corinthians", "2 cor", "2co", "ii corinthians")
	add("Galatians", "gal", "ga")
	add("Ephesians", "eph", "ephes")
	add("Philippians", "phil", "php", "pp")
	add("Colossians", "col", "co")
	add("1 Thessalonians", "1 thess", "1 thes", "1th", "i thessalonians")
	add("2 Thessalonians", "2 thess", "2 thes", "2th", "ii thessalonians")
	add("1 Timothy", "1 tim", "1ti", "i timothy")
	add("2 Timothy", "2 tim", "2ti", "ii timothy")
	add("Titus", "tit", "ti")
	add("Philemon", "phlm", "phm", "pm")
	add("Hebrews", "heb")
	add("James", "jas", "jm")
	add("1 Peter", "1 pet", "1pe", "1 pt", "i peter")
	add("2 Peter", "2 pet", "2pe", "2 pt", "ii peter")
	add("1 John", "1 jn", "1jo", "i john")
	add("2 John", "2 jn", "2jo", "ii john")
	add("3 John", "3 jn", "3jo", "iii john")
	add("Jude", "jud", "jd")
	add("Revelation", "rev", "re", "apocalypse")
}

func normalizeKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "")
}

// CanonicalBook resolves a book name or abbreviation, with an optional
// leading ordinal ("1 John"), to its display name.
func CanonicalBook(ordinal int, words []string) (string, bool) {
	key := normalizeKey(strings.Join(words, ""))
	if ordinal > 0 {
		key = strconv.Itoa(ordinal) + key
	}
	name, ok := canonicalBooks[key]
	return name, ok
}
