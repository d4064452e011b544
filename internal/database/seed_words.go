package database

// Starter dictionary inserted on first run so puzzle creation works
// before any real word data is loaded. Frequencies are rough relative
// usage weights, not a linguistic corpus.
var starterWords = []struct {
	word      string
	frequency float64
}{
	{"about", 9.2}, {"other", 8.9}, {"which", 8.7}, {"their", 8.5},
	{"there", 8.4}, {"first", 7.9}, {"would", 7.8}, {"these", 7.4},
	{"click", 6.8}, {"price", 6.5}, {"state", 6.4}, {"email", 6.2},
	{"world", 6.1}, {"music", 5.9}, {"after", 5.8}, {"video", 5.6},
	{"where", 5.5}, {"books", 5.3}, {"links", 5.2}, {"years", 5.1},
	{"order", 4.9}, {"items", 4.8}, {"group", 4.7}, {"under", 4.6},
	{"games", 4.5}, {"could", 4.4}, {"great", 4.3}, {"hotel", 4.2},
	{"store", 4.1}, {"terms", 4.0}, {"right", 3.9}, {"local", 3.8},
	{"those", 3.7}, {"using", 3.6}, {"phone", 3.5}, {"forum", 3.4},
	{"based", 3.3}, {"black", 3.2}, {"check", 3.1}, {"index", 3.0},
	{"being", 2.9}, {"women", 2.8}, {"today", 2.7}, {"south", 2.6},
	{"pages", 2.5}, {"found", 2.4}, {"house", 2.3}, {"photo", 2.2},
	{"power", 2.1}, {"while", 2.0}, {"three", 1.9}, {"total", 1.8},
	{"place", 1.7}, {"sound", 1.6}, {"media", 1.6}, {"water", 1.5},
	{"since", 1.4}, {"guide", 1.3}, {"board", 1.2}, {"white", 1.1},
	{"small", 1.0}, {"times", 0.9}, {"sites", 0.9}, {"level", 0.8},
	{"hours", 0.8}, {"image", 0.7}, {"title", 0.7}, {"shall", 0.6},
	{"class", 0.6}, {"still", 0.5}, {"money", 0.5}, {"every", 0.4},
	{"visit", 0.4}, {"tools", 0.3}, {"reply", 0.3}, {"value", 0.3},
	{"press", 0.2}, {"learn", 0.2}, {"print", 0.2}, {"stock", 0.1},
	{"point", 0.1}, {"sales", 0.1}, {"large", 0.1}, {"table", 0.1},
}

// SeedStarterWords inserts the starter dictionary when the word table is
// empty. Safe to call on every startup.
func (db *DB) SeedStarterWords() error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM dictionary_words").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, w := range starterWords {
		_, err := db.Exec(
			"INSERT INTO dictionary_words (word, frequency, times_used, explanation) VALUES (?, ?, 0, '')",
			w.word, w.frequency,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
