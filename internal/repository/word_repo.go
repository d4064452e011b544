package repository

import (
	"database/sql"

	"wordstreak/internal/database"
	"wordstreak/internal/models"
)

// WordRepository handles dictionary word database operations
type WordRepository struct {
	db *database.DB
}

// NewWordRepository creates a new word repository
func NewWordRepository(db *database.DB) *WordRepository {
	return &WordRepository{db: db}
}

// CreateWord inserts a dictionary word
func (r *WordRepository) CreateWord(word string, frequency float64, explanation string) (*models.DictionaryWord, error) {
	query := `
		INSERT INTO dictionary_words (word, frequency, explanation)
		VALUES (?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query, word, frequency, explanation)
	if err != nil {
		return nil, err
	}

	return r.GetWordByID(id)
}

// GetWordByID retrieves a dictionary word by ID
func (r *WordRepository) GetWordByID(id int64) (*models.DictionaryWord, error) {
	query := `
		SELECT id, word, frequency, times_used, explanation, created_at
		FROM dictionary_words
		WHERE id = ?
	`

	return r.scanWord(r.db.QueryRow(query, id))
}

// GetWordByText retrieves a dictionary word by its text
func (r *WordRepository) GetWordByText(word string) (*models.DictionaryWord, error) {
	query := `
		SELECT id, word, frequency, times_used, explanation, created_at
		FROM dictionary_words
		WHERE word = ?
	`

	w, err := r.scanWord(r.db.QueryRow(query, word))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return w, err
}

// ListCandidates retrieves up to limit dictionary words, least-used
// first, as the candidate pool for word selection
func (r *WordRepository) ListCandidates(limit int) ([]models.DictionaryWord, error) {
	query := `
		SELECT id, word, frequency, times_used, explanation, created_at
		FROM dictionary_words
		ORDER BY times_used ASC, frequency DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []models.DictionaryWord
	for rows.Next() {
		var w models.DictionaryWord
		var explanation sql.NullString

		err := rows.Scan(&w.ID, &w.Word, &w.Frequency, &w.TimesUsed, &explanation, &w.CreatedAt)
		if err != nil {
			return nil, err
		}
		if explanation.Valid {
			w.Explanation = explanation.String
		}

		words = append(words, w)
	}

	return words, rows.Err()
}

// IncrementTimesUsed bumps a word's usage counter after it has been
// picked as a puzzle solution. The increment is not atomic with the
// draw; a duplicate bump under a race only softens the selection bias.
func (r *WordRepository) IncrementTimesUsed(id int64) error {
	query := "UPDATE dictionary_words SET times_used = times_used + 1 WHERE id = ?"
	_, err := r.db.Exec(query, id)
	return err
}

func (r *WordRepository) scanWord(row *sql.Row) (*models.DictionaryWord, error) {
	w := &models.DictionaryWord{}
	var explanation sql.NullString

	err := row.Scan(&w.ID, &w.Word, &w.Frequency, &w.TimesUsed, &explanation, &w.CreatedAt)
	if err != nil {
		return nil, err
	}
	if explanation.Valid {
		w.Explanation = explanation.String
	}

	return w, nil
}
