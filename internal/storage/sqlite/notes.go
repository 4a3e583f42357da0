package sqlite

import (
	"time"

	"github.com/reciteapp/recite/internal/models"
)

func (s *Store) AddNote(note models.Note) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO notes (id, path, title, created_at)
		VALUES (?, ?, ?, ?)`,
		note.ID, note.Path, note.Title, note.CreatedAt.UTC().Format(timeFormat))
	return err
}

func (s *Store) GetNote(id string) (models.Note, error) {
	row := s.db.QueryRow(`SELECT id, path, title, created_at FROM notes WHERE id = ?`, id)

	var n models.Note
	var created string
	if err := row.Scan(&n.ID, &n.Path, &n.Title, &created); err != nil {
		return models.Note{}, err
	}

	t, err := time.Parse(timeFormat, created)
	if err != nil {
		return models.Note{}, err
	}
	n.CreatedAt = t
	return n, nil
}

func (s *Store) GetAllNotes() ([]models.Note, error) {
	rows, err := s.db.Query(`SELECT id, path, title, created_at FROM notes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		var created string
		if err := rows.Scan(&n.ID, &n.Path, &n.Title, &created); err != nil {
			return nil, err
		}
		t, err := time.Parse(timeFormat, created)
		if err != nil {
			return nil, err
		}
		n.CreatedAt = t
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (s *Store) DeleteNote(id string) error {
	_, err := s.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	return err
}
