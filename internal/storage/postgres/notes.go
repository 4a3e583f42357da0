package postgres

import "github.com/reciteapp/recite/internal/models"

func (s *Store) AddNote(note models.Note) error {
	_, err := s.db.Exec(`
		INSERT INTO notes (id, path, title, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			path = EXCLUDED.path,
			title = EXCLUDED.title,
			created_at = EXCLUDED.created_at`,
		note.ID, note.Path, note.Title, note.CreatedAt.UTC())
	return err
}

func (s *Store) GetNote(id string) (models.Note, error) {
	row := s.db.QueryRow(`SELECT id, path, title, created_at FROM notes WHERE id = $1`, id)

	var n models.Note
	if err := row.Scan(&n.ID, &n.Path, &n.Title, &n.CreatedAt); err != nil {
		return models.Note{}, err
	}
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
		if err := rows.Scan(&n.ID, &n.Path, &n.Title, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (s *Store) DeleteNote(id string) error {
	_, err := s.db.Exec(`DELETE FROM notes WHERE id = $1`, id)
	return err
}
