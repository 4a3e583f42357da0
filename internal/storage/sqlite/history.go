package sqlite

import (
	"time"

	"github.com/reciteapp/recite/internal/models"
)

func (s *Store) GetHistory() ([]models.HistoryItem, error) {
	rows, err := s.db.Query(`
		SELECT id, note_id, timestamp, response, interval_days, ease, skipped
		FROM history ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.HistoryItem
	for rows.Next() {
		var it models.HistoryItem
		var ts string
		if err := rows.Scan(&it.ID, &it.NoteID, &ts, &it.Response, &it.IntervalDays, &it.Ease, &it.Skipped); err != nil {
			return nil, err
		}
		t, err := time.Parse(timeFormat, ts)
		if err != nil {
			return nil, err
		}
		it.Timestamp = t
		items = append(items, it)
	}
	return items, rows.Err()
}

// SaveHistory replaces the full review log. The scheduler owns trimming, so
// the store writes exactly what it is handed.
func (s *Store) SaveHistory(items []models.HistoryItem) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM history`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO history (position, id, note_id, timestamp, response, interval_days, ease, skipped)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, it := range items {
		if _, err := stmt.Exec(i, it.ID, it.NoteID, it.Timestamp.UTC().Format(timeFormat),
			it.Response, it.IntervalDays, it.Ease, it.Skipped); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Store) GetCustomOrder() ([]string, error) {
	rows, err := s.db.Query(`SELECT note_id FROM custom_order ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var order []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		order = append(order, id)
	}
	return order, rows.Err()
}

func (s *Store) SaveCustomOrder(order []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM custom_order`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO custom_order (position, note_id) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, id := range order {
		if _, err := stmt.Exec(i, id); err != nil {
			return err
		}
	}

	return tx.Commit()
}
