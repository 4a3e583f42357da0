package sqlite

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/reciteapp/recite/internal/models"
)

func (s *Store) SaveSchedule(sched models.ReviewSchedule) error {
	var sm2JSON, fsrsJSON sql.NullString
	if sched.SM2 != nil {
		b, err := json.Marshal(sched.SM2)
		if err != nil {
			return err
		}
		sm2JSON = sql.NullString{String: string(b), Valid: true}
	}
	if sched.FSRS != nil {
		b, err := json.Marshal(sched.FSRS)
		if err != nil {
			return err
		}
		fsrsJSON = sql.NullString{String: string(b), Valid: true}
	}

	var lastReview sql.NullString
	if !sched.LastReviewDate.IsZero() {
		lastReview = sql.NullString{String: sched.LastReviewDate.UTC().Format(timeFormat), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO schedules
			(note_id, algorithm, review_count, last_review_date, next_review_date, sm2, fsrs)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sched.NoteID, string(sched.Algorithm), sched.ReviewCount,
		lastReview, sched.NextReviewDate.UTC().Format(timeFormat), sm2JSON, fsrsJSON)
	return err
}

func (s *Store) GetSchedule(noteID string) (models.ReviewSchedule, error) {
	row := s.db.QueryRow(`
		SELECT note_id, algorithm, review_count, last_review_date, next_review_date, sm2, fsrs
		FROM schedules WHERE note_id = ?`, noteID)
	return scanSchedule(row)
}

func (s *Store) GetAllSchedules() ([]models.ReviewSchedule, error) {
	rows, err := s.db.Query(`
		SELECT note_id, algorithm, review_count, last_review_date, next_review_date, sm2, fsrs
		FROM schedules ORDER BY note_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scheds []models.ReviewSchedule
	for rows.Next() {
		sched, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		scheds = append(scheds, sched)
	}
	return scheds, rows.Err()
}

func (s *Store) DeleteSchedule(noteID string) error {
	_, err := s.db.Exec(`DELETE FROM schedules WHERE note_id = ?`, noteID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSchedule(row rowScanner) (models.ReviewSchedule, error) {
	var sched models.ReviewSchedule
	var algorithm, next string
	var lastReview, sm2JSON, fsrsJSON sql.NullString

	if err := row.Scan(&sched.NoteID, &algorithm, &sched.ReviewCount,
		&lastReview, &next, &sm2JSON, &fsrsJSON); err != nil {
		return models.ReviewSchedule{}, err
	}

	sched.Algorithm = models.Algorithm(algorithm)

	t, err := time.Parse(timeFormat, next)
	if err != nil {
		return models.ReviewSchedule{}, err
	}
	sched.NextReviewDate = t

	if lastReview.Valid {
		t, err := time.Parse(timeFormat, lastReview.String)
		if err != nil {
			return models.ReviewSchedule{}, err
		}
		sched.LastReviewDate = t
	}

	if sm2JSON.Valid {
		var st models.SM2State
		if err := json.Unmarshal([]byte(sm2JSON.String), &st); err != nil {
			return models.ReviewSchedule{}, err
		}
		sched.SM2 = &st
	}
	if fsrsJSON.Valid {
		var st models.FSRSState
		if err := json.Unmarshal([]byte(fsrsJSON.String), &st); err != nil {
			return models.ReviewSchedule{}, err
		}
		sched.FSRS = &st
	}

	return sched, nil
}
