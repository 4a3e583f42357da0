package postgres

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

	var lastReview sql.NullTime
	if !sched.LastReviewDate.IsZero() {
		lastReview = sql.NullTime{Time: sched.LastReviewDate.UTC(), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO schedules
			(note_id, algorithm, review_count, last_review_date, next_review_date, sm2, fsrs)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (note_id) DO UPDATE SET
			algorithm = EXCLUDED.algorithm,
			review_count = EXCLUDED.review_count,
			last_review_date = EXCLUDED.last_review_date,
			next_review_date = EXCLUDED.next_review_date,
			sm2 = EXCLUDED.sm2,
			fsrs = EXCLUDED.fsrs`,
		sched.NoteID, string(sched.Algorithm), sched.ReviewCount,
		lastReview, sched.NextReviewDate.UTC(), sm2JSON, fsrsJSON)
	return err
}

func (s *Store) GetSchedule(noteID string) (models.ReviewSchedule, error) {
	row := s.db.QueryRow(`
		SELECT note_id, algorithm, review_count, last_review_date, next_review_date, sm2, fsrs
		FROM schedules WHERE note_id = $1`, noteID)
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
	_, err := s.db.Exec(`DELETE FROM schedules WHERE note_id = $1`, noteID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSchedule(row rowScanner) (models.ReviewSchedule, error) {
	var sched models.ReviewSchedule
	var algorithm string
	var next time.Time
	var lastReview sql.NullTime
	var sm2JSON, fsrsJSON sql.NullString

	if err := row.Scan(&sched.NoteID, &algorithm, &sched.ReviewCount,
		&lastReview, &next, &sm2JSON, &fsrsJSON); err != nil {
		return models.ReviewSchedule{}, err
	}

	sched.Algorithm = models.Algorithm(algorithm)
	sched.NextReviewDate = next.UTC()
	if lastReview.Valid {
		sched.LastReviewDate = lastReview.Time.UTC()
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
