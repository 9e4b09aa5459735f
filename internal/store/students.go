package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a student or result lookup matches nothing.
var ErrNotFound = errors.New("not found")

// Student is a registered learner profile. All fields except the ID
// are optional.
type Student struct {
	ID        string // "EDU-XXXXXXXX"
	Name      string
	Phone     string
	Email     string
	Area      string // "Urban" or "Rural"
	CreatedAt time.Time
}

// NewStudentID generates a short student identifier.
func NewStudentID() string {
	return "EDU-" + strings.ToUpper(uuid.New().String()[:8])
}

// InsertStudent persists a new student profile.
func (s *Store) InsertStudent(ctx context.Context, st Student) error {
	if st.CreatedAt.IsZero() {
		st.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO students (student_uuid, name, phone, email, area, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		st.ID, st.Name, st.Phone, st.Email, st.Area, st.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert student: %w", err)
	}
	return nil
}

// GetStudent loads a student profile by ID.
func (s *Store) GetStudent(ctx context.Context, id string) (*Student, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT student_uuid, name, phone, email, area, created_at
		FROM students WHERE student_uuid = ?`, id)

	var st Student
	var createdAt string
	if err := row.Scan(&st.ID, &st.Name, &st.Phone, &st.Email, &st.Area, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get student: %w", err)
	}
	st.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &st, nil
}
