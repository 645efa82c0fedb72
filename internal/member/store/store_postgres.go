package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"membergate/internal/claims/models"
)

// PostgresStore reads member rows from PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed member store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const loadMemberQuery = `
SELECT id, family_name, given_name, full_name, display_name,
       email, language, status, status_label,
       active, up_to_date, is_admin, is_staff, managed_groups,
       street, zip, town, region, country,
       phone, mobile,
       birth_date, birth_place, job, gender, gpg_id,
       admin_notes, due_date
  FROM members
 WHERE id = $1`

func (s *PostgresStore) LoadByID(ctx context.Context, id int) (*models.Member, error) {
	var (
		m       models.Member
		dueDate sql.NullString
	)
	err := s.db.QueryRowContext(ctx, loadMemberQuery, id).Scan(
		&m.ID, &m.FamilyName, &m.GivenName, &m.FullName, &m.DisplayName,
		&m.Email, &m.Language, &m.Status, &m.StatusLabel,
		&m.Active, &m.UpToDate, &m.Admin, &m.Staff, &m.ManagedGroups,
		&m.Street, &m.Zip, &m.Town, &m.Region, &m.Country,
		&m.Phone, &m.Mobile,
		&m.BirthDate, &m.BirthPlace, &m.Job, &m.Gender, &m.GPGID,
		&m.AdminNotes, &dueDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("member %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("load member %d: %w", id, err)
	}
	if dueDate.Valid {
		m.DueDate = &dueDate.String
	}
	return &m, nil
}

const listSocialsQuery = `
SELECT type, url
  FROM member_socials
 WHERE member_id = $1
 ORDER BY id`

func (s *PostgresStore) ListSocialsForMember(ctx context.Context, id int) ([]models.Social, error) {
	rows, err := s.db.QueryContext(ctx, listSocialsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("list socials for member %d: %w", id, err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	var socials []models.Social
	for rows.Next() {
		var social models.Social
		if err := rows.Scan(&social.Type, &social.URL); err != nil {
			return nil, fmt.Errorf("scan social for member %d: %w", id, err)
		}
		socials = append(socials, social)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate socials for member %d: %w", id, err)
	}
	return socials, nil
}
