package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/hrdesk/hrdesk-backend/pkg/database"
)

// CertificateLink points to a prepared income certificate document
type CertificateLink struct {
	ID         int64     `db:"id" json:"id"`
	EmployeeID int64     `db:"employee_id" json:"employee_id"`
	Year       int       `db:"year" json:"year"`
	URL        string    `db:"url" json:"url"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// CertificateRepository handles certificate link persistence
type CertificateRepository struct {
	db *database.DB
}

// NewCertificateRepository creates a new certificate repository
func NewCertificateRepository(db *database.DB) *CertificateRepository {
	return &CertificateRepository{db: db}
}

// ForEmployeeYear returns the latest link for the employee and year,
// nil when none has been prepared yet.
func (r *CertificateRepository) ForEmployeeYear(ctx context.Context, employeeID int64, year int) (*CertificateLink, error) {
	var link CertificateLink

	query := `
		SELECT id, employee_id, year, url, created_at
		FROM certificate_links
		WHERE employee_id = $1 AND year = $2
		ORDER BY created_at DESC
		LIMIT 1`
	err := r.db.GetContext(ctx, &link, query, employeeID, year)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &link, nil
}
