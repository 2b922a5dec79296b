package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const clinicianCols = `id, username, email, full_name, medical_license_id, password_hash, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, c *Clinician) error {
	c.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO clinician (id, username, email, full_name, medical_license_id, password_hash)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at, updated_at`,
		c.ID, c.Username, c.Email, c.FullName, c.MedicalLicenseID, c.PasswordHash,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Clinician, error) {
	return scanClinician(r.pool.QueryRow(ctx, `SELECT `+clinicianCols+` FROM clinician WHERE id = $1`, id))
}

func (r *repoPG) GetByUsername(ctx context.Context, username string) (*Clinician, error) {
	return scanClinician(r.pool.QueryRow(ctx, `SELECT `+clinicianCols+` FROM clinician WHERE username = $1`, username))
}

func (r *repoPG) GetByEmail(ctx context.Context, email string) (*Clinician, error) {
	return scanClinician(r.pool.QueryRow(ctx, `SELECT `+clinicianCols+` FROM clinician WHERE email = $1`, email))
}

func scanClinician(row pgx.Row) (*Clinician, error) {
	var c Clinician
	err := row.Scan(&c.ID, &c.Username, &c.Email, &c.FullName,
		&c.MedicalLicenseID, &c.PasswordHash, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
