package identity

import (
	"time"

	"github.com/google/uuid"
)

// Clinician maps to the clinician table.
type Clinician struct {
	ID               uuid.UUID `db:"id" json:"id"`
	Username         string    `db:"username" json:"username"`
	Email            string    `db:"email" json:"email"`
	FullName         string    `db:"full_name" json:"full_name"`
	MedicalLicenseID string    `db:"medical_license_id" json:"medical_license_id"`
	PasswordHash     string    `db:"password_hash" json:"-"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}
