package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table.
type Patient struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Age            int       `db:"age" json:"age"`
	Gender         string    `db:"gender" json:"gender"`
	MedicalHistory []string  `db:"medical_history" json:"medical_history"`
	Medications    []string  `db:"medications" json:"medications"`
	Allergies      []string  `db:"allergies" json:"allergies"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

var validGenders = map[string]bool{
	"Male":    true,
	"Female":  true,
	"Other":   true,
	"Unknown": true,
}
