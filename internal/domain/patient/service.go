package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service validates and persists patient records.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validate(p *Patient) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Age < 0 || p.Age > 130 {
		return fmt.Errorf("age %d out of range", p.Age)
	}
	if p.Gender == "" {
		p.Gender = "Unknown"
	}
	if !validGenders[p.Gender] {
		return fmt.Errorf("invalid gender %q", p.Gender)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	if err := validate(p); err != nil {
		return err
	}
	if p.MedicalHistory == nil {
		p.MedicalHistory = []string{}
	}
	if p.Medications == nil {
		p.Medications = []string{}
	}
	if p.Allergies == nil {
		p.Allergies = []string{}
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, p *Patient) error {
	if err := validate(p); err != nil {
		return err
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// Record flattens a patient into the loosely-typed map consumed by the risk
// assessment pipeline.
func (s *Service) Record(p *Patient) map[string]any {
	return map[string]any{
		"age":             p.Age,
		"gender":          p.Gender,
		"medical_history": p.MedicalHistory,
		"medications":     p.Medications,
		"allergies":       p.Allergies,
	}
}
