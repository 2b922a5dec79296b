package risk

import (
	"fmt"
)

// Result is the envelope returned by GenerateAssessment. Callers translate
// Success=false into an HTTP error response; the service itself never lets a
// failure escape.
type Result struct {
	Success    bool        `json:"success"`
	Assessment *Assessment `json:"assessment,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Service is the assessment orchestrator: it extracts a loosely structured
// patient record, runs the engine and wraps the outcome in a Result.
type Service struct {
	engine *Engine
}

func NewService(engine *Engine) *Service {
	return &Service{engine: engine}
}

// Engine exposes the underlying rule engine for collaborators that evaluate
// parts of a record directly (demo scenarios, tests).
func (s *Service) Engine() *Engine { return s.engine }

// Defaults applied when a record omits a field.
const (
	defaultAge    = 50
	defaultGender = "Unknown"
)

// GenerateAssessment runs a complete assessment for one patient record.
// Record keys: vitals, symptoms, age, gender, medical_history, lifestyle;
// any subset may be present. Extraction failures (for example a non-numeric
// age) are reported through the envelope, never raised.
func (s *Service) GenerateAssessment(record map[string]any) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = Result{Success: false, Error: fmt.Sprintf("assessment failed: %v", r)}
		}
	}()

	in, err := extractInput(record)
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}

	a := s.engine.Assess(in)
	return Result{Success: true, Assessment: &a}
}

func extractInput(record map[string]any) (Input, error) {
	in := Input{
		Vitals:    map[string]any{},
		Age:       defaultAge,
		Gender:    defaultGender,
		Lifestyle: map[string]any{},
	}

	if raw, ok := record["vitals"]; ok {
		m, err := mapField(raw, "vitals")
		if err != nil {
			return Input{}, err
		}
		in.Vitals = m
	}
	if raw, ok := record["lifestyle"]; ok {
		m, err := mapField(raw, "lifestyle")
		if err != nil {
			return Input{}, err
		}
		in.Lifestyle = m
	}

	var err error
	if in.Symptoms, err = stringListField(record["symptoms"], "symptoms"); err != nil {
		return Input{}, err
	}
	if in.Comorbidities, err = stringListField(record["medical_history"], "medical_history"); err != nil {
		return Input{}, err
	}

	if raw, ok := record["age"]; ok {
		v, ok := floatValue(raw)
		if !ok {
			return Input{}, fmt.Errorf("age must be numeric, got %T", raw)
		}
		in.Age = int(v)
	}
	if raw, ok := record["gender"]; ok {
		if g, ok := raw.(string); ok && g != "" {
			in.Gender = g
		}
	}

	return in, nil
}

func mapField(raw any, name string) (map[string]any, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an object, got %T", name, raw)
	}
	return m, nil
}

// stringListField accepts either []string (direct callers) or []any of
// strings (JSON decoding). A missing value is an empty list, not an error.
func stringListField(raw any, name string) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s must be a list of strings, got %T element", name, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s must be a list of strings, got %T", name, raw)
	}
}
