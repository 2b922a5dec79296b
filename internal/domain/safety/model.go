package safety

// Alert severity grades used by the safety checks. These are coarser than the
// risk engine's finding severities: safety alerts go straight to physician
// review queues.
const (
	SeverityCritical = "CRITICAL"
	SeverityHigh     = "HIGH"
	SeverityMedium   = "MEDIUM"
)

// Alert is one safety concern raised by a check. Exactly one of Parameter,
// Test or Drugs is set depending on which check produced it.
type Alert struct {
	Severity  string `json:"severity"`
	Parameter string `json:"parameter,omitempty"`
	Test      string `json:"test,omitempty"`
	Drugs     string `json:"drugs,omitempty"`
	Value     any    `json:"value,omitempty"`
	Message   string `json:"message"`
}

// LabResult is a single lab value as reported by the caller.
type LabResult struct {
	TestName       string  `json:"test_name"`
	Value          float64 `json:"value"`
	Unit           string  `json:"unit"`
	ReferenceRange string  `json:"reference_range,omitempty"`
	Status         string  `json:"status,omitempty"`
}

// Medication is a current medication entry.
type Medication struct {
	Name      string `json:"name"`
	Dose      string `json:"dose,omitempty"`
	Frequency string `json:"frequency,omitempty"`
}

// Interaction is one known drug-drug interaction. Lookup is symmetric and
// case-insensitive.
type Interaction struct {
	DrugA    string
	DrugB    string
	Severity string
	Message  string
}

// DefaultInteractions returns the built-in interaction table. Callers must
// treat it as read-only.
func DefaultInteractions() []Interaction {
	return []Interaction{
		{DrugA: "warfarin", DrugB: "aspirin", Severity: SeverityHigh, Message: "Increased bleeding risk - Monitor INR closely"},
		{DrugA: "warfarin", DrugB: "ibuprofen", Severity: SeverityHigh, Message: "Increased bleeding risk - Consider alternative pain management"},
		{DrugA: "lisinopril", DrugB: "spironolactone", Severity: SeverityHigh, Message: "Risk of hyperkalemia - Monitor potassium levels"},
		{DrugA: "metformin", DrugB: "contrast", Severity: SeverityHigh, Message: "Risk of lactic acidosis - Hold metformin before contrast"},
		{DrugA: "simvastatin", DrugB: "clarithromycin", Severity: SeverityCritical, Message: "Risk of rhabdomyolysis - Contraindicated combination"},
	}
}
