package risk

// This file holds the clinical rule tables as plain data. The engine never
// hard-codes a threshold: everything it consults is built once by
// DefaultRules and treated as immutable afterwards.

// BPBand fires when systolic >= SystolicAtLeast or diastolic >=
// DiastolicAtLeast. Bands are ordered most severe first; the first match
// wins so a single reading is never counted twice.
type BPBand struct {
	SystolicAtLeast  int
	DiastolicAtLeast int
	Score            int
	Severity         Severity
	Text             string
}

// BPLowBand fires when systolic < SystolicBelow or diastolic <
// DiastolicBelow. Checked only when no hypertensive band matched.
type BPLowBand struct {
	SystolicBelow  int
	DiastolicBelow int
	Score          int
	Severity       Severity
	Text           string
}

// NumericBand fires when the vital is strictly above Above or strictly below
// Below (exactly one of the two is set). Bands are evaluated in order and the
// first match wins.
type NumericBand struct {
	Above    *float64
	Below    *float64
	Score    int
	Severity Severity
	Text     string
}

func (b NumericBand) matches(v float64) bool {
	if b.Above != nil {
		return v > *b.Above
	}
	if b.Below != nil {
		return v < *b.Below
	}
	return false
}

// BMIBand fires when the BMI is >= AtLeast or < Below. Bands are mutually
// exclusive: the first match wins.
type BMIBand struct {
	AtLeast  *float64
	Below    *float64
	Score    int
	Severity Severity
	Text     string
}

func (b BMIBand) matches(v float64) bool {
	if b.AtLeast != nil {
		return v >= *b.AtLeast
	}
	if b.Below != nil {
		return v < *b.Below
	}
	return false
}

// SymptomGroup contributes its score when any trigger phrase exactly equals a
// (lower-cased) reported symptom. Groups are independent and additive.
type SymptomGroup struct {
	Triggers []string
	Score    int
	Severity Severity
	Text     string
}

// AgeBand fires when age >= AtLeast or age < Under. Bands are mutually
// exclusive, evaluated in order.
type AgeBand struct {
	AtLeast *int
	Under   *int
	Score   int
	Text    string
}

func (b AgeBand) matches(age int) bool {
	if b.AtLeast != nil {
		return age >= *b.AtLeast
	}
	if b.Under != nil {
		return age < *b.Under
	}
	return false
}

// ComorbidityWeight adds Score when Condition appears (case-insensitive
// substring) in any reported comorbidity. All matching conditions are
// additive.
type ComorbidityWeight struct {
	Condition string
	Score     int
}

// LifestyleRule pairs a score contribution with its finding.
type LifestyleRule struct {
	Score    int
	Severity Severity
	Text     string
}

// LifestyleRules are independent, additive checks on the lifestyle mapping.
type LifestyleRules struct {
	SmokingCurrent    LifestyleRule
	SmokingFormer     LifestyleRule
	Sedentary         LifestyleRule
	PoorDiet          LifestyleRule
	SleepDeprived     LifestyleRule
	MinSleepHours     float64
	DefaultSleepHours float64
}

// CombinationRules drive the cross-domain critical-combination detector.
// These fire independently of the additive scoring and contribute findings
// only.
type CombinationRules struct {
	CrisisSystolicAtLeast  int
	CrisisDiastolicAtLeast int
	CardiacSymptom         string
	CardiacText            string
	CrisisText             string

	HypoxemiaBelow   int
	FeverOver        float64
	InfectionSymptom string
	InfectionText    string
}

// Rules is the full immutable rule configuration consumed by the Engine.
type Rules struct {
	BloodPressure    []BPBand
	Hypotension      BPLowBand
	OxygenSaturation []NumericBand
	HeartRate        []NumericBand
	Temperature      []NumericBand
	BMI              []BMIBand
	SymptomGroups    []SymptomGroup
	AgeBands         []AgeBand
	Comorbidities    []ComorbidityWeight
	Lifestyle        LifestyleRules
	Combinations     CombinationRules

	VitalsCap       int
	SymptomsCap     int
	DemographicsCap int
	LifestyleCap    int
	TotalCap        int

	Recommendations  map[Level]string
	RiskDescriptions map[Level]string
}

func above(v float64) *float64 { return &v }
func below(v float64) *float64 { return &v }
func atLeast(v float64) *float64 { return &v }
func ageAtLeast(v int) *int    { return &v }
func ageUnder(v int) *int      { return &v }

// DefaultRules returns the guideline-derived rule tables. Callers must treat
// the returned value as read-only.
func DefaultRules() Rules {
	return Rules{
		BloodPressure: []BPBand{
			{SystolicAtLeast: 180, DiastolicAtLeast: 120, Score: 25, Severity: SeverityCritical, Text: "Hypertensive crisis (BP > 180/120)"},
			{SystolicAtLeast: 160, DiastolicAtLeast: 100, Score: 15, Severity: SeverityHigh, Text: "Stage 2 hypertension (BP 160-179/100-109)"},
			{SystolicAtLeast: 140, DiastolicAtLeast: 90, Score: 8, Severity: SeverityModerate, Text: "Stage 1 hypertension (BP 140-159/90-99)"},
		},
		Hypotension: BPLowBand{SystolicBelow: 90, DiastolicBelow: 60, Score: 12, Severity: SeverityModerate, Text: "Hypotension (BP < 90/60)"},
		OxygenSaturation: []NumericBand{
			{Below: below(90), Score: 20, Severity: SeverityCritical, Text: "Severe hypoxemia (SpO2 < 90%)"},
			{Below: below(94), Score: 12, Severity: SeverityHigh, Text: "Hypoxemia (SpO2 < 94%)"},
			{Below: below(95), Score: 5, Severity: SeverityModerate, Text: "Low oxygen saturation (SpO2 < 95%)"},
		},
		HeartRate: []NumericBand{
			{Above: above(130), Score: 10, Severity: SeverityHigh, Text: "Severe tachycardia (HR > 130)"},
			{Above: above(120), Score: 6, Severity: SeverityModerate, Text: "Tachycardia (HR > 120)"},
			{Below: below(50), Score: 8, Severity: SeverityModerate, Text: "Bradycardia (HR < 50)"},
		},
		Temperature: []NumericBand{
			{Above: above(39.5), Score: 8, Severity: SeverityHigh, Text: "Severe fever (Temp > 39.5°C)"},
			{Above: above(38.5), Score: 5, Severity: SeverityModerate, Text: "Fever (Temp > 38.5°C)"},
			{Below: below(35), Score: 8, Severity: SeverityModerate, Text: "Hypothermia (Temp < 35°C)"},
		},
		BMI: []BMIBand{
			{AtLeast: atLeast(40), Score: 15, Severity: SeverityCritical, Text: "Class III Obesity (BMI >= 40)"},
			{AtLeast: atLeast(35), Score: 10, Severity: SeverityHigh, Text: "Class II Obesity (BMI 35-39.9)"},
			{AtLeast: atLeast(30), Score: 6, Severity: SeverityModerate, Text: "Obesity (BMI 30-34.9)"},
			{Below: below(18.5), Score: 5, Severity: SeverityModerate, Text: "Underweight (BMI < 18.5)"},
		},
		SymptomGroups: []SymptomGroup{
			{Triggers: []string{"chest pain", "shortness of breath"}, Score: 18, Severity: SeverityCritical, Text: "Potential cardiac event symptoms detected"},
			{Triggers: []string{"severe headache", "confusion", "altered mental status"}, Score: 15, Severity: SeverityCritical, Text: "Possible neurological emergency"},
			{Triggers: []string{"difficulty breathing", "severe cough"}, Score: 12, Severity: SeverityHigh, Text: "Respiratory distress signs"},
			{Triggers: []string{"severe pain", "acute pain"}, Score: 10, Severity: SeverityHigh, Text: "Acute pain episode"},
			{Triggers: []string{"dizziness", "fainting", "syncope"}, Score: 10, Severity: SeverityHigh, Text: "Hemodynamic instability risk"},
			{Triggers: []string{"persistent vomiting", "vomiting blood"}, Score: 8, Severity: SeverityModerate, Text: "GI distress with dehydration risk"},
		},
		AgeBands: []AgeBand{
			{AtLeast: ageAtLeast(75), Score: 8, Text: "Elderly patient (>75 years) - Higher baseline risk"},
			{AtLeast: ageAtLeast(65), Score: 4, Text: "Senior patient (65-74 years)"},
			{Under: ageUnder(18), Score: 2, Text: "Pediatric patient - Requires pediatric assessment"},
		},
		Comorbidities: []ComorbidityWeight{
			{Condition: "diabetes", Score: 6},
			{Condition: "hypertension", Score: 5},
			{Condition: "heart disease", Score: 8},
			{Condition: "cardiac", Score: 8},
			{Condition: "copd", Score: 7},
			{Condition: "asthma", Score: 5},
			{Condition: "kidney disease", Score: 7},
			{Condition: "liver disease", Score: 8},
			{Condition: "cancer", Score: 6},
			{Condition: "stroke history", Score: 7},
			{Condition: "hiv", Score: 8},
			{Condition: "immunocompromised", Score: 8},
		},
		Lifestyle: LifestyleRules{
			SmokingCurrent:    LifestyleRule{Score: 10, Severity: SeverityModerate, Text: "Current Smoker - High cardiovascular/respiratory risk"},
			SmokingFormer:     LifestyleRule{Score: 4, Severity: SeverityInfo, Text: "Former Smoker"},
			Sedentary:         LifestyleRule{Score: 6, Severity: SeverityModerate, Text: "Sedentary Lifestyle"},
			PoorDiet:          LifestyleRule{Score: 5, Severity: SeverityModerate, Text: "Poor Diet Quality"},
			SleepDeprived:     LifestyleRule{Score: 4, Severity: SeverityModerate, Text: "Sleep Deprivation (<6 hours)"},
			MinSleepHours:     6,
			DefaultSleepHours: 7,
		},
		Combinations: CombinationRules{
			CrisisSystolicAtLeast:  180,
			CrisisDiastolicAtLeast: 120,
			CardiacSymptom:         "chest pain",
			CardiacText:            "CARDIAC ALERT: Hypertensive crisis with chest pain - immediate evaluation required",
			CrisisText:             "EMERGENT: Hypertensive crisis (BP > 180/120)",
			HypoxemiaBelow:         90,
			FeverOver:              38.0,
			InfectionSymptom:       "cough",
			InfectionText:          "INFECTION RISK: Hypoxemia with fever/cough - possible pneumonia or sepsis",
		},
		VitalsCap:       45,
		SymptomsCap:     40,
		DemographicsCap: 30,
		LifestyleCap:    20,
		TotalCap:        100,
		Recommendations: map[Level]string{
			LevelLow:      "Continue routine monitoring. Schedule regular physician checkup.",
			LevelModerate: "Schedule a physician consultation within 24-48 hours. Monitor vitals.",
			LevelHigh:     "Seek immediate medical evaluation. Consider emergency assessment if symptoms worsen.",
		},
		RiskDescriptions: map[Level]string{
			LevelLow:      "Overall risk profile is low. Routine monitoring is recommended.",
			LevelModerate: "Overall risk profile is moderate. Close monitoring and timely physician evaluation are warranted.",
			LevelHigh:     "Overall risk profile is elevated. Prompt clinical assessment is strongly recommended.",
		},
	}
}
