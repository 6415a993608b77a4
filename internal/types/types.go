package types

// ScoreResumeInput represents the input for scoring a resume
type ScoreResumeInput struct {
	Text string `json:"text"`
}

// ComponentScores holds the individual sub-evaluation scores, each 0-100
type ComponentScores struct {
	Parsability        int `json:"parsability"`
	SectionDetection   int `json:"section_detection"`
	ContactInformation int `json:"contact_information"`
	KeywordMatching    int `json:"keyword_matching"`
	ExperienceProjects int `json:"experience_projects"`
	BulletStructure    int `json:"bullet_structure"`
	DatesChronology    int `json:"dates_chronology"`
}

// EvaluationResult represents the complete scoring outcome for a resume
type EvaluationResult struct {
	Score            int              `json:"score"`
	RawScore         int              `json:"raw_score"`
	CapApplied       string           `json:"cap_applied"`
	ComponentScores  *ComponentScores `json:"component_scores,omitempty"`
	Issues           []string         `json:"issues"`
	Strengths        []string         `json:"strengths"`
	Weaknesses       []string         `json:"weaknesses"`
	DetectedSections map[string]bool  `json:"detected_sections"`
}

// CapNone is the cap reason reported when the raw score stands
const CapNone = "No cap applied"
