package ats

import "regexp"

// sectionRule pairs a canonical section name with the header keywords that
// mark it as present. Critical sections weigh more and raise critical
// issues when missing.
type sectionRule struct {
	name     string
	keywords []string
	critical bool
}

// sectionRules is ordered; issue messages follow this order.
var sectionRules = []sectionRule{
	{"contact", []string{"email", "phone", "address", "linkedin", "contact", "mobile"}, true},
	{"summary", []string{"summary", "objective", "profile", "about"}, false},
	{"skills", []string{"skills", "technologies", "tools", "proficiencies", "expertise", "competencies"}, true},
	{"experience", []string{"experience", "work", "employment", "job", "internship", "career"}, true},
	{"education", []string{"education", "university", "college", "degree", "academic", "qualification"}, true},
	{"projects", []string{"projects", "portfolio", "work samples"}, false},
	{"certifications", []string{"certifications", "certificates", "certified", "training"}, false},
}

// SectionNames returns the canonical section names in evaluation order.
func SectionNames() []string {
	names := make([]string, len(sectionRules))
	for i, r := range sectionRules {
		names[i] = r.name
	}
	return names
}

// actionVerbs are matched as substrings of the lowercased text and as
// bullet-line prefixes.
var actionVerbs = []string{
	"developed", "created", "built", "designed", "implemented", "led", "managed",
	"improved", "optimized", "achieved", "delivered", "launched", "established",
	"increased", "reduced", "streamlined", "automated", "coordinated", "executed",
	"analyzed", "researched", "collaborated", "initiated", "spearheaded",
}

// technicalSkills are matched as substrings of the lowercased text.
var technicalSkills = []string{
	"python", "java", "javascript", "c++", "sql", "react", "node.js", "angular",
	"aws", "azure", "gcp", "docker", "kubernetes", "git", "agile", "scrum",
	"machine learning", "data analysis", "tensorflow", "pytorch", "pandas",
	"rest api", "microservices", "ci/cd", "devops", "linux", "mongodb", "postgresql",
}

// durationMarkers signal real work history; fewer than two of them present
// classifies the resume as a fresher.
var durationMarkers = []string{"years", "year", "months", "month", "present", "current"}

var (
	specialCharPattern = regexp.MustCompile(`[|_=+\[\]{}]`)
	emailPattern       = regexp.MustCompile(`\b[\w.-]+@[\w.-]+\.\w+\b`)
	phonePattern       = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)
	locationPattern    = regexp.MustCompile(`\b(city|state|country|location)\b`)
	percentPattern     = regexp.MustCompile(`\d+%`)
	countMetricPattern = regexp.MustCompile(`\d+\s*(users|customers|projects|team|members)`)
	moneyPattern       = regexp.MustCompile(`\$\d+`)
	outcomePattern     = regexp.MustCompile(`\d+%|\d+x|improved|increased|reduced|achieved`)
	yearPattern        = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	dateRangePattern   = regexp.MustCompile(`(\d{4})\s*[-–]\s*(\d{4}|present|current)`)
)
