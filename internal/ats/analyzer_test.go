package ats

import (
	"reflect"
	"strings"
	"testing"

	"atscore/internal/types"
)

const strongResume = `John Smith
Email: john.smith@example.com
Phone: 555-123-4567
LinkedIn: linkedin.com/in/johnsmith
Location: Seattle, State of Washington

Summary
Senior engineer with eight years of experience building cloud platforms.

Skills
Python, Java, JavaScript, SQL, React, AWS, Docker, Kubernetes, Git, Linux, MongoDB, PostgreSQL

Experience
Acme Corp, Senior Engineer, 2021 - Present
• Developed Python microservices serving 40000 users and reduced latency by 35%
• Improved CI/CD pipelines with Docker and Kubernetes, reduced deploy time by 60%
• Led migration to AWS that reduced infrastructure cost by $200000
• Automated SQL reporting with Python, increased team output by 25%
• Designed React dashboards used by 300 customers, improved retention by 10%
• Optimized PostgreSQL queries and achieved 3x throughput
• Built Linux tooling in Java that reduced incident count by 40%
• Launched MongoDB caching layer, improved read speed by 45%
• Implemented Git workflows that increased release frequency by 50%
• Streamlined onboarding with JavaScript tooling, reduced setup time by 30%

Widget Inc, Engineer, 2018 - 2021
• Created REST API services in Java for 1200 customers, improved uptime by 5%

Education
State University, Bachelor of Science, 2014 - 2018

Projects
Project Alpha and Project Beta, open source work.

Certifications
AWS Certified Solutions Architect
`

const fresherResume = `Jane Doe
jane.doe@example.com
555-987-6543
LinkedIn: linkedin.com/in/janedoe
City: Portland

Summary
Recent graduate in computer science.

Skills
Python, SQL, Git, Linux, Docker

Education
State College, 2020 - 2024
• Built Python data pipelines, improved grading speed by 30%
• Developed SQL dashboards, reduced report time by 20%
• Analyzed Linux logs with Python
`

func TestAnalyzeShortInput(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace only", "   \n\t  \n"},
		{"just under the limit", strings.Repeat("a", 49)},
		{"padding does not count", "  " + strings.Repeat("a", 49) + "  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Analyze(tt.text)

			if result.Score != 0 {
				t.Errorf("Expected score 0, got %d", result.Score)
			}
			if result.RawScore != 0 {
				t.Errorf("Expected raw score 0, got %d", result.RawScore)
			}
			if result.CapApplied != types.CapNone {
				t.Errorf("Expected cap sentinel %q, got %q", types.CapNone, result.CapApplied)
			}
			if result.ComponentScores != nil {
				t.Errorf("Expected no component scores, got %+v", result.ComponentScores)
			}
			if len(result.Issues) != 1 || result.Issues[0] != "Resume text is too short or empty" {
				t.Errorf("Expected single too-short issue, got %v", result.Issues)
			}
			if len(result.Weaknesses) != 1 || result.Weaknesses[0] != "Insufficient content for analysis" {
				t.Errorf("Expected single weakness, got %v", result.Weaknesses)
			}
			if len(result.Strengths) != 0 {
				t.Errorf("Expected no strengths, got %v", result.Strengths)
			}
			if len(result.DetectedSections) != len(SectionNames()) {
				t.Errorf("Expected all section keys, got %v", result.DetectedSections)
			}
			for name, found := range result.DetectedSections {
				if found {
					t.Errorf("Expected detected[%s]=false", name)
				}
			}
		})
	}
}

func TestAnalyzeLengthBoundary(t *testing.T) {
	// 49 trimmed characters takes the degenerate path, 50 does not.
	under := strings.Repeat("x", 49)
	if result := Analyze(under); result.ComponentScores != nil {
		t.Errorf("Expected degenerate path at 49 characters")
	}

	over := strings.Repeat("x", 50)
	if result := Analyze(over); result.ComponentScores == nil {
		t.Errorf("Expected full analysis at 50 characters")
	}
}

func TestAnalyzeStrongResume(t *testing.T) {
	result := Analyze(strongResume)

	if result.Score != 100 {
		t.Errorf("Expected score 100, got %d", result.Score)
	}
	if result.RawScore != 100 {
		t.Errorf("Expected raw score 100, got %d", result.RawScore)
	}
	if result.CapApplied != types.CapNone {
		t.Errorf("Expected no cap, got %q", result.CapApplied)
	}

	expected := &types.ComponentScores{
		Parsability:        100,
		SectionDetection:   100,
		ContactInformation: 100,
		KeywordMatching:    100,
		ExperienceProjects: 100,
		BulletStructure:    100,
		DatesChronology:    100,
	}
	if !reflect.DeepEqual(result.ComponentScores, expected) {
		t.Errorf("Expected components %+v, got %+v", expected, result.ComponentScores)
	}

	if len(result.Issues) != 0 {
		t.Errorf("Expected no issues, got %v", result.Issues)
	}
	expectedStrengths := []string{
		"Clean, ATS-parsable format",
		"All essential sections present",
		"Complete contact information",
		"Good keyword density and relevance",
		"Well-structured bullet points with outcomes",
		"Proper chronological organization",
	}
	if !reflect.DeepEqual(result.Strengths, expectedStrengths) {
		t.Errorf("Expected strengths %v, got %v", expectedStrengths, result.Strengths)
	}
	if len(result.Weaknesses) != 0 {
		t.Errorf("Expected no weaknesses, got %v", result.Weaknesses)
	}
	for _, name := range SectionNames() {
		if !result.DetectedSections[name] {
			t.Errorf("Expected section %s detected", name)
		}
	}
}

func TestAnalyzeFresherWithoutProjects(t *testing.T) {
	result := Analyze(fresherResume)

	if result.Score != 60 {
		t.Errorf("Expected capped score 60, got %d", result.Score)
	}
	if result.RawScore != 73 {
		t.Errorf("Expected raw score 73, got %d", result.RawScore)
	}
	if result.CapApplied != "No projects (fresher)" {
		t.Errorf("Expected fresher cap, got %q", result.CapApplied)
	}
	if result.ComponentScores.ExperienceProjects != 40 {
		t.Errorf("Expected experience score 40, got %d", result.ComponentScores.ExperienceProjects)
	}
	if result.ComponentScores.SectionDetection != 70 {
		t.Errorf("Expected section score 70, got %d", result.ComponentScores.SectionDetection)
	}
	if result.ComponentScores.KeywordMatching != 55 {
		t.Errorf("Expected keyword score 55, got %d", result.ComponentScores.KeywordMatching)
	}

	if !containsString(result.Issues, "CRITICAL: No projects section found (essential for freshers)") {
		t.Errorf("Expected fresher projects issue, got %v", result.Issues)
	}
	if !containsString(result.Weaknesses, "Score capped due to: No projects (fresher)") {
		t.Errorf("Expected cap weakness, got %v", result.Weaknesses)
	}
	if result.DetectedSections["experience"] {
		t.Errorf("Expected experience section absent")
	}
}

func TestAnalyzeProperties(t *testing.T) {
	inputs := []string{
		strongResume,
		fresherResume,
		strings.Repeat("x", 50),
		"Jane Doe Senior Staff Engineer Portland Office and more words to cross the length floor easily",
		strings.Repeat("buzzword ", 30),
	}

	for _, text := range inputs {
		result := Analyze(text)

		if result.Score < 0 || result.Score > 100 {
			t.Errorf("Score %d out of [0,100]", result.Score)
		}
		if result.Score > result.RawScore {
			t.Errorf("Cap raised score: %d > raw %d", result.Score, result.RawScore)
		}
		if result.CapApplied == types.CapNone && result.Score != result.RawScore {
			t.Errorf("No cap reported but score %d != raw %d", result.Score, result.RawScore)
		}

		if result.ComponentScores != nil {
			components := []int{
				result.ComponentScores.Parsability,
				result.ComponentScores.SectionDetection,
				result.ComponentScores.ContactInformation,
				result.ComponentScores.KeywordMatching,
				result.ComponentScores.ExperienceProjects,
				result.ComponentScores.BulletStructure,
				result.ComponentScores.DatesChronology,
			}
			for i, c := range components {
				if c < 0 || c > 100 {
					t.Errorf("Component %d score %d out of [0,100]", i, c)
				}
			}
		}

		if len(result.DetectedSections) != len(SectionNames()) {
			t.Errorf("Expected %d section keys, got %d", len(SectionNames()), len(result.DetectedSections))
		}
		for _, name := range SectionNames() {
			if _, ok := result.DetectedSections[name]; !ok {
				t.Errorf("Missing section key %s", name)
			}
		}
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	first := Analyze(strongResume)
	second := Analyze(strongResume)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Repeated analysis diverged:\n%+v\n%+v", first, second)
	}
}

func TestApplyScoreCaps(t *testing.T) {
	tests := []struct {
		name           string
		raw            int
		parsability    int
		isFresher      bool
		bullet         int
		keyword        int
		projects       bool
		expectedScore  int
		expectedReason string
	}{
		{
			name: "no caps", raw: 90, parsability: 100, bullet: 100, keyword: 100, projects: true,
			expectedScore: 90, expectedReason: types.CapNone,
		},
		{
			name: "parsability cap binds", raw: 90, parsability: 50, bullet: 100, keyword: 100, projects: true,
			expectedScore: 55, expectedReason: "Parsability issues",
		},
		{
			name: "lowest cap wins", raw: 90, parsability: 50, bullet: 50, keyword: 40, projects: true,
			expectedScore: 55, expectedReason: "Parsability issues",
		},
		{
			name: "fresher cap", raw: 85, parsability: 100, isFresher: true, bullet: 100, keyword: 100, projects: false,
			expectedScore: 60, expectedReason: "No projects (fresher)",
		},
		{
			name: "bullet cap", raw: 85, parsability: 100, bullet: 55, keyword: 100, projects: true,
			expectedScore: 65, expectedReason: "Weak bullet points",
		},
		{
			name: "keyword cap", raw: 85, parsability: 100, bullet: 100, keyword: 45, projects: true,
			expectedScore: 70, expectedReason: "Insufficient keywords",
		},
		{
			name: "cap never raises", raw: 50, parsability: 100, bullet: 100, keyword: 45, projects: true,
			expectedScore: 50, expectedReason: types.CapNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detected := map[string]bool{"projects": tt.projects}
			score, reason := applyScoreCaps(tt.raw, tt.parsability, tt.isFresher, tt.bullet, tt.keyword, detected)
			if score != tt.expectedScore {
				t.Errorf("Expected score %d, got %d", tt.expectedScore, score)
			}
			if reason != tt.expectedReason {
				t.Errorf("Expected reason %q, got %q", tt.expectedReason, reason)
			}
		})
	}
}

func BenchmarkAnalyze(b *testing.B) {
	for b.Loop() {
		Analyze(strongResume)
	}
}
