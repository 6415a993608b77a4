package ats

import (
	"strings"
	"testing"
)

func TestEvaluateParsability(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		expectedScore int
		expectedIssue string
	}{
		{
			name:          "garbled short words",
			text:          "Jo hn Sm it h qq ww ee rr tt yy uu ii oo pp aa ss dd ff gg hh jj kk ll zz xx cc vv bb nn mm qw er ty ui op as df gh jk lz xc vb nm",
			expectedScore: 45,
			expectedIssue: "High ratio of broken/garbled words detected (OCR quality issue)",
		},
		{
			name:          "table layout special characters",
			text:          "name|role|year\n" + strings.Repeat("col1|col2|col3|col4\n", 6),
			expectedScore: 50,
			expectedIssue: "Excessive special characters detected - may indicate tables/columns",
		},
		{
			name:          "disrupted line structure",
			text:          "ok line that is long enough here\n" + strings.Repeat("ab cd\n", 9),
			expectedScore: 25,
			expectedIssue: "Inconsistent line lengths - reading order may be disrupted",
		},
		{
			name:          "below minimum length",
			text:          "A perfectly ordinary sentence about work history that stays brief.",
			expectedScore: 75,
			expectedIssue: "Resume is too short (minimum 300 characters recommended)",
		},
		{
			name:          "clean long text",
			text:          strings.Repeat("Delivered measurable results across several platform initiatives. ", 6),
			expectedScore: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, issues := evaluateParsability(tt.text)
			if score != tt.expectedScore {
				t.Errorf("Expected score %d, got %d", tt.expectedScore, score)
			}
			if tt.expectedIssue != "" && !containsString(issues, tt.expectedIssue) {
				t.Errorf("Expected issue %q, got %v", tt.expectedIssue, issues)
			}
			if tt.expectedIssue == "" && len(issues) != 0 {
				t.Errorf("Expected no issues, got %v", issues)
			}
		})
	}
}

func TestEvaluateSections(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		expectedScore  int
		expectedIssues []string
		detected       map[string]bool
	}{
		{
			name:          "all sections present",
			text:          "email summary skills experience education projects certifications",
			expectedScore: 100,
			detected: map[string]bool{
				"contact": true, "summary": true, "skills": true, "experience": true,
				"education": true, "projects": true, "certifications": true,
			},
		},
		{
			name:          "critical sections only",
			text:          "phone skills work degree",
			expectedScore: 80,
			expectedIssues: []string{
				"Missing Projects section (important for freshers)",
			},
			detected: map[string]bool{
				"contact": true, "summary": false, "skills": true, "experience": true,
				"education": true, "projects": false, "certifications": false,
			},
		},
		{
			name:          "missing critical sections",
			text:          "summary portfolio training",
			expectedScore: 30,
			expectedIssues: []string{
				"CRITICAL: Missing Contact section",
				"CRITICAL: Missing Skills section",
				"CRITICAL: Missing Experience section",
				"CRITICAL: Missing Education section",
			},
			detected: map[string]bool{
				"contact": false, "summary": true, "skills": false, "experience": false,
				"education": false, "projects": true, "certifications": true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, issues, detected := evaluateSections(tt.text)
			if score != tt.expectedScore {
				t.Errorf("Expected score %d, got %d", tt.expectedScore, score)
			}
			if len(issues) != len(tt.expectedIssues) {
				t.Fatalf("Expected %d issues, got %v", len(tt.expectedIssues), issues)
			}
			for i, want := range tt.expectedIssues {
				if issues[i] != want {
					t.Errorf("Expected issue[%d] %q, got %q", i, want, issues[i])
				}
			}
			for name, want := range tt.detected {
				if detected[name] != want {
					t.Errorf("Expected detected[%s]=%v, got %v", name, want, detected[name])
				}
			}
		})
	}
}

func TestEvaluateContactInfo(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		expectedScore int
		issueCount    int
	}{
		{
			name:          "complete contact block",
			text:          "Jane Doe\njane@example.com\n555-987-6543\nlinkedin.com/in/janedoe\nCity: Portland",
			expectedScore: 100,
			issueCount:    0,
		},
		{
			name:          "everything missing with long first line",
			text:          "Jane Doe Senior Staff Engineer Portland Office\nno at sign here, no digits to speak of",
			expectedScore: 0,
			issueCount:    5,
		},
		{
			name:          "email only",
			text:          "Jane Doe\njane@example.com\nCity: Portland",
			expectedScore: 55,
			issueCount:    2,
		},
		{
			name:          "dotted phone format accepted",
			text:          "Jane Doe\njane@example.com\n555.987.6543\nlinkedin\nlocation: Portland",
			expectedScore: 100,
			issueCount:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, issues := evaluateContactInfo(tt.text)
			if score != tt.expectedScore {
				t.Errorf("Expected score %d, got %d", tt.expectedScore, score)
			}
			if len(issues) != tt.issueCount {
				t.Errorf("Expected %d issues, got %v", tt.issueCount, issues)
			}
		})
	}
}

func TestEvaluateKeywords(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		expectedScore int
		expectedIssue string
	}{
		{
			name:          "mid tier skills and verbs with two metrics",
			text:          "python java sql react aws developed created built 45% $12000",
			expectedScore: 60,
		},
		{
			name:          "keyword stuffing penalized",
			text:          strings.Repeat("resume ", 12) + "python sql git developed created built improved 10% 20 users",
			expectedScore: 35,
			expectedIssue: "Possible keyword stuffing detected: resume",
		},
		{
			name:          "nothing relevant",
			text:          "plain words about life and travel",
			expectedScore: 0,
			expectedIssue: "Very few relevant technical keywords found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lower := strings.ToLower(tt.text)
			score, issues := evaluateKeywords(lower, tt.text)
			if score != tt.expectedScore {
				t.Errorf("Expected score %d, got %d", tt.expectedScore, score)
			}
			if tt.expectedIssue != "" && !containsString(issues, tt.expectedIssue) {
				t.Errorf("Expected issue %q, got %v", tt.expectedIssue, issues)
			}
		})
	}
}

func TestEvaluateKeywordsNeverNegative(t *testing.T) {
	// Stuffing alone would push the tally below zero; the score is clamped.
	text := strings.Repeat("buzzword ", 12)
	score, _ := evaluateKeywords(text, text)
	if score < 0 || score > 100 {
		t.Errorf("Score %d out of [0,100]", score)
	}
}

func TestEvaluateExperienceProjects(t *testing.T) {
	tests := []struct {
		name            string
		text            string
		detected        map[string]bool
		expectedScore   int
		expectedFresher bool
		expectedIssue   string
	}{
		{
			name:            "fresher without projects",
			text:            "skills python education",
			detected:        map[string]bool{"experience": false, "projects": false},
			expectedScore:   40,
			expectedFresher: true,
			expectedIssue:   "CRITICAL: No projects section found (essential for freshers)",
		},
		{
			name:            "fresher with single project mention",
			text:            "skills python\nprojects\nbuilt a scraper",
			detected:        map[string]bool{"experience": false, "projects": true},
			expectedScore:   60,
			expectedFresher: true,
			expectedIssue:   "Only one project listed - add at least 2-3 substantial projects",
		},
		{
			name:            "fresher with enough project mentions",
			text:            "skills python\nprojects\nproject one and project two",
			detected:        map[string]bool{"experience": false, "projects": true},
			expectedScore:   100,
			expectedFresher: true,
		},
		{
			name:            "experienced with everything",
			text:            "experience years present projects",
			detected:        map[string]bool{"experience": true, "projects": true},
			expectedScore:   100,
			expectedFresher: false,
		},
		{
			name:            "experienced without projects",
			text:            "experience years present current",
			detected:        map[string]bool{"experience": true, "projects": false},
			expectedScore:   80,
			expectedFresher: false,
			expectedIssue:   "Consider adding a projects section to showcase additional work",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, issues, isFresher := evaluateExperienceProjects(tt.text, tt.detected)
			if score != tt.expectedScore {
				t.Errorf("Expected score %d, got %d", tt.expectedScore, score)
			}
			if isFresher != tt.expectedFresher {
				t.Errorf("Expected fresher=%v, got %v", tt.expectedFresher, isFresher)
			}
			if tt.expectedIssue != "" && !containsString(issues, tt.expectedIssue) {
				t.Errorf("Expected issue %q, got %v", tt.expectedIssue, issues)
			}
		})
	}
}

func TestEvaluateBulletPoints(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		expectedScore int
		expectedIssue string
	}{
		{
			name:          "no bullets",
			text:          "Experience at Acme from 2019 to 2021 doing platform work",
			expectedScore: 60,
			expectedIssue: "CRITICAL: No bullet points found - use bullets for achievements",
		},
		{
			name:          "mostly weak bullets",
			text:          "Experience\n" + strings.Repeat("- worked on stuff for the team\n", 7),
			expectedScore: 70,
			expectedIssue: "Many weak bullet points - use format: Action Verb + Task + Method + Outcome",
		},
		{
			name:          "some weak bullets",
			text:          "Experience\n- developed python service improved 10%\n- did things\n- handled tasks\n- other duties\n- built sql jobs reduced 20%",
			expectedScore: 85,
			expectedIssue: "Some bullet points lack structure - add action verbs and outcomes",
		},
		{
			name:          "strong bullets",
			text:          "• Developed python service, improved throughput by 30%\n• Built sql pipeline, reduced runtime by 20%\n• Automated docker builds, achieved 2x faster releases",
			expectedScore: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, issues := evaluateBulletPoints(tt.text)
			if score != tt.expectedScore {
				t.Errorf("Expected score %d, got %d", tt.expectedScore, score)
			}
			if tt.expectedIssue != "" && !containsString(issues, tt.expectedIssue) {
				t.Errorf("Expected issue %q, got %v", tt.expectedIssue, issues)
			}
		})
	}
}

func TestEvaluateDates(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		expectedScore int
		expectedIssue string
	}{
		{
			name:          "no years",
			text:          "worked at acme and widget for a long time",
			expectedScore: 60,
			expectedIssue: "Missing dates for experience/education - add MM/YYYY format dates",
		},
		{
			name:          "years without ranges",
			text:          "2019 then 2021",
			expectedScore: 80,
			expectedIssue: "Use date ranges (e.g., '2020 - 2023') for positions",
		},
		{
			name:          "ascending chronology",
			text:          "2014 - 2016 then 2017 - 2019 then 2020 - 2023",
			expectedScore: 85,
			expectedIssue: "Dates should be in reverse chronological order (most recent first)",
		},
		{
			name:          "reverse chronological with ranges",
			text:          "2021 - Present\n2018 - 2021\n2014 - 2018",
			expectedScore: 100,
		},
		{
			name:          "present keyword closes a range",
			text:          "2020 - present and earlier 2016 - 2020",
			expectedScore: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, issues := evaluateDates(tt.text)
			if score != tt.expectedScore {
				t.Errorf("Expected score %d, got %d", tt.expectedScore, score)
			}
			if tt.expectedIssue != "" && !containsString(issues, tt.expectedIssue) {
				t.Errorf("Expected issue %q, got %v", tt.expectedIssue, issues)
			}
		})
	}
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
