// Package ats implements deterministic, rule-based resume scoring.
// Evaluation is a pure function of the input text: seven weighted
// sub-evaluations produce a raw score, then a cap ladder may lower it
// when a critical deficiency is found.
package ats

import (
	"strings"
	"unicode/utf8"

	"atscore/internal/types"
)

// MinLength is the minimum trimmed character count for a full analysis.
const MinLength = 50

// Component weights; they sum to 1.0 and are fixed for compatibility with
// downstream score blending.
const (
	weightParsability = 0.15
	weightSections    = 0.20
	weightContact     = 0.10
	weightKeywords    = 0.25
	weightExperience  = 0.15
	weightBullets     = 0.10
	weightDates       = 0.05
)

type scoreCap struct {
	value  int
	reason string
}

// Analyze runs the full rule-based evaluation over extracted resume text.
// It never fails: degenerate input yields a zero score with an explanatory
// issue instead of an error.
func Analyze(resumeText string) *types.EvaluationResult {
	if utf8.RuneCountInString(strings.TrimSpace(resumeText)) < MinLength {
		sections := make(map[string]bool, len(sectionRules))
		for _, name := range SectionNames() {
			sections[name] = false
		}
		return &types.EvaluationResult{
			Score:            0,
			RawScore:         0,
			CapApplied:       types.CapNone,
			Issues:           []string{"Resume text is too short or empty"},
			Strengths:        []string{},
			Weaknesses:       []string{"Insufficient content for analysis"},
			DetectedSections: sections,
		}
	}

	textLower := strings.ToLower(resumeText)

	parsability, parsabilityIssues := evaluateParsability(resumeText)
	sectionScore, sectionIssues, detected := evaluateSections(textLower)
	contact, contactIssues := evaluateContactInfo(resumeText)
	keyword, keywordIssues := evaluateKeywords(textLower, resumeText)
	expProject, expProjectIssues, isFresher := evaluateExperienceProjects(textLower, detected)
	bullet, bulletIssues := evaluateBulletPoints(resumeText)
	date, dateIssues := evaluateDates(resumeText)

	// Truncating float conversion is intentional; the constants were tuned
	// against the truncated aggregate.
	rawScore := int(
		float64(parsability)*weightParsability +
			float64(sectionScore)*weightSections +
			float64(contact)*weightContact +
			float64(keyword)*weightKeywords +
			float64(expProject)*weightExperience +
			float64(bullet)*weightBullets +
			float64(date)*weightDates)

	finalScore, capReason := applyScoreCaps(rawScore, parsability, isFresher, bullet, keyword, detected)

	issues := make([]string, 0,
		len(parsabilityIssues)+len(sectionIssues)+len(contactIssues)+
			len(keywordIssues)+len(expProjectIssues)+len(bulletIssues)+len(dateIssues))
	issues = append(issues, parsabilityIssues...)
	issues = append(issues, sectionIssues...)
	issues = append(issues, contactIssues...)
	issues = append(issues, keywordIssues...)
	issues = append(issues, expProjectIssues...)
	issues = append(issues, bulletIssues...)
	issues = append(issues, dateIssues...)

	strengths, weaknesses := deriveStrengthsWeaknesses(
		parsability, sectionScore, contact, keyword, expProject, bullet, date, capReason)

	return &types.EvaluationResult{
		Score:      finalScore,
		RawScore:   rawScore,
		CapApplied: capReason,
		ComponentScores: &types.ComponentScores{
			Parsability:        parsability,
			SectionDetection:   sectionScore,
			ContactInformation: contact,
			KeywordMatching:    keyword,
			ExperienceProjects: expProject,
			BulletStructure:    bullet,
			DatesChronology:    date,
		},
		Issues:           issues,
		Strengths:        strengths,
		Weaknesses:       weaknesses,
		DetectedSections: detected,
	}
}

// applyScoreCaps collects the applicable caps and binds the lowest one,
// but only when it is below the raw score. Caps never raise.
func applyScoreCaps(rawScore, parsability int, isFresher bool, bulletScore, keywordScore int, detected map[string]bool) (int, string) {
	var caps []scoreCap

	if parsability < 60 {
		caps = append(caps, scoreCap{55, "Parsability issues"})
	}
	if isFresher && !detected["projects"] {
		caps = append(caps, scoreCap{60, "No projects (fresher)"})
	}
	if bulletScore < 60 {
		caps = append(caps, scoreCap{65, "Weak bullet points"})
	}
	if keywordScore < 50 {
		caps = append(caps, scoreCap{70, "Insufficient keywords"})
	}

	if len(caps) > 0 {
		lowest := caps[0]
		for _, c := range caps[1:] {
			if c.value < lowest.value {
				lowest = c
			}
		}
		if rawScore > lowest.value {
			return lowest.value, lowest.reason
		}
	}

	return rawScore, types.CapNone
}
