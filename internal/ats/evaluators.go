package ats

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// evaluateParsability checks OCR readability and layout signals that break
// automated parsing.
func evaluateParsability(text string) (int, []string) {
	score := 100
	var issues []string

	words := strings.Fields(text)
	shortWords := 0
	for _, w := range words {
		if utf8.RuneCountInString(w) <= 2 && isAlpha(w) {
			shortWords++
		}
	}
	if float64(shortWords)/float64(max(len(words), 1)) > 0.15 {
		score -= 30
		issues = append(issues, "High ratio of broken/garbled words detected (OCR quality issue)")
	}

	specialChars := len(specialCharPattern.FindAllString(text, -1))
	textLen := utf8.RuneCountInString(text)
	if float64(specialChars)/float64(max(textLen, 1)) > 0.05 {
		score -= 25
		issues = append(issues, "Excessive special characters detected - may indicate tables/columns")
	}

	lines := strings.Split(text, "\n")
	veryShortLines := 0
	for _, l := range lines {
		n := utf8.RuneCountInString(strings.TrimSpace(l))
		if n > 0 && n < 10 {
			veryShortLines++
		}
	}
	if float64(veryShortLines)/float64(max(len(lines), 1)) > 0.3 {
		score -= 20
		issues = append(issues, "Inconsistent line lengths - reading order may be disrupted")
	}

	if textLen < 300 {
		score -= 25
		issues = append(issues, "Resume is too short (minimum 300 characters recommended)")
	}

	return max(0, score), issues
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// evaluateSections detects the seven canonical sections by keyword presence.
// Critical sections are worth 20 points each, the rest 10.
func evaluateSections(textLower string) (int, []string, map[string]bool) {
	score := 0
	var issues []string
	detected := make(map[string]bool, len(sectionRules))

	for _, rule := range sectionRules {
		found := false
		for _, kw := range rule.keywords {
			if strings.Contains(textLower, kw) {
				found = true
				break
			}
		}
		detected[rule.name] = found

		switch {
		case found && rule.critical:
			score += 20
		case found:
			score += 10
		case rule.critical:
			issues = append(issues, fmt.Sprintf("CRITICAL: Missing %s section", titleCase(rule.name)))
		case rule.name == "projects":
			issues = append(issues, "Missing Projects section (important for freshers)")
		}
	}

	return min(100, score), issues, detected
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// evaluateContactInfo validates contact completeness.
func evaluateContactInfo(text string) (int, []string) {
	score := 100
	var issues []string

	if !emailPattern.MatchString(text) {
		score -= 35
		issues = append(issues, "CRITICAL: Missing email address")
	}

	if !phonePattern.MatchString(text) {
		score -= 30
		issues = append(issues, "CRITICAL: Missing or improperly formatted phone number")
	}

	// Name belongs alone on the first non-empty line.
	for _, l := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(l)
		if trimmed == "" {
			continue
		}
		if len(strings.Fields(trimmed)) > 5 {
			score -= 10
			issues = append(issues, "First line should be your full name only")
		}
		break
	}

	lower := strings.ToLower(text)
	if !strings.Contains(lower, "linkedin") {
		score -= 15
		issues = append(issues, "Missing LinkedIn profile URL")
	}

	if !locationPattern.MatchString(lower) {
		score -= 10
		issues = append(issues, "Location information not clearly stated")
	}

	return max(0, score), issues
}

// evaluateKeywords scores technical-skill density, action-verb usage and
// quantified achievements, and penalizes keyword stuffing.
func evaluateKeywords(textLower, text string) (int, []string) {
	score := 0
	var issues []string

	skillCount := 0
	for _, skill := range technicalSkills {
		if strings.Contains(textLower, skill) {
			skillCount++
		}
	}
	switch {
	case skillCount >= 12:
		score += 40
	case skillCount >= 8:
		score += 30
	case skillCount >= 5:
		score += 20
	case skillCount >= 3:
		score += 10
	default:
		issues = append(issues, "Very few relevant technical keywords found")
	}

	verbCount := 0
	for _, verb := range actionVerbs {
		if strings.Contains(textLower, verb) {
			verbCount++
		}
	}
	switch {
	case verbCount >= 8:
		score += 30
	case verbCount >= 5:
		score += 20
	case verbCount >= 3:
		score += 10
	default:
		issues = append(issues, "Insufficient action verbs in experience descriptions")
	}

	metrics := 0
	if percentPattern.MatchString(text) {
		metrics++
	}
	if countMetricPattern.MatchString(textLower) {
		metrics++
	}
	if moneyPattern.MatchString(text) {
		metrics++
	}
	switch {
	case metrics >= 2:
		score += 30
	case metrics == 1:
		score += 15
	default:
		issues = append(issues, "Missing quantifiable achievements (add metrics, percentages, numbers)")
	}

	if stuffed := stuffedWords(textLower); len(stuffed) > 0 {
		score -= 15
		issues = append(issues, fmt.Sprintf("Possible keyword stuffing detected: %s", strings.Join(stuffed, ", ")))
	}

	return max(0, min(100, score)), issues
}

// stuffedWords returns up to three words longer than four characters that
// repeat more than ten times, in first-seen order.
func stuffedWords(textLower string) []string {
	freq := make(map[string]int)
	var order []string
	for _, w := range strings.Fields(textLower) {
		if utf8.RuneCountInString(w) <= 4 {
			continue
		}
		if _, seen := freq[w]; !seen {
			order = append(order, w)
		}
		freq[w]++
	}

	var stuffed []string
	for _, w := range order {
		if freq[w] > 10 {
			stuffed = append(stuffed, w)
			if len(stuffed) == 3 {
				break
			}
		}
	}
	return stuffed
}

// evaluateExperienceProjects scores work-history depth under two rubrics:
// freshers are judged on projects, experienced candidates on the
// experience section. The fresher flag and the section flag are computed
// independently and may disagree; both branches keep their own checks.
func evaluateExperienceProjects(textLower string, detected map[string]bool) (int, []string, bool) {
	score := 100
	var issues []string

	hasExperience := detected["experience"]
	hasProjects := detected["projects"]

	mentions := 0
	for _, kw := range durationMarkers {
		if strings.Contains(textLower, kw) {
			mentions++
		}
	}
	isFresher := !hasExperience || mentions < 2

	if isFresher {
		if !hasProjects {
			score = 40
			issues = append(issues, "CRITICAL: No projects section found (essential for freshers)")
		} else if strings.Count(textLower, "project") < 2 {
			score = 60
			issues = append(issues, "Only one project listed - add at least 2-3 substantial projects")
		}
	} else {
		if !hasExperience {
			score = 30
			issues = append(issues, "CRITICAL: No experience section found (essential for experienced candidates)")
		}
		if !hasProjects {
			score -= 20
			issues = append(issues, "Consider adding a projects section to showcase additional work")
		}
	}

	return max(0, score), issues, isFresher
}

const bulletGlyphs = "•-*→·"

// evaluateBulletPoints checks bullet presence and the structure of the
// first ten bullets. A bullet is weak when it shows fewer than two of:
// leading action verb, technical skill, outcome marker.
func evaluateBulletPoints(text string) (int, []string) {
	score := 100
	var issues []string

	var bullets []string
	for _, l := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(l)
		if trimmed == "" {
			continue
		}
		if strings.ContainsRune(bulletGlyphs, []rune(trimmed)[0]) {
			bullets = append(bullets, trimmed)
		}
	}

	if len(bullets) == 0 {
		score -= 40
		issues = append(issues, "CRITICAL: No bullet points found - use bullets for achievements")
		return max(0, score), issues
	}

	weak := 0
	for _, bullet := range bullets[:min(10, len(bullets))] {
		bulletText := strings.ToLower(strings.TrimSpace(strings.TrimLeft(bullet, bulletGlyphs)))

		signals := 0
		for _, verb := range actionVerbs {
			if strings.HasPrefix(bulletText, verb) {
				signals++
				break
			}
		}
		for _, skill := range technicalSkills {
			if strings.Contains(bulletText, skill) {
				signals++
				break
			}
		}
		if outcomePattern.MatchString(bulletText) {
			signals++
		}

		if signals < 2 {
			weak++
		}
	}

	if weak > 5 {
		score -= 30
		issues = append(issues, "Many weak bullet points - use format: Action Verb + Task + Method + Outcome")
	} else if weak > 2 {
		score -= 15
		issues = append(issues, "Some bullet points lack structure - add action verbs and outcomes")
	}

	return max(0, score), issues
}

// evaluateDates checks year presence, explicit ranges and rough
// reverse-chronological ordering.
func evaluateDates(text string) (int, []string) {
	score := 100
	var issues []string

	years := yearPattern.FindAllString(text, -1)
	if len(years) < 2 {
		score -= 40
		issues = append(issues, "Missing dates for experience/education - add MM/YYYY format dates")
		return max(0, score), issues
	}

	if !dateRangePattern.MatchString(strings.ToLower(text)) {
		score -= 20
		issues = append(issues, "Use date ranges (e.g., '2020 - 2023') for positions")
	}

	if len(years) >= 3 {
		values := make([]int, 0, len(years))
		for _, y := range years {
			n, err := strconv.Atoi(y)
			if err != nil {
				continue
			}
			values = append(values, n)
		}
		descending := 0
		for i := 0; i < len(values)-1; i++ {
			if values[i] >= values[i+1] {
				descending++
			}
		}
		if float64(descending)/float64(max(len(values)-1, 1)) < 0.5 {
			score -= 15
			issues = append(issues, "Dates should be in reverse chronological order (most recent first)")
		}
	}

	return max(0, score), issues
}
