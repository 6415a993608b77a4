package ats

import (
	"fmt"

	"atscore/internal/types"
)

// deriveStrengthsWeaknesses maps component scores onto canned feedback
// sentences. The binding cap reason, if any, is appended as a weakness.
func deriveStrengthsWeaknesses(parsability, section, contact, keyword, expProject, bullet, date int, capReason string) ([]string, []string) {
	strengths := []string{}
	weaknesses := []string{}

	if parsability >= 80 {
		strengths = append(strengths, "Clean, ATS-parsable format")
	}
	if section >= 80 {
		strengths = append(strengths, "All essential sections present")
	}
	if contact >= 80 {
		strengths = append(strengths, "Complete contact information")
	}
	if keyword >= 70 {
		strengths = append(strengths, "Good keyword density and relevance")
	}
	if bullet >= 80 {
		strengths = append(strengths, "Well-structured bullet points with outcomes")
	}
	if date >= 80 {
		strengths = append(strengths, "Proper chronological organization")
	}

	if parsability < 60 {
		weaknesses = append(weaknesses, "OCR quality issues affecting parsability")
	}
	if section < 60 {
		weaknesses = append(weaknesses, "Missing critical resume sections")
	}
	if contact < 60 {
		weaknesses = append(weaknesses, "Incomplete contact information")
	}
	if keyword < 50 {
		weaknesses = append(weaknesses, "Insufficient relevant keywords and skills")
	}
	if expProject < 60 {
		weaknesses = append(weaknesses, "Weak experience/project presentation")
	}
	if bullet < 60 {
		weaknesses = append(weaknesses, "Bullet points lack structure and impact")
	}
	if date < 60 {
		weaknesses = append(weaknesses, "Missing or inconsistent dates")
	}

	if capReason != types.CapNone {
		weaknesses = append(weaknesses, fmt.Sprintf("Score capped due to: %s", capReason))
	}

	return strengths, weaknesses
}
