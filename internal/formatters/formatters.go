package formatters

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"atscore/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "EvaluationResult", &ScoreTextFormatter{})
	registry.RegisterFormatter("markdown", "EvaluationResult", &ScoreMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.EvaluationResult, *types.EvaluationResult:
		return "EvaluationResult"
	default:
		return "any"
	}
}

func asEvaluationResult(data any) (*types.EvaluationResult, error) {
	switch v := data.(type) {
	case *types.EvaluationResult:
		return v, nil
	case types.EvaluationResult:
		return &v, nil
	default:
		return nil, fmt.Errorf("expected EvaluationResult, got %T", data)
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// componentRows returns the component scores as stable label/value pairs.
func componentRows(cs *types.ComponentScores) [][2]string {
	return [][2]string{
		{"Parsability", fmt.Sprintf("%d", cs.Parsability)},
		{"Section Detection", fmt.Sprintf("%d", cs.SectionDetection)},
		{"Contact Information", fmt.Sprintf("%d", cs.ContactInformation)},
		{"Keyword Matching", fmt.Sprintf("%d", cs.KeywordMatching)},
		{"Experience & Projects", fmt.Sprintf("%d", cs.ExperienceProjects)},
		{"Bullet Structure", fmt.Sprintf("%d", cs.BulletStructure)},
		{"Dates & Chronology", fmt.Sprintf("%d", cs.DatesChronology)},
	}
}

func sortedSectionNames(sections map[string]bool) []string {
	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ScoreTextFormatter handles text formatting for scoring results
type ScoreTextFormatter struct{}

func (stf *ScoreTextFormatter) Format(data any) (string, error) {
	result, err := asEvaluationResult(data)
	if err != nil {
		return "", err
	}

	var output strings.Builder

	output.WriteString("=== ATS SCORE REPORT ===\n\n")
	output.WriteString(fmt.Sprintf("Score: %d/100\n", result.Score))
	output.WriteString(fmt.Sprintf("Raw Score: %d/100\n", result.RawScore))
	output.WriteString(fmt.Sprintf("Cap Applied: %s\n\n", result.CapApplied))

	if result.ComponentScores != nil {
		output.WriteString("=== COMPONENT SCORES ===\n")
		for _, row := range componentRows(result.ComponentScores) {
			output.WriteString(fmt.Sprintf("%-22s %s/100\n", row[0]+":", row[1]))
		}
		output.WriteString("\n")
	}

	output.WriteString("=== DETECTED SECTIONS ===\n")
	for _, name := range sortedSectionNames(result.DetectedSections) {
		marker := "missing"
		if result.DetectedSections[name] {
			marker = "found"
		}
		output.WriteString(fmt.Sprintf("%-16s %s\n", name+":", marker))
	}
	output.WriteString("\n")

	if len(result.Strengths) > 0 {
		output.WriteString("=== STRENGTHS ===\n")
		for _, strength := range result.Strengths {
			output.WriteString(fmt.Sprintf("- %s\n", strength))
		}
		output.WriteString("\n")
	}

	if len(result.Weaknesses) > 0 {
		output.WriteString("=== WEAKNESSES ===\n")
		for _, weakness := range result.Weaknesses {
			output.WriteString(fmt.Sprintf("- %s\n", weakness))
		}
		output.WriteString("\n")
	}

	if len(result.Issues) > 0 {
		output.WriteString("=== ISSUES ===\n")
		for _, issue := range result.Issues {
			output.WriteString(fmt.Sprintf("- %s\n", issue))
		}
	}

	return output.String(), nil
}

func (stf *ScoreTextFormatter) SupportedType() string {
	return "EvaluationResult"
}

// ScoreMarkdownFormatter handles markdown formatting for scoring results
type ScoreMarkdownFormatter struct{}

func (smf *ScoreMarkdownFormatter) Format(data any) (string, error) {
	result, err := asEvaluationResult(data)
	if err != nil {
		return "", err
	}

	var output strings.Builder

	output.WriteString("# ATS Score Report\n\n")
	output.WriteString(fmt.Sprintf("**Score:** %d/100\n\n", result.Score))
	output.WriteString(fmt.Sprintf("**Raw Score:** %d/100\n\n", result.RawScore))
	output.WriteString(fmt.Sprintf("**Cap Applied:** %s\n\n", result.CapApplied))

	if result.ComponentScores != nil {
		output.WriteString("## Component Scores\n\n")
		output.WriteString("| Component | Score |\n")
		output.WriteString("|-----------|-------|\n")
		for _, row := range componentRows(result.ComponentScores) {
			output.WriteString(fmt.Sprintf("| %s | %s/100 |\n", row[0], row[1]))
		}
		output.WriteString("\n")
	}

	output.WriteString("## Detected Sections\n\n")
	for _, name := range sortedSectionNames(result.DetectedSections) {
		marker := "missing"
		if result.DetectedSections[name] {
			marker = "found"
		}
		output.WriteString(fmt.Sprintf("- **%s:** %s\n", name, marker))
	}
	output.WriteString("\n")

	if len(result.Strengths) > 0 {
		output.WriteString("## Strengths\n\n")
		for _, strength := range result.Strengths {
			output.WriteString(fmt.Sprintf("- %s\n", strength))
		}
		output.WriteString("\n")
	}

	if len(result.Weaknesses) > 0 {
		output.WriteString("## Weaknesses\n\n")
		for _, weakness := range result.Weaknesses {
			output.WriteString(fmt.Sprintf("- %s\n", weakness))
		}
		output.WriteString("\n")
	}

	if len(result.Issues) > 0 {
		output.WriteString("## Issues\n\n")
		for _, issue := range result.Issues {
			output.WriteString(fmt.Sprintf("- %s\n", issue))
		}
	}

	return output.String(), nil
}

func (smf *ScoreMarkdownFormatter) SupportedType() string {
	return "EvaluationResult"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
