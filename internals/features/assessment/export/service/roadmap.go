package service

import (
	"fmt"
	"strings"
	"time"

	resultsService "roadmapguide_backend/internals/features/assessment/results/service"
	setupModel "roadmapguide_backend/internals/features/assessment/setup/model"
)

// maturityLabel maps an averaged maturity score onto the band names used in
// the exported roadmap.
func maturityLabel(score float64) string {
	switch {
	case score <= 0:
		return "Not assessed"
	case score < 2:
		return "Initial"
	case score < 3:
		return "Developing"
	case score < 4:
		return "Established"
	default:
		return "Optimized"
	}
}

// RoadmapTitle builds the document title from the engagement record.
func RoadmapTitle(setup *setupModel.SetupModel) string {
	return fmt.Sprintf("Security Roadmap - %s - %s",
		setup.LeaderEmployer, time.Now().Format("2006-01-02"))
}

// RoadmapBody renders the assessment results as the plain text inserted into
// the exported document. Sections per initiative, newest maturity first is
// not needed; selection order is preserved.
func RoadmapBody(setup *setupModel.SetupModel, results *resultsService.AssessmentResults) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Security Maturity Roadmap\n\n")
	fmt.Fprintf(&b, "Prepared for: %s (%s)\n", setup.LeaderName, setup.LeaderEmployer)
	fmt.Fprintf(&b, "Advisor: %s <%s>\n", setup.AdvisorName, setup.AdvisorEmail)
	fmt.Fprintf(&b, "Date: %s\n\n", time.Now().Format("January 2, 2006"))

	fmt.Fprintf(&b, "Overall maturity: %.1f (%s)\n", results.OverallScore, maturityLabel(results.OverallScore))
	fmt.Fprintf(&b, "Assessment completion: %.0f%%\n\n", results.Progress)

	for i, score := range results.Initiatives {
		fmt.Fprintf(&b, "%d. %s\n", i+1, score.Initiative)
		fmt.Fprintf(&b, "   Maturity: %.1f (%s)\n", score.MaturityScore, maturityLabel(score.MaturityScore))
		fmt.Fprintf(&b, "   Questions answered: %d of %d\n\n", score.Answered, score.Total)
	}

	return b.String()
}
