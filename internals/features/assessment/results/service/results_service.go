package service

import (
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogModel "roadmapguide_backend/internals/features/assessment/catalog/model"
	progressService "roadmapguide_backend/internals/features/assessment/progress/service"
	responseDTO "roadmapguide_backend/internals/features/assessment/response/dto"
	responseModel "roadmapguide_backend/internals/features/assessment/response/model"
)

// InitiativeScore is one scored initiative of the assessment results view.
type InitiativeScore struct {
	Initiative    string  `json:"initiative"`
	MaturityScore float64 `json:"maturity_score"`
	Answered      int     `json:"answered"`
	Total         int     `json:"total"`
}

// AssessmentResults aggregates the per-initiative maturity scores of a setup.
type AssessmentResults struct {
	Initiatives  []InitiativeScore `json:"initiatives"`
	OverallScore float64           `json:"overall_score"`
	Progress     float64           `json:"progress"`
}

// CalculateResults scores each selected initiative: a valid single-choice
// answer contributes its 1-based option index as a maturity value, the
// initiative score is the average. An initiative with nothing answered
// scores 0 rather than being dropped, so the result always covers the
// full selection.
func CalculateResults(db *gorm.DB, setupID uuid.UUID) (*AssessmentResults, error) {
	selected, err := progressService.SelectedInitiatives(db, setupID)
	if err != nil {
		return nil, err
	}

	results := &AssessmentResults{Initiatives: []InitiativeScore{}}
	if len(selected) == 0 {
		return results, nil
	}

	var overallSum float64
	for _, initiative := range selected {
		score, err := scoreInitiative(db, setupID, initiative)
		if err != nil {
			return nil, err
		}
		results.Initiatives = append(results.Initiatives, score)
		overallSum += score.MaturityScore
	}
	results.OverallScore = round1(overallSum / float64(len(selected)))

	progress, err := progressService.CalculateProgress(db, setupID)
	if err != nil {
		return nil, err
	}
	results.Progress = progress

	return results, nil
}

func scoreInitiative(db *gorm.DB, setupID uuid.UUID, initiative string) (InitiativeScore, error) {
	var questions []catalogModel.QuestionModel
	if err := db.
		Where("strategic_goal = ? AND id <> ?", initiative, catalogModel.SelectionQuestionID).
		Order("display_order ASC, id ASC").
		Find(&questions).Error; err != nil {
		return InitiativeScore{}, err
	}

	score := InitiativeScore{Initiative: initiative, Total: len(questions)}
	if len(questions) == 0 {
		return score, nil
	}

	questionIDs := make([]uint, 0, len(questions))
	byID := make(map[uint]*catalogModel.QuestionModel, len(questions))
	for i := range questions {
		questionIDs = append(questionIDs, questions[i].ID)
		byID[questions[i].ID] = &questions[i]
	}

	var responses []responseModel.ResponseModel
	if err := db.
		Where("setup_id = ? AND question_id IN ? AND is_valid = ?", setupID, questionIDs, true).
		Find(&responses).Error; err != nil {
		return InitiativeScore{}, err
	}

	var sum float64
	for _, resp := range responses {
		question, ok := byID[resp.QuestionID]
		if !ok || question.QuestionType != catalogModel.TypeSingleChoice {
			continue
		}
		answer, err := responseDTO.DecodeAnswer(resp.Answer)
		if err != nil || answer.Index == nil {
			continue
		}
		// option order encodes maturity: first option is level 1
		sum += float64(*answer.Index + 1)
		score.Answered++
	}

	if score.Answered > 0 {
		score.MaturityScore = round1(sum / float64(score.Answered))
	}
	return score, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
