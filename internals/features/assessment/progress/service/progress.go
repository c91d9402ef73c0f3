package service

import (
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogModel "roadmapguide_backend/internals/features/assessment/catalog/model"
	responseDTO "roadmapguide_backend/internals/features/assessment/response/dto"
	responseModel "roadmapguide_backend/internals/features/assessment/response/model"
	userModel "roadmapguide_backend/internals/features/users/user/model"
)

// SelectedInitiatives returns the initiative titles stored on the
// selection response of a setup. No selection yet → empty slice, no error.
func SelectedInitiatives(db *gorm.DB, setupID uuid.UUID) ([]string, error) {
	var resp responseModel.ResponseModel
	err := db.Where("setup_id = ? AND question_id = ?", setupID, catalogModel.SelectionQuestionID).
		First(&resp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	answer, err := responseDTO.DecodeAnswer(resp.Answer)
	if err != nil {
		return nil, err
	}
	return answer.Selections, nil
}

// CalculateProgress derives the completion percentage for a setup:
// valid responses over the questions belonging to the selected initiatives,
// the selection question excluded from both counts. Always recomputed from
// rows: the users.progress_percentage column is only a cache.
func CalculateProgress(db *gorm.DB, setupID uuid.UUID) (float64, error) {
	selected, err := SelectedInitiatives(db, setupID)
	if err != nil {
		return 0, err
	}
	if len(selected) == 0 {
		return 0, nil
	}

	var total int64
	if err := db.Model(&catalogModel.QuestionModel{}).
		Where("strategic_goal IN ? AND id <> ?", selected, catalogModel.SelectionQuestionID).
		Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}

	var answered int64
	if err := db.Model(&responseModel.ResponseModel{}).
		Where("setup_id = ? AND is_valid = ? AND question_id <> ?", setupID, true, catalogModel.SelectionQuestionID).
		Count(&answered).Error; err != nil {
		return 0, err
	}

	progress := float64(answered) / float64(total) * 100
	if progress > 100 {
		progress = 100
	}
	return progress, nil
}

// RefreshProgressCache recomputes and writes the denormalized progress value
// onto the user row. Best effort: a failed cache write is logged, never
// surfaced, because the authoritative value is always re-derivable.
func RefreshProgressCache(db *gorm.DB, setupID, userID uuid.UUID) float64 {
	progress, err := CalculateProgress(db, setupID)
	if err != nil {
		log.Printf("[ERROR] Error calculating progress: %v", err)
		return 0
	}

	if err := db.Model(&userModel.UserModel{}).
		Where("id = ?", userID).
		Update("progress_percentage", progress).Error; err != nil {
		log.Printf("[WARN] Failed to cache progress for user %s: %v", userID, err)
	}
	return progress
}
