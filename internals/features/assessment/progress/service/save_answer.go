package service

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	catalogModel "roadmapguide_backend/internals/features/assessment/catalog/model"
	responseDTO "roadmapguide_backend/internals/features/assessment/response/dto"
	responseModel "roadmapguide_backend/internals/features/assessment/response/model"
)

// SaveAnswer validates and upserts the response row for (setup, question) in
// a single transaction. Invalid answers are written too: the row records the
// attempt with is_valid=false. The at-most-one-row invariant is enforced both
// by the lookup-then-write inside the transaction and by the composite unique
// index on the table.
func SaveAnswer(db *gorm.DB, setupID uuid.UUID, questionID uint, raw json.RawMessage) (*responseModel.ResponseModel, error) {
	var question catalogModel.QuestionModel
	if err := db.First(&question, "id = ?", questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Question not found")
		}
		return nil, err
	}

	answer, err := responseDTO.ParseAnswer(raw, question.QuestionType)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid answer payload")
	}

	isValid, message := ValidateAnswer(&question, answer)

	encoded, err := answer.Encode()
	if err != nil {
		return nil, err
	}
	blob := datatypes.JSON(encoded)

	var saved responseModel.ResponseModel
	err = db.Transaction(func(tx *gorm.DB) error {
		var existing responseModel.ResponseModel
		findErr := tx.Where("setup_id = ? AND question_id = ?", setupID, questionID).
			First(&existing).Error

		switch {
		case findErr == nil:
			existing.Answer = blob
			existing.IsValid = isValid
			existing.ValidationMessage = message
			existing.Timestamp = time.Now().UTC()
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			saved = existing
			return nil

		case errors.Is(findErr, gorm.ErrRecordNotFound):
			created := responseModel.ResponseModel{
				SetupID:           setupID,
				QuestionID:        questionID,
				Answer:            blob,
				IsValid:           isValid,
				ValidationMessage: message,
				Timestamp:         time.Now().UTC(),
			}
			if err := tx.Create(&created).Error; err != nil {
				return err
			}
			saved = created
			return nil

		default:
			return findErr
		}
	})
	if err != nil {
		// the transaction has rolled back; the old row (if any) is untouched
		return nil, err
	}

	return &saved, nil
}
