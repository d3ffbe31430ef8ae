package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	asgModel "github.com/mohitmore9417-afk/edua-ai/internals/features/school/assignments/model"
	classService "github.com/mohitmore9417-afk/edua-ai/internals/features/school/classes/service"
	"github.com/mohitmore9417-afk/edua-ai/internals/features/school/grading/service"
	subModel "github.com/mohitmore9417-afk/edua-ai/internals/features/school/submissions/model"
	helper "github.com/mohitmore9417-afk/edua-ai/internals/helpers"
)

type AIGradeController struct {
	DB     *gorm.DB
	Grader *service.Grader
}

func NewAIGradeController(db *gorm.DB, grader *service.Grader) *AIGradeController {
	return &AIGradeController{DB: db, Grader: grader}
}

// Grade runs the AI grader on a submission and writes the result back.
// Only the teacher owning the class (or an admin) may trigger it.
func (ctrl *AIGradeController) Grade(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	subID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid submission id")
	}

	var sub subModel.SubmissionModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&sub, "submission_id = ?", subID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Submission not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch submission")
	}

	var asg asgModel.AssignmentModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&asg, "assignment_id = ?", sub.SubmissionAssignmentID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch assignment")
	}

	if _, err := classService.EnsureClassTeacher(
		ctrl.DB.WithContext(c.Context()), asg.AssignmentClassID, uid, helper.IsAdmin(c),
	); err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check class access")
	}

	// Body may override what gets sent to the model; defaults come
	// from the stored submission and assignment.
	var body struct {
		Content         string `json:"content"`
		AssignmentTitle string `json:"assignment_title"`
	}
	_ = c.BodyParser(&body)

	content := body.Content
	if content == "" && sub.SubmissionContent != nil {
		content = *sub.SubmissionContent
	}
	if content == "" {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Submission has no text content to grade")
	}
	title := body.AssignmentTitle
	if title == "" {
		title = asg.AssignmentTitle
	}

	result, err := ctrl.Grader.Grade(c.Context(), title, content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRateLimited):
			return helper.JsonError(c, fiber.StatusTooManyRequests, "AI service is rate limited, try again later")
		case errors.Is(err, service.ErrPaymentRequired):
			return helper.JsonError(c, fiber.StatusPaymentRequired, "AI credits exhausted")
		default:
			return helper.JsonError(c, fiber.StatusBadGateway, "AI grading failed, grade manually or try again")
		}
	}

	grade := float64(result.Grade)
	now := time.Now()
	updates := map[string]any{
		"submission_grade":       grade,
		"submission_ai_feedback": result.Feedback,
		"submission_status":      subModel.SubmissionStatusGraded,
		"submission_graded_at":   now,
	}
	if err := ctrl.DB.WithContext(c.Context()).
		Model(&subModel.SubmissionModel{}).
		Where("submission_id = ?", sub.SubmissionID).
		Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "AI graded but saving the result failed")
	}

	sub.SubmissionGrade = &grade
	sub.SubmissionAIFeedback = &result.Feedback
	sub.SubmissionStatus = subModel.SubmissionStatusGraded
	sub.SubmissionGradedAt = &now
	return helper.JsonOK(c, "Submission graded by AI", fiber.Map{
		"grade":      result.Grade,
		"feedback":   result.Feedback,
		"submission": sub,
	})
}
