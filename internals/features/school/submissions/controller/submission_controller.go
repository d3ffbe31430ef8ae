package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	asgModel "github.com/mohitmore9417-afk/edua-ai/internals/features/school/assignments/model"
	classService "github.com/mohitmore9417-afk/edua-ai/internals/features/school/classes/service"
	dto "github.com/mohitmore9417-afk/edua-ai/internals/features/school/submissions/dto"
	model "github.com/mohitmore9417-afk/edua-ai/internals/features/school/submissions/model"
	helper "github.com/mohitmore9417-afk/edua-ai/internals/helpers"
	"github.com/mohitmore9417-afk/edua-ai/internals/helpers/storage"
)

type SubmissionController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewSubmissionController(db *gorm.DB) *SubmissionController {
	return &SubmissionController{
		DB:        db,
		Validator: validator.New(),
	}
}

func applySort(q *gorm.DB, sort string) *gorm.DB {
	switch strings.TrimSpace(sort) {
	case "created_at":
		return q.Order("submission_created_at ASC")
	case "grade":
		return q.Order("submission_grade ASC NULLS LAST")
	case "desc_grade":
		return q.Order("submission_grade DESC NULLS LAST")
	default:
		return q.Order("submission_created_at DESC")
	}
}

// findAssignment loads the assignment a submission belongs to.
func (ctrl *SubmissionController) findAssignment(c *fiber.Ctx, assignmentID uuid.UUID) (*asgModel.AssignmentModel, error) {
	var asg asgModel.AssignmentModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&asg, "assignment_id = ?", assignmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Assignment not found")
		}
		return nil, err
	}
	return &asg, nil
}

func jsonErrFrom(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	if errors.Is(err, classService.ErrClassNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
}

/* =========================
   Handlers
========================= */

// POST / (STUDENT, must be enrolled in the assignment's class)
func (ctrl *SubmissionController) Create(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var body dto.CreateSubmissionRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	asg, err := ctrl.findAssignment(c, body.SubmissionAssignmentID)
	if err != nil {
		return jsonErrFrom(c, err)
	}

	ok, err := classService.IsClassMember(ctrl.DB.WithContext(c.Context()), asg.AssignmentClassID, uid)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusForbidden, "You are not enrolled in this class")
	}

	sub := body.ToModel(uid)
	if err := ctrl.DB.WithContext(c.Context()).Create(&sub).Error; err != nil {
		if helper.IsDuplicateKeyError(err) {
			return helper.JsonError(c, fiber.StatusConflict, "You already submitted this assignment")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "Submission created", dto.FromModel(&sub))
}

// POST /:id/file (owning STUDENT) — attach a file to an ungraded submission.
func (ctrl *SubmissionController) AttachFile(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID")
	}
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var sub model.SubmissionModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&sub, "submission_id = ? AND submission_student_id = ?", id, uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Submission not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if sub.SubmissionStatus == model.SubmissionStatusGraded {
		return helper.JsonError(c, fiber.StatusConflict, "Submission is already graded")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing file")
	}

	key, err := storage.UploadFile(storage.BucketSubmissions, uid, fh)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Upload failed: "+err.Error())
	}

	if err := ctrl.DB.WithContext(c.Context()).
		Model(&sub).Update("submission_file_key", key).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	sub.SubmissionFileKey = &key
	return helper.JsonUpdated(c, "File attached", dto.FromModel(&sub))
}

// GET /?assignment_id=&student_id= (teacher of the class; students see own)
func (ctrl *SubmissionController) List(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role, _ := helper.GetRoleFromToken(c)

	var q dto.ListSubmissionsQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}
	if err := ctrl.Validator.Struct(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	paging := helper.ResolvePaging(c, 20, 200)
	tx := ctrl.DB.WithContext(c.Context()).Model(&model.SubmissionModel{})

	switch role {
	case "student":
		// Students only ever see their own rows.
		tx = tx.Where("submission_student_id = ?", uid)
	case "teacher":
		tx = tx.Where(`submission_assignment_id IN (
			SELECT assignment_id FROM assignments
			JOIN classes ON class_id = assignment_class_id
			WHERE class_teacher_id = ?)`, uid)
	}

	if q.AssignmentID != nil {
		tx = tx.Where("submission_assignment_id = ?", *q.AssignmentID)
	}
	if q.StudentID != nil && role != "student" {
		tx = tx.Where("submission_student_id = ?", *q.StudentID)
	}
	if q.Status != nil {
		tx = tx.Where("submission_status = ?", *q.Status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.SubmissionModel
	if err := applySort(tx, q.Sort).
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "OK", dto.FromModels(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /:id (owning student, class teacher, admin)
func (ctrl *SubmissionController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID")
	}
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role, _ := helper.GetRoleFromToken(c)

	var sub model.SubmissionModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&sub, "submission_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Submission not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if role == "student" && sub.SubmissionStudentID != uid {
		// Same shape as not-found; a student cannot probe other rows.
		return helper.JsonError(c, fiber.StatusNotFound, "Submission not found")
	}
	if role == "teacher" {
		asg, err := ctrl.findAssignment(c, sub.SubmissionAssignmentID)
		if err != nil {
			return jsonErrFrom(c, err)
		}
		if _, err := classService.EnsureClassTeacher(ctrl.DB.WithContext(c.Context()), asg.AssignmentClassID, uid, false); err != nil {
			return jsonErrFrom(c, err)
		}
	}

	return helper.JsonOK(c, "OK", dto.FromModel(&sub))
}

// PATCH /:id (owning STUDENT, only while ungraded)
func (ctrl *SubmissionController) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID")
	}
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var sub model.SubmissionModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&sub, "submission_id = ? AND submission_student_id = ?", id, uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Submission not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if sub.SubmissionStatus == model.SubmissionStatusGraded {
		return helper.JsonError(c, fiber.StatusConflict, "Submission is already graded")
	}

	var body dto.PatchSubmissionRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}

	updates := body.ToUpdates()
	if len(updates) > 0 {
		if err := ctrl.DB.WithContext(c.Context()).
			Model(&sub).Updates(updates).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
	}

	if err := ctrl.DB.WithContext(c.Context()).
		First(&sub, "submission_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "Submission updated", dto.FromModel(&sub))
}

// PATCH /:id/grade (class TEACHER / ADMIN)
func (ctrl *SubmissionController) Grade(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID")
	}
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var sub model.SubmissionModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&sub, "submission_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Submission not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	asg, err := ctrl.findAssignment(c, sub.SubmissionAssignmentID)
	if err != nil {
		return jsonErrFrom(c, err)
	}
	if _, err := classService.EnsureClassTeacher(ctrl.DB.WithContext(c.Context()), asg.AssignmentClassID, uid, helper.IsAdmin(c)); err != nil {
		return jsonErrFrom(c, err)
	}

	var body dto.GradeSubmissionRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if body.SubmissionGrade != nil && *body.SubmissionGrade > float64(asg.AssignmentTotalPoints) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Grade cannot exceed the assignment's total points")
	}

	updates := map[string]any{}
	if body.SubmissionGrade != nil {
		updates["submission_grade"] = *body.SubmissionGrade
	}
	if body.SubmissionTeacherFeedback != nil {
		updates["submission_teacher_feedback"] = *body.SubmissionTeacherFeedback
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "OK", dto.FromModel(&sub))
	}

	updates["submission_status"] = model.SubmissionStatusGraded
	updates["submission_graded_by"] = uid
	updates["submission_graded_at"] = time.Now()

	if err := ctrl.DB.WithContext(c.Context()).
		Model(&sub).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := ctrl.DB.WithContext(c.Context()).
		First(&sub, "submission_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "Submission graded", dto.FromModel(&sub))
}

// GET /:id/file-url (owning student, class teacher, admin)
func (ctrl *SubmissionController) FileURL(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID")
	}
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role, _ := helper.GetRoleFromToken(c)

	var sub model.SubmissionModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&sub, "submission_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Submission not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if role == "student" && sub.SubmissionStudentID != uid {
		return helper.JsonError(c, fiber.StatusNotFound, "Submission not found")
	}
	if role == "teacher" {
		asg, err := ctrl.findAssignment(c, sub.SubmissionAssignmentID)
		if err != nil {
			return jsonErrFrom(c, err)
		}
		if _, err := classService.EnsureClassTeacher(ctrl.DB.WithContext(c.Context()), asg.AssignmentClassID, uid, false); err != nil {
			return jsonErrFrom(c, err)
		}
	}
	if sub.SubmissionFileKey == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Submission has no file")
	}

	url, err := storage.SignedURL(storage.BucketSubmissions, *sub.SubmissionFileKey, 15*time.Minute)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "OK", fiber.Map{"url": url})
}
