package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "github.com/mohitmore9417-afk/edua-ai/internals/features/users/profile/dto"
	model "github.com/mohitmore9417-afk/edua-ai/internals/features/users/profile/model"
	helper "github.com/mohitmore9417-afk/edua-ai/internals/helpers"
)

type ProfileController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{
		DB:        db,
		Validator: validator.New(),
	}
}

// GET /me
func (ctrl *ProfileController) Me(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var p model.ProfileModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&p, "profile_id = ?", uid).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Profile not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "OK", dto.FromModel(&p))
}

// PATCH /me
func (ctrl *ProfileController) UpdateMe(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var body dto.UpdateMeRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if body.ProfileFullName != nil {
		if err := ctrl.DB.WithContext(c.Context()).
			Model(&model.ProfileModel{}).
			Where("profile_id = ?", uid).
			Update("profile_full_name", strings.TrimSpace(*body.ProfileFullName)).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
	}
	if body.UserName != nil {
		if err := ctrl.DB.WithContext(c.Context()).
			Model(&model.UserModel{}).
			Where("id = ?", uid).
			Update("user_name", strings.TrimSpace(*body.UserName)).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
	}

	var p model.ProfileModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&p, "profile_id = ?", uid).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "Profile updated", dto.FromModel(&p))
}

// GET / (ADMIN)
func (ctrl *ProfileController) List(c *fiber.Ctx) error {
	var q dto.ListProfilesQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}
	if err := ctrl.Validator.Struct(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	paging := helper.ResolvePaging(c, 20, 200)

	tx := ctrl.DB.WithContext(c.Context()).Model(&model.ProfileModel{})
	if q.Role != nil {
		tx = tx.Where("profile_role = ?", *q.Role)
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		tx = tx.Where("LOWER(profile_full_name) LIKE ? OR LOWER(profile_email) LIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.ProfileModel
	if err := tx.Order("profile_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "OK", dto.FromModels(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// PATCH /:id/role (ADMIN)
func (ctrl *ProfileController) PatchRole(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID")
	}

	var body dto.PatchRoleRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	res := ctrl.DB.WithContext(c.Context()).
		Model(&model.ProfileModel{}).
		Where("profile_id = ?", id).
		Update("profile_role", body.ProfileRole)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Profile not found")
	}

	var p model.ProfileModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&p, "profile_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "Role updated", dto.FromModel(&p))
}
