package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "github.com/mohitmore9417-afk/edua-ai/internals/features/users/profile/controller"
	"github.com/mohitmore9417-afk/edua-ai/internals/constants"
	authMw "github.com/mohitmore9417-afk/edua-ai/internals/middlewares/auth"
)

// ProfileRoutes mounts self-service + admin profile endpoints.
// Base: authenticated /api group.
func ProfileRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewProfileController(db)

	me := r.Group("/me")
	me.Get("/", ctrl.Me)
	me.Patch("/", ctrl.UpdateMe)

	admin := r.Group("/profiles",
		authMw.OnlyRoles(constants.RoleErrorAdmin("user management"), constants.AdminOnly...),
	)
	admin.Get("/", ctrl.List)
	admin.Patch("/:id/role", ctrl.PatchRole)
}
