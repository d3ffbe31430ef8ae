package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appWithRole(role string, guard fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if role != "" {
			c.Locals("user_role", role)
		}
		return c.Next()
	})
	app.Get("/t", guard, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestOnlyRoles(t *testing.T) {
	cases := []struct {
		name    string
		role    string
		allowed []string
		want    int
	}{
		{"teacher allowed", "teacher", []string{"teacher", "admin"}, fiber.StatusOK},
		{"admin allowed", "admin", []string{"teacher", "admin"}, fiber.StatusOK},
		{"student blocked", "student", []string{"teacher", "admin"}, fiber.StatusForbidden},
		{"student-only blocks teacher", "teacher", []string{"student"}, fiber.StatusForbidden},
		{"missing role", "", []string{"teacher"}, fiber.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := appWithRole(tc.role, OnlyRoles("nope", tc.allowed...))
			resp, err := app.Test(httptest.NewRequest("GET", "/t", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}
