package route

import (
	"timebank-service/src/internal/delivery/http"
	"timebank-service/src/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v2"
)

type RouteConfig struct {
	App                      *fiber.App
	UserController           *http.UserController
	WalletController         *http.WalletController
	JobController            *http.JobController
	JobApplicationController *http.JobApplicationController
	MatchController          *http.MatchController
	AdminController          *http.AdminController
	NotificationController   *http.NotificationController
	SkillController          *http.SkillController
	AuthMiddleware           fiber.Handler
	AdminMiddleware          fiber.Handler
}

func (c *RouteConfig) Setup() {
	c.App.Use(middleware.NewLogger())
	c.App.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.SendString("OK")
	})

	c.SetupPublicRoute()
	c.SetupAuthRoute()
	c.SetupAdminRoute()
}

func (c *RouteConfig) SetupPublicRoute() {
	c.App.Post("/users/v1/register", c.UserController.Register)
}

func (c *RouteConfig) SetupAuthRoute() {
	auth := c.App.Group("", c.AuthMiddleware)

	auth.Get("/users/v1/profile", c.UserController.GetProfile)
	auth.Get("/users/v1/family", c.WalletController.GetFamilyMembers)
	auth.Get("/users/v1/skills", c.SkillController.ListMySkills)
	auth.Put("/users/v1/skills", c.SkillController.SetMySkills)

	auth.Post("/skills/v1", c.SkillController.Create)
	auth.Get("/skills/v1", c.SkillController.List)
	auth.Get("/skills/v1/:id", c.SkillController.Get)
	auth.Put("/skills/v1/:id", c.SkillController.Update)
	auth.Delete("/skills/v1/:id", c.SkillController.Delete)

	auth.Get("/wallets/v1/balance", c.WalletController.GetBalance)
	auth.Get("/wallets/v1/history", c.WalletController.GetHistory)
	auth.Post("/wallets/v1/transfer", c.WalletController.Transfer)

	auth.Post("/jobs/v1", c.JobController.Create)
	auth.Get("/jobs/v1", c.JobController.List)
	auth.Get("/jobs/v1/mine", c.JobController.ListMine)
	auth.Get("/jobs/v1/nearby", c.JobController.Nearby)
	auth.Get("/jobs/v1/:id", c.JobController.Get)
	auth.Put("/jobs/v1/:id", c.JobController.Update)
	auth.Delete("/jobs/v1/:id", c.JobController.Delete)
	auth.Post("/jobs/v1/:id/broadcast", c.JobController.Broadcast)
	auth.Post("/jobs/v1/:id/apply", c.JobApplicationController.Apply)
	auth.Get("/jobs/v1/:id/applicants", c.JobApplicationController.ListApplicants)

	auth.Get("/applications/v1/mine", c.JobApplicationController.ListMine)
	auth.Patch("/applications/v1/:id/status", c.JobApplicationController.UpdateStatus)

	auth.Post("/matches/v1/:id/accept", c.MatchController.Accept)

	auth.Get("/notifications/v1", c.NotificationController.List)
	auth.Get("/notifications/v1/unread-count", c.NotificationController.UnreadCount)
	auth.Patch("/notifications/v1/:id/read", c.NotificationController.MarkRead)
}

func (c *RouteConfig) SetupAdminRoute() {
	admin := c.App.Group("/admin/v1", c.AuthMiddleware, c.AdminMiddleware)

	admin.Get("/users/unverified", c.AdminController.ListUnverified)
	admin.Post("/users/:id/verify", c.AdminController.VerifyUser)
	admin.Post("/users/:id/reject", c.AdminController.RejectUser)

	admin.Post("/matches", c.AdminController.CreateMatch)
	admin.Get("/matches", c.AdminController.ListMatches)
	admin.Get("/matches/:id", c.AdminController.GetMatch)
	admin.Delete("/matches/:id", c.AdminController.DeleteMatch)
}
