package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/crm-inmobiliario/internal/application/analytics"
	"github.com/jhoicas/crm-inmobiliario/internal/application/auth"
	"github.com/jhoicas/crm-inmobiliario/internal/application/notaencargo"
	"github.com/jhoicas/crm-inmobiliario/internal/application/usecase"
	"github.com/jhoicas/crm-inmobiliario/internal/application/website"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ContactUC     *usecase.ContactUseCase
	PropertyUC    *usecase.PropertyUseCase
	ListingUC     *usecase.ListingUseCase
	ProspectUC    *usecase.ProspectUseCase
	LeadUC        *usecase.LeadUseCase
	AppointmentUC *usecase.AppointmentUseCase
	TaskUC        *usecase.TaskUseCase
	DocumentUC    *usecase.DocumentUseCase
	DealUC        *usecase.DealUseCase
	CommentUC     *usecase.CommentUseCase
	CartelUC      *usecase.CartelUseCase
	UserUC        *usecase.UserUseCase
	LookupUC      *usecase.LookupUseCase
	Website       *website.Store
	DashboardUC   *appanalytics.DashboardUseCase
	NotaEncargoUC *notaencargo.UseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público salvo /me)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAccountAdmin)

	contactHandler := NewContactHandler(deps.ContactUC)
	contacts := protected.Group("/contacts")
	contacts.Post("/", contactHandler.Create)
	contacts.Get("/", contactHandler.List)
	contacts.Get("/:id", contactHandler.GetByID)
	contacts.Patch("/:id", contactHandler.Update)
	contacts.Delete("/:id", contactHandler.Delete)
	contacts.Post("/:id/notes", contactHandler.AddNote)
	contacts.Get("/:id/notes", contactHandler.ListNotes)
	contacts.Delete("/:id/notes/:noteId", contactHandler.DeleteNote)

	propertyHandler := NewPropertyHandler(deps.PropertyUC)
	lookupHandler := NewLookupHandler(deps.LookupUC)
	properties := protected.Group("/properties")
	properties.Post("/enrich", lookupHandler.EnrichProperty)
	properties.Post("/", propertyHandler.Create)
	properties.Get("/", propertyHandler.List)
	properties.Get("/:id", propertyHandler.GetByID)
	properties.Patch("/:id", propertyHandler.Update)
	properties.Delete("/:id", propertyHandler.Delete)
	properties.Post("/:id/images", propertyHandler.AddImage)
	properties.Get("/:id/images", propertyHandler.ListImages)
	properties.Put("/:id/images/order", propertyHandler.ReorderImages)
	properties.Delete("/:id/images/:imageId", propertyHandler.DeleteImage)

	listingHandler := NewListingHandler(deps.ListingUC)
	commentHandler := NewCommentHandler(deps.CommentUC)
	listings := protected.Group("/listings")
	listings.Post("/", listingHandler.Create)
	listings.Get("/", listingHandler.List)
	listings.Get("/details", listingHandler.ListDetails)
	listings.Get("/:id", listingHandler.GetByID)
	listings.Get("/:id/details", listingHandler.GetDetails)
	listings.Patch("/:id", listingHandler.Update)
	listings.Delete("/:id", listingHandler.Delete)
	listings.Post("/:id/publish", listingHandler.Publish)
	listings.Post("/:id/description", listingHandler.DraftDescription)
	listings.Get("/:id/comments", commentHandler.ListByListing)
	listings.Post("/:id/comments", commentHandler.CreateOnListing)

	prospectHandler := NewProspectHandler(deps.ProspectUC)
	prospects := protected.Group("/prospects")
	prospects.Post("/", prospectHandler.Create)
	prospects.Get("/", prospectHandler.List)
	prospects.Get("/:id", prospectHandler.GetByID)
	prospects.Patch("/:id", prospectHandler.Update)
	prospects.Delete("/:id", prospectHandler.Delete)

	leadHandler := NewLeadHandler(deps.LeadUC)
	leadsGroup := protected.Group("/leads")
	leadsGroup.Post("/", leadHandler.Create)
	leadsGroup.Get("/", leadHandler.List)
	leadsGroup.Get("/find", leadHandler.Find)
	leadsGroup.Get("/:id", leadHandler.GetByID)
	leadsGroup.Patch("/:id/status", leadHandler.UpdateStatus)
	leadsGroup.Delete("/:id", leadHandler.Delete)

	appointmentHandler := NewAppointmentHandler(deps.AppointmentUC)
	appointments := protected.Group("/appointments")
	appointments.Post("/", appointmentHandler.Create)
	appointments.Get("/", appointmentHandler.List)
	appointments.Get("/:id", appointmentHandler.GetByID)
	appointments.Patch("/:id", appointmentHandler.Update)
	appointments.Patch("/:id/status", appointmentHandler.ChangeStatus)
	appointments.Post("/:id/visit-outcome", appointmentHandler.RecordVisitOutcome)
	appointments.Delete("/:id", appointmentHandler.Delete)

	taskHandler := NewTaskHandler(deps.TaskUC)
	tasks := protected.Group("/tasks")
	tasks.Post("/", taskHandler.Create)
	tasks.Get("/", taskHandler.List)
	tasks.Get("/:id", taskHandler.GetByID)
	tasks.Patch("/:id", taskHandler.Update)
	tasks.Post("/:id/complete", taskHandler.Complete)
	tasks.Delete("/:id", taskHandler.Delete)

	documentHandler := NewDocumentHandler(deps.DocumentUC)
	documents := protected.Group("/documents")
	documents.Post("/", documentHandler.Upload)
	documents.Get("/", documentHandler.List)
	documents.Get("/:id", documentHandler.GetByID)
	documents.Delete("/:id", documentHandler.Delete)

	dealHandler := NewDealHandler(deps.DealUC)
	deals := protected.Group("/deals")
	deals.Post("/", dealHandler.Create)
	deals.Get("/", dealHandler.List)
	deals.Get("/:id", dealHandler.GetByID)
	deals.Patch("/:id", dealHandler.Update)
	deals.Delete("/:id", dealHandler.Delete)

	comments := protected.Group("/comments")
	comments.Post("/", commentHandler.Create)
	comments.Get("/", commentHandler.Thread)
	comments.Patch("/:id", commentHandler.Edit)
	comments.Delete("/:id", commentHandler.Delete)

	cartelHandler := NewCartelHandler(deps.CartelUC)
	carteles := protected.Group("/cartel-configurations")
	carteles.Post("/", cartelHandler.Create)
	carteles.Get("/", cartelHandler.List)
	carteles.Get("/default", cartelHandler.GetDefault)
	carteles.Get("/:id", cartelHandler.GetByID)
	carteles.Put("/:id", cartelHandler.Update)
	carteles.Put("/:id/default", cartelHandler.SetDefault)
	carteles.Delete("/:id", cartelHandler.Delete)

	// Administración de la cuenta
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", adminOnly)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Patch("/:id", userHandler.Update)
	users.Put("/:id/role", userHandler.UpdateRole)
	users.Delete("/:id", userHandler.Deactivate)

	roles := protected.Group("/account/roles", adminOnly)
	roles.Get("/", userHandler.ListRoles)
	roles.Post("/init", userHandler.InitRoles)
	roles.Put("/:role/permissions", userHandler.UpdateRolePermissions)

	websiteHandler := NewWebsiteHandler(deps.Website)
	site := protected.Group("/website-config")
	site.Get("/", websiteHandler.GetAll)
	site.Get("/:section", websiteHandler.Get)
	site.Put("/:section", adminOnly, websiteHandler.Save)

	lookup := protected.Group("/lookup")
	lookup.Get("/catastro/:ref", lookupHandler.Cadastral)
	lookup.Get("/geocode", lookupHandler.Geocode)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)

	notaHandler := NewNotaEncargoHandler(deps.NotaEncargoUC)
	protected.Post("/nota-encargo/generate-pdf", notaHandler.GeneratePDF)
}
