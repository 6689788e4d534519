package routes

import (
	"github.com/gin-gonic/gin"

	"bookstore-catalog/internal/handlers"
)

// Handlers agrupa todos los handlers HTTP de la API.
type Handlers struct {
	Books         *handlers.BookHandler
	Authors       *handlers.ReferenceHandler
	Editorials    *handlers.ReferenceHandler
	Countries     *handlers.ReferenceHandler
	Categories    *handlers.ReferenceHandler
	Subcategories *handlers.SubcategoryHandler
	Users         *handlers.UserHandler
	Health        *handlers.HealthHandler
}

// Guards son los middlewares de autenticación y rol admin.
type Guards struct {
	Auth  gin.HandlerFunc
	Admin gin.HandlerFunc
}

func RegisterRoutes(router *gin.Engine, h Handlers, g Guards) {
	if h.Health != nil {
		router.GET("/healthz", h.Health.Live)
		router.GET("/readyz", h.Health.Ready)
	}

	admin := []gin.HandlerFunc{g.Auth, g.Admin}

	api := router.Group("/api")
	{
		api.POST("/book", chain(admin, h.Books.Create)...)
		api.GET("/books/total", h.Books.Count)
		api.GET("/books/:count", h.Books.ListRecent)
		api.GET("/book/:slug", h.Books.Read)
		api.PUT("/book/:slug", chain(admin, h.Books.Update)...)
		api.PATCH("/book/:slug", chain(admin, h.Books.Remove)...)
		api.POST("/books", h.Books.Page)

		reference(api, "author", []string{"authors"}, h.Authors, nil)
		reference(api, "editorial", []string{"editorials"}, h.Editorials, nil)
		reference(api, "country", []string{"countries", "countryes"}, h.Countries, nil)
		reference(api, "category", []string{"categories"}, h.Categories, admin)

		api.POST("/subcategory", h.Subcategories.Create)
		api.GET("/subcategories", h.Subcategories.List)
		api.GET("/subcategory/:slug", h.Subcategories.Read)
		api.PUT("/subcategory/:slug", h.Subcategories.Update)
		api.PATCH("/subcategory/:slug", h.Subcategories.Remove)

		api.POST("/create-or-update-user", g.Auth, h.Users.CreateOrUpdate)
		api.POST("/current-user", g.Auth, h.Users.Current)
		api.POST("/current-admin", g.Auth, g.Admin, h.Users.Current)
	}
}

// reference registra el CRUD de una entidad de referencia; guard protege las escrituras.
func reference(api *gin.RouterGroup, singular string, plurals []string, h *handlers.ReferenceHandler, guard []gin.HandlerFunc) {
	api.POST("/"+singular, chain(guard, h.Create)...)
	for _, plural := range plurals {
		api.GET("/"+plural, h.List)
	}
	api.GET("/"+singular+"/:slug", h.Read)
	api.PUT("/"+singular+"/:slug", chain(guard, h.Update)...)
	api.PATCH("/"+singular+"/:slug", chain(guard, h.Remove)...)
}

func chain(guard []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(guard)+1)
	out = append(out, guard...)
	return append(out, handler)
}
