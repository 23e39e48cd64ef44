package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp crea la app fiber de la API.
// Immutable: c.Params, c.Query y el cuerpo se copian fuera del buffer de fasthttp,
// de modo que los IDs que guardan los casos de uso (y el store en memoria) no se
// reescriben con la petición siguiente.
func NewApp(name string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               name,
		Immutable:             true,
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 10,
		IdleTimeout:           time.Second * 60,
		BodyLimit:             10 * 1024 * 1024, // hojas de conteo
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	return app
}
