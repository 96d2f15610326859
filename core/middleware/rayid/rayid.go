// Package rayid tags every request with a unique ray id so log lines
// across a request can be correlated. The id is stored in the Fiber
// locals under "ray_id" and echoed in the X-Ray-ID response header.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Local is the Fiber locals key holding the ray id.
const Local = "ray_id"

// Header is the response header carrying the ray id.
const Header = "X-Ray-ID"

// New creates the ray-id middleware. An incoming X-Ray-ID header is
// trusted (upstream proxies may have tagged the request already);
// otherwise a fresh UUID is generated.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(Local, rid)
		c.Set(Header, rid)
		return c.Next()
	}
}
