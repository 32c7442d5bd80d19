package cli

import (
	"github.com/felixgeelhaar/pairfit/internal/app"
)

var container *app.Container

// SetContainer makes the application container available to commands.
func SetContainer(c *app.Container) {
	container = c
}

// GetContainer returns the application container, or nil when the client
// failed to initialize.
func GetContainer() *app.Container {
	return container
}
