// internal/app/bootstrap/hooks.go
package bootstrap

import (
	"github.com/dalemusser/waffle/app"
)

// appName is the service name in logs and the health response.
const appName = "vastusite"

// Hooks wires the app into WAFFLE's lifecycle:
// config → validate → Mongo → schema and admin → templates → router → shutdown.
var Hooks = app.Hooks[AppConfig, DBDeps]{
	Name:           appName,
	LoadConfig:     LoadConfig,
	ValidateConfig: ValidateConfig,
	ConnectDB:      ConnectDB,
	EnsureSchema:   EnsureSchema,
	Startup:        Startup,
	BuildHandler:   BuildHandler,
	Shutdown:       Shutdown,
}
