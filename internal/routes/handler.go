// package routes contains the exposed API endpoints
package routes

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/plazahq/plaza/internal/hub"
)

// RouteHandler provides the dependencies for any endpoint, and is the
// receiver of the endpoint handling functions
type RouteHandler struct {
	db     *sql.DB
	floors *hub.Manager
	logger *zap.SugaredLogger
}

// NewRouteHandler creates the receiver for all endpoint handling functions
func NewRouteHandler(db *sql.DB, floors *hub.Manager, logger *zap.SugaredLogger) *RouteHandler {
	return &RouteHandler{
		db:     db,
		floors: floors,
		logger: logger,
	}
}
