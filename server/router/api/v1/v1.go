// Package v1 exposes the REST API: one operation, "submit a schedule image,
// receive a calendar document".
package v1

import (
	"github.com/labstack/echo/v4"

	"github.com/classcal/classcal/internal/profile"
	"github.com/classcal/classcal/server/service/schedule"
	"github.com/classcal/classcal/store"
)

// APIV1Service bundles the dependencies of the v1 routes.
type APIV1Service struct {
	Profile         *profile.Profile
	Store           *store.FileStore
	ScheduleService *schedule.Service
}

// NewAPIV1Service creates the v1 API service.
func NewAPIV1Service(profile *profile.Profile, store *store.FileStore, scheduleService *schedule.Service) *APIV1Service {
	return &APIV1Service{
		Profile:         profile,
		Store:           store,
		ScheduleService: scheduleService,
	}
}

// RegisterRoutes registers the v1 routes with the given echo instance.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1")
	g.POST("/schedules/image", s.ConvertScheduleImage)
}
