package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tradedesk-portal/internal/middleware"
	"github.com/tradedesk-portal/internal/repository"
	"github.com/tradedesk-portal/internal/service"
	"github.com/tradedesk-portal/pkg/response"
)

// actorFrom builds the service actor from the authenticated request
func actorFrom(c *gin.Context) service.Actor {
	return service.Actor{ID: middleware.GetUserID(c), Role: middleware.GetRole(c)}
}

// paramID parses a uuid path parameter, answering 400 when it is malformed
func paramID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

var (
	badRequestErrors = []error{
		service.ErrInvalidDate,
		service.ErrInvalidRange,
		service.ErrInvalidID,
		service.ErrNegativeShares,
		service.ErrInvalidLeaveMonth,
		service.ErrInsufficientLeave,
		service.ErrNotCheckedIn,
		service.ErrWrongPassword,
	}
	conflictErrors = []error{
		service.ErrDuplicateTradeRecord,
		service.ErrAlreadyCheckedIn,
		service.ErrAlreadyCheckedOut,
		service.ErrDuplicateLeave,
		service.ErrLeaveNotPending,
		service.ErrHolidayExists,
		service.ErrEmailTaken,
		service.ErrAccountNumberTaken,
		repository.ErrDuplicate,
	}
	forbiddenErrors = []error{
		service.ErrForbidden,
		service.ErrAccountNotOwned,
		service.ErrCannotDeleteSelf,
		service.ErrUserInactive,
	}
	notFoundErrors = []error{
		repository.ErrUserNotFound,
		repository.ErrAccountNotFound,
		repository.ErrTradeRecordNotFound,
		repository.ErrHolidayNotFound,
		repository.ErrAttendanceNotFound,
		repository.ErrLeaveNotFound,
	}
)

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// respondError maps service and repository sentinels onto the response envelope.
// Unknown errors become a 500 carrying fallback, never the raw error.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case isAny(err, badRequestErrors):
		response.BadRequest(c, err.Error())
	case isAny(err, conflictErrors):
		response.Conflict(c, err.Error())
	case isAny(err, forbiddenErrors):
		response.Forbidden(c, err.Error())
	case isAny(err, notFoundErrors):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		response.Unauthorized(c, err.Error())
	default:
		middleware.LogError("%s: %v", fallback, err)
		response.InternalError(c, fallback)
	}
}
