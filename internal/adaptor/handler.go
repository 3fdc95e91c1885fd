package adaptor

import (
	"net/http"

	"moviematrix/internal/authz"
	"moviematrix/internal/data/entity"
	"moviematrix/internal/usecase"
	"moviematrix/pkg/apperrors"
	"moviematrix/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth   *AuthHandler
	User   *UserHandler
	Movie  *MovieHandler
	Review *ReviewHandler
	Stats  *StatsHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(service.Auth, log),
		User:   NewUserHandler(service.User, log),
		Movie:  NewMovieHandler(service.Movie, log),
		Review: NewReviewHandler(service.Review, log),
		Stats:  NewStatsHandler(service.Stats, log),
	}
}

// handleServiceError maps service errors to HTTP responses by error kind.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case apperrors.KindUnauthenticated:
		log.Warn(operation+" unauthenticated", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case apperrors.KindForbidden:
		log.Warn(operation+" forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case apperrors.KindNotFound:
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case apperrors.KindConflict:
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case apperrors.KindUpstreamUnavailable:
		log.Error(operation+" upstream unavailable", zap.Error(err))
		utils.ResponseBadGateway(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "internal server error")
	}
}

// actorFromContext builds the authorization actor from the authenticated
// request context. The zero Actor is treated as anonymous.
func actorFromContext(r *http.Request) authz.Actor {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return authz.Actor{}
	}

	role, _ := utils.GetRoleFromContext(r.Context())
	return authz.Actor{
		ID:   userID,
		Role: entity.UserRole(role),
	}
}
