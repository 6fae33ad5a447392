package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mkarsten/waveline/middleware"
	"github.com/mkarsten/waveline/services"
	"github.com/mkarsten/waveline/utils"
)

func getUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}

func parseUintParam(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// respondServiceError is the single place mapping service error kinds to HTTP
// statuses and application codes. Internal detail never reaches the client.
func respondServiceError(ctx *gin.Context, err error) {
	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		if utils.Sugar != nil {
			utils.Sugar.Errorf("unclassified service error: %v", err)
		}
		utils.Error(ctx, http.StatusInternalServerError, 50000, "internal server error")
		return
	}

	switch svcErr.Kind {
	case services.KindValidation:
		utils.Error(ctx, http.StatusBadRequest, 40010, svcErr.Msg)
	case services.KindNotFound:
		utils.Error(ctx, http.StatusNotFound, 40400, svcErr.Msg)
	case services.KindAuthentication:
		utils.Error(ctx, http.StatusUnauthorized, 40106, svcErr.Msg)
	case services.KindAuthorization:
		utils.Error(ctx, http.StatusUnauthorized, 40110, svcErr.Msg)
	case services.KindConflict:
		utils.Error(ctx, http.StatusConflict, 40901, svcErr.Msg)
	default:
		if utils.Sugar != nil {
			utils.Sugar.Errorf("%s: %v", svcErr.Msg, svcErr.Err)
		}
		utils.Error(ctx, http.StatusInternalServerError, 50000, "internal server error")
	}
}
