package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-notes-api/internal/auth"
	"github.com/yukikurage/task-notes-api/internal/dto"
	apierrors "github.com/yukikurage/task-notes-api/internal/errors"
	"github.com/yukikurage/task-notes-api/internal/result"
	"github.com/yukikurage/task-notes-api/internal/services"
)

// bindBody decodes a JSON body into req. An empty body leaves req zeroed so
// the service reports the validation failure. A malformed body from an
// anonymous caller is reported as UNAUTHORIZED.
func bindBody(c *gin.Context, actor auth.Actor, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	if !actor.Authenticated() {
		apierrors.RespondWithFailure(c, result.ErrUnauthorized)
		return false
	}
	apierrors.BadRequest(c, "Invalid request body")
	return false
}

// respondResult writes a mutation outcome with successStatus on success.
func respondResult(c *gin.Context, res result.Result, successStatus int) {
	if !res.OK() {
		apierrors.RespondWithFailure(c, res.Err(), services.ErrAIServiceNotConfigured)
		return
	}
	c.JSON(successStatus, dto.MutationResponse{Success: true, ID: res.ID})
}

func respondCreated(c *gin.Context, res result.Result) {
	respondResult(c, res, http.StatusCreated)
}

func respondOK(c *gin.Context, res result.Result) {
	respondResult(c, res, http.StatusOK)
}
