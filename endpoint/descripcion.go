package endpoint

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oficiossde/directorio-api/util"
)

type reescribirRequest struct {
	Descripcion string `json:"descripcion" example:"arreglo canillas y hago instalaciones"`
}

// ReescribirDescripcion godoc
// @Summary      Rewrite a self-description
// @Description  Improves a professional's self-description with the configured AI model
// @Tags         Descripcion
// @Accept       json
// @Produce      json
// @Success      200 {object} util.APIResponse{data=object} "Description rewritten"
// @Failure      400 {object} util.APIResponse "Validation error"
// @Failure      500 {object} util.APIResponse "Rewrite failed or feature disabled"
// @Router       /descripcion/reescribir [post]
func ReescribirDescripcion(c *gin.Context) {
	var req reescribirRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request body",
			Err: err,
		})
		return
	}

	descripcion := strings.TrimSpace(req.Descripcion)
	if descripcion == "" {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "descripcion is required",
			Err: fmt.Errorf("missing descripcion"),
		})
		return
	}

	reescritor := util.GetReescritor()
	if reescritor == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Description rewriting is not available",
			Err: fmt.Errorf("reescritor not configured"),
		})
		return
	}

	mejorada, err := reescritor.Reescribir(c.Request.Context(), descripcion)
	if err != nil {
		switch util.ClassifyRewriteError(err) {
		case util.RewriteErrRateLimit:
			util.CallServerError(c, util.APIErrorParams{
				Msg: "The rewriting service is busy, please try again in a moment",
				Err: err,
			})
		case util.RewriteErrAuth:
			util.CallServerError(c, util.APIErrorParams{
				Msg: "The rewriting service rejected the request",
				Err: err,
			})
		default:
			util.CallServerError(c, util.APIErrorParams{
				Msg: "Failed to rewrite the description",
				Err: err,
			})
		}
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Description rewritten",
		Data: map[string]interface{}{"descripcion": mejorada},
	})
}
