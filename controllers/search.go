package controllers

import (
	"errors"

	"finquery/internal/analytics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SearchController struct {
	Engine *analytics.Engine
	Logger *zap.SugaredLogger
}

// Search compiles the structured criteria into a filter over financial
// rows. A query that matches nothing succeeds with an empty list.
func (sc SearchController) Search(c *gin.Context) {
	type searchParams struct {
		Criteria []analytics.Criterion `json:"criteria" binding:"required"`
	}

	var payload searchParams
	if err := c.BindJSON(&payload); err != nil {
		RespondBadRequestErr(c, err)
		return
	}

	rows, err := sc.Engine.Search(payload.Criteria)
	if err != nil {
		var criteriaErr *analytics.CriteriaError
		if errors.As(err, &criteriaErr) {
			RespondBadRequestErr(c, criteriaErr)
			return
		}

		sc.Logger.Errorf("Error running search: %v", err)
		RespondInternalErr(c)
		return
	}

	RespondOK(c, rows)
}
