/*
Copyright 2024 The GeoSys Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	e "github.com/geosysmlservis/optimizador-mapas/pkg/tool/errors"
	"github.com/geosysmlservis/optimizador-mapas/pkg/tool/log"
)

// Context is the per-request carrier handlers fill in before the deferred
// JSONResponse writes it out.
type Context struct {
	Logger *zap.SugaredLogger
	Err    error
	Resp   interface{}
}

func NewContext(c *gin.Context) *Context {
	return &Context{
		Logger: log.SugaredLogger().With(
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		),
	}
}

// JSONResponse renders ctx as the legacy wire contract: failures become
// {"error": msg} with the CodeError's status (500 for plain errors),
// successes render ctx.Resp verbatim with status 200.
func JSONResponse(c *gin.Context, ctx *Context) {
	if ctx.Err != nil {
		status := http.StatusInternalServerError
		msg := ctx.Err.Error()
		if ce, ok := ctx.Err.(*e.CodeError); ok {
			status = ce.Code()
			msg = ce.Description()
		}
		ctx.Logger.Errorf("request failed: %s", msg)
		c.AbortWithStatusJSON(status, gin.H{"error": msg})
		return
	}

	if ctx.Resp != nil {
		c.JSON(http.StatusOK, ctx.Resp)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "success"})
}
