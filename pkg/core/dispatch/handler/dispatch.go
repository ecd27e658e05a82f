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
	"github.com/gin-gonic/gin"

	"github.com/geosysmlservis/optimizador-mapas/pkg/core/dispatch/service"
	internalhandler "github.com/geosysmlservis/optimizador-mapas/pkg/shared/handler"
	e "github.com/geosysmlservis/optimizador-mapas/pkg/tool/errors"
)

func EnqueueTasks(c *gin.Context) {
	ctx := internalhandler.NewContext(c)
	defer func() { internalhandler.JSONResponse(c, ctx) }()

	args := new(service.EnqueueArgs)
	if err := c.ShouldBindJSON(args); err != nil {
		ctx.Err = e.ErrInvalidParam.AddErr(err)
		return
	}
	ctx.Resp, ctx.Err = service.EnqueueTasks(args, ctx.Logger)
}
