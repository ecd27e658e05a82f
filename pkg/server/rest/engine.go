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

package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/geosysmlservis/optimizador-mapas/pkg/config"
	middleware "github.com/geosysmlservis/optimizador-mapas/pkg/middleware/gin"
	"github.com/geosysmlservis/optimizador-mapas/pkg/setting"
	"github.com/geosysmlservis/optimizador-mapas/pkg/tool/log"
)

type engine struct {
	*gin.Engine
}

func NewEngine() *gin.Engine {
	if config.Mode() == setting.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &engine{Engine: gin.New()}
	s.Engine.Use(middleware.RequestLog(log.Logger().Named("request")), gin.Recovery())

	s.injectHealthz()
	s.injectRouterGroup(s.Engine.Group(""))

	return s.Engine
}

func (s *engine) injectHealthz() {
	health := func(c *gin.Context) {
		c.String(http.StatusOK, "OK - Horizontal Processor")
	}
	s.Engine.GET("/", health)
	s.Engine.GET("/health", health)
}
