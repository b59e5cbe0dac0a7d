package web

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, s *Server) {
	h := &handlers{s: s}

	r.GET("/", h.index)
	r.GET("/gallery", h.galleryPage)
	if s.ObjectsDir != "" {
		r.Static("/objects", s.ObjectsDir)
	}

	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.GET("/presets", presets)
		api.GET("/qr", qrHandler)

		api.GET("/card", h.getCard)
		api.POST("/card", h.updateCard)
		api.GET("/card/preview.png", h.preview)

		api.POST("/export", h.export)
		api.POST("/publish", h.publish)

		api.GET("/agents", h.listAgents)
		api.GET("/agents/:id", h.getAgent)
	}
}
