// Package server exposes the frame loop over HTTP for a renderer.
package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"episodemap/galaxy/internal/engine"
	"episodemap/galaxy/internal/graph"
)

// Server serves frames and accepts UI commands
type Server struct {
	engine *engine.Engine
	facets graph.FacetSet
	log    *zap.Logger
}

// New creates a server over a running engine. facets is computed once
// from the full item set since items never change while serving.
func New(eng *engine.Engine, facets graph.FacetSet, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{engine: eng, facets: facets, log: log}
}

// ItemDetail is the pick response
type ItemDetail struct {
	Index         int      `json:"index"`
	Key           string   `json:"key"`
	Guest         string   `json:"guest"`
	Categories    []string `json:"categories"`
	Functions     []string `json:"functions"`
	Audiences     []string `json:"audiences"`
	Takeaways     []string `json:"takeaways"`
	Notes         string   `json:"notes"`
	TranscriptRef string   `json:"transcript_ref"`
}

// Router builds the gin engine with logging, metrics and recovery
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(ginLogger(s.log))
	router.Use(ginMetrics())
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/frame", s.getFrame)
		api.GET("/selection", s.getSelection)
		api.PUT("/selection", s.putSelection)
		api.POST("/selection/reset", s.resetSelection)
		api.GET("/nodes/:index", s.getNode)
		api.POST("/pause", s.pause)
		api.POST("/resume", s.resume)
		api.GET("/facets", s.getFacets)
	}
	return router
}

func (s *Server) getFrame(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.Frame())
}

func (s *Server) getSelection(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.Frame().Selection)
}

func (s *Server) putSelection(c *gin.Context) {
	var sel graph.Selection
	if err := c.ShouldBindJSON(&sel); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	carried, err := s.engine.Select(c.Request.Context(), sel)
	if err != nil {
		s.commandFailed(c, "select", err)
		return
	}
	s.rebuilt(c, carried)
}

func (s *Server) resetSelection(c *gin.Context) {
	carried, err := s.engine.Reset(c.Request.Context())
	if err != nil {
		s.commandFailed(c, "reset", err)
		return
	}
	s.rebuilt(c, carried)
}

func (s *Server) rebuilt(c *gin.Context, carried int) {
	f := s.engine.Frame()
	c.JSON(http.StatusOK, gin.H{
		"revision": f.Revision,
		"nodes":    len(f.Nodes),
		"edges":    len(f.Edges),
		"carried":  carried,
	})
}

func (s *Server) getNode(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return
	}
	it, ok, err := s.engine.Pick(c.Request.Context(), index)
	if err != nil {
		s.commandFailed(c, "pick", err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Node not found"})
		return
	}
	c.JSON(http.StatusOK, detail(index, it))
}

func (s *Server) pause(c *gin.Context) {
	if err := s.engine.Pause(c.Request.Context()); err != nil {
		s.commandFailed(c, "pause", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"paused": true})
}

func (s *Server) resume(c *gin.Context) {
	if err := s.engine.Resume(c.Request.Context()); err != nil {
		s.commandFailed(c, "resume", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"paused": false})
}

func (s *Server) getFacets(c *gin.Context) {
	c.JSON(http.StatusOK, s.facets)
}

func (s *Server) commandFailed(c *gin.Context, op string, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, engine.ErrStopped) {
		status = http.StatusServiceUnavailable
	}
	s.log.Error("Engine command failed", zap.String("op", op), zap.Error(err))
	c.JSON(status, gin.H{"error": "Failed to " + op})
}

func detail(index int, it *graph.Item) ItemDetail {
	takeaways := it.Takeaways
	if takeaways == nil {
		takeaways = []string{}
	}
	return ItemDetail{
		Index:         index,
		Key:           it.Key,
		Guest:         it.Guest,
		Categories:    it.Categories.Sorted(),
		Functions:     it.Functions.Sorted(),
		Audiences:     it.Audiences.Sorted(),
		Takeaways:     takeaways,
		Notes:         it.Notes,
		TranscriptRef: it.TranscriptRef,
	}
}
