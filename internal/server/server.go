// Package server exposes the processed report collection, the knowledge
// model and the question-answering index over a JSON HTTP API.
package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/graph"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/model"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/rag"
)

type Server struct {
	Reports []model.Report
	Graph   *graph.Graph
	Index   *rag.Index
	Trends  model.Trends

	GasThreshold   float64
	DepthTolerance float64
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/reports", s.GetReports)
	r.GET("/wellbores", s.GetWellbores)
	r.GET("/trends", s.GetTrends)
	r.GET("/graph/statistics", s.GetGraphStatistics)
	r.GET("/graph/gas-peaks", s.GetGasPeaks)
	r.GET("/graph/lithology", s.GetLithology)
	r.GET("/graph/activities", s.GetActivities)
	r.GET("/graph/core-samples", s.GetCoreSamples)
	r.POST("/search", s.Search)
	r.POST("/ask", s.Ask)

	return r
}

// An empty collection means "no data yet", never an error.
func (s *Server) GetReports(c *gin.Context) {
	reports := s.Reports
	if reports == nil {
		reports = []model.Report{}
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

func (s *Server) GetWellbores(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"wellbores": s.Index.Wellbores()})
}

func (s *Server) GetTrends(c *gin.Context) {
	c.JSON(http.StatusOK, s.Trends)
}

func (s *Server) GetGraphStatistics(c *gin.Context) {
	c.JSON(http.StatusOK, s.Graph.Statistics())
}

func (s *Server) GetGasPeaks(c *gin.Context) {
	threshold := s.GasThreshold
	if v := c.Query("threshold"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid threshold"})
			return
		}
		threshold = f
	}
	peaks := s.Graph.QueryGasPeaks(threshold)
	if peaks == nil {
		peaks = []graph.GasPeak{}
	}
	c.JSON(http.StatusOK, gin.H{"gas_peaks": peaks})
}

func (s *Server) GetLithology(c *gin.Context) {
	wellbore := c.Query("wellbore")
	depth, err := strconv.ParseFloat(c.Query("depth"), 64)
	if wellbore == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wellbore and depth are required"})
		return
	}
	results := s.Graph.QueryLithologyAtDepth(wellbore, depth)
	if results == nil {
		results = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"lithology": results})
}

func (s *Server) GetActivities(c *gin.Context) {
	wellbore := c.Query("wellbore")
	depth, err := strconv.ParseFloat(c.Query("depth"), 64)
	if wellbore == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wellbore and depth are required"})
		return
	}
	tolerance := s.DepthTolerance
	if v := c.Query("tolerance"); v != "" {
		if f, perr := strconv.ParseFloat(v, 64); perr == nil {
			tolerance = f
		}
	}
	results := s.Graph.QueryActivitiesAtDepth(wellbore, depth, tolerance)
	if results == nil {
		results = []graph.ActivityHit{}
	}
	c.JSON(http.StatusOK, gin.H{"activities": results})
}

func (s *Server) GetCoreSamples(c *gin.Context) {
	results := s.Graph.QueryCoreSamples()
	if results == nil {
		results = []graph.CoreSample{}
	}
	c.JSON(http.StatusOK, gin.H{"core_samples": results})
}

type SearchRequest struct {
	Query string `json:"query"`
	N     int    `json:"n"`
}

func (s *Server) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}
	if req.N <= 0 {
		req.N = 5
	}
	results, err := s.Index.Search(c.Request.Context(), req.Query, req.N)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

type AskRequest struct {
	Question string `json:"question"`
	NContext int    `json:"n_context"`
}

func (s *Server) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Question == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}
	if req.NContext <= 0 {
		req.NContext = 3
	}
	answer, err := s.Index.AnswerQuestion(c.Request.Context(), req.Question, req.NContext)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to answer question"})
		return
	}
	c.JSON(http.StatusOK, answer)
}
