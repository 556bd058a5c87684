package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ehdgus4173/CheckMate/api"
	"github.com/ehdgus4173/CheckMate/internal/extract"
	"github.com/ehdgus4173/CheckMate/internal/report"
	"github.com/ehdgus4173/CheckMate/internal/validation"
)

// Server owns the HTTP surface: multipart intake, validation, extraction,
// and the mapping from internal error kinds to transport status codes.
type Server struct {
	service   *report.Service
	extractor *extract.Registry
	log       *zap.Logger
}

func New(service *report.Service, extractor *extract.Registry, log *zap.Logger) *Server {
	return &Server{service: service, extractor: extractor, log: log}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	apiRoutes := router.Group("/api")
	{
		apiRoutes.POST("/report", s.handleReport)
		apiRoutes.POST("/analyze", s.handleAnalyze)
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}

// handleReport evaluates the uploaded pair and returns the plain-text
// report.
func (s *Server) handleReport(c *gin.Context) {
	summary, err := s.runFromRequest(c)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.String(http.StatusOK, report.RenderText(summary))
}

// handleAnalyze evaluates the uploaded pair and returns the JSON summary.
func (s *Server) handleAnalyze(c *gin.Context) {
	summary, err := s.runFromRequest(c)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) runFromRequest(c *gin.Context) (report.Summary, error) {
	requirementsText, err := s.textPart(c, "requirements")
	if err != nil {
		return report.Summary{}, err
	}
	submissionText, err := s.textPart(c, "submission")
	if err != nil {
		return report.Summary{}, err
	}
	return s.service.Run(c.Request.Context(), requirementsText, submissionText)
}

// textPart validates one uploaded file part and extracts its text.
func (s *Server) textPart(c *gin.Context, name string) (string, error) {
	file, err := c.FormFile(name)
	if err != nil {
		return "", fmt.Errorf("%w: missing %q file part", api.ErrInvalidInput, name)
	}

	if err := validation.ValidateFile(file); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	text, err := s.extractor.Extract(file.Filename, src)
	if err != nil {
		return "", err
	}

	if err := validation.ValidateText(text); err != nil {
		return "", err
	}

	return text, nil
}

// writeError maps internal failures to transport responses: client-caused
// problems keep their message with a 400, everything else is logged with
// full detail server-side and surfaces as a generic 500.
func (s *Server) writeError(c *gin.Context, err error) {
	if errors.Is(err, api.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	s.log.Error("request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}
