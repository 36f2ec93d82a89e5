// Package server exposes the codec over HTTP. The core stays pure; this
// layer owns timeouts, logging and content negotiation.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/rezonia/eracun/internal/attachment"
	"github.com/rezonia/eracun/internal/builder"
	"github.com/rezonia/eracun/internal/logger"
	"github.com/rezonia/eracun/internal/parser"
	"github.com/rezonia/eracun/internal/signature"
	"github.com/rezonia/eracun/internal/validate"
)

// Config holds server configuration.
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server is the HTTP API server.
type Server struct {
	config   *Config
	router   *gin.Engine
	detector *signature.Detector
	log      zerolog.Logger
}

// NewServer creates a new API server.
func NewServer(config *Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		config:   config,
		router:   router,
		detector: signature.NewDetector(),
		log:      logger.WithComponent("server"),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/generate", s.handleGenerate)
		v1.POST("/parse", s.handleParse)
		v1.POST("/validate", s.handleValidate)
		v1.POST("/inspect", s.handleInspect)
	}
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	s.log.Info().Str("address", s.config.Address).Msg("starting HTTP server")
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleGenerate(c *gin.Context) {
	var params map[string]interface{}
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON object"})
		return
	}

	result := validate.Params(params)
	if !result.Valid() {
		c.JSON(http.StatusUnprocessableEntity, ValidationResponse{
			Valid:    false,
			Errors:   result.Errors,
			Warnings: result.Warnings,
		})
		return
	}

	xml, err := builder.Build(result.Invoice)
	if err != nil {
		s.log.Error().Err(err).Msg("document serialization failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to serialize document"})
		return
	}

	for _, w := range result.Warnings {
		c.Header("X-Validation-Warning", w)
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", xml)
}

func (s *Server) handleParse(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty request body"})
		return
	}

	inv, err := parser.Parse(body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ParseResponse{Invoice: inv})
}

func (s *Server) handleValidate(c *gin.Context) {
	var params map[string]interface{}
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON object"})
		return
	}

	result := validate.Params(params)
	status := http.StatusOK
	if !result.Valid() {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, ValidationResponse{
		Valid:    result.Valid(),
		Errors:   result.Errors,
		Warnings: result.Warnings,
	})
}

func (s *Server) handleInspect(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty request body"})
		return
	}

	info, err := s.detector.Detect(body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	files, err := attachment.Extract(body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	response := InspectResponse{
		SignaturePresent: info.Present,
		SignaturePath:    info.Path,
		HasCertificate:   info.HasCertificate,
		Attachments:      []AttachmentInfo{},
	}
	for _, f := range files {
		response.Attachments = append(response.Attachments, AttachmentInfo{
			ID:       f.ID,
			Filename: f.Filename,
			MimeType: f.MimeType,
			Size:     len(f.Data),
		})
	}

	c.JSON(http.StatusOK, response)
}
