package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rezonia/nfe-mapper/internal/accesskey"
	"github.com/rezonia/nfe-mapper/internal/model"
	xmlparser "github.com/rezonia/nfe-mapper/internal/parser/xml"
	"github.com/rezonia/nfe-mapper/internal/processor"
	"github.com/rezonia/nfe-mapper/internal/scalar"
	"github.com/rezonia/nfe-mapper/internal/signature"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

// Config holds server configuration
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxBodyBytes int64
	Indent       int
	Debug        bool
	Logger       zerolog.Logger
}

// Server represents the HTTP API server
type Server struct {
	config   *Config
	router   *gin.Engine
	http     *http.Server
	pipeline *processor.Pipeline
	log      zerolog.Logger
}

// NewServer creates a new API server
func NewServer(config *Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(config.Logger))

	s := &Server{
		config: config,
		router: router,
		pipeline: processor.NewPipeline(
			processor.WithLogger(config.Logger),
			processor.WithIndent(config.Indent),
		),
		log: config.Logger,
	}

	s.http = &http.Server{
		Addr:         config.Address,
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/decode", s.handleDecode)
		v1.POST("/encode", s.handleEncode)
		v1.POST("/check", s.handleCheck)
		v1.POST("/info", s.handleInfo)
	}
}

// Run starts the HTTP server and blocks until it stops
func (s *Server) Run() error {
	s.log.Info().Str("addr", s.config.Address).Msg("listening")
	return s.http.ListenAndServe()
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

// requestLogger tags each request with an id and logs its outcome
func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)

		start := time.Now()
		c.Next()

		log.Info().
			Str("request_id", id).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// readBody returns the request body or writes a 400/413 response
func (s *Server) readBody(c *gin.Context) ([]byte, bool) {
	if s.config.MaxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.config.MaxBodyBytes)
	}
	body, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "request body too large"})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return nil, false
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return nil, false
	}
	return body, true
}

func (s *Server) handleDecode(c *gin.Context) {
	body, ok := s.readBody(c)
	if !ok {
		return
	}

	result := s.pipeline.ProcessXMLBytes(c.Request.Context(), body)
	if result.Error != nil {
		c.JSON(http.StatusUnprocessableEntity, errorResponse(result.Error))
		return
	}
	if c.Query("profile") == "55" {
		if err := xmlparser.RequireModel55(result.Document); err != nil {
			c.JSON(http.StatusUnprocessableEntity, errorResponse(err))
			return
		}
	}

	c.JSON(http.StatusOK, DecodeResponse{
		Document: result.Document,
		Warnings: result.Warnings,
	})
}

func (s *Server) handleEncode(c *gin.Context) {
	var doc model.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid document JSON", Details: err.Error()})
		return
	}

	out, err := s.pipeline.Encode(&doc)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, errorResponse(err))
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", out)
}

func (s *Server) handleCheck(c *gin.Context) {
	body, ok := s.readBody(c)
	if !ok {
		return
	}

	res := s.pipeline.Check(c.Request.Context(), body)
	resp := CheckResponse{
		Valid:     res.Error == nil,
		Canonical: res.Canonical,
		Stable:    res.Stable,
		Warnings:  res.Warnings,
	}
	if res.Error != nil {
		e := errorResponse(res.Error)
		resp.Error = &e
		c.JSON(http.StatusUnprocessableEntity, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleInfo(c *gin.Context) {
	body, ok := s.readBody(c)
	if !ok {
		return
	}

	result := s.pipeline.ProcessXMLBytes(c.Request.Context(), body)
	if result.Error != nil {
		c.JSON(http.StatusUnprocessableEntity, errorResponse(result.Error))
		return
	}

	doc := result.Document
	key, _ := accesskey.Parse(doc.ChaveAcesso) // 44 digits, checked on decode
	warnings := result.Warnings
	report, err := signature.Inspect(body)
	if err == nil {
		warnings = append(warnings, report.Warnings(doc.ChaveAcesso)...)
	}
	c.JSON(http.StatusOK, InfoResponse{
		Versao:       string(doc.Versao),
		Chave:        doc.ChaveAcesso,
		ChaveDetalhe: key,
		DigitoValido: accesskey.Validate(doc.ChaveAcesso) == nil,
		Modelo:       string(doc.Identificacao.Modelo),
		Ambiente:     string(doc.Identificacao.Ambiente),
		Emitente:     doc.Emitente.RazaoSocial,
		Itens:        len(doc.Itens),
		ValorNota:    scalar.EncodeDecimal(doc.Total.ValorNota),
		Size:         len(body),
		Assinatura:   report,
		Warnings:     warnings,
	})
}

func errorResponse(err error) ErrorResponse {
	resp := ErrorResponse{Error: err.Error()}
	var de *model.DecodeError
	if errors.As(err, &de) {
		resp.Kind = string(de.Kind)
		resp.Section = de.Section
		resp.Field = de.Field
	}
	return resp
}
