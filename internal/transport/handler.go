package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-ocr-compare/internal/compare"
	"go-ocr-compare/internal/config"
	apperrors "go-ocr-compare/internal/errors"
	"go-ocr-compare/internal/logger"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// NewHandler builds the HTTP surface over the comparison service.
func NewHandler(svc compare.Service, cfg *config.Config) http.Handler {
	r := gin.Default()

	r.Use(
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	r.GET("/health", healthCheck)
	r.GET("/runs", listRuns(svc))
	r.POST("/compare", compareImage(svc, cfg))

	return r
}

func compareImage(svc compare.Service, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"user_agent": c.Request.UserAgent(),
			"ip":         c.ClientIP(),
		}).Info("Processing comparison request")

		var req compare.Request
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"ip": c.ClientIP(),
			}).Error("Invalid request format")
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		// Binarize can also come from a query parameter, which takes
		// precedence over the JSON body.
		if binarizeQuery := c.Query("binarize"); binarizeQuery != "" {
			req.Binarize = binarizeQuery == "true"
		}

		report, err := svc.Compare(ctx, req)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				err = apperrors.NewTimeoutError("comparison timed out", err)
			}
			logger.WithError(err).WithFields(logrus.Fields{
				"locator": req.Locator,
				"ip":      c.ClientIP(),
			}).Error("Comparison failed")
			respondError(c, apperrors.GetStatusCode(err), "comparison failed", err)
			return
		}

		logger.WithFields(logrus.Fields{
			"locator":            req.Locator,
			"runs":               len(report.Runs),
			"processing_time_ms": time.Since(startTime).Milliseconds(),
		}).Info("Comparison request completed successfully")

		c.JSON(http.StatusOK, report)
	}
}

func listRuns(svc compare.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"runs": svc.Runs()})
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

func determineStatusCode(err error) int {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
