package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"names_demo/internal/domain"
	"names_demo/internal/http/dto"
	"names_demo/internal/http/resp"
	"names_demo/internal/model"
	"names_demo/internal/service/names"
)

type Handler struct {
	svc *names.Service
	log *zap.Logger
}

func NewHandler(svc *names.Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, log: logger}
}

// ListNames takes no input. The store lock is released before the body is
// encoded and written.
func (h *Handler) ListNames(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrStoreBusy) {
			c.Header("Retry-After", "1")
			c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Code: resp.CodeServiceBusy, Message: "service busy"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "internal error"})
		return
	}
	if records == nil {
		records = []model.Record{}
	}

	payload, err := json.Marshal(records)
	if err != nil {
		h.log.Error("names payload marshal failed", zap.Int("records", len(records)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "internal error"})
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}
