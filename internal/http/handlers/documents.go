package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/membership-registry/internal/domain/aggregates"
	"github.com/yungbote/membership-registry/internal/http/response"
)

type DocumentHandler struct {
	lifecycle domainagg.LifecycleAggregate
}

func NewDocumentHandler(lifecycle domainagg.LifecycleAggregate) *DocumentHandler {
	return &DocumentHandler{lifecycle: lifecycle}
}

type lifecycleView struct {
	Table    string    `json:"table"`
	ID       int64     `json:"id"`
	Changed  bool      `json:"changed"`
	Cascaded int       `json:"cascaded"`
	At       time.Time `json:"at"`
}

func viewLifecycle(r domainagg.LifecycleResult) lifecycleView {
	return lifecycleView{Table: r.Table, ID: r.ID, Changed: r.Changed, Cascaded: r.Cascaded, At: r.At}
}

// DELETE /api/documents/:type/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	res, err := h.lifecycle.Delete(c.Request.Context(), domainagg.DocumentKey{Type: c.Param("type"), ID: id})
	if err != nil {
		response.RespondErr(c, err, "delete_document_failed")
		return
	}
	response.RespondOK(c, gin.H{"result": viewLifecycle(res)})
}

// PUT /api/documents/:type/:id/restore
func (h *DocumentHandler) Restore(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	res, err := h.lifecycle.Restore(c.Request.Context(), domainagg.DocumentKey{Type: c.Param("type"), ID: id})
	if err != nil {
		response.RespondErr(c, err, "restore_document_failed")
		return
	}
	response.RespondOK(c, gin.H{"result": viewLifecycle(res)})
}
