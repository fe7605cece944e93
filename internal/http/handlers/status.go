package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/membership-registry/internal/domain/aggregates"
	"github.com/yungbote/membership-registry/internal/http/response"
)

type StatusHandler struct {
	status domainagg.StatusAggregate
}

func NewStatusHandler(status domainagg.StatusAggregate) *StatusHandler {
	return &StatusHandler{status: status}
}

type transitionStatusRequest struct {
	StatusID    int64          `json:"status_id" binding:"required"`
	RecenseurID *int64         `json:"recenseur_id"`
	Metadata    map[string]any `json:"metadata"`
}

type transitionView struct {
	PersonID          int64     `json:"person_id"`
	FromStatusID      int64     `json:"from_status_id"`
	ToStatusID        int64     `json:"to_status_id"`
	RecenseurID       *int64    `json:"recenseur_id,omitempty"`
	CodeMatriculation *string   `json:"code_matriculation,omitempty"`
	CodeIssued        bool      `json:"code_issued"`
	Changed           bool      `json:"changed"`
	TransitionedAt    time.Time `json:"transitioned_at"`
}

// PUT /api/persons/:id/status
// body: { "status_id": 29, "recenseur_id": 7, "metadata": {...} }
func (h *StatusHandler) Transition(c *gin.Context) {
	personID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req transitionStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.status.Transition(c.Request.Context(), domainagg.TransitionStatusInput{
		PersonID:       personID,
		TargetStatusID: req.StatusID,
		RecenseurID:    req.RecenseurID,
		Metadata:       req.Metadata,
	})
	if err != nil {
		response.RespondErr(c, err, "transition_status_failed")
		return
	}
	response.RespondOK(c, gin.H{"transition": transitionView{
		PersonID:          res.PersonID,
		FromStatusID:      res.FromStatusID,
		ToStatusID:        res.ToStatusID,
		RecenseurID:       res.RecenseurID,
		CodeMatriculation: res.CodeMatriculation,
		CodeIssued:        res.CodeIssued,
		Changed:           res.Changed,
		TransitionedAt:    res.TransitionedAt,
	}})
}
