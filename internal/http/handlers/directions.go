package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/membership-registry/internal/domain/aggregates"
	types "github.com/yungbote/membership-registry/internal/domain/registry"
	"github.com/yungbote/membership-registry/internal/http/response"
)

type DirectionHandler struct {
	directions domainagg.DirectionAggregate
	mandates   domainagg.MandateAggregate
}

func NewDirectionHandler(directions domainagg.DirectionAggregate, mandates domainagg.MandateAggregate) *DirectionHandler {
	return &DirectionHandler{directions: directions, mandates: mandates}
}

type directionRequest struct {
	StructureID  int64   `json:"structure_id"`
	DocumentType any     `json:"document_type"`
	DocumentID   int64   `json:"document_id"`
	Name         *string `json:"name"`
}

func (r directionRequest) input() domainagg.DirectionInput {
	return domainagg.DirectionInput{
		StructureID:  r.StructureID,
		DocumentType: r.DocumentType,
		DocumentID:   r.DocumentID,
		Name:         r.Name,
	}
}

type refView struct {
	Ref      types.DocumentRef         `json:"ref"`
	Document *types.DocumentProjection `json:"document"`
}

type directionView struct {
	ID          int64     `json:"id"`
	StructureID int64     `json:"structure_id"`
	Name        *string   `json:"name,omitempty"`
	Target      refView   `json:"target"`
	Restored    bool      `json:"restored"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func viewDirection(r domainagg.DirectionResult) directionView {
	return directionView{
		ID:          r.ID,
		StructureID: r.StructureID,
		Name:        r.Name,
		Target:      refView{Ref: r.Target.Ref, Document: r.Target.Document},
		Restored:    r.Restored,
		UpdatedAt:   r.UpdatedAt,
	}
}

// GET /api/directions?structure_id=3
func (h *DirectionHandler) List(c *gin.Context) {
	var in domainagg.ListDirectionsInput
	if raw := strings.TrimSpace(c.Query("structure_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.RespondError(c, http.StatusBadRequest, "invalid_structure_id", fmt.Errorf("structure_id must be a positive integer, got %q", raw))
			return
		}
		in.StructureID = &id
	}
	rows, err := h.directions.List(c.Request.Context(), in)
	if err != nil {
		response.RespondErr(c, err, "list_directions_failed")
		return
	}
	out := make([]directionView, 0, len(rows))
	for _, r := range rows {
		out = append(out, viewDirection(r))
	}
	response.RespondOK(c, gin.H{"directions": out})
}

// POST /api/directions
// body: { "structure_id": 3, "document_type": 2, "document_id": 14, "name": "..." }
func (h *DirectionHandler) Create(c *gin.Context) {
	var req directionRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.directions.Create(c.Request.Context(), req.input())
	if err != nil {
		response.RespondErr(c, err, "create_direction_failed")
		return
	}
	response.RespondCreated(c, gin.H{"direction": viewDirection(res)})
}

// PUT /api/directions/:id
func (h *DirectionHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req directionRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.directions.Update(c.Request.Context(), id, req.input())
	if err != nil {
		response.RespondErr(c, err, "update_direction_failed")
		return
	}
	response.RespondOK(c, gin.H{"direction": viewDirection(res)})
}

// DELETE /api/directions/:id
func (h *DirectionHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	res, err := h.directions.Delete(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err, "delete_direction_failed")
		return
	}
	response.RespondOK(c, gin.H{"result": viewLifecycle(res)})
}

// PUT /api/directions/:id/restore
func (h *DirectionHandler) Restore(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	res, err := h.directions.Restore(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err, "restore_direction_failed")
		return
	}
	response.RespondOK(c, gin.H{"direction": viewDirection(res)})
}

type mandateRequest struct {
	PersonID   int64   `json:"person_id"`
	FunctionID int64   `json:"function_id"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
	Suspended  bool    `json:"suspended"`
}

// dates parses the mandate window. start_date is required.
func (r mandateRequest) dates(c *gin.Context) (time.Time, *time.Time, bool) {
	start, err := parseDate("start_date", r.StartDate)
	if err == nil && start == nil {
		err = fmt.Errorf("start_date is required")
	}
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_start_date", err)
		return time.Time{}, nil, false
	}
	end, err := parseDate("end_date", r.EndDate)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_end_date", err)
		return time.Time{}, nil, false
	}
	return *start, end, true
}

type mandateView struct {
	ID          int64     `json:"id"`
	DirectionID int64     `json:"direction_id"`
	PersonID    int64     `json:"person_id"`
	FunctionID  int64     `json:"function_id"`
	StartDate   string    `json:"start_date"`
	EndDate     *string   `json:"end_date,omitempty"`
	Suspended   bool      `json:"suspended"`
	Active      bool      `json:"active"`
	Restored    bool      `json:"restored"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func viewMandate(r domainagg.MandateResult) mandateView {
	return mandateView{
		ID:          r.ID,
		DirectionID: r.DirectionID,
		PersonID:    r.PersonID,
		FunctionID:  r.FunctionID,
		StartDate:   r.StartDate.Format(time.DateOnly),
		EndDate:     formatDate(r.EndDate),
		Suspended:   r.Suspended,
		Active:      r.Active,
		Restored:    r.Restored,
		UpdatedAt:   r.UpdatedAt,
	}
}

func mandateKey(c *gin.Context) (domainagg.MandateKey, bool) {
	directionID, ok := pathID(c, "id")
	if !ok {
		return domainagg.MandateKey{}, false
	}
	mandateID, ok := pathID(c, "mandate_id")
	if !ok {
		return domainagg.MandateKey{}, false
	}
	return domainagg.MandateKey{DirectionID: directionID, MandateID: mandateID}, true
}

// POST /api/directions/:id/mandates
// body: { "person_id": 9, "function_id": 2, "start_date": "2024-01-01", "end_date": null, "suspended": false }
func (h *DirectionHandler) CreateMandate(c *gin.Context) {
	directionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req mandateRequest
	if !bindJSON(c, &req) {
		return
	}
	start, end, ok := req.dates(c)
	if !ok {
		return
	}
	res, err := h.mandates.Create(c.Request.Context(), domainagg.CreateMandateInput{
		DirectionID: directionID,
		PersonID:    req.PersonID,
		FunctionID:  req.FunctionID,
		StartDate:   start,
		EndDate:     end,
		Suspended:   req.Suspended,
	})
	if err != nil {
		response.RespondErr(c, err, "create_mandate_failed")
		return
	}
	if res.Restored {
		response.RespondOK(c, gin.H{"mandate": viewMandate(res)})
		return
	}
	response.RespondCreated(c, gin.H{"mandate": viewMandate(res)})
}

// PUT /api/directions/:id/mandates/:mandate_id
func (h *DirectionHandler) UpdateMandate(c *gin.Context) {
	key, ok := mandateKey(c)
	if !ok {
		return
	}
	var req mandateRequest
	if !bindJSON(c, &req) {
		return
	}
	start, end, ok := req.dates(c)
	if !ok {
		return
	}
	res, err := h.mandates.Update(c.Request.Context(), domainagg.UpdateMandateInput{
		DirectionID: key.DirectionID,
		MandateID:   key.MandateID,
		StartDate:   start,
		EndDate:     end,
		Suspended:   req.Suspended,
	})
	if err != nil {
		response.RespondErr(c, err, "update_mandate_failed")
		return
	}
	response.RespondOK(c, gin.H{"mandate": viewMandate(res)})
}

// DELETE /api/directions/:id/mandates/:mandate_id
func (h *DirectionHandler) DeleteMandate(c *gin.Context) {
	key, ok := mandateKey(c)
	if !ok {
		return
	}
	res, err := h.mandates.Delete(c.Request.Context(), key)
	if err != nil {
		response.RespondErr(c, err, "delete_mandate_failed")
		return
	}
	response.RespondOK(c, gin.H{"result": viewLifecycle(res)})
}

// PUT /api/directions/:id/mandates/:mandate_id/restore
func (h *DirectionHandler) RestoreMandate(c *gin.Context) {
	key, ok := mandateKey(c)
	if !ok {
		return
	}
	res, err := h.mandates.Restore(c.Request.Context(), key)
	if err != nil {
		response.RespondErr(c, err, "restore_mandate_failed")
		return
	}
	response.RespondOK(c, gin.H{"mandate": viewMandate(res)})
}
