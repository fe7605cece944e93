package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/membership-registry/internal/domain/aggregates"
	types "github.com/yungbote/membership-registry/internal/domain/registry"
	"github.com/yungbote/membership-registry/internal/http/response"
)

// MembershipHandler serves one membership kind. The router mounts one per aggregate.
type MembershipHandler struct {
	memberships domainagg.MembershipAggregate
}

func NewMembershipHandler(memberships domainagg.MembershipAggregate) *MembershipHandler {
	return &MembershipHandler{memberships: memberships}
}

type membershipRequest struct {
	TargetID int64   `json:"target_id"`
	JoinedOn *string `json:"joined_on"`
	LeftOn   *string `json:"left_on"`
}

type membershipView struct {
	ID        int64             `json:"id"`
	PersonID  int64             `json:"person_id"`
	Target    types.DocumentRef `json:"target"`
	JoinedOn  *string           `json:"joined_on,omitempty"`
	LeftOn    *string           `json:"left_on,omitempty"`
	Active    bool              `json:"active"`
	Restored  bool              `json:"restored"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func viewMembership(r domainagg.MembershipResult) membershipView {
	return membershipView{
		ID:        r.ID,
		PersonID:  r.PersonID,
		Target:    r.Target,
		JoinedOn:  formatDate(r.JoinedOn),
		LeftOn:    formatDate(r.LeftOn),
		Active:    r.Active,
		Restored:  r.Restored,
		UpdatedAt: r.UpdatedAt,
	}
}

func (h *MembershipHandler) input(c *gin.Context, personID, targetID int64, req membershipRequest) (domainagg.MembershipInput, bool) {
	in := domainagg.MembershipInput{PersonID: personID, TargetID: targetID}
	var err error
	if in.JoinedOn, err = parseDate("joined_on", req.JoinedOn); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_joined_on", err)
		return in, false
	}
	if in.LeftOn, err = parseDate("left_on", req.LeftOn); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_left_on", err)
		return in, false
	}
	return in, true
}

func (h *MembershipHandler) key(c *gin.Context) (domainagg.MembershipKey, bool) {
	personID, ok := pathID(c, "id")
	if !ok {
		return domainagg.MembershipKey{}, false
	}
	targetID, ok := pathID(c, "target_id")
	if !ok {
		return domainagg.MembershipKey{}, false
	}
	return domainagg.MembershipKey{PersonID: personID, TargetID: targetID}, true
}

// POST /api/persons/:id/parishes
// POST /api/persons/:id/structures
// body: { "target_id": 14, "joined_on": "2020-01-01", "left_on": null }
func (h *MembershipHandler) Add(c *gin.Context) {
	personID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req membershipRequest
	if !bindJSON(c, &req) {
		return
	}
	in, ok := h.input(c, personID, req.TargetID, req)
	if !ok {
		return
	}
	res, err := h.memberships.Add(c.Request.Context(), in)
	if err != nil {
		response.RespondErr(c, err, "add_membership_failed")
		return
	}
	if res.Restored {
		response.RespondOK(c, gin.H{"membership": viewMembership(res)})
		return
	}
	response.RespondCreated(c, gin.H{"membership": viewMembership(res)})
}

// PUT /api/persons/:id/{parishes|structures}/:target_id
func (h *MembershipHandler) Update(c *gin.Context) {
	key, ok := h.key(c)
	if !ok {
		return
	}
	var req membershipRequest
	if !bindJSON(c, &req) {
		return
	}
	in, ok := h.input(c, key.PersonID, key.TargetID, req)
	if !ok {
		return
	}
	res, err := h.memberships.Update(c.Request.Context(), in)
	if err != nil {
		response.RespondErr(c, err, "update_membership_failed")
		return
	}
	response.RespondOK(c, gin.H{"membership": viewMembership(res)})
}

// DELETE /api/persons/:id/{parishes|structures}/:target_id
func (h *MembershipHandler) Remove(c *gin.Context) {
	key, ok := h.key(c)
	if !ok {
		return
	}
	res, err := h.memberships.Remove(c.Request.Context(), key)
	if err != nil {
		response.RespondErr(c, err, "remove_membership_failed")
		return
	}
	response.RespondOK(c, gin.H{"result": viewLifecycle(res)})
}

// PUT /api/persons/:id/{parishes|structures}/:target_id/restore
func (h *MembershipHandler) Restore(c *gin.Context) {
	key, ok := h.key(c)
	if !ok {
		return
	}
	res, err := h.memberships.Restore(c.Request.Context(), key)
	if err != nil {
		response.RespondErr(c, err, "restore_membership_failed")
		return
	}
	response.RespondOK(c, gin.H{"membership": viewMembership(res)})
}
