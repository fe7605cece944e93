package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/membership-registry/internal/domain/aggregates"
	"github.com/yungbote/membership-registry/internal/http/response"
)

type AttachmentHandler struct {
	attachments domainagg.AttachmentAggregate
}

func NewAttachmentHandler(attachments domainagg.AttachmentAggregate) *AttachmentHandler {
	return &AttachmentHandler{attachments: attachments}
}

type attachmentView struct {
	ID        int64     `json:"id"`
	Owner     refView   `json:"owner"`
	FileName  string    `json:"file_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func viewAttachment(r domainagg.AttachmentResult) attachmentView {
	return attachmentView{
		ID:        r.ID,
		Owner:     refView{Ref: r.Owner.Ref, Document: r.Owner.Document},
		FileName:  r.FileName,
		CreatedAt: r.CreatedAt,
	}
}

func ownerKey(c *gin.Context) (domainagg.DocumentKey, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return domainagg.DocumentKey{}, false
	}
	return domainagg.DocumentKey{Type: c.Param("type"), ID: id}, true
}

type addressRequest struct {
	NationID      int64   `json:"nation_id"`
	ProvinceState string  `json:"province_state"`
	City          string  `json:"city"`
	Commune       *string `json:"commune"`
	Avenue        string  `json:"avenue"`
	Number        string  `json:"number"`
	FullAddress   *string `json:"full_address"`
}

// POST /api/documents/:type/:id/addresses
func (h *AttachmentHandler) AttachAddress(c *gin.Context) {
	owner, ok := ownerKey(c)
	if !ok {
		return
	}
	var req addressRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.attachments.AttachAddress(c.Request.Context(), domainagg.AttachAddressInput{
		Owner:         owner,
		NationID:      req.NationID,
		ProvinceState: req.ProvinceState,
		City:          req.City,
		Commune:       req.Commune,
		Avenue:        req.Avenue,
		Number:        req.Number,
		FullAddress:   req.FullAddress,
	})
	if err != nil {
		response.RespondErr(c, err, "attach_address_failed")
		return
	}
	response.RespondCreated(c, gin.H{"address": viewAttachment(res)})
}

type contactRequest struct {
	Tel1     *string `json:"tel1"`
	Tel2     *string `json:"tel2"`
	WhatsApp *string `json:"whatsapp"`
	Email    *string `json:"email"`
}

// POST /api/documents/:type/:id/contacts
func (h *AttachmentHandler) AttachContact(c *gin.Context) {
	owner, ok := ownerKey(c)
	if !ok {
		return
	}
	var req contactRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.attachments.AttachContact(c.Request.Context(), domainagg.AttachContactInput{
		Owner:    owner,
		Tel1:     req.Tel1,
		Tel2:     req.Tel2,
		WhatsApp: req.WhatsApp,
		Email:    req.Email,
	})
	if err != nil {
		response.RespondErr(c, err, "attach_contact_failed")
		return
	}
	response.RespondCreated(c, gin.H{"contact": viewAttachment(res)})
}

type fileRequest struct {
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size"`
}

// POST /api/documents/:type/:id/files
// Registers file metadata; the bytes live in external storage.
func (h *AttachmentHandler) RegisterFile(c *gin.Context) {
	owner, ok := ownerKey(c)
	if !ok {
		return
	}
	var req fileRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.attachments.RegisterFile(c.Request.Context(), domainagg.RegisterFileInput{
		Owner:        owner,
		OriginalName: req.OriginalName,
		MimeType:     req.MimeType,
		Size:         req.Size,
	})
	if err != nil {
		response.RespondErr(c, err, "register_file_failed")
		return
	}
	response.RespondCreated(c, gin.H{"file": viewAttachment(res)})
}

// DELETE /api/addresses/:id
func (h *AttachmentHandler) RemoveAddress(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := h.attachments.RemoveAddress(c.Request.Context(), id); err != nil {
		response.RespondErr(c, err, "remove_address_failed")
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// DELETE /api/contacts/:id
func (h *AttachmentHandler) RemoveContact(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := h.attachments.RemoveContact(c.Request.Context(), id); err != nil {
		response.RespondErr(c, err, "remove_contact_failed")
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
