package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/membership-registry/internal/data/references"
	types "github.com/yungbote/membership-registry/internal/domain/registry"
	"github.com/yungbote/membership-registry/internal/http/response"
	"github.com/yungbote/membership-registry/internal/platform/dbctx"
)

const maxBatchRefs = 500

type ReferenceHandler struct {
	resolver *references.Resolver
}

func NewReferenceHandler(resolver *references.Resolver) *ReferenceHandler {
	return &ReferenceHandler{resolver: resolver}
}

// GET /api/references/:type/:id
func (h *ReferenceHandler) Resolve(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	doc, err := h.resolver.ValidateReference(dbctx.Context{Ctx: c.Request.Context()}, c.Param("type"), id)
	if err != nil {
		response.RespondErr(c, err, "resolve_reference_failed")
		return
	}
	response.RespondOK(c, gin.H{"document": types.Project(doc)})
}

type resolveBatchRequest struct {
	Refs []types.DocumentRef `json:"refs"`
}

// POST /api/references/resolve
// body: { "refs": [{ "document_type": 2, "document_id": 14 }, ...] }
// Each ref answers with its projection, or null for a missing, deleted or unsupported document.
func (h *ReferenceHandler) ResolveBatch(c *gin.Context) {
	var req resolveBatchRequest
	if !bindJSON(c, &req) {
		return
	}
	if len(req.Refs) > maxBatchRefs {
		response.RespondError(c, http.StatusBadRequest, "too_many_refs", fmt.Errorf("at most %d refs per request", maxBatchRefs))
		return
	}
	resolved, err := h.resolver.ResolveReferencesBatch(dbctx.Context{Ctx: c.Request.Context()}, req.Refs)
	if err != nil {
		response.RespondErr(c, err, "resolve_references_failed")
		return
	}
	out := make([]*types.DocumentProjection, len(req.Refs))
	for i, ref := range req.Refs {
		if p, ok := resolved[ref]; ok {
			out[i] = &p
		}
	}
	response.RespondOK(c, gin.H{"documents": out})
}
