package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"menukeeper/internal/catalog"
	"menukeeper/internal/query"
)

// Handler adapts a catalog.Manager to HTTP.
type Handler struct {
	mgr    *catalog.Manager
	logger *zap.Logger
}

// NewHandler constructs the HTTP handler adapter.
func NewHandler(mgr *catalog.Manager, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{mgr: mgr, logger: logger}
}

// field accepts a JSON string or a bare JSON number, so clients may send
// "price": 3.5 or "price": "3.5". The catalog still validates the text.
type field string

func (f *field) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = field(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = field(n)
	return nil
}

type draftRequest struct {
	Name     field `json:"name"`
	Price    field `json:"price"`
	Quantity field `json:"quantity"`
	Type     field `json:"type"`
	Image    field `json:"image"`
}

func (r draftRequest) draft() catalog.Draft {
	return catalog.Draft{
		Name:     string(r.Name),
		Price:    string(r.Price),
		Quantity: string(r.Quantity),
		Type:     string(r.Type),
		Image:    string(r.Image),
	}
}

// List returns the collection, narrowed by ?q= (name substring) and
// ?where= (query expression) when given.
func (h *Handler) List(c *gin.Context) {
	keep := func(catalog.Item) bool { return true }
	var evalErr error
	if src := c.Query("where"); src != "" {
		pred, err := query.Compile(src)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		keep = pred.Keep(&evalErr)
	}

	items := []catalog.Item{}
	for it := range h.mgr.Filter(c.Query("q")) {
		if keep(it) {
			items = append(items, it)
		}
	}
	if evalErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": evalErr.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "dirty": h.mgr.Dirty()})
}

// Show returns one item by ID or unique ID prefix.
func (h *Handler) Show(c *gin.Context) {
	it, err := h.mgr.Resolve(c.Param("id"))
	if err != nil {
		h.writeError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, it)
}

// Add creates an item from the request body.
func (h *Handler) Add(c *gin.Context) {
	var req draftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid item payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	items, err := h.mgr.Add(c.Request.Context(), req.draft())
	if err != nil && !errors.Is(err, catalog.ErrPersistence) {
		h.writeError(c, err, nil)
		return
	}
	created := items[len(items)-1]
	if err != nil {
		h.writeError(c, err, gin.H{"item": created, "items": items})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": created, "items": items, "persisted": true})
}

// Update replaces the item with the given ID or unique prefix.
func (h *Handler) Update(c *gin.Context) {
	var req draftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid item payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, err := h.resolveID(c.Param("id"))
	if err != nil {
		h.writeError(c, err, nil)
		return
	}
	items, err := h.mgr.Update(c.Request.Context(), id, req.draft())
	if err != nil {
		if errors.Is(err, catalog.ErrPersistence) {
			h.writeError(c, err, gin.H{"items": items})
			return
		}
		h.writeError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "persisted": true})
}

// Delete removes the item with the given ID or unique prefix. Deleting a
// missing ID succeeds.
func (h *Handler) Delete(c *gin.Context) {
	id, err := h.resolveID(c.Param("id"))
	if err != nil {
		h.writeError(c, err, nil)
		return
	}
	items, err := h.mgr.Delete(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, gin.H{"items": items})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "persisted": true})
}

// Save re-persists the in-memory collection.
func (h *Handler) Save(c *gin.Context) {
	if err := h.mgr.Save(c.Request.Context()); err != nil {
		h.writeError(c, err, gin.H{"items": h.mgr.Items()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"persisted": true})
}

// resolveID expands a unique ID prefix the way GET /items/:id does. An
// unknown ID is passed through so the manager reports it.
func (h *Handler) resolveID(idOrPrefix string) (string, error) {
	it, err := h.mgr.Resolve(idOrPrefix)
	switch {
	case err == nil:
		return it.ID, nil
	case errors.Is(err, catalog.ErrNotFound):
		return idOrPrefix, nil
	default:
		return "", err
	}
}

// writeError maps catalog errors onto status codes. extra is merged into
// the response body.
func (h *Handler) writeError(c *gin.Context, err error, extra gin.H) {
	body := gin.H{"error": err.Error()}
	for k, v := range extra {
		body[k] = v
	}

	var verr *catalog.ValidationError
	switch {
	case errors.As(err, &verr):
		body["field"] = verr.Field
		c.JSON(http.StatusUnprocessableEntity, body)
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, body)
	case errors.Is(err, catalog.ErrPersistence):
		h.logger.Error("catalog write failed", zap.Error(err))
		body["persisted"] = false
		c.JSON(http.StatusInternalServerError, body)
	default:
		h.logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, body)
	}
}
