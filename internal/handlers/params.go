package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/yatube/backend/internal/pagination"
	"github.com/emilythestrangee/yatube/backend/internal/service"
)

// pathID parses a numeric path parameter. Anything else is an unknown
// resource, so the caller answers 404.
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
		return 0, false
	}
	return id, true
}

func (b *base) pageParams(c *gin.Context) pagination.Params {
	return pagination.FromQuery(c.Request.URL.Query(), b.paging.DefaultLimit, b.paging.MaxLimit)
}

// respondList writes a bare array, or the pagination envelope when the client paginated.
func respondList[M any, R any](c *gin.Context, p pagination.Params, list *service.List[M], render func(*M) R) {
	results := make([]R, 0, len(list.Items))
	for i := range list.Items {
		results = append(results, render(&list.Items[i]))
	}

	if !p.Enabled {
		c.JSON(http.StatusOK, results)
		return
	}
	c.JSON(http.StatusOK, pagination.NewEnvelope(c.Request, p, list.Count, results))
}

// optionalInt tells an absent JSON field apart from an explicit null.
type optionalInt struct {
	Set   bool
	Value *int
}

func (o *optionalInt) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}
