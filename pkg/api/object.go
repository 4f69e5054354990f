package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/irctrakz/connstats/pkg/dm"
	"github.com/irctrakz/connstats/pkg/host"
)

type valueBody struct {
	Value *int64 `json:"value"`
}

type valueResponse struct {
	Resource dm.ResourceID `json:"rid"`
	Value    int64         `json:"value"`
	Type     dm.ValueType  `json:"type"`
}

type errorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// attachObject mounts the /7 routes.
func attachObject(app *gin.RouterGroup, h *host.Host) {

	app.GET("", func(c *gin.Context) {
		c.IndentedJSON(http.StatusOK, gin.H{
			"id":        dm.ObjectID,
			"instances": []uint16{dm.InstanceID},
			"resources": dm.SupportedResources(),
			"state":     h.State().String(),
		})
	})

	inst := app.Group("/0")

	inst.GET("/:rid", func(c *gin.Context) {
		rid, ok := resourceParam(c)
		if !ok {
			return
		}
		v, err := h.Read(rid)
		if err != nil {
			abort(c, err)
			return
		}
		c.JSON(http.StatusOK, valueResponse{Resource: rid, Value: v.Int, Type: v.Type})
	})

	inst.PUT("/:rid", func(c *gin.Context) {
		rid, ok := resourceParam(c)
		if !ok {
			return
		}
		var body valueBody
		if err := c.ShouldBindJSON(&body); err != nil || body.Value == nil {
			c.JSON(http.StatusBadRequest, errorResponse{Status: dm.StatusBadRequest.String(), Error: "body must be {\"value\": <integer>}"})
			return
		}
		if err := h.Write(rid, dm.Int64(*body.Value)); err != nil {
			abort(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	inst.POST("/:rid", func(c *gin.Context) {
		rid, ok := resourceParam(c)
		if !ok {
			return
		}
		if err := h.Execute(rid); err != nil {
			abort(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	inst.DELETE("", func(c *gin.Context) {
		if err := h.InstanceReset(); err != nil {
			abort(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}

func resourceParam(c *gin.Context) (dm.ResourceID, bool) {
	rid, err := dm.ParseResourceID(c.Param("rid"))
	if err != nil {
		abort(c, err)
		return 0, false
	}
	return rid, true
}

// HTTPStatus maps a data-model status onto an HTTP status code.
func HTTPStatus(s dm.Status) int {
	switch s {
	case dm.StatusOK:
		return http.StatusOK
	case dm.StatusNotFound:
		return http.StatusNotFound
	case dm.StatusMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case dm.StatusBadRequest, dm.StatusInvalidArgument:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func abort(c *gin.Context, err error) {
	s := dm.StatusOf(err)
	c.AbortWithStatusJSON(HTTPStatus(s), errorResponse{Status: s.String(), Error: err.Error()})
}
