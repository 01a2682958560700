package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/danmuck/plcstub/internal/accessor"
	"github.com/danmuck/plcstub/internal/auth"
	"github.com/danmuck/plcstub/internal/logging"
	"github.com/danmuck/plcstub/internal/plctag"
	"github.com/danmuck/plcstub/internal/protocol/tlv"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const version = "0.1.0"

type createRequest struct {
	Attrs string `json:"attrs"`
}

type valueRequest struct {
	Value string `json:"value"`
}

type levelRequest struct {
	Level *int `json:"level"`
}

func (s *Server) RegisterRoutes() {
	r := s.router
	if s.Validator != nil {
		r.Use(auth.RequireForWrites(s.Validator))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.Name,
			"version": version,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ready":   true,
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.Name,
			"tags":    s.Stub.Registry().Len(),
		})
	})

	r.GET("/debug/level", func(c *gin.Context) {
		lvl := s.Stub.GetDebugLevel()
		c.JSON(http.StatusOK, gin.H{"level": int(lvl), "name": lvl.String()})
	})

	r.PUT("/debug/level", func(c *gin.Context) {
		var req levelRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Level == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "level is required"})
			return
		}
		lvl := s.Stub.SetDebugLevel(logging.DebugLevel(*req.Level))
		c.JSON(http.StatusOK, gin.H{"level": int(lvl), "name": lvl.String()})
	})

	r.GET("/tags", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tags": s.Stub.Tags()})
	})

	r.POST("/tags", func(c *gin.Context) {
		var req createRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, plctag.ErrBadParam)
			return
		}
		id, err := s.Stub.Create(req.Attrs)
		if err != nil {
			respondError(c, err)
			return
		}
		info, err := s.Stub.Describe(id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, info)
	})

	tags := r.Group("/tags/:id")

	tags.GET("", withTag(func(c *gin.Context, id int32) {
		info, err := s.Stub.Describe(id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, info)
	}))

	tags.GET("/status", withTag(func(c *gin.Context, id int32) {
		st := s.Stub.Status(id)
		code := http.StatusOK
		if st != plctag.StatusOK {
			code = http.StatusNotFound
		}
		c.JSON(code, gin.H{"status": st.String(), "code": int(st)})
	}))

	tags.POST("/read", withTag(func(c *gin.Context, id int32) {
		timeout, err := strconv.Atoi(c.DefaultQuery("timeout", "0"))
		if err != nil {
			respondError(c, plctag.ErrBadParam)
			return
		}
		if err := s.Stub.Read(id, timeout); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": plctag.StatusOK.String(), "code": int(plctag.StatusOK)})
	}))

	tags.GET("/values/:kind/:offset", withTag(func(c *gin.Context, id int32) {
		kind, offset, ok := valueParams(c)
		if !ok {
			return
		}
		v, err := s.Stub.GetKind(id, kind, offset)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id, "kind": kind.String(), "offset": offset, "value": v})
	}))

	tags.PUT("/values/:kind/:offset", withTag(func(c *gin.Context, id int32) {
		kind, offset, ok := valueParams(c)
		if !ok {
			return
		}
		var req valueRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, plctag.ErrBadParam)
			return
		}
		if err := s.Stub.SetKind(id, kind, offset, req.Value); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": plctag.StatusOK.String(), "code": int(plctag.StatusOK)})
	}))

	tags.GET("/snapshot", withTag(func(c *gin.Context, id int32) {
		info, data, err := s.Stub.Snapshot(id)
		if err != nil {
			respondError(c, err)
			return
		}
		doc := tlv.EncodeSnapshot(tlv.Snapshot{
			ID:        info.ID,
			Name:      info.Name,
			ElemSize:  uint32(info.ElemSize),
			ElemCount: uint32(info.ElemCount),
			Data:      data,
		})
		c.Data(http.StatusOK, "application/octet-stream", doc)
	}))

	tags.POST("/watch", withTag(func(c *gin.Context, id int32) {
		w := s.watches.start(id)
		if err := s.Stub.RegisterCallback(id, w.callback); err != nil {
			s.watches.stop(id)
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"watching": true})
	}))

	tags.DELETE("/watch", withTag(func(c *gin.Context, id int32) {
		if err := s.Stub.UnregisterCallback(id); err != nil {
			respondError(c, err)
			return
		}
		s.watches.stop(id)
		c.JSON(http.StatusOK, gin.H{"watching": false})
	}))

	tags.GET("/events", withTag(func(c *gin.Context, id int32) {
		if s.Stub.Status(id) != plctag.StatusOK {
			respondError(c, plctag.ErrNotFound)
			return
		}
		w, ok := s.watches.get(id)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"watching": false, "events": []EventRecord{}})
			return
		}
		drain := c.Query("drain") == "true"
		c.JSON(http.StatusOK, gin.H{"watching": true, "events": w.list(drain)})
	}))
}

func withTag(fn func(c *gin.Context, id int32)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 32)
		if err != nil {
			respondError(c, plctag.ErrBadParam)
			return
		}
		fn(c, int32(id))
	}
}

func valueParams(c *gin.Context) (accessor.Kind, int, bool) {
	kind, err := accessor.ParseKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  err.Error(),
			"status": plctag.StatusBadParam.String(),
			"code":   int(plctag.StatusBadParam),
		})
		return accessor.KindInvalid, 0, false
	}
	offset, err := strconv.Atoi(c.Param("offset"))
	if err != nil {
		respondError(c, plctag.ErrBadParam)
		return accessor.KindInvalid, 0, false
	}
	return kind, offset, true
}

func respondError(c *gin.Context, err error) {
	st := plctag.StatusOf(err)
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, plctag.ErrBadParam):
		code = http.StatusBadRequest
	case errors.Is(err, plctag.ErrNotFound):
		code = http.StatusNotFound
	}
	c.JSON(code, gin.H{"error": err.Error(), "status": st.String(), "code": int(st)})
}
