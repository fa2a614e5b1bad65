/* Copyright (c) 2021 David Bulkow */

// Package httpapi serves a session over HTTP for a browser on the same host.
package httpapi

import (
	"errors"
	"mime"
	"net/http"
	"time"

	. "github.com/dbulkow/roomreserve/api"
	"github.com/dbulkow/roomreserve/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const maxRead = 128 * 1024

type Server struct {
	session  *session.Session
	log      *zap.Logger
	now      func() time.Time
	feed     *feed
	upgrader websocket.Upgrader
	cancel   func()
}

func New(sess *session.Session, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		session: sess,
		log:     log,
		now:     time.Now,
		feed:    newFeed(),
	}

	s.cancel = sess.Store().Subscribe(s.feed.publish)

	return s
}

// Close detaches the server from the store's change notifications.
func (s *Server) Close() {
	s.cancel()
}

func (s *Server) Routes() http.Handler {
	engine := gin.New()
	engine.Use(logger(s.log), gin.Recovery())

	engine.GET("/healthz", s.handleHealthz)
	engine.GET("/api/rooms", s.handleRooms)
	engine.GET("/api/slots", s.handleSlots)
	engine.GET("/api/reservations", s.handleList)
	engine.POST("/api/reservations", s.handleCreate)
	engine.DELETE("/api/reservations/:id", s.handleCancel)
	engine.GET("/api/reservations/export", s.handleExport)
	engine.GET("/api/reservations/stream", s.handleStream)

	return engine
}

func reply(c *gin.Context, code int, res session.Result) {
	body := gin.H{"kind": res.Kind, "message": res.Message}

	if res.OK() {
		body["status"] = "Success"
		body["reservation"] = res.Reservation
	} else {
		body["status"] = "Error"
		if res.Err != nil {
			body["error"] = res.Err.Error()
		}
	}

	c.JSON(code, body)
}

func status(kind session.Kind) int {
	switch kind {
	case session.KindOK:
		return http.StatusOK
	case session.KindValidation, session.KindOrdering, session.KindUnknownRoom:
		return http.StatusBadRequest
	case session.KindOverlap:
		return http.StatusConflict
	case session.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleRooms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "Success", "rooms": s.session.Rooms()})
}

func (s *Server) handleSlots(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "Success", "slots": session.TimeSlots()})
}

func (s *Server) handleList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "Success",
		"reservations": s.session.Store().List(),
	})
}

func (s *Server) handleCreate(c *gin.Context) {
	if c.ContentType() != "application/json" {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"status": "Error", "error": "request not JSON"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRead)

	var in session.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "Error", "error": "malformed request"})
		return
	}

	res := s.session.HandleCreateRequest(in)
	if res.OK() {
		c.Header("Location", "/api/reservations/"+res.Reservation.ID.String())
		reply(c, http.StatusCreated, res)
		return
	}

	reply(c, status(res.Kind), res)
}

func (s *Server) handleCancel(c *gin.Context) {
	res := s.session.HandleCancelRequest(c.Param("id"))
	reply(c, status(res.Kind), res)
}

func (s *Server) handleExport(c *gin.Context) {
	exp, err := s.session.Export(s.now())
	if errors.Is(err, session.ErrNothingToExport) {
		c.JSON(http.StatusConflict, gin.H{
			"status":  "Error",
			"message": s.session.Messages().NothingToExport,
			"error":   err.Error(),
		})
		return
	}
	if err != nil {
		s.log.Error("export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "Error", "error": err.Error()})
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": exp.Filename}))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", exp.Body)
}

// handleStream pushes the sorted collection on connect and after every
// change until the client goes away.
func (s *Server) handleStream(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ch := s.feed.join()
	defer s.feed.leave(ch)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func(list []Reservation) error {
		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		return conn.WriteJSON(gin.H{"status": "Success", "reservations": list})
	}

	if err := send(s.session.Store().List()); err != nil {
		return
	}

	for {
		select {
		case list := <-ch:
			if err := send(list); err != nil {
				s.log.Debug("stream closed", zap.Error(err))
				return
			}
		case <-done:
			return
		}
	}
}
