package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/stage"
	"taskboard/internal/task"
	"taskboard/internal/taskstore"
)

const maxBodySize = 1 << 20 // 1MB

type boardResponse struct {
	Pending      []task.Task `json:"pending"`
	InProgress   []task.Task `json:"in_progress"`
	Completed    []task.Task `json:"completed"`
	Unclassified []task.Task `json:"unclassified,omitempty"`
}

type createRequest struct {
	Title       string `json:"task"`
	Description string `json:"desc"`
	Priority    string `json:"priority"`
	Stage       string `json:"stage"`
}

type dropRequest struct {
	Payload string `json:"payload"`
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   msg,
	})
}

// ok writes a success body. A persistence failure is reported as a warning
// alongside the result; the request itself still succeeded.
func ok(c *gin.Context, body gin.H, err error) {
	if body == nil {
		body = gin.H{}
	}
	body["success"] = true
	if err != nil {
		body["warning"] = err.Error()
	}
	c.JSON(http.StatusOK, body)
}

func limitBody(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)
}

func (s *Server) handleBoard(c *gin.Context) {
	v := s.engine.Views()
	c.JSON(http.StatusOK, boardResponse{
		Pending:      v.Pending,
		InProgress:   v.InProgress,
		Completed:    v.Completed,
		Unclassified: v.Unclassified,
	})
}

func (s *Server) handleGet(c *gin.Context) {
	t, found := s.engine.Store().Get(task.ID(c.Param("id")))
	if !found {
		fail(c, http.StatusNotFound, "task not found")
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) handleCreate(c *gin.Context) {
	limitBody(c)
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	st := task.Pending
	if req.Stage != "" {
		parsed, err := task.ParseStage(req.Stage)
		if err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		st = parsed
	}

	t := task.Task{
		ID:          task.NewID(),
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Stage:       st,
	}
	err := s.engine.Store().Add(c.Request.Context(), t)
	if err != nil && !taskstore.IsPersistError(err) {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	ok(c, gin.H{"task": t}, err)
}

func (s *Server) handleUpdate(c *gin.Context) {
	limitBody(c)
	id := task.ID(c.Param("id"))

	var edited task.Task
	if err := c.ShouldBindJSON(&edited); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if edited.ID == "" {
		edited.ID = id
	}

	sess, err := s.engine.EditClick(id)
	if errors.Is(err, stage.ErrTaskNotFound) {
		ok(c, gin.H{"updated": false}, nil)
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	defer sess.Close()

	switch {
	case edited.Stage == "":
		edited.Stage = sess.Task().Stage
	case !edited.Stage.Known() && edited.Stage != sess.Task().Stage:
		parsed, err := task.ParseStage(string(edited.Stage))
		if err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		edited.Stage = parsed
	}

	updated, err := sess.Save(c.Request.Context(), edited)
	if err != nil && !taskstore.IsPersistError(err) {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	ok(c, gin.H{"updated": updated}, err)
}

func (s *Server) handleDelete(c *gin.Context) {
	removed, err := s.engine.DeleteClick(c.Request.Context(), task.ID(c.Param("id")))
	ok(c, gin.H{"removed": removed}, err)
}

func (s *Server) handleDrag(c *gin.Context) {
	p, err := s.engine.DragStart(task.ID(c.Param("id")))
	if errors.Is(err, stage.ErrTaskNotFound) {
		fail(c, http.StatusNotFound, "task not found")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	ok(c, gin.H{"payload": string(p)}, nil)
}

func (s *Server) handleDrop(c *gin.Context) {
	limitBody(c)
	target, err := task.ParseStage(c.Param("stage"))
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var req dropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	outcome, err := s.engine.Drop(c.Request.Context(), stage.Payload(req.Payload), target)
	if errors.Is(err, stage.ErrMalformedPayload) || errors.Is(err, stage.ErrUnknownStage) {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	ok(c, gin.H{"outcome": outcome.String()}, err)
}
