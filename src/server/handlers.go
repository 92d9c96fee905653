package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Protocol-Lattice/lattice-tutor/src/gateway"
	"github.com/Protocol-Lattice/lattice-tutor/src/tutor"
)

type modeRequest struct {
	Topic    string `json:"topic"`
	Language string `json:"language"`
	Input    string `json:"input"`
}

type quizResponse struct {
	Topic     tutor.Topic      `json:"topic"`
	Language  string           `json:"language"`
	Questions []tutor.QuizItem `json:"questions"`
}

type gradeRequest struct {
	Quiz    []tutor.QuizItem `json:"quiz"`
	Answers map[int]string   `json:"answers"`
}

type gradeResponse struct {
	Score   int    `json:"score"`
	Total   int    `json:"total"`
	Correct []bool `json:"correct"`
}

func (s *Server) health(c *gin.Context) {
	success(c, gin.H{"status": "ok"})
}

func (s *Server) topics(c *gin.Context) {
	success(c, tutor.Topics())
}

func (s *Server) languages(c *gin.Context) {
	success(c, tutor.Languages())
}

// bind decodes the body, allowing it to be empty, and resolves the topic and
// language against the catalog.
func (s *Server) bind(c *gin.Context) (modeRequest, tutor.Topic, string, bool) {
	var req modeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err.Error())
		return req, tutor.Topic{}, "", false
	}

	topic := s.topic
	if req.Topic != "" {
		t, ok := tutor.LookupTopic(req.Topic)
		if !ok {
			badRequest(c, fmt.Sprintf("unknown topic %q", req.Topic))
			return req, tutor.Topic{}, "", false
		}
		topic = t
	}

	language := s.language
	if req.Language != "" {
		l, ok := tutor.LookupLanguage(req.Language)
		if !ok {
			badRequest(c, fmt.Sprintf("unsupported language %q", req.Language))
			return req, tutor.Topic{}, "", false
		}
		language = l
	}
	return req, topic, language, true
}

// stream answers with server-sent events: one "message" per fragment, an
// "error" carrying the user-facing failure text, and a final "end".
func (s *Server) stream(mode tutor.Mode) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, topic, language, ok := s.bind(c)
		if !ok {
			return
		}
		if mode.TakesInput() && strings.TrimSpace(req.Input) == "" {
			badRequest(c, "input is required")
			return
		}

		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")

		session, err := tutor.Once(c.Request.Context(), s.backend, topic, language, mode, req.Input, func(text string) {
			c.SSEvent("message", text)
			c.Writer.Flush()
		})
		if err != nil {
			s.log.Warn("stream request failed",
				zap.String("mode", mode.Slug()),
				zap.String("topic", topic.ID),
				zap.Error(err),
			)
			msg := session.Snapshot().Mode(mode).Err
			if msg == "" {
				msg = tutor.FailureMessage(mode)
			}
			c.SSEvent("error", msg)
			c.Writer.Flush()
		}

		c.SSEvent("end", "done")
		c.Writer.Flush()
	}
}

func (s *Server) quiz(c *gin.Context) {
	_, topic, language, ok := s.bind(c)
	if !ok {
		return
	}
	session, err := tutor.Once(c.Request.Context(), s.backend, topic, language, tutor.ModeQuiz, "", nil)
	if err != nil {
		s.log.Warn("quiz request failed", zap.String("topic", topic.ID), zap.Error(err))
		fail(c, http.StatusBadGateway, tutor.FailureMessage(tutor.ModeQuiz))
		return
	}
	success(c, quizResponse{
		Topic:     topic,
		Language:  language,
		Questions: session.Snapshot().Quiz,
	})
}

func (s *Server) grade(c *gin.Context) {
	var req gradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := gateway.ValidateQuiz(req.Quiz); err != nil {
		badRequest(c, err.Error())
		return
	}
	success(c, gradeResponse{
		Score:   tutor.Score(req.Answers, req.Quiz),
		Total:   len(req.Quiz),
		Correct: tutor.Grade(req.Answers, req.Quiz),
	})
}
