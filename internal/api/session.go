package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"pedal/internal/engine"
)

const (
	sessionName  = "pedal"
	sessionIDKey = "id"
)

// sessionID returns the caller's session id, issuing a new one in a
// cookie on first contact.
func (h *Handler) sessionID(c echo.Context) (string, error) {
	if id, ok := c.Get(sessionIDKey).(string); ok {
		return id, nil
	}
	sess, err := h.sessions.Get(c.Request(), sessionName)
	if err != nil && sess == nil {
		return "", err
	}
	// A cookie that no longer decodes yields a fresh session.
	id, ok := sess.Values[sessionIDKey].(string)
	if !ok || id == "" {
		id = uuid.NewString()
		sess.Values[sessionIDKey] = id
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			return "", err
		}
	}
	c.Set(sessionIDKey, id)
	return id, nil
}

func (h *Handler) dataset(c echo.Context) (*engine.Dataset, error) {
	id, err := h.sessionID(c)
	if err != nil {
		return nil, err
	}
	return h.registry.Get(id), nil
}
