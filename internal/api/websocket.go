package api

import (
	"context"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/iksnae/support-analytics/internal"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
)

// refreshRequest is the only message clients send
type refreshRequest struct {
	Action string `json:"action"`
	Status string `json:"status"`
}

// handleDashboardSocket sends a dashboard on connect and again on every
// refresh request. The connection's ?status= sets the initial filter.
func (s *Server) handleDashboardSocket(conn *websocket.Conn) {
	defer func() {
		_ = conn.Close()
	}()
	conn.SetReadLimit(maxMessageSize)

	if !s.pushDashboard(conn, conn.Query("status")) {
		return
	}

	for {
		var req refreshRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				internal.LogWarn("Websocket read error: %v", err)
			}
			return
		}

		if req.Action != "refresh" {
			if !s.writeJSON(conn, ResponseData{
				Status:  400,
				Code:    "ERROR",
				Message: "unknown action: " + req.Action,
			}) {
				return
			}
			continue
		}

		if !s.pushDashboard(conn, req.Status) {
			return
		}
	}
}

// pushDashboard writes one dashboard frame and reports whether the
// connection is still usable
func (s *Server) pushDashboard(conn *websocket.Conn, status string) bool {
	filter, err := internal.ParseStatusFilter(status)
	if err != nil {
		return s.writeJSON(conn, ResponseData{Status: 400, Code: "ERROR", Message: err.Error()})
	}

	d, err := s.svc.Dashboard(context.Background(), filter)
	if err != nil {
		resp := ResponseData{Status: 503, Code: "FETCH_FAILED", Message: err.Error()}
		if d != nil && d.Stale {
			resp.Code = "STALE"
			resp.Results = d
		}
		return s.writeJSON(conn, resp)
	}

	return s.writeJSON(conn, ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Dashboard refreshed",
		Results: d,
	})
}

func (s *Server) writeJSON(conn *websocket.Conn, v interface{}) bool {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(v); err != nil {
		internal.LogWarn("Websocket write error: %v", err)
		return false
	}
	return true
}
