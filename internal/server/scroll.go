package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Zachkp/folio/internal/nav"
)

// maxSampleSize bounds one scroll sample, section tops included.
const maxSampleSize = 4096

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// scrollSample is sent by the page on every scroll event. Sections are
// included on the first sample and whenever the layout is re-measured.
type scrollSample struct {
	Y        int           `json:"y"`
	Sections []nav.Section `json:"sections,omitempty"`
}

type activeMessage struct {
	Active string `json:"active"`
}

// handleScroll streams scroll samples for one page and pushes the active
// section back whenever it changes. The subscription lives exactly as long
// as the connection. Every sample keeps the page open; a sample for a page
// that has since expired closes the socket.
func (s *Server) handleScroll(c *gin.Context) {
	page, ok := s.pages.Get(c.Query("page"))
	if !ok {
		c.JSON(http.StatusGone, gin.H{"error": "page expired"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("scroll websocket upgrade", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxSampleSize)

	var writeMu sync.Mutex
	send := func(active string) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(activeMessage{Active: active}); err != nil {
			s.logger.Debug("scroll websocket write", "error", err)
		}
	}

	unsubscribe := page.Tracker.Subscribe(send)
	defer unsubscribe()

	if active := page.Tracker.Current(); active != "" {
		send(active)
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("scroll websocket read", "page", page.ID, "error", err)
			}
			return
		}

		if !s.pages.Touch(page.ID) {
			closing := websocket.FormatCloseMessage(websocket.CloseGoingAway, "page expired")
			conn.WriteControl(websocket.CloseMessage, closing, time.Now().Add(time.Second))
			return
		}

		var sample scrollSample
		if err := json.Unmarshal(msg, &sample); err != nil {
			continue
		}
		if sample.Sections != nil {
			page.Tracker.SetSections(sample.Sections)
		}
		page.Tracker.Sample(sample.Y)
	}
}
