package dashboard

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portworks/craneview/internal/livesync"
)

const heartbeatInterval = 15 * time.Second

// handleSSE streams view snapshots over server-sent events. Each client gets
// the current snapshot on connect, then a fresh one whenever the view
// publishes. The ?view= parameter selects a view; the fleet board is the
// default.
func handleSSE(views *livesync.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no")

		name := c.DefaultQuery("view", livesync.ViewFleet)
		v := views.Get(name)
		if v == nil {
			writeSSE(c.Writer, "error", gin.H{"error": "unknown view"})
			c.Writer.Flush()
			return
		}

		writeSSE(c.Writer, "connected", gin.H{"view": name})
		if snap := v.Snapshot(); snap != nil {
			writeSSE(c.Writer, "snapshot", snap)
		}
		c.Writer.Flush()

		sub := v.Watch()
		defer sub.Unsubscribe()

		heartbeat := time.NewTicker(heartbeatInterval)
		defer heartbeat.Stop()

		ctx := c.Request.Context()
		for {
			select {
			case <-ctx.Done():
				return
			case <-heartbeat.C:
				writeSSE(c.Writer, "heartbeat", gin.H{
					"timestamp": time.Now().UTC().Format(time.RFC3339),
				})
				c.Writer.Flush()
			case _, ok := <-sub.C():
				if !ok {
					return
				}
				if snap := v.Snapshot(); snap != nil {
					writeSSE(c.Writer, "snapshot", snap)
					c.Writer.Flush()
				}
			}
		}
	}
}

// writeSSE writes a single SSE event to the writer.
func writeSSE(w io.Writer, event string, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, string(jsonData))
}
