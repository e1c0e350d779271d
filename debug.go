package marionette

import (
	"log/slog"
	"time"
)

// frameStats holds per-frame timing metrics.
// Only populated when the App runs in debug mode.
type frameStats struct {
	pollTime    time.Duration
	advanceTime time.Duration
	drawTime    time.Duration
	running     int
	nodes       int
}

func (st frameStats) total() time.Duration {
	return st.pollTime + st.advanceTime + st.drawTime
}

// logFrameStats writes timing stats at debug level.
func logFrameStats(l *slog.Logger, st frameStats) {
	l.Debug("frame",
		"poll", st.pollTime,
		"advance", st.advanceTime,
		"draw", st.drawTime,
		"total", st.total(),
		"running", st.running,
		"nodes", st.nodes,
	)
}

const debugMaxTreeDepth = 32

// debugCheckTreeDepth warns if the node sits deeper than debugMaxTreeDepth.
func (s *Scene) debugCheckTreeDepth(id NodeID) {
	depth := 0
	for p := id; p != RootID; depth++ {
		n, ok := s.nodes[p]
		if !ok {
			break
		}
		p = n.parent
	}
	if depth > debugMaxTreeDepth {
		n := s.nodes[id]
		s.logger.Warn("tree depth exceeds threshold",
			"node", n.Name, "depth", depth, "threshold", debugMaxTreeDepth)
	}
}

const debugMaxChildCount = 1000

func (s *Scene) debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		s.logger.Warn("child count exceeds threshold",
			"node", n.Name, "children", len(n.children), "threshold", debugMaxChildCount)
	}
}
