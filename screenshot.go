package marionette

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// ScreenshotQueue collects labels during a frame and writes one PNG per
// label once the frame has been drawn.
type ScreenshotQueue struct {
	Dir    string
	labels []string
	logger *slog.Logger
	now    func() time.Time
}

// NewScreenshotQueue writes screenshots under dir ("screenshots" when empty).
func NewScreenshotQueue(dir string, logger *slog.Logger) *ScreenshotQueue {
	if dir == "" {
		dir = "screenshots"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ScreenshotQueue{Dir: dir, logger: logger, now: time.Now}
}

// Screenshot queues label for the end of the current Draw.
func (q *ScreenshotQueue) Screenshot(label string) {
	q.labels = append(q.labels, label)
}

// Pending returns the number of queued labels.
func (q *ScreenshotQueue) Pending() int {
	return len(q.labels)
}

// Flush captures screen for every queued label.
func (q *ScreenshotQueue) Flush(screen *ebiten.Image) {
	if len(q.labels) == 0 {
		return
	}
	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)
	q.write(unpremultiply(pixels, w, h))
}

func (q *ScreenshotQueue) write(img *image.NRGBA) {
	defer func() { q.labels = q.labels[:0] }()

	if err := os.MkdirAll(q.Dir, 0o755); err != nil {
		q.logger.Error("screenshot", "dir", q.Dir, "err", err)
		return
	}
	stamp := q.now().Format("20060102_150405")
	for _, label := range q.labels {
		path := filepath.Join(q.Dir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			q.logger.Error("screenshot", "err", err)
			continue
		}
		q.logger.Info("screenshot written", "path", path)
	}
}

// unpremultiply converts ebiten's premultiplied RGBA pixels to straight
// alpha.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("marionette: create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("marionette: encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
