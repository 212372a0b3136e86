// Package internal has helpers that are only useful within the kinetrace runtime.
package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kinetrace/kinetrace/internal/contract"
	"github.com/kinetrace/kinetrace/schema"
)

// FrameFile is the decoded contents of a frame-signal file. Upstream
// capture tools emit either a bare JSON array of frames or an object
// wrapping frames plus optional per-frame presence reports.
type FrameFile struct {
	Frames   []schema.FrameSignal    `json:"frames"`
	Presence []schema.PresenceReport `json:"presence,omitempty"`
}

// LoadFrameFile reads and decodes a frame-signal file from disk.
func LoadFrameFile(path string) (*FrameFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read frames file: %w", err)
	}
	return decodeFrameFile(data)
}

// decodeFrameFile accepts both the wrapped object form and a bare array
// of frame signals.
func decodeFrameFile(data []byte) (*FrameFile, error) {
	var ff FrameFile
	if err := json.Unmarshal(data, &ff); err == nil && ff.Frames != nil {
		return &ff, nil
	}

	var frames []schema.FrameSignal
	if err := json.Unmarshal(data, &frames); err != nil {
		return nil, fmt.Errorf("failed to decode frames file: %w", err)
	}
	return &FrameFile{Frames: frames}, nil
}

// FileFrameSource serves pre-loaded frame signals in order.
type FileFrameSource struct {
	frames []schema.FrameSignal
	pos    int
}

var _ contract.FrameSource = &FileFrameSource{} // Compile-time check

// NewFileFrameSource creates a frame source over an in-memory slice.
func NewFileFrameSource(frames []schema.FrameSignal) *FileFrameSource {
	return &FileFrameSource{frames: frames}
}

// Next returns the next frame, or io.EOF once all frames are served.
func (s *FileFrameSource) Next(ctx context.Context) (schema.FrameSignal, error) {
	if err := ctx.Err(); err != nil {
		return schema.FrameSignal{}, err
	}
	if s.pos >= len(s.frames) {
		return schema.FrameSignal{}, io.EOF
	}
	frame := s.frames[s.pos]
	s.pos++
	return frame, nil
}

// ReportPresenceDetector replays presence reports recorded alongside
// the frame signals. Frames without a report get a zero-value report.
type ReportPresenceDetector struct {
	reports map[uint32]schema.PresenceReport
}

var _ contract.PresenceDetector = &ReportPresenceDetector{} // Compile-time check

// NewReportPresenceDetector creates a detector over embedded reports.
// It returns nil when no reports exist so the presence check is skipped
// rather than fed empty data.
func NewReportPresenceDetector(reports []schema.PresenceReport) *ReportPresenceDetector {
	if len(reports) == 0 {
		return nil
	}
	byIndex := make(map[uint32]schema.PresenceReport, len(reports))
	for _, rep := range reports {
		byIndex[rep.FrameIndex] = rep
	}
	return &ReportPresenceDetector{reports: byIndex}
}

// Presence returns the recorded report for a frame, if any.
func (d *ReportPresenceDetector) Presence(_ context.Context, frameIndex uint32) (schema.PresenceReport, error) {
	return d.reports[frameIndex], nil
}
