package session

import (
	"context"
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"github.com/ironsheep/polarity-mcp/internal/imaging"
	"github.com/ironsheep/polarity-mcp/internal/logging"
	"github.com/ironsheep/polarity-mcp/internal/negative"
)

// Comparison positions set by Load and by a successful Invert.
const (
	CompareOnLoad   = 0.0
	CompareOnInvert = 50.0
)

// inversion stages narrated at debug level while Invert runs
var invertStages = []string{
	"Initiating System Scan...",
	"Calibrating Polarity Matrix...",
	"Executing Quantum Inversion...",
}

// Session owns one source image, its inverted baseline and the rendered
// result of the current correction.
type Session struct {
	mu sync.RWMutex

	state      State
	name       string
	original   image.Image
	source     *imaging.Buffer
	baseline   *imaging.Buffer
	rendered   *imaging.Buffer
	correction int
	compare    float64

	// generation is bumped by every accepted mutating request
	generation uint64

	slot *semaphore.Weighted
	log  *logrus.Entry
}

// Snapshot is a consistent view of the session at one instant.
type Snapshot struct {
	State      string  `json:"state"`
	Correction int     `json:"correction"`
	Compare    float64 `json:"compare_percent"`
	Width      int     `json:"width,omitempty"`
	Height     int     `json:"height,omitempty"`
	Source     string  `json:"source,omitempty"`
	Status     string  `json:"status"`
}

// New returns an Empty session. A nil log discards output.
func New(log *logrus.Entry) *Session {
	if log == nil {
		log = logging.Discard()
	}
	return &Session{
		state: Empty,
		slot:  semaphore.NewWeighted(1),
		log:   log,
	}
}

// Load replaces the session source with img and moves to Loaded.
//
// Any baseline and correction are dropped and pending transforms are
// superseded. On error the session is left unchanged.
func (s *Session) Load(ctx context.Context, img image.Image, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	src, err := imaging.FromImage(img)
	if err != nil {
		return fmt.Errorf("failed to load %q: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	s.generation++
	prev := s.state
	s.state = Loaded
	s.name = name
	s.original = img
	s.source = src
	s.baseline = nil
	s.rendered = nil
	s.correction = 0
	s.compare = CompareOnLoad

	s.log.WithFields(logrus.Fields{
		"source": name,
		"width":  src.Width(),
		"height": src.Height(),
		"from":   prev.String(),
	}).Info("Target acquired")
	return nil
}

// LoadReader decodes r and loads the result under name.
func (s *Session) LoadReader(ctx context.Context, r io.Reader, name string) error {
	img, err := imaging.Decode(r)
	if err != nil {
		s.log.WithError(err).WithField("source", name).Warn("Failed to decode target image")
		return err
	}
	return s.Load(ctx, img, name)
}

// LoadFile decodes the image at path and loads it.
func (s *Session) LoadFile(ctx context.Context, path string) error {
	img, err := imaging.DecodeFile(path)
	if err != nil {
		s.log.WithError(err).WithField("source", path).Warn("Failed to decode target image")
		return err
	}
	return s.Load(ctx, img, path)
}

// Invert computes the negative of the loaded source and makes it the
// baseline. It is accepted only in the Loaded state.
func (s *Session) Invert(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.state != Loaded {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("%w: invert requires %s, session is %s", ErrNotReady, Loaded, state)
	}
	s.generation++
	gen := s.generation
	src := s.source
	s.mu.Unlock()

	baseline, err := s.compute(ctx, gen, func() (*imaging.Buffer, error) {
		for _, stage := range invertStages {
			s.log.Debug(stage)
		}
		return negative.InvertBuffer(src)
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return ErrSuperseded
	}
	s.baseline = baseline
	s.rendered = baseline.Clone()
	s.correction = 0
	s.compare = CompareOnInvert
	s.state = Baseline

	s.log.WithField("source", s.name).Info("Inversion complete")
	return nil
}

// SetCorrection renders the baseline with the channel correction at
// intensity. It is accepted only once a baseline exists. An out-of-range
// intensity is rejected without changing the session.
func (s *Session) SetCorrection(ctx context.Context, intensity int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	if !s.state.Inverted() {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("%w: correction requires an inverted image, session is %s", ErrNotReady, state)
	}
	if err := negative.ValidateIntensity(intensity); err != nil {
		s.mu.Unlock()
		return err
	}
	s.generation++
	gen := s.generation
	baseline := s.baseline
	s.mu.Unlock()

	rendered, err := s.compute(ctx, gen, func() (*imaging.Buffer, error) {
		return negative.Correct(baseline, intensity)
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return ErrSuperseded
	}
	s.rendered = rendered
	s.correction = intensity
	if intensity == 0 {
		s.state = Baseline
	} else {
		s.state = Corrected
	}

	s.log.WithFields(logrus.Fields{
		"intensity": intensity,
		"state":     s.state.String(),
	}).Debug("Correction applied")
	return nil
}

// Reset restores the rendered image to the uncorrected baseline.
func (s *Session) Reset(ctx context.Context) error {
	return s.SetCorrection(ctx, negative.MinIntensity)
}

// compute runs fn in the session's single compute slot. It gives up early
// when ctx ends or when gen is no longer current.
func (s *Session) compute(ctx context.Context, gen uint64, fn func() (*imaging.Buffer, error)) (*imaging.Buffer, error) {
	if err := s.slot.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.slot.Release(1)

	if !s.current(gen) {
		return nil, ErrSuperseded
	}
	out, err := fn()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) current(gen uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return gen == s.generation
}

// SetCompare moves the comparison wipe to percent of the image width.
func (s *Session) SetCompare(percent float64) error {
	if err := imaging.ValidatePercent(percent); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Inverted() {
		return fmt.Errorf("%w: comparison requires an inverted image, session is %s", ErrNotReady, s.state)
	}
	s.compare = percent
	return nil
}

// Rendered returns the current rendered image. Buffers are immutable, so
// the result stays valid after later edits replace it.
func (s *Session) Rendered() (*imaging.Buffer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.state.Inverted() {
		return nil, fmt.Errorf("%w: nothing rendered, session is %s", ErrNotReady, s.state)
	}
	return s.rendered, nil
}

// Original returns the source image as decoded.
func (s *Session) Original() (image.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == Empty {
		return nil, fmt.Errorf("%w: no image loaded", ErrNotReady)
	}
	return s.original, nil
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Correction returns the intensity of the current rendering.
func (s *Session) Correction() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.correction
}

// Compare returns the comparison wipe position in percent.
func (s *Session) Compare() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.compare
}

// Snapshot returns the session state, parameters and status message.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		State:      s.state.String(),
		Correction: s.correction,
		Compare:    s.compare,
		Source:     s.name,
		Status:     s.state.Status(),
	}
	if s.source != nil {
		snap.Width = s.source.Width()
		snap.Height = s.source.Height()
	}
	return snap
}
