package charge

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// Options configures a Store
type Options struct {
	Bounds     Bounds
	Spawn      Bounds
	MaxCharges int // 0 disables the cap
	SignPolicy SignPolicy
	Rand       *rand.Rand
}

// DefaultOptions returns the stock bounds, spawn region and sign policy
func DefaultOptions() Options {
	return Options{
		Bounds:     DefaultBounds(),
		Spawn:      DefaultSpawn(),
		SignPolicy: PreserveSign,
	}
}

// Store is the ordered charge sequence
// Identity is positional: removing a charge shifts later indices down
// Not safe for concurrent use; one controller owns it
type Store struct {
	charges  []Charge
	bounds   Bounds
	spawn    Bounds
	max      int
	policy   SignPolicy
	rng      *rand.Rand
	onChange func()
}

// NewStore creates an empty store
func NewStore(opts Options) *Store {
	if opts.Bounds == (Bounds{}) {
		opts.Bounds = DefaultBounds()
	}
	if opts.Spawn == (Bounds{}) {
		opts.Spawn = DefaultSpawn()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Store{
		charges: make([]Charge, 0, 8),
		bounds:  opts.Bounds,
		spawn:   opts.Spawn.Intersect(opts.Bounds),
		max:     opts.MaxCharges,
		policy:  opts.SignPolicy,
		rng:     rng,
	}
}

// OnChange registers the listener called after every successful mutation
// A nil listener disables notification
func (s *Store) OnChange(fn func()) {
	s.onChange = fn
}

func (s *Store) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}

// Bounds returns the placement rectangle
func (s *Store) Bounds() Bounds { return s.bounds }

// SignPolicy returns the magnitude edit policy in effect
func (s *Store) SignPolicy() SignPolicy { return s.policy }

// SetSignPolicy switches the magnitude edit policy
func (s *Store) SetSignPolicy(p SignPolicy) { s.policy = p }

// MaxCharges returns the cap, 0 meaning unlimited
func (s *Store) MaxCharges() int { return s.max }

// Len returns the number of charges
func (s *Store) Len() int { return len(s.charges) }

// Full reports whether another Add would exceed the cap
func (s *Store) Full() bool {
	return s.max > 0 && len(s.charges) >= s.max
}

// At returns a copy of charge i
func (s *Store) At(i int) (Charge, error) {
	if err := s.checkIndex(i); err != nil {
		return Charge{}, err
	}
	return s.charges[i], nil
}

// Snapshot returns a copy of the sequence
func (s *Store) Snapshot() []Charge {
	out := make([]Charge, len(s.charges))
	copy(out, s.charges)
	return out
}

// ParseMagnitude parses add-form text into a finite number
func ParseMagnitude(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, fmt.Errorf("%w: magnitude is empty", ErrValidation)
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrValidation, text)
	}
	if !isFinite(v) {
		return 0, fmt.Errorf("%w: magnitude must be finite", ErrValidation)
	}
	return v, nil
}

// Add appends a charge of |magnitude| with the given polarity at a random spawn position
func (s *Store) Add(magnitude float64, polarity Polarity) (int, error) {
	if !isFinite(magnitude) {
		return -1, fmt.Errorf("%w: magnitude must be finite", ErrValidation)
	}
	if s.Full() {
		return -1, fmt.Errorf("%w: at most %d charges", ErrCapacity, s.max)
	}
	c := Charge{
		X: s.spawn.MinX + s.rng.Float64()*s.spawn.Width(),
		Y: s.spawn.MinY + s.rng.Float64()*s.spawn.Height(),
		Q: math.Copysign(math.Abs(magnitude), polarity.Sign()),
	}
	c.X, c.Y = s.bounds.Clamp(c.X, c.Y)
	s.charges = append(s.charges, c)
	s.notify()
	return len(s.charges) - 1, nil
}

// AddAt appends a fully specified charge, position clamped to bounds
func (s *Store) AddAt(c Charge) (int, error) {
	if !isFinite(c.X) || !isFinite(c.Y) || !isFinite(c.Q) {
		return -1, fmt.Errorf("%w: charge fields must be finite", ErrValidation)
	}
	if s.Full() {
		return -1, fmt.Errorf("%w: at most %d charges", ErrCapacity, s.max)
	}
	c.X, c.Y = s.bounds.Clamp(c.X, c.Y)
	s.charges = append(s.charges, c)
	s.notify()
	return len(s.charges) - 1, nil
}

// Remove deletes charge i in place
func (s *Store) Remove(i int) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	s.charges = append(s.charges[:i], s.charges[i+1:]...)
	s.notify()
	return nil
}

// SetPosition moves charge i, clamping to bounds
func (s *Store) SetPosition(i int, x, y float64) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	if !isFinite(x) || !isFinite(y) {
		return fmt.Errorf("%w: position must be finite", ErrValidation)
	}
	s.charges[i].X, s.charges[i].Y = s.bounds.Clamp(x, y)
	s.notify()
	return nil
}

// SetX moves charge i horizontally
func (s *Store) SetX(i int, x float64) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	return s.SetPosition(i, x, s.charges[i].Y)
}

// SetY moves charge i vertically
func (s *Store) SetY(i int, y float64) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	return s.SetPosition(i, s.charges[i].X, y)
}

// SetMagnitude replaces Q of charge i according to the sign policy
func (s *Store) SetMagnitude(i int, value float64) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	if !isFinite(value) {
		return fmt.Errorf("%w: magnitude must be finite", ErrValidation)
	}
	s.charges[i].Q = s.policy.apply(s.charges[i].Q, value)
	s.notify()
	return nil
}

// Clear empties the sequence
func (s *Store) Clear() {
	s.charges = s.charges[:0]
	s.notify()
}

func (s *Store) checkIndex(i int) error {
	if i < 0 || i >= len(s.charges) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndex, i, len(s.charges))
	}
	return nil
}
