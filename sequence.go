package sequences

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/burninghelix123/sequences/backend"
)

type kind int

const (
	kindPlain kind = iota
	kindFile
	kindImage
)

type state int

const (
	stateUnparsed state = iota
	stateParsed
	stateBuilt
)

// Extensions accepted by NewImage, lowercase with leading dot.
var imageExtensions = map[string]bool{
	".tiff": true, ".tif": true, ".png": true, ".tga": true,
	".jpg": true, ".jpeg": true, ".raw": true, ".bmp": true,
	".gif": true, ".dpx": true, ".exr": true, ".psd": true,
}

// Item is one member of a sequence: its number and its rendered string.
type Item struct {
	Number int
	String string
}

// Sequence models a family of strings differing only by a fixed-width
// number. It is parsed eagerly at construction and indexes its items
// lazily on first access. Not safe for concurrent use.
type Sequence struct {
	source   string
	kind     kind
	key      string
	explicit []string // nil means discover via the backend
	provider backend.Provider
	registry *backend.Registry
	checkDir bool

	state  state
	m      Match
	curNum int
	hasCur bool
	index  *Index
	spans  []Span
	gaps   []int
	regex  string
}

// Option configures a sequence constructor.
type Option func(*Sequence)

// WithItems supplies the item candidates explicitly instead of listing the
// containing scope. Every candidate must belong to the sequence.
func WithItems(items []string) Option {
	return func(s *Sequence) { s.explicit = items }
}

// WithKey overrides the format-placeholder key ("item" by default, "frame"
// for image sequences).
func WithKey(key string) Option {
	return func(s *Sequence) { s.key = key }
}

// WithProvider pins the backend provider instead of resolving one from the
// registry.
func WithProvider(p backend.Provider) Option {
	return func(s *Sequence) { s.provider = p }
}

// WithRegistry resolves the provider from r instead of the default
// disk-only registry.
func WithRegistry(r *backend.Registry) Option {
	return func(s *Sequence) { s.registry = r }
}

// SkipExistsCheck disables the containing-directory existence check that
// file and image constructors perform.
func SkipExistsCheck() Option {
	return func(s *Sequence) { s.checkDir = false }
}

// New builds a plain-string sequence. The slot must end the string.
func New(source string, opts ...Option) (*Sequence, error) {
	return construct(source, kindPlain, DefaultKey, false, opts)
}

// NewFile builds a file-path sequence. The slot must follow a literal dot
// and the path is normalized to forward slashes. The containing directory
// must exist unless SkipExistsCheck is given.
func NewFile(p string, opts ...Option) (*Sequence, error) {
	return construct(p, kindFile, DefaultKey, true, opts)
}

// NewImage builds a file-path sequence restricted to image extensions, with
// the "frame" format key.
func NewImage(p string, opts ...Option) (*Sequence, error) {
	return construct(p, kindImage, FrameKey, true, opts)
}

// FromItems builds a file sequence from an explicit item list, using the
// first item as the source.
func FromItems(items []string, opts ...Option) (*Sequence, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("empty item list: %w", ErrNotSequence)
	}
	return NewFile(items[0], append([]Option{WithItems(items)}, opts...)...)
}

func construct(source string, k kind, key string, checkDir bool, opts []Option) (*Sequence, error) {
	s := &Sequence{source: source, kind: k, key: key, checkDir: checkDir}
	for _, opt := range opts {
		opt(s)
	}
	if k != kindPlain {
		s.source = normalizePath(s.source)
	}
	if err := s.parse(); err != nil {
		return nil, err
	}
	return s, nil
}

// normalizePath flips backslashes and collapses duplicate separators while
// keeping the leading double slash of depot-syntax paths.
func normalizePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	depot := strings.HasPrefix(p, "//")
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	if depot {
		p = "/" + p
	}
	return p
}

// parse classifies the source string and resolves the provider for file
// sequences. It is idempotent once the sequence reaches the parsed state.
func (s *Sequence) parse() error {
	if s.state >= stateParsed {
		return nil
	}
	var m Match
	var err error
	if s.kind == kindPlain {
		m, err = Classify(s.source, s.key)
	} else {
		m, err = ClassifyPath(s.source, s.key)
	}
	if err != nil {
		return err
	}
	if s.kind == kindImage {
		ext := strings.ToLower(extOf(s.source[m.End:]))
		if !imageExtensions[ext] {
			return fmt.Errorf("%q: %w", s.source, ErrImageExtension)
		}
	}
	s.m = m
	s.curNum, s.hasCur = m.Number, m.HasNum

	if s.kind != kindPlain {
		if s.provider == nil {
			reg := s.registry
			if reg == nil {
				reg = backend.DefaultRegistry()
			}
			// Only a provider that tracks the source gets to list it;
			// untracked paths fall through to the plain folder lister.
			s.provider = reg.ResolveTracked(s.source)
		}
		if s.checkDir {
			if err := s.checkScope(); err != nil {
				return err
			}
		}
	}
	s.state = stateParsed
	return nil
}

func (s *Sequence) checkScope() error {
	if s.provider == nil {
		return fmt.Errorf("%q: no provider accepts the path: %w", s.source, ErrScopeUnavailable)
	}
	dir := path.Dir(s.source)
	ok, err := s.provider.Exists(dir)
	if err != nil {
		return fmt.Errorf("checking %q: %v: %w", dir, err, ErrScopeUnavailable)
	}
	if !ok {
		return fmt.Errorf("%q does not exist: %w", dir, ErrScopeUnavailable)
	}
	return nil
}

// build populates the item index: from the explicit item list when one was
// given, otherwise by listing the containing scope through the provider.
// The source's own number, when it has one, is always included.
func (s *Sequence) build() error {
	if err := s.parse(); err != nil {
		return err
	}
	if s.state >= stateBuilt {
		return nil
	}
	ix := NewIndex()
	switch {
	case s.explicit != nil:
		for _, item := range s.explicit {
			c := item
			if s.kind != kindPlain {
				c = normalizePath(c)
			}
			n, err := s.Num(c)
			if err != nil {
				return err
			}
			ix.Set(n, c)
		}
	case s.kind != kindPlain:
		if s.provider == nil {
			return fmt.Errorf("%q: no provider accepts the path: %w", s.source, ErrScopeUnavailable)
		}
		dir := path.Dir(s.source)
		siblings, err := s.provider.List(dir)
		if err != nil {
			return fmt.Errorf("listing %q: %v: %w", dir, err, ErrScopeUnavailable)
		}
		for _, c := range siblings {
			c = normalizePath(c)
			n, err := s.Num(c)
			if err != nil {
				continue
			}
			ix.Set(n, c)
		}
	}
	if s.hasCur {
		ix.Set(s.curNum, s.ItemString(s.curNum, 0))
	}
	s.index = ix
	s.state = stateBuilt
	return nil
}

func (s *Sequence) invalidateIndex() {
	s.index = nil
	s.spans = nil
	s.gaps = nil
	if s.state > stateParsed {
		s.state = stateParsed
	}
}

func (s *Sequence) invalidate() {
	s.state = stateUnparsed
	s.m = Match{}
	s.curNum, s.hasCur = 0, false
	s.index = nil
	s.spans = nil
	s.gaps = nil
	s.regex = ""
}

// Source returns the source string (normalized, for file sequences).
func (s *Sequence) Source() string { return s.source }

// Flavor returns the slot flavor of the source string.
func (s *Sequence) Flavor() Flavor { return s.m.Flavor }

// Padding returns the fixed width of the numeric slot.
func (s *Sequence) Padding() int { return s.m.Padding }

// Prefix returns the literal text before the slot.
func (s *Sequence) Prefix() string { return s.source[:s.m.Start] }

// Suffix returns the literal text after the slot.
func (s *Sequence) Suffix() string { return s.source[s.m.End:] }

// Ext returns the suffix's extension including the dot, or "".
func (s *Sequence) Ext() string { return extOf(s.Suffix()) }

// Key returns the format-placeholder key.
func (s *Sequence) Key() string { return s.key }

// Provider returns the backend provider serving this sequence, nil for
// plain sequences.
func (s *Sequence) Provider() backend.Provider { return s.provider }

// CurrentNumber returns the number written in the slot. Template flavors
// have none.
func (s *Sequence) CurrentNumber() (int, bool) { return s.curNum, s.hasCur }

// SetCurrentNumber pins the slot number. The item index is rebuilt on next
// access so the new current item is included.
func (s *Sequence) SetCurrentNumber(n int) error {
	if n < 0 {
		return fmt.Errorf("%d: %w", n, ErrNegativeNumber)
	}
	s.curNum, s.hasCur = n, true
	s.invalidateIndex()
	return nil
}

// IsPartOf reports whether candidate belongs to the sequence: same total
// length given the slot width, identical prefix and suffix, and digits
// across the whole slot span. Padding mismatches are rejected, never
// coerced.
func (s *Sequence) IsPartOf(candidate string) bool {
	c := candidate
	if s.kind != kindPlain {
		c = normalizePath(c)
	}
	pre, suf, pad := s.Prefix(), s.Suffix(), s.m.Padding
	if len(c) != len(pre)+pad+len(suf) {
		return false
	}
	if c[:len(pre)] != pre || c[len(c)-len(suf):] != suf {
		return false
	}
	for i := len(pre); i < len(pre)+pad; i++ {
		if c[i] < '0' || c[i] > '9' {
			return false
		}
	}
	return true
}

// Num returns the item number of a member string, or ErrNotPartOfSequence.
func (s *Sequence) Num(candidate string) (int, error) {
	c := candidate
	if s.kind != kindPlain {
		c = normalizePath(c)
	}
	if !s.IsPartOf(c) {
		return 0, fmt.Errorf("%q: %w", candidate, ErrNotPartOfSequence)
	}
	n, err := strconv.Atoi(c[s.m.Start : s.m.Start+s.m.Padding])
	if err != nil {
		return 0, fmt.Errorf("%q: %w", candidate, ErrNotPartOfSequence)
	}
	return n, nil
}

// Items returns a snapshot of the item index.
func (s *Sequence) Items() (*Index, error) {
	if err := s.build(); err != nil {
		return nil, err
	}
	return s.index.clone(), nil
}

// Len returns the number of indexed items.
func (s *Sequence) Len() (int, error) {
	if err := s.build(); err != nil {
		return 0, err
	}
	return s.index.Len(), nil
}

// Numbers returns the item numbers in ascending order.
func (s *Sequence) Numbers() ([]int, error) {
	if err := s.build(); err != nil {
		return nil, err
	}
	return s.index.Numbers(), nil
}

// Paths returns the item strings in ascending number order.
func (s *Sequence) Paths() ([]string, error) {
	if err := s.build(); err != nil {
		return nil, err
	}
	return s.index.Items(), nil
}

// Item returns the indexed string for number n.
func (s *Sequence) Item(n int) (string, error) {
	if err := s.build(); err != nil {
		return "", err
	}
	item, ok := s.index.Get(n)
	if !ok {
		return "", fmt.Errorf("%d: %w", n, ErrUnknownNumber)
	}
	return item, nil
}

// First returns the lowest-numbered item; ok is false when the sequence is
// empty.
func (s *Sequence) First() (Item, bool, error) {
	if err := s.build(); err != nil {
		return Item{}, false, err
	}
	n, str, ok := s.index.First()
	return Item{Number: n, String: str}, ok, nil
}

// Mid returns the middle item by rank.
func (s *Sequence) Mid() (Item, bool, error) {
	if err := s.build(); err != nil {
		return Item{}, false, err
	}
	if s.index.Len() == 0 {
		return Item{}, false, nil
	}
	n, str := s.index.At(s.index.Len() / 2)
	return Item{Number: n, String: str}, true, nil
}

// Last returns the highest-numbered item.
func (s *Sequence) Last() (Item, bool, error) {
	if err := s.build(); err != nil {
		return Item{}, false, err
	}
	n, str, ok := s.index.Last()
	return Item{Number: n, String: str}, ok, nil
}

// Next returns the indexed item nearest above n. The second return is
// false, with a nil error, when n is already the last item. Asking from a
// number that is not in the index is ErrUnknownNumber.
func (s *Sequence) Next(n int) (string, bool, error) {
	if err := s.build(); err != nil {
		return "", false, err
	}
	if !s.index.Has(n) {
		return "", false, fmt.Errorf("%d: %w", n, ErrUnknownNumber)
	}
	_, item, ok := s.index.Next(n)
	return item, ok, nil
}

// Prev returns the indexed item nearest below n, with the same contract as
// Next.
func (s *Sequence) Prev(n int) (string, bool, error) {
	if err := s.build(); err != nil {
		return "", false, err
	}
	if !s.index.Has(n) {
		return "", false, fmt.Errorf("%d: %w", n, ErrUnknownNumber)
	}
	_, item, ok := s.index.Prev(n)
	return item, ok, nil
}

// Ranges returns the maximal consecutive spans of the item numbers.
func (s *Sequence) Ranges() ([]Span, error) {
	if err := s.build(); err != nil {
		return nil, err
	}
	if s.spans == nil {
		s.spans = collapse(s.index.nums)
	}
	out := make([]Span, len(s.spans))
	copy(out, s.spans)
	return out, nil
}

// Missing returns the interior numbers absent between the first and last
// items.
func (s *Sequence) Missing() ([]int, error) {
	if err := s.build(); err != nil {
		return nil, err
	}
	if s.gaps == nil {
		s.gaps = missingBetween(s.index.nums)
	}
	out := make([]int, len(s.gaps))
	copy(out, s.gaps)
	return out, nil
}

// RangeString renders the spans as "101-105, 110-115".
func (s *Sequence) RangeString() (string, error) {
	spans, err := s.Ranges()
	if err != nil {
		return "", err
	}
	return FormatSpans(spans), nil
}

// SetItem inserts or replaces the item at number n. The item must belong to
// the sequence and carry that number.
func (s *Sequence) SetItem(n int, item string) error {
	if err := s.build(); err != nil {
		return err
	}
	got, err := s.Num(item)
	if err != nil {
		return err
	}
	if got != n {
		return fmt.Errorf("%q carries number %d, not %d: %w", item, got, n, ErrNotPartOfSequence)
	}
	c := item
	if s.kind != kindPlain {
		c = normalizePath(c)
	}
	s.index.Set(n, c)
	s.spans, s.gaps = nil, nil
	return nil
}

// Remove deletes the item at number n and reports whether it was present.
func (s *Sequence) Remove(n int) (bool, error) {
	if err := s.build(); err != nil {
		return false, err
	}
	ok := s.index.Delete(n)
	if ok {
		s.spans, s.gaps = nil, nil
	}
	return ok, nil
}

// RemoveRange deletes all items with lo <= number <= hi, inclusive, and
// returns how many were removed.
func (s *Sequence) RemoveRange(lo, hi int) (int, error) {
	if err := s.build(); err != nil {
		return 0, err
	}
	removed := 0
	for _, n := range s.index.Numbers() {
		if n < lo {
			continue
		}
		if n > hi {
			break
		}
		s.index.Delete(n)
		removed++
	}
	if removed > 0 {
		s.spans, s.gaps = nil, nil
	}
	return removed, nil
}

// Slice returns the items with lo <= number <= hi, both bounds inclusive.
func (s *Sequence) Slice(lo, hi int) ([]string, error) {
	if err := s.build(); err != nil {
		return nil, err
	}
	return s.index.Between(lo, hi), nil
}

// SliceStep returns the items at lo, lo+step, ... up to hi inclusive.
// Steps walk the number line, not the item ranks; absent numbers are
// skipped.
func (s *Sequence) SliceStep(lo, hi, step int) ([]string, error) {
	if step <= 0 {
		return nil, fmt.Errorf("step must be positive, got %d", step)
	}
	if err := s.build(); err != nil {
		return nil, err
	}
	var out []string
	for n := lo; n <= hi; n += step {
		if item, ok := s.index.Get(n); ok {
			out = append(out, item)
		}
	}
	return out, nil
}

// Merge copies every item of other into this sequence. Items that do not
// belong here fail with ErrNotPartOfSequence and stop the merge.
func (s *Sequence) Merge(other *Sequence) error {
	if err := s.build(); err != nil {
		return err
	}
	ix, err := other.Items()
	if err != nil {
		return err
	}
	for _, n := range ix.Numbers() {
		item, _ := ix.Get(n)
		if err := s.SetItem(n, item); err != nil {
			return err
		}
	}
	return nil
}

// SetSource replaces the source string and reparses immediately. The item
// index is rebuilt on next access.
func (s *Sequence) SetSource(source string) error {
	if s.kind != kindPlain {
		source = normalizePath(source)
	}
	s.source = source
	s.invalidate()
	return s.parse()
}

// SetItems replaces the explicit item list. A nil list switches the
// sequence back to backend discovery.
func (s *Sequence) SetItems(items []string) error {
	s.explicit = items
	s.invalidate()
	return s.parse()
}

// Reload drops every derived value and reparses the source. Item discovery
// runs again on next access.
func (s *Sequence) Reload() error {
	s.invalidate()
	return s.parse()
}
