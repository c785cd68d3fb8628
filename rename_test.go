package sequences

import (
	"errors"
	"fmt"
	"path"
	"slices"
	"sort"
	"testing"
)

// memProvider is an in-memory backend for exercising rename plans.
type memProvider struct {
	files  map[string]bool
	moves  []Move
	failOn string // Move source that fails
}

func newMem(paths ...string) *memProvider {
	m := &memProvider{files: make(map[string]bool)}
	for _, p := range paths {
		m.files[p] = true
	}
	return m
}

func (m *memProvider) Name() string          { return "mem" }
func (m *memProvider) CanHandle(string) bool { return true }

func (m *memProvider) List(dir string) ([]string, error) {
	var out []string
	for f := range m.files {
		if path.Dir(f) == dir {
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *memProvider) Exists(p string) (bool, error) {
	if m.files[p] {
		return true, nil
	}
	for f := range m.files {
		if path.Dir(f) == p {
			return true, nil
		}
	}
	return false, nil
}

func (m *memProvider) Tracked(string) (bool, error) { return false, nil }

func (m *memProvider) Move(oldPath, newPath string) error {
	if oldPath == m.failOn {
		return fmt.Errorf("injected failure for %s", oldPath)
	}
	if !m.files[oldPath] {
		return fmt.Errorf("%s does not exist", oldPath)
	}
	delete(m.files, oldPath)
	m.files[newPath] = true
	m.moves = append(m.moves, Move{From: oldPath, To: newPath})
	return nil
}

func (m *memProvider) paths() []string {
	out := make([]string, 0, len(m.files))
	for f := range m.files {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func memSequence(t *testing.T, source string, files ...string) (*Sequence, *memProvider) {
	t.Helper()
	m := newMem(files...)
	s, err := NewFile(source, WithProvider(m))
	if err != nil {
		t.Fatal(err)
	}
	return s, m
}

func intp(n int) *int { return &n }

func TestRenameNoOp(t *testing.T) {
	s, m := memSequence(t, "/r/shot.0001.exr",
		"/r/shot.0001.exr", "/r/shot.0002.exr")
	for _, opts := range []RenameOptions{
		{},
		{Padding: 4},
		{Start: intp(1)},
		{Padding: 4, Start: intp(1)},
	} {
		if err := s.Rename(opts); err != nil {
			t.Fatalf("Rename(%+v) = %v, want no-op", opts, err)
		}
	}
	if len(m.moves) != 0 {
		t.Fatalf("no-op performed moves: %v", m.moves)
	}
}

func TestRenameRepad(t *testing.T) {
	s, m := memSequence(t, "/r/shot.0001.exr",
		"/r/shot.0001.exr", "/r/shot.0002.exr", "/r/shot.0003.exr")
	if err := s.Rename(RenameOptions{Padding: 5}); err != nil {
		t.Fatal(err)
	}
	want := []string{"/r/shot.00001.exr", "/r/shot.00002.exr", "/r/shot.00003.exr"}
	if got := m.paths(); !slices.Equal(got, want) {
		t.Fatalf("files = %v", got)
	}
	if s.Source() != "/r/shot.00001.exr" {
		t.Fatalf("Source = %q", s.Source())
	}
	if s.Padding() != 5 {
		t.Fatalf("Padding = %d", s.Padding())
	}
}

func TestRenameShiftUpRunsDescending(t *testing.T) {
	s, m := memSequence(t, "/r/shot.0001.exr",
		"/r/shot.0001.exr", "/r/shot.0002.exr", "/r/shot.0003.exr")
	if err := s.Rename(RenameOptions{Start: intp(2)}); err != nil {
		t.Fatal(err)
	}
	// overlapping targets: highest number must vacate first
	wantOrder := []Move{
		{"/r/shot.0003.exr", "/r/shot.0004.exr"},
		{"/r/shot.0002.exr", "/r/shot.0003.exr"},
		{"/r/shot.0001.exr", "/r/shot.0002.exr"},
	}
	if !slices.Equal(m.moves, wantOrder) {
		t.Fatalf("moves = %v", m.moves)
	}
	if s.Source() != "/r/shot.0002.exr" {
		t.Fatalf("Source = %q", s.Source())
	}
}

func TestRenameShiftDownRunsAscending(t *testing.T) {
	s, m := memSequence(t, "/r/shot.0011.exr",
		"/r/shot.0011.exr", "/r/shot.0012.exr", "/r/shot.0013.exr")
	if err := s.Rename(RenameOptions{Start: intp(10)}); err != nil {
		t.Fatal(err)
	}
	wantOrder := []Move{
		{"/r/shot.0011.exr", "/r/shot.0010.exr"},
		{"/r/shot.0012.exr", "/r/shot.0011.exr"},
		{"/r/shot.0013.exr", "/r/shot.0012.exr"},
	}
	if !slices.Equal(m.moves, wantOrder) {
		t.Fatalf("moves = %v", m.moves)
	}
}

func TestRenameGapGuard(t *testing.T) {
	s, _ := memSequence(t, "/r/shot.0001.exr",
		"/r/shot.0001.exr", "/r/shot.0002.exr", "/r/shot.0004.exr")
	if err := s.Rename(RenameOptions{Start: intp(11)}); !errors.Is(err, ErrNonContiguous) {
		t.Fatalf("gapped rename = %v, want ErrNonContiguous", err)
	}

	s2, m2 := memSequence(t, "/r/shot.0001.exr",
		"/r/shot.0001.exr", "/r/shot.0002.exr", "/r/shot.0004.exr")
	if err := s2.Rename(RenameOptions{Start: intp(11), IgnoreMissing: true}); err != nil {
		t.Fatal(err)
	}
	want := []string{"/r/shot.0011.exr", "/r/shot.0012.exr", "/r/shot.0014.exr"}
	if got := m2.paths(); !slices.Equal(got, want) {
		t.Fatalf("files = %v, gaps must keep their relative position", got)
	}
}

func TestRenameCollision(t *testing.T) {
	s, m := memSequence(t, "/r/shot.0001.exr",
		"/r/shot.0001.exr", "/r/shot.0002.exr", "/r/shot.0011.exr")
	// 0011 belongs to the same family, so scope it out with explicit items
	if err := s.SetItems([]string{"/r/shot.0001.exr", "/r/shot.0002.exr"}); err != nil {
		t.Fatal(err)
	}
	before := m.paths()
	err := s.Rename(RenameOptions{Start: intp(11)})
	if !errors.Is(err, ErrDestinationExists) {
		t.Fatalf("Rename = %v, want ErrDestinationExists", err)
	}
	if got := m.paths(); !slices.Equal(got, before) {
		t.Fatalf("files after failed rename = %v, want %v", got, before)
	}

	// the same plan goes through with Overwrite
	if err := s.Rename(RenameOptions{Start: intp(11), Overwrite: true}); err != nil {
		t.Fatal(err)
	}
	want := []string{"/r/shot.0011.exr", "/r/shot.0012.exr"}
	if got := m.paths(); !slices.Equal(got, want) {
		t.Fatalf("files = %v", got)
	}
}

func TestRenameRollbackOnFailure(t *testing.T) {
	s, m := memSequence(t, "/r/shot.0001.exr",
		"/r/shot.0001.exr", "/r/shot.0002.exr", "/r/shot.0003.exr")
	m.failOn = "/r/shot.0002.exr"
	before := m.paths()
	err := s.Rename(RenameOptions{Padding: 5})
	if err == nil {
		t.Fatal("want error from injected failure")
	}
	if got := m.paths(); !slices.Equal(got, before) {
		t.Fatalf("files after rollback = %v, want %v", got, before)
	}
	if s.Source() != "/r/shot.0001.exr" {
		t.Fatalf("Source changed after failed rename: %q", s.Source())
	}
}

func TestRenameDryRunIdempotent(t *testing.T) {
	s, m := memSequence(t, "/r/shot.0001.exr",
		"/r/shot.0001.exr", "/r/shot.0002.exr", "/r/shot.0003.exr")
	before := m.paths()
	for i := 0; i < 3; i++ {
		if err := s.Rename(RenameOptions{Start: intp(2), DryRun: true}); err != nil {
			t.Fatalf("dry run %d: %v", i, err)
		}
	}
	if got := m.paths(); !slices.Equal(got, before) {
		t.Fatalf("dry run touched files: %v", got)
	}
	if len(m.moves) != 0 {
		t.Fatalf("dry run recorded moves: %v", m.moves)
	}
	if s.Source() != "/r/shot.0001.exr" {
		t.Fatalf("dry run changed source: %q", s.Source())
	}
}

func TestRenameProgress(t *testing.T) {
	s, _ := memSequence(t, "/r/shot.0001.exr",
		"/r/shot.0001.exr", "/r/shot.0002.exr", "/r/shot.0003.exr")
	var calls [][2]int
	opts := RenameOptions{
		Padding: 6,
		Progress: func(done, total int) {
			calls = append(calls, [2]int{done, total})
		},
	}
	if err := s.Rename(opts); err != nil {
		t.Fatal(err)
	}
	want := [][2]int{{1, 3}, {2, 3}, {3, 3}}
	if !slices.Equal(calls, want) {
		t.Fatalf("progress calls = %v", calls)
	}
}

func TestApplyRunsThePlannedMoves(t *testing.T) {
	s, m := memSequence(t, "/r/shot.0001.exr",
		"/r/shot.0001.exr", "/r/shot.0002.exr", "/r/shot.0003.exr")
	opts := RenameOptions{Start: intp(11)}
	plan, err := s.PlanRename(opts)
	if err != nil {
		t.Fatal(err)
	}
	if plan == nil {
		t.Fatal("want a plan")
	}

	before := m.paths()
	if err := s.Apply(plan, RenameOptions{DryRun: true}); err != nil {
		t.Fatal(err)
	}
	if got := m.paths(); !slices.Equal(got, before) {
		t.Fatalf("dry-run apply touched files: %v", got)
	}

	if err := s.Apply(plan, opts); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(m.moves, plan.Moves) {
		t.Fatalf("executed %v, planned %v", m.moves, plan.Moves)
	}

	if err := s.Apply(nil, opts); err != nil {
		t.Fatalf("nil plan must be a no-op, got %v", err)
	}
}

func TestRenameNegativeStart(t *testing.T) {
	s, _ := memSequence(t, "/r/shot.0001.exr", "/r/shot.0001.exr")
	if err := s.Rename(RenameOptions{Start: intp(-1)}); !errors.Is(err, ErrNegativeNumber) {
		t.Fatalf("Rename = %v, want ErrNegativeNumber", err)
	}
}

func TestRenameExplicitItemsRefresh(t *testing.T) {
	s, _ := memSequence(t, "/r/shot.0001.exr", "/r/shot.0001.exr", "/r/shot.0002.exr")
	if err := s.SetItems([]string{"/r/shot.0001.exr", "/r/shot.0002.exr"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Rename(RenameOptions{Start: intp(5)}); err != nil {
		t.Fatal(err)
	}
	nums, err := s.Numbers()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(nums, []int{5, 6}) {
		t.Fatalf("Numbers after rename = %v", nums)
	}
}
