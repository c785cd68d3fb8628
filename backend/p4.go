package backend

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// SessionOptions configure how the p4 CLI is invoked. Zero values fall back
// to the p4 defaults (P4PORT, P4USER, P4CLIENT from the environment).
type SessionOptions struct {
	Binary string // p4 executable, default "p4"
	Port   string
	User   string
	Client string
}

// Bounded memoization of fstat results; renames invalidate their entries.
const statCacheSize = 512

// Session is an explicit scope for Perforce commands. Open it once, hand it
// to NewPerforce, and Close it when the work is done. Every command shells
// out to the p4 CLI with -ztag output.
type Session struct {
	opts  SessionOptions
	root  string
	open  bool
	stats *lru.Cache[string, map[string]string]
}

// OpenSession starts a session and verifies the server is reachable by
// running p4 info. The client workspace root is captured for path probes.
func OpenSession(opts SessionOptions) (*Session, error) {
	if opts.Binary == "" {
		opts.Binary = "p4"
	}
	cache, err := lru.New[string, map[string]string](statCacheSize)
	if err != nil {
		return nil, err
	}
	s := &Session{opts: opts, stats: cache, open: true}
	recs, err := s.run("info")
	if err != nil {
		return nil, fmt.Errorf("opening perforce session: %w", err)
	}
	if len(recs) > 0 {
		s.root = strings.ReplaceAll(recs[0]["clientRoot"], "\\", "/")
	}
	return s, nil
}

// Root returns the client workspace root reported by p4 info.
func (s *Session) Root() string { return s.root }

// Close ends the session. Commands on a closed session fail.
func (s *Session) Close() error {
	s.open = false
	s.stats.Purge()
	return nil
}

func (s *Session) run(args ...string) ([]map[string]string, error) {
	if !s.open {
		return nil, errors.New("perforce session is closed")
	}
	argv := []string{"-ztag"}
	if s.opts.Port != "" {
		argv = append(argv, "-p", s.opts.Port)
	}
	if s.opts.User != "" {
		argv = append(argv, "-u", s.opts.User)
	}
	if s.opts.Client != "" {
		argv = append(argv, "-c", s.opts.Client)
	}
	argv = append(argv, args...)

	cmd := exec.Command(s.opts.Binary, argv...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("p4 %s: %v: %s",
			strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return parseZtag(stdout.String()), nil
}

// parseZtag splits -ztag output into records. Each "... key value" line
// adds a field; a blank line closes the record.
func parseZtag(out string) []map[string]string {
	var recs []map[string]string
	cur := map[string]string{}
	flush := func() {
		if len(cur) > 0 {
			recs = append(recs, cur)
			cur = map[string]string{}
		}
	}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			flush()
			continue
		}
		rest, ok := strings.CutPrefix(line, "... ")
		if !ok {
			continue
		}
		key, value, _ := strings.Cut(rest, " ")
		cur[key] = value
	}
	flush()
	return recs
}

// fstat returns the fstat record for a path, nil when the server has no
// file there. Results are memoized per session.
func (s *Session) fstat(path string) (map[string]string, error) {
	if rec, ok := s.stats.Get(path); ok {
		return rec, nil
	}
	recs, err := s.run("fstat", path)
	if err != nil {
		if isNoSuchFile(err) {
			s.stats.Add(path, nil)
			return nil, nil
		}
		return nil, err
	}
	var rec map[string]string
	if len(recs) > 0 {
		rec = recs[0]
	}
	s.stats.Add(path, rec)
	return rec, nil
}

func (s *Session) invalidate(paths ...string) {
	for _, p := range paths {
		s.stats.Remove(p)
	}
}

// isNoSuchFile reports whether a p4 error just means the path is unknown to
// the server rather than the command failing.
func isNoSuchFile(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "no such file(s)") ||
		strings.Contains(msg, "not in client view") ||
		strings.Contains(msg, "is not under client's root")
}

// Perforce is the version-control provider. It owns depot-syntax paths and
// anything under the session's client root.
type Perforce struct {
	s *Session
}

// NewPerforce returns a provider backed by an open session.
func NewPerforce(s *Session) *Perforce { return &Perforce{s: s} }

func (p *Perforce) Name() string { return "perforce" }

func (p *Perforce) CanHandle(path string) bool {
	if strings.HasPrefix(path, "//") {
		return true
	}
	root := p.s.Root()
	return root != "" && (path == root || strings.HasPrefix(path, root+"/"))
}

// Tracked reports whether the path has a head revision that is not deleted,
// or is open for add in the client.
func (p *Perforce) Tracked(path string) (bool, error) {
	rec, err := p.s.fstat(path)
	if err != nil {
		return false, err
	}
	if rec == nil {
		return false, nil
	}
	switch rec["headAction"] {
	case "delete", "move/delete":
		return rec["action"] == "add" || rec["action"] == "move/add", nil
	}
	if _, ok := rec["headRev"]; ok {
		return true, nil
	}
	return rec["action"] != "", nil
}

// Exists reports tracked paths as existing; local-syntax paths additionally
// fall back to a disk check so unsubmitted files still count.
func (p *Perforce) Exists(path string) (bool, error) {
	tracked, err := p.Tracked(path)
	if err != nil {
		return false, err
	}
	if tracked || strings.HasPrefix(path, "//") {
		return tracked, nil
	}
	return Disk{}.Exists(path)
}

// List returns the non-deleted files directly inside dir. Depot-syntax
// directories list in depot syntax, local ones in local syntax.
func (p *Perforce) List(dir string) ([]string, error) {
	recs, err := p.s.run("fstat", "-T", "depotFile clientFile headAction", dir+"/*")
	if err != nil {
		if isNoSuchFile(err) {
			return nil, nil
		}
		return nil, err
	}
	field := "clientFile"
	if strings.HasPrefix(dir, "//") {
		field = "depotFile"
	}
	var out []string
	for _, rec := range recs {
		switch rec["headAction"] {
		case "delete", "move/delete":
			continue
		}
		if f := rec[field]; f != "" {
			out = append(out, strings.ReplaceAll(f, "\\", "/"))
		}
	}
	sort.Strings(out)
	return out, nil
}

// Move opens the file for edit and moves it in one pending change.
func (p *Perforce) Move(oldPath, newPath string) error {
	if _, err := p.s.run("edit", oldPath); err != nil {
		return err
	}
	if _, err := p.s.run("move", oldPath, newPath); err != nil {
		return err
	}
	p.s.invalidate(oldPath, newPath)
	return nil
}
