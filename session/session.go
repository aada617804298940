package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/timewinder-dev/murust/cas"
	"github.com/timewinder-dev/murust/interp"
	"github.com/timewinder-dev/murust/memory"
	"github.com/timewinder-dev/murust/syntax"
)

// ErrQuit is returned by Exec for the :quit command.
var ErrQuit = errors.New("quit")

// Session is one interpreter run against a single persistent Memory. Lines
// go through Exec one at a time; output is written to the configured
// writer.
type Session struct {
	ID      uuid.UUID
	cfg     Config
	out     io.Writer
	printer Printer
	mem     *memory.Memory
	store   *cas.LRUCache
	history []undoPoint
	lines   int
}

// undoPoint is the memory before a successful instruction, stored in the
// snapshot store under hash.
type undoPoint struct {
	hash cas.Hash
	src  string
}

// New opens the snapshot store named by cfg (in memory when empty) and
// starts a session with empty memory.
func New(cfg Config, out io.Writer) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		ID:      uuid.New(),
		cfg:     cfg,
		out:     out,
		printer: Printer{Color: cfg.UseColor(out)},
		mem:     memory.New(),
	}
	var store cas.Store = cas.NewMemoryStore()
	if cfg.Store != "" {
		sq, err := cas.OpenSQLite(cfg.Store, s.ID)
		if err != nil {
			return nil, fmt.Errorf("opening store: %w", err)
		}
		store = sq
	}
	s.store = cas.NewLRUCache(store, cfg.CacheSize)
	log.Debug().Str("session", s.ID.String()).Str("store", cfg.Store).Msg("session: started")
	return s, nil
}

func (s *Session) Close() error {
	return s.store.Close()
}

func (s *Session) Memory() *memory.Memory { return s.mem }

// History returns the snapshot hashes available to :undo, oldest first.
func (s *Session) History() []cas.Hash {
	out := make([]cas.Hash, len(s.history))
	for i, u := range s.history {
		out[i] = u.hash
	}
	return out
}

func (s *Session) println(str string) {
	fmt.Fprintln(s.out, str)
}

// Exec runs one line: a meta command, an instruction, or nothing at all.
// The outcome is printed; the returned error reports a failed line.
func (s *Session) Exec(line string) error {
	s.lines++
	line = strings.TrimSpace(line)
	log.Debug().Str("session", s.ID.String()).Int("line", s.lines).Str("src", line).Msg("session: exec")

	if strings.HasPrefix(line, ":") {
		return s.meta(line)
	}
	if syntax.Blank(line) {
		return nil
	}

	stmt, err := syntax.ParseStmt(line)
	if err != nil {
		s.println(s.printer.ParseError(err))
		return err
	}

	before := s.mem.Snapshot()
	r, err := interp.Run(stmt, s.mem)
	if err != nil {
		s.println(s.printer.EvalError(err))
		return err
	}
	s.record(before, line)
	s.println(s.printer.Result(r.ID, r.Value))
	return nil
}

// record keeps before as the undo point for the instruction that just
// succeeded. Failing to store it only costs the undo step.
func (s *Session) record(before *memory.Snapshot, src string) {
	if s.cfg.History == 0 {
		return
	}
	h, err := cas.PutSnapshot(s.store, before)
	if err != nil {
		log.Warn().Err(err).Str("session", s.ID.String()).Msg("session: snapshot not stored")
		return
	}
	s.history = append(s.history, undoPoint{hash: h, src: src})
	if over := len(s.history) - s.cfg.History; over > 0 {
		s.history = s.history[over:]
	}
	log.Debug().Str("session", s.ID.String()).Str("hash", h.String()).Msg("session: snapshot")
}

var ErrNothingToUndo = errors.New("nothing to undo")

// Undo restores the memory as it was before the last successful
// instruction still in the history, and returns that instruction.
func (s *Session) Undo() (string, error) {
	if len(s.history) == 0 {
		return "", ErrNothingToUndo
	}
	u := s.history[len(s.history)-1]
	snap, err := cas.GetSnapshot(s.store, u.hash)
	if err != nil {
		return "", err
	}
	mem, err := memory.Restore(snap)
	if err != nil {
		return "", err
	}
	s.history = s.history[:len(s.history)-1]
	s.mem = mem
	log.Info().Str("session", s.ID.String()).Str("hash", u.hash.String()).Msg("session: undo")
	return u.src, nil
}

func isInstruction(line string) bool {
	line = strings.TrimSpace(line)
	return !strings.HasPrefix(line, ":") && !syntax.Blank(line)
}

// ScriptOptions control Script.
type ScriptOptions struct {
	// Echo prints every line after the prompt before its output.
	Echo bool
	// Trace dumps memory after every instruction.
	Trace bool
	// FailFast stops at the first failing line.
	FailFast bool
}

// Script feeds every line of in to Exec and returns the number of lines
// that failed.
func (s *Session) Script(in io.Reader, opts ScriptOptions) (int, error) {
	failed := 0
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := sc.Text()
		if opts.Echo {
			fmt.Fprintf(s.out, "%s%s\n", s.cfg.Prompt, line)
		}
		err := s.Exec(line)
		if errors.Is(err, ErrQuit) {
			break
		}
		if err != nil {
			failed++
			if opts.FailFast {
				break
			}
		}
		if opts.Trace && isInstruction(line) {
			fmt.Fprint(s.out, s.printer.Memory(s.mem.Snapshot()))
		}
	}
	return failed, sc.Err()
}

// Interactive prompts for lines on in until end of input or :quit.
func (s *Session) Interactive(in io.Reader) error {
	if s.cfg.Banner {
		s.println(s.printer.Notice(fmt.Sprintf("µRust session %s, :help for commands", s.ID)))
	}
	sc := bufio.NewScanner(in)
	fmt.Fprint(s.out, s.cfg.Prompt)
	for sc.Scan() {
		if err := s.Exec(sc.Text()); errors.Is(err, ErrQuit) {
			return nil
		}
		fmt.Fprint(s.out, s.cfg.Prompt)
	}
	fmt.Fprintln(s.out)
	return sc.Err()
}
