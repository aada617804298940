package session

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownCommand = errors.New("unknown command")

type metaCommand struct {
	name string
	help string
	run  func(s *Session) error
}

var metaCommands []metaCommand

func init() {
	metaCommands = []metaCommand{
		{"help", "list commands", (*Session).metaHelp},
		{"mem", "dump stack frames and heap slots", (*Session).metaMem},
		{"undo", "revert the last successful instruction", (*Session).metaUndo},
		{"history", "list stored snapshots, oldest first", (*Session).metaHistory},
		{"stats", "show snapshot cache counters", (*Session).metaStats},
		{"quit", "end the session", func(*Session) error { return ErrQuit }},
	}
}

func (s *Session) meta(line string) error {
	name := strings.TrimSpace(strings.TrimPrefix(line, ":"))
	for _, c := range metaCommands {
		if c.name == name {
			return c.run(s)
		}
	}
	s.println(s.printer.Notice(fmt.Sprintf("unknown command :%s (try :help)", name)))
	return fmt.Errorf("%w :%s", ErrUnknownCommand, name)
}

func (s *Session) metaHelp() error {
	for _, c := range metaCommands {
		s.println(fmt.Sprintf("  :%-8s %s", c.name, c.help))
	}
	return nil
}

func (s *Session) metaMem() error {
	fmt.Fprint(s.out, s.printer.Memory(s.mem.Snapshot()))
	return nil
}

func (s *Session) metaUndo() error {
	src, err := s.Undo()
	if err != nil {
		s.println(s.printer.Notice(err.Error()))
		return err
	}
	s.println(s.printer.Notice(fmt.Sprintf("undid `%s`", src)))
	return nil
}

func (s *Session) metaHistory() error {
	if len(s.history) == 0 {
		s.println(s.printer.Notice("no snapshots"))
		return nil
	}
	for i, u := range s.history {
		s.println(fmt.Sprintf("  %d %s %s", i, u.hash, u.src))
	}
	return nil
}

func (s *Session) metaStats() error {
	st := s.store.Stats()
	s.println(fmt.Sprintf("  cache %d/%d, %d hits, %d misses", st.Size, st.MaxSize, st.Hits, st.Misses))
	return nil
}
