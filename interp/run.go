package interp

import (
	"github.com/rs/zerolog/log"
	"github.com/timewinder-dev/murust/memory"
	"github.com/timewinder-dev/murust/syntax"
	"github.com/timewinder-dev/murust/vm"
)

// Run executes one top-level instruction against mem. On failure mem keeps
// every effect that happened before the error, and all scopes opened by the
// instruction are closed again.
func Run(s vm.Stmt, mem *memory.Memory) (Result, error) {
	depth := mem.Stack().Depth()
	r, err := Exec(s, mem)
	if d := mem.Stack().Depth(); d != depth {
		log.Warn().Int("before", depth).Int("after", d).Msg("run: scope depth changed")
	}
	if err != nil {
		log.Debug().Str("stmt", s.String()).Err(err).Msg("run: failed")
		return Result{}, err
	}
	log.Debug().Str("stmt", s.String()).Str("id", r.ID.String()).Str("value", r.Value.String()).Msg("run")
	return r, nil
}

// RunSource parses src as one instruction and runs it.
func RunSource(src string, mem *memory.Memory) (Result, error) {
	s, err := syntax.ParseStmt(src)
	if err != nil {
		return Result{}, err
	}
	return Run(s, mem)
}
