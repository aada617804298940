package session

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timewinder-dev/murust/syntax"
	"github.com/timewinder-dev/murust/vm"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Color = ColorNever
	cfg.Banner = false
	return cfg
}

func newTestSession(t *testing.T, cfg Config) (*Session, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	s, err := New(cfg, &out)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, &out
}

func runScript(t *testing.T, name string, opts ScriptOptions) {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", "scripts", name+".mu"))
	require.NoError(t, err)
	defer f.Close()

	s, out := newTestSession(t, testConfig())
	_, err = s.Script(f, opts)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, out.Bytes())
}

func TestTranscripts(t *testing.T) {
	for _, name := range []string{"basics", "heap", "pointers", "moves_undo"} {
		t.Run(name, func(t *testing.T) {
			runScript(t, name, ScriptOptions{Echo: true})
		})
	}
	t.Run("trace", func(t *testing.T) {
		runScript(t, "trace", ScriptOptions{Echo: true, Trace: true})
	})
}

func TestScriptFailures(t *testing.T) {
	src := "let x = 1\ny\nlet x = 2\nx\n"

	s, _ := newTestSession(t, testConfig())
	failed, err := s.Script(strings.NewReader(src), ScriptOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, failed)

	s, out := newTestSession(t, testConfig())
	failed, err = s.Script(strings.NewReader(src), ScriptOptions{FailFast: true})
	require.NoError(t, err)
	assert.Equal(t, 1, failed)
	assert.Equal(t, "x : isize = 1\nEvaluation Error: Undefined identifier `y`.\n", out.String())
}

func TestScriptQuit(t *testing.T) {
	s, out := newTestSession(t, testConfig())
	failed, err := s.Script(strings.NewReader("1\n:quit\n2\n"), ScriptOptions{})
	require.NoError(t, err)
	assert.Zero(t, failed)
	assert.Equal(t, "- : isize = 1\n", out.String())
}

func TestExecErrors(t *testing.T) {
	s, _ := newTestSession(t, testConfig())
	assert.NoError(t, s.Exec("   "))
	assert.ErrorIs(t, s.Exec("let x"), syntax.ErrCannotParse)
	assert.ErrorIs(t, s.Exec("x"), vm.ErrUndefined)
	assert.ErrorIs(t, s.Exec(":frobnicate"), ErrUnknownCommand)
	assert.ErrorIs(t, s.Exec(":quit"), ErrQuit)
}

func TestUndoHistory(t *testing.T) {
	s, out := newTestSession(t, testConfig())
	_, err := s.Undo()
	assert.ErrorIs(t, err, ErrNothingToUndo)

	require.NoError(t, s.Exec("let mut x = 1"))
	require.NoError(t, s.Exec("x = 2"))
	require.Error(t, s.Exec("x = true"))
	assert.Len(t, s.History(), 2, "failed lines are not recorded")

	src, err := s.Undo()
	require.NoError(t, err)
	assert.Equal(t, "x = 2", src)
	v, err := s.Memory().Find(vm.NewIdentifier("x"))
	require.NoError(t, err)
	assert.Equal(t, vm.IntValue(1), v)

	_, err = s.Undo()
	require.NoError(t, err)
	_, err = s.Memory().Find(vm.NewIdentifier("x"))
	assert.ErrorIs(t, err, vm.ErrUndefined)

	out.Reset()
	require.NoError(t, s.Exec(":history"))
	assert.Equal(t, "no snapshots\n", out.String())
	assert.Error(t, s.Exec(":undo"))
}

func TestHistoryLimit(t *testing.T) {
	cfg := testConfig()
	cfg.History = 2
	s, out := newTestSession(t, cfg)
	for _, line := range []string{"1", "2", "3", "4"} {
		require.NoError(t, s.Exec(line))
	}
	h := s.History()
	require.Len(t, h, 2)

	out.Reset()
	require.NoError(t, s.Exec(":history"))
	assert.Equal(t, "  0 "+h[0].String()+" 3\n  1 "+h[1].String()+" 4\n", out.String())

	cfg.History = 0
	s, _ = newTestSession(t, cfg)
	require.NoError(t, s.Exec("1"))
	assert.Empty(t, s.History())
}

func TestUndoSharesUnchangedSnapshots(t *testing.T) {
	s, _ := newTestSession(t, testConfig())
	require.NoError(t, s.Exec("1"))
	require.NoError(t, s.Exec("2"))
	h := s.History()
	require.Len(t, h, 2)
	assert.Equal(t, h[0], h[1], "identical memories hash identically")
}

func TestSQLiteStore(t *testing.T) {
	cfg := testConfig()
	cfg.Store = filepath.Join(t.TempDir(), "snapshots.db")
	s, _ := newTestSession(t, cfg)
	require.NoError(t, s.Exec("let p = new"))
	require.NoError(t, s.Exec("*p = 3"))
	src, err := s.Undo()
	require.NoError(t, err)
	assert.Equal(t, "*p = 3", src)
	require.Error(t, s.Exec("*p"))
}

func TestStats(t *testing.T) {
	cfg := testConfig()
	cfg.CacheSize = 8
	s, out := newTestSession(t, cfg)
	require.NoError(t, s.Exec("let x = 1"))
	require.NoError(t, s.Exec(":undo"))

	out.Reset()
	require.NoError(t, s.Exec(":stats"))
	st := s.store.Stats()
	assert.Equal(t, 8, st.MaxSize)
	assert.Positive(t, st.Misses, "the undo read went to the backing store")
	assert.Equal(t, fmt.Sprintf("  cache %d/8, %d hits, %d misses\n", st.Size, st.Hits, st.Misses), out.String())
}

func TestInteractive(t *testing.T) {
	cfg := testConfig()
	cfg.Prompt = "> "
	s, out := newTestSession(t, cfg)
	require.NoError(t, s.Interactive(strings.NewReader("let x = 4\n:help\n")))
	want := "> x : isize = 4\n" +
		"> " +
		"  :help     list commands\n" +
		"  :mem      dump stack frames and heap slots\n" +
		"  :undo     revert the last successful instruction\n" +
		"  :history  list stored snapshots, oldest first\n" +
		"  :stats    show snapshot cache counters\n" +
		"  :quit     end the session\n" +
		"> \n"
	assert.Equal(t, want, out.String())

	cfg.Banner = true
	s, out = newTestSession(t, cfg)
	require.NoError(t, s.Interactive(strings.NewReader(":quit\n")))
	assert.Equal(t, "µRust session "+s.ID.String()+", :help for commands\n> ", out.String())
}

func TestPrinterColor(t *testing.T) {
	plain := Printer{}
	assert.Equal(t, "- : unit = ()", plain.Result(vm.Identifier{}, vm.Unit))
	assert.Equal(t, "x : bool = true", plain.Result(vm.NewIdentifier("x"), vm.BoolTrue))

	// Whether escapes are emitted also depends on the terminal, so only
	// the text is checked.
	colored := Printer{Color: true}
	assert.Contains(t, colored.Result(vm.NewIdentifier("x"), vm.BoolTrue), "true")
}
