// Package batch runs the line-oriented text protocol over a table.
package batch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gamma/internal/game"
	"gamma/internal/table"

	"go.uber.org/zap"
)

const whitespace = "\t \v\f\r"

var argCount = map[byte]int{
	'B': 4, 'I': 4,
	'm': 3, 'g': 3,
	'b': 1, 'f': 1, 'q': 1,
	'p': 0,
}

// Interpreter holds the state of one protocol session. Answers go to out,
// "ERROR n" lines to errOut.
type Interpreter struct {
	tables *table.Manager
	out    io.Writer
	errOut io.Writer
	log    *zap.Logger

	table *table.Table
	line  int
}

func New(m *table.Manager, out, errOut io.Writer, log *zap.Logger) *Interpreter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interpreter{tables: m, out: out, errOut: errOut, log: log}
}

// Table is the game created by the session, nil before B or I succeeds.
func (in *Interpreter) Table() *table.Table { return in.table }

// Run processes r until EOF. When an I command creates a game Run stops
// reading and returns that table; the caller continues interactively.
func (in *Interpreter) Run(r io.Reader) (*table.Table, error) {
	br := bufio.NewReader(r)
	for {
		text, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read line %d: %w", in.line+1, err)
		}
		in.line++

		if errors.Is(err, io.EOF) {
			// a last line without its newline is malformed
			if text != "" {
				return nil, in.fail("unterminated line")
			}
			return nil, nil
		}

		interactive, werr := in.exec(strings.TrimSuffix(text, "\n"))
		if werr != nil {
			return nil, werr
		}
		if interactive {
			return in.table, nil
		}
	}
}

// exec handles one line without its newline. It reports whether the line
// switched the session to interactive mode.
func (in *Interpreter) exec(stmt string) (bool, error) {
	if stmt == "" || stmt[0] == '#' {
		return false, nil
	}
	cmd, raw := stmt[0], stmt[1:]
	if raw != "" && strings.IndexByte(whitespace, raw[0]) < 0 {
		return false, in.fail("command not separated from arguments")
	}
	want, known := argCount[cmd]
	if !known {
		return false, in.fail("unknown command")
	}
	args, ok := parseArgs(raw, want)
	if !ok {
		return false, in.fail("bad arguments")
	}

	if in.table == nil {
		return in.start(cmd, args)
	}
	return false, in.play(cmd, args)
}

func (in *Interpreter) start(cmd byte, args []uint32) (bool, error) {
	if cmd != 'B' && cmd != 'I' {
		return false, in.fail("no game in progress")
	}
	t, err := in.tables.Create(int(args[0]), int(args[1]), args[2], args[3])
	if err != nil {
		return false, in.fail(err.Error())
	}
	in.table = t
	if cmd == 'I' {
		return true, nil
	}
	_, err = fmt.Fprintf(in.out, "OK %d\n", in.line)
	return false, err
}

func (in *Interpreter) play(cmd byte, args []uint32) error {
	var err error
	switch cmd {
	case 'm':
		_, err = fmt.Fprintln(in.out, flag(in.table.Move(game.Player(args[0]), int(args[1]), int(args[2]))))
	case 'g':
		_, err = fmt.Fprintln(in.out, flag(in.table.GoldenMove(game.Player(args[0]), int(args[1]), int(args[2]))))
	case 'b':
		_, err = fmt.Fprintln(in.out, in.table.BusyFields(game.Player(args[0])))
	case 'f':
		_, err = fmt.Fprintln(in.out, in.table.FreeFields(game.Player(args[0])))
	case 'q':
		_, err = fmt.Fprintln(in.out, flag(in.table.GoldenPossible(game.Player(args[0]))))
	case 'p':
		_, err = io.WriteString(in.out, in.table.Render())
	default:
		return in.fail("game already started")
	}
	return err
}

func (in *Interpreter) fail(reason string) error {
	in.log.Debug("batch line rejected", zap.Int("line", in.line), zap.String("reason", reason))
	_, err := fmt.Fprintf(in.errOut, "ERROR %d\n", in.line)
	return err
}

// parseArgs accepts only digits and protocol whitespace, exactly want
// values, each fitting in 32 bits.
func parseArgs(raw string, want int) ([]uint32, bool) {
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if (c < '0' || c > '9') && strings.IndexByte(whitespace, c) < 0 {
			return nil, false
		}
	}
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return strings.ContainsRune(whitespace, r)
	})
	if len(fields) != want {
		return nil, false
	}
	out := make([]uint32, 0, want)
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil || v > math.MaxUint32 {
			return nil, false
		}
		out = append(out, uint32(v))
	}
	return out, true
}

func flag(ok bool) int {
	if ok {
		return 1
	}
	return 0
}
