package batch

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"gamma/internal/store"
	"gamma/internal/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, input string) (stdout, stderr string, tb *table.Table) {
	t.Helper()
	var out, errOut bytes.Buffer
	m := table.NewManager(store.NewMemoryStore(), nil, nil, 0)
	in := New(m, &out, &errOut, nil)
	tb, err := in.Run(strings.NewReader(input))
	require.NoError(t, err)
	return out.String(), errOut.String(), tb
}

func TestSession(t *testing.T) {
	input := strings.Join([]string{
		"# comment",
		"",
		"B 3 2 2 2",
		"m 1 0 0",
		"m 1 0 0",
		"m 2 2 1",
		"b 1",
		"f 1",
		"q 2",
		"g 2 0 0",
		"p",
		"x",
		"B 1 1 1 1",
		"m1 0 0",
		"m 1 0",
		"m 1 a 0",
		"m 1 4294967296 0",
		"",
	}, "\n")

	stdout, stderr, tb := run(t, input)
	assert.Nil(t, tb)
	assert.Equal(t, "OK 3\n1\n0\n1\n1\n4\n1\n1\n..2\n2..\n", stdout)
	assert.Equal(t, "ERROR 12\nERROR 13\nERROR 14\nERROR 15\nERROR 16\nERROR 17\n", stderr)
}

func TestCommandsBeforeGame(t *testing.T) {
	stdout, stderr, _ := run(t, "m 1 0 0\nB 0 1 1 1\np\nB 2 2 1 1\n")
	assert.Equal(t, "OK 4\n", stdout)
	assert.Equal(t, "ERROR 1\nERROR 2\nERROR 3\n", stderr)
}

func TestUnterminatedLastLine(t *testing.T) {
	stdout, stderr, _ := run(t, "B 2 2 1 1\np")
	assert.Equal(t, "OK 1\n", stdout)
	assert.Equal(t, "ERROR 2\n", stderr)
}

func TestEmptyInput(t *testing.T) {
	stdout, stderr, tb := run(t, "")
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
	assert.Nil(t, tb)
}

func TestProtocolWhitespace(t *testing.T) {
	stdout, stderr, _ := run(t, "B\t2 \v2\f1\r1\r\nm 1 1 1 \n \nm\n")
	assert.Equal(t, "OK 1\n1\n", stdout)
	assert.Equal(t, "ERROR 3\nERROR 4\n", stderr)
}

func TestLargeArguments(t *testing.T) {
	stdout, stderr, _ := run(t, "B 4294967295 4294967295 1 1\nB 2 2 4294967295 1\nm 4294967295 0 0\nm 1 4294967295 0\nb 4294967295\n")
	assert.Equal(t, "OK 2\n1\n0\n1\n", stdout)
	assert.Equal(t, "ERROR 1\n", stderr)
}

func TestInteractiveSwitch(t *testing.T) {
	stdout, stderr, tb := run(t, "# setup\nI 4 3 2 1\nm 1 0 0\n")
	require.NotNil(t, tb)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
	assert.Equal(t, 4, tb.Width())
	assert.Equal(t, 3, tb.Height())
	assert.Equal(t, uint64(0), tb.BusyFields(1))
}

func TestInteractiveRejectedOnceStarted(t *testing.T) {
	stdout, stderr, tb := run(t, "B 2 2 1 1\nI 2 2 1 1\n")
	assert.Nil(t, tb)
	assert.Equal(t, "OK 1\n", stdout)
	assert.Equal(t, "ERROR 2\n", stderr)
}

func TestReadError(t *testing.T) {
	boom := errors.New("boom")
	in := New(table.NewManager(store.NewMemoryStore(), nil, nil, 0), &bytes.Buffer{}, &bytes.Buffer{}, nil)
	_, err := in.Run(iotest.ErrReader(boom))
	assert.ErrorIs(t, err, boom)
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		raw  string
		want int
		args []uint32
		ok   bool
	}{
		{"", 0, []uint32{}, true},
		{" 1 2 3", 3, []uint32{1, 2, 3}, true},
		{"\t007\v8", 2, []uint32{7, 8}, true},
		{" 1 2", 3, nil, false},
		{" 1 2 3 4", 3, nil, false},
		{" -1", 1, nil, false},
		{" +1", 1, nil, false},
		{" 1\n", 1, nil, false},
		{" 4294967295", 1, []uint32{4294967295}, true},
		{" 4294967296", 1, nil, false},
		{" 99999999999999999999999", 1, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			args, ok := parseArgs(tt.raw, tt.want)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.args, args)
			}
		})
	}
}
