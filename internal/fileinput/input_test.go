package fileinput

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/gofunge/internal/runeio"
)

type namedReader struct {
	io.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }

func readAll(t *testing.T, in *Input) string {
	var sb strings.Builder
	for {
		r, _, err := in.ReadRune()
		if err == io.EOF {
			return sb.String()
		}
		require.NoError(t, err)
		sb.WriteRune(r)
	}
}

func Test_Input_queue(t *testing.T) {
	in := Input{Queue: []io.Reader{
		namedReader{strings.NewReader("ab\ncd"), "first"},
		namedReader{strings.NewReader("ef\n"), "second"},
	}}
	assert.Equal(t, "ab\ncdef\n", readAll(t, &in))
	assert.Equal(t, Location{"second", 1}, in.Last.Location)
	assert.Equal(t, "ef", in.Last.Buffer.String())
	assert.Equal(t, `second:1 "ef"`, in.Last.String())
}

func Test_Input_unread(t *testing.T) {
	in := Input{Queue: []io.Reader{strings.NewReader("12\n34")}}
	n, err := runeio.ReadInt(&in, 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)

	r, _, err := in.ReadRune()
	require.NoError(t, err)
	assert.Equal(t, '\n', r, "terminator was unread")

	require.NoError(t, in.UnreadRune())
	assert.Equal(t, ErrUnread, in.UnreadRune(), "only one rune may be unread")
	r, _, _ = in.ReadRune()
	assert.Equal(t, '\n', r)

	n, err = runeio.ReadInt(&in, 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(34), n)

	_, _, err = in.ReadRune()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, ErrUnread, in.UnreadRune())
}
