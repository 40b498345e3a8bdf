package ui

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/planrun/pkg/planrun"
)

func TestPrompter_ReadQuery(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("  What is 5 plus 3?  \nquit"), &out)

	q, err := p.ReadQuery(context.Background(), "> ")
	require.NoError(t, err)
	assert.Equal(t, planrun.Query("What is 5 plus 3?"), q)

	q, err = p.ReadQuery(context.Background(), "> ")
	require.NoError(t, err, "last line without newline is still returned")
	assert.True(t, q.IsQuit())

	_, err = p.ReadQuery(context.Background(), "> ")
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "> > > ", out.String())
}

func TestPrompter_Cancelled(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPrompter(pr, io.Discard).ReadQuery(ctx, "> ")
	assert.ErrorIs(t, err, context.Canceled)
}
