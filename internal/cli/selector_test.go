package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelectorNonTTY(t *testing.T) {
	_, ok := NewSelector("auto", strings.NewReader(""), io.Discard).(*plainSelector)
	assert.True(t, ok)
	_, ok = NewSelector("survey", strings.NewReader(""), io.Discard).(surveySelector)
	assert.True(t, ok)
}

func TestPlainSelect(t *testing.T) {
	var out bytes.Buffer
	sel := newPlainSelector(strings.NewReader("9\n2\n\n"), &out)
	opts := []string{"AAPL - APPLE INC", "APLE - APPLE HOSPITALITY"}

	got, err := sel.Select("Select a stock:", opts, opts[0])
	require.NoError(t, err)
	assert.Equal(t, opts[1], got)
	assert.Contains(t, out.String(), "Enter a number between 1 and 2.")

	got, err = sel.Select("Select a stock:", opts, opts[1])
	require.NoError(t, err)
	assert.Equal(t, opts[1], got, "blank input takes the default")

	_, err = sel.Select("Select a stock:", opts, "")
	assert.ErrorIs(t, err, io.EOF)

	_, err = sel.Select("x", nil, "")
	assert.ErrorIs(t, err, errNoOptions)
}

func TestPlainInput(t *testing.T) {
	sel := newPlainSelector(strings.NewReader("apple\n\nlast"), io.Discard)

	v, err := sel.Input("Query", "")
	require.NoError(t, err)
	assert.Equal(t, "apple", v)

	v, err = sel.Input("Period", "quarterly")
	require.NoError(t, err)
	assert.Equal(t, "quarterly", v)

	v, err = sel.Input("News", "")
	require.NoError(t, err)
	assert.Equal(t, "last", v)
}
