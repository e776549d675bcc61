package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"User 123", []string{"User", "123"}},
		{`  User   "a b"  'c d' `, []string{"User", "a b", "c d"}},
		{`name "John`, []string{"name", "John"}},
		{`User ""`, []string{"User"}},
		{`say "it's"`, []string{"say", "it's"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseArgs(tt.in))
		})
	}
}

func TestScanArgsOffsets(t *testing.T) {
	arg := `User "12 3" {"a": 1}`
	tokens := scanArgs(arg)
	require.GreaterOrEqual(t, len(tokens), 2)
	assert.Equal(t, "12 3", tokens[1].text)
	assert.Equal(t, ` {"a": 1}`, arg[tokens[1].end:])
}

func TestSplitCallArgs(t *testing.T) {
	args, err := splitCallArgs(`"id", {"a": 1, "b": [1, 2]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{`"id"`, `{"a": 1, "b": [1, 2]}`}, args)

	args, err = splitCallArgs(`"id", "name", "x, y"`)
	require.NoError(t, err)
	assert.Equal(t, []string{`"id"`, `"name"`, `"x, y"`}, args)

	args, err = splitCallArgs(`  `)
	require.NoError(t, err)
	assert.Empty(t, args)

	_, err = splitCallArgs(`"id", `)
	assert.ErrorIs(t, err, ErrInvalidCommand)

	_, err = splitCallArgs(`"id`)
	assert.ErrorIs(t, err, ErrInvalidCommand)
}

func TestRewriteDotted(t *testing.T) {
	tests := []struct {
		line string
		verb string
		arg  string
	}{
		{`User.all()`, "all", "User"},
		{`City.count()`, "count", "City"},
		{`User.show("123")`, "show", "User 123"},
		{`User.destroy('123')`, "destroy", "User 123"},
		{`User.show(“123”)`, "show", "User 123"},
		{`User.update("123", "name", "John Smith")`, "update", `User 123 name "John Smith"`},
		{`User.update("123", "age", 30)`, "update", "User 123 age 30"},
		{`User.update(“123”, “name”, “Ann”)`, "update", "User 123 name Ann"},
		{`User.update("1 2", {"age": 30})`, "update", `User "1 2" {"age": 30}`},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			verb, arg, err := rewriteDotted(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.verb, verb)
			assert.Equal(t, tt.arg, arg)
		})
	}

	_, _, err := rewriteDotted(`Nope.all()`)
	assert.ErrorIs(t, err, ErrClassUnknown)
	_, _, err = rewriteDotted(`User.create()`)
	assert.ErrorIs(t, err, ErrInvalidCommand)
}

func TestQuoteArg(t *testing.T) {
	assert.Equal(t, "abc", quoteArg("abc"))
	assert.Equal(t, `"a b"`, quoteArg("a b"))
	assert.Equal(t, `'say "hi"'`, quoteArg(`say "hi"`))
	assert.Equal(t, `""`, quoteArg(""))
}
