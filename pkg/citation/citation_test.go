package citation_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-citation/pkg/citation"
)

const nestedTemplate = `{@token1}{, @token2 literal {@token3} literal}`

func TestNew_InvalidTemplate(t *testing.T) {
	templates := []string{
		"{@title}{, by @author} }",
		"{@title}{, {by @author }",
		"{ {@title {, by @author}",
		"{@title}{, by author}",
		"@title",
	}

	for _, tpl := range templates {
		t.Run(tpl, func(t *testing.T) {
			b, err := citation.New(tpl, map[string]string{})
			require.ErrorIs(t, err, citation.ErrInvalidTemplate)
			assert.Nil(t, b)
		})
	}
}

func TestNew_InvalidDataMapping(t *testing.T) {
	var nilMap *map[string]string

	tests := []struct {
		name string
		data any
	}{
		{name: "nil", data: nil},
		{name: "string", data: "title=foo"},
		{name: "slice", data: []string{"foo"}},
		{name: "int keys", data: map[int]string{1: "foo"}},
		{name: "nil pointer", data: nilMap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := citation.New("{@title}", tt.data)
			require.ErrorIs(t, err, citation.ErrInvalidDataMapping)
		})
	}
}

func TestNew_TemplateCheckedBeforeData(t *testing.T) {
	_, err := citation.New("{@title", "not a map")
	require.ErrorIs(t, err, citation.ErrInvalidTemplate)
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		want     string
	}{
		{
			name:     "all tokens set",
			template: "{@token1}{, @token2}",
			data:     map[string]string{"token1": "value1", "token2": "value2"},
			want:     "value1, value2",
		},
		{
			name:     "empty token drops fragment",
			template: "{@token1}{, @token2}",
			data:     map[string]string{"token1": "value1", "token2": ""},
			want:     "value1",
		},
		{
			name:     "missing token drops fragment",
			template: "{@token1}{, @token2}",
			data:     map[string]string{"token1": "value1"},
			want:     "value1",
		},
		{
			name:     "same token twice",
			template: "{@token1}{, @token1}",
			data:     map[string]string{"token1": "value1"},
			want:     "value1, value1",
		},
		{
			name:     "identical fragments replaced together",
			template: "{@token1} and {@token1}",
			data:     map[string]string{"token1": "value1"},
			want:     "value1 and value1",
		},
		{
			name:     "values are not parsed as syntax",
			template: "{@token1}{, @token2}",
			data:     map[string]string{"token1": "@value1", "token2": "{value2}"},
			want:     "@value1, {value2}",
		},
		{
			name:     "nested all set",
			template: nestedTemplate,
			data:     map[string]string{"token1": "value1", "token2": "value2", "token3": "value3"},
			want:     "value1, value2 literal value3 literal",
		},
		{
			name:     "nested inner empty",
			template: nestedTemplate,
			data:     map[string]string{"token1": "value1", "token2": "value2", "token3": ""},
			want:     "value1, value2 literal  literal",
		},
		{
			name:     "nested outer empty",
			template: nestedTemplate,
			data:     map[string]string{"token1": "value1", "token2": "", "token3": "value3"},
			want:     "value1",
		},
		{
			name:     "nested values with syntax characters",
			template: nestedTemplate,
			data:     map[string]string{"token1": "@value1", "token2": "{value2} @ttt", "token3": "@value3"},
			want:     "@value1, {value2} @ttt literal @value3 literal",
		},
		{
			name:     "combo all set",
			template: "{@A+B+C}",
			data:     map[string]string{"A": "John", "B": "Bob", "C": "Alice"},
			want:     "John, Bob, Alice",
		},
		{
			name:     "combo first missing",
			template: "{@A+B+C}",
			data:     map[string]string{"B": "Bob", "C": "Alice"},
			want:     "Bob, Alice",
		},
		{
			name:     "combo only last",
			template: "{@A+B+C}",
			data:     map[string]string{"C": "Alice"},
			want:     "Alice",
		},
		{
			name:     "combo none set",
			template: "{@title}{, by @A+B}",
			data:     map[string]string{"title": "T"},
			want:     "T",
		},
		{
			name:     "literal text after token",
			template: "{@title}{ (@year).}",
			data:     map[string]string{"title": "T", "year": "1998"},
			want:     "T (1998).",
		},
		{
			name:     "multi-line template",
			template: "{@a}\r\n{, @b}\n",
			data:     map[string]string{"a": "1", "b": "2"},
			want:     "1, 2",
		},
		{
			name:     "trailing backslash in value keeps fragment closed",
			template: "{@a}{, @b {@c}}",
			data:     map[string]string{"a": "x", "b": "y", "c": `z\`},
			want:     "x, y z",
		},
		{
			name:     "backslash-only value is empty",
			template: "{@a}{, @b}",
			data:     map[string]string{"a": "x", "b": `\\`},
			want:     "x",
		},
		{
			name:     "inner backslash in value kept",
			template: "{@a}{, @b}",
			data:     map[string]string{"a": "x", "b": `C:\dir`},
			want:     `x, C:\dir`,
		},
		{
			name:     "escaped characters in template",
			template: `{@user}{ \@ @host}`,
			data:     map[string]string{"user": "alice", "host": "example.org"},
			want:     "alice @ example.org",
		},
		{
			name: "book",
			template: `{@title}{, by @author}{, @co_author}` +
				`{, published by @publisher{, @publication_year}}`,
			data: map[string]string{
				"title":            "A Brief History of Time",
				"author":           "Stephen Hawking",
				"publisher":        "Bantam",
				"publication_year": "1998",
			},
			want: "A Brief History of Time, by Stephen Hawking, published by Bantam, 1998",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := citation.New(tt.template, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, b.Build())
		})
	}
}

func TestBuild_Repeatable(t *testing.T) {
	b, err := citation.New(nestedTemplate, map[string]string{"token1": "a", "token2": "b", "token3": "c"})
	require.NoError(t, err)

	first := b.Build()
	assert.Equal(t, first, b.Build())
}

func TestBuild_DeepNestingTerminates(t *testing.T) {
	const depth = 100

	var tpl strings.Builder
	data := make(map[string]string, depth)
	for i := range depth {
		key := fmt.Sprintf("k%d", i)
		data[key] = "v"
		tpl.WriteString("{@" + key)
		if i < depth-1 {
			tpl.WriteString(" ")
		}
	}
	tpl.WriteString(strings.Repeat("}", depth))

	got, err := citation.Render(tpl.String(), data)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("v ", depth-1)+"v", got)
}

func TestBuild_LenientTemplateTerminates(t *testing.T) {
	tpl := "}@a{}{@b"
	require.NoError(t, citation.Validate(tpl))

	got, err := citation.Render(tpl, map[string]string{"a": "1", "b": "2"})
	require.NoError(t, err)
	assert.Equal(t, tpl, got)
}

func TestBuild_MaxPasses(t *testing.T) {
	data := map[string]string{"token1": "value1", "token2": "value2", "token3": "value3"}

	got, err := citation.Render(nestedTemplate, data, citation.WithMaxPasses(1))
	require.NoError(t, err)
	assert.Equal(t, "value1{, @token2 literal value3 literal}", got)
}

func TestBuild_Debug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	got, err := citation.Render("{@token1}{, @token2}{, @A+B}", map[string]string{"token1": "value1"},
		citation.WithDebug(true),
		citation.WithLogger(logger),
	)
	require.NoError(t, err)
	assert.Equal(t, "value1, [token2], [A+B]", got)
	assert.Contains(t, buf.String(), "citation: parsing")
	assert.Contains(t, buf.String(), "citation: parsed")
	assert.Contains(t, buf.String(), "key=token2")
}

func TestBuild_NoTraceWithoutDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := citation.Render("{@token1}", map[string]string{"token1": "value1"}, citation.WithLogger(logger))
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestNew_DataShapes(t *testing.T) {
	type book struct {
		Title  string   `json:"title"`
		Author *string  `json:"author"`
		Year   int      `json:"year"`
		Tags   []string `json:"tags"`
	}
	author := "Stephen Hawking"

	tpl := "{@title}{, by @author}{ (@year)}{ [@tags]}"

	tests := []struct {
		name string
		data any
		want string
	}{
		{
			name: "struct",
			data: book{Title: "T", Author: &author, Year: 1998, Tags: []string{"physics", "", "cosmology"}},
			want: "T, by Stephen Hawking (1998) [physics, cosmology]",
		},
		{
			name: "struct pointer with nil field",
			data: &book{Title: "T"},
			want: "T (0)",
		},
		{
			name: "map any",
			data: map[string]any{"title": "T", "author": nil, "year": false, "tags": []any{"a", 1}},
			want: "T [a, 1]",
		},
		{
			name: "map of pointers",
			data: map[string]*string{"title": &author, "author": nil},
			want: "Stephen Hawking",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := citation.Render(tpl, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, citation.Validate("{@a}{, @b {@c}}"))
	assert.NoError(t, citation.Validate("}@a{}{@b"))
	assert.NoError(t, citation.Validate(`{@a \{literal\}}`))

	err := citation.Validate("}@a{}{@b", citation.WithStrictValidation())
	require.ErrorIs(t, err, citation.ErrInvalidTemplate)
	assert.Contains(t, err.Error(), "unmatched")

	_, err = citation.New("{@a}{@b", nil, citation.WithStrictValidation())
	require.ErrorIs(t, err, citation.ErrInvalidTemplate)
}

func TestTokens(t *testing.T) {
	got := citation.Tokens(`{@title}{, by @author+editor}{\@x @title}`)
	assert.Equal(t, []string{"title", "author", "editor"}, got)
	assert.Empty(t, citation.Tokens("no tokens here"))
}
