package command_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-citation/internal/command"
	"github.com/lwmacct/251207-go-pkg-citation/internal/config"
	"github.com/lwmacct/251207-go-pkg-citation/pkg/citation"
)

func TestTemplate(t *testing.T) {
	tpl, err := command.Template(config.CitationConfig{Template: "{@a}", TemplateFile: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "{@a}", tpl)

	path := filepath.Join(t.TempDir(), "t.tpl")
	require.NoError(t, os.WriteFile(path, []byte("{@title}\n"), 0o600))
	tpl, err = command.Template(config.CitationConfig{TemplateFile: path})
	require.NoError(t, err)
	assert.Equal(t, "{@title}", tpl)

	_, err = command.Template(config.CitationConfig{})
	require.ErrorIs(t, err, command.ErrNoTemplate)
}

func TestCitationOptions(t *testing.T) {
	opts := command.CitationOptions(config.CitationConfig{Debug: true, Strict: true}, nil)

	got, err := citation.Render("{@a}{, @b}", map[string]string{"a": "1"}, opts...)
	require.NoError(t, err)
	assert.Equal(t, "1, [b]", got)

	_, err = citation.New("}@a{}{@b", map[string]string{}, opts...)
	require.ErrorIs(t, err, citation.ErrInvalidTemplate)
}

func TestRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"title": "A"}, {"title": "B"}]`), 0o600))

	records, err := command.Records(config.CitationConfig{DataFile: path}, []string{"title=${title}!"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "A!", records[0]["title"])
	assert.Equal(t, "B!", records[1]["title"])

	records, err = command.Records(config.CitationConfig{}, []string{"a=1"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "1", records[0]["a"])

	_, err = command.Records(config.CitationConfig{}, []string{"broken"})
	require.Error(t, err)
}
