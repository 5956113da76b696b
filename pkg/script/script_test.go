package script

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xhad/ltcc/internal/models"
)

func TestEmit(t *testing.T) {
	links := []models.Link{
		"http://example.com/docs/Abbott House.pdf",
		"http://example.com/docs/alden.pdf",
	}

	var buf bytes.Buffer
	require.NoError(t, Emit(&buf, links, "data/long term"))

	expected := `echo "downloading http://example.com/docs/Abbott House.pdf..."
wget -q "http://example.com/docs/Abbott House.pdf" -O "data/long_term/Abbott_House.pdf"
echo "downloading http://example.com/docs/alden.pdf..."
wget -q "http://example.com/docs/alden.pdf" -O "data/long_term/alden.pdf"
`
	assert.Equal(t, expected, buf.String())
}

func TestEmitQuotesShellCharacters(t *testing.T) {
	links := []models.Link{
		"http://example.com/docs/St. Mary's (Joliet).pdf",
		"http://example.com/docs/$HOME \"quoted\".pdf",
	}

	var buf bytes.Buffer
	require.NoError(t, Emit(&buf, links, "data"))

	expected := "echo \"downloading http://example.com/docs/St. Mary's (Joliet).pdf...\"\n" +
		"wget -q \"http://example.com/docs/St. Mary's (Joliet).pdf\" -O \"data/St._Mary's_(Joliet).pdf\"\n" +
		"echo \"downloading http://example.com/docs/\\$HOME \\\"quoted\\\".pdf...\"\n" +
		"wget -q \"http://example.com/docs/\\$HOME \\\"quoted\\\".pdf\" -O \"data/\\$HOME_\\\"quoted\\\".pdf\"\n"
	assert.Equal(t, expected, buf.String())
}

func TestEmitOneDownloadPerLink(t *testing.T) {
	tests := []struct {
		name  string
		links []models.Link
	}{
		{"none", nil},
		{"one", []models.Link{"a b c.pdf"}},
		{"many", []models.Link{"http://x/1 2.pdf", "http://x/3.pdf", "http://x/dir/4 5 6.pdf", "http://x/3.pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Emit(&buf, tt.links, "out dir"))

			var downloads []string
			for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
				if strings.HasPrefix(line, "wget ") {
					downloads = append(downloads, line)
				}
			}
			require.Len(t, downloads, len(tt.links))

			for _, line := range downloads {
				target := line[strings.Index(line, " -O ")+len(" -O "):]
				require.True(t, strings.HasPrefix(target, `"`) && strings.HasSuffix(target, `"`), target)
				assert.NotContains(t, target, " ")
			}
		})
	}
}

func TestWriteFile(t *testing.T) {
	tmp := t.TempDir()
	dataDir := filepath.Join(tmp, "data", "reports")
	path := filepath.Join(tmp, DefaultName)

	// existing non-executable file is replaced
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

	err := WriteFile(path, []models.Link{"http://example.com/r.pdf"}, dataDir)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	dirInfo, err := os.Stat(dataDir)
	require.NoError(t, err)
	assert.True(t, dirInfo.IsDir())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `wget -q "http://example.com/r.pdf" -O "`+filepath.Join(dataDir, "r.pdf")+`"`)
}
