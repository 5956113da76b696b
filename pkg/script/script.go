// Package script writes the shell script that downloads collected reports.
package script

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xhad/ltcc/internal/models"
)

// DefaultName is the script file written by make_wget.
const DefaultName = "wget_pdfs.sh"

// shellEscaper escapes the characters that stay special inside double quotes.
var shellEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", `\$`, "`", "\\`")

func quote(s string) string {
	return `"` + shellEscaper.Replace(s) + `"`
}

// Emit writes one echo line and one wget line per link. Each report lands at
// link.LocalPath(dir). Every argument is double quoted.
func Emit(w io.Writer, links []models.Link, dir string) error {
	bw := bufio.NewWriter(w)
	for _, l := range links {
		fmt.Fprintf(bw, "echo %s\n", quote("downloading "+string(l)+"..."))
		fmt.Fprintf(bw, "wget -q %s -O %s\n", quote(string(l)), quote(l.LocalPath(dir)))
	}
	return bw.Flush()
}

// WriteFile creates dir, writes the script to path and marks it executable.
func WriteFile(path string, links []models.Link, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create script: %w", err)
	}
	if err := Emit(f, links, dir); err != nil {
		f.Close()
		return fmt.Errorf("failed to write script: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write script: %w", err)
	}

	// os.Create does not change the mode of an existing file
	if err := os.Chmod(path, 0755); err != nil {
		return fmt.Errorf("failed to mark script executable: %w", err)
	}
	return nil
}
