package install

import (
	"fmt"
	"strings"

	"github.com/bornholm/mdbook-admonish/internal/assets"
	"github.com/bornholm/mdbook-admonish/internal/config"
)

// patchBookTOML rewrites book.toml line by line instead of re-encoding it,
// so comments, ordering and unrelated tables survive the edit.
func patchBookTOML(content string, cssPath string) string {
	lines := strings.Split(content, "\n")

	lines = patchPreprocessorTable(lines, cssPath)
	lines = patchAdditionalCSS(lines, cssPath)

	return strings.Join(lines, "\n")
}

func patchPreprocessorTable(lines []string, cssPath string) []string {
	header := "[preprocessor." + config.PreprocessorName + "]"
	commandLine := `command = "mdbook-admonish"`
	assetsLine := fmt.Sprintf("assets_version = %q", assets.Version)
	cssLine := fmt.Sprintf("css_file_path = %q", cssPath)
	wantCSSLine := cssPath != assets.CSSFilename

	start, end := tableBounds(lines, header)
	if start == -1 {
		entries := []string{commandLine, assetsLine}
		if wantCSSLine {
			entries = append(entries, cssLine)
		}

		return appendTable(lines, header, entries...)
	}

	hasCommand := false
	hasAssets := false
	hasCSS := false

	for i := start + 1; i < end; i++ {
		key, _, found := splitKey(lines[i])
		if !found {
			continue
		}

		switch key {
		case "command":
			// An existing command line may point at a wrapper, keep it.
			hasCommand = true
		case "assets_version":
			hasAssets = true
			lines[i] = assetsLine
		case "css_file_path":
			hasCSS = true
			if wantCSSLine {
				lines[i] = cssLine
			}
		}
	}

	missing := make([]string, 0, 3)
	if !hasCommand {
		missing = append(missing, commandLine)
	}
	if !hasAssets {
		missing = append(missing, assetsLine)
	}
	if wantCSSLine && !hasCSS {
		missing = append(missing, cssLine)
	}

	if len(missing) > 0 {
		lines = insertLines(lines, start+1, missing...)
	}

	return lines
}

func patchAdditionalCSS(lines []string, cssPath string) []string {
	quoted := fmt.Sprintf("%q", cssPath)
	entry := "additional-css = [" + quoted + "]"

	start, end := tableBounds(lines, "[output.html]")
	if start == -1 {
		return appendTable(lines, "[output.html]", entry)
	}

	for i := start + 1; i < end; i++ {
		key, value, found := splitKey(lines[i])
		if !found || key != "additional-css" {
			continue
		}

		if strings.Contains(value, "]") {
			if strings.Contains(value, quoted) {
				return lines
			}

			opening := strings.Index(lines[i], "[")
			closing := strings.LastIndex(lines[i], "]")

			if inner := strings.TrimSpace(lines[i][opening+1 : closing]); inner == "" {
				lines[i] = lines[i][:opening+1] + quoted + lines[i][closing:]
			} else {
				lines[i] = lines[i][:closing] + ", " + quoted + lines[i][closing:]
			}

			return lines
		}

		// Multi line array, scan for the closing bracket.
		for j := i + 1; j < len(lines); j++ {
			if strings.Contains(lines[j], quoted) {
				return lines
			}

			if strings.Contains(lines[j], "]") {
				return insertLines(lines, j, "  "+quoted+",")
			}
		}

		return lines
	}

	return insertLines(lines, start+1, entry)
}

// tableBounds returns the index of the table's header line and the index
// one past the last line of its body. Sub-tables end the body: the keys we
// manage all live directly under the header.
func tableBounds(lines []string, header string) (int, int) {
	start := -1

	for i, line := range lines {
		if start == -1 {
			if tableHeader(line) == header {
				start = i
			}

			continue
		}

		if strings.HasPrefix(strings.TrimSpace(line), "[") {
			return start, i
		}
	}

	if start == -1 {
		return -1, -1
	}

	return start, len(lines)
}

// tableHeader returns the table header on a line, dropping any trailing
// comment. A '#' cannot occur inside a bare table header.
func tableHeader(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}

	return strings.TrimSpace(line)
}

func splitKey(line string) (string, string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "[") {
		return "", "", false
	}

	parts := strings.SplitN(trimmed, "=", 2)
	if len(parts) != 2 {
		return "", "", false
	}

	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}

func insertLines(lines []string, at int, insert ...string) []string {
	out := make([]string, 0, len(lines)+len(insert))
	out = append(out, lines[:at]...)
	out = append(out, insert...)
	out = append(out, lines[at:]...)

	return out
}

func appendTable(lines []string, header string, entries ...string) []string {
	// Drop the blank tail left by a trailing newline, then restore it.
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	lines = append(lines, "", header)
	lines = append(lines, entries...)
	lines = append(lines, "")

	return lines
}
