package theme

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/osmet/vitals/internal/apperrors"
)

// ParseFile reads a theme file in the flat `[name]=value` / `[name]="value"`
// format described in spec.md §6. Unknown names are ignored; the returned
// map only ever contains keys present in Names.
func ParseFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.WrapWithCode(err, apperrors.ErrEnvironment,
			"can't read theme file "+path, "check the path and permissions")
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads theme entries from r. Malformed lines are skipped (a
// configuration error, not fatal to the whole file).
func Parse(r io.Reader) (map[string]string, error) {
	known := make(map[string]bool, len(Names))
	for _, n := range Names {
		known[n] = true
	}

	out := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") && !strings.Contains(line, "=") {
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			continue
		}
		name := strings.TrimSpace(line[:eq])
		value := strings.TrimSpace(line[eq+1:])
		value = strings.Trim(value, `"`)
		if known[name] {
			out[name] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.WrapWithCode(err, apperrors.ErrTransient,
			"error reading theme file", "")
	}
	return out, nil
}
