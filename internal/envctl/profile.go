package envctl

import (
	errs "errors"
	"os"
	"strings"

	"github.com/pkg/errors"
)

const (
	profileBegin = "# >>> envdeck environment >>>"
	profileNote  = "# Written by envdeck; edits inside this block are overwritten."
	profileEnd   = "# <<< envdeck environment <<<"
)

// ProfileScope persists variables by maintaining a marker-delimited block of
// export lines in a shell profile file. The whole file is rewritten
// atomically on every change; content outside the markers is never touched.
// Values are single-quoted POSIX style (embedded quotes become '\''), so
// tokens and URLs survive any shell-special characters verbatim.
type ProfileScope struct {
	path string
}

// NewProfileScope returns a persistent scope backed by the profile file at
// path. The file and the managed block are created on first write.
func NewProfileScope(path string) *ProfileScope {
	return &ProfileScope{path: path}
}

func (p *ProfileScope) Label() string { return "persistent" }

// Path returns the profile file location.
func (p *ProfileScope) Path() string { return p.path }

// Set upserts one export line inside the managed block.
func (p *ProfileScope) Set(key, value string) error {
	mode := os.FileMode(0o644)
	var lines []string
	data, err := os.ReadFile(p.path)
	switch {
	case err == nil:
		if info, err := os.Stat(p.path); err == nil {
			mode = info.Mode().Perm()
		}
		lines = strings.Split(strings.TrimRight(string(data), "\n"), "\n")
		if len(lines) == 1 && lines[0] == "" {
			lines = nil
		}
	case errs.Is(err, os.ErrNotExist):
		lines = nil
	default:
		return errors.Wrapf(err, "read %s", p.path)
	}

	begin, end := -1, -1
	for i, line := range lines {
		switch strings.TrimSpace(line) {
		case profileBegin:
			begin = i
		case profileEnd:
			if begin >= 0 && end < 0 {
				end = i
			}
		}
	}
	if begin >= 0 && end < 0 {
		return errors.Errorf("managed block in %s is missing its end marker", p.path)
	}

	export := "export " + key + "=" + singleQuote(value)
	if begin < 0 {
		// No block yet: append one to the end of the file.
		if len(lines) > 0 && lines[len(lines)-1] != "" {
			lines = append(lines, "")
		}
		lines = append(lines, profileBegin, profileNote, export, profileEnd)
	} else {
		replaced := false
		for i := begin + 1; i < end; i++ {
			if exportKey(lines[i]) == key {
				lines[i] = export
				replaced = true
				break
			}
		}
		if !replaced {
			lines = append(lines[:end], append([]string{export}, lines[end:]...)...)
		}
	}

	return p.writeAtomic(strings.Join(lines, "\n")+"\n", mode)
}

func (p *ProfileScope) writeAtomic(content string, mode os.FileMode) error {
	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), mode); err != nil {
		return errors.Wrapf(err, "write %s", tmp)
	}
	if err := os.Rename(tmp, p.path); err != nil {
		return errors.Wrapf(err, "rename %s", tmp)
	}
	return nil
}

// exportKey extracts the variable name from an "export KEY=..." line, or
// returns "" for anything else.
func exportKey(line string) string {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), "export ")
	if !ok {
		return ""
	}
	key, _, ok := strings.Cut(rest, "=")
	if !ok {
		return ""
	}
	return key
}

// singleQuote wraps value in POSIX single quotes, escaping embedded single
// quotes as '\''.
func singleQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}
