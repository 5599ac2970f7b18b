package build

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// BrokenLinkError reports an emitted page whose href points to a path
// that was not written in the same build run.
type BrokenLinkError struct {
	Page string
	Href string
}

func (e *BrokenLinkError) Error() string {
	return fmt.Sprintf("%s: broken local link %q", e.Page, e.Href)
}

var hrefPattern = regexp.MustCompile(`(?:href|src)="([^"#?]+)"`)

// CheckLinks walks every HTML page written this run and verifies that
// every local href/src resolves to a path in the write-set, the harness-
// side consistency scan §4.H asks for (grounded on the same "scan the
// tree and report what doesn't add up" discipline as the teacher's
// workspace doctor). Absolute URLs (scheme present) are skipped.
func CheckLinks(outDir string, written []string) error {
	writeSet := make(map[string]bool, len(written))
	for _, p := range written {
		writeSet[filepath.ToSlash(p)] = true
	}

	for _, relPath := range written {
		if !strings.HasSuffix(relPath, ".html") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(outDir, relPath))
		if err != nil {
			return err
		}
		dir := filepath.Dir(relPath)
		for _, m := range hrefPattern.FindAllSubmatch(data, -1) {
			href := string(m[1])
			if href == "" || strings.Contains(href, "://") || strings.HasPrefix(href, "/") {
				continue
			}
			target := filepath.ToSlash(filepath.Clean(filepath.Join(dir, href)))
			if !writeSet[target] {
				return &BrokenLinkError{Page: relPath, Href: href}
			}
		}
	}
	return nil
}
