package twlint

import (
	"fmt"
	"os"
	"sort"
)

// ApplyFixes writes every issue replacement back to its file and returns
// the files that changed plus the number of replacements applied. Each file
// is rewritten once. Replacements are
// applied from the last offset to the first; one overlapping an already
// applied replacement is skipped.
func ApplyFixes(issues []Issue) ([]string, int, error) {
	byFile := make(map[string][]Replacement)
	var files []string
	for _, issue := range issues {
		if issue.Replacement == nil {
			continue
		}
		name := issue.Pos.Filename
		if _, ok := byFile[name]; !ok {
			files = append(files, name)
		}
		byFile[name] = append(byFile[name], *issue.Replacement)
	}
	sort.Strings(files)

	var fixed []string
	total := 0
	for _, name := range files {
		// #nosec G304 - file was just scanned
		content, err := os.ReadFile(name)
		if err != nil {
			return fixed, total, fmt.Errorf("read %s: %w", name, err)
		}
		out, applied := applyReplacements(content, byFile[name])
		if applied == 0 {
			continue
		}
		info, err := os.Stat(name)
		if err != nil {
			return fixed, total, fmt.Errorf("stat %s: %w", name, err)
		}
		if err := os.WriteFile(name, out, info.Mode().Perm()); err != nil {
			return fixed, total, fmt.Errorf("write %s: %w", name, err)
		}
		fixed = append(fixed, name)
		total += applied
	}
	return fixed, total, nil
}

// applyReplacements returns content with the non-overlapping replacements
// applied and how many were applied.
func applyReplacements(content []byte, reps []Replacement) ([]byte, int) {
	sort.SliceStable(reps, func(i, j int) bool {
		return reps[i].Offset > reps[j].Offset
	})

	out := content
	applied := 0
	limit := len(content)
	for _, r := range reps {
		end := r.Offset + r.Length
		if r.Offset < 0 || end > limit {
			continue
		}
		next := make([]byte, 0, len(out)-r.Length+len(r.NewText))
		next = append(next, out[:r.Offset]...)
		next = append(next, r.NewText...)
		next = append(next, out[end:]...)
		out = next
		limit = r.Offset
		applied++
	}
	return out, applied
}
