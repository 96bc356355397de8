package output

import (
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/arthur-debert/appimg/pkg/appimage"
	"github.com/arthur-debert/appimg/pkg/errors"
)

// ImageEntries lists every path a build wrote, relative to the image root
// and slash separated, with the parent directories of each entry. Entries
// are ordered depth first, siblings by name.
func ImageEntries(res *appimage.Result) []string {
	seen := map[string]bool{}
	add := func(p string) {
		r := rel(res.Root, p)
		if r == "." || r == p {
			return
		}
		for dir := r; dir != "." && dir != "/" && !seen[dir]; dir = path.Dir(dir) {
			seen[dir] = true
		}
	}

	for _, d := range res.Directories {
		add(d)
	}
	for _, l := range res.Launchers {
		add(l.Executable)
		add(l.Config)
		if l.Icon != "" {
			add(l.Icon)
		}
	}
	if res.NativeLibrary != "" {
		add(res.NativeLibrary)
	}
	for _, f := range res.Files {
		add(f)
	}
	if res.Icon != "" {
		add(res.Icon)
	}

	entries := make([]string, 0, len(seen))
	for e := range seen {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return lessPath(entries[i], entries[j])
	})
	return entries
}

// lessPath compares component by component so a directory sorts directly
// before its children.
func lessPath(a, b string) bool {
	ap, bp := strings.Split(a, "/"), strings.Split(b, "/")
	for i := 0; i < len(ap) && i < len(bp); i++ {
		if ap[i] != bp[i] {
			return ap[i] < bp[i]
		}
	}
	return len(ap) < len(bp)
}

// RenderTree draws the image as a tree rooted at its directory
func RenderTree(res *appimage.Result) (string, error) {
	entries := ImageEntries(res)
	items := make(pterm.LeveledList, 0, len(entries))
	for _, e := range entries {
		items = append(items, pterm.LeveledListItem{
			Level: strings.Count(e, "/"),
			Text:  path.Base(e),
		})
	}

	root := putils.TreeFromLeveledList(items)
	root.Text = filepath.Base(res.Root)

	out, err := pterm.DefaultTree.WithRoot(root).Srender()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render image tree")
	}
	return out, nil
}
