package list

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/fcollections/fcollections/cli/commands/common"
	"github.com/fcollections/fcollections/internal/database"
	"github.com/fcollections/fcollections/internal/errors"
	"github.com/fcollections/fcollections/internal/record"
)

// Run lists the selected collection and writes the records in the requested
// format.
func Run(ctx context.Context, opts *Options) error {
	sel, err := opts.Open(ctx)
	if err != nil {
		return err
	}

	table, err := sel.DB.ListFiles(ctx, database.ListOptions{
		Filters:     sel.Filters,
		StatFields:  opts.StatFields(),
		Sort:        true,
		Deduplicate: !opts.NoDedup,
		Unmix:       !opts.NoUnmix,
	})
	if err != nil {
		return err
	}

	opts.Logger.Debugf("Listed %d files under %s", table.Len(), sel.DB.Root())

	switch opts.Format {
	case common.FormatJSON:
		return outputJSON(opts, table)
	case common.FormatYAML:
		return outputYAML(opts, table)
	case common.FormatTree:
		return outputTree(opts, sel.DB.Root(), table)
	default:
		return outputText(opts, table)
	}
}

func outputJSON(opts *Options, table *record.Table) error {
	rows, err := common.Rows(table)
	if err != nil {
		return err
	}

	return common.WriteJSON(opts.Writer, rows)
}

func outputYAML(opts *Options, table *record.Table) error {
	rows, err := common.Rows(table)
	if err != nil {
		return err
	}

	return common.WriteYAML(opts.Writer, rows)
}

// outputText writes one path per line, followed by the stat columns.
func outputText(opts *Options, table *record.Table) error {
	c := common.NewColorizer(common.ShouldColor(opts.Options))
	stats := table.StatColumns()

	var buf strings.Builder

	if len(stats) > 0 {
		buf.WriteString(c.Heading(strings.Join(append([]string{record.PathColumn}, stats...), "  ")))
		buf.WriteString("\n")
	}

	for _, r := range table.Records() {
		dir, base := filepath.Split(r.Path())
		buf.WriteString(c.Path(dir, base))

		for _, name := range stats {
			value, _ := r.Stat(name)
			buf.WriteString("  " + c.Value(fmt.Sprint(common.StatText(value))))
		}

		buf.WriteString("\n")
	}

	if _, err := opts.Writer.Write([]byte(buf.String())); err != nil {
		return errors.New(err)
	}

	return nil
}

type TreeStyler struct {
	entryStyle  lipgloss.Style
	rootStyle   lipgloss.Style
	colorizer   *common.Colorizer
	shouldColor bool
}

func NewTreeStyler(shouldColor bool) *TreeStyler {
	return &TreeStyler{
		shouldColor: shouldColor,
		entryStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginRight(1),
		rootStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("35")),
		colorizer:   common.NewColorizer(shouldColor),
	}
}

func (s *TreeStyler) Style(t *tree.Tree) *tree.Tree {
	t = t.Enumerator(tree.RoundedEnumerator)

	if !s.shouldColor {
		return t
	}

	return t.
		EnumeratorStyle(s.entryStyle).
		RootStyle(s.rootStyle)
}

// generateTree nests the record paths relative to root. Records are sorted, so
// the children of a node are added in order.
func generateTree(root string, table *record.Table, s *TreeStyler) *tree.Tree {
	t := tree.Root(root)
	nodes := make(map[string]*tree.Tree)

	for _, r := range table.Records() {
		rel, err := filepath.Rel(root, r.Path())
		if err != nil {
			rel = r.Path()
		}

		segments := strings.Split(filepath.ToSlash(rel), "/")
		currentPath := ""
		currentNode := t

		for i, segment := range segments {
			nextPath := filepath.Join(currentPath, segment)

			if i == len(segments)-1 {
				currentNode.Child(s.colorizer.Path("", segment))
				break
			}

			if _, exists := nodes[nextPath]; !exists {
				node := tree.New().Root(s.colorizer.Heading(segment))
				nodes[nextPath] = node
				currentNode.Child(node)
			}

			currentNode = nodes[nextPath]
			currentPath = nextPath
		}
	}

	return t
}

func outputTree(opts *Options, root string, table *record.Table) error {
	s := NewTreeStyler(common.ShouldColor(opts.Options))
	t := s.Style(generateTree(root, table, s))

	if _, err := opts.Writer.Write([]byte(t.String() + "\n")); err != nil {
		return errors.New(err)
	}

	return nil
}
