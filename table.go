package segmentify

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// TableData is the cell-level form of a table segment.
type TableData struct {
	Header     []string
	Alignments []string
	Rows       [][]string
}

// ParseTable parses a table segment's raw block into cells using the GFM
// table extension. The segmenter only locates table blocks; renderers that
// need individual cells and column alignments go through here. Returns false
// if the block does not parse as a table after all.
func ParseTable(t *Table) (*TableData, bool) {
	if t == nil || strings.TrimSpace(t.Raw) == "" {
		return nil, false
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	source := []byte(t.Raw)
	doc := md.Parser().Parse(text.NewReader(source))

	var data *TableData
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		tbl, ok := n.(*east.Table)
		if !ok {
			return ast.WalkContinue, nil
		}
		data = &TableData{}
		for _, a := range tbl.Alignments {
			data.Alignments = append(data.Alignments, alignmentName(a))
		}
		for row := tbl.FirstChild(); row != nil; row = row.NextSibling() {
			var cells []string
			for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
				cells = append(cells, string(cell.Text(source)))
			}
			switch row.(type) {
			case *east.TableHeader:
				data.Header = cells
			case *east.TableRow:
				data.Rows = append(data.Rows, cells)
			}
		}
		return ast.WalkStop, nil
	})

	if data == nil {
		// The segmenter matched a divider pattern goldmark rejects.
		Logger.Printf("table block did not parse as GFM table: %.40q", t.Raw)
		return nil, false
	}
	return data, true
}

func alignmentName(a east.Alignment) string {
	switch a {
	case east.AlignLeft:
		return "left"
	case east.AlignRight:
		return "right"
	case east.AlignCenter:
		return "center"
	default:
		return "none"
	}
}
