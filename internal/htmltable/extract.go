// Package htmltable scrapes region wage tables out of HTML documents.
package htmltable

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fjacquet/pdn-calc/internal/wagetable"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// maxColspan bounds colspan expansion for malformed documents.
const maxColspan = 64

// ExtractTables parses an HTML document and returns every <table> in document
// order. Nested tables are returned separately and do not contribute rows to
// their parent.
func ExtractTables(r io.Reader) ([]wagetable.RawTable, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %w", err)
	}

	var tables []wagetable.RawTable
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Table {
			tables = append(tables, extractTable(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return tables, nil
}

func extractTable(table *html.Node) wagetable.RawTable {
	var headRows, bodyRows [][]string
	var collect func(n *html.Node, inHead bool)
	collect = func(n *html.Node, inHead bool) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.DataAtom {
			case atom.Table:
				// nested table, handled by ExtractTables
			case atom.Thead:
				collect(c, true)
			case atom.Tbody, atom.Tfoot:
				collect(c, false)
			case atom.Tr:
				cells, allHeader := rowCells(c)
				if len(cells) == 0 {
					continue
				}
				if inHead || (len(headRows) == 0 && len(bodyRows) == 0 && allHeader) {
					headRows = append(headRows, cells)
				} else {
					bodyRows = append(bodyRows, cells)
				}
			}
		}
	}
	collect(table, false)

	// Without an explicit header the first row is taken as one.
	if len(headRows) == 0 && len(bodyRows) > 0 {
		headRows, bodyRows = bodyRows[:1], bodyRows[1:]
	}

	var headers []string
	if len(headRows) > 0 {
		headers = mergeHeaderRows(headRows)
	}
	return wagetable.RawTable{Headers: headers, Rows: bodyRows}
}

// mergeHeaderRows joins multi-row headers column-wise so that grouping labels
// ("Среднемесячная заработная плата") stay attached to their sub-columns.
func mergeHeaderRows(rows [][]string) []string {
	if len(rows) == 1 {
		return rows[0]
	}
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	headers := make([]string, width)
	for col := 0; col < width; col++ {
		var parts []string
		for _, r := range rows {
			if col < len(r) && r[col] != "" && (len(parts) == 0 || parts[len(parts)-1] != r[col]) {
				parts = append(parts, r[col])
			}
		}
		headers[col] = strings.Join(parts, " ")
	}
	return headers
}

func rowCells(tr *html.Node) (cells []string, allHeader bool) {
	allHeader = true
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.DataAtom != atom.Td && c.DataAtom != atom.Th) {
			continue
		}
		if c.DataAtom == atom.Td {
			allHeader = false
		}
		text := cellText(c)
		for i := 0; i < colspan(c); i++ {
			cells = append(cells, text)
		}
	}
	return cells, allHeader && len(cells) > 0
}

func colspan(n *html.Node) int {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, "colspan") {
			span, err := strconv.Atoi(strings.TrimSpace(a.Val))
			if err != nil || span < 1 {
				return 1
			}
			if span > maxColspan {
				return maxColspan
			}
			return span
		}
	}
	return 1
}

// cellText returns the visible text of a cell with whitespace runs collapsed.
// Non-breaking spaces are kept so the number normalizer can treat them as
// thousands separators.
func cellText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			sb.WriteString(n.Data)
		case n.Type == html.ElementNode && n.DataAtom == atom.Br:
			sb.WriteByte(' ')
		case n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style):
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return collapseSpaces(sb.String())
}

func collapseSpaces(s string) string {
	var sb strings.Builder
	space := false
	for _, r := range s {
		if r == ' ' || r == '\n' || r == '\t' || r == '\r' {
			space = true
			continue
		}
		if space && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		space = false
		sb.WriteRune(r)
	}
	return sb.String()
}
