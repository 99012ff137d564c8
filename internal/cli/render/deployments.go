package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/stakewise/proxy-deployer/internal/domain"
)

// Color styles for table format
var (
	nsBg            = color.BgYellow
	chainBg         = color.BgCyan
	nsHeader        = color.New(nsBg, color.FgBlack)
	nsHeaderBold    = color.New(nsBg, color.FgBlack, color.Bold)
	chainHeader     = color.New(chainBg, color.FgBlack)
	chainHeaderBold = color.New(chainBg, color.FgBlack, color.Bold)
	proxyNameStyle  = color.New(color.FgMagenta, color.Bold)
	addressStyle    = color.New(color.FgWhite)
	timestampStyle  = color.New(color.Faint)
	implPrefixStyle = color.New(color.Faint)
)

type TableData [][]string

// DeploymentsRenderer renders recorded proxies grouped by namespace and chain
type DeploymentsRenderer struct {
	out io.Writer
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer) *DeploymentsRenderer {
	return &DeploymentsRenderer{out: out}
}

// Render prints proxies in the tree-style layout
func (r *DeploymentsRenderer) Render(proxies []*domain.DeployedProxy) error {
	if len(proxies) == 0 {
		fmt.Fprintln(r.out, "No deployments found")
		return nil
	}

	byNamespace := lo.GroupBy(proxies, func(p *domain.DeployedProxy) string { return p.Namespace })
	namespaces := lo.Keys(byNamespace)
	sort.Strings(namespaces)

	// Column widths are shared by every table so the tree lines up
	var allTables []TableData
	for _, ns := range namespaces {
		for _, group := range groupByChain(byNamespace[ns]) {
			allTables = append(allTables, buildProxyTable(group))
		}
	}
	widths := calculateTableColumnWidths(allTables)

	for _, ns := range namespaces {
		nsLabel := fmt.Sprintf("%-12s", "namespace:")
		nsValue := fmt.Sprintf("%-30s", strings.ToUpper(ns))
		fmt.Fprintln(r.out, nsHeader.Sprintf("   ◎ %s %s", nsLabel, nsHeaderBold.Sprint(nsValue)))

		groups := groupByChain(byNamespace[ns])
		for i, group := range groups {
			isLast := i == len(groups)-1
			treePrefix, continuationPrefix := "├─", "│ "
			if isLast {
				treePrefix, continuationPrefix = "└─", "  "
			}

			chainLabel := fmt.Sprintf("%-12s", "chain:")
			chainValue := fmt.Sprintf("%-30d", group[0].ChainID)
			fmt.Fprintf(r.out, "%s%s%s\n", treePrefix, chainHeader.Sprintf(" ⛓ %s ", chainLabel), chainHeaderBold.Sprint(chainValue))
			fmt.Fprintln(r.out, continuationPrefix)

			fmt.Fprint(r.out, renderTableWithWidths(buildProxyTable(group), widths, continuationPrefix))
			fmt.Fprintln(r.out)

			if !isLast {
				fmt.Fprintln(r.out, continuationPrefix)
			} else {
				fmt.Fprintln(r.out)
			}
		}
	}

	fmt.Fprintf(r.out, "Total deployments: %d\n", len(proxies))
	return nil
}

// groupByChain splits proxies per chain in ascending chain order
func groupByChain(proxies []*domain.DeployedProxy) [][]*domain.DeployedProxy {
	byChain := lo.GroupBy(proxies, func(p *domain.DeployedProxy) uint64 { return p.ChainID })
	chainIDs := lo.Keys(byChain)
	sort.Slice(chainIDs, func(i, j int) bool { return chainIDs[i] < chainIDs[j] })
	return lo.Map(chainIDs, func(id uint64, _ int) []*domain.DeployedProxy { return byChain[id] })
}

// buildProxyTable creates a TableData with a proxy row and an implementation row per proxy
func buildProxyTable(proxies []*domain.DeployedProxy) TableData {
	tableData := make(TableData, 0, len(proxies)*2)

	for _, proxy := range proxies {
		tableData = append(tableData, []string{
			proxyNameStyle.Sprint(proxy.Kind.LogicalName()),
			addressStyle.Sprint(proxy.Address.Hex()),
			timestampStyle.Sprint(shortHex(proxy.TxHash.Hex())),
			timestampStyle.Sprint(proxy.CreatedAt.Format("2006-01-02 15:04:05")),
		})

		if proxy.Implementation != (common.Address{}) {
			tableData = append(tableData, []string{
				implPrefixStyle.Sprintf("└─ %s", proxy.Alias),
				implPrefixStyle.Sprint(proxy.Implementation.Hex()),
				"",
				"",
			})
		}
	}

	return tableData
}

// renderTableWithWidths renders a table with specific column widths
func renderTableWithWidths(tableData TableData, columnWidths []int, continuationPrefix string) string {
	if len(tableData) == 0 {
		return ""
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		PaddingRight: "   ",
	}

	colConfigs := make([]table.ColumnConfig, len(columnWidths))
	for i, width := range columnWidths {
		if i == 0 {
			width += len([]rune(continuationPrefix))
		}
		colConfigs[i] = table.ColumnConfig{
			Number:   i + 1,
			Align:    text.AlignLeft,
			WidthMin: width,
			WidthMax: width,
		}
	}
	t.SetColumnConfigs(colConfigs)

	for _, row := range tableData {
		tableRow := make(table.Row, len(row))
		for i, cell := range row {
			if i == 0 {
				tableRow[i] = continuationPrefix + cell
			} else {
				tableRow[i] = cell
			}
		}
		t.AppendRow(tableRow)
	}

	return t.Render()
}

// calculateTableColumnWidths calculates column widths for multiple tables
func calculateTableColumnWidths(tables []TableData) []int {
	maxCols := 0
	for _, tbl := range tables {
		for _, row := range tbl {
			maxCols = max(maxCols, len(row))
		}
	}

	widths := make([]int, maxCols)
	for _, tbl := range tables {
		for _, row := range tbl {
			for colIdx, cell := range row {
				widths[colIdx] = max(widths[colIdx], text.RuneWidthWithoutEscSequences(cell))
			}
		}
	}
	return widths
}
