package ui

import (
	"regexp"
	"strconv"
	"strings"

	"esstat/cluster"

	"github.com/dustin/go-humanize"
)

// Relocations renders the shard relocation panel. UNASSIGNED rows reach
// this layer from the client but are excluded from display here.
func (r *Renderer) Relocations(rows []cluster.ShardRow, rect Rect, spec PanelSpec) string {
	if rect.Empty() {
		return ""
	}

	visible := make([]cluster.ShardRow, 0, len(rows))
	for _, row := range rows {
		if row.State == "UNASSIGNED" {
			continue
		}
		visible = append(visible, row)
	}
	if len(visible) == 0 {
		return r.emptyBox(spec, "No active shards relocation", false, rect)
	}

	headers := []string{"Index", "Shard", "Prirep", "State", "Store", "Docs", "Ip", "Source", "Target"}
	cells := make([][]cell, 0, len(visible))
	for _, row := range visible {
		cells = append(cells, []cell{
			plainCell(row.Index),
			plainCell(row.Shard),
			plainCell(row.Prirep),
			cell{text: row.State, style: r.styles.Warn},
			plainCell(row.Store),
			plainCell(commaCount(row.Docs)),
			plainCell(row.IP),
			plainCell(row.Source),
			plainCell(row.Target),
		})
	}

	lines := r.renderTable(headers, cells, rect.W-2, rect.H-3)
	return r.boxForSpec(spec, false, lines, rect)
}

// Recoveries renders the active shard recovery panel.
func (r *Renderer) Recoveries(rows []cluster.RecoveryRow, rect Rect, spec PanelSpec) string {
	if rect.Empty() {
		return ""
	}
	if len(rows) == 0 {
		return r.emptyBox(spec, "No ongoing shards recovery", false, rect)
	}

	headers := []string{"Index", "Shard", "Stage", "Source node", "Target node", "Files %", "Bytes %", "Translog %"}
	cells := make([][]cell, 0, len(rows))
	for _, row := range rows {
		target := row.TargetNode
		if row.SourceNode != "" && target != "" {
			target = shortenTargetFQDN(row.SourceNode, target)
		}
		cells = append(cells, []cell{
			plainCell(row.Index),
			plainCell(row.Shard),
			plainCell(row.Stage),
			plainCell(row.SourceNode),
			plainCell(target),
			r.percentCell(row.FilesPercent),
			r.percentCell(row.BytesPercent),
			r.percentCell(row.TranslogPercent),
		})
	}

	lines := r.renderTable(headers, cells, rect.W-2, rect.H-3)
	return r.boxForSpec(spec, false, lines, rect)
}

// percentCell colors a completion percentage: done green, nearly done
// yellow, everything else orange. Unparseable values render plain.
func (r *Renderer) percentCell(pct string) cell {
	v, err := strconv.ParseFloat(strings.TrimSuffix(pct, "%"), 64)
	if err != nil {
		return plainCell(pct)
	}
	style := r.styles.Bad
	switch {
	case v >= 100:
		style = r.styles.Good
	case v >= 75:
		style = r.styles.Warn
	}
	return cell{text: pct, style: style}
}

// commaCount formats a numeric document count with thousands separators,
// passing non-numeric values through untouched.
func commaCount(s string) string {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return s
	}
	return humanize.Comma(n)
}

var dataSuffixRe = regexp.MustCompile(`^(.+?)(-data\d+)$`)

// shortenTargetFQDN drops the target's domain when it matches the source's,
// keeping only the hostname (and any -dataN suffix). Long recovery tables
// stay readable when every node lives in the same domain.
func shortenTargetFQDN(source, target string) string {
	srcParts := strings.Split(source, ".")
	dstParts := strings.Split(target, ".")
	if len(srcParts) < 2 || len(dstParts) < 2 {
		return target
	}

	srcDomain := strings.Join(stripDataSuffix(srcParts[1:]), ".")
	dstDomain := strings.Join(stripDataSuffix(dstParts[1:]), ".")
	if srcDomain != dstDomain {
		return target
	}

	host := dstParts[0]
	if m := dataSuffixRe.FindStringSubmatch(dstParts[len(dstParts)-1]); m != nil {
		return host + m[2]
	}
	return host
}

// stripDataSuffix removes a trailing -dataN marker from the last label so
// domains compare equal across the per-instance suffixes.
func stripDataSuffix(labels []string) []string {
	if len(labels) == 0 {
		return labels
	}
	out := make([]string, len(labels))
	copy(out, labels)
	last := len(out) - 1
	if m := dataSuffixRe.FindStringSubmatch(out[last]); m != nil {
		out[last] = m[1]
	}
	return out
}
