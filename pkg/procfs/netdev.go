package procfs

import (
	"fmt"
	"strings"
)

// NetDev is one interface row of /proc/net/dev. Every field is a
// monotonic counter maintained since the interface registered.
type NetDev struct {
	Interface string

	RxBytes   uint64
	RxPackets uint64
	RxErrors  uint64
	RxDropped uint64

	TxBytes   uint64
	TxPackets uint64
	TxErrors  uint64
	TxDropped uint64
}

func (n *NetDev) Name() string { return n.Interface }

func (n *NetDev) Counters() map[string]Counter {
	return map[string]Counter{
		"rx_bytes":   known(n.RxBytes),
		"rx_packets": known(n.RxPackets),
		"rx_errs":    known(n.RxErrors),
		"rx_drop":    known(n.RxDropped),
		"tx_bytes":   known(n.TxBytes),
		"tx_packets": known(n.TxPackets),
		"tx_errs":    known(n.TxErrors),
		"tx_drop":    known(n.TxDropped),
	}
}

// parseNetDev reads /proc/net/dev. The second header line names the
// columns ("face |bytes packets errs drop ...|bytes packets ..."), with
// the receive block before the transmit block; positions are taken from
// it rather than hardcoded so a column reshuffle surfaces as
// ErrMalformed instead of swapped counters. A device row shorter than
// the header also fails hard: a short row means the kernel format
// changed underneath us.
func parseNetDev(raw []byte) ([]Record, error) {
	headers, rows := tokenizeTable(raw, 2)
	if len(headers) < 2 {
		return nil, fmt.Errorf("%w: %s: missing header", ErrMalformed, SourceNetDev)
	}

	blocks := strings.Split(headers[1], "|")
	if len(blocks) != 3 {
		return nil, fmt.Errorf("%w: %s: header %q", ErrMalformed, SourceNetDev, headers[1])
	}
	rxCols := strings.Fields(blocks[1])
	txCols := strings.Fields(blocks[2])

	rxIdx, err := columnIndexes(rxCols, 0)
	if err != nil {
		return nil, err
	}
	txIdx, err := columnIndexes(txCols, len(rxCols))
	if err != nil {
		return nil, err
	}
	width := len(rxCols) + len(txCols)

	recs := make([]Record, 0, len(rows))
	for _, row := range rows {
		if len(row.fields) < width {
			return nil, fmt.Errorf("%w: %s: device %q has %d of %d columns",
				ErrMalformed, SourceNetDev, row.name, len(row.fields), width)
		}
		n := &NetDev{Interface: row.name}
		for _, col := range []struct {
			idx int
			dst *uint64
		}{
			{rxIdx["bytes"], &n.RxBytes},
			{rxIdx["packets"], &n.RxPackets},
			{rxIdx["errs"], &n.RxErrors},
			{rxIdx["drop"], &n.RxDropped},
			{txIdx["bytes"], &n.TxBytes},
			{txIdx["packets"], &n.TxPackets},
			{txIdx["errs"], &n.TxErrors},
			{txIdx["drop"], &n.TxDropped},
		} {
			v, err := parseCounter(SourceNetDev, row.name, row.fields[col.idx])
			if err != nil {
				return nil, err
			}
			*col.dst = v
		}
		recs = append(recs, n)
	}
	return recs, nil
}

// columnIndexes maps the four columns we consume to their absolute row
// positions within one header block.
func columnIndexes(cols []string, offset int) (map[string]int, error) {
	idx := make(map[string]int, 4)
	for i, c := range cols {
		idx[c] = offset + i
	}
	for _, want := range []string{"bytes", "packets", "errs", "drop"} {
		if _, ok := idx[want]; !ok {
			return nil, fmt.Errorf("%w: %s: header lacks %q column", ErrMalformed, SourceNetDev, want)
		}
	}
	return idx, nil
}
