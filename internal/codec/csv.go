/* Copyright (c) 2021 David Bulkow */

package codec

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"time"

	. "github.com/dbulkow/roomreserve/api"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	cellTime     = "2006/01/02 15:04"
	filenameTime = "20060102_1504"
)

// Header holds the CSV column labels in output order.
type Header struct {
	Room, Start, End, ReserverName, CreatedAt string
}

func (h Header) cells() []string {
	return []string{h.Room, h.Start, h.End, h.ReserverName, h.CreatedAt}
}

var (
	HeaderJA = Header{"会議室", "開始日時", "終了日時", "予約者名", "予約作成日時"}
	HeaderEN = Header{"Room", "Start", "End", "Reserver Name", "Created At"}
)

const (
	PrefixJA = "会議室予約"
	PrefixEN = "room-reservations"
)

// CSV renders res as UTF-8 text with a leading byte order mark.
func (c *Codec) CSV(res []Reservation) ([]byte, error) {
	var buf bytes.Buffer

	err := c.WriteCSV(&buf, res)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteCSV writes the header and one row per reservation in start order.
// Every cell is quoted; quotes inside a cell are doubled. Rows are separated
// by a single newline with none after the last row.
func (c *Codec) WriteCSV(w io.Writer, res []Reservation) error {
	tw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	bw := bufio.NewWriter(tw)

	writeRow(bw, c.header.cells())

	for _, r := range Sorted(res) {
		bw.WriteByte('\n')
		writeRow(bw, []string{
			r.Room,
			c.cellTime(r.Start),
			c.cellTime(r.End),
			r.ReserverName,
			c.cellTime(r.CreatedAt),
		})
	}

	err := bw.Flush()
	if err != nil {
		return err
	}

	return tw.Close()
}

func (c *Codec) cellTime(t time.Time) string {
	return t.In(c.loc).Format(cellTime)
}

func writeRow(w *bufio.Writer, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			w.WriteByte(',')
		}
		w.WriteByte('"')
		w.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		w.WriteByte('"')
	}
}

// SuggestFilename names an export taken at now, unique per minute.
func (c *Codec) SuggestFilename(now time.Time) string {
	return c.prefix + "_" + now.In(c.loc).Format(filenameTime) + ".csv"
}
