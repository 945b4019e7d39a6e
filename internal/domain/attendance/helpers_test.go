package attendance

import (
	"time"

	"github.com/cmlabs-hris/absensi-backend-go/internal/pkg/cell"
)

var wib = time.FixedZone("WIB", 7*60*60)

func newTestEngine(minRowID int) *Engine {
	return NewEngine(NewNormalizer(Indonesian, wib), NewValidator(minRowID))
}

func day(year, month, d int) CalendarDate {
	return CalendarDate{Year: year, Month: month, Day: d}
}

func rec(rowID int, typ Type, date string) Record {
	return Record{
		RowID: cell.Number(rowID),
		Type:  typ,
		Date:  cell.Text(date),
	}
}

func checkout(rowID int, date string, kind CheckoutKind) Record {
	r := rec(rowID, TypeCheckOut, date)
	r.CheckoutKind = cell.Text(string(kind))
	r.WorkScope = cell.Text("Maintenance jaringan")
	return r
}
