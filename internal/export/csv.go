// Package export renders attendance records to the flat CSV the admin
// download produces.
package export

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"geotrack-backend/internal/model"
)

// Header is fixed; consumers key on these column names.
const Header = "ID,User,Time,Address,Lat,Lng,Distance,Status,Notes"

// Format renders one row per record under the fixed header. Timestamps are
// RFC 3339 in UTC so the export is byte-identical regardless of the host
// locale or timezone. Address and Notes are always quoted, with embedded
// quotes doubled, so embedded commas survive a round trip.
func Format(records []model.AttendanceRecord) string {
	var b strings.Builder
	b.WriteString(Header)

	for _, r := range records {
		address := r.Address
		if address == "" {
			address = "Unknown"
		}

		row := []string{
			r.ID,
			r.UserName,
			time.UnixMilli(r.Timestamp).UTC().Format(time.RFC3339),
			quote(address),
			strconv.FormatFloat(r.Latitude, 'f', -1, 64),
			strconv.FormatFloat(r.Longitude, 'f', -1, 64),
			fmt.Sprintf("%dm", int64(math.Round(r.DistanceFromOffice))),
			r.Status,
			quote(r.Notes),
		}
		b.WriteString("\n")
		b.WriteString(strings.Join(row, ","))
	}

	return b.String()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
