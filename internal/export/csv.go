// Package export produces the ticket-history CSV download.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/spec-kit/helpdesk-console/internal/domain"
	"github.com/spec-kit/helpdesk-console/internal/render"
	"github.com/spec-kit/helpdesk-console/internal/stats"
)

// Header is the fixed CSV header row.
const Header = "Ticket Number,Title,Description,Status,Priority,Department,Created,Closed,Resolution Time"

// TicketsCSV renders the ticket list as CSV. Free-text fields are always
// double-quoted with embedded quotes doubled. The formatted dates contain
// commas, so they are quoted too; status, priority and department come from
// fixed enumerations and stay bare.
func TicketsCSV(tickets []domain.Ticket) string {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteByte('\n')

	for i, t := range tickets {
		if i > 0 {
			b.WriteByte('\n')
		}
		fields := []string{
			t.TicketNumber,
			quote(t.Title),
			quote(t.Description),
			string(t.Status),
			string(t.Priority),
			t.Category,
			quote(render.FormatFullDate(t.CreatedAt)),
			quote(render.FormatFullDate(t.UpdatedAt)),
			stats.ResolutionTime(t),
		}
		b.WriteString(strings.Join(fields, ","))
	}
	return b.String()
}

// FileName returns the dated download name, e.g. ticket_history_2024-03-01.csv.
func FileName(now time.Time) string {
	return fmt.Sprintf("ticket_history_%s.csv", now.Format("2006-01-02"))
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
