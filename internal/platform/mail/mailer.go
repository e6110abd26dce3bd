// Package mail delivers the end-of-day cash closure summary over SMTP.
package mail

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	portssvc "github.com/workexpress/wx_backend/internal/core/ports/services"
	"github.com/workexpress/wx_backend/internal/dto"
	"github.com/workexpress/wx_backend/internal/platform/config"
)

type closureMailer struct {
	dialer *gomail.Dialer
	from   string
	to     []string
}

// NewClosureMailer builds a ClosureNotifier from SMTP settings. Returns nil
// when mail is not configured so callers can skip wiring the notifier.
func NewClosureMailer(cfg *config.Config) portssvc.ClosureNotifier {
	if !cfg.MailEnabled() {
		return nil
	}
	return &closureMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.SMTPFrom,
		to:     splitRecipients(cfg.SummaryMailTo),
	}
}

var _ portssvc.ClosureNotifier = (*closureMailer)(nil)

func (m *closureMailer) SendClosureSummary(_ context.Context, view *dto.CashClosureView) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to...)
	msg.SetHeader("Subject", fmt.Sprintf("Cash closure summary %s", view.CreatedAt.Format("2006-01-02")))
	msg.SetBody("text/html", renderSummary(view))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send closure summary: %w", err)
	}
	return nil
}

func renderSummary(view *dto.CashClosureView) string {
	var b strings.Builder
	b.WriteString("<h2>Cash closure summary</h2>")
	fmt.Fprintf(&b, "<p>Period %s opened %s", view.CashClosureID, view.CreatedAt.Format("2006-01-02 15:04"))
	if view.ClosedAt != nil {
		fmt.Fprintf(&b, ", closed %s", view.ClosedAt.Format("2006-01-02 15:04"))
	}
	b.WriteString("</p>")

	b.WriteString("<table border=\"1\" cellpadding=\"4\"><tr><th>Method</th><th>Credit</th><th>Debit</th><th>Total</th></tr>")
	for _, pm := range view.PaymentMethods {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			pm.Name, pm.Credit.StringFixed(2), pm.Debit.StringFixed(2), pm.Total.StringFixed(2))
	}
	fmt.Fprintf(&b, "<tr><td><b>Total</b></td><td>%s</td><td>%s</td><td><b>%s</b></td></tr>",
		view.TotalCredit.StringFixed(2), view.TotalDebit.StringFixed(2), view.TotalAmount.StringFixed(2))
	b.WriteString("</table>")
	return b.String()
}

func splitRecipients(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
