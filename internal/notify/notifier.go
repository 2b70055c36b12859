package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sahnico/taxcalc/internal/config"
	"github.com/sahnico/taxcalc/internal/output"
	"go.uber.org/zap"
)

var ist = time.FixedZone("IST", 5*60*60+30*60)

const timestampLayout = "02/01/2006, 03:04:05 PM"

var nowFunc = time.Now

// ContactRequest is an enquiry submitted through the firm's contact form
type ContactRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required"`
	Company      string `json:"company,omitempty"`
	BusinessType string `json:"business_type,omitempty"`
	Service      string `json:"service,omitempty"`
	Message      string `json:"message" validate:"required"`
}

// Notification is a message from the firm to one client
type Notification struct {
	ClientEmail      string `json:"client_email" validate:"required,email"`
	ClientName       string `json:"client_name" validate:"required"`
	Subject          string `json:"subject" validate:"required"`
	Message          string `json:"message" validate:"required"`
	NotificationType string `json:"notification_type"`
}

// Notifier composes the firm's outgoing mail and hands it to a Mailer
type Notifier struct {
	mailer   Mailer
	settings config.EmailSettings
	firm     config.FirmSettings
	validate *validator.Validate
	logger   *zap.Logger
}

// NewNotifier creates a notifier sending through mailer
func NewNotifier(mailer Mailer, settings config.EmailSettings, firm config.FirmSettings, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{
		mailer:   mailer,
		settings: settings,
		firm:     firm,
		validate: validator.New(),
		logger:   logger,
	}
}

// SendContactForm forwards a contact enquiry to the firm's admin mailbox
func (n *Notifier) SendContactForm(ctx context.Context, req ContactRequest) error {
	if err := n.validate.Struct(req); err != nil {
		return fmt.Errorf("invalid contact request: %w", err)
	}
	to := n.settings.AdminEmail
	if to == "" {
		to = n.firm.Email
	}
	if to == "" {
		return errors.New("no admin email configured")
	}

	params := map[string]string{
		"to_email":        to,
		"from_name":       req.Name,
		"from_email":      req.Email,
		"phone":           req.Phone,
		"company":         orNA(req.Company),
		"business_type":   orNA(req.BusinessType),
		"service":         orNA(req.Service),
		"message":         req.Message,
		"submission_time": timestamp(),
	}
	if err := n.mailer.Send(ctx, n.settings.TemplateFor(false), params); err != nil {
		return fmt.Errorf("failed to send contact form: %w", err)
	}
	n.logger.Info("contact form forwarded",
		zap.String("op", "notify.SendContactForm"),
		zap.String("from", req.Email),
	)
	return nil
}

// SendClientNotification sends one message to a client
func (n *Notifier) SendClientNotification(ctx context.Context, note Notification) error {
	if err := n.validate.Struct(note); err != nil {
		return fmt.Errorf("invalid notification: %w", err)
	}
	kind := note.NotificationType
	if kind == "" {
		kind = "general"
	}

	params := map[string]string{
		"to_email":          note.ClientEmail,
		"to_name":           note.ClientName,
		"from_name":         n.firm.Name,
		"subject":           note.Subject,
		"message":           note.Message,
		"notification_type": kind,
		"sent_at":           timestamp(),
	}
	if err := n.mailer.Send(ctx, n.settings.TemplateFor(true), params); err != nil {
		return fmt.Errorf("failed to notify %s: %w", note.ClientEmail, err)
	}
	n.logger.Info("client notified",
		zap.String("op", "notify.SendClientNotification"),
		zap.String("to", note.ClientEmail),
		zap.String("type", kind),
	)
	return nil
}

// SendTaxSummary mails the regime comparison in report to its taxpayer. An
// empty to falls back to the taxpayer's own address.
func (n *Notifier) SendTaxSummary(ctx context.Context, to string, report *output.Report) error {
	if to == "" {
		to = report.Taxpayer.Email
	}
	return n.SendClientNotification(ctx, Notification{
		ClientEmail:      to,
		ClientName:       report.Taxpayer.Name,
		Subject:          fmt.Sprintf("Income Tax Computation - AY %s", report.Taxpayer.AssessmentYear),
		Message:          TaxSummaryMessage(report),
		NotificationType: "tax_summary",
	})
}

// TaxSummaryMessage renders the plain-text body used by SendTaxSummary
func TaxSummaryMessage(r *output.Report) string {
	rec := output.Analyze(r.Comparison)

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", r.Taxpayer.Name)
	fmt.Fprintf(&b, "Your income tax computation for AY %s (PAN %s) is ready.\n\n",
		r.Taxpayer.AssessmentYear, r.Taxpayer.PAN)
	fmt.Fprintf(&b, "Old Regime Tax: %s\n", output.FormatRupees(r.Comparison.Old.TotalTaxPayable))
	fmt.Fprintf(&b, "New Regime Tax: %s\n", output.FormatRupees(r.Comparison.New.TotalTaxPayable))
	fmt.Fprintf(&b, "Recommended: %s\n", rec.Label)
	fmt.Fprintf(&b, "%s\n", rec.Message)
	if note := output.PreferenceNote(r); note != "" {
		fmt.Fprintf(&b, "%s\n", note)
	}
	fmt.Fprintf(&b, "%s\n\n", output.SettlementLine(r.Settlement))
	fmt.Fprintf(&b, "Regards,\n%s", r.Firm.Name)
	return b.String()
}

func timestamp() string {
	return nowFunc().In(ist).Format(timestampLayout)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
