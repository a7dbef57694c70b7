// Package confirm - Confirmation message composition
// Builds the human-readable summary of a validated, priced quote
// request. Pure string composition; delivery belongs to the mail
// adapter. Amounts are formatted to two decimal places here, at the
// presentation boundary, never earlier.
package confirm

import (
	"fmt"
	"html"
	"strings"

	"labquote/core/catalog"
	"labquote/core/quote"
	"labquote/core/request"
)

// Confirmation is a composed confirmation message
type Confirmation struct {
	// Subject is the message subject line
	Subject string

	// Text is the plain-text body
	Text string

	// HTML is the HTML body
	HTML string
}

// Compose builds the confirmation for a validated request and its
// price breakdown. Absent optional detail fields render as "n/a";
// absent free-text fields render as an en dash.
func Compose(req *request.QuoteRequest, bd quote.Breakdown, fees catalog.Fees, ack catalog.AckTexts) Confirmation {
	subject := fmt.Sprintf("Request for Quote -- %s -- %s", bd.ServiceDisplay, req.Institution)

	lines := summaryLines(req, bd, fees)

	var text strings.Builder
	fmt.Fprintf(&text, "Dear %s,\n\n", req.Name)
	text.WriteString("Thank you for your request. Here is a summary:\n\n")
	for _, l := range lines {
		fmt.Fprintf(&text, "  %s: %s\n", l.label, l.value)
	}
	fmt.Fprintf(&text, "\nEstimated total: %s %s\n", bd.Total.StringFixed(2), bd.Currency)
	if ack.RUO != "" {
		text.WriteString("\n" + ack.RUO + "\n")
	}
	if ack.TAT != "" {
		text.WriteString(ack.TAT + "\n")
	}
	text.WriteString("\nWe will follow up promptly with a formal quotation and next steps.\n")

	var htm strings.Builder
	fmt.Fprintf(&htm, "<p>Dear %s,</p>\n", html.EscapeString(req.Name))
	htm.WriteString("<p>Thank you for your request. Here is a summary:</p>\n<ul>\n")
	for _, l := range lines {
		fmt.Fprintf(&htm, "  <li><b>%s:</b> %s</li>\n", html.EscapeString(l.label), html.EscapeString(l.value))
	}
	htm.WriteString("</ul>\n")
	fmt.Fprintf(&htm, "<p><b>Estimated total:</b> %s %s</p>\n", bd.Total.StringFixed(2), bd.Currency)
	if ack.RUO != "" || ack.TAT != "" {
		fmt.Fprintf(&htm, "<p>%s<br/>%s</p>\n", html.EscapeString(ack.RUO), html.EscapeString(ack.TAT))
	}
	htm.WriteString("<p>We will follow up promptly with a formal quotation and next steps.</p>\n")

	return Confirmation{
		Subject: subject,
		Text:    text.String(),
		HTML:    htm.String(),
	}
}

type line struct {
	label string
	value string
}

func summaryLines(req *request.QuoteRequest, bd quote.Breakdown, fees catalog.Fees) []line {
	institution := req.Institution
	if req.Department != "" {
		institution += " -- " + req.Department
	}

	contact := req.Email
	if req.Phone != "" {
		contact += " | " + req.Phone
	}

	country := req.Country
	if req.VATID != "" {
		country += " (" + req.VATID + ")"
	}

	billing := fmt.Sprintf("%s, %s, %s", req.BillingName, req.BillingEmail, req.BillingAddress)
	if req.PORef != "" {
		billing += " | PO/Cost center: " + req.PORef
	}

	lines := []line{
		{"Institution", institution},
		{"Contact", contact},
		{"Country", country},
		{"Billing", billing},
		{"Service", bd.ServiceDisplay},
		{"Samples", fmt.Sprintf("%d", req.Samples)},
		{"DNA isolation", yesNo(req.DNAIsolation)},
		{"Quick Start", yesNo(req.QuickStart)},
		{"Sample type", string(req.SampleType)},
	}

	if req.SampleType == request.SampleTypeDNA {
		lines = append(lines, line{"DNA", dnaDetail(req.DNA)})
	}
	if req.SampleType == request.SampleTypePellet {
		lines = append(lines, line{"Cells/sample (x10^6)", pelletDetail(req.Pellet)})
	}

	qc := string(req.QCFallback)
	if req.QCFallback == request.QCFallbackReplace {
		qc += fmt.Sprintf(" (replacement fee %s %s per failed sample)", fees.ReplaceSampleFee.StringFixed(2), bd.Currency)
	}
	lines = append(lines,
		line{"QC handling", qc},
		line{"Deliverables", deliverableList(req.Deliverables)},
		line{"Use case", orDash(req.UseCase)},
		line{"Notes", orDash(req.Notes)},
		line{"Commercial basis", commercialLabel(req.CommercialBasis)},
		line{"Comments", orDash(req.Comments)},
	)

	return lines
}

// dnaDetail renders the DNA sub-record, degrading to "n/a" for any
// absent field (including a wholly absent sub-record)
func dnaDetail(d *request.DNADetail) string {
	if d == nil {
		d = &request.DNADetail{}
	}
	return fmt.Sprintf("%s ng/uL, %s uL, buffer %s, purity %s",
		orNA(d.ConcentrationNgPerUl), orNA(d.VolumeUl), orNA(d.Buffer), orNA(d.PurityRatios))
}

func pelletDetail(p *request.PelletDetail) string {
	if p == nil {
		return "n/a"
	}
	return orNA(p.CellsPerSampleMillion)
}

func deliverableList(ds []request.Deliverable) string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = string(d)
	}
	return strings.Join(parts, ", ")
}

func commercialLabel(b request.CommercialBasis) string {
	if b == request.CommercialBasisHaveQuote {
		return "Have valid quote/pricelist"
	}
	return "Need a formal quote"
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func orNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
