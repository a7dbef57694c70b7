// Package request - Payload validation
// Validation accumulates every field violation into a single
// VALIDATION_ERROR instead of stopping at the first, so callers can
// surface the full list to the requester in one round trip. The
// legal-terms check is a business rule and runs only once the
// payload is structurally sound, yielding a distinct
// LEGAL_NOT_ACCEPTED failure.
package request

import (
	"encoding/json"
	"net/mail"
	"strconv"
	"strings"

	"labquote/internal/errors"
)

type violations struct {
	fields []errors.FieldError
}

func (v *violations) add(path, reason string) {
	v.fields = append(v.fields, errors.FieldError{Path: path, Reason: reason})
}

// requireString checks presence and a minimum trimmed length,
// recording a violation and returning "" when the field is unusable.
func (v *violations) requireString(path string, val *string, minLen int) string {
	if val == nil {
		v.add(path, "is required")
		return ""
	}
	if len(strings.TrimSpace(*val)) < minLen {
		v.add(path, "must be at least "+strconv.Itoa(minLen)+" characters")
		return ""
	}
	return *val
}

// requireEmail checks presence and email address grammar
func (v *violations) requireEmail(path string, val *string) string {
	if val == nil {
		v.add(path, "is required")
		return ""
	}
	addr, err := mail.ParseAddress(*val)
	if err != nil || addr.Address != *val {
		v.add(path, "must be a valid email address")
		return ""
	}
	return *val
}

// requireBool checks presence of a boolean field
func (v *violations) requireBool(path string, val *bool) bool {
	if val == nil {
		v.add(path, "is required")
		return false
	}
	return *val
}

func optional(val *string) string {
	if val == nil {
		return ""
	}
	return *val
}

// ValidateJSON decodes a raw JSON payload and validates it.
// Malformed JSON and type mismatches are reported as VALIDATION_ERROR
// with the offending field named where the decoder can identify it.
func ValidateJSON(raw []byte) (*QuoteRequest, error) {
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		if typeErr, ok := err.(*json.UnmarshalTypeError); ok && typeErr.Field != "" {
			return nil, errors.Validation([]errors.FieldError{
				{Path: typeErr.Field, Reason: "must be of type " + typeErr.Type.String()},
			})
		}
		return nil, errors.Wrap(errors.TypeValidation, "payload is not valid JSON", err)
	}
	return Validate(&p)
}

// Validate checks a raw payload against the quote request schema and
// returns the typed request. Stateless and side-effect free.
func Validate(p *Payload) (*QuoteRequest, error) {
	var v violations

	req := &QuoteRequest{
		Name:           v.requireString("name", p.Name, 2),
		Institution:    v.requireString("institution", p.Institution, 2),
		Email:          v.requireEmail("email", p.Email),
		Country:        v.requireString("country", p.Country, 2),
		Phone:          optional(p.Phone),
		Department:     optional(p.Department),
		VATID:          optional(p.VATID),
		BillingName:    v.requireString("billingName", p.BillingName, 2),
		BillingEmail:   v.requireEmail("billingEmail", p.BillingEmail),
		BillingAddress: v.requireString("billingAddress", p.BillingAddress, 5),
		PORef:          optional(p.PORef),
		UseCase:        optional(p.UseCase),
		Notes:          optional(p.Notes),
		Comments:       optional(p.Comments),
	}

	switch {
	case p.Samples == nil:
		v.add("samples", "is required")
	case *p.Samples < 1:
		v.add("samples", "must be a positive integer")
	default:
		req.Samples = *p.Samples
	}

	req.DNAIsolation = v.requireBool("dnaIsolation", p.DNAIsolation)
	req.QuickStart = v.requireBool("quickStart", p.QuickStart)

	req.SampleType = SampleType(v.requireEnum("sampleType", p.SampleType,
		string(SampleTypeDNA), string(SampleTypePellet), string(SampleTypeOther)))
	req.QCFallback = QCFallback(v.requireEnum("qcFallback", p.QCFallback,
		string(QCFallbackProceed), string(QCFallbackReplace), string(QCFallbackContact)))
	req.CommercialBasis = CommercialBasis(v.requireEnum("commercialBasis", p.CommercialBasis,
		string(CommercialBasisHaveQuote), string(CommercialBasisNeedQuote)))

	req.Deliverables = v.deliverables(p.Deliverables)

	// Sub-records are never required, whatever the sample type says.
	// An incomplete detail section degrades to "n/a" placeholders at
	// composition time instead of rejecting the request.
	if p.DNA != nil {
		req.DNA = &DNADetail{
			ConcentrationNgPerUl: optional(p.DNA.ConcentrationNgPerUl),
			VolumeUl:             optional(p.DNA.VolumeUl),
			Buffer:               optional(p.DNA.Buffer),
			PurityRatios:         optional(p.DNA.PurityRatios),
		}
	}
	if p.Pellet != nil {
		req.Pellet = &PelletDetail{
			CellsPerSampleMillion: optional(p.Pellet.CellsPerSampleMillion),
		}
	}

	if p.AcceptedLegal == nil {
		v.add("acceptedLegal", "is required")
	}

	if len(v.fields) > 0 {
		return nil, errors.Validation(v.fields)
	}

	if !*p.AcceptedLegal {
		return nil, errors.LegalNotAccepted()
	}
	req.AcceptedLegal = true

	return req, nil
}

// requireEnum checks presence and membership in an allowed set
func (v *violations) requireEnum(path string, val *string, allowed ...string) string {
	if val == nil {
		v.add(path, "is required")
		return ""
	}
	for _, a := range allowed {
		if *val == a {
			return *val
		}
	}
	v.add(path, "must be one of: "+strings.Join(allowed, ", "))
	return ""
}

// deliverables validates the deliverable selection: present, at
// least one element, every element a known artifact. Duplicates are
// collapsed, preserving first occurrence order.
func (v *violations) deliverables(raw *[]string) []Deliverable {
	if raw == nil {
		v.add("deliverables", "is required")
		return nil
	}
	if len(*raw) == 0 {
		v.add("deliverables", "must contain at least one deliverable")
		return nil
	}

	known := map[string]bool{
		string(DeliverableCEL):     true,
		string(DeliverableARR):     true,
		string(DeliverableQC):      true,
		string(DeliverableCYCHP):   true,
		string(DeliverableSEGMENT): true,
	}

	seen := make(map[string]bool, len(*raw))
	var out []Deliverable
	for i, d := range *raw {
		if !known[d] {
			v.add("deliverables["+strconv.Itoa(i)+"]", "unknown deliverable: "+d)
			continue
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, Deliverable(d))
	}
	return out
}
