package request

import (
	"strings"
	"testing"

	"labquote/internal/errors"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func boolPtr(b bool) *bool    { return &b }

// validPayload returns a fully populated, valid raw payload
func validPayload() *Payload {
	return &Payload{
		Name:           strPtr("Dr. Jane Roe"),
		Institution:    strPtr("Example University"),
		Email:          strPtr("jane.roe@example.edu"),
		Country:        strPtr("DE"),
		Phone:          strPtr("+49 30 1234567"),
		Department:     strPtr("Human Genetics"),
		VATID:          strPtr("DE123456789"),
		Samples:        intPtr(5),
		DNAIsolation:   boolPtr(true),
		QuickStart:     boolPtr(false),
		BillingName:    strPtr("Accounts Payable"),
		BillingEmail:   strPtr("ap@example.edu"),
		BillingAddress: strPtr("Example Street 1, 10115 Berlin"),
		PORef:          strPtr("PO-2024-0815"),
		UseCase:        strPtr("CNV screening"),
		Notes:          strPtr("ship on dry ice"),
		SampleType:     strPtr("dna"),
		DNA: &PayloadDNA{
			ConcentrationNgPerUl: strPtr("50"),
			VolumeUl:             strPtr("30"),
			Buffer:               strPtr("tris-edta-10-0.1"),
			PurityRatios:         strPtr("1.8/2.0"),
		},
		QCFallback:      strPtr("proceed"),
		Deliverables:    &[]string{"CEL", "ARR", "QC"},
		AcceptedLegal:   boolPtr(true),
		CommercialBasis: strPtr("need-quote"),
		Comments:        strPtr("none"),
	}
}

// fieldPaths extracts the violation paths from a validation error
func fieldPaths(t *testing.T, err error) []string {
	t.Helper()
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if !errors.IsType(err, errors.TypeValidation) {
		t.Fatalf("error = %v, want VALIDATION_ERROR", err)
	}
	fields := errors.FieldsOf(err)
	paths := make([]string, len(fields))
	for i, f := range fields {
		paths[i] = f.Path
	}
	return paths
}

func TestValidateAcceptsFullPayload(t *testing.T) {
	req, err := Validate(validPayload())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.Name != "Dr. Jane Roe" || req.Institution != "Example University" {
		t.Errorf("contact fields not carried over: %+v", req)
	}
	if req.Samples != 5 || !req.DNAIsolation || req.QuickStart {
		t.Errorf("order fields not carried over: %+v", req)
	}
	if req.SampleType != SampleTypeDNA {
		t.Errorf("sampleType = %s, want dna", req.SampleType)
	}
	if req.DNA == nil || req.DNA.Buffer != "tris-edta-10-0.1" {
		t.Errorf("dna sub-record not carried over: %+v", req.DNA)
	}
	if len(req.Deliverables) != 3 || req.Deliverables[0] != DeliverableCEL {
		t.Errorf("deliverables = %v", req.Deliverables)
	}
	if !req.AcceptedLegal {
		t.Error("acceptedLegal not set on validated request")
	}
}

func TestValidateMissingBillingEmail(t *testing.T) {
	p := validPayload()
	p.BillingEmail = nil

	_, err := Validate(p)
	paths := fieldPaths(t, err)
	if len(paths) != 1 || paths[0] != "billingEmail" {
		t.Errorf("violations = %v, want [billingEmail]", paths)
	}
}

func TestValidateAccumulatesAllViolations(t *testing.T) {
	p := validPayload()
	p.Name = nil
	p.Email = strPtr("not-an-email")
	p.Samples = intPtr(0)
	p.QCFallback = strPtr("ignore")

	_, err := Validate(p)
	paths := fieldPaths(t, err)

	want := []string{"name", "email", "samples", "qcFallback"}
	if len(paths) != len(want) {
		t.Fatalf("violations = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("violation %d = %s, want %s", i, paths[i], want[i])
		}
	}
}

func TestValidateMinimumLengths(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Payload)
		path   string
	}{
		{"short name", func(p *Payload) { p.Name = strPtr("J") }, "name"},
		{"short institution", func(p *Payload) { p.Institution = strPtr("X") }, "institution"},
		{"short country", func(p *Payload) { p.Country = strPtr("D") }, "country"},
		{"short billing name", func(p *Payload) { p.BillingName = strPtr("A") }, "billingName"},
		{"short billing address", func(p *Payload) { p.BillingAddress = strPtr("B St") }, "billingAddress"},
		{"whitespace only name", func(p *Payload) { p.Name = strPtr("   ") }, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			tt.mutate(p)

			_, err := Validate(p)
			paths := fieldPaths(t, err)
			if len(paths) != 1 || paths[0] != tt.path {
				t.Errorf("violations = %v, want [%s]", paths, tt.path)
			}
		})
	}
}

func TestValidateEmailGrammar(t *testing.T) {
	for _, bad := range []string{"plainaddress", "@example.com", "user@", "user @example.com", "Jane <jane@example.com>"} {
		t.Run(bad, func(t *testing.T) {
			p := validPayload()
			p.Email = strPtr(bad)

			_, err := Validate(p)
			paths := fieldPaths(t, err)
			if len(paths) != 1 || paths[0] != "email" {
				t.Errorf("violations = %v, want [email]", paths)
			}
		})
	}
}

func TestValidateEnumViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Payload)
		path   string
	}{
		{"bad sample type", func(p *Payload) { p.SampleType = strPtr("tissue") }, "sampleType"},
		{"bad qc fallback", func(p *Payload) { p.QCFallback = strPtr("retry") }, "qcFallback"},
		{"bad commercial basis", func(p *Payload) { p.CommercialBasis = strPtr("free") }, "commercialBasis"},
		{"bad deliverable element", func(p *Payload) { p.Deliverables = &[]string{"CEL", "PDF"} }, "deliverables[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			tt.mutate(p)

			_, err := Validate(p)
			paths := fieldPaths(t, err)
			if len(paths) != 1 || paths[0] != tt.path {
				t.Errorf("violations = %v, want [%s]", paths, tt.path)
			}
		})
	}
}

func TestValidateDeliverables(t *testing.T) {
	t.Run("empty selection fails", func(t *testing.T) {
		p := validPayload()
		p.Deliverables = &[]string{}

		_, err := Validate(p)
		paths := fieldPaths(t, err)
		if len(paths) != 1 || paths[0] != "deliverables" {
			t.Errorf("violations = %v, want [deliverables]", paths)
		}
	})

	t.Run("single valid deliverable passes", func(t *testing.T) {
		p := validPayload()
		p.Deliverables = &[]string{"SEGMENT"}

		req, err := Validate(p)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(req.Deliverables) != 1 || req.Deliverables[0] != DeliverableSEGMENT {
			t.Errorf("deliverables = %v", req.Deliverables)
		}
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		p := validPayload()
		p.Deliverables = &[]string{"QC", "CEL", "QC"}

		req, err := Validate(p)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(req.Deliverables) != 2 || req.Deliverables[0] != DeliverableQC || req.Deliverables[1] != DeliverableCEL {
			t.Errorf("deliverables = %v, want [QC CEL]", req.Deliverables)
		}
	})
}

func TestValidateLegalNotAccepted(t *testing.T) {
	p := validPayload()
	p.AcceptedLegal = boolPtr(false)

	_, err := Validate(p)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.IsType(err, errors.TypeLegal) {
		t.Errorf("error = %v, want LEGAL_NOT_ACCEPTED", err)
	}
}

// Structural violations take precedence: the legal rejection only
// fires once the payload is otherwise well-formed.
func TestValidateLegalAfterStructure(t *testing.T) {
	p := validPayload()
	p.AcceptedLegal = boolPtr(false)
	p.BillingEmail = nil

	_, err := Validate(p)
	if !errors.IsType(err, errors.TypeValidation) {
		t.Errorf("error = %v, want VALIDATION_ERROR", err)
	}
}

func TestValidateLenientSubRecords(t *testing.T) {
	t.Run("dna type without dna detail", func(t *testing.T) {
		p := validPayload()
		p.DNA = nil

		req, err := Validate(p)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if req.DNA != nil {
			t.Errorf("dna = %+v, want nil", req.DNA)
		}
	})

	t.Run("pellet type without pellet detail", func(t *testing.T) {
		p := validPayload()
		p.SampleType = strPtr("pellet")
		p.DNA = nil
		p.Pellet = nil

		req, err := Validate(p)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if req.Pellet != nil {
			t.Errorf("pellet = %+v, want nil", req.Pellet)
		}
	})
}

func TestValidateOptionalFieldsAbsent(t *testing.T) {
	p := validPayload()
	p.Phone = nil
	p.Department = nil
	p.VATID = nil
	p.PORef = nil
	p.UseCase = nil
	p.Notes = nil
	p.Comments = nil

	req, err := Validate(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Phone != "" || req.Notes != "" {
		t.Errorf("optional fields should default to empty: %+v", req)
	}
}

func TestValidateJSON(t *testing.T) {
	t.Run("malformed JSON", func(t *testing.T) {
		_, err := ValidateJSON([]byte("{not json"))
		if !errors.IsType(err, errors.TypeValidation) {
			t.Errorf("error = %v, want VALIDATION_ERROR", err)
		}
	})

	t.Run("type mismatch names the field", func(t *testing.T) {
		_, err := ValidateJSON([]byte(`{"samples": "five"}`))
		if !errors.IsType(err, errors.TypeValidation) {
			t.Fatalf("error = %v, want VALIDATION_ERROR", err)
		}
		fields := errors.FieldsOf(err)
		if len(fields) != 1 || fields[0].Path != "samples" {
			t.Errorf("fields = %v, want samples", fields)
		}
	})

	t.Run("valid document", func(t *testing.T) {
		doc := `{
			"name": "Dr. Jane Roe",
			"institution": "Example University",
			"email": "jane.roe@example.edu",
			"country": "DE",
			"samples": 5,
			"dnaIsolation": true,
			"quickStart": false,
			"billingName": "Accounts Payable",
			"billingEmail": "ap@example.edu",
			"billingAddress": "Example Street 1, 10115 Berlin",
			"sampleType": "other",
			"qcFallback": "contact",
			"deliverables": ["CYCHP"],
			"acceptedLegal": true,
			"commercialBasis": "have-quote"
		}`
		req, err := ValidateJSON([]byte(doc))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if req.SampleType != SampleTypeOther || req.QCFallback != QCFallbackContact {
			t.Errorf("enums not carried over: %+v", req)
		}
	})

	t.Run("unknown keys are ignored", func(t *testing.T) {
		doc := strings.Replace(`{
			"name": "Dr. Jane Roe",
			"institution": "Example University",
			"email": "jane.roe@example.edu",
			"country": "DE",
			"samples": 5,
			"dnaIsolation": true,
			"quickStart": false,
			"billingName": "Accounts Payable",
			"billingEmail": "ap@example.edu",
			"billingAddress": "Example Street 1, 10115 Berlin",
			"sampleType": "other",
			"qcFallback": "contact",
			"deliverables": ["CYCHP"],
			"acceptedLegal": true,
			"commercialBasis": "have-quote"
		}`, `"name"`, `"extra": 1, "name"`, 1)
		if _, err := ValidateJSON([]byte(doc)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
