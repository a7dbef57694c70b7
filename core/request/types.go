// Package request - Quote request schema and validation
// Turns the raw, untyped payload received over the wire into a
// well-typed QuoteRequest, enforcing field presence, types,
// enumerations, and conditional requirements.
package request

// SampleType discriminates the kind of sample material submitted
type SampleType string

const (
	SampleTypeDNA    SampleType = "dna"
	SampleTypePellet SampleType = "pellet"
	SampleTypeOther  SampleType = "other"
)

// QCFallback selects how failed samples are handled
type QCFallback string

const (
	QCFallbackProceed QCFallback = "proceed"
	QCFallbackReplace QCFallback = "replace"
	QCFallbackContact QCFallback = "contact"
)

// CommercialBasis states whether the customer already holds a quote
type CommercialBasis string

const (
	CommercialBasisHaveQuote CommercialBasis = "have-quote"
	CommercialBasisNeedQuote CommercialBasis = "need-quote"
)

// Deliverable is a named output artifact the customer selects
type Deliverable string

const (
	DeliverableCEL     Deliverable = "CEL"
	DeliverableARR     Deliverable = "ARR"
	DeliverableQC      Deliverable = "QC"
	DeliverableCYCHP   Deliverable = "CYCHP"
	DeliverableSEGMENT Deliverable = "SEGMENT"
)

// DNADetail holds DNA sample metadata. Fields are free-text and
// individually optional; absent values render as "n/a" downstream.
type DNADetail struct {
	ConcentrationNgPerUl string `json:"concentrationNgPerUl,omitempty"`
	VolumeUl             string `json:"volumeUl,omitempty"`
	Buffer               string `json:"buffer,omitempty"`
	PurityRatios         string `json:"purityRatios,omitempty"`
}

// PelletDetail holds cell pellet sample metadata
type PelletDetail struct {
	CellsPerSampleMillion string `json:"cellsPerSampleMillion,omitempty"`
}

// QuoteRequest is a validated, schema-conformant quote request.
// Optional free-text fields are empty strings when absent. The DNA
// and Pellet sub-records stay optional regardless of SampleType;
// downstream composition degrades to "n/a" placeholders rather than
// rejecting an incomplete request.
type QuoteRequest struct {
	Name        string `json:"name"`
	Institution string `json:"institution"`
	Email       string `json:"email"`
	Country     string `json:"country"`
	Phone       string `json:"phone,omitempty"`
	Department  string `json:"department,omitempty"`
	VATID       string `json:"vatId,omitempty"`

	Samples      int  `json:"samples"`
	DNAIsolation bool `json:"dnaIsolation"`
	QuickStart   bool `json:"quickStart"`

	BillingName    string `json:"billingName"`
	BillingEmail   string `json:"billingEmail"`
	BillingAddress string `json:"billingAddress"`
	PORef          string `json:"poRef,omitempty"`

	UseCase string `json:"useCase,omitempty"`
	Notes   string `json:"notes,omitempty"`

	SampleType SampleType    `json:"sampleType"`
	DNA        *DNADetail    `json:"dna,omitempty"`
	Pellet     *PelletDetail `json:"pellet,omitempty"`

	QCFallback   QCFallback    `json:"qcFallback"`
	Deliverables []Deliverable `json:"deliverables"`

	AcceptedLegal   bool            `json:"acceptedLegal"`
	CommercialBasis CommercialBasis `json:"commercialBasis"`
	Comments        string          `json:"comments,omitempty"`
}

// Payload is the raw wire shape of a quote request. Pointer fields
// distinguish absent from zero-valued input; unknown keys are
// ignored, matching the original form endpoint.
type Payload struct {
	Name        *string `json:"name"`
	Institution *string `json:"institution"`
	Email       *string `json:"email"`
	Country     *string `json:"country"`
	Phone       *string `json:"phone"`
	Department  *string `json:"department"`
	VATID       *string `json:"vatId"`

	Samples      *int  `json:"samples"`
	DNAIsolation *bool `json:"dnaIsolation"`
	QuickStart   *bool `json:"quickStart"`

	BillingName    *string `json:"billingName"`
	BillingEmail   *string `json:"billingEmail"`
	BillingAddress *string `json:"billingAddress"`
	PORef          *string `json:"poRef"`

	UseCase *string `json:"useCase"`
	Notes   *string `json:"notes"`

	SampleType *string        `json:"sampleType"`
	DNA        *PayloadDNA    `json:"dna"`
	Pellet     *PayloadPellet `json:"pellet"`

	QCFallback   *string   `json:"qcFallback"`
	Deliverables *[]string `json:"deliverables"`

	AcceptedLegal   *bool   `json:"acceptedLegal"`
	CommercialBasis *string `json:"commercialBasis"`
	Comments        *string `json:"comments"`
}

// PayloadDNA is the raw DNA sub-record
type PayloadDNA struct {
	ConcentrationNgPerUl *string `json:"concentrationNgPerUl"`
	VolumeUl             *string `json:"volumeUl"`
	Buffer               *string `json:"buffer"`
	PurityRatios         *string `json:"purityRatios"`
}

// PayloadPellet is the raw pellet sub-record
type PayloadPellet struct {
	CellsPerSampleMillion *string `json:"cellsPerSampleMillion"`
}
