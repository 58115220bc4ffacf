package enrich_test

import (
	"testing"

	"github.com/casepilot/casepilot/internal/enrich"
)

func TestExtractFullIntake(t *testing.T) {
	text := `Intake notes for client Maria Gonzalez, case number: PI-2024-0187.
Motor vehicle collision on 03/15/2024, rear-end on I-80. Other driver insured
through State Farm. Client treated at Mercy Hospital and saw Dr. Patel for
follow-up. Second visit to Mercy Hospital on 04/02.`

	cc := enrich.Extract(text)

	if cc.ClientName.Value != "Maria Gonzalez" {
		t.Errorf("client name = %q", cc.ClientName.Value)
	}
	if cc.CaseNumber.Value != "PI-2024-0187" {
		t.Errorf("case number = %q", cc.CaseNumber.Value)
	}
	if cc.CaseType.Value != "auto accident" {
		t.Errorf("case type = %q", cc.CaseType.Value)
	}
	if cc.InsuranceCarrier.Value != "State Farm" {
		t.Errorf("carrier = %q", cc.InsuranceCarrier.Value)
	}
	if cc.IncidentDate.Value != "2024-03-15" {
		t.Errorf("incident date = %q", cc.IncidentDate.Value)
	}
	if len(cc.MedicalProviders) != 2 {
		t.Fatalf("providers = %+v, want Mercy Hospital and Dr. Patel once each", cc.MedicalProviders)
	}
}

func TestExtractWrittenDate(t *testing.T) {
	cc := enrich.Extract("The slip and fall happened on March 3rd, 2024 at the store.")
	if cc.IncidentDate.Value != "2024-03-03" {
		t.Errorf("incident date = %q, want 2024-03-03", cc.IncidentDate.Value)
	}
	if cc.CaseType.Value != "premises liability" {
		t.Errorf("case type = %q", cc.CaseType.Value)
	}
}

func TestExtractISODatePassesThrough(t *testing.T) {
	cc := enrich.Extract("Incident occurred 2024-11-30 per the police report.")
	if cc.IncidentDate.Value != "2024-11-30" {
		t.Errorf("incident date = %q", cc.IncidentDate.Value)
	}
}

func TestExtractNothingFound(t *testing.T) {
	cc := enrich.Extract("short note with no structured facts")
	if cc.ClientName.Found() || cc.CaseNumber.Found() || cc.CaseType.Found() ||
		cc.InsuranceCarrier.Found() || cc.IncidentDate.Found() {
		t.Errorf("expected empty context, got %+v", cc)
	}
	if len(cc.MedicalProviders) != 0 {
		t.Errorf("providers = %+v", cc.MedicalProviders)
	}
}

func TestExtractEmptyText(t *testing.T) {
	cc := enrich.Extract("")
	if cc == nil {
		t.Fatal("Extract returned nil")
	}
	if cc.ClientName.Found() {
		t.Errorf("unexpected field on empty text: %+v", cc)
	}
}
