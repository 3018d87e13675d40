package seed

import (
	"testing"

	"github.com/dukerupert/sabzi/internal/model"
)

func TestParseRecordDefaultData(t *testing.T) {
	tests := []struct {
		line     string
		name     string
		quantity string
		status   model.ItemStatus
		rule     string
	}{
		{"Banana-3-no", "Banana", "3", model.StatusNotNeeded, RuleBareCount},
		{"Bendakaya-1kg", "Bendakaya", "1kg", model.StatusToBuy, RuleCountUnit},
		{"Dondakaya-kg", "Dondakaya", "kg", model.StatusToBuy, RuleBareUnit},
		{"Kottomira-1 katta/10rs", "Kottomira", "1 katta/10rs", model.StatusToBuy, RuleKattaPrice},
		{"Karivepaku-10rs", "Karivepaku", "10rs", model.StatusToBuy, RuleCountUnit},
		{"Potato-2kg-no", "Potato", "2kg", model.StatusNotNeeded, RuleCountUnit},
		{"Beans-1/2 kg", "Beans", "1/2 kg", model.StatusToBuy, RuleFractionUnit},
		{"Vankaya-1/2kg", "Vankaya", "1/2kg", model.StatusToBuy, RuleFractionUnit},
		{"Carrot-1 kg", "Carrot", "1 kg", model.StatusToBuy, RuleCountUnit},
		{"Keera -1 kg-no", "Keera", "1 kg", model.StatusNotNeeded, RuleCountUnit},
		{"Thota koora-10rs", "Thota koora", "10rs", model.StatusToBuy, RuleCountUnit},
		{"Palakoora-10rs-no", "Palakoora", "10rs", model.StatusNotNeeded, RuleCountUnit},
		{"Beera kayalu- kg", "Beera kayalu", "kg", model.StatusToBuy, RuleBareUnit},
		{"Allam-1/4kg", "Allam", "1/4kg", model.StatusToBuy, RuleFractionUnit},
		{"Vellulli-1/2kg-no", "Vellulli", "1/2kg", model.StatusNotNeeded, RuleFractionUnit},
		{"Pachi mirchi-1/2 kg", "Pachi mirchi", "1/2 kg", model.StatusToBuy, RuleFractionUnit},
		{"Mushroom -1 packet", "Mushroom", "1 packet", model.StatusToBuy, RuleCountUnit},
		{"Gongoora-10-rs", "Gongoora", "10-rs", model.StatusToBuy, RuleCountDashPrice},
		{"Lemon-24", "Lemon", "24", model.StatusToBuy, RuleBareCount},
		{"Kaakarakaaya -1/2kg-no", "Kaakarakaaya", "1/2kg", model.StatusNotNeeded, RuleFractionUnit},
		{"Mullangi-3", "Mullangi", "3", model.StatusToBuy, RuleBareCount},
	}
	for _, tt := range tests {
		got := ParseRecord(tt.line)
		if got.Name != tt.name {
			t.Errorf("ParseRecord(%q).Name = %q, want %q", tt.line, got.Name, tt.name)
		}
		if got.Quantity != tt.quantity {
			t.Errorf("ParseRecord(%q).Quantity = %q, want %q", tt.line, got.Quantity, tt.quantity)
		}
		if got.Status != tt.status {
			t.Errorf("ParseRecord(%q).Status = %q, want %q", tt.line, got.Status, tt.status)
		}
		if got.Rule != tt.rule {
			t.Errorf("ParseRecord(%q).Rule = %q, want %q", tt.line, got.Rule, tt.rule)
		}
		if got.Note != nil {
			t.Errorf("ParseRecord(%q).Note = %q, want nil", tt.line, *got.Note)
		}
	}
}

func TestParseRecordThreePart(t *testing.T) {
	got := ParseRecord("Tomato-red and hard -1kg")
	if got.Name != "Tomato" {
		t.Errorf("name = %q, want %q", got.Name, "Tomato")
	}
	if got.Note == nil || *got.Note != "red and hard" {
		t.Errorf("note = %v, want %q", got.Note, "red and hard")
	}
	if got.Quantity != "1kg" {
		t.Errorf("quantity = %q, want %q", got.Quantity, "1kg")
	}
	if got.Status != model.StatusToBuy {
		t.Errorf("status = %q, want %q", got.Status, model.StatusToBuy)
	}
	if got.Rule != RuleThreePart {
		t.Errorf("rule = %q, want %q", got.Rule, RuleThreePart)
	}
}

func TestParseRecordThreePartSpaced(t *testing.T) {
	got := ParseRecord("Onion - small ones - 2kg-no")
	if got.Name != "Onion" || got.Quantity != "2kg" {
		t.Errorf("got name=%q quantity=%q, want Onion/2kg", got.Name, got.Quantity)
	}
	if got.Note == nil || *got.Note != "small ones" {
		t.Errorf("note = %v, want %q", got.Note, "small ones")
	}
	if got.Status != model.StatusNotNeeded {
		t.Errorf("status = %q, want %q", got.Status, model.StatusNotNeeded)
	}
}

func TestParseRecordThreePartNeedsDigitQuantity(t *testing.T) {
	got := ParseRecord("Okra - tender - kg")
	if got.Note != nil {
		t.Errorf("note = %q, want nil", *got.Note)
	}
	if got.Rule != RuleBareUnit {
		t.Errorf("rule = %q, want %q", got.Rule, RuleBareUnit)
	}
	if got.Name != "Okra - tender" || got.Quantity != "kg" {
		t.Errorf("got name=%q quantity=%q", got.Name, got.Quantity)
	}
}

func TestParseRecordThreePartBlankNote(t *testing.T) {
	tests := []struct {
		line     string
		name     string
		quantity string
		rule     string
	}{
		{"A -  -1", "A", "1", RuleBareCount},
		{"Carrot - \t - 1 kg", "Carrot", "1 kg", RuleDashSplit},
	}
	for _, tt := range tests {
		got := ParseRecord(tt.line)
		if got.Note != nil {
			t.Errorf("ParseRecord(%q).Note = %q, want nil", tt.line, *got.Note)
		}
		if got.Name != tt.name || got.Quantity != tt.quantity || got.Rule != tt.rule {
			t.Errorf("ParseRecord(%q) = %q/%q/%q, want %q/%q/%q",
				tt.line, got.Name, got.Quantity, got.Rule, tt.name, tt.quantity, tt.rule)
		}
	}
}

func TestParseRecordFractionBeatsBareCount(t *testing.T) {
	got := ParseRecord("X-1/2kg")
	if got.Quantity != "1/2kg" {
		t.Errorf("quantity = %q, want %q", got.Quantity, "1/2kg")
	}
	if got.Name != "X" {
		t.Errorf("name = %q, want %q", got.Name, "X")
	}
	if got.Rule != RuleFractionUnit {
		t.Errorf("rule = %q, want %q", got.Rule, RuleFractionUnit)
	}
}

func TestParseRecordCaseInsensitive(t *testing.T) {
	tests := []struct {
		line     string
		name     string
		quantity string
		status   model.ItemStatus
	}{
		{"Eggs-12-NO", "Eggs", "12", model.StatusNotNeeded},
		{"Rice-5KG", "Rice", "5KG", model.StatusToBuy},
		{"Dal-1 Packet-No", "Dal", "1 Packet", model.StatusNotNeeded},
		{"Methi-1 KATTA/5RS", "Methi", "1 KATTA/5RS", model.StatusToBuy},
	}
	for _, tt := range tests {
		got := ParseRecord(tt.line)
		if got.Name != tt.name || got.Quantity != tt.quantity || got.Status != tt.status {
			t.Errorf("ParseRecord(%q) = {%q %q %q}, want {%q %q %q}",
				tt.line, got.Name, got.Quantity, got.Status, tt.name, tt.quantity, tt.status)
		}
	}
}

func TestParseRecordStatusSuffixExactOnly(t *testing.T) {
	tests := []string{"Piano", "Avocado-mono", "Capsicum-2-nos", "Kino-no more"}
	for _, line := range tests {
		got := ParseRecord(line)
		if got.Status != model.StatusToBuy {
			t.Errorf("ParseRecord(%q).Status = %q, want %q", line, got.Status, model.StatusToBuy)
		}
	}
}

func TestParseRecordDashSplit(t *testing.T) {
	tests := []struct {
		line     string
		name     string
		quantity string
	}{
		{"Rice-2 bags", "Rice", "2 bags"},
		{"Jaggery-half kg", "Jaggery", "half kg"},
		{"Coriander-rs 5 only", "Coriander", "rs 5 only"},
	}
	for _, tt := range tests {
		got := ParseRecord(tt.line)
		if got.Rule != RuleDashSplit {
			t.Errorf("ParseRecord(%q).Rule = %q, want %q", tt.line, got.Rule, RuleDashSplit)
		}
		if got.Name != tt.name || got.Quantity != tt.quantity {
			t.Errorf("ParseRecord(%q) = {%q %q}, want {%q %q}", tt.line, got.Name, got.Quantity, tt.name, tt.quantity)
		}
	}
}

func TestParseRecordNoMatch(t *testing.T) {
	tests := []struct {
		line string
		name string
	}{
		{"Curry leaves", "Curry leaves"},
		{"Onion-big", "Onion-big"},
		{"Milk-", "Milk"},
		{"Ghee --", "Ghee"},
	}
	for _, tt := range tests {
		got := ParseRecord(tt.line)
		if got.Name != tt.name {
			t.Errorf("ParseRecord(%q).Name = %q, want %q", tt.line, got.Name, tt.name)
		}
		if got.Quantity != "" {
			t.Errorf("ParseRecord(%q).Quantity = %q, want empty", tt.line, got.Quantity)
		}
		if got.Note != nil {
			t.Errorf("ParseRecord(%q).Note = %q, want nil", tt.line, *got.Note)
		}
	}
}

func TestParseRecordNameNeverEmpty(t *testing.T) {
	lines := []string{"-no", "-NO", "---", "- kg", "-1kg", " -24 ", "x", "-", "  a  "}
	for _, line := range lines {
		got := ParseRecord(line)
		if got.Name == "" {
			t.Errorf("ParseRecord(%q).Name is empty", line)
		}
	}
	got := ParseRecord("-5")
	if got.Name != "-5" || got.Quantity != "5" {
		t.Errorf("ParseRecord(%q) = {%q %q}, want {%q %q}", "-5", got.Name, got.Quantity, "-5", "5")
	}

	got = ParseRecord("-no")
	if got.Name != "-no" || got.Status != model.StatusNotNeeded {
		t.Errorf("ParseRecord(%q) = {%q %q}, want {%q %q}", "-no", got.Name, got.Status, "-no", model.StatusNotNeeded)
	}
}

func TestParseRecordTrimsInput(t *testing.T) {
	got := ParseRecord("   Lemon-24   ")
	if got.Name != "Lemon" || got.Quantity != "24" {
		t.Errorf("got {%q %q}, want {Lemon 24}", got.Name, got.Quantity)
	}
}

func TestParseLinesSkipsBlank(t *testing.T) {
	records := ParseLines("Lemon-24\n\n   \r\nMullangi-3\r\n")
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Name != "Lemon" || records[1].Name != "Mullangi" {
		t.Errorf("names = %q, %q", records[0].Name, records[1].Name)
	}
	if records[1].Quantity != "3" {
		t.Errorf("quantity = %q, want %q", records[1].Quantity, "3")
	}
}
