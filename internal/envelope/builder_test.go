package envelope

import (
	"testing"

	"fedspeak/internal/dictionary"
	"fedspeak/internal/models"
	"fedspeak/internal/resolver"
)

func testBuilder() *Builder {
	dict := dictionary.New([]dictionary.Record{
		{Key: "GSA", Entry: models.AcronymEntry{Full: "General Services Administration", Description: "Buys things.", Agency: "GSA", Category: models.CategoryAgency}},
		{Key: "OMB", Entry: models.AcronymEntry{Full: "Office of Management and Budget", Description: "Budgets.", Agency: "EOP", Category: models.CategoryOffice}},
	})
	return NewBuilder(resolver.NewDecoder(dict), resolver.NewEncoder(dict))
}

func TestDecode(t *testing.T) {
	b := testBuilder()

	tests := []struct {
		name        string
		req         models.DecodeRequest
		wantSuccess bool
		wantQuery   string
		wantMode    models.Mode
		wantCount   int
	}{
		{"single hit", models.DecodeRequest{Acronym: "gsa"}, true, "gsa", models.ModeSingle, 1},
		{"single miss", models.DecodeRequest{Acronym: "XYZZY"}, false, "XYZZY", models.ModeSingle, 0},
		{"scan", models.DecodeRequest{Text: "GSA and OMB"}, true, "GSA and OMB", models.ModeScan, 2},
		{"scan miss", models.DecodeRequest{Text: "nothing here"}, false, "nothing here", models.ModeScan, 0},
		{"acronym wins over text", models.DecodeRequest{Acronym: "OMB", Text: "GSA and OMB"}, true, "OMB", models.ModeSingle, 1},
		{"whitespace acronym", models.DecodeRequest{Acronym: "  ", Text: "GSA"}, false, "  ", models.ModeSingle, 0},
		{"empty", models.DecodeRequest{}, false, "", models.ModeSingle, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Decode(tt.req)
			if got.Success != tt.wantSuccess || got.Query != tt.wantQuery || got.Mode != tt.wantMode || got.Count != tt.wantCount {
				t.Errorf("Decode(%+v) = %+v", tt.req, got)
			}
			if got.Results == nil {
				t.Error("Results is nil, want empty slice")
			}
			if got.Count != len(got.Results) {
				t.Errorf("Count = %d, len(Results) = %d", got.Count, len(got.Results))
			}
			if got.Truncated {
				t.Error("Truncated = true, want false")
			}
		})
	}
}

func TestEncode(t *testing.T) {
	b := testBuilder()

	tests := []struct {
		name        string
		req         models.EncodeRequest
		wantSuccess bool
		wantMode    models.Mode
		wantFirst   string
	}{
		{"single hit", models.EncodeRequest{Name: "general services administration"}, true, models.ModeSingle, "GSA"},
		{"single miss", models.EncodeRequest{Name: "Bureau of Imaginary Things"}, false, models.ModeSingle, ""},
		{"scan", models.EncodeRequest{Text: "The Office of Management and Budget"}, true, models.ModeScan, "OMB"},
		{"name wins over text", models.EncodeRequest{Name: "General Services Administration", Text: "Office of Management and Budget"}, true, models.ModeSingle, "GSA"},
		{"empty", models.EncodeRequest{}, false, models.ModeSingle, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Encode(tt.req)
			if got.Success != tt.wantSuccess || got.Mode != tt.wantMode {
				t.Errorf("Encode(%+v) = %+v", tt.req, got)
			}
			first := ""
			if len(got.Results) > 0 {
				first = got.Results[0].Acronym
			}
			if first != tt.wantFirst {
				t.Errorf("Encode(%+v) first result = %q, want %q", tt.req, first, tt.wantFirst)
			}
			if got.Count != len(got.Results) {
				t.Errorf("Count = %d, len(Results) = %d", got.Count, len(got.Results))
			}
		})
	}
}

func TestEmptyEnvelopeSerialization(t *testing.T) {
	b := testBuilder()

	for name, resp := range map[string]models.Response{
		"decode": b.Decode(models.DecodeRequest{}),
		"encode": b.Encode(models.EncodeRequest{}),
	} {
		got, err := Marshal(resp)
		if err != nil {
			t.Fatalf("%s: Marshal() error = %v", name, err)
		}
		want := `{"success":false,"query":"","mode":"single","results":[],"count":0,"truncated":false}`
		if string(got) != want {
			t.Errorf("%s: Marshal() = %s, want %s", name, got, want)
		}
	}
}
