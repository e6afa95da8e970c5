package vehicle

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubRepository struct {
	sets map[string][]Record
	errs map[string]error
}

func (s *stubRepository) FetchDataset(_ context.Context, dataset Dataset, _ string) ([]Record, error) {
	if err, ok := s.errs[dataset.Name]; ok {
		return nil, err
	}
	return s.sets[dataset.Name], nil
}

func testDatasets(includeBody bool) Datasets {
	secondaries := []Dataset{
		{Name: DatasetBrandstof, Resource: ResourceBrandstof},
		{Name: DatasetKleur, Resource: ResourceKleur},
	}
	if includeBody {
		secondaries = append(secondaries,
			Dataset{Name: DatasetCarrosserie, Resource: ResourceCarrosserie},
			Dataset{Name: DatasetCarrosserieSpecifiek, Resource: ResourceCarrosserieSpecifiek},
		)
	}
	secondaries = append(secondaries, Dataset{Name: DatasetAssen, Resource: ResourceAssen})
	return Datasets{
		Basis:       Dataset{Name: DatasetBasis, Resource: ResourceBasis},
		Secondaries: secondaries,
	}
}

func TestLookup_NotFound(t *testing.T) {
	type args struct {
		basis []Record
	}
	tests := []struct {
		name string
		args args
	}{
		{"Test empty primary dataset", args{nil}},
		{"Test primary record without brand or trade name", args{[]Record{{"kenteken": "AB12CD"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubRepository{sets: map[string][]Record{
				DatasetBasis:     tt.args.basis,
				DatasetBrandstof: {{"brandstof_omschrijving": "Benzine"}},
			}}
			service := NewVehicleService(repo, testDatasets(false), PartialTolerant)

			_, err := service.Lookup(context.Background(), "AB12CD", false)
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("Lookup() error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestLookup_PrimaryFailureIsFatal(t *testing.T) {
	upstreamErr := &UpstreamError{Dataset: DatasetBasis, Status: 503, Body: "unavailable"}
	repo := &stubRepository{errs: map[string]error{DatasetBasis: upstreamErr}}
	service := NewVehicleService(repo, testDatasets(false), PartialTolerant)

	_, err := service.Lookup(context.Background(), "AB12CD", false)
	var got *UpstreamError
	if !errors.As(err, &got) || got.Dataset != DatasetBasis {
		t.Errorf("Lookup() error = %v, want basis upstream error", err)
	}
}

func TestLookup_PartialTolerant_SecondaryFailureBecomesWarning(t *testing.T) {
	repo := &stubRepository{
		sets: map[string][]Record{
			DatasetBasis:     {{"merk": "Toyota", "handelsbenaming": "Corolla"}},
			DatasetBrandstof: {{"brandstof_volgnummer": "1", "brandstof_omschrijving": "Benzine"}},
		},
		errs: map[string]error{
			DatasetAssen: &UpstreamError{Dataset: DatasetAssen, Status: 500, Body: "boom"},
		},
	}
	service := NewVehicleService(repo, testDatasets(false), PartialTolerant)

	result, err := service.Lookup(context.Background(), "AB12CD", false)
	if err != nil {
		t.Fatalf("Lookup() error = %v, want nil", err)
	}
	if result.Details.Assen == nil || len(result.Details.Assen) != 0 {
		t.Errorf("Details.Assen = %v, want empty list", result.Details.Assen)
	}
	if len(result.Details.Warnings) != 1 {
		t.Fatalf("Details.Warnings = %v, want one entry", result.Details.Warnings)
	}
	if !strings.Contains(result.Details.Warnings[0], DatasetAssen) {
		t.Errorf("warning %q does not mention %q", result.Details.Warnings[0], DatasetAssen)
	}
	if result.Summary.Brandstof == nil || *result.Summary.Brandstof != "Benzine" {
		t.Errorf("Summary.Brandstof = %v, want Benzine", result.Summary.Brandstof)
	}
}

func TestLookup_PartialTolerant_TruncatesWarningMessage(t *testing.T) {
	repo := &stubRepository{
		sets: map[string][]Record{
			DatasetBasis: {{"merk": "Toyota"}},
		},
		errs: map[string]error{
			DatasetKleur: &UpstreamError{Dataset: DatasetKleur, Status: 500, Body: strings.Repeat("x", 500)},
		},
	}
	service := NewVehicleService(repo, testDatasets(false), PartialTolerant)

	result, err := service.Lookup(context.Background(), "AB12CD", false)
	if err != nil {
		t.Fatalf("Lookup() error = %v, want nil", err)
	}
	if len(result.Details.Warnings) != 1 {
		t.Fatalf("Details.Warnings = %v, want one entry", result.Details.Warnings)
	}
	// dataset prefix + truncated message + ellipsis
	if len(result.Details.Warnings[0]) > len(DatasetKleur)+2+maxWarningLen+3 {
		t.Errorf("warning length = %d, want bounded", len(result.Details.Warnings[0]))
	}
}

func TestLookup_AllOrNothing_SecondaryFailureAborts(t *testing.T) {
	upstreamErr := &UpstreamError{Dataset: DatasetAssen, Status: 500, Body: "boom"}
	repo := &stubRepository{
		sets: map[string][]Record{
			DatasetBasis: {{"merk": "Toyota"}},
		},
		errs: map[string]error{DatasetAssen: upstreamErr},
	}
	service := NewVehicleService(repo, testDatasets(false), AllOrNothing)

	_, err := service.Lookup(context.Background(), "AB12CD", false)
	var got *UpstreamError
	if !errors.As(err, &got) || got.Dataset != DatasetAssen {
		t.Errorf("Lookup() error = %v, want assen upstream error", err)
	}
}

func TestLookup_ShapesSummaryAndDetails(t *testing.T) {
	repo := &stubRepository{sets: map[string][]Record{
		DatasetBasis: {{
			"merk":                   "Toyota",
			"handelsbenaming":        "Corolla",
			"datum_eerste_toelating": "20180601",
			"aantal_cilinders":       "4",
			"cilinderinhoud":         "1598",
			"catalogusprijs":         "0",
		}},
	}}
	service := NewVehicleService(repo, testDatasets(false), PartialTolerant)

	result, err := service.Lookup(context.Background(), "AB123C", false)
	if err != nil {
		t.Fatalf("Lookup() error = %v, want nil", err)
	}
	summary := result.Summary
	if summary.Kenteken != "AB123C" {
		t.Errorf("Summary.Kenteken = %v, want AB123C", summary.Kenteken)
	}
	if summary.Merk == nil || *summary.Merk != "Toyota" {
		t.Errorf("Summary.Merk = %v, want Toyota", summary.Merk)
	}
	if summary.Bouwjaar == nil || *summary.Bouwjaar != 2018 {
		t.Errorf("Summary.Bouwjaar = %v, want 2018", summary.Bouwjaar)
	}
	if summary.DatumEersteToelating == nil || *summary.DatumEersteToelating != "2018-06-01" {
		t.Errorf("Summary.DatumEersteToelating = %v, want 2018-06-01", summary.DatumEersteToelating)
	}
	if summary.Brandstof != nil {
		t.Errorf("Summary.Brandstof = %v, want nil", *summary.Brandstof)
	}
	// A literal "0" from upstream is indistinguishable from absence.
	if summary.Catalogusprijs != nil {
		t.Errorf("Summary.Catalogusprijs = %v, want nil", *summary.Catalogusprijs)
	}
	if result.Details.Voertuig.Merk == nil || *result.Details.Voertuig.Merk != "Toyota" {
		t.Errorf("Details.Voertuig.Merk = %v, want Toyota", result.Details.Voertuig.Merk)
	}
	if len(result.Details.Warnings) != 0 {
		t.Errorf("Details.Warnings = %v, want none", result.Details.Warnings)
	}
	if result.Raw != nil {
		t.Errorf("Raw = %v, want nil without raw flag", result.Raw)
	}
}

func TestLookup_SortsFuelListAscending(t *testing.T) {
	repo := &stubRepository{sets: map[string][]Record{
		DatasetBasis: {{"merk": "Volvo"}},
		DatasetBrandstof: {
			{"brandstof_volgnummer": "2", "brandstof_omschrijving": "Elektriciteit"},
			{"brandstof_volgnummer": "1", "brandstof_omschrijving": "Benzine"},
			{"brandstof_omschrijving": "LPG"},
		},
	}}
	service := NewVehicleService(repo, testDatasets(false), PartialTolerant)

	result, err := service.Lookup(context.Background(), "AB12CD", false)
	if err != nil {
		t.Fatalf("Lookup() error = %v, want nil", err)
	}
	fuels := result.Details.Brandstoffen
	if len(fuels) != 3 {
		t.Fatalf("Brandstoffen length = %d, want 3", len(fuels))
	}
	want := []string{"LPG", "Benzine", "Elektriciteit"}
	for i, fuel := range fuels {
		if fuel.Omschrijving == nil || *fuel.Omschrijving != want[i] {
			t.Errorf("Brandstoffen[%d] = %v, want %v", i, fuel.Omschrijving, want[i])
		}
	}
	// Summary takes the first entry after sorting.
	if result.Summary.Brandstof == nil || *result.Summary.Brandstof != "LPG" {
		t.Errorf("Summary.Brandstof = %v, want LPG", result.Summary.Brandstof)
	}
}

func TestLookup_BodyDatasetsBehindToggle(t *testing.T) {
	repo := &stubRepository{sets: map[string][]Record{
		DatasetBasis:       {{"merk": "DAF"}},
		DatasetCarrosserie: {{"carrosserie_volgnummer": "1", "carrosserietype": "AB"}},
	}}

	t.Run("Test bodies included", func(t *testing.T) {
		service := NewVehicleService(repo, testDatasets(true), PartialTolerant)
		result, err := service.Lookup(context.Background(), "AB12CD", false)
		if err != nil {
			t.Fatalf("Lookup() error = %v, want nil", err)
		}
		if len(result.Details.Carrosserie) != 1 {
			t.Errorf("Carrosserie = %v, want one entry", result.Details.Carrosserie)
		}
	})

	t.Run("Test bodies omitted", func(t *testing.T) {
		service := NewVehicleService(repo, testDatasets(false), PartialTolerant)
		result, err := service.Lookup(context.Background(), "AB12CD", false)
		if err != nil {
			t.Fatalf("Lookup() error = %v, want nil", err)
		}
		if result.Details.Carrosserie != nil {
			t.Errorf("Carrosserie = %v, want nil when not queried", result.Details.Carrosserie)
		}
	})
}

func TestLookup_RawPassthrough(t *testing.T) {
	repo := &stubRepository{sets: map[string][]Record{
		DatasetBasis:     {{"merk": "Toyota"}},
		DatasetBrandstof: {{"brandstof_omschrijving": "Benzine"}},
	}}
	service := NewVehicleService(repo, testDatasets(false), PartialTolerant)

	result, err := service.Lookup(context.Background(), "AB12CD", true)
	if err != nil {
		t.Fatalf("Lookup() error = %v, want nil", err)
	}
	if len(result.Raw[DatasetBasis]) != 1 {
		t.Errorf("Raw basis = %v, want the fetched record", result.Raw[DatasetBasis])
	}
	if len(result.Raw[DatasetBrandstof]) != 1 {
		t.Errorf("Raw brandstof = %v, want the fetched record", result.Raw[DatasetBrandstof])
	}
}
