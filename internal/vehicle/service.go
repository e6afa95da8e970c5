package vehicle

import (
	"context"
	"errors"
	"sort"
)

// ErrNotFound means the primary dataset has no usable record for the plate.
var ErrNotFound = errors.New("no vehicle found for plate")

type InterfaceService interface {
	Lookup(ctx context.Context, plate string, includeRaw bool) (LookupResult, error)
}

type Service struct {
	InterfaceRepository InterfaceRepository
	datasets            Datasets
	policy              FailurePolicy
}

func NewVehicleService(repository InterfaceRepository, datasets Datasets, policy FailurePolicy) *Service {
	return &Service{InterfaceRepository: repository, datasets: datasets, policy: policy}
}

// Lookup fetches the primary dataset first, then fans out the secondary
// fetches concurrently and waits for all of them before shaping the response.
// Under the partial-tolerant policy a failed secondary becomes a warning and
// an empty list; under the strict policy any failure aborts the lookup.
func (s *Service) Lookup(ctx context.Context, plate string, includeRaw bool) (LookupResult, error) {
	basisRecords, err := s.InterfaceRepository.FetchDataset(ctx, s.datasets.Basis, plate)
	if err != nil {
		return LookupResult{}, err
	}
	primary, ok := primaryRecord(basisRecords)
	if !ok {
		return LookupResult{}, ErrNotFound
	}

	type fetchResult struct {
		name    string
		records []Record
		err     error
	}
	resultsCh := make(chan fetchResult, len(s.datasets.Secondaries))
	for _, dataset := range s.datasets.Secondaries {
		go func(dataset Dataset) {
			records, err := s.InterfaceRepository.FetchDataset(ctx, dataset, plate)
			resultsCh <- fetchResult{name: dataset.Name, records: records, err: err}
		}(dataset)
	}

	recordSets := map[string][]Record{DatasetBasis: basisRecords}
	var warnings []string
	for range s.datasets.Secondaries {
		res := <-resultsCh
		if res.err != nil {
			if s.policy == AllOrNothing {
				return LookupResult{}, res.err
			}
			warnings = append(warnings, res.name+": "+truncate(res.err.Error(), maxWarningLen))
			recordSets[res.name] = []Record{}
			continue
		}
		recordSets[res.name] = res.records
	}
	// Fan-in order is nondeterministic, keep the warning list stable.
	sort.Strings(warnings)

	fuels := recordSets[DatasetBrandstof]
	colors := recordSets[DatasetKleur]

	details := Details{
		Voertuig:     shapeVoertuig(plate, primary),
		Brandstoffen: shapeFuels(fuels),
		Kleuren:      shapeColors(colors),
		Assen:        shapeAxles(recordSets[DatasetAssen]),
		Warnings:     warnings,
	}
	if bodies, queried := recordSets[DatasetCarrosserie]; queried {
		details.Carrosserie = shapeBodies(bodies)
	}
	if specs, queried := recordSets[DatasetCarrosserieSpecifiek]; queried {
		details.CarrosserieSpecifiek = shapeBodySpecs(specs)
	}

	result := LookupResult{
		Summary: shapeSummary(plate, primary, sortBySeq(fuels, "brandstof_volgnummer"), colors),
		Details: details,
	}
	if includeRaw {
		result.Raw = recordSets
	}
	return result, nil
}

// primaryRecord returns the base vehicle row. A row carrying neither a brand
// nor a trade name counts as unknown.
func primaryRecord(records []Record) (Record, bool) {
	if len(records) == 0 {
		return nil, false
	}
	rec := records[0]
	if stringField(rec, "merk") == nil && stringField(rec, "handelsbenaming") == nil {
		return nil, false
	}
	return rec, true
}
