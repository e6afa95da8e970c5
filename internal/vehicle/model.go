package vehicle

import "fmt"

// Record is one untyped row as returned by an open-data resource.
type Record map[string]any

// Dataset maps a logical dataset name to its remote resource id.
type Dataset struct {
	Name     string
	Resource string
}

// Datasets is the fixed set queried per lookup, built once at startup.
type Datasets struct {
	Basis       Dataset
	Secondaries []Dataset
}

// Default resource ids on the RDW open-data portal. The color fields live on
// the licensed-vehicles resource itself, so kleur points at the same id as basis.
const (
	ResourceBasis                = "m9d7-ebf2"
	ResourceBrandstof            = "8ys7-d773"
	ResourceKleur                = "m9d7-ebf2"
	ResourceCarrosserie          = "vezc-m2t6"
	ResourceCarrosserieSpecifiek = "jhie-znh9"
	ResourceAssen                = "3huj-srit"
)

const (
	DatasetBasis                = "basis"
	DatasetBrandstof            = "brandstof"
	DatasetKleur                = "kleur"
	DatasetCarrosserie          = "carrosserie"
	DatasetCarrosserieSpecifiek = "carrosserie_specifiek"
	DatasetAssen                = "assen"
)

// FailurePolicy controls how secondary dataset failures are handled.
type FailurePolicy int

const (
	// PartialTolerant converts secondary failures into warnings on the response.
	PartialTolerant FailurePolicy = iota
	// AllOrNothing fails the whole lookup on any dataset failure.
	AllOrNothing
)

func ParseFailurePolicy(s string) FailurePolicy {
	if s == "strict" {
		return AllOrNothing
	}
	return PartialTolerant
}

type Summary struct {
	Kenteken             string   `json:"kenteken"`
	Merk                 *string  `json:"merk"`
	Handelsbenaming      *string  `json:"handelsbenaming"`
	Voertuigsoort        *string  `json:"voertuigsoort"`
	Kleur                *string  `json:"kleur"`
	TweedeKleur          *string  `json:"tweede_kleur"`
	Brandstof            *string  `json:"brandstof"`
	Bouwjaar             *float64 `json:"bouwjaar"`
	DatumEersteToelating *string  `json:"datum_eerste_toelating"`
	DatumTenaamstelling  *string  `json:"datum_eerste_tenaamstelling_in_nederland"`
	VervaldatumApk       *string  `json:"vervaldatum_apk"`
	AantalZitplaatsen    *float64 `json:"aantal_zitplaatsen"`
	AantalCilinders      *float64 `json:"aantal_cilinders"`
	Cilinderinhoud       *float64 `json:"cilinderinhoud"`
	MassaLedigVoertuig   *float64 `json:"massa_ledig_voertuig"`
	Catalogusprijs       *float64 `json:"catalogusprijs"`
}

type Voertuig struct {
	Kenteken                 string   `json:"kenteken"`
	Merk                     *string  `json:"merk"`
	Handelsbenaming          *string  `json:"handelsbenaming"`
	Voertuigsoort            *string  `json:"voertuigsoort"`
	Inrichting               *string  `json:"inrichting"`
	EersteKleur              *string  `json:"eerste_kleur"`
	TweedeKleur              *string  `json:"tweede_kleur"`
	Bouwjaar                 *float64 `json:"bouwjaar"`
	DatumEersteToelating     *string  `json:"datum_eerste_toelating"`
	DatumTenaamstelling      *string  `json:"datum_eerste_tenaamstelling_in_nederland"`
	VervaldatumApk           *string  `json:"vervaldatum_apk"`
	AantalZitplaatsen        *float64 `json:"aantal_zitplaatsen"`
	AantalWielen             *float64 `json:"aantal_wielen"`
	AantalDeuren             *float64 `json:"aantal_deuren"`
	AantalCilinders          *float64 `json:"aantal_cilinders"`
	Cilinderinhoud           *float64 `json:"cilinderinhoud"`
	MassaLedigVoertuig       *float64 `json:"massa_ledig_voertuig"`
	ToegestaneMaximumMassa   *float64 `json:"toegestane_maximum_massa_voertuig"`
	Catalogusprijs           *float64 `json:"catalogusprijs"`
	Zuinigheidsclassificatie *string  `json:"zuinigheidsclassificatie"`
	WamVerzekerd             *string  `json:"wam_verzekerd"`
	ExportIndicator          *string  `json:"export_indicator"`
	TenaamstellenMogelijk    *string  `json:"tenaamstellen_mogelijk"`
	Typegoedkeuringsnummer   *string  `json:"typegoedkeuringsnummer"`
}

type Fuel struct {
	Volgnummer                    *float64 `json:"brandstof_volgnummer"`
	Omschrijving                  *string  `json:"brandstof_omschrijving"`
	Nettomaximumvermogen          *float64 `json:"nettomaximumvermogen"`
	BrandstofverbruikGecombineerd *float64 `json:"brandstofverbruik_gecombineerd"`
	CO2UitstootGecombineerd       *float64 `json:"co2_uitstoot_gecombineerd"`
	EmissiecodeOmschrijving       *string  `json:"emissiecode_omschrijving"`
}

type Color struct {
	EersteKleur *string `json:"eerste_kleur"`
	TweedeKleur *string `json:"tweede_kleur"`
}

type Body struct {
	Volgnummer           *float64 `json:"carrosserie_volgnummer"`
	Carrosserietype      *string  `json:"carrosserietype"`
	EuropeseOmschrijving *string  `json:"type_carrosserie_europese_omschrijving"`
}

type BodySpec struct {
	Volgnummer           *float64 `json:"carrosserie_volgnummer"`
	Carrosseriecode      *float64 `json:"carrosseriecode"`
	EuropeseOmschrijving *string  `json:"carrosserie_voertuig_nummer_europese_omschrijving"`
}

type Axle struct {
	AsNummer               *float64 `json:"as_nummer"`
	AantalAssen            *float64 `json:"aantal_assen"`
	AangedrevenAs          *string  `json:"aangedreven_as"`
	Spoorbreedte           *float64 `json:"spoorbreedte"`
	WettelijkMaximumAslast *float64 `json:"wettelijk_toegestane_maximum_aslast"`
	TechnischMaximumAslast *float64 `json:"technisch_toegestane_maximum_aslast"`
}

type Details struct {
	Voertuig             Voertuig   `json:"voertuig"`
	Brandstoffen         []Fuel     `json:"brandstoffen"`
	Kleuren              []Color    `json:"kleuren"`
	Carrosserie          []Body     `json:"carrosserie,omitempty"`
	CarrosserieSpecifiek []BodySpec `json:"carrosserie_specifiek,omitempty"`
	Assen                []Axle     `json:"assen"`
	Warnings             []string   `json:"warnings,omitempty"`
}

type LookupResult struct {
	Summary Summary             `json:"summary"`
	Details Details             `json:"details"`
	Raw     map[string][]Record `json:"_raw,omitempty"`
}

type LookupRequest struct {
	Kenteken string `query:"kenteken" validate:"required"`
	Raw      string `query:"raw"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// UpstreamError is a non-2xx answer from the open-data service.
type UpstreamError struct {
	Dataset string
	Status  int
	Body    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("dataset %s returned status %d: %s", e.Dataset, e.Status, e.Body)
}

// ParseError is a response body that could not be decoded.
type ParseError struct {
	Dataset string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dataset %s returned an unreadable body: %v", e.Dataset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
