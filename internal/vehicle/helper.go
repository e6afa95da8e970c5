package vehicle

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	maxBodyExcerpt = 300
	maxWarningLen  = 160
)

// coerceNumber keeps the upstream coercion rule intact: empty, missing,
// unparsable and zero values all collapse to nil. A literal "0" is therefore
// indistinguishable from absence; that quirk is preserved for compatibility.
func coerceNumber(v any) *float64 {
	var n float64
	switch value := v.(type) {
	case nil:
		return nil
	case float64:
		n = value
	case string:
		s := strings.TrimSpace(value)
		if s == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		n = parsed
	default:
		parsed, err := strconv.ParseFloat(fmt.Sprintf("%v", value), 64)
		if err != nil {
			return nil
		}
		n = parsed
	}
	if n == 0 {
		return nil
	}
	return &n
}

// formatDate rewrites an 8-character YYYYMMDD value to YYYY-MM-DD. Anything
// else yields nil. No calendar validation is done on purpose.
func formatDate(v any) *string {
	s, ok := v.(string)
	if !ok || len(s) != 8 {
		return nil
	}
	formatted := s[:4] + "-" + s[4:6] + "-" + s[6:8]
	return &formatted
}

// buildYear derives the construction year from the first four characters of
// an 8-character registration date.
func buildYear(v any) *float64 {
	s, ok := v.(string)
	if !ok || len(s) != 8 {
		return nil
	}
	return coerceNumber(s[:4])
}

func stringField(rec Record, key string) *string {
	s, ok := rec[key].(string)
	if !ok || strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// truncate bounds s to at most max bytes, cutting on a rune boundary so the
// excerpt stays valid UTF-8.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// recordSeq reads a sequence-number field, treating a missing or unparsable
// value as 0 so such rows sort first.
func recordSeq(rec Record, key string) float64 {
	n := coerceNumber(rec[key])
	if n == nil {
		return 0
	}
	return *n
}

func sortBySeq(records []Record, key string) []Record {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return recordSeq(sorted[i], key) < recordSeq(sorted[j], key)
	})
	return sorted
}

func shapeSummary(plate string, primary Record, fuels, colors []Record) Summary {
	summary := Summary{
		Kenteken:             plate,
		Merk:                 stringField(primary, "merk"),
		Handelsbenaming:      stringField(primary, "handelsbenaming"),
		Voertuigsoort:        stringField(primary, "voertuigsoort"),
		Kleur:                stringField(primary, "eerste_kleur"),
		TweedeKleur:          stringField(primary, "tweede_kleur"),
		Bouwjaar:             buildYear(primary["datum_eerste_toelating"]),
		DatumEersteToelating: formatDate(primary["datum_eerste_toelating"]),
		DatumTenaamstelling:  formatDate(primary["datum_eerste_tenaamstelling_in_nederland"]),
		VervaldatumApk:       formatDate(primary["vervaldatum_apk"]),
		AantalZitplaatsen:    coerceNumber(primary["aantal_zitplaatsen"]),
		AantalCilinders:      coerceNumber(primary["aantal_cilinders"]),
		Cilinderinhoud:       coerceNumber(primary["cilinderinhoud"]),
		MassaLedigVoertuig:   coerceNumber(primary["massa_ledig_voertuig"]),
		Catalogusprijs:       coerceNumber(primary["catalogusprijs"]),
	}
	if len(fuels) > 0 {
		summary.Brandstof = stringField(fuels[0], "brandstof_omschrijving")
	}
	if len(colors) > 0 {
		summary.Kleur = stringField(colors[0], "eerste_kleur")
		summary.TweedeKleur = stringField(colors[0], "tweede_kleur")
	}
	return summary
}

func shapeVoertuig(plate string, primary Record) Voertuig {
	return Voertuig{
		Kenteken:                 plate,
		Merk:                     stringField(primary, "merk"),
		Handelsbenaming:          stringField(primary, "handelsbenaming"),
		Voertuigsoort:            stringField(primary, "voertuigsoort"),
		Inrichting:               stringField(primary, "inrichting"),
		EersteKleur:              stringField(primary, "eerste_kleur"),
		TweedeKleur:              stringField(primary, "tweede_kleur"),
		Bouwjaar:                 buildYear(primary["datum_eerste_toelating"]),
		DatumEersteToelating:     formatDate(primary["datum_eerste_toelating"]),
		DatumTenaamstelling:      formatDate(primary["datum_eerste_tenaamstelling_in_nederland"]),
		VervaldatumApk:           formatDate(primary["vervaldatum_apk"]),
		AantalZitplaatsen:        coerceNumber(primary["aantal_zitplaatsen"]),
		AantalWielen:             coerceNumber(primary["aantal_wielen"]),
		AantalDeuren:             coerceNumber(primary["aantal_deuren"]),
		AantalCilinders:          coerceNumber(primary["aantal_cilinders"]),
		Cilinderinhoud:           coerceNumber(primary["cilinderinhoud"]),
		MassaLedigVoertuig:       coerceNumber(primary["massa_ledig_voertuig"]),
		ToegestaneMaximumMassa:   coerceNumber(primary["toegestane_maximum_massa_voertuig"]),
		Catalogusprijs:           coerceNumber(primary["catalogusprijs"]),
		Zuinigheidsclassificatie: stringField(primary, "zuinigheidsclassificatie"),
		WamVerzekerd:             stringField(primary, "wam_verzekerd"),
		ExportIndicator:          stringField(primary, "export_indicator"),
		TenaamstellenMogelijk:    stringField(primary, "tenaamstellen_mogelijk"),
		Typegoedkeuringsnummer:   stringField(primary, "typegoedkeuringsnummer"),
	}
}

func shapeFuels(records []Record) []Fuel {
	fuels := make([]Fuel, 0, len(records))
	for _, rec := range sortBySeq(records, "brandstof_volgnummer") {
		fuels = append(fuels, Fuel{
			Volgnummer:                    coerceNumber(rec["brandstof_volgnummer"]),
			Omschrijving:                  stringField(rec, "brandstof_omschrijving"),
			Nettomaximumvermogen:          coerceNumber(rec["nettomaximumvermogen"]),
			BrandstofverbruikGecombineerd: coerceNumber(rec["brandstofverbruik_gecombineerd"]),
			CO2UitstootGecombineerd:       coerceNumber(rec["co2_uitstoot_gecombineerd"]),
			EmissiecodeOmschrijving:       stringField(rec, "emissiecode_omschrijving"),
		})
	}
	return fuels
}

func shapeColors(records []Record) []Color {
	colors := make([]Color, 0, len(records))
	for _, rec := range records {
		colors = append(colors, Color{
			EersteKleur: stringField(rec, "eerste_kleur"),
			TweedeKleur: stringField(rec, "tweede_kleur"),
		})
	}
	return colors
}

func shapeBodies(records []Record) []Body {
	bodies := make([]Body, 0, len(records))
	for _, rec := range sortBySeq(records, "carrosserie_volgnummer") {
		bodies = append(bodies, Body{
			Volgnummer:           coerceNumber(rec["carrosserie_volgnummer"]),
			Carrosserietype:      stringField(rec, "carrosserietype"),
			EuropeseOmschrijving: stringField(rec, "type_carrosserie_europese_omschrijving"),
		})
	}
	return bodies
}

func shapeBodySpecs(records []Record) []BodySpec {
	specs := make([]BodySpec, 0, len(records))
	for _, rec := range sortBySeq(records, "carrosserie_volgnummer") {
		specs = append(specs, BodySpec{
			Volgnummer:           coerceNumber(rec["carrosserie_volgnummer"]),
			Carrosseriecode:      coerceNumber(rec["carrosseriecode"]),
			EuropeseOmschrijving: stringField(rec, "carrosserie_voertuig_nummer_europese_omschrijving"),
		})
	}
	return specs
}

func shapeAxles(records []Record) []Axle {
	axles := make([]Axle, 0, len(records))
	for _, rec := range sortBySeq(records, "as_nummer") {
		axles = append(axles, Axle{
			AsNummer:               coerceNumber(rec["as_nummer"]),
			AantalAssen:            coerceNumber(rec["aantal_assen"]),
			AangedrevenAs:          stringField(rec, "aangedreven_as"),
			Spoorbreedte:           coerceNumber(rec["spoorbreedte"]),
			WettelijkMaximumAslast: coerceNumber(rec["wettelijk_toegestane_maximum_aslast"]),
			TechnischMaximumAslast: coerceNumber(rec["technisch_toegestane_maximum_aslast"]),
		})
	}
	return axles
}
