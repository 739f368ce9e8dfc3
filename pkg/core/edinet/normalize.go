package edinet

import (
	"fmt"
	"log"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var numeralPattern = regexp.MustCompile(`^-?[\d.]+$`)

// NormalizedValue is the final value for one field after applying the
// iXBRL formatting attributes. Count and currency fields use Int; ratio
// and year fields use Float.
type NormalizedValue struct {
	Float float64
	Int   int64
	Kind  FieldKind
}

// Normalize composes the raw numeral with its scale, decimals and unit
// metadata. Scale is applied before a negative-decimals correction because
// the source format encodes magnitude and precision separately.
//
// A literal that does not parse as a signed decimal numeral is an explicit
// error, never a silent zero: the caller drops the candidate and the field
// stays absent.
func Normalize(ev ExtractedValue, field Field) (NormalizedValue, error) {
	clean := strings.NewReplacer(",", "", " ", "", " ", "").Replace(ev.RawText)
	if !numeralPattern.MatchString(clean) {
		return NormalizedValue{}, fmt.Errorf("malformed numeral %q (file %s)", ev.RawText, ev.File)
	}
	value, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return NormalizedValue{}, fmt.Errorf("malformed numeral %q: %w", ev.RawText, err)
	}

	if ev.Scale != "" {
		scale, err := strconv.Atoi(ev.Scale)
		if err != nil {
			log.Printf("Warning: invalid scale %q on %s, ignoring", ev.Scale, field)
		} else {
			value *= math.Pow10(scale)
		}
	}

	if ev.Decimals != "" {
		decimals, err := strconv.Atoi(ev.Decimals)
		switch {
		case err != nil:
			log.Printf("Warning: invalid decimals %q on %s, ignoring", ev.Decimals, field)
		case decimals < 0:
			// Negative decimals act as an additional magnitude correction.
			value /= math.Pow10(-decimals)
		default:
			shift := math.Pow10(decimals)
			value = math.Round(value*shift) / shift
		}
	}

	if ev.UnitRef != "" && field.Kind() == KindCurrency {
		if !strings.Contains(strings.ToUpper(ev.UnitRef), "JPY") {
			log.Printf("Warning: unexpected currency unit %q for %s (JPY expected)", ev.UnitRef, field)
		}
	}

	nv := NormalizedValue{Float: value, Kind: field.Kind()}
	if nv.Kind == KindCount || nv.Kind == KindCurrency {
		nv.Int = int64(value)
	}
	return nv, nil
}
