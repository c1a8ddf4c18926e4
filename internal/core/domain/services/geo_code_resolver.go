package services

import (
	"strings"
	"unicode"
)

const (
	// FallbackRegion and FallbackSubRegion are returned for postal codes outside
	// every known range. Unknown geography never blocks order creation.
	FallbackRegion    = "TN"
	FallbackSubRegion = "01"

	// DefaultProductType is used when the category itself is not recognized.
	DefaultProductType = "DSLR"

	postalCodeLength = 6
)

// GeoCode is a resolved region/sub-region pair, e.g. TN/37.
type GeoCode struct {
	Region    string
	SubRegion string
}

func (g GeoCode) String() string {
	return g.Region + g.SubRegion
}

type postalRange struct {
	from, to int
	code     GeoCode
}

// brandCode maps a brand substring to a product-type code within one family.
type brandCode struct {
	brand string
	code  string
}

type productFamily struct {
	keywords []string
	brands   []brandCode
	generic  string
}

// GeoCodeResolver is a pure lookup over static tables. The zero value is not
// usable; create it with NewGeoCodeResolver.
type GeoCodeResolver struct {
	ranges   []postalRange
	families []productFamily
	states   map[string]string
}

// NewGeoCodeResolver returns a resolver over the built-in tables.
func NewGeoCodeResolver() *GeoCodeResolver {
	return &GeoCodeResolver{
		ranges:   postalRanges(),
		families: productFamilies(),
		states:   stateRegions(),
	}
}

// Resolve maps a postal code to its region and sub-region. Non-digits are
// stripped and the rest left-padded with zeros to six digits. Codes longer
// than six digits or outside every range resolve to the fallback.
func (r *GeoCodeResolver) Resolve(postalCode string) GeoCode {
	pin, ok := normalizePostalCode(postalCode)
	if !ok {
		return GeoCode{Region: FallbackRegion, SubRegion: FallbackSubRegion}
	}

	// District ranges come before the state-wide range that contains them,
	// so the first hit is the most specific one.
	for _, pr := range r.ranges {
		if pin >= pr.from && pin <= pr.to {
			return pr.code
		}
	}
	return GeoCode{Region: FallbackRegion, SubRegion: FallbackSubRegion}
}

// RegionForState maps a state name to its region code. Matching ignores case
// and surrounding whitespace. Unknown names return the fallback region and false.
func (r *GeoCodeResolver) RegionForState(name string) (string, bool) {
	code, ok := r.states[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return FallbackRegion, false
	}
	return code, true
}

// CategoryCode maps a category and an optional brand to a 4-letter product
// type code. The category matches a family when one of its words equals a
// family keyword, ignoring case and a plural "s", so "Cameras" and
// "DSLR camera" both hit the camera family while "Headphones" hits none.
func (r *GeoCodeResolver) CategoryCode(category, brand string) string {
	words := splitWords(category)
	brand = strings.ToLower(brand)

	for _, family := range r.families {
		if !hasKeyword(words, family.keywords) {
			continue
		}
		for _, b := range family.brands {
			if brand != "" && strings.Contains(brand, b.brand) {
				return b.code
			}
		}
		return family.generic
	}
	return DefaultProductType
}

func normalizePostalCode(postalCode string) (int, bool) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, postalCode)

	if digits == "" || len(digits) > postalCodeLength {
		return 0, false
	}

	pin := 0
	for _, d := range digits {
		pin = pin*10 + int(d-'0')
	}
	// Left-padding with zeros does not change the numeric value.
	return pin, true
}

func splitWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func hasKeyword(words, keywords []string) bool {
	for _, w := range words {
		for _, k := range keywords {
			if w == k || w == k+"s" {
				return true
			}
		}
	}
	return false
}

func productFamilies() []productFamily {
	return []productFamily{
		{
			keywords: []string{"camera", "dslr", "mirrorless", "slr"},
			generic:  "DSLR",
		},
		{
			keywords: []string{"phone", "mobile", "smartphone", "cellphone", "iphone"},
			brands: []brandCode{
				{"apple", "IPNE"},
				{"iphone", "IPNE"},
				{"samsung", "SMSG"},
				{"oneplus", "ONEP"},
				{"google", "PIXL"},
				{"pixel", "PIXL"},
				{"xiaomi", "XIAO"},
				{"redmi", "XIAO"},
			},
			generic: "PHNE",
		},
		{
			keywords: []string{"laptop", "notebook", "macbook"},
			brands: []brandCode{
				{"apple", "MCBK"},
				{"dell", "DELL"},
				{"hp", "HPLT"},
				{"lenovo", "LNVO"},
				{"asus", "ASUS"},
			},
			generic: "LPTP",
		},
		{
			keywords: []string{"tablet", "ipad"},
			brands: []brandCode{
				{"apple", "IPAD"},
				{"samsung", "GTAB"},
			},
			generic: "TBLT",
		},
	}
}

func postalRanges() []postalRange {
	geo := func(region, sub string) GeoCode { return GeoCode{Region: region, SubRegion: sub} }

	return []postalRange{
		// districts
		{110000, 110099, geo("DL", "01")},
		{400001, 400104, geo("MH", "01")},
		{411001, 411062, geo("MH", "12")},
		{560001, 560110, geo("KA", "01")},
		{570001, 570030, geo("KA", "09")},
		{600001, 600130, geo("TN", "01")},
		{641001, 641697, geo("TN", "37")},
		{625001, 625022, geo("TN", "58")},
		{620001, 620026, geo("TN", "45")},
		{682001, 682042, geo("KL", "07")},
		{695001, 695615, geo("KL", "01")},
		{500001, 500100, geo("TS", "09")},
		{530001, 530053, geo("AP", "31")},
		{700001, 700161, geo("WB", "01")},
		{380001, 380063, geo("GJ", "01")},
		{302001, 302039, geo("RJ", "14")},
		{226001, 226031, geo("UP", "32")},
		{201301, 201318, geo("UP", "16")},
		{122001, 122107, geo("HR", "26")},
		{160001, 160103, geo("CH", "01")},
		{800001, 800030, geo("BR", "01")},
		{751001, 751031, geo("OD", "02")},
		{452001, 452020, geo("MP", "09")},
		{462001, 462046, geo("MP", "04")},

		// states
		{110000, 110999, geo("DL", "01")},
		{120000, 136999, geo("HR", "01")},
		{140000, 159999, geo("PB", "01")},
		{160000, 160999, geo("CH", "01")},
		{170000, 177999, geo("HP", "01")},
		{180000, 194999, geo("JK", "01")},
		{246000, 263999, geo("UK", "01")},
		{200000, 285999, geo("UP", "01")},
		{300000, 345999, geo("RJ", "01")},
		{360000, 396999, geo("GJ", "01")},
		{403000, 403999, geo("GA", "01")},
		{400000, 445999, geo("MH", "01")},
		{450000, 488999, geo("MP", "01")},
		{490000, 497999, geo("CG", "01")},
		{500000, 509999, geo("TS", "01")},
		{510000, 535999, geo("AP", "01")},
		{560000, 591999, geo("KA", "01")},
		{605000, 605999, geo("PY", "01")},
		{600000, 643999, geo("TN", "01")},
		{670000, 695999, geo("KL", "01")},
		{700000, 743999, geo("WB", "01")},
		{750000, 770999, geo("OD", "01")},
		{780000, 788999, geo("AS", "01")},
		{814000, 835999, geo("JH", "01")},
		{800000, 855999, geo("BR", "01")},
	}
}

func stateRegions() map[string]string {
	return map[string]string{
		"andhra pradesh":    "AP",
		"assam":             "AS",
		"bihar":             "BR",
		"chandigarh":        "CH",
		"chhattisgarh":      "CG",
		"delhi":             "DL",
		"new delhi":         "DL",
		"goa":               "GA",
		"gujarat":           "GJ",
		"haryana":           "HR",
		"himachal pradesh":  "HP",
		"jammu and kashmir": "JK",
		"jharkhand":         "JH",
		"karnataka":         "KA",
		"kerala":            "KL",
		"madhya pradesh":    "MP",
		"maharashtra":       "MH",
		"odisha":            "OD",
		"puducherry":        "PY",
		"punjab":            "PB",
		"rajasthan":         "RJ",
		"tamil nadu":        "TN",
		"telangana":         "TS",
		"uttar pradesh":     "UP",
		"uttarakhand":       "UK",
		"west bengal":       "WB",
	}
}
