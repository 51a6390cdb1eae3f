package post

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultRegion is the label used when no keyword matches
const DefaultRegion = "台中 Taichung"

// Region is a region label and the keywords that select it.
type Region struct {
	Label    string   `yaml:"label" json:"label"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// RegionTable is an ordered list of regions. Order matters: the first region
// with a matching keyword wins, regardless of where the keyword sits in the text.
type RegionTable struct {
	Regions []Region
	Default string
}

// DefaultRegions returns the built-in region table
func DefaultRegions() *RegionTable {
	return &RegionTable{
		Regions: []Region{
			{Label: "台北 Taipei", Keywords: []string{"台北", "taipei", "信義", "大安", "中正", "松山", "士林", "內湖"}},
			{Label: "新北 New Taipei", Keywords: []string{"新北", "板橋", "中和", "永和", "新店", "三重"}},
			{Label: "桃園 Taoyuan", Keywords: []string{"桃園", "中壢"}},
			{Label: "台中 Taichung", Keywords: []string{"台中", "西屯", "北屯", "南屯", "中區", "清水", "北區"}},
			{Label: "高雄 Kaohsiung", Keywords: []string{"高雄", "前金", "新興"}},
			{Label: "台南 Tainan", Keywords: []string{"台南", "安平", "東區"}},
			{Label: "日本 Japan", Keywords: []string{"日本", "東京", "大阪", "京都", "沖繩"}},
		},
		Default: DefaultRegion,
	}
}

// Classify returns the label of the first region in table order with a keyword
// contained in text, compared case-insensitively. Returns the table's default
// label (or DefaultRegion if that is unset) when nothing matches.
func (rt *RegionTable) Classify(text string) string {
	lower := cases.Lower(language.Und).String(text)
	for _, r := range rt.Regions {
		for _, k := range r.Keywords {
			if k == "" {
				continue
			}
			if strings.Contains(lower, cases.Lower(language.Und).String(k)) {
				return r.Label
			}
		}
	}
	if rt.Default == "" {
		return DefaultRegion
	}
	return rt.Default
}

// Labels returns the region labels in table order
func (rt *RegionTable) Labels() []string {
	labels := make([]string, 0, len(rt.Regions))
	for _, r := range rt.Regions {
		labels = append(labels, r.Label)
	}
	return labels
}

// DetectRegion classifies text against the built-in region table.
func DetectRegion(text string) string {
	return DefaultRegions().Classify(text)
}
