package score

// Category is the direction in which an evidence code pulls a variant.
type Category string

const (
	CategoryPathogenic Category = "Pathogenic"
	CategoryBenign     Category = "Benign"
)

// Strength is an ACMG evidence weight tier. The values double as the
// modifier suffix in code labels (e.g. PM2_Supporting).
type Strength string

const (
	StrengthStandAlone Strength = "StandAlone"
	StrengthVeryStrong Strength = "VeryStrong"
	StrengthStrong     Strength = "Strong"
	StrengthModerate   Strength = "Moderate"
	StrengthSupporting Strength = "Supporting"
)

// Strengths returns all tiers, strongest first.
func Strengths() []Strength {
	return []Strength{
		StrengthStandAlone,
		StrengthVeryStrong,
		StrengthStrong,
		StrengthModerate,
		StrengthSupporting,
	}
}

// weight returns the point value of the tier per Tavtigian et al. 2020.
func (s Strength) weight() int {
	switch s {
	case StrengthStandAlone, StrengthVeryStrong:
		return 8
	case StrengthStrong:
		return 4
	case StrengthModerate:
		return 2
	case StrengthSupporting:
		return 1
	}
	return 0
}

// rank orders tiers strongest first for display sorting.
func (s Strength) rank() int {
	switch s {
	case StrengthStandAlone:
		return 0
	case StrengthVeryStrong:
		return 1
	case StrengthStrong:
		return 2
	case StrengthModerate:
		return 3
	case StrengthSupporting:
		return 4
	}
	return 5
}

// Code is one entry of the static ACMG 2015 evidence-code table.
type Code struct {
	Name        string   `json:"name" yaml:"name"`
	Category    Category `json:"category" yaml:"category"`
	Strength    Strength `json:"strength" yaml:"strength"`
	Ordinal     int      `json:"ordinal" yaml:"ordinal"`
	Description string   `json:"description" yaml:"description"`
}

// Points returns the code's default contribution (benign codes negative).
func (c Code) Points() int {
	if c.Category == CategoryBenign {
		return -c.Strength.weight()
	}
	return c.Strength.weight()
}

// codeTable holds the 24 codes of the ACMG/AMP 2015 guideline (tables 3
// and 4), in guideline order. The table is fixed; there is no way to add
// codes at runtime.
var codeTable = []Code{
	// Pathogenic, very strong
	{Name: "PVS1", Category: CategoryPathogenic, Strength: StrengthVeryStrong, Ordinal: 1, Description: "Null variant (nonsense, frameshift, canonical ±1 or 2 splice sites, initiation codon, single or multiexon deletion) in a gene where LOF is a known mechanism of disease"},
	// Pathogenic, strong
	{Name: "PS1", Category: CategoryPathogenic, Strength: StrengthStrong, Ordinal: 1, Description: "Same amino acid change as a previously established pathogenic variant regardless of nucleotide change"},
	{Name: "PS2", Category: CategoryPathogenic, Strength: StrengthStrong, Ordinal: 2, Description: "De novo (both maternity and paternity confirmed) in a patient with the disease and no family history"},
	{Name: "PS3", Category: CategoryPathogenic, Strength: StrengthStrong, Ordinal: 3, Description: "Well-established in vitro or in vivo functional studies supportive of a damaging effect on the gene or gene product"},
	{Name: "PS4", Category: CategoryPathogenic, Strength: StrengthStrong, Ordinal: 4, Description: "The prevalence of the variant in affected individuals is significantly increased compared with the prevalence in controls"},
	// Pathogenic, moderate
	{Name: "PM1", Category: CategoryPathogenic, Strength: StrengthModerate, Ordinal: 1, Description: "Located in a mutational hot spot and/or critical and well-established functional domain (e.g., active site of an enzyme) without benign variation"},
	{Name: "PM2", Category: CategoryPathogenic, Strength: StrengthModerate, Ordinal: 2, Description: "Absent from controls (or at extremely low frequency if recessive) in Exome Sequencing Project, 1000 Genomes Project, or Exome Aggregation Consortium"},
	{Name: "PM3", Category: CategoryPathogenic, Strength: StrengthModerate, Ordinal: 3, Description: "For recessive disorders, detected in trans with a pathogenic variant"},
	{Name: "PM4", Category: CategoryPathogenic, Strength: StrengthModerate, Ordinal: 4, Description: "Protein length changes as a result of in-frame deletions/insertions in a nonrepeat region or stop-loss variants"},
	{Name: "PM5", Category: CategoryPathogenic, Strength: StrengthModerate, Ordinal: 5, Description: "Novel missense change at an amino acid residue where a different missense change determined to be pathogenic has been seen before"},
	{Name: "PM6", Category: CategoryPathogenic, Strength: StrengthModerate, Ordinal: 6, Description: "Assumed de novo, but without confirmation of paternity and maternity"},
	// Pathogenic, supporting
	{Name: "PP1", Category: CategoryPathogenic, Strength: StrengthSupporting, Ordinal: 1, Description: "Cosegregation with disease in multiple affected family members in a gene definitively known to cause the disease"},
	{Name: "PP2", Category: CategoryPathogenic, Strength: StrengthSupporting, Ordinal: 2, Description: "Missense variant in a gene that has a low rate of benign missense variation and in which missense variants are a common mechanism of disease"},
	{Name: "PP3", Category: CategoryPathogenic, Strength: StrengthSupporting, Ordinal: 3, Description: "Multiple lines of computational evidence support a deleterious effect on the gene or gene product (conservation, evolutionary, splicing impact, etc.)"},
	{Name: "PP4", Category: CategoryPathogenic, Strength: StrengthSupporting, Ordinal: 4, Description: "Patient's phenotype or family history is highly specific for a disease with a single genetic etiology"},
	{Name: "PP5", Category: CategoryPathogenic, Strength: StrengthSupporting, Ordinal: 5, Description: "Reputable source recently reports variant as pathogenic, but the evidence is not available to the laboratory to perform an independent evaluation"},
	// Benign, stand-alone
	{Name: "BA1", Category: CategoryBenign, Strength: StrengthStandAlone, Ordinal: 1, Description: "Allele frequency is >5% in Exome Sequencing Project, 1000 Genomes Project, or Exome Aggregation Consortium"},
	// Benign, strong
	{Name: "BS1", Category: CategoryBenign, Strength: StrengthStrong, Ordinal: 1, Description: "Allele frequency is greater than expected for disorder"},
	{Name: "BS2", Category: CategoryBenign, Strength: StrengthStrong, Ordinal: 2, Description: "Observed in a healthy adult individual for a recessive (homozygous), dominant (heterozygous), or X-linked (hemizygous) disorder, with full penetrance expected at an early age"},
	{Name: "BS3", Category: CategoryBenign, Strength: StrengthStrong, Ordinal: 3, Description: "Well-established in vitro or in vivo functional studies show no damaging effect on protein function or splicing"},
	{Name: "BS4", Category: CategoryBenign, Strength: StrengthStrong, Ordinal: 4, Description: "Lack of segregation in affected members of a family"},
	// Benign, supporting
	{Name: "BP1", Category: CategoryBenign, Strength: StrengthSupporting, Ordinal: 1, Description: "Missense variant in a gene for which primarily truncating variants are known to cause disease"},
	{Name: "BP2", Category: CategoryBenign, Strength: StrengthSupporting, Ordinal: 2, Description: "Observed in trans with a pathogenic variant for a fully penetrant dominant gene/disorder or observed in cis with a pathogenic variant in any inheritance pattern"},
	{Name: "BP3", Category: CategoryBenign, Strength: StrengthSupporting, Ordinal: 3, Description: "In-frame deletions/insertions in a repetitive region without a known function"},
	{Name: "BP4", Category: CategoryBenign, Strength: StrengthSupporting, Ordinal: 4, Description: "Multiple lines of computational evidence suggest no impact on gene or gene product (conservation, evolutionary, splicing impact, etc.)"},
	{Name: "BP5", Category: CategoryBenign, Strength: StrengthSupporting, Ordinal: 5, Description: "Variant found in a case with an alternate molecular basis for disease"},
	{Name: "BP6", Category: CategoryBenign, Strength: StrengthSupporting, Ordinal: 6, Description: "Reputable source recently reports variant as benign, but the evidence is not available to the laboratory to perform an independent evaluation"},
	{Name: "BP7", Category: CategoryBenign, Strength: StrengthSupporting, Ordinal: 7, Description: "A synonymous (silent) variant for which splicing prediction algorithms predict no impact to the splice consensus sequence nor the creation of a new splice site AND the nucleotide is not highly conserved"},
}

var codeIndex = func() map[string]*Code {
	m := make(map[string]*Code, len(codeTable))
	for i := range codeTable {
		m[codeTable[i].Name] = &codeTable[i]
	}
	return m
}()

// Lookup resolves an upper-case code name against the table.
func Lookup(name string) (Code, bool) {
	c, ok := codeIndex[name]
	if !ok {
		return Code{}, false
	}
	return *c, true
}

// Codes returns the full table in guideline order.
func Codes() []Code {
	out := make([]Code, len(codeTable))
	copy(out, codeTable)
	return out
}
