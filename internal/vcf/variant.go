// Package vcf defines the variant record that features can carry as an
// opaque payload. Records arrive already parsed; this package does not read
// VCF files.
package vcf

// Variant is a single pre-parsed variant call.
type Variant struct {
	Chrom  string         // Chromosome name as written by the caller (e.g., "12", "chr12")
	Pos    int            // 1-based position of the first REF base
	ID     string         // Variant identifier (e.g., rs ID)
	Ref    string         // Reference allele
	Alt    string         // Alternate allele (single allele after splitting)
	Qual   float64        // Quality score
	Filter string         // Filter status (PASS or filter name)
	Info   map[string]any // INFO field key-value pairs
}

// End returns the 1-based position of the last reference base the variant
// covers. A variant with an empty REF covers only Pos.
func (v *Variant) End() int {
	if len(v.Ref) == 0 {
		return v.Pos
	}
	return v.Pos + len(v.Ref) - 1
}
