package feature

import (
	"fmt"

	"github.com/grailbio/hts/sam"

	"github.com/inodb/genomerator/internal/vcf"
)

// FromAlignment wraps a mapped alignment. The record is kept as the payload
// without being inspected further; its reference id is taken from r.Ref.
func FromAlignment(r *sam.Record) (*Feature[*sam.Record], error) {
	if r.Flags&sam.Unmapped != 0 || r.Ref == nil || r.Ref.ID() < 0 {
		return nil, fmt.Errorf("%w: alignment %s is unmapped", ErrUnknownReference, r.Name)
	}
	// sam positions are 0-based half-open.
	return New(r.Ref.ID(), r.Pos+1, r.End(), r.Flags&sam.Reverse != 0, r)
}

// FromVariant wraps a variant on reference ref. The span is the footprint of
// the REF allele. Variants carry no orientation and are placed on the forward
// strand.
func FromVariant(v *vcf.Variant, ref int) (*Feature[*vcf.Variant], error) {
	return New(ref, v.Pos, v.End(), false, v)
}
