package fields

import (
	"fmt"

	"github.com/AlekSi/pointer"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// ErrDuplicateKey reports a repeated reference name in the source list. The
// source side is the baseline of a comparison, so a duplicate there is an
// input defect rather than something to reconcile.
var ErrDuplicateKey = errors.New("duplicate reference name in source list")

type DuplicateKeyError struct {
	ReferenceName string
	First, Second string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate reference name %q in source list (%q, then %q)", e.ReferenceName, e.First, e.Second)
}

func (e *DuplicateKeyError) Unwrap() error {
	return ErrDuplicateKey
}

// MergedEntry is one row of a reconciled field list. A nil name means the
// field does not exist on that side; at least one side is always present.
type MergedEntry struct {
	ReferenceName string  `json:"referenceName" yaml:"referenceName"`
	SourceName    *string `json:"sourceName,omitempty" yaml:"sourceName,omitempty"`
	TargetName    *string `json:"targetName,omitempty" yaml:"targetName,omitempty"`
}

// InBoth reports whether the field exists on both sides.
func (e MergedEntry) InBoth() bool {
	return e.SourceName != nil && e.TargetName != nil
}

// Different reports whether the two sides disagree: present on only one side,
// or present on both under different display names.
func (e MergedEntry) Different() bool {
	if (e.SourceName == nil) != (e.TargetName == nil) {
		return true
	}
	if e.SourceName == nil {
		return false
	}
	return *e.SourceName != *e.TargetName
}

type MergeOptions struct {
	// DifferentOnly keeps only the entries where the two sides disagree.
	DifferentOnly bool
	// Strict fails on a repeated reference name in the source list instead of
	// silently keeping the last occurrence.
	Strict bool
}

// Merge reconciles two field lists into one mapping keyed by reference name.
// Every reference name appearing in either input appears exactly once in the
// output. Duplicates in the target list keep the last occurrence. Output
// order is unspecified; callers sort for display.
func Merge(source, target []FieldRecord, opts MergeOptions) ([]MergedEntry, error) {
	merged := make(map[string]*MergedEntry, len(source)+len(target))

	for _, rec := range source {
		if existing, ok := merged[rec.ReferenceName]; ok {
			if opts.Strict {
				return nil, &DuplicateKeyError{
					ReferenceName: rec.ReferenceName,
					First:         pointer.GetString(existing.SourceName),
					Second:        rec.Name,
				}
			}
			existing.SourceName = pointer.To(rec.Name)
			continue
		}

		merged[rec.ReferenceName] = &MergedEntry{
			ReferenceName: rec.ReferenceName,
			SourceName:    pointer.To(rec.Name),
		}
	}

	for _, rec := range target {
		if existing, ok := merged[rec.ReferenceName]; ok {
			existing.TargetName = pointer.To(rec.Name)
			continue
		}

		merged[rec.ReferenceName] = &MergedEntry{
			ReferenceName: rec.ReferenceName,
			TargetName:    pointer.To(rec.Name),
		}
	}

	entries := lo.MapToSlice(merged, func(_ string, e *MergedEntry) MergedEntry {
		return *e
	})

	if opts.DifferentOnly {
		entries = lo.Filter(entries, func(e MergedEntry, _ int) bool {
			return e.Different()
		})
	}

	return entries, nil
}
