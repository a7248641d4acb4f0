// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package vocab

// Mergeable is implemented by every restriction record.
type Mergeable[T any] interface {
	*T
	MergeFrom(broad *T)
}

// Merge combines a record found at a specific target with one found at a
// broader scope. Fields set on specific are kept; unset ones are filled from
// broad. When specific is nil the result is broad, which may itself be nil.
func Merge[T any, P Mergeable[T]](specific, broad P) P {
	if specific == nil {
		return broad
	}
	if broad != nil {
		specific.MergeFrom((*T)(broad))
	}
	return specific
}

func fillBool(dst **bool, src *bool) {
	if *dst == nil {
		*dst = src
	}
}

func fillString(dst **string, src *string) {
	if *dst == nil {
		*dst = src
	}
}

func fillSlice[E any](dst *[]E, src []E) {
	if *dst == nil {
		*dst = src
	}
}

// MergeFrom fills the unset shared fields from broad.
func (r *RestrictionBase) MergeFrom(broad *RestrictionBase) {
	if broad == nil {
		return
	}
	fillSlice(&r.Permissions, broad.Permissions)
	fillSlice(&r.CustomHeaders, broad.CustomHeaders)
	fillSlice(&r.CustomQueryOptions, broad.CustomQueryOptions)
	fillString(&r.Description, broad.Description)
	fillString(&r.LongDescription, broad.LongDescription)
	fillSlice(&r.RequestContentTypes, broad.RequestContentTypes)
	fillSlice(&r.ResponseContentTypes, broad.ResponseContentTypes)
}

// MergeFrom fills the unset fields from broad.
func (r *ReadRestrictions) MergeFrom(broad *ReadRestrictions) {
	if broad == nil {
		return
	}
	fillBool(&r.Readable, broad.Readable)
	r.RestrictionBase.MergeFrom(&broad.RestrictionBase)
	switch {
	case r.ReadByKeyRestrictions == nil:
		r.ReadByKeyRestrictions = broad.ReadByKeyRestrictions
	case broad.ReadByKeyRestrictions != nil:
		fillBool(&r.ReadByKeyRestrictions.Readable, broad.ReadByKeyRestrictions.Readable)
		r.ReadByKeyRestrictions.RestrictionBase.MergeFrom(&broad.ReadByKeyRestrictions.RestrictionBase)
	}
}

// ByKey returns the restrictions that apply to reading a single entity by key.
// Fields set on ReadByKeyRestrictions take precedence; the parent record fills
// the rest. The receiver is not modified.
func (r *ReadRestrictions) ByKey() *ReadRestrictions {
	if r == nil {
		return nil
	}
	out := &ReadRestrictions{
		Readable:        r.Readable,
		RestrictionBase: r.RestrictionBase,
	}
	nested := r.ReadByKeyRestrictions
	if nested == nil {
		return out
	}
	if nested.Readable != nil {
		out.Readable = nested.Readable
	}
	base := nested.RestrictionBase
	base.MergeFrom(&r.RestrictionBase)
	out.RestrictionBase = base
	return out
}

// MergeFrom fills the unset fields from broad.
func (r *InsertRestrictions) MergeFrom(broad *InsertRestrictions) {
	if broad == nil {
		return
	}
	fillBool(&r.Insertable, broad.Insertable)
	if r.MaxLevels == nil {
		r.MaxLevels = broad.MaxLevels
	}
	r.RestrictionBase.MergeFrom(&broad.RestrictionBase)
}

// MergeFrom fills the unset fields from broad.
func (r *UpdateRestrictions) MergeFrom(broad *UpdateRestrictions) {
	if broad == nil {
		return
	}
	fillBool(&r.Updatable, broad.Updatable)
	fillBool(&r.Upsertable, broad.Upsertable)
	fillString(&r.UpdateMethod, broad.UpdateMethod)
	r.RestrictionBase.MergeFrom(&broad.RestrictionBase)
}

// MergeFrom fills the unset fields from broad.
func (r *DeleteRestrictions) MergeFrom(broad *DeleteRestrictions) {
	if broad == nil {
		return
	}
	fillBool(&r.Deletable, broad.Deletable)
	r.RestrictionBase.MergeFrom(&broad.RestrictionBase)
}

// MergeFrom fills the unset fields from broad.
func (r *OperationRestrictions) MergeFrom(broad *OperationRestrictions) {
	if broad == nil {
		return
	}
	fillBool(&r.FilterSegmentSupported, broad.FilterSegmentSupported)
	r.RestrictionBase.MergeFrom(&broad.RestrictionBase)
}

// MergeFrom fills the unset fields from broad. Restricted property entries
// are combined by navigation property path; entries of r win.
func (r *NavigationRestrictions) MergeFrom(broad *NavigationRestrictions) {
	if broad == nil {
		return
	}
	fillString(&r.Navigability, broad.Navigability)
	if r.RestrictedProperties == nil {
		r.RestrictedProperties = broad.RestrictedProperties
		return
	}
	for _, entry := range broad.RestrictedProperties {
		if r.Restricted(entry.NavigationProperty) == nil {
			r.RestrictedProperties = append(r.RestrictedProperties, entry)
		}
	}
}

// MergeFrom fills the unset fields from broad.
func (r *QueryRestrictions) MergeFrom(broad *QueryRestrictions) {
	if broad == nil {
		return
	}
	fillBool(&r.TopSupported, broad.TopSupported)
	fillBool(&r.SkipSupported, broad.SkipSupported)
	fillBool(&r.Countable, broad.Countable)
	fillBool(&r.Filterable, broad.Filterable)
	fillBool(&r.Searchable, broad.Searchable)
	fillBool(&r.Sortable, broad.Sortable)
	fillBool(&r.SelectSupported, broad.SelectSupported)
	fillBool(&r.Expandable, broad.Expandable)
	fillSlice(&r.NonSortableProperties, broad.NonSortableProperties)
}
