// Package record derives flat persistence records from nested domain models.
//
// A model is a struct declared after a //lowboy:record directive:
//
//	//lowboy:record table=post
//	type Post struct {
//		ID          int64
//		UserProfile UserProfile `record:"related"`
//		Content     string
//	}
//
// For every model the generator writes a <Model>Record row type, Read and
// Find functions, a New<Model>Record insert builder with Create<Model>Record,
// an Update<Model>Record builder, the Record() conversion and the
// <Model>FromRecord lifter. Field tags:
//
//	record:"related"             belongs-to; the row holds <field>_id
//	record:"related,column=c"    belongs-to with an explicit column
//	record:"has_one,fk=c"        single child loaded eagerly by back-reference
//	record:"many,fk=c"           child sequence loaded lazily by With<Field>
//	record:"column=c"            primitive with an explicit column
//	record:"-"                   ignored
//
// cmd/recordgen drives the generator from go:generate.
package record
