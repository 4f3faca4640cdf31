// Package paramq parses and validates request parameters and turns them into
// database query descriptors.
//
// Parameters are read from a plain source map (see [SourceFromRequest],
// [SourceFromJSON] and [SourceFromValues]) one call at a time. Each call
// names a parser [Kind] and carries a [FieldSpec] describing requiredness,
// defaults, bounds and an allowed set. The parser registered for the kind in
// a [ParserRegistry] converts the raw value; the result is written into the
// builder's destination under the spec's alias or name.
//
// Two builders share this machinery:
//   - [DataBuilder] collects parsed values into a flat output map.
//   - [QueryBuilder] collects filter values together with their comparison
//     operator, plus a field projection, pagination and sorting, and renders
//     them for a dialect with [QueryBuilder.Build]. The "mongoose" and
//     "sequelize" dialects are built in; [QueryBuilder.SelectBuilder] and
//     [QueryBuilder.MongoFind] compile the same state into a squirrel select
//     and native mongo driver arguments.
//
// Every parser honors the same short-circuit rule: a missing or nil value
// that is not required yields the spec's Default (or nothing) without running
// any other check.
//
// Failures come in two flavors. Bad input produces the error returned by the
// configured [ErrorFactory], a [*ValidationError] unless replaced. Mistakes
// in the calling code (a missing name, an unknown item type, duplicate keys)
// produce a [*ConfigurationError] wrapping one of the Err sentinels.
//
// Builders are not safe for concurrent use; create one per logical input.
// Registries are read-only once built and may be shared.
//
// Parse calls can also be declared in YAML, see [Schema].
package paramq
