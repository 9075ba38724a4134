// Package query compiles user expressions that filter and order grid
// entities.
//
// Expressions use the expr language (github.com/expr-lang/expr). They are
// evaluated against one donor or gene at a time. The environment holds the
// reserved names id, score and count (plus symbol for genes) and every
// annotation field. Dotted field names are exposed as nested maps, so the
// field "clinical.age" is written clinical.age:
//
//	p, err := query.Compile(`count == 0 || clinical.age > 60`)
//	ids, err := query.Match(p, g.Donors())
//	g.RemoveDonors(func(d *model.Donor) bool { return ids[d.ID] })
//
// Unknown names evaluate to nil instead of failing compilation, which lets
// one expression run over datasets with sparse annotations.
//
// A sort key is an expression prefixed with "-" for descending order:
//
//	k, err := query.CompileSort("-clinical.age")
//	cmp, err := query.SortFunc(k, g.Donors())
//	g.SortDonors(cmp)
package query
