// Package track manages annotation tracks drawn alongside an oncogrid.
//
// A [Track] shows one field of every donor (or gene) as a row of coloured
// cells. Tracks are collected into named [Group] values, and the groups of one
// axis form a [Set]. Donor tracks sit below the grid; gene tracks sit to its
// right and are "rotated", which only changes the label shown for each cell
// (the gene symbol instead of the id).
//
// # Visible and collapsed tracks
//
// Each group keeps two sequences: visible tracks and collapsed tracks. A
// track is in exactly one of them. Tracks flagged Collapsed start hidden when
// their group is expandable and has not been rendered yet; afterwards every
// added track becomes visible. [Group.RemoveTrack] never discards a track, it
// moves it to the collapsed sequence so it can be expanded again later.
//
// Within a group the visible tracks are unique by FieldName. When duplicates
// are added the first one wins.
//
// # Cell data
//
// [Group.RefreshData] flattens the group into one [Datum] per (item, visible
// track). Values equal to the null sentinel (default -777) display as
// "Not Verified".
//
// # Ordering
//
// Groups keep first-seen order through [OrderedMap]. A track's row position
// is its index in the visible sequence, so reordering visible tracks changes
// row geometry.
package track
