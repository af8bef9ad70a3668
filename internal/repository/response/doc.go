// Package response tracks helper responses per needy user: which
// helpers are currently approaching, where they were last seen, and
// their last computed distance.
//
// A response group lives only while its needy user's alert does; the
// coordinator clears it on alert cancellation, mark-safe and logout.
package response
