// Package hittest answers "what text is at this point" while a page is
// interpreted.
//
// A [Tester] is armed with a page-space point. The first run whose quad
// contains the point is reported once through the callback; later runs are
// ignored until the tester is reset for the next scan.
package hittest
