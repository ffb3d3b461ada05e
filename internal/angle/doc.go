// Package angle converts between device angle units and degrees and provides
// wrap-around arithmetic on the compass circle.
package angle
