// Package switchhole draws the plate cutout for a single key.
//
// Every key gets a 14×14 mm square for an MX-style switch. Keys two units
// or longer also get a stabilizer cutout whose span follows the key length
// (see [StabSpan]). Three stabilizer styles are supported: Cherry
// plate-mount clips, Costar wire brackets, and a combined cutout that
// accepts either.
//
// The cutout is drawn around the origin in the plate builder's layout
// orientation, where y grows downward. Because the finished plate is
// mirrored once to put the origin at the bottom left, the stabilizer is
// drawn mirrored here so it ends up the right way round.
//
// Dimensions come from the Cherry MX series catalogue; spacebar spans come
// from the deskthority space bar dimensions table.
package switchhole
