// Package render turns accepted submission payloads into notification markup.
//
// Payloads are classified into a closed set of shapes by their top-level key
// set. A payload carrying every required quote field renders through the
// specialized quote template with the payload passed through untransformed;
// everything else falls back to the generic template, which displays the
// payload as an ordered table of flattened key/value rows.
//
// Rendering is pure: the payload is never mutated and the only I/O is reading
// template definitions when the Renderer is constructed. Template failures
// propagate to the caller so the deliver phase can record them.
package render
