// Package messages defines the canonical intermediate representation (IR)
// that every provider wire format is translated through. A Message pairs a
// role with ordered content parts; ContentOrParts keeps the wire format's
// original shorthand (plain string or part array) without normalizing it.
//
// Design decisions:
//   - Closed part set: each content variant is a concrete struct behind the
//     ContentPart interface, so mapping tables over (provider, variant) stay
//     exhaustiveness-checked at compile time.
//   - Open-world escape hatch: UnknownPart carries unrecognized content
//     verbatim, keeping the engine forward-compatible with part types that
//     ship after it does.
//   - Role gating: construction and decode reject part kinds that are not
//     permitted for the message's role (RoleContentMismatchError).
//   - Semantic equality: Fingerprint normalizes string content to its
//     single-text-part form for comparison only; stored values are never
//     rewritten.
//
// All values are immutable after construction and safe for concurrent use.
package messages
