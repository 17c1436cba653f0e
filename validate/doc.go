// Package validate offers structural validation of provider payloads:
// requests, responses, and streaming chunks. Validation is structural, so
// it is asymmetric across formats: a looser format's payload can pass a
// stricter format's checks even when the reverse fails. Google payloads
// never validate; their schemas are protobuf-backed and out of reach for
// JSON-level checks.
package validate
