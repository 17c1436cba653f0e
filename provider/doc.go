// Package provider defines the shared conversion surface: the Format enum,
// the Codec and StreamCodec interfaces each wire format implements, the
// ConversionError family, and the ensure-once codec registry. The concrete
// codecs live in the subpackages (openaichat, responses, anthropic, google)
// and register themselves on import.
package provider
