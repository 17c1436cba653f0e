// Package spans turns arbitrary trace or request-log records into
// messages. It knows nothing about where spans come from: anything with an
// input or output field that looks like a provider payload can be
// imported. Detection is heuristic and order-dependent; see
// provider.ImportOrder.
package spans
