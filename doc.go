// Package balance implements the persistence and serialization layer of the
// BalancePlus personal finance client. It is designed to be local-first: the
// remote API is only a collaborator boundary, and the durable state lives in
// one human-readable JSON file the user machine owns.
//
// The core functionalities include:
//   - Domain Records: Transaction values with embedded BankAccount and
//     Category snapshots, exact decimal amounts, and ISO-8601 timestamps.
//   - Monetary/Temporal Codec: lossless text round-trip for decimals and the
//     canonical fractional-seconds timestamp form, tolerant on read.
//   - JSON Bridge: a tagged interchange tree that carries records into the
//     cache file and into hand-built request bodies, with lenient per-record
//     parsing and structured field-path errors.
//   - CSV Import/Export: a fixed 8-column text format with best-effort row
//     parsing and collected diagnostics.
//   - File-Backed Cache: an ordered in-memory collection mirrored atomically
//     into a single JSON file, with defined error semantics per operation.
//
// This package serves as the foundational logic for the `bp` maintenance
// command-line tool and for UI clients consuming the cached records.
package balance
