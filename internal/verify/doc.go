// Package verify cross-checks bigint against reference implementations.
//
// A run draws random operand pairs from a seeded generator, applies every
// operation through bigint and through each Oracle, and reports any result
// that differs. Operands and results travel as signed base-16 strings so
// that an oracle never depends on bigint's own conversions. Building with
// the "gmp" tag adds a GMP oracle next to math/big.
package verify
