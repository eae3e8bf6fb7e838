// Package bigint implements arbitrary-precision signed integers in
// sign-magnitude form.
//
// An [Int] holds a sign flag and a magnitude stored as a sequence of
// machine-word limbs, least significant first. Arithmetic follows the
// conventions of math/big: methods store their result in the receiver and
// return it, and operands may alias the receiver.
//
//	z := bigint.NewUint(math.MaxUint)
//	z.Mul(z, z)          // z = W²
//	z.Quo(z, bigint.NewInt(-1))
//
// Division truncates toward zero, so a remainder takes the sign of its
// dividend, matching Go's native / and %.
//
// # Failure model
//
// Two kinds of failure exist:
//
//   - Range errors are recoverable. Conversions to native integers and
//     shifts by an unrepresentable [Int] amount return a [*RangeError];
//     nothing is silently truncated.
//   - Precondition violations are caller bugs: division by zero and
//     magnitude subtraction underflow panic with a [*PreconditionError].
//     [Try] and [Recover] turn such a panic back into an error at a
//     boundary (a REPL, a worker) without swallowing unrelated panics.
//
// An Int is not safe for concurrent mutation. Assigning an Int by value
// shares its limb storage; use [Int.Set] or [Int.Clone] for an independent
// copy.
package bigint
