/* Package main: gofunge, a Befunge-98 interpreter

Befunge is a two dimensional language: a program is a grid of characters,
funge-space, through which instruction pointers (IPs) travel. Each
character an IP lands on is an instruction; most of them manipulate a stack
of integer cells, some of them change the direction of travel, and a few
read or write funge-space itself, so that programs may modify their own
code.

Funge-98 extends the original Befunge-93 in three directions that matter to
this implementation:

Funge-space is unbounded. Cells are stored in fixed size pages allocated on
first write (see internal/space), and an IP that leaves the area holding
any stored cell wraps around by travelling backwards until it leaves on the
other side ("Lahey-space" wrapping).

Each IP owns a stack of stacks. The { and } instructions open and close
stack frames, saving and restoring the IP's storage offset, the origin that
g and p are relative to (see internal/stack).

Programs may be concurrent. The t instruction splits the current IP; the
scheduler then runs every live IP one instruction per pass, in slot order,
with a new IP taking its first step on the pass after it was created (see
scheduler.go and internal/ip).

Programs may also load fingerprints: named semantic extensions that bind
behavior to the instructions A through Z. Every IP has its own binding
table, each letter holding a stack of bindings so that a later load
shadows an earlier one until it is unloaded again (see
internal/fingerprint).

Running

	gofunge [flags] program.b98 [args...]

The program's arguments, the program file name first, and the process
environment are visible to it through the y instruction. See the -h output
for flags; settings may also come from a TOML file given to -config, with
any flags overriding it.

The interpreter halts when no IPs are left, when an IP executes q, or on a
fatal host error such as exceeding a configured resource limit.

*/
package main
