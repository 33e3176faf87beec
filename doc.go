/*
Package pulsesim simulates networks of modules exchanging low and high pulses,
and computes when a given module first receives a low pulse.

A network is described by definition lines:

	broadcaster -> a, b, c
	%a -> b
	%b -> c
	%c -> inv
	&inv -> a

The broadcaster forwards every pulse it receives to all its destinations.
Flip-flops (%) ignore high pulses and toggle on every low pulse, sending high
when turned on and low when turned off. Conjunctions (&) remember the last
pulse received from each of their inputs and send low only when all of them are
high. Names used only as destinations are untracked sinks.

A trigger event, or button press, sends a single low pulse to the broadcaster.
Pulses are processed in the order they are sent until none is pending.

For networks made of independent counters feeding a single conjunction, Solve
finds the first press delivering a low pulse to a target module without
simulating every press: the flip-flops are partitioned into clusters, one per
branch of the broadcaster, the state of each cluster is simulated until it
repeats, and the periods are combined with a least common multiple.

*/
package pulsesim
