/*
Package escrow implements a two-party token swap escrow.

The initializer deposits tokens into a holding account and records the
amount it wants in return in an escrow record. Initialization hands the
holding account over to an authority derived from the escrow program id,
so no private key can move the deposit. A taker completes the swap with a
single Exchange instruction: it pays the expected amount to the initializer
and receives the whole deposit, after which the holding account and the
record are closed and their lamports returned to the initializer.

There is no cancellation. A record is written once and closed once.
*/
package escrow
